package triage

import (
	"strings"
	"testing"

	"ContentTriage/internal/domain"
)

func TestCleanStripsMarkup(t *testing.T) {
	t.Parallel()

	in := "<div><h1>Launch day</h1>\n<p>We   shipped the\n\nnew   platform today.</p></div>"
	want := "Launch day We shipped the new platform today."

	if got := Clean(in); got != want {
		t.Fatalf("Clean() = %q, want %q", got, want)
	}
}

func TestCleanIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<p>Some   <b>bold</b> claim about   startups.</p>",
		"Check out &lt;b&gt;this great post&lt;/b&gt; from the feed.",
		"A &amp; B <em>compared</em>, &lt;i&gt;finally&lt;/i&gt;.",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("Clean(%q) is not idempotent: %q vs %q", in, once, twice)
		}
	}
}

func TestCleanKeepsEntitiesEscaped(t *testing.T) {
	t.Parallel()

	in := "Check out &lt;b&gt;this great post&lt;/b&gt; from the feed."
	if got := Clean(in); got != in {
		t.Fatalf("Clean(%q) = %q, entities must stay escaped", in, got)
	}
}

func TestValidateItemRejectsShortContent(t *testing.T) {
	t.Parallel()

	item := &domain.ContentItem{
		ID:         "c1",
		RawContent: "<p>too short</p>",
		IsValid:    true,
		Decision:   domain.DecisionPending,
	}

	rejected := ValidateItem(item)
	if !rejected {
		t.Fatal("expected rejection for short content")
	}
	if item.IsValid {
		t.Fatal("item should be invalid")
	}
	if item.ValidationError != "Content too short (<50 chars)" {
		t.Fatalf("unexpected validation error: %q", item.ValidationError)
	}
	if item.Decision != domain.DecisionRejected {
		t.Fatalf("unexpected decision: %q", item.Decision)
	}
	if item.DecisionReason != "Validation Failed: Too short" {
		t.Fatalf("unexpected reason: %q", item.DecisionReason)
	}
}

func TestValidateItemAcceptsLongContent(t *testing.T) {
	t.Parallel()

	item := &domain.ContentItem{
		ID:         "c2",
		RawContent: "<article>" + strings.Repeat("A", 60) + "</article>",
		IsValid:    true,
		Decision:   domain.DecisionPending,
	}

	if rejected := ValidateItem(item); rejected {
		t.Fatal("unexpected rejection")
	}
	if !item.IsValid {
		t.Fatal("item should stay valid")
	}
	if item.RawContent != strings.Repeat("A", 60) {
		t.Fatalf("content not cleaned in place: %q", item.RawContent)
	}
}

func TestValidateItemCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	short := &domain.ContentItem{
		ID:         "c4",
		RawContent: strings.Repeat("字", 20),
		IsValid:    true,
		Decision:   domain.DecisionPending,
	}
	if rejected := ValidateItem(short); !rejected {
		t.Fatal("20 characters must be rejected even when they span 60 bytes")
	}

	long := &domain.ContentItem{
		ID:         "c5",
		RawContent: strings.Repeat("字", 50),
		IsValid:    true,
		Decision:   domain.DecisionPending,
	}
	if rejected := ValidateItem(long); rejected {
		t.Fatal("50 characters must pass the length rule")
	}
}

func TestValidateItemSkipsAlreadyInvalid(t *testing.T) {
	t.Parallel()

	item := &domain.ContentItem{
		ID:              "c3",
		RawContent:      "<p>raw</p>",
		IsValid:         false,
		ValidationError: "earlier failure",
		Decision:        domain.DecisionRejected,
	}

	if rejected := ValidateItem(item); rejected {
		t.Fatal("invalid item must pass through unchanged")
	}
	if item.RawContent != "<p>raw</p>" {
		t.Fatalf("content of invalid item was mutated: %q", item.RawContent)
	}
	if item.ValidationError != "earlier failure" {
		t.Fatalf("validation error overwritten: %q", item.ValidationError)
	}
}
