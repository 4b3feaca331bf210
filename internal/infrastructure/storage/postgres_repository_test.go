package storage

import (
	"strings"
	"testing"
	"time"

	"ContentTriage/internal/domain"
)

func TestFetchPendingQuery(t *testing.T) {
	t.Parallel()

	query, args, err := fetchPendingQuery(10)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT id, raw_content, summary, source_url FROM content_queue WHERE status = $1 ORDER BY created_at ASC LIMIT 10"
	if query != want {
		t.Fatalf("unexpected query:\n got %q\nwant %q", query, want)
	}
	if len(args) != 1 || args[0] != "pending" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdateItemQuery(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	query, args, err := updateItemQuery("abc", domain.ItemUpdate{
		Status:         domain.DecisionApproved,
		AIStatus:       domain.DecisionApproved,
		FinalScore:     81.0,
		DecisionReason: "Score >= 70",
		AnalyzedAt:     at,
	})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.HasPrefix(query, "UPDATE content_queue SET ") {
		t.Fatalf("unexpected query: %q", query)
	}
	for _, col := range []string{"status = ", "ai_status = ", "final_score = ", "decision_reason = ", "analyzed_at = "} {
		if !strings.Contains(query, col) {
			t.Fatalf("query missing %q: %q", col, query)
		}
	}
	if !strings.HasSuffix(query, "WHERE id = $6") {
		t.Fatalf("unexpected where clause: %q", query)
	}
	if len(args) != 6 || args[5] != "abc" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertAnalysisQuery(t *testing.T) {
	t.Parallel()

	query, args, err := insertAnalysisQuery(domain.AnalysisRecord{
		ContentID:            "abc",
		Category:             domain.CategoryAI,
		QualityScore:         90,
		EngagementScore:      80,
		ViralityScore:        70,
		FinalScore:           81.0,
		RecommendedPlatforms: []string{"linkedin"},
		Reasoning:            "good",
	})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO content_ai_analysis ") {
		t.Fatalf("unexpected query: %q", query)
	}
	if !strings.Contains(query, "raw_llm_response") {
		t.Fatalf("query missing raw response column: %q", query)
	}
	if len(args) != 11 {
		t.Fatalf("expected 11 args, got %d", len(args))
	}
}

func TestInsertLogQuery(t *testing.T) {
	t.Parallel()

	entry := domain.BatchLog{
		BatchID:   "b-1",
		BatchSize: 10,
		Stats: domain.RunStats{
			Processed: 7, Approved: 3, Review: 2, Rejected: 2, AIErrors: 1, ExecutionTimeMS: 1200,
		},
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}

	query, args, err := insertLogQuery(entry)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO ai_processing_logs ") {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 10 {
		t.Fatalf("expected 10 args, got %d", len(args))
	}
	if args[0] != "b-1" || args[2] != 7 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestExistsBySourceURLQuery(t *testing.T) {
	t.Parallel()

	query, args, err := existsBySourceURLQuery("https://example.org/a")
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT 1 FROM content_queue WHERE source_url = $1 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 1 || args[0] != "https://example.org/a" {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestTitleExistsSinceQuery(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, time.February, 22, 0, 0, 0, 0, time.UTC)
	query, args, err := titleExistsSinceQuery("A title", since)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT 1 FROM content_queue WHERE title = $1 AND created_at >= $2 LIMIT 1"
	if query != want {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 2 || args[0] != "A title" || args[1] != since {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertPendingQuery(t *testing.T) {
	t.Parallel()

	query, args, err := insertPendingQuery(domain.IngestedContent{
		Source:      "rss",
		ContentType: domain.ContentTypeText,
		Title:       "A title",
		SourceURL:   "https://example.org/a",
		Language:    "en",
		PublishedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO content_queue ") {
		t.Fatalf("unexpected query: %q", query)
	}
	if len(args) != 10 {
		t.Fatalf("expected 10 args, got %d", len(args))
	}
	if args[len(args)-1] != "pending" {
		t.Fatalf("new rows must enter as pending, got %v", args[len(args)-1])
	}
}
