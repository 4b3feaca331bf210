package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"ContentTriage/internal/domain"
)

type fakeSource struct {
	items []domain.IngestedContent
	err   error
}

func (s *fakeSource) FetchAll(context.Context) ([]domain.IngestedContent, error) {
	return s.items, s.err
}

type fakeIngestStore struct {
	existing     map[string]bool
	recentTitles map[string]bool
	insertErr    error
	inserted     []domain.IngestedContent
	titleSince   time.Time
}

func (s *fakeIngestStore) ExistsBySourceURL(_ context.Context, url string) (bool, error) {
	return s.existing[url], nil
}

func (s *fakeIngestStore) TitleExistsSince(_ context.Context, title string, since time.Time) (bool, error) {
	s.titleSince = since
	return s.recentTitles[title], nil
}

func (s *fakeIngestStore) InsertPending(_ context.Context, item domain.IngestedContent) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, item)
	return nil
}

func textItem(title, url string) domain.IngestedContent {
	return domain.IngestedContent{
		Source:      "rss",
		ContentType: domain.ContentTypeText,
		Title:       title,
		RawContent:  strings.Repeat("x", 120),
		SourceURL:   url,
		Language:    "en",
	}
}

func TestIngestionSavesNewItems(t *testing.T) {
	t.Parallel()

	src := &fakeSource{items: []domain.IngestedContent{
		textItem("Fresh piece", "https://example.org/a"),
		textItem("Another piece", "https://example.org/b"),
	}}
	store := &fakeIngestStore{existing: map[string]bool{}}

	g := NewIngestion(IngestionDeps{Source: src, Store: store})
	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Fetched != 2 || stats.Saved != 2 || stats.Duplicates != 0 || stats.Errors != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("expected 2 inserts, got %d", len(store.inserted))
	}
}

func TestIngestionSkipsDuplicates(t *testing.T) {
	t.Parallel()

	src := &fakeSource{items: []domain.IngestedContent{
		textItem("Known piece", "https://example.org/known"),
	}}
	store := &fakeIngestStore{existing: map[string]bool{"https://example.org/known": true}}

	g := NewIngestion(IngestionDeps{Source: src, Store: store})
	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Duplicates != 1 || stats.Saved != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestIngestionSkipsRecentTitles(t *testing.T) {
	t.Parallel()

	src := &fakeSource{items: []domain.IngestedContent{
		textItem("Repeated headline", "https://example.org/mirror"),
	}}
	store := &fakeIngestStore{
		existing:     map[string]bool{},
		recentTitles: map[string]bool{"Repeated headline": true},
	}

	g := NewIngestion(IngestionDeps{Source: src, Store: store})
	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Duplicates != 1 || stats.Saved != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	window := time.Since(store.titleSince)
	if window < 6*24*time.Hour || window > 8*24*time.Hour {
		t.Fatalf("title window should span about seven days, got %v", window)
	}
}

func TestIngestionCountsInvalidItems(t *testing.T) {
	t.Parallel()

	short := textItem("Short piece", "https://example.org/short")
	short.RawContent = "tiny"
	short.Summary = ""

	src := &fakeSource{items: []domain.IngestedContent{
		{Source: "rss", ContentType: domain.ContentTypeText, RawContent: strings.Repeat("x", 200)}, // no title/url
		short,
		textItem("Good piece", "https://example.org/good"),
	}}
	store := &fakeIngestStore{existing: map[string]bool{}}

	g := NewIngestion(IngestionDeps{Source: src, Store: store})
	stats, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if stats.Errors != 2 || stats.Saved != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestIngestionSurfacesSourceFailure(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: fmt.Errorf("feed unreachable")}
	store := &fakeIngestStore{existing: map[string]bool{}}

	g := NewIngestion(IngestionDeps{Source: src, Store: store})
	if _, err := g.Run(context.Background()); err == nil {
		t.Fatal("expected error when all sources fail")
	}
}
