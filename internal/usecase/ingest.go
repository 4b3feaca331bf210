package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
)

// Text items shorter than this are not worth queueing for triage.
const minIngestLength = 100

// Items whose title already appeared within this window are duplicates even
// when they arrive under a different URL.
const recentTitleWindow = 7 * 24 * time.Hour

// IngestionDeps wires the source aggregate and the queue store.
type IngestionDeps struct {
	Source ports.ContentSource
	Store  ports.IngestStore
	Logger *slog.Logger
}

// Ingestion feeds the content queue: it pulls normalized items from the
// configured sources, filters and deduplicates them, and inserts survivors
// as pending rows.
type Ingestion struct {
	source ports.ContentSource
	store  ports.IngestStore
	logger *slog.Logger
}

// NewIngestion constructs the ingestion use case.
func NewIngestion(deps IngestionDeps) *Ingestion {
	return &Ingestion{
		source: deps.Source,
		store:  deps.Store,
		logger: deps.Logger,
	}
}

// Run executes one ingestion pass over all sources. Item-level problems are
// counted, never fatal.
func (g *Ingestion) Run(ctx context.Context) (domain.IngestStats, error) {
	if g.source == nil {
		return domain.IngestStats{}, fmt.Errorf("content source is not configured")
	}
	if g.store == nil {
		return domain.IngestStats{}, fmt.Errorf("ingest store is not configured")
	}

	start := time.Now()

	items, err := g.source.FetchAll(ctx)
	if err != nil {
		return domain.IngestStats{}, fmt.Errorf("fetch sources: %w", err)
	}

	stats := domain.IngestStats{Fetched: len(items)}

	for _, item := range items {
		if item.Title == "" || item.SourceURL == "" {
			g.warn("ingest item missing title or url", "source", item.Source)
			stats.Errors++
			continue
		}

		if item.ContentType == domain.ContentTypeText {
			length := len(item.Summary)
			if len(item.RawContent) > length {
				length = len(item.RawContent)
			}
			if length < minIngestLength {
				g.warn("ingest item too short", "source", item.Source, "title", item.Title, "length", length)
				stats.Errors++
				continue
			}
		}

		exists, err := g.store.ExistsBySourceURL(ctx, item.SourceURL)
		if err != nil {
			g.warn("ingest duplicate check failed", "url", item.SourceURL, "error", err)
			stats.Errors++
			continue
		}
		if exists {
			stats.Duplicates++
			continue
		}

		seen, err := g.store.TitleExistsSince(ctx, item.Title, time.Now().Add(-recentTitleWindow))
		if err != nil {
			g.warn("ingest title check failed", "title", item.Title, "error", err)
			stats.Errors++
			continue
		}
		if seen {
			stats.Duplicates++
			continue
		}

		if err := g.store.InsertPending(ctx, item); err != nil {
			g.warn("ingest insert failed", "url", item.SourceURL, "error", err)
			stats.Errors++
			continue
		}
		stats.Saved++
	}

	stats.TimeMS = time.Since(start).Milliseconds()
	g.debug("ingestion done", "fetched", stats.Fetched, "saved", stats.Saved,
		"duplicates", stats.Duplicates, "errors", stats.Errors)

	return stats, nil
}

func (g *Ingestion) debug(msg string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}

func (g *Ingestion) warn(msg string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
