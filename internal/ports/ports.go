package ports

import (
	"context"
	"time"

	"ContentTriage/internal/domain"
)

// ContentStore exposes the content-queue persistence consumed by the
// triage pipeline.
type ContentStore interface {
	FetchPending(ctx context.Context, limit int) ([]domain.ContentRow, error)
	UpdateItem(ctx context.Context, id string, upd domain.ItemUpdate) error
	InsertAnalysis(ctx context.Context, rec domain.AnalysisRecord) error
	InsertLog(ctx context.Context, entry domain.BatchLog) error
}

// IngestStore holds the queue-feeding operations used by ingestion.
type IngestStore interface {
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	TitleExistsSince(ctx context.Context, title string, since time.Time) (bool, error)
	InsertPending(ctx context.Context, item domain.IngestedContent) error
}

// Analyzer submits cleaned content to the analysis service and returns a
// validated structured result.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (*domain.AnalysisResult, error)
}

// ContentSource pulls normalized content from upstream feeds.
type ContentSource interface {
	FetchAll(ctx context.Context) ([]domain.IngestedContent, error)
}

// Notifier publishes run digests to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when recurring batch runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
