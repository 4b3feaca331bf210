package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
	"ContentTriage/internal/triage"
)

// PipelineDeps wires the external collaborators into the decision core.
type PipelineDeps struct {
	Store    ports.ContentStore
	Analyzer ports.Analyzer
	Logger   *slog.Logger
}

// Pipeline implements the batch triage workflow: fetch, validate, analyze,
// score/decide, save. Every item visits every stage; stages pass through
// items already marked invalid, and one item's failure never affects its
// siblings.
type Pipeline struct {
	store    ports.ContentStore
	analyzer ports.Analyzer
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		store:    deps.Store,
		analyzer: deps.Analyzer,
		logger:   deps.Logger,
	}
}

// Run processes one batch of at most batchSize pending items to completion
// and returns the accumulated run statistics. Per-item faults are absorbed
// into the stats; only wiring faults surface as an error.
func (p *Pipeline) Run(ctx context.Context, batchSize int) (domain.RunStats, error) {
	if p.store == nil {
		return domain.RunStats{}, fmt.Errorf("content store is not configured")
	}
	if p.analyzer == nil {
		return domain.RunStats{}, fmt.Errorf("analyzer is not configured")
	}

	startedAt := time.Now().UTC()
	var stats domain.RunStats

	batch := p.fetch(ctx, batchSize, &stats)
	p.validate(batch, &stats)
	p.analyze(ctx, batch, &stats)
	p.scoreAndDecide(batch, &stats)

	stats.ExecutionTimeMS = time.Since(startedAt).Milliseconds()
	p.save(ctx, batch, batchSize, &stats, startedAt)

	return stats, nil
}

// fetch loads pending rows oldest-first and maps them into work items with
// safe defaults. A fetch-level failure degrades to an empty batch.
func (p *Pipeline) fetch(ctx context.Context, batchSize int, stats *domain.RunStats) []domain.ContentItem {
	rows, err := p.store.FetchPending(ctx, batchSize)
	if err != nil {
		p.warn("fetch pending failed", "error", err)
		stats.AIErrors++
		return nil
	}

	batch := make([]domain.ContentItem, 0, len(rows))
	for _, row := range rows {
		raw := row.RawContent
		if raw == "" {
			raw = row.Summary
		}
		batch = append(batch, domain.ContentItem{
			ID:         row.ID,
			RawContent: raw,
			SourceURL:  row.SourceURL,
			IsValid:    true,
			Decision:   domain.DecisionPending,
		})
	}

	p.debug("fetched batch", "requested", batchSize, "items", len(batch))
	return batch
}

func (p *Pipeline) validate(batch []domain.ContentItem, stats *domain.RunStats) {
	for i := range batch {
		if triage.ValidateItem(&batch[i]) {
			stats.Rejected++
		}
	}
}

func (p *Pipeline) analyze(ctx context.Context, batch []domain.ContentItem, stats *domain.RunStats) {
	for i := range batch {
		item := &batch[i]
		if !item.IsValid {
			continue
		}

		analysis, err := p.analyzer.Analyze(ctx, item.RawContent)
		if err != nil {
			p.warn("analysis failed", "id", item.ID, "error", err)
			item.IsValid = false
			item.ValidationError = fmt.Sprintf("AI Error: %v", err)
			item.Decision = domain.DecisionAIError
			stats.AIErrors++
			continue
		}

		item.Analysis = analysis
		stats.Processed++
	}
}

func (p *Pipeline) scoreAndDecide(batch []domain.ContentItem, stats *domain.RunStats) {
	for i := range batch {
		item := &batch[i]
		if !item.IsValid || item.Analysis == nil {
			continue
		}

		item.FinalScore = triage.Score(item.Analysis)
		item.Decision, item.DecisionReason = triage.Decide(
			item.FinalScore,
			item.Analysis.RewriteNeeded,
			item.Analysis.Reasoning,
		)

		switch item.Decision {
		case domain.DecisionApproved:
			stats.Approved++
		case domain.DecisionReview:
			stats.Review++
		case domain.DecisionRejected:
			stats.Rejected++
		}
	}
}

// save writes each item's outcome back to the store, best effort per item,
// then always appends exactly one audit record for the batch. The queue
// status is advanced off "pending" for every item so the next run cannot
// re-fetch it.
func (p *Pipeline) save(ctx context.Context, batch []domain.ContentItem, batchSize int, stats *domain.RunStats, startedAt time.Time) {
	finishedAt := time.Now().UTC()

	for i := range batch {
		item := &batch[i]

		status := domain.DecisionRejected
		if item.Decision == domain.DecisionApproved || item.Decision == domain.DecisionReview {
			status = item.Decision
		}

		err := p.store.UpdateItem(ctx, item.ID, domain.ItemUpdate{
			Status:         status,
			AIStatus:       item.Decision,
			FinalScore:     item.FinalScore,
			DecisionReason: item.DecisionReason,
			AnalyzedAt:     finishedAt,
		})
		if err != nil {
			p.warn("save item failed", "id", item.ID, "error", err)
			continue
		}

		if item.Analysis == nil {
			continue
		}

		rec := domain.AnalysisRecord{
			ContentID:                 item.ID,
			Category:                  item.Analysis.Category,
			QualityScore:              item.Analysis.QualityScore,
			EngagementScore:           item.Analysis.EngagementScore,
			ViralityScore:             item.Analysis.ViralityScore,
			FinalScore:                item.FinalScore,
			RecommendedPlatforms:      item.Analysis.RecommendedPlatforms,
			ContentTypeRecommendation: item.Analysis.ContentTypeRecommendation,
			RewriteNeeded:             item.Analysis.RewriteNeeded,
			Reasoning:                 item.Analysis.Reasoning,
			RawResponse:               item.Analysis.Raw,
		}
		if err := p.store.InsertAnalysis(ctx, rec); err != nil {
			p.warn("save analysis failed", "id", item.ID, "error", err)
		}
	}

	entry := domain.BatchLog{
		BatchID:    uuid.NewString(),
		BatchSize:  batchSize,
		Stats:      *stats,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := p.store.InsertLog(ctx, entry); err != nil {
		p.warn("save batch log failed", "batch_id", entry.BatchID, "error", err)
	}
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
