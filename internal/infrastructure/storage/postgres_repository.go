package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore persists the content queue, analysis records, and audit
// logs in Postgres.
type PostgresStore struct {
	db *sql.DB
}

var _ ports.ContentStore = (*PostgresStore)(nil)
var _ ports.IngestStore = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func fetchPendingQuery(limit int) (string, []interface{}, error) {
	return psql.Select("id", "raw_content", "summary", "source_url").
		From("content_queue").
		Where(sq.Eq{"status": "pending"}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
}

// FetchPending returns up to limit pending rows, oldest first.
func (s *PostgresStore) FetchPending(ctx context.Context, limit int) ([]domain.ContentRow, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	query, args, err := fetchPendingQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var result []domain.ContentRow
	for rows.Next() {
		var (
			row        domain.ContentRow
			rawContent sql.NullString
			summary    sql.NullString
			sourceURL  sql.NullString
		)
		if err := rows.Scan(&row.ID, &rawContent, &summary, &sourceURL); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row.RawContent = rawContent.String
		row.Summary = summary.String
		row.SourceURL = sourceURL.String
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return result, nil
}

func updateItemQuery(id string, upd domain.ItemUpdate) (string, []interface{}, error) {
	return psql.Update("content_queue").
		Set("status", string(upd.Status)).
		Set("ai_status", string(upd.AIStatus)).
		Set("final_score", upd.FinalScore).
		Set("decision_reason", upd.DecisionReason).
		Set("analyzed_at", upd.AnalyzedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// UpdateItem writes the triage outcome onto the queue row, keyed by id.
func (s *PostgresStore) UpdateItem(ctx context.Context, id string, upd domain.ItemUpdate) error {
	if s.db == nil {
		return fmt.Errorf("database is not configured")
	}

	query, args, err := updateItemQuery(id, upd)
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update item %s: %w", id, err)
	}

	return nil
}

func insertAnalysisQuery(rec domain.AnalysisRecord) (string, []interface{}, error) {
	return psql.Insert("content_ai_analysis").
		Columns(
			"content_id",
			"category",
			"content_quality_score",
			"engagement_score",
			"virality_probability",
			"final_score",
			"recommended_platforms",
			"content_type_recommendation",
			"rewrite_needed",
			"reasoning",
			"raw_llm_response",
		).
		Values(
			rec.ContentID,
			string(rec.Category),
			rec.QualityScore,
			rec.EngagementScore,
			rec.ViralityScore,
			rec.FinalScore,
			pq.Array(rec.RecommendedPlatforms),
			rec.ContentTypeRecommendation,
			rec.RewriteNeeded,
			rec.Reasoning,
			rec.RawResponse,
		).
		ToSql()
}

// InsertAnalysis appends one analysis record for an analyzed item.
func (s *PostgresStore) InsertAnalysis(ctx context.Context, rec domain.AnalysisRecord) error {
	if s.db == nil {
		return fmt.Errorf("database is not configured")
	}

	query, args, err := insertAnalysisQuery(rec)
	if err != nil {
		return fmt.Errorf("build analysis insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert analysis for %s: %w", rec.ContentID, err)
	}

	return nil
}

func insertLogQuery(entry domain.BatchLog) (string, []interface{}, error) {
	return psql.Insert("ai_processing_logs").
		Columns(
			"batch_id",
			"batch_size",
			"processed",
			"approved",
			"review",
			"rejected",
			"ai_errors",
			"execution_time",
			"started_at",
			"finished_at",
		).
		Values(
			entry.BatchID,
			entry.BatchSize,
			entry.Stats.Processed,
			entry.Stats.Approved,
			entry.Stats.Review,
			entry.Stats.Rejected,
			entry.Stats.AIErrors,
			entry.Stats.ExecutionTimeMS,
			entry.StartedAt,
			entry.FinishedAt,
		).
		ToSql()
}

// InsertLog appends one audit row for a batch run.
func (s *PostgresStore) InsertLog(ctx context.Context, entry domain.BatchLog) error {
	if s.db == nil {
		return fmt.Errorf("database is not configured")
	}

	query, args, err := insertLogQuery(entry)
	if err != nil {
		return fmt.Errorf("build log insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert batch log %s: %w", entry.BatchID, err)
	}

	return nil
}

func existsBySourceURLQuery(sourceURL string) (string, []interface{}, error) {
	return psql.Select("1").
		From("content_queue").
		Where(sq.Eq{"source_url": sourceURL}).
		Limit(1).
		ToSql()
}

// ExistsBySourceURL reports whether the queue already holds a row for the URL.
func (s *PostgresStore) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database is not configured")
	}

	query, args, err := existsBySourceURLQuery(sourceURL)
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query source url: %w", err)
	}

	return true, nil
}

func titleExistsSinceQuery(title string, since time.Time) (string, []interface{}, error) {
	return psql.Select("1").
		From("content_queue").
		Where(sq.Eq{"title": title}).
		Where(sq.GtOrEq{"created_at": since}).
		Limit(1).
		ToSql()
}

// TitleExistsSince reports whether a row with the title was queued at or
// after the given time.
func (s *PostgresStore) TitleExistsSince(ctx context.Context, title string, since time.Time) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database is not configured")
	}

	query, args, err := titleExistsSinceQuery(title, since)
	if err != nil {
		return false, fmt.Errorf("build title exists query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query title: %w", err)
	}

	return true, nil
}

func insertPendingQuery(item domain.IngestedContent) (string, []interface{}, error) {
	return psql.Insert("content_queue").
		Columns(
			"source",
			"content_type",
			"title",
			"summary",
			"raw_content",
			"source_url",
			"author",
			"language",
			"published_at",
			"status",
		).
		Values(
			item.Source,
			string(item.ContentType),
			item.Title,
			item.Summary,
			item.RawContent,
			item.SourceURL,
			item.Author,
			item.Language,
			item.PublishedAt,
			"pending",
		).
		ToSql()
}

// InsertPending enqueues one ingested item for the next triage run.
func (s *PostgresStore) InsertPending(ctx context.Context, item domain.IngestedContent) error {
	if s.db == nil {
		return fmt.Errorf("database is not configured")
	}

	query, args, err := insertPendingQuery(item)
	if err != nil {
		return fmt.Errorf("build pending insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pending %s: %w", item.SourceURL, err)
	}

	return nil
}
