package domain

import "time"

// Decision enumerates the categorical outcomes of content triage.
type Decision string

const (
	DecisionPending  Decision = "pending"
	DecisionApproved Decision = "approved"
	DecisionReview   Decision = "review"
	DecisionRejected Decision = "rejected"
	DecisionAIError  Decision = "ai_error"
)

// Category enumerates valid analysis categories returned by the model.
type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryStartup    Category = "startup"
	CategoryAI         Category = "ai"
	CategoryBusiness   Category = "business"
	CategoryMarketing  Category = "marketing"
	CategoryOther      Category = "other"
)

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryTechnology, CategoryStartup, CategoryAI, CategoryBusiness, CategoryMarketing, CategoryOther:
		return true
	}
	return false
}

// AnalysisResult is the structured strategic-value assessment returned by
// the analysis service. Sub-scores are in [0, 100].
type AnalysisResult struct {
	Category                  Category `json:"category"`
	QualityScore              int      `json:"content_quality_score"`
	EngagementScore           int      `json:"engagement_score"`
	ViralityScore             int      `json:"virality_probability"`
	RecommendedPlatforms      []string `json:"recommended_platforms"`
	ContentTypeRecommendation string   `json:"content_type_recommendation"`
	Reasoning                 string   `json:"reasoning"`
	RewriteNeeded             bool     `json:"rewrite_needed"`

	// Raw holds the verbatim model output the result was parsed from.
	Raw string `json:"-"`
}

// ContentItem is one unit of work moving through the triage pipeline.
type ContentItem struct {
	ID              string
	RawContent      string
	SourceURL       string
	IsValid         bool
	ValidationError string
	Analysis        *AnalysisResult
	FinalScore      float64
	Decision        Decision
	DecisionReason  string
	RetryCount      int
}

// ContentRow is a raw content_queue row as read from the store.
type ContentRow struct {
	ID         string
	RawContent string
	Summary    string
	SourceURL  string
}

// ItemUpdate carries the triage outcome written back to the content queue.
type ItemUpdate struct {
	Status         Decision
	AIStatus       Decision
	FinalScore     float64
	DecisionReason string
	AnalyzedAt     time.Time
}

// AnalysisRecord is the companion analysis row persisted per analyzed item.
type AnalysisRecord struct {
	ContentID                 string
	Category                  Category
	QualityScore              int
	EngagementScore           int
	ViralityScore             int
	FinalScore                float64
	RecommendedPlatforms      []string
	ContentTypeRecommendation string
	RewriteNeeded             bool
	Reasoning                 string
	RawResponse               string
}

// RunStats accumulates per-batch counters. Each counter is incremented by
// exactly one pipeline stage and never decremented.
type RunStats struct {
	Processed       int   `json:"processed"`
	Approved        int   `json:"approved"`
	Review          int   `json:"review"`
	Rejected        int   `json:"rejected"`
	AIErrors        int   `json:"ai_errors"`
	ExecutionTimeMS int64 `json:"execution_time_ms"`
}

// BatchLog is the audit record written once per pipeline run.
type BatchLog struct {
	BatchID    string
	BatchSize  int
	Stats      RunStats
	StartedAt  time.Time
	FinishedAt time.Time
}
