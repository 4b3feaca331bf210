package domain

import "time"

// ContentType classifies ingested payloads.
type ContentType string

const (
	ContentTypeText ContentType = "text"
)

// IngestedContent is a normalized item produced by a source connector,
// candidate for insertion into the content queue.
type IngestedContent struct {
	Source      string
	ContentType ContentType
	Title       string
	Summary     string
	RawContent  string
	SourceURL   string
	Author      string
	Language    string
	PublishedAt time.Time
}

// IngestStats summarizes one ingestion run across all configured sources.
type IngestStats struct {
	Fetched    int   `json:"fetched"`
	Saved      int   `json:"saved"`
	Duplicates int   `json:"duplicates"`
	Errors     int   `json:"errors"`
	TimeMS     int64 `json:"execution_time_ms"`
}
