package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"ContentTriage/internal/domain"
)

// RSSConnector pulls RSS 2.0 feeds and normalizes their items.
type RSSConnector struct {
	client *http.Client
}

// NewRSSConnector wires an HTTP client; a nil client gets a sane default.
func NewRSSConnector(client *http.Client) *RSSConnector {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &RSSConnector{client: client}
}

// Name identifies the connector inside the registry.
func (c *RSSConnector) Name() string {
	return "rss"
}

type rssFeed struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Content     string `xml:"encoded"`
	Creator     string `xml:"creator"`
	Author      string `xml:"author"`
	PubDate     string `xml:"pubDate"`
}

// Fetch downloads the configured feed and maps its items.
func (c *RSSConnector) Fetch(ctx context.Context, req Request) ([]domain.IngestedContent, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "ContentTriage/1.0")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.IngestedContent, 0, len(feed.Channel.Items))
	for _, entry := range feed.Channel.Items {
		author := entry.Creator
		if author == "" {
			author = entry.Author
		}

		raw := entry.Content
		if raw == "" {
			raw = entry.Description
		}

		items = append(items, domain.IngestedContent{
			Source:      req.SourceName,
			ContentType: domain.ContentTypeText,
			Title:       entry.Title,
			Summary:     entry.Description,
			RawContent:  raw,
			SourceURL:   entry.Link,
			Author:      author,
			Language:    "en",
			PublishedAt: parsePubDate(entry.PubDate),
		})
	}

	return items, nil
}

func parsePubDate(value string) time.Time {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Now().UTC()
}
