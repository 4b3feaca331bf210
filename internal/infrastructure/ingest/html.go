package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ContentTriage/internal/domain"
)

// Selector keys understood by the HTML listing connector.
const (
	selectorItem    = "item"
	selectorTitle   = "title"
	selectorLink    = "link"
	selectorSummary = "summary"
)

// HTMLListConnector scrapes listing pages whose structure is described by
// per-source CSS selectors.
type HTMLListConnector struct {
	client *http.Client
}

// NewHTMLListConnector wires an HTTP client; a nil client gets a sane default.
func NewHTMLListConnector(client *http.Client) *HTMLListConnector {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTMLListConnector{client: client}
}

// Name identifies the connector inside the registry.
func (c *HTMLListConnector) Name() string {
	return "html"
}

// Fetch downloads the listing page and extracts one item per matched node.
func (c *HTMLListConnector) Fetch(ctx context.Context, req Request) ([]domain.IngestedContent, error) {
	itemSel := req.Selectors[selectorItem]
	if itemSel == "" {
		return nil, fmt.Errorf("source %s: missing %q selector", req.SourceName, selectorItem)
	}

	doc, err := c.fetchDocument(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.SourceName, err)
	}

	base, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("source %s: invalid url: %w", req.SourceName, err)
	}

	var items []domain.IngestedContent
	doc.Find(itemSel).Each(func(_ int, node *goquery.Selection) {
		title := strings.TrimSpace(node.Find(req.Selectors[selectorTitle]).First().Text())
		summary := strings.TrimSpace(node.Find(req.Selectors[selectorSummary]).First().Text())

		href, _ := node.Find(req.Selectors[selectorLink]).First().Attr("href")
		link := resolveLink(base, href)

		items = append(items, domain.IngestedContent{
			Source:      req.SourceName,
			ContentType: domain.ContentTypeText,
			Title:       title,
			Summary:     summary,
			RawContent:  summary,
			SourceURL:   link,
			Language:    "en",
			PublishedAt: time.Now().UTC(),
		})
	})

	return items, nil
}

func (c *HTMLListConnector) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ContentTriage/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func resolveLink(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
