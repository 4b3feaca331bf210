// Package llm implements the analysis service port on top of an
// OpenAI-compatible chat-completion API (Groq-hosted models).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ContentTriage/internal/config"
	"ContentTriage/internal/domain"
	"ContentTriage/internal/ports"
)

// maxContentChars bounds the content submitted per request. Truncation is
// silent; oversized payloads are not an error.
const maxContentChars = 4000

const systemPrompt = "You are an expert content strategist for a tech/business brand. " +
	"Verify constraint: Output valid JSON only."

const formatInstructions = `Return a JSON object with:
- category: one of [technology, startup, ai, business, marketing, other]
- content_quality_score: 0-100
- engagement_score: 0-100
- virality_probability: 0-100
- recommended_platforms: list of strings
- content_type_recommendation: string
- reasoning: string explanation
- rewrite_needed: boolean

Respond with the JSON object only, no surrounding prose.`

// GroqClient implements ports.Analyzer against a chat-completion endpoint.
type GroqClient struct {
	endpoint    string
	model       string
	apiKey      string
	temperature float64
	httpClient  *http.Client
}

var _ ports.Analyzer = (*GroqClient)(nil)

// NewGroqClient builds a client from configuration.
func NewGroqClient(cfg config.GroqConfig) *GroqClient {
	return &GroqClient{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze submits one content payload for strategic-value assessment and
// returns the parsed, validated result.
func (c *GroqClient) Analyze(ctx context.Context, content string) (*domain.AnalysisResult, error) {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return nil, fmt.Errorf("analysis client misconfigured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(content)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("analysis service error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("response contains no choices")
	}

	return parseAnalysis(parsed.Choices[0].Message.Content)
}

func buildPrompt(content string) string {
	return fmt.Sprintf("Analyze the following content for strategic value.\n\nContent: %s\n\n%s",
		truncate(content, maxContentChars), formatInstructions)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// parseAnalysis turns the raw model output into a validated AnalysisResult.
// Models occasionally wrap the JSON in a markdown fence; that wrapper is
// tolerated, everything else must conform strictly.
func parseAnalysis(raw string) (*domain.AnalysisResult, error) {
	payload := stripFence(raw)

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("parse analysis output: %w", err)
	}

	if !domain.ValidCategory(result.Category) {
		return nil, fmt.Errorf("invalid category %q", result.Category)
	}
	for name, score := range map[string]int{
		"content_quality_score": result.QualityScore,
		"engagement_score":      result.EngagementScore,
		"virality_probability":  result.ViralityScore,
	} {
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("%s out of range: %d", name, score)
		}
	}

	result.Raw = payload
	return &result, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
