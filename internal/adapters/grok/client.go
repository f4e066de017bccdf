// Package grok provides an adapter for the xAI chat-completions service.
// It asks a music-supervisor persona for narrative sync-licensing feedback
// and parses the structured JSON response into domain Feedback, tolerating
// markdown wrapping around the payload.
package grok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.x.ai"
	defaultModel   = "grok-3"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

var _ ports.FeedbackGenerator = (*Client)(nil)

type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: httpClient,
	}
}

// GenerateFeedback requests supervisor commentary for the four scored
// categories. Errors here are non-fatal by contract: the caller falls back
// to the scoring engine's built-in explanations.
func (c *Client) GenerateFeedback(ctx context.Context, track domain.Track, meta domain.TrackMetadata, matchedGenre string) (domain.Feedback, error) {
	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   1000,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(track, meta, matchedGenre)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("grok adapter: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("grok adapter: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("grok adapter: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Feedback{}, fmt.Errorf("grok adapter: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.Feedback{}, fmt.Errorf("grok adapter: decode response: %w", err)
	}
	if parsed.Error.Message != "" {
		return domain.Feedback{}, fmt.Errorf("grok adapter: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return domain.Feedback{}, fmt.Errorf("grok adapter: no choices in response")
	}

	feedback, err := parseFeedback(parsed.Choices[0].Message.Content)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("grok adapter: %w", err)
	}

	return feedback, nil
}

// parseFeedback extracts the JSON object from a possibly markdown-wrapped
// completion. The model is prompted to return bare JSON but is not
// guaranteed to: strip code fences, then take the substring between the
// first '{' and the last '}'.
func parseFeedback(content string) (domain.Feedback, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return domain.Feedback{}, fmt.Errorf("no JSON object in completion")
	}
	cleaned = cleaned[start : end+1]

	var feedback domain.Feedback
	if err := json.Unmarshal([]byte(cleaned), &feedback); err != nil {
		return domain.Feedback{}, fmt.Errorf("parse completion: %w", err)
	}

	if feedback == (domain.Feedback{}) {
		return domain.Feedback{}, fmt.Errorf("completion parsed to empty feedback")
	}

	return feedback, nil
}
