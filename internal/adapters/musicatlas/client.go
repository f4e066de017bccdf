// Package musicatlas implements the metadata gateway against the MusicAtlas
// API. It owns the submit-if-missing protocol: a track the provider has not
// indexed is added, the describe call is retried once, and a still-missing or
// incomplete record is reported as processing rather than as an error.
package musicatlas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

const (
	defaultRetryDelay  = 2 * time.Second
	defaultMaxRetries  = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

// Client is an HTTP client for the MusicAtlas API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	retryDelay  time.Duration // wait between add_track and the describe retry
	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.MetadataProvider = (*Client)(nil)

// Config carries the injected provider settings. Zero durations and counts
// fall back to defaults.
type Config struct {
	BaseURL     string
	APIKey      string
	RetryDelay  time.Duration
	MaxRetries  int
	BaseBackoff time.Duration
	HTTPClient  *http.Client
}

// NewClient constructs a MusicAtlas client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBaseBackoff
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		retryDelay:  retryDelay,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

// GetTrackMetadata obtains a valid TrackMetadata for the pair, submitting the
// track and retrying once when the provider does not know it yet. A
// *ports.ProcessingError return means the caller should poll; any other
// error is a gateway failure.
func (c *Client) GetTrackMetadata(ctx context.Context, artist, title string) (domain.TrackMetadata, error) {
	meta, err := c.describeTrack(ctx, artist, title)

	if errors.Is(err, ports.ErrTrackNotFound) {
		log.Printf("INFO musicatlas adapter: track %q by %q not indexed, submitting", title, artist)
		jobID, addErr := c.addTrack(ctx, artist, title)
		if addErr != nil {
			return domain.TrackMetadata{}, addErr
		}

		if err := sleepWithContext(ctx, c.retryDelay); err != nil {
			return domain.TrackMetadata{}, err
		}

		meta, err = c.describeTrack(ctx, artist, title)
		if errors.Is(err, ports.ErrTrackNotFound) {
			return domain.TrackMetadata{}, &ports.ProcessingError{JobID: jobID}
		}
	}
	if err != nil {
		return domain.TrackMetadata{}, err
	}

	// The record exists but analysis has not produced a tempo yet: submit
	// again to trigger reprocessing and let the caller poll.
	if !meta.Valid() {
		log.Printf("INFO musicatlas adapter: incomplete record for %q by %q, resubmitting", title, artist)
		jobID, addErr := c.addTrack(ctx, artist, title)
		if addErr != nil {
			return domain.TrackMetadata{}, addErr
		}
		return domain.TrackMetadata{}, &ports.ProcessingError{JobID: jobID}
	}

	return meta, nil
}

// JobProgress reports the state of a provider-side analysis job. Idempotent
// and safe to poll.
func (c *Client) JobProgress(ctx context.Context, jobID string) (domain.AnalysisJob, error) {
	progressURL := fmt.Sprintf("%s/api/add_track_progress?job_id=%s", c.baseURL, url.QueryEscape(jobID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, progressURL, nil)
	if err != nil {
		return domain.AnalysisJob{}, fmt.Errorf("musicatlas adapter: build progress request: %w", err)
	}
	c.authorize(req)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.AnalysisJob{}, fmt.Errorf("musicatlas adapter: progress request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AnalysisJob{}, fmt.Errorf("musicatlas adapter: progress status %d", resp.StatusCode)
	}

	var wire jobProgressResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return domain.AnalysisJob{}, fmt.Errorf("musicatlas adapter: progress decode error: %w", err)
	}

	return wire.toDomain(jobID), nil
}

func (c *Client) describeTrack(ctx context.Context, artist, title string) (domain.TrackMetadata, error) {
	body, err := json.Marshal(describeRequest{Artist: artist, Track: title})
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("musicatlas adapter: marshal describe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/describe_track", bytes.NewReader(body))
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("musicatlas adapter: build describe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("musicatlas adapter: describe request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.TrackMetadata{}, &ports.TrackNotFoundError{Artist: artist, Title: title}
	case resp.StatusCode != http.StatusOK:
		return domain.TrackMetadata{}, fmt.Errorf("musicatlas adapter: describe status %d", resp.StatusCode)
	}

	var wire describeResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return domain.TrackMetadata{}, fmt.Errorf("musicatlas adapter: describe decode error: %w", err)
	}

	return wire.toDomain(), nil
}

func (c *Client) addTrack(ctx context.Context, artist, title string) (string, error) {
	body, err := json.Marshal(addTrackRequest{Artist: artist, Title: title})
	if err != nil {
		return "", fmt.Errorf("musicatlas adapter: marshal add request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/add_track", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("musicatlas adapter: build add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return "", fmt.Errorf("musicatlas adapter: add request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("musicatlas adapter: add status %d", resp.StatusCode)
	}

	var wire addTrackResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return "", fmt.Errorf("musicatlas adapter: add decode error: %w", err)
	}

	return wire.JobID, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
