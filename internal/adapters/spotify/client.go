// Package spotify implements the track-search provider feeding the analysis
// entry point. Auth uses the client-credentials flow; results are ranked by
// similarity to the query before they reach the caller.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/atwell-labs/syncscore/internal/core/domain"
	"github.com/atwell-labs/syncscore/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
	searchLimit     = 10
)

// Client is an HTTP client for the Spotify search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ports.TrackSearcher = (*Client)(nil)

// Config carries injected provider settings. HTTPClient, when set, bypasses
// the oauth2 transport (used by tests).
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	HTTPClient   *http.Client
}

// NewClient constructs a Spotify client with a client-credentials token
// source wrapped around the transport.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		tokenURL := cfg.TokenURL
		if tokenURL == "" {
			tokenURL = defaultTokenURL
		}
		creds := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
		}
		httpClient = creds.Client(context.Background())
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// SearchTracks looks up candidate tracks for a free-text query and returns
// them best match first.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]domain.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("spotify adapter: empty query")
	}

	searchURL, err := url.Parse(c.baseURL + "/v1/search")
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}
	params := searchURL.Query()
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", fmt.Sprintf("%d", searchLimit))
	searchURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	tracks := make([]domain.Track, 0, len(body.Tracks.Items))
	for _, item := range body.Tracks.Items {
		tracks = append(tracks, item.toDomain())
	}

	rankByQuery(tracks, query)
	return tracks, nil
}

// rankByQuery orders candidates by similarity between the cleaned query and
// each candidate's "artist title" string, best first. Ties keep provider
// order.
func rankByQuery(tracks []domain.Track, query string) {
	target := normalizeSearchInput(query)
	if target == "" {
		return
	}

	scores := make(map[string]float64, len(tracks))
	for _, tr := range tracks {
		candidate := normalizeSearchInput(tr.Artist + " " + tr.Title)
		scores[tr.ID] = similarity(target, candidate)
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return scores[tracks[i].ID] > scores[tracks[j].ID]
	})
}
