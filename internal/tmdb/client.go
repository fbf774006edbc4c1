// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package tmdb implements the metadata lookup proxy: a thin client for
// The Movie Database (TMDB) that searches for a TV series, fetches the
// first result's detail record best-effort, and returns a normalized
// subset of fields.
//
// The proxy is stateless and uncached: every lookup re-queries the
// provider. It never touches the series store.
//
// API Reference: https://developer.themoviedb.org/reference/search-tv
package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// DefaultBaseURL is the production TMDB API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// publicBaseURL is the root of provider pages the canonical URL points at.
const publicBaseURL = "https://www.themoviedb.org"

// maxErrorBodySize caps how much of an error response body is read back
// for diagnostics.
const maxErrorBodySize = 64 * 1024

// Lookuper is the lookup operation the HTTP handler depends on. It is
// implemented by Client and by the circuit-breaker wrapper.
type Lookuper interface {
	Lookup(ctx context.Context, query, year string) (*TVLookup, error)
}

// Ensure Client implements Lookuper
var _ Lookuper = (*Client)(nil)

// TVLookup is the normalized object a lookup returns: search-sourced
// fields always present, detail-sourced fields defaulted when the
// detail call fails.
type TVLookup struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	FirstAirDate string   `json:"first_air_date"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
	Status       string   `json:"status"`
	Networks     []string `json:"networks"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	EpisodeCount *int     `json:"number_of_episodes,omitempty"`
	URL          string   `json:"url"`
}

// searchResponse is the shape of GET /search/tv.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Overview     string   `json:"overview"`
	FirstAirDate string   `json:"first_air_date"`
	VoteAverage  *float64 `json:"vote_average"`
	PosterPath   *string  `json:"poster_path"`
}

// tvDetail is the subset of GET /tv/{id} the proxy cares about.
type tvDetail struct {
	Status   string `json:"status"`
	Networks []struct {
		Name string `json:"name"`
	} `json:"networks"`
	NumberOfEpisodes *int `json:"number_of_episodes"`
}

// Client talks to the TMDB REST API.
//
// Thread safety: safe for concurrent use; each request creates its own
// HTTP request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a TMDB client. An empty baseURL selects the
// production API; timeout zero defaults to 30 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup searches the provider for query (optionally scoped by year),
// takes the first result, enriches it with the detail record, and
// returns the normalized combination.
//
// Failure semantics:
//   - missing API key: configuration error
//   - search transport/HTTP failure: upstream error
//   - zero search results: not-found error
//   - detail failure: tolerated; detail-sourced fields stay defaulted
func (c *Client) Lookup(ctx context.Context, query, year string) (*TVLookup, error) {
	if c.apiKey == "" {
		return nil, models.NewConfiguration("TMDB API key is not configured")
	}

	search, err := c.searchTV(ctx, query, year)
	if err != nil {
		return nil, err
	}
	if len(search.Results) == 0 {
		return nil, models.NewNotFound("no results for %q", query)
	}
	first := search.Results[0]

	// Detail enrichment is best-effort: a failing detail call must not
	// abort the whole lookup.
	detail, err := c.tvDetail(ctx, first.ID)
	if err != nil {
		logging.Warn().Err(err).Int("tmdb_id", first.ID).Msg("TMDB detail fetch failed, continuing without detail")
		detail = &tvDetail{}
	}

	networks := make([]string, 0, len(detail.Networks))
	for _, n := range detail.Networks {
		networks = append(networks, n.Name)
	}

	return &TVLookup{
		ID:           first.ID,
		Name:         first.Name,
		Overview:     first.Overview,
		FirstAirDate: first.FirstAirDate,
		VoteAverage:  first.VoteAverage,
		Status:       detail.Status,
		Networks:     networks,
		PosterPath:   first.PosterPath,
		EpisodeCount: detail.NumberOfEpisodes,
		URL:          fmt.Sprintf("%s/tv/%d", publicBaseURL, first.ID),
	}, nil
}

// searchTV issues GET /search/tv scoped by query and optional year.
func (c *Client) searchTV(ctx context.Context, query, year string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	if year != "" {
		params.Set("first_air_date_year", year)
	}

	var out searchResponse
	if err := c.getJSON(ctx, "/search/tv", params, &out); err != nil {
		return nil, models.NewUpstream(err, "tmdb search failed: %v", err)
	}
	return &out, nil
}

// tvDetail issues GET /tv/{id}.
func (c *Client) tvDetail(ctx context.Context, id int) (*tvDetail, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var out tvDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/tv/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs a GET against the API and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize of a response body
// for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	return body
}
