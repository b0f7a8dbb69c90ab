package gbooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"traduce/internal/books"
)

// MaxResultsLimit is the largest page size the volumes endpoint accepts.
const MaxResultsLimit = 40

// ErrUnavailable marks transport failures and non-200 catalog responses,
// quota and key rejections included. Callers treat these as transient and
// retry the investigation later.
var ErrUnavailable = errors.New("catalog unavailable")

// IndustryIdentifier is one entry of a volume's identifier list.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// VolumeInfo carries the bibliographic fields of a catalog volume.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
}

// Volume is a single search hit.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// Response models the volumes search payload.
type Response struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// SearchOptions narrows a volumes search.
type SearchOptions struct {
	// Language restricts results to a two-letter ISO-639 code.
	Language string
	// MaxResults caps the page size. Zero means MaxResultsLimit.
	MaxResults int
}

// Searcher defines the catalog operations used by the investigation engine.
type Searcher interface {
	SearchVolumes(ctx context.Context, query Query, opts SearchOptions) (*Response, error)
}

// Client provides access to a Google Books style volumes API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a catalog client. The API key is optional; the public volumes
// endpoint serves unauthenticated requests at a lower quota.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("catalog base url required")
	}
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchVolumes performs a volumes search.
func (c *Client) SearchVolumes(ctx context.Context, query Query, opts SearchOptions) (*Response, error) {
	encoded := query.Encode()
	if encoded == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/volumes")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("q", encoded)
	params.Set("printType", "books")
	params.Set("orderBy", "relevance")
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > MaxResultsLimit {
		maxResults = MaxResultsLimit
	}
	params.Set("maxResults", strconv.Itoa(maxResults))
	if opts.Language != "" {
		params.Set("langRestrict", opts.Language)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("execute request (latency=%v): %w: %w", latency, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search returned %d (latency=%v): %w", resp.StatusCode, latency, ErrUnavailable)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return &payload, nil
}

// Candidate converts the volume into a candidate record. It returns false
// for volumes too malformed to score, currently those without a title.
func (v Volume) Candidate() (books.Candidate, bool) {
	info := v.VolumeInfo
	title := strings.TrimSpace(info.Title)
	if title == "" {
		return books.Candidate{}, false
	}
	candidate := books.Candidate{
		VolumeID:   strings.TrimSpace(v.ID),
		Title:      title,
		Subtitle:   strings.TrimSpace(info.Subtitle),
		Authors:    trimAll(info.Authors),
		Publisher:  strings.TrimSpace(info.Publisher),
		Year:       publishedYear(info.PublishedDate),
		Categories: trimAll(info.Categories),
		Language:   strings.TrimSpace(info.Language),
	}
	for _, id := range info.IndustryIdentifiers {
		normalized := books.NormalizeISBN(id.Identifier)
		if normalized == "" {
			continue
		}
		switch id.Type {
		case "ISBN_13":
			candidate.ISBN13 = normalized
		case "ISBN_10":
			candidate.ISBN10 = normalized
		}
	}
	return candidate, true
}

// publishedYear extracts the year from a catalog date, which may be "2006",
// "2006-07" or "2006-07-15".
func publishedYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

func trimAll(values []string) []string {
	var out []string
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
