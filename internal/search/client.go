package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://hn.algolia.com/api/v1"
	DefaultQuery       = "redux"
	DefaultHitsPerPage = 100

	maxResponseBytes = 8 << 20
)

// ErrFetchFailed covers every way a search request can fail: transport
// errors, non-2xx responses and payloads that don't match the schema.
var ErrFetchFailed = errors.New("fetch failed")

// API performs one search request.
type API interface {
	Search(ctx context.Context, term string, page, hitsPerPage int) (ResultPage, error)
}

// Client queries the Hacker News search API over HTTP.
type Client struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

// NewClient returns a Client for baseURL. A zero timeout means requests
// never time out on their own.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Hits *[]Hit `json:"hits"`
	Page *int   `json:"page"`
}

func (c *Client) searchURL(term string, page, hitsPerPage int) string {
	return fmt.Sprintf("%s/search?query=%s&page=%d&hitsPerPage=%d",
		c.BaseURL, url.QueryEscape(term), page, hitsPerPage)
}

// Search fetches one page of hits for term. All failures wrap ErrFetchFailed.
func (c *Client) Search(ctx context.Context, term string, page, hitsPerPage int) (ResultPage, error) {
	if hitsPerPage <= 0 {
		hitsPerPage = DefaultHitsPerPage
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(term, page, hitsPerPage), nil)
	if err != nil {
		return ResultPage{}, fmt.Errorf("%w: creating request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return ResultPage{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return ResultPage{}, fmt.Errorf("%w: search API %d: %s", ErrFetchFailed, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	return decodeResponse(io.LimitReader(resp.Body, maxResponseBytes))
}

func decodeResponse(r io.Reader) (ResultPage, error) {
	var sr searchResponse
	if err := json.NewDecoder(r).Decode(&sr); err != nil {
		return ResultPage{}, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}
	if sr.Hits == nil {
		return ResultPage{}, fmt.Errorf("%w: response has no hits field", ErrFetchFailed)
	}
	if sr.Page == nil {
		return ResultPage{}, fmt.Errorf("%w: response has no page field", ErrFetchFailed)
	}
	for i, h := range *sr.Hits {
		if h.ObjectID == "" {
			return ResultPage{}, fmt.Errorf("%w: hit %d has no objectID", ErrFetchFailed, i)
		}
	}
	return ResultPage{Hits: *sr.Hits, Page: *sr.Page}, nil
}
