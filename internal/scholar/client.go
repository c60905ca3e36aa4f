// Package scholar searches the Semantic Scholar Graph API for academic
// papers matching a formulated query.
package scholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lukawang/emoscope-go/internal/config"
	apperrors "github.com/lukawang/emoscope-go/internal/errors"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
)

const (
	// scholarAPIBaseURL is the Semantic Scholar Graph API endpoint.
	scholarAPIBaseURL = "https://api.semanticscholar.org"

	// searchLimit is how many papers one search returns.
	searchLimit = 10

	// searchFields are the paper fields requested from the API.
	searchFields = "title,authors,year,url,abstract"
)

// Cache stores serialized search results per query.
type Cache interface {
	GetPapers(ctx context.Context, query string) ([]byte, bool, error)
	PutPapers(ctx context.Context, query string, papers []byte) error
}

// Client searches Semantic Scholar. Identical in-flight queries are
// collapsed into one upstream request, and results are cached per query.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	group      singleflight.Group
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Semantic Scholar client. baseURL falls back to the
// public API when empty; apiKey is optional and raises rate limits when set.
// cache may be nil to disable caching.
func NewClient(baseURL, apiKey string, cache Cache, log *logger.Logger, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = scholarAPIBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: config.ScholarRequest,
		},
		cache:   cache,
		log:     log.WithComponent("scholar"),
		metrics: m,
	}
}

// scholarResponse is the Graph API search response.
type scholarResponse struct {
	Total int            `json:"total"`
	Data  []scholarPaper `json:"data"`
}

type scholarPaper struct {
	Title   string          `json:"title"`
	Year    *int            `json:"year"`
	URL     string          `json:"url"`
	Authors []scholarAuthor `json:"authors"`
}

type scholarAuthor struct {
	Name string `json:"name"`
}

// Search returns papers matching query. Results come from the cache when a
// fresh entry exists; otherwise one upstream request is made per distinct
// query, shared across concurrent callers.
func (c *Client) Search(ctx context.Context, query string) ([]Paper, error) {
	if query == "" {
		return nil, apperrors.ErrEmptyQuery
	}

	if c.cache != nil {
		if papers, ok := c.cachedPapers(ctx, query); ok {
			c.metrics.RecordCacheHit("paper")
			return papers, nil
		}
		c.metrics.RecordCacheMiss("paper")
	}

	result, err, shared := c.group.Do(query, func() (any, error) {
		return c.search(ctx, query)
	})
	if shared {
		c.metrics.RecordSingleflightDedup()
	}
	if err != nil {
		return nil, err
	}

	return result.([]Paper), nil
}

func (c *Client) cachedPapers(ctx context.Context, query string) ([]Paper, bool) {
	payload, ok, err := c.cache.GetPapers(ctx, query)
	if err != nil {
		c.log.WithError(err).Warn("Paper cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var papers []Paper
	if err := json.Unmarshal(payload, &papers); err != nil {
		c.log.WithError(err).Warn("Paper cache entry is corrupt, refetching")
		return nil, false
	}
	return papers, true
}

func (c *Client) search(ctx context.Context, query string) ([]Paper, error) {
	start := time.Now()
	papers, err := c.searchOnce(ctx, query)
	duration := time.Since(start).Seconds()

	if err != nil {
		c.metrics.RecordScholarRequest("error", duration)
		return nil, err
	}
	c.metrics.RecordScholarRequest("success", duration)

	if c.cache != nil {
		if payload, marshalErr := json.Marshal(papers); marshalErr == nil {
			if cacheErr := c.cache.PutPapers(ctx, query, payload); cacheErr != nil {
				c.log.WithError(cacheErr).Warn("Paper cache write failed")
			}
		}
	}

	return papers, nil
}

func (c *Client) searchOnce(ctx context.Context, query string) ([]Paper, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", searchLimit)},
		"fields": {searchFields},
	}

	reqURL := fmt.Sprintf("%s/graph/v1/paper/search?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned HTTP %d", resp.StatusCode)
	}

	var sr scholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	papers := make([]Paper, 0, len(sr.Data))
	for _, p := range sr.Data {
		papers = append(papers, normalizePaper(p))
	}
	return papers, nil
}

// normalizePaper fills the defaults for absent fields so the report shape
// is stable regardless of upstream gaps.
func normalizePaper(p scholarPaper) Paper {
	paper := Paper{
		Title:   p.Title,
		Year:    p.Year,
		URL:     p.URL,
		Authors: make([]string, 0, len(p.Authors)),
	}
	if paper.Title == "" {
		paper.Title = "Untitled"
	}
	if paper.URL == "" {
		paper.URL = "#"
	}
	for _, a := range p.Authors {
		paper.Authors = append(paper.Authors, a.Name)
	}
	return paper
}
