package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"outreach-engine/internal/domain"
)

const defaultSerpEndpoint = "https://serpapi.com/search.json"

// SerpClient queries a SerpAPI-compatible endpoint (engine=google). A missing
// credential fails closed: every search returns empty results.
type SerpClient struct {
	APIKey   string
	Endpoint string // defaults to the public SerpAPI URL
	PageSize int    // results per query, default 10

	HTTP    *http.Client
	Limiter *rate.Limiter
	Log     *zap.Logger
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

func NewSerpClient(apiKey string, log *zap.Logger) *SerpClient {
	return &SerpClient{
		APIKey:   apiKey,
		Endpoint: defaultSerpEndpoint,
		PageSize: 10,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		// SerpAPI free tiers throttle hard; stay polite.
		Limiter: rate.NewLimiter(rate.Limit(1), 2),
		Log:     log,
	}
}

func (c *SerpClient) Search(ctx context.Context, query string) ([]domain.RawResult, error) {
	if c.APIKey == "" {
		c.log().Warn("search credential missing, returning empty results")
		return nil, nil
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultSerpEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("serp endpoint: %w", err)
	}
	size := c.PageSize
	if size <= 0 {
		size = 10
	}
	q := u.Query()
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("num", strconv.Itoa(size))
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		c.log().Warn("search request failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log().Warn("search returned non-200", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var data serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		c.log().Warn("search response undecodable", zap.Error(err))
		return nil, nil
	}

	out := make([]domain.RawResult, 0, len(data.OrganicResults))
	for _, r := range data.OrganicResults {
		if !profileURL(r.Link) {
			continue
		}
		out = append(out, domain.RawResult{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return out, nil
}

func (c *SerpClient) log() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}
