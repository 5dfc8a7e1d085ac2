package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"outreach-engine/internal/domain"
)

const ddgEndpoint = "https://duckduckgo.com/html/"

// DDGClient scrapes the DuckDuckGo HTML endpoint. Keyless fallback when no
// SerpAPI credential is configured; same fail-soft contract.
type DDGClient struct {
	Endpoint string
	HTTP     *http.Client
	Limiter  *rate.Limiter
	Log      *zap.Logger
}

func NewDDGClient(log *zap.Logger) *DDGClient {
	return &DDGClient{
		Endpoint: ddgEndpoint,
		HTTP:     &http.Client{Timeout: 12 * time.Second},
		Limiter:  rate.NewLimiter(rate.Limit(0.5), 1),
		Log:      log,
	}
}

func (c *DDGClient) Search(ctx context.Context, query string) ([]domain.RawResult, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = ddgEndpoint
	}
	u := endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 12 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		c.log().Warn("ddg request failed", zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log().Warn("ddg returned non-2xx", zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil
	}

	var out []domain.RawResult
	doc.Find("div.result").Each(func(_ int, s *goquery.Selection) {
		a := s.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		target := decodeDDGRedirect(href)
		if !profileURL(target) {
			return
		}
		out = append(out, domain.RawResult{
			Title:   cleanText(a.Text()),
			URL:     target,
			Snippet: cleanText(s.Find(".result__snippet").Text()),
		})
	})
	return out, nil
}

func (c *DDGClient) log() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}

// decodeDDGRedirect unwraps DDG's /l/?uddg=<urlencoded> links.
func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// domainBlocklist keeps job boards and aggregators from being mistaken for a
// company's own website.
var domainBlocklist = []string{
	"linkedin.com", "indeed.com", "glassdoor.com", "ziprecruiter.com",
	"monster.com", "wikipedia.org", "crunchbase.com", "bloomberg.com",
	"levels.fyi", "greenhouse.io", "lever.co", "workday.com",
}

// FindCompanyDomain discovers a company's website domain by scraping an
// "official website" search, skipping aggregators. Returns "" softly on any
// failure.
func (c *DDGClient) FindCompanyDomain(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = ddgEndpoint
	}
	query := fmt.Sprintf("%s official website", company)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 12 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil
	}

	var best string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		host := hostFromURL(decodeDDGRedirect(href))
		if host == "" {
			return true
		}
		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if blockedDomain(host) {
			return true
		}
		best = host
		return false // first good domain wins
	})
	return best, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func blockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}
