// Package email resolves best-guess corporate addresses through an external
// email-finder service.
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Finder is the engine's view of the email-finder collaborator. An empty
// string with a nil error means "no address known".
type Finder interface {
	FindEmail(ctx context.Context, first, last, domain string) (string, error)
}

// Func adapts a function to Finder for tests.
type Func func(ctx context.Context, first, last, domain string) (string, error)

func (f Func) FindEmail(ctx context.Context, first, last, domain string) (string, error) {
	return f(ctx, first, last, domain)
}

// Cache avoids paying for the same lookup twice. Misses are cached too.
type Cache interface {
	GetEmail(ctx context.Context, first, last, domain string) (email string, ok bool, err error)
	PutEmail(ctx context.Context, first, last, domain, email string) error
}

const defaultHunterEndpoint = "https://api.hunter.io/v2/email-finder"

// HunterClient talks to a Hunter-style email-finder API. Lookup failures are
// soft: the candidate simply ships without an address.
type HunterClient struct {
	APIKey   string
	Endpoint string
	HTTP     *http.Client
	Cache    Cache // optional
	Log      *zap.Logger
}

type hunterResponse struct {
	Data struct {
		Email string `json:"email"`
	} `json:"data"`
	Errors []struct {
		Details string `json:"details"`
	} `json:"errors"`
}

func NewHunterClient(apiKey string, cache Cache, log *zap.Logger) *HunterClient {
	return &HunterClient{
		APIKey:   apiKey,
		Endpoint: defaultHunterEndpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Cache:    cache,
		Log:      log,
	}
}

func (c *HunterClient) FindEmail(ctx context.Context, first, last, domain string) (string, error) {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	domain = strings.ToLower(strings.TrimSpace(domain))
	if c.APIKey == "" || first == "" || domain == "" {
		return "", nil
	}

	if c.Cache != nil {
		if email, ok, err := c.Cache.GetEmail(ctx, first, last, domain); err == nil && ok {
			return email, nil
		}
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultHunterEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("email finder endpoint: %w", err)
	}
	q := u.Query()
	q.Set("domain", domain)
	q.Set("first_name", first)
	q.Set("last_name", last)
	q.Set("api_key", c.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		c.log().Warn("email lookup failed", zap.Error(err))
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log().Warn("email lookup non-200", zap.Int("status", resp.StatusCode))
		return "", nil
	}

	var data hunterResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", nil
	}
	if len(data.Errors) > 0 {
		c.log().Warn("email lookup refused", zap.String("details", data.Errors[0].Details))
		return "", nil
	}

	email := strings.TrimSpace(data.Data.Email)
	if c.Cache != nil {
		// Cache misses as well so the run never re-queries a dead lookup.
		_ = c.Cache.PutEmail(ctx, first, last, domain, email)
	}
	return email, nil
}

func (c *HunterClient) log() *zap.Logger {
	if c.Log != nil {
		return c.Log
	}
	return zap.NewNop()
}
