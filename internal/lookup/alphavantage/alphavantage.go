package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"tase-symbol-finder/internal/api"
	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/ratelimit"
	"tase-symbol-finder/internal/types"
)

// ProviderName labels this provider in logs, metrics and rate limiters
const ProviderName = "alpha_vantage"

// DefaultBaseURL is the Alpha Vantage query endpoint
const DefaultBaseURL = "https://www.alphavantage.co/query"

// DefaultMarkers identify a Tel Aviv listing inside a returned symbol
var DefaultMarkers = []string{".TA", "TLV"}

// noticeKeys are returned instead of results on bad keys, throttling or quota exhaustion
var noticeKeys = []string{"Error Message", "Note", "Information"}

// Client is Provider B: keyword search on Alpha Vantage, keeping the first
// result that looks like a Tel Aviv listing
type Client struct {
	http    *api.Client
	markers []string
	limiter *ratelimit.RateLimiter
	retry   *api.RetryConfig
}

// Option configures a Client
type Option func(*Client)

// WithMarkers overrides the substrings that mark a TASE symbol
func WithMarkers(markers ...string) Option {
	return func(c *Client) {
		if len(markers) > 0 {
			c.markers = markers
		}
	}
}

// WithRateLimiter gates every search on limiter
func WithRateLimiter(limiter *ratelimit.RateLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithRetry retries transport and 5xx failures
func WithRetry(cfg *api.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// NewClient creates a Provider B client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, hc *http.Client, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiOpts := []api.ClientOption{
		api.WithHTTPClient(hc),
		api.WithBaseURL(baseURL),
		api.WithHeader("Accept", "application/json"),
		api.WithLogging(true),
	}
	if hc == nil && timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(timeout))
	}

	c := &Client{
		http:    api.NewClient(apiOpts...),
		markers: DefaultMarkers,
		retry:   &api.RetryConfig{MaxAttempts: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve searches for companyName with apiKey. An empty key is a miss and
// sends nothing. Transport failures, bad payloads and API notices are faults.
func (c *Client) Resolve(ctx context.Context, companyName, apiKey string) types.Outcome {
	name := strings.TrimSpace(companyName)
	if apiKey == "" || name == "" {
		return types.Miss()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return types.Fault(fmt.Errorf("rate limiter: %w", err))
	}

	q := url.Values{}
	q.Set("function", "SYMBOL_SEARCH")
	q.Set("keywords", name)
	q.Set("apikey", apiKey)

	req := api.NewRequest(http.MethodGet, "").WithContext(ctx).WithQuery(q)
	resp, err := c.http.DoWithRetry(req, c.retry)
	if err != nil {
		return types.Fault(fmt.Errorf("symbol search: %w", err))
	}

	var jobj any
	if err := resp.ParseJSON(&jobj); err != nil {
		return types.Fault(fmt.Errorf("symbol search: %w", err))
	}
	root, ok := jobj.(map[string]any)
	if !ok {
		return types.Faultf("symbol search: unexpected response type %T", jobj)
	}
	for _, k := range noticeKeys {
		if msg, ok := root[k]; ok {
			return types.Faultf("symbol search: %s: %v", k, msg)
		}
	}

	symbol, ok := c.pick(root)
	if !ok {
		logger.Debug(ctx, "No Tel Aviv listing in search results", "company", name)
		return types.Miss()
	}
	return types.Found(symbol)
}

// pick returns the first best-match symbol containing a marker
func (c *Client) pick(root map[string]any) (string, bool) {
	jval, err := jsonpath.Get("$.bestMatches", root)
	if err != nil {
		return "", false
	}
	matches, ok := jval.([]any)
	if !ok {
		return "", false
	}

	for _, m := range matches {
		entry, ok := m.(map[string]any)
		if !ok {
			continue
		}
		symbol, _ := entry["1. symbol"].(string)
		if symbol == "" {
			continue
		}
		for _, marker := range c.markers {
			if strings.Contains(symbol, marker) {
				return symbol, true
			}
		}
	}
	return "", false
}

// WithKey binds a credential so the client fits the resolution chain
func WithKey(c *Client, apiKey string) interfaces.SymbolLookup {
	return interfaces.SymbolLookupFunc(func(ctx context.Context, companyName string) types.Outcome {
		return c.Resolve(ctx, companyName, apiKey)
	})
}
