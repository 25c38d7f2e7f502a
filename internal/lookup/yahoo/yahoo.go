package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/ratelimit"
	"tase-symbol-finder/internal/types"
)

// ProviderName labels this provider in logs, metrics and rate limiters
const ProviderName = "yahoo"

// DefaultSuffix is the Yahoo Finance market suffix for Tel Aviv listings
const DefaultSuffix = ".TA"

// QuoteSource reports whether a ticker exists on Yahoo Finance
type QuoteSource interface {
	Exists(ctx context.Context, ticker string) (bool, error)
}

// Candidates returns the tickers to try for a company name, in order:
// upper-cased name with suffix, the same without spaces, then the bare
// upper-cased name. Blank and repeated candidates are dropped.
func Candidates(name, suffix string) []string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return nil
	}
	raw := []string{
		upper + suffix,
		strings.ReplaceAll(upper, " ", "") + suffix,
		upper,
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		if strings.TrimSpace(c) == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Client is Provider A: it guesses tickers from the company name and keeps
// the first one Yahoo Finance confirms
type Client struct {
	source  QuoteSource
	suffix  string
	limiter *ratelimit.RateLimiter
}

var _ interfaces.SymbolLookup = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithSuffix overrides the market suffix
func WithSuffix(suffix string) Option {
	return func(c *Client) {
		c.suffix = suffix
	}
}

// WithRateLimiter gates every candidate check on limiter
func WithRateLimiter(limiter *ratelimit.RateLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a Provider A client over source
func NewClient(source QuoteSource, opts ...Option) *Client {
	c := &Client{
		source: source,
		suffix: DefaultSuffix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup implements interfaces.SymbolLookup.
// A candidate that errors counts as not confirmed. If every candidate
// errored the outcome is a fault so the cause reaches the logs.
func (c *Client) Lookup(ctx context.Context, companyName string) types.Outcome {
	candidates := Candidates(companyName, c.suffix)
	if len(candidates) == 0 {
		return types.Miss()
	}

	var errs []error
	for _, ticker := range candidates {
		if err := c.limiter.Wait(ctx); err != nil {
			return types.Fault(fmt.Errorf("rate limiter: %w", err))
		}

		ok, err := c.check(ctx, ticker)
		if err != nil {
			logger.Debug(ctx, "Candidate ticker check failed",
				"company", companyName,
				"candidate", ticker,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", ticker, err))
			continue
		}
		if ok {
			return types.Found(ticker)
		}
	}

	if len(errs) == len(candidates) {
		return types.Fault(errors.Join(errs...))
	}
	return types.Miss()
}

// check calls the source, turning a panic into an error
func (c *Client) check(ctx context.Context, ticker string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("quote source panic: %v", r)
		}
	}()
	return c.source.Exists(ctx, ticker)
}
