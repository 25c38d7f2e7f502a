package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/quote"
)

// APISource checks tickers against the Yahoo Finance quote API
type APISource struct {
	client quote.Client
}

// NewAPISource creates an API-backed source with its own backend, so the
// finance-go package defaults are left alone. An empty baseURL selects
// finance.YFinURL.
func NewAPISource(baseURL string, hc *http.Client) *APISource {
	if baseURL == "" {
		baseURL = finance.YFinURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &APISource{client: quote.Client{B: &finance.BackendConfiguration{
		Type:       finance.YFinBackend,
		URL:        strings.TrimSuffix(baseURL, "/"),
		HTTPClient: hc,
	}}}
}

// Exists reports whether Yahoo returns a quote carrying a symbol for ticker.
// An empty result is a miss; transport and upstream failures are errors.
func (s *APISource) Exists(ctx context.Context, ticker string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	it := s.client.ListP(&quote.Params{
		Params:  finance.Params{Context: &ctx},
		Symbols: []string{ticker},
	})
	for it.Next() {
		if q := it.Quote(); q != nil && strings.TrimSpace(q.Symbol) != "" {
			return true, nil
		}
	}
	if err := it.Err(); err != nil {
		return false, fmt.Errorf("quote %s: %w", ticker, err)
	}
	return false, nil
}
