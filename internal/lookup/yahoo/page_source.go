package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"tase-symbol-finder/internal/api"
)

// DefaultPageBaseURL is where quote pages live
const DefaultPageBaseURL = "https://finance.yahoo.com/quote/"

// PageSource checks tickers by scraping the Yahoo Finance quote page.
// A page is a confirmation when it carries a data-symbol element for the ticker.
type PageSource struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewPageSource creates a scraping source. An empty baseURL selects
// DefaultPageBaseURL.
func NewPageSource(baseURL string, hc *http.Client, timeout time.Duration) *PageSource {
	if baseURL == "" {
		baseURL = DefaultPageBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PageSource{baseURL: baseURL, httpClient: hc, timeout: timeout}
}

// Exists visits the quote page for ticker. 404 means the ticker is unknown;
// other HTTP failures are errors.
func (s *PageSource) Exists(ctx context.Context, ticker string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
	)
	// A shared client keeps its own timeout
	if s.httpClient != nil {
		c.SetClient(s.httpClient)
	} else {
		c.SetRequestTimeout(s.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		for k, v := range api.YahooFinanceHeaders() {
			r.Headers.Set(k, v)
		}
	})

	found := false
	c.OnHTML("body", func(e *colly.HTMLElement) {
		e.DOM.Find("[data-symbol]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(sel.AttrOr("data-symbol", "")), ticker) {
				found = true
				return false
			}
			return true
		})
	})

	notFound := false
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode == http.StatusNotFound {
			notFound = true
		}
	})

	pageURL := s.baseURL + url.PathEscape(ticker) + "/"
	err := c.Visit(pageURL)
	c.Wait()
	if notFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	return found, nil
}
