package alphavantage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tase-symbol-finder/internal/types"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestResolveFindsTelAvivListing(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("function") != "SYMBOL_SEARCH" {
			t.Errorf("function = %q", q.Get("function"))
		}
		if q.Get("keywords") != "טבע" {
			t.Errorf("keywords = %q", q.Get("keywords"))
		}
		if q.Get("apikey") != "secret" {
			t.Errorf("apikey = %q", q.Get("apikey"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"bestMatches":[
			{"1. symbol":"TEVA","2. name":"Teva Pharmaceutical","4. region":"United States"},
			{"1. symbol":"TEVA.TA","2. name":"Teva Pharmaceutical","4. region":"Israel"},
			{"1. symbol":"TEVA.TLV","2. name":"Teva","4. region":"Israel"}
		]}`)
	})

	c := NewClient(srv.URL, srv.Client(), 0)
	out := c.Resolve(context.Background(), "טבע", "secret")
	if !out.IsFound() || out.Symbol != "TEVA.TA" {
		t.Errorf("Expected TEVA.TA, got %+v", out)
	}
}

func TestResolveTLVMarker(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bestMatches":[{"1. symbol":"TLV:ESLT"}]}`)
	})

	out := NewClient(srv.URL, srv.Client(), 0).Resolve(context.Background(), "elbit", "k")
	if out.Symbol != "TLV:ESLT" {
		t.Errorf("Expected TLV:ESLT, got %+v", out)
	}
}

func TestResolveNoMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"no tel aviv symbol", `{"bestMatches":[{"1. symbol":"IBM"},{"1. symbol":"IBM.LON"}]}`},
		{"empty list", `{"bestMatches":[]}`},
		{"missing key", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tc.body)
			})
			out := NewClient(srv.URL, srv.Client(), 0).Resolve(context.Background(), "x", "k")
			if out.Status != types.StatusNotFound {
				t.Errorf("Expected not found, got %+v", out)
			}
		})
	}
}

func TestResolveFaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"malformed json", http.StatusOK, `{"bestMatches":[`},
		{"invalid key", http.StatusOK, `{"Error Message":"Invalid API call."}`},
		{"throttled", http.StatusOK, `{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`},
		{"quota", http.StatusOK, `{"Information":"daily rate limit reached"}`},
		{"not an object", http.StatusOK, `["TEVA.TA"]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, tc.body)
			})
			out := NewClient(srv.URL, srv.Client(), 0).Resolve(context.Background(), "x", "k")
			if out.Status != types.StatusFault {
				t.Errorf("Expected fault, got %+v", out)
			}
			if out.Err == nil {
				t.Error("Expected fault to carry a reason")
			}
		})
	}
}

func TestResolveTransportFault(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := NewClient(url, nil, time.Second).Resolve(context.Background(), "x", "k")
	if out.Status != types.StatusFault {
		t.Errorf("Expected fault on closed server, got %+v", out)
	}
}

func TestResolveEmptyKeySendsNothing(t *testing.T) {
	t.Parallel()

	srv, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bestMatches":[{"1. symbol":"TEVA.TA"}]}`)
	})

	out := NewClient(srv.URL, srv.Client(), 0).Resolve(context.Background(), "טבע", "")
	if out.Status != types.StatusNotFound {
		t.Errorf("Expected not found with empty key, got %+v", out)
	}
	if n := atomic.LoadInt32(hits); n != 0 {
		t.Errorf("Expected no requests, got %d", n)
	}
}

func TestWithKeyAndMarkers(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "bound" {
			t.Errorf("apikey = %q", r.URL.Query().Get("apikey"))
		}
		fmt.Fprint(w, `{"bestMatches":[{"1. symbol":"TEVA.TA"},{"1. symbol":"TEVA.XTAE"}]}`)
	})

	c := NewClient(srv.URL, srv.Client(), 0, WithMarkers(".XTAE"))
	out := WithKey(c, "bound").Lookup(context.Background(), "teva")
	if out.Symbol != "TEVA.XTAE" {
		t.Errorf("Expected custom marker match, got %+v", out)
	}
}
