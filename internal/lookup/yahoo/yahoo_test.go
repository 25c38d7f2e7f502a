package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"tase-symbol-finder/internal/types"
)

type fakeSource struct {
	valid  map[string]bool
	errs   map[string]error
	panics bool
	calls  []string
}

func (f *fakeSource) Exists(_ context.Context, ticker string) (bool, error) {
	f.calls = append(f.calls, ticker)
	if f.panics {
		panic("boom")
	}
	if err, ok := f.errs[ticker]; ok {
		return false, err
	}
	return f.valid[ticker], nil
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single word", "teva", []string{"TEVA.TA", "TEVA"}},
		{"with spaces", "check point", []string{"CHECK POINT.TA", "CHECKPOINT.TA", "CHECK POINT"}},
		{"hebrew is unchanged by upper", "טבע", []string{"טבע.TA", "טבע"}},
		{"blank", "   ", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Candidates(tc.in, DefaultSuffix)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Candidates(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLookupFirstConfirmedCandidateWins(t *testing.T) {
	src := &fakeSource{valid: map[string]bool{"CHECKPOINT.TA": true, "CHECK POINT": true}}
	c := NewClient(src)

	out := c.Lookup(context.Background(), "check point")
	if !out.IsFound() || out.Symbol != "CHECKPOINT.TA" {
		t.Fatalf("Expected CHECKPOINT.TA, got %+v", out)
	}
	if len(src.calls) != 2 {
		t.Errorf("Expected to stop after second candidate, calls=%v", src.calls)
	}
}

func TestLookupNoCandidateConfirmed(t *testing.T) {
	src := &fakeSource{}
	out := NewClient(src).Lookup(context.Background(), "unknown co")
	if out.Status != types.StatusNotFound {
		t.Errorf("Expected not found, got %+v", out)
	}
	if len(src.calls) != 3 {
		t.Errorf("Expected all 3 candidates tried, got %v", src.calls)
	}
}

func TestLookupCandidateErrorIsSkipped(t *testing.T) {
	src := &fakeSource{
		errs:  map[string]error{"TEVA.TA": errors.New("timeout")},
		valid: map[string]bool{"TEVA": true},
	}
	out := NewClient(src).Lookup(context.Background(), "teva")
	if !out.IsFound() || out.Symbol != "TEVA" {
		t.Errorf("Expected TEVA after skipped error, got %+v", out)
	}
}

func TestLookupAllCandidatesErrored(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{errs: map[string]error{"TEVA.TA": boom, "TEVA": boom}}

	out := NewClient(src).Lookup(context.Background(), "teva")
	if out.Status != types.StatusFault {
		t.Fatalf("Expected fault, got %+v", out)
	}
	if !errors.Is(out.Err, boom) {
		t.Errorf("Expected fault to wrap cause, got %v", out.Err)
	}
}

func TestLookupPanicBecomesFault(t *testing.T) {
	out := NewClient(&fakeSource{panics: true}).Lookup(context.Background(), "teva")
	if out.Status != types.StatusFault {
		t.Errorf("Expected fault from panicking source, got %+v", out)
	}
}

func TestLookupCustomSuffix(t *testing.T) {
	src := &fakeSource{valid: map[string]bool{"TEVA.TLV": true}}
	out := NewClient(src, WithSuffix(".TLV")).Lookup(context.Background(), "teva")
	if out.Symbol != "TEVA.TLV" {
		t.Errorf("Expected TEVA.TLV, got %+v", out)
	}
}

func TestAPISource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/finance/quote" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("symbols") {
		case "TEVA.TA":
			fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"TEVA.TA","quoteType":"EQUITY"}],"error":null}}`)
		case "BROKEN.TA":
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		default:
			fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
		}
	}))
	defer srv.Close()

	src := NewAPISource(srv.URL+"/", srv.Client())
	ctx := context.Background()

	if ok, err := src.Exists(ctx, "TEVA.TA"); !ok || err != nil {
		t.Errorf("Expected TEVA.TA to exist, ok=%v err=%v", ok, err)
	}
	if ok, err := src.Exists(ctx, "NOPE.TA"); ok || err != nil {
		t.Errorf("Expected NOPE.TA missing without error, ok=%v err=%v", ok, err)
	}
	if _, err := src.Exists(ctx, "BROKEN.TA"); err == nil {
		t.Error("Expected error for BROKEN.TA")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := src.Exists(cancelled, "TEVA.TA"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected canceled, got %v", err)
	}

	// Resolution through the API backend
	out := NewClient(src).Lookup(ctx, "teva")
	if !out.IsFound() || out.Symbol != "TEVA.TA" {
		t.Errorf("Expected TEVA.TA via API source, got %+v", out)
	}
}

func TestPageSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ticker := strings.Trim(strings.TrimPrefix(r.URL.Path, "/quote/"), "/")
		switch ticker {
		case "TEVA.TA":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><body><h1>Teva</h1><fin-streamer data-symbol="TEVA.TA" data-field="regularMarketPrice">100</fin-streamer></body></html>`)
		case "LOOKUP.TA":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, `<html><body><p>Symbol lookup</p></body></html>`)
		case "DOWN.TA":
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewPageSource(srv.URL+"/quote", srv.Client(), time.Second)
	ctx := context.Background()

	if ok, err := src.Exists(ctx, "TEVA.TA"); !ok || err != nil {
		t.Errorf("Expected TEVA.TA confirmed, ok=%v err=%v", ok, err)
	}
	if ok, err := src.Exists(ctx, "LOOKUP.TA"); ok || err != nil {
		t.Errorf("Expected page without data-symbol to miss, ok=%v err=%v", ok, err)
	}
	if ok, err := src.Exists(ctx, "MISSING.TA"); ok || err != nil {
		t.Errorf("Expected 404 to miss without error, ok=%v err=%v", ok, err)
	}
	if _, err := src.Exists(ctx, "DOWN.TA"); err == nil {
		t.Error("Expected error for 503")
	}
}
