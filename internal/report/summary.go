package report

import (
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"tase-symbol-finder/internal/enrich"
	"tase-symbol-finder/internal/table"
)

// Sample is one resolved row shown in the summary
type Sample struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Method string `json:"search_method"`
}

// MethodCount is the number of rows resolved by one search method
type MethodCount struct {
	Method string `json:"search_method"`
	Count  int    `json:"count"`
}

// Summary describes the outcome of one enrichment run
type Summary struct {
	RunID         string        `json:"run_id"`
	InputPath     string        `json:"input_path,omitempty"`
	OutputPath    string        `json:"output_path,omitempty"`
	Encoding      string        `json:"input_encoding,omitempty"`
	Total         int           `json:"total"`
	Found         int           `json:"found"`
	NotFound      int           `json:"not_found"`
	SuccessRate   string        `json:"success_rate_pct"`
	ByMethod      []MethodCount `json:"by_method"`
	FoundSamples  []Sample      `json:"found_samples"`
	NotFoundNames []string      `json:"not_found_names"`
	Duration      time.Duration `json:"-"`
	DurationSecs  float64       `json:"duration_seconds"`
}

// Build summarizes an enriched table. Rows whose symbol equals notFound
// count as unresolved. At most samples found rows and samples unresolved
// names are kept.
func Build(tbl *table.Table, nameColumn, notFound string, samples int) *Summary {
	s := &Summary{
		RunID:         ulid.Make().String(),
		Total:         tbl.Len(),
		ByMethod:      []MethodCount{},
		FoundSamples:  []Sample{},
		NotFoundNames: []string{},
	}

	nameCol := tbl.ColumnIndex(nameColumn)
	symCol := tbl.ColumnIndex(enrich.SymbolColumn)
	methodCol := tbl.ColumnIndex(enrich.MethodColumn)

	counts := make(map[string]int)
	for _, r := range tbl.Records {
		name := r.Get(nameCol)
		symbol := r.Get(symCol)
		if symbol == "" || symbol == notFound {
			s.NotFound++
			if len(s.NotFoundNames) < samples {
				s.NotFoundNames = append(s.NotFoundNames, name)
			}
			continue
		}

		s.Found++
		method := r.Get(methodCol)
		counts[method]++
		if len(s.FoundSamples) < samples {
			s.FoundSamples = append(s.FoundSamples, Sample{Name: name, Symbol: symbol, Method: method})
		}
	}

	for m, n := range counts {
		s.ByMethod = append(s.ByMethod, MethodCount{Method: m, Count: n})
	}
	sort.Slice(s.ByMethod, func(i, j int) bool {
		if s.ByMethod[i].Count != s.ByMethod[j].Count {
			return s.ByMethod[i].Count > s.ByMethod[j].Count
		}
		return s.ByMethod[i].Method < s.ByMethod[j].Method
	})

	s.SuccessRate = SuccessRate(s.Found, s.Total)
	return s
}

// SuccessRate formats found/total as a percentage with one decimal place
func SuccessRate(found, total int) string {
	if total == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(int64(found)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 1).
		StringFixed(1)
}

// WithRun records run metadata on the summary
func (s *Summary) WithRun(input, output, encoding string, d time.Duration) *Summary {
	s.InputPath = input
	s.OutputPath = output
	s.Encoding = encoding
	s.Duration = d
	s.DurationSecs = d.Round(time.Millisecond).Seconds()
	return s
}
