package fuzzy

import (
	"context"
	"math"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/cases"

	"tase-symbol-finder/internal/interfaces"
	"tase-symbol-finder/internal/known"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/types"
)

// DefaultThreshold is the minimum partial-ratio score accepted as a match
const DefaultThreshold = 80

var folder = cases.Fold()

// PartialRatio scores how well the shorter string matches the best aligned
// substring of the longer one, from 0 to 100. Each window scores
// 2*M/(len(short)+len(window)) where M is the longest common subsequence,
// so a dropped or added letter costs one edit rather than two. Windows
// running past the end of the longer string are truncated. Comparison is
// case-insensitive. Containment scores 100; an empty argument scores 0.
func PartialRatio(a, b string) int {
	ra := []rune(folder.String(a))
	rb := []rune(folder.String(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	n := len(short)
	s := string(short)
	best := 0
	for i := range long {
		window := long[i:min(i+n, len(long))]
		total := n + len(window)

		// Indel distance is never below Levenshtein distance, which bounds
		// the window score from above without the quadratic LCS.
		d := fuzzy.LevenshteinDistance(s, string(window))
		if ratio(total-d, total) <= best {
			continue
		}

		score := ratio(2*lcs(short, window), total)
		if score > best {
			best = score
		}
	}
	return best
}

// ratio is 100*matched/total, rounded half to even
func ratio(matched, total int) int {
	return int(math.RoundToEven(100 * float64(matched) / float64(total)))
}

// lcs returns the length of the longest common subsequence of a and b
func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// BestMatch returns the symbol of the highest-scoring entry for query.
// The first entry to reach the top score wins ties. ok is false when the
// table is empty or the top score is below threshold.
func BestMatch(query string, entries []known.Entry, threshold int) (symbol string, score int, ok bool) {
	bestIdx := -1
	for i, e := range entries {
		s := PartialRatio(query, e.Alias)
		if bestIdx < 0 || s > score {
			bestIdx, score = i, s
		}
	}
	if bestIdx < 0 || score < threshold {
		return "", score, false
	}
	return entries[bestIdx].Symbol, score, true
}

// Matcher resolves names against a known-symbol table
type Matcher struct {
	table     *known.Table
	threshold int
}

var _ interfaces.SymbolLookup = (*Matcher)(nil)

// NewMatcher creates a matcher. threshold <= 0 selects DefaultThreshold.
func NewMatcher(table *known.Table, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{table: table, threshold: threshold}
}

// Lookup implements interfaces.SymbolLookup
func (m *Matcher) Lookup(ctx context.Context, companyName string) types.Outcome {
	name := strings.TrimSpace(companyName)
	if name == "" {
		return types.Miss()
	}

	symbol, score, ok := BestMatch(name, m.table.Entries(), m.threshold)
	logger.Debug(ctx, "Known table match",
		"company", name,
		"score", score,
		"threshold", m.threshold,
		"matched", ok,
	)
	if !ok {
		return types.Miss()
	}
	return types.Found(symbol)
}
