package known

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry maps one alias of a company to its ticker symbol
type Entry struct {
	Alias  string `yaml:"alias" json:"alias"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// Table is an ordered, read-only list of alias entries.
// Several aliases may point at the same symbol.
type Table struct {
	entries []Entry
}

// New creates a table holding a private copy of entries
func New(entries []Entry) *Table {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp}
}

// Default returns the built-in table of common Tel Aviv listed companies
func Default() *Table {
	return New(builtin)
}

// Entries returns the entries in table order. The slice is a copy.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Len returns the number of aliases in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// With returns a new table with extra appended after the existing entries
func (t *Table) With(extra ...Entry) *Table {
	merged := make([]Entry, 0, t.Len()+len(extra))
	merged = append(merged, t.Entries()...)
	merged = append(merged, extra...)
	return &Table{entries: merged}
}

// Symbols returns the distinct symbols in first-seen order
func (t *Table) Symbols() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range t.Entries() {
		if !seen[e.Symbol] {
			seen[e.Symbol] = true
			out = append(out, e.Symbol)
		}
	}
	return out
}

type aliasFile struct {
	Aliases []Entry `yaml:"aliases"`
}

// LoadAliases reads additional alias entries from a YAML file of the form
//
//	aliases:
//	  - alias: "אל על"
//	    symbol: ELAL.TA
func LoadAliases(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	var f aliasFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse alias file %s: %w", path, err)
	}

	var errs []error
	entries := make([]Entry, 0, len(f.Aliases))
	for i, e := range f.Aliases {
		e.Alias = strings.TrimSpace(e.Alias)
		e.Symbol = strings.TrimSpace(e.Symbol)
		if e.Alias == "" || e.Symbol == "" {
			errs = append(errs, fmt.Errorf("alias entry %d: alias and symbol are required", i))
			continue
		}
		entries = append(entries, e)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}
