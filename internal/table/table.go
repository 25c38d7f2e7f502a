package table

import (
	"strings"
)

// Record is one row, aligned with the table header
type Record []string

// Get returns the cell at i, or "" when the row is short
func (r Record) Get(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Table is an in-memory CSV table with a header row
type Table struct {
	Header  []string
	Records []Record
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Records)
}

// ColumnIndex returns the index of the named column, or -1.
// Surrounding whitespace in header cells is ignored.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	want := strings.TrimSpace(name)
	for i, h := range t.Header {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	return -1
}

// SetColumn returns the index of the named column, appending it to the
// header when missing
func (t *Table) SetColumn(name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	return len(t.Header) - 1
}

// Set writes value into row/col, padding a short row with empty cells
func (t *Table) Set(row, col int, value string) {
	r := t.Records[row]
	for len(r) <= col {
		r = append(r, "")
	}
	r[col] = value
	t.Records[row] = r
}

// Clone returns a deep copy
func (t *Table) Clone() *Table {
	out := &Table{
		Header:  append([]string(nil), t.Header...),
		Records: make([]Record, len(t.Records)),
	}
	for i, r := range t.Records {
		out.Records[i] = append(Record(nil), r...)
	}
	return out
}

// Head returns up to n leading rows
func (t *Table) Head(n int) []Record {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	if n < 0 {
		n = 0
	}
	return t.Records[:n]
}
