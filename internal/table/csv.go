package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names accepted besides the WHATWG labels known to htmlindex
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"
	EncodingHebrew  = "windows-1255"
)

// ErrUndecodable is returned when neither the primary nor the fallback
// encoding yields a readable table
var ErrUndecodable = errors.New("table could not be decoded")

// ErrEmpty is returned for a file without a header row
var ErrEmpty = errors.New("table has no header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read loads a CSV file, trying primary first and fallback second.
// It returns the encoding that worked. A missing or unreadable file is
// returned as is, without trying the fallback.
func Read(path, primary, fallback string) (*Table, string, error) {
	if primary == "" {
		primary = EncodingUTF8
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read table: %w", err)
	}

	t, primaryErr := parse(raw, primary)
	if primaryErr == nil {
		return t, primary, nil
	}
	if errors.Is(primaryErr, ErrEmpty) {
		return nil, "", fmt.Errorf("read table %s: %w", path, primaryErr)
	}
	if fallback == "" || strings.EqualFold(fallback, primary) {
		return nil, "", fmt.Errorf("read table %s: %w: %s: %v", path, ErrUndecodable, primary, primaryErr)
	}

	t, fallbackErr := parse(raw, fallback)
	if fallbackErr != nil {
		return nil, "", fmt.Errorf("read table %s: %w: %s: %v; %s: %v",
			path, ErrUndecodable, primary, primaryErr, fallback, fallbackErr)
	}
	return t, fallback, nil
}

// Write saves the table as CSV. An empty encoding writes UTF-8 with a
// byte order mark so spreadsheet tools detect Hebrew text.
func Write(path string, t *Table, enc string) error {
	if enc == "" {
		enc = EncodingUTF8BOM
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.Records {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	out, err := encode(buf.Bytes(), enc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".symbols-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

func parse(raw []byte, enc string) (*Table, error) {
	text, err := decode(raw, enc)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	// Hebrew abbreviations such as בע"מ put bare quotes inside fields
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	t := &Table{Header: rows[0], Records: make([]Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		t.Records = append(t.Records, Record(row))
	}
	return t, nil
}

func isUTF8(enc string) bool {
	switch strings.ToLower(strings.ReplaceAll(enc, "_", "-")) {
	case "utf-8", "utf8", "utf-8-sig", "utf8-sig":
		return true
	}
	return false
}

func decode(raw []byte, enc string) ([]byte, error) {
	if isUTF8(enc) {
		text := bytes.TrimPrefix(raw, utf8BOM)
		if !utf8.Valid(text) {
			return nil, errors.New("invalid UTF-8 byte sequence")
		}
		return text, nil
	}

	e, err := lookup(enc)
	if err != nil {
		return nil, err
	}
	text, err := e.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", enc, err)
	}
	return text, nil
}

func encode(text []byte, enc string) ([]byte, error) {
	switch {
	case strings.EqualFold(enc, EncodingUTF8BOM):
		out, err := unicode.UTF8BOM.NewEncoder().Bytes(text)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", enc, err)
		}
		return out, nil
	case isUTF8(enc):
		return text, nil
	}

	e, err := lookup(enc)
	if err != nil {
		return nil, err
	}
	out, err := e.NewEncoder().Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", enc, err)
	}
	return out, nil
}

func lookup(enc string) (encoding.Encoding, error) {
	e, err := htmlindex.Get(enc)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", enc, err)
	}
	return e, nil
}

// ValidEncoding reports whether enc can be used with Read and Write
func ValidEncoding(enc string) bool {
	if enc == "" || isUTF8(enc) {
		return true
	}
	_, err := lookup(enc)
	return err == nil
}
