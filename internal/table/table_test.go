package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const hebrewCSV = "שם,ענף\nבנק הפועלים,בנקים\nטבע,פארמה\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadUTF8WithBOM(t *testing.T) {
	path := writeFile(t, "in.csv", append([]byte{0xEF, 0xBB, 0xBF}, hebrewCSV...))

	tbl, enc, err := Read(path, EncodingUTF8, EncodingHebrew)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if enc != EncodingUTF8 {
		t.Errorf("Expected utf-8, got %s", enc)
	}
	if tbl.Header[0] != "שם" {
		t.Errorf("Expected BOM stripped from header, got %q", tbl.Header[0])
	}
	if tbl.Len() != 2 || tbl.Records[1].Get(0) != "טבע" {
		t.Errorf("Unexpected records: %v", tbl.Records)
	}
}

func TestReadBareQuotes(t *testing.T) {
	path := writeFile(t, "in.csv", []byte("שם\nבנק הפועלים בע\"מ\n"))

	tbl, _, err := Read(path, EncodingUTF8, EncodingHebrew)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := tbl.Records[0].Get(0); got != `בנק הפועלים בע"מ` {
		t.Errorf("Expected quote kept in field, got %q", got)
	}
}

func TestReadFallsBackToWindows1255(t *testing.T) {
	encoded, err := charmap.Windows1255.NewEncoder().Bytes([]byte(hebrewCSV))
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "legacy.csv", encoded)

	tbl, enc, err := Read(path, EncodingUTF8, "cp1255")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if enc != "cp1255" {
		t.Errorf("Expected cp1255, got %s", enc)
	}
	if tbl.ColumnIndex("שם") != 0 {
		t.Errorf("Expected decoded Hebrew header, got %v", tbl.Header)
	}
	if got := tbl.Records[0].Get(0); got != "בנק הפועלים" {
		t.Errorf("Expected decoded company name, got %q", got)
	}
}

func TestReadUndecodable(t *testing.T) {
	encoded, _ := charmap.Windows1255.NewEncoder().Bytes([]byte(hebrewCSV))
	path := writeFile(t, "legacy.csv", encoded)

	_, _, err := Read(path, EncodingUTF8, "")
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("Expected ErrUndecodable without fallback, got %v", err)
	}

	bad := writeFile(t, "bad.csv", []byte("a,\"b\nc"))
	_, _, err = Read(bad, EncodingUTF8, EncodingHebrew)
	if !errors.Is(err, ErrUndecodable) {
		t.Errorf("Expected ErrUndecodable when both attempts fail, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.csv"), EncodingUTF8, EncodingHebrew)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	_, _, err := Read(writeFile(t, "empty.csv", nil), EncodingUTF8, EncodingHebrew)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Expected ErrEmpty, got %v", err)
	}
}

func TestWriteRoundTripKeepsBOM(t *testing.T) {
	tbl := &Table{
		Header:  []string{"שם", "Symbol"},
		Records: []Record{{"טבע", "TEVA.TA"}, {"חברה, עם פסיק", "not found"}},
	}
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := Write(path, tbl, ""); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Expected UTF-8 BOM at start of output")
	}

	back, _, err := Read(path, EncodingUTF8BOM, "")
	if err != nil {
		t.Fatalf("Read back failed: %v", err)
	}
	if !reflect.DeepEqual(back, tbl) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", back, tbl)
	}
}

func TestWriteWindows1255(t *testing.T) {
	tbl := &Table{Header: []string{"שם"}, Records: []Record{{"בזק"}}}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(path, tbl, EncodingHebrew); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	back, enc, err := Read(path, EncodingUTF8, EncodingHebrew)
	if err != nil {
		t.Fatal(err)
	}
	if enc != EncodingHebrew || back.Records[0].Get(0) != "בזק" {
		t.Errorf("Expected windows-1255 round trip, got enc=%s rows=%v", enc, back.Records)
	}
}

func TestTableHelpers(t *testing.T) {
	tbl := &Table{
		Header:  []string{" שם ", "ענף"},
		Records: []Record{{"טבע"}, {"בזק", "תקשורת"}},
	}

	if i := tbl.ColumnIndex("שם"); i != 0 {
		t.Errorf("Expected trimmed header match at 0, got %d", i)
	}
	if i := tbl.ColumnIndex("Symbol"); i != -1 {
		t.Errorf("Expected -1 for missing column, got %d", i)
	}

	clone := tbl.Clone()
	col := clone.SetColumn("Symbol")
	if col != 2 {
		t.Fatalf("Expected new column at 2, got %d", col)
	}
	clone.Set(0, col, "TEVA.TA")

	if got := clone.Records[0]; !reflect.DeepEqual(got, Record{"טבע", "", "TEVA.TA"}) {
		t.Errorf("Expected padded row, got %v", got)
	}
	if len(tbl.Header) != 2 || len(tbl.Records[0]) != 1 {
		t.Error("Original table mutated through clone")
	}
	if clone.SetColumn("Symbol") != col {
		t.Error("SetColumn should reuse existing column")
	}

	if n := len(tbl.Head(10)); n != 2 {
		t.Errorf("Expected Head to cap at 2, got %d", n)
	}
	if tbl.Records[0].Get(5) != "" {
		t.Error("Expected empty string for missing cell")
	}
}

func TestValidEncoding(t *testing.T) {
	for _, enc := range []string{"", "utf-8", "utf-8-sig", "windows-1255", "cp1255"} {
		if !ValidEncoding(enc) {
			t.Errorf("Expected %q to be valid", enc)
		}
	}
	if ValidEncoding("klingon-7") {
		t.Error("Expected unknown encoding to be invalid")
	}
}
