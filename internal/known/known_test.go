package known

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()

	if tbl.Len() != len(builtin) {
		t.Fatalf("Expected %d entries, got %d", len(builtin), tbl.Len())
	}

	entries := tbl.Entries()
	if entries[0].Alias != "בנק הפועלים" || entries[0].Symbol != "POLI.TA" {
		t.Errorf("Expected first entry בנק הפועלים/POLI.TA, got %+v", entries[0])
	}

	for i, e := range entries {
		if e.Alias == "" || e.Symbol == "" {
			t.Errorf("entry %d has empty field: %+v", i, e)
		}
		if !strings.HasSuffix(e.Symbol, ".TA") {
			t.Errorf("entry %d symbol %s lacks .TA suffix", i, e.Symbol)
		}
	}
}

func TestEntriesIsACopy(t *testing.T) {
	tbl := Default()
	entries := tbl.Entries()
	entries[0].Symbol = "HACKED"

	if got := tbl.Entries()[0].Symbol; got != "POLI.TA" {
		t.Errorf("Table was mutated through Entries(): %s", got)
	}
}

func TestManyAliasesOneSymbol(t *testing.T) {
	count := 0
	for _, e := range Default().Entries() {
		if e.Symbol == "ESLT.TA" {
			count++
		}
	}
	if count < 2 {
		t.Errorf("Expected several aliases for ESLT.TA, got %d", count)
	}

	symbols := Default().Symbols()
	if len(symbols) >= Default().Len() {
		t.Errorf("Expected fewer distinct symbols (%d) than aliases (%d)", len(symbols), Default().Len())
	}
}

func TestWithAppendsWithoutMutating(t *testing.T) {
	base := Default()
	extended := base.With(Entry{Alias: "אל על", Symbol: "ELAL.TA"})

	if extended.Len() != base.Len()+1 {
		t.Fatalf("Expected %d entries, got %d", base.Len()+1, extended.Len())
	}
	if last := extended.Entries()[extended.Len()-1]; last.Symbol != "ELAL.TA" {
		t.Errorf("Expected extra entry last, got %+v", last)
	}
	if base.Len() != len(builtin) {
		t.Error("Base table changed after With")
	}
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	content := `aliases:
  - alias: "אל על"
    symbol: ELAL.TA
  - alias: " נובה "
    symbol: NVMI.TA
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadAliases(path)
	if err != nil {
		t.Fatalf("LoadAliases failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Alias != "נובה" {
		t.Errorf("Expected trimmed alias, got %q", entries[1].Alias)
	}
}

func TestLoadAliasesRejectsIncompleteEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.yaml")
	content := `aliases:
  - alias: "אל על"
  - symbol: NVMI.TA
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAliases(path)
	if err == nil {
		t.Fatal("Expected error for incomplete entries")
	}
	if !strings.Contains(err.Error(), "alias entry 0") || !strings.Contains(err.Error(), "alias entry 1") {
		t.Errorf("Expected both entries reported, got %v", err)
	}
}

func TestLoadAliasesMissingFile(t *testing.T) {
	if _, err := LoadAliases(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
