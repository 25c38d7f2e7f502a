package runlog

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is one resolved row in the journal
type Entry struct {
	Time    string `json:"time"`
	RunID   string `json:"run_id"`
	Row     int    `json:"row"`
	Company string `json:"company"`
	Symbol  string `json:"symbol"`
	Method  string `json:"search_method"`
}

// Journal appends resolutions to one JSONL file per day under dir
type Journal struct {
	mu    sync.Mutex
	dir   string
	runID string
	now   func() time.Time
}

// Open returns a journal for runID. The directory is created on first append.
func Open(dir, runID string) *Journal {
	return &Journal{dir: dir, runID: runID, now: time.Now}
}

// Path is the file entries written at t go to
func (j *Journal) Path(t time.Time) string {
	return filepath.Join(j.dir, t.Format("2006-01-02")+".jsonl")
}

// Append writes one entry. Time and RunID are filled in.
func (j *Journal) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	e.Time = now.Format(time.RFC3339)
	e.RunID = j.runID

	p := j.Path(now)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(f, string(b))
	return err
}

// CompressOlder gzips journal files last modified more than retentionDays
// before now. Files that already have a .gz twin are removed.
func CompressOlder(dir string, retentionDays int, now time.Time) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, d := range entries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			continue
		}
		info, err := d.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		p := filepath.Join(dir, d.Name())
		if _, err := os.Stat(p + ".gz"); err == nil {
			_ = os.Remove(p)
			continue
		}
		if err := gzipFile(p); err != nil {
			return fmt.Errorf("compress %s: %w", p, err)
		}
	}
	return nil
}

func gzipFile(p string) error {
	in, err := os.Open(p)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(p+".gz", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	gw := gzip.NewWriter(out)
	if _, err := io.Copy(gw, in); err != nil {
		gw.Close()
		out.Close()
		os.Remove(p + ".gz")
		return err
	}
	if err := gw.Close(); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	in.Close()
	return os.Remove(p)
}
