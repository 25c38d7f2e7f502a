package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/oklog/ulid/v2"

	"tase-symbol-finder/internal/enrich"
	"tase-symbol-finder/internal/logger"
	"tase-symbol-finder/internal/report"
	"tase-symbol-finder/internal/runlog"
	"tase-symbol-finder/internal/table"
	"tase-symbol-finder/internal/types"
)

type enrichCmd struct {
	common      commonFlags
	input       string
	output      string
	column      string
	format      string
	metricsFile string
	delayMs     int
	journalDir  string
}

func (*enrichCmd) Name() string { return "enrich" }
func (*enrichCmd) Synopsis() string {
	return "add Symbol and Search_Method columns to a CSV of company names"
}
func (*enrichCmd) Usage() string {
	return `symbolfinder enrich [flags] [input.csv]

  Reads the stock list, resolves every company name to a TASE ticker and
  writes the enriched table. Runs by default when no command is given.
`
}

func (c *enrichCmd) SetFlags(f *flag.FlagSet) {
	c.common.register(f)
	f.StringVar(&c.input, "input", "", "input CSV (defaults to input.path from config)")
	f.StringVar(&c.output, "output", "", "output CSV (defaults to output.path from config)")
	f.StringVar(&c.column, "column", "", "company-name column (defaults to input.name_column)")
	f.StringVar(&c.format, "format", "", "summary format: text, json or markdown")
	f.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	f.IntVar(&c.delayMs, "delay-ms", -1, "pause between rows in milliseconds (-1 uses config)")
	f.StringVar(&c.journalDir, "journal", "", "append each resolution to daily JSONL files in this directory")
}

func (c *enrichCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 && c.input == "" {
		c.input = f.Arg(0)
	}
	if err := c.run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run executes one batch, printing progress and the summary to w
func (c *enrichCmd) run(ctx context.Context, w io.Writer) error {
	a, err := newApp(c.common)
	if err != nil {
		return err
	}
	cfg := a.cfg
	if c.input != "" {
		cfg.Input.Path = c.input
	}
	if c.output != "" {
		cfg.Output.Path = c.output
	}
	if c.column != "" {
		cfg.Input.NameColumn = c.column
	}
	if c.format != "" {
		cfg.Output.SummaryFormat = c.format
	}
	if c.metricsFile != "" {
		cfg.Metrics.Textfile = c.metricsFile
	}
	if c.journalDir != "" {
		cfg.Journal.Dir = c.journalDir
	}
	if c.delayMs >= 0 {
		ms := c.delayMs
		cfg.Pacing.RowDelayMs = &ms
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Fprintln(w, "Israeli Stock Symbol Finder")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if cfg.AlphaVantageEnabled() && a.apiKey == "" {
		fmt.Fprintf(w, "ℹ️  No Alpha Vantage key: set %s or pass -api-key to enable the search provider\n",
			cfg.Providers.AlphaVantage.APIKeyEnv)
	}

	policy, err := a.policy()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Search chain: %s\n", strings.Join(policy.Methods(), " → "))

	tbl, usedEnc, err := table.Read(cfg.Input.Path, cfg.Input.Encoding, cfg.Input.FallbackEncoding)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input file %q not found; place it in the working directory or pass -input", cfg.Input.Path)
		}
		return err
	}
	fmt.Fprintf(w, "Loaded %d stocks from %s (%s)\n", tbl.Len(), cfg.Input.Path, usedEnc)
	report.Preview(w, tbl, cfg.Output.PreviewRows)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	runID := ulid.Make().String()
	var journal *runlog.Journal
	if cfg.Journal.Dir != "" {
		if err := runlog.CompressOlder(cfg.Journal.Dir, cfg.Journal.RetentionDays, time.Now()); err != nil {
			logger.Warn(ctx, "Journal compression failed", "dir", cfg.Journal.Dir, "error", err)
		}
		journal = runlog.Open(cfg.Journal.Dir, runID)
	}

	enricher := enrich.New(policy)
	enricher.Delay = cfg.RowDelay()
	enricher.Progress = func(done, total int, name string, res types.Resolution) {
		fmt.Fprintf(w, "[%d/%d] %s → %s (%s)\n", done, total, name, res.Symbol, res.Method)
		if journal == nil {
			return
		}
		entry := runlog.Entry{Row: done, Company: name, Symbol: res.Symbol, Method: res.Method}
		if err := journal.Append(entry); err != nil {
			logger.Warn(ctx, "Journal append failed", "row", done, "error", err)
		}
	}

	start := time.Now()
	out, err := enricher.Enrich(ctx, tbl, cfg.Input.NameColumn)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := table.Write(cfg.Output.Path, out, cfg.Output.Encoding); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output.Path, err)
	}

	a.metrics.ObserveRun(elapsed)
	if cfg.Metrics.Textfile != "" {
		if err := a.metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.ErrorWithErr(ctx, "Failed to write metrics textfile", err, "path", cfg.Metrics.Textfile)
		}
	}

	summary := report.Build(out, cfg.Input.NameColumn, policy.NotFound(), cfg.Output.SampleRows).
		WithRun(cfg.Input.Path, cfg.Output.Path, usedEnc, elapsed)
	summary.RunID = runID
	logger.Info(ctx, "Enrichment finished",
		"run_id", summary.RunID,
		"total", summary.Total,
		"found", summary.Found,
		"success_pct", summary.SuccessRate,
	)

	return report.NewReporter().Write(w, summary, report.Format(cfg.Output.SummaryFormat))
}
