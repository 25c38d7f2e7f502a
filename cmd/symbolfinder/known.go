package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

type knownCmd struct {
	common commonFlags
	json   bool
}

func (*knownCmd) Name() string     { return "known" }
func (*knownCmd) Synopsis() string { return "list the built-in company aliases and their tickers" }
func (*knownCmd) Usage() string {
	return `symbolfinder known [-config <file>] [-json]

  Prints the known-company table, including aliases loaded from
  matching.aliases_file.
`
}

func (c *knownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.common.configPath, "config", defaultConfigPath, "path to config file (optional unless changed)")
	f.BoolVar(&c.json, "json", false, "print the table as JSON")
}

func (c *knownCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *knownCmd) run(w io.Writer) error {
	c.common.offline = true
	a, err := newApp(c.common)
	if err != nil {
		return err
	}
	table, err := a.knownTable()
	if err != nil {
		return err
	}

	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table.Entries())
	}
	for _, e := range table.Entries() {
		fmt.Fprintf(w, "%-12s %s\n", e.Symbol, e.Alias)
	}
	fmt.Fprintf(w, "\n%d entries, %d symbols\n", table.Len(), len(table.Symbols()))
	return nil
}
