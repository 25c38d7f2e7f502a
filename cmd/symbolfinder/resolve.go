package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type resolveCmd struct {
	common commonFlags
	json   bool
}

func (*resolveCmd) Name() string     { return "resolve" }
func (*resolveCmd) Synopsis() string { return "resolve one company name to a ticker" }
func (*resolveCmd) Usage() string {
	return `symbolfinder resolve [-offline] [-json] <company name>

  Runs the resolution chain for a single name and prints the symbol and
  the method that found it.
`
}

func (c *resolveCmd) SetFlags(f *flag.FlagSet) {
	c.common.register(f)
	f.BoolVar(&c.json, "json", false, "print the result as JSON")
}

func (c *resolveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.TrimSpace(strings.Join(f.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: a company name is required")
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, os.Stdout, name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *resolveCmd) run(ctx context.Context, w io.Writer, name string) error {
	a, err := newApp(c.common)
	if err != nil {
		return err
	}
	policy, err := a.policy()
	if err != nil {
		return err
	}

	res := policy.Resolve(ctx, name)
	if c.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{
			"name":          name,
			"symbol":        res.Symbol,
			"search_method": res.Method,
		})
	}
	_, err = fmt.Fprintf(w, "%s → %s (%s)\n", name, res.Symbol, res.Method)
	return err
}
