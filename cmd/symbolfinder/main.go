package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"tase-symbol-finder/internal/logger"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&enrichCmd{}, "")
	commander.Register(&resolveCmd{}, "")
	commander.Register(&knownCmd{}, "")

	flag.Parse()
	// A bare invocation runs the batch over the default file
	if flag.NArg() == 0 {
		_ = flag.CommandLine.Parse([]string{"enrich"})
	}

	status := commander.Execute(ctx)

	stop()
	_ = logger.Shutdown(context.Background())
	os.Exit(int(status))
}
