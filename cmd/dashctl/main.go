// Command dashctl inspects the demo dashboard offline: quotes, search,
// synthetic history and the seeded portfolio, without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/google/subcommands"

	"stockdash/internal/logging"
	"stockdash/pkg/stockdash"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dashctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeKind := fs.String("store", stockdash.StoreMemory, "Entity store backing the session: memory or sqlite")
	seed := fs.Uint64("seed", 0, "Seed for synthetic history; 0 uses the clock")
	logLevel := fs.String("log-level", "warn", "Log level written to stderr")

	commander := subcommands.NewCommander(fs, "dashctl")
	commander.Output = stdout
	commander.Error = stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	register(commander)

	if err := fs.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(subcommands.ExitUsageError)
	}
	opts := stockdash.Options{Logger: logging.NewConsoleLogger(stderr, level)}
	if *seed != 0 {
		opts.HistorySource = rand.NewPCG(*seed, *seed)
	}

	core, user, err := stockdash.OpenDemo(*storeKind, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return int(subcommands.ExitFailure)
	}
	defer core.Close()

	return int(commander.Execute(ctx, &session{
		core:   core,
		userID: user.ID,
		out:    stdout,
		errOut: stderr,
	}))
}
