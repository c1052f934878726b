package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

func init() {
	const usage = `
Examples:

  Show the last changes made with winenv:

    $ winenv history

  Show every recorded change to Path:

    $ winenv history -limit=0 Path

`

	// Parse flags for our subcommand.
	flagSet := flag.NewFlagSet("history", flag.ExitOnError)
	configFile := flagSet.String("config", winenv.DefaultConfigFilePath(), configFlagUsage)
	limitFlag := flagSet.Int("limit", 20, "number of changes to show (0 for all)")

	// Handles calls to our subcommand.
	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() > 1 {
			return &cmder.UsageError{Err: errors.New("expected at most one [name] argument")}
		}

		var cfg winenv.Config
		if err := winenv.LoadConfig(*configFile, &cfg); err != nil {
			return errors.Wrap(err, "LoadConfig")
		}
		if cfg.DisableHistory {
			fmt.Println("history is disabled in", *configFile)
			return nil
		}
		if _, err := os.Stat(cfg.HistoryFile); os.IsNotExist(err) {
			fmt.Println("no changes recorded")
			return nil
		}

		store, err := winenv.OpenStore(cfg.HistoryFile)
		if err != nil {
			return errors.Wrap(err, "OpenStore")
		}
		defer store.Close()

		entries, err := store.Entries(context.Background(), flagSet.Arg(0), *limitFlag)
		if err != nil {
			return errors.Wrap(err, "Entries")
		}
		return winenv.WriteHistory(os.Stdout, entries, time.Now())
	}

	// Register the command.
	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{"log"},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'winenv %s [name]':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Printf("%s", usage)
		},
	})
}
