package main

import (
	"flag"
	"fmt"

	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

func init() {
	usage := `winenv version: print the winenv version

Usage:

	winenv version

`

	// Parse flags for our subcommand.
	flagSet := flag.NewFlagSet("version", flag.ExitOnError)

	// Handles calls to our subcommand.
	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() != 0 {
			return &cmder.UsageError{Err: errors.New("expected no arguments")}
		}

		fmt.Println("winenv version", winenv.Version, "built using", winenv.GoVersion)

		return nil
	}

	// Register the command.
	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'winenv %s':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Printf("%s", usage)
		},
	})
}
