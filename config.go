package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

func init() {
	const usage = `
Examples:

  Print the effective configuration:

    $ winenv config

  Make user scope the default and only prompt for persisted changes:

    $ winenv config -write -target=user -confirm-impact=high

`

	// Parse flags for our subcommand.
	flagSet := flag.NewFlagSet("config", flag.ExitOnError)
	configFile := flagSet.String("config", winenv.DefaultConfigFilePath(), configFlagUsage)
	writeFlag := flagSet.Bool("write", false, "write the configuration file")
	targetFlag := flagSet.String("target", "", "with -write: default scope (process, user or machine)")
	impactFlag := flagSet.String("confirm-impact", "", "with -write: lowest impact that prompts (low, medium or high)")

	// Handles calls to our subcommand.
	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() != 0 {
			return &cmder.UsageError{Err: errors.New("expected no arguments")}
		}

		var cfg winenv.Config
		if err := winenv.LoadConfig(*configFile, &cfg); err != nil {
			return errors.Wrap(err, "LoadConfig")
		}
		if !*writeFlag {
			if *targetFlag != "" || *impactFlag != "" {
				return &cmder.UsageError{Err: errors.New("-target and -confirm-impact require -write")}
			}
			fmt.Printf("# %s\n", *configFile)
			return toml.NewEncoder(os.Stdout).Encode(cfg)
		}

		if *targetFlag != "" {
			cfg.Target = *targetFlag
		}
		if *impactFlag != "" {
			cfg.ConfirmImpact = *impactFlag
		}
		if _, err := cfg.Scope(); err != nil {
			return &cmder.UsageError{Err: err}
		}
		if _, err := cfg.Impact(); err != nil {
			return &cmder.UsageError{Err: err}
		}
		fmt.Printf("winenv: writing config to %s..", *configFile)
		if err := cfg.WriteTo(*configFile); err != nil {
			fmt.Println(" error")
			return errors.Wrap(err, "WriteTo")
		}
		fmt.Println(" ok")
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
