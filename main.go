package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"unicode/utf8"

	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

// commands contains all registered subcommands.
var commands cmder.Commander

var usageText = `winenv: read and write persisted Windows environment variables

Usage:

	winenv <command> [arguments]

The commands are:

	get        print one or all environment variables
	set        set, append to, or delete an environment variable
	history    list changes made with winenv
	config     print or write the configuration file
	version    print the winenv version

Use "winenv <command> -h" for more information about a command.
`

func main() {
	// Configure logging if desired.
	log.SetFlags(0)
	log.SetPrefix("")

	commands.Run(flag.CommandLine, "winenv", usageText, os.Args[1:])
}

const configFlagUsage = "Path to TOML configuration file (see internal/winenv/config.go)"

const targetFlagUsage = "scope: process, user or machine (default from config, else process)"

// loadConfig reads the configuration file and resolves the -target flag
// against the configured default.
func loadConfig(configFile, target string) (*winenv.Config, envvar.Scope, error) {
	var cfg winenv.Config
	if err := winenv.LoadConfig(configFile, &cfg); err != nil {
		return nil, 0, errors.Wrap(err, "LoadConfig")
	}
	if target == "" {
		scope, err := cfg.Scope()
		return &cfg, scope, err
	}
	scope, err := envvar.ParseScope(target)
	if err != nil {
		return nil, 0, &cmder.UsageError{Err: err}
	}
	return &cfg, scope, nil
}

// parseDelimiter accepts a single character, or one of the escapes \t and \n.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return envvar.NoDelimiter, nil
	case `\t`:
		return '\t', nil
	case `\n`:
		return '\n', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, &cmder.UsageError{Err: fmt.Errorf("-delimiter must be a single character, got %q", s)}
	}
	return r, nil
}
