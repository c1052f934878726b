package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

func init() {
	const usage = `
Examples:

  Print the entries of the user Path, one per line:

    $ winenv get -target=user Path

  Print a value exactly as stored:

    $ winenv get -raw -target=machine PSModulePath

  Split a custom list variable on commas:

    $ winenv get -delimiter=, MY_LIST

  List every PowerShell related process variable:

    $ winenv get -match='PS*'

`

	// Parse flags for our subcommand.
	flagSet := flag.NewFlagSet("get", flag.ExitOnError)
	configFile := flagSet.String("config", winenv.DefaultConfigFilePath(), configFlagUsage)
	targetFlag := flagSet.String("target", "", targetFlagUsage)
	delimiterFlag := flagSet.String("delimiter", "", "split the value on this character (Path, PATHEXT and PSModulePath always use the path list separator)")
	rawFlag := flagSet.Bool("raw", false, "print the stored value verbatim")
	matchFlag := flagSet.String("match", "", "when listing, only show names matching this glob (case-insensitive)")
	jsonFlag := flagSet.Bool("json", false, "print records as JSON")

	// Handles calls to our subcommand.
	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() > 1 {
			return &cmder.UsageError{Err: errors.New("expected at most one [name] argument")}
		}
		name := flagSet.Arg(0)

		_, scope, err := loadConfig(*configFile, *targetFlag)
		if err != nil {
			return err
		}
		delim, err := parseDelimiter(*delimiterFlag)
		if err != nil {
			return err
		}
		if *rawFlag && name == "" {
			return &cmder.UsageError{Err: errors.New("-raw requires a [name] argument")}
		}
		if *rawFlag && delim != envvar.NoDelimiter {
			return &cmder.UsageError{Err: errors.New("-raw and -delimiter cannot be combined")}
		}
		if *matchFlag != "" && name != "" {
			return &cmder.UsageError{Err: errors.New("-match only applies when listing all variables")}
		}

		reader := &envvar.Reader{Env: envvar.System()}
		if name == "" {
			records, err := reader.List(scope)
			if err != nil {
				return err
			}
			if *matchFlag != "" {
				records, err = matchRecords(records, *matchFlag)
				if err != nil {
					return &cmder.UsageError{Err: errors.Wrap(err, "-match")}
				}
			}
			if *jsonFlag {
				return winenv.WriteJSON(os.Stdout, records)
			}
			return winenv.WriteRecords(os.Stdout, records)
		}

		if *rawFlag {
			raw, err := reader.Raw(name, scope)
			if err != nil {
				return err
			}
			fmt.Println(raw)
			return nil
		}

		record, err := reader.Lookup(name, scope, delim)
		if err != nil {
			return err
		}
		if *jsonFlag {
			return winenv.WriteJSON(os.Stdout, record)
		}
		return winenv.WriteRecords(os.Stdout, []envvar.Record{*record})
	}

	// Register the command.
	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'winenv %s [name]':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Printf("%s", usage)
		},
	})
}

// matchRecords keeps records whose name matches the glob pattern, ignoring case.
func matchRecords(records []envvar.Record, pattern string) ([]envvar.Record, error) {
	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	var matched []envvar.Record
	for _, r := range records {
		ok, err := doublestar.Match(pattern, strings.ToLower(r.Name))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, r)
		}
	}
	return matched, nil
}
