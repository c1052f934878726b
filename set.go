package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hexops/cmder"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
	"github.com/hexops/winenv/internal/winenv"
)

func init() {
	const usage = `
Examples:

  Replace the process PATH with two directories (the delimiter is detected):

    $ winenv set PATH 'C:\A' 'C:\B'

  Append a directory to the user Path without a prompt:

    $ winenv set -target=user -append -force Path '%USERPROFILE%\bin'

  Write an expandable machine variable:

    $ winenv set -target=machine -type=ExpandString TOOLS '%ProgramFiles%\tools'

  Delete a user variable:

    $ winenv set -target=user MY_VAR ''

  Rebuild a list from a file, one entry per line:

    $ winenv set -delimiter=, -stdin MY_LIST < entries.txt

`

	// Parse flags for our subcommand.
	flagSet := flag.NewFlagSet("set", flag.ExitOnError)
	configFile := flagSet.String("config", winenv.DefaultConfigFilePath(), configFlagUsage)
	targetFlag := flagSet.String("target", "", targetFlagUsage)
	delimiterFlag := flagSet.String("delimiter", "", "join the values with this character (Path, PATHEXT and PSModulePath always use the path list separator)")
	typeFlag := flagSet.String("type", "", "registry value type for user and machine scope: String or ExpandString")
	appendFlag := flagSet.Bool("append", false, "append the values after the existing value")
	forceFlag := flagSet.Bool("force", false, "do not ask for confirmation")
	stdinFlag := flagSet.Bool("stdin", false, "also read values from standard input, one per line")
	verboseFlag := flagSet.Bool("v", false, "print progress messages")

	// Handles calls to our subcommand.
	handler := func(args []string) error {
		_ = flagSet.Parse(args)
		if flagSet.NArg() < 1 {
			return &cmder.UsageError{Err: errors.New("expected <name> [value...] arguments")}
		}
		name, values := flagSet.Arg(0), flagSet.Args()[1:]
		if *stdinFlag {
			lines, err := readLines(os.Stdin)
			if err != nil {
				return errors.Wrap(err, "reading stdin")
			}
			values = append(values, lines...)
		}
		if len(values) == 0 {
			return &cmder.UsageError{Err: errors.New(`expected at least one value (use "" to delete the variable)`)}
		}

		cfg, scope, err := loadConfig(*configFile, *targetFlag)
		if err != nil {
			return err
		}
		delim, err := parseDelimiter(*delimiterFlag)
		if err != nil {
			return err
		}
		kind, err := envvar.ParseValueKind(*typeFlag)
		if err != nil {
			return &cmder.UsageError{Err: err}
		}
		threshold, err := cfg.Impact()
		if err != nil {
			return err
		}

		opts := envvar.SetOptions{
			Name:      name,
			Scope:     scope,
			Delimiter: delim,
			Kind:      kind,
			Append:    *appendFlag,
			Force:     *forceFlag,
		}
		if *verboseFlag {
			opts.Logf = log.Printf
		}

		confirmer, err := newConfirmer(threshold, *stdinFlag, *forceFlag)
		if err != nil {
			return err
		}
		if confirmer.Stdin != nil {
			defer confirmer.Stdin.Close()
		}

		env := envvar.System()
		previous, hadPrevious, previousErr := env.Get(name, scope)

		setter, err := envvar.NewSetter(env, confirmer, opts)
		if err != nil {
			return err
		}
		setter.Add(values...)
		change, err := setter.Commit()
		if err != nil {
			return err
		}
		if change == nil {
			return nil
		}
		if scope == envvar.Process {
			log.Printf("winenv: note: %s was changed for this process only", name)
		}
		if err := recordChange(cfg, change, previous, hadPrevious, previousErr); err != nil {
			log.Printf("winenv: warning: failed to record history: %v", err)
		}
		return nil
	}

	// Register the command.
	commands = append(commands, &cmder.Command{
		FlagSet: flagSet,
		Aliases: []string{},
		Handler: handler,
		UsageFunc: func() {
			fmt.Fprintf(flag.CommandLine.Output(), "Usage of 'winenv %s <name> [value...]':\n", flagSet.Name())
			flagSet.PrintDefaults()
			fmt.Printf("%s", usage)
		},
	})
}

// readLines returns each line of r, without line endings.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

// openConsole is replaced in tests.
var openConsole = winenv.OpenConsole

// newConfirmer returns the confirmer for a set. Values read from standard
// input leave it at EOF, so the answer is read from the console instead.
func newConfirmer(threshold envvar.Impact, fromStdin, force bool) (*winenv.Confirmer, error) {
	c := &winenv.Confirmer{Threshold: threshold}
	if !fromStdin || force {
		return c, nil
	}
	console, err := openConsole()
	if err != nil {
		return nil, &cmder.UsageError{Err: errors.Wrap(err, "-stdin needs a console to confirm the change (or use -force)")}
	}
	c.Stdin = console
	return c, nil
}

// recordChange adds change to the history. Nothing is recorded when the
// previous value could not be read.
func recordChange(cfg *winenv.Config, change *envvar.Change, previous string, hadPrevious bool, previousErr error) error {
	if cfg.DisableHistory {
		return nil
	}
	if previousErr != nil {
		return errors.Wrap(previousErr, "reading previous value")
	}
	store, err := winenv.OpenStore(cfg.HistoryFile)
	if err != nil {
		return errors.Wrap(err, "OpenStore")
	}
	defer store.Close()
	return store.Record(context.Background(), winenv.NewEntry(change, previous, hadPrevious))
}
