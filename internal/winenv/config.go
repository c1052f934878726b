package winenv

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
)

type Config struct {
	// Target scope used when -target is not given: "process", "user" or "machine".
	//
	// Defaults to "process".
	Target string `toml:",omitempty"`

	// ConfirmImpact is the lowest impact which asks for confirmation before a
	// change. "medium" prompts for every change, "high" only for user and
	// machine changes.
	//
	// Defaults to "medium".
	ConfirmImpact string `toml:",omitempty"`

	// HistoryFile is the sqlite database recording every change.
	//
	// Defaults to history.db next to the config file.
	HistoryFile string `toml:",omitempty"`

	// DisableHistory turns off change recording.
	DisableHistory bool `toml:",omitempty"`
}

// DefaultConfigFilePath is $HOME/winenv/config.toml, or config.toml if the
// home directory is unknown.
func DefaultConfigFilePath() string {
	u, err := user.Current()
	if err == nil {
		return filepath.Join(u.HomeDir, "winenv", "config.toml")
	}
	return "config.toml"
}

// LoadConfig reads file into cfg. A missing file leaves the defaults in place.
func LoadConfig(file string, cfg *Config) error {
	md, err := toml.DecodeFile(file, cfg)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	} else if err != nil {
		return errors.Wrap(err, "DecodeFile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%s: unknown config keys: %s", file, strings.Join(keys, ", "))
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(filepath.Dir(file), "history.db")
	}
	_, err = cfg.Scope()
	if err != nil {
		return errors.Wrap(err, file)
	}
	_, err = cfg.Impact()
	return errors.Wrap(err, file)
}

// WriteTo writes the config as TOML, creating the parent directory if needed.
func (c *Config) WriteTo(file string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrap(err, "Encode")
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
		return errors.Wrap(err, "MkdirAll")
	}
	return errors.Wrap(os.WriteFile(file, buf.Bytes(), 0o600), "WriteFile")
}

// Scope returns the configured default target.
func (c *Config) Scope() (envvar.Scope, error) {
	if c.Target == "" {
		return envvar.Process, nil
	}
	return envvar.ParseScope(c.Target)
}

// Impact returns the configured confirmation threshold.
func (c *Config) Impact() (envvar.Impact, error) {
	switch strings.ToLower(c.ConfirmImpact) {
	case "", "medium":
		return envvar.ImpactMedium, nil
	case "high":
		return envvar.ImpactHigh, nil
	case "low":
		return envvar.ImpactLow, nil
	}
	return 0, fmt.Errorf("invalid ConfirmImpact %q (expected low, medium or high)", c.ConfirmImpact)
}
