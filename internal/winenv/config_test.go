package winenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	var cfg Config
	require.NoError(t, LoadConfig(filepath.Join(dir, "config.toml"), &cfg))
	require.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryFile)

	scope, err := cfg.Scope()
	require.NoError(t, err)
	require.Equal(t, envvar.Process, scope)
	impact, err := cfg.Impact()
	require.NoError(t, err)
	require.Equal(t, envvar.ImpactMedium, impact)
}

func TestLoadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
Target = "User"
ConfirmImpact = "high"
HistoryFile = "/var/lib/winenv.db"
`), 0o600))

	var cfg Config
	require.NoError(t, LoadConfig(file, &cfg))
	autogold.Expect(Config{Target: "User", ConfirmImpact: "high", HistoryFile: "/var/lib/winenv.db"}).Equal(t, cfg)

	scope, err := cfg.Scope()
	require.NoError(t, err)
	require.Equal(t, envvar.User, scope)
	impact, err := cfg.Impact()
	require.NoError(t, err)
	require.Equal(t, envvar.ImpactHigh, impact)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"unknown.toml": `Targte = "user"`,
		"target.toml":  `Target = "system"`,
		"impact.toml":  `ConfirmImpact = "always"`,
		"syntax.toml":  `Target = `,
	} {
		file := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
		var cfg Config
		require.Error(t, LoadConfig(file, &cfg), name)
	}
}

func TestConfigWriteTo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Config{Target: "machine", DisableHistory: true}
	require.NoError(t, want.WriteTo(file))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	autogold.Expect(`Target = "machine"
DisableHistory = true
`).Equal(t, string(data))

	var got Config
	require.NoError(t, LoadConfig(file, &got))
	require.Equal(t, "machine", got.Target)
	require.True(t, got.DisableHistory)
}
