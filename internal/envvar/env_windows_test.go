package envvar

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows/registry"
)

// testName returns a user variable name that does not exist yet and is
// removed when the test ends.
func testName(t *testing.T, env Environment) string {
	t.Helper()
	name := fmt.Sprintf("WINENV_TEST_%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = env.Delete(name, User) })
	return name
}

func TestSystemUserRoundTrip(t *testing.T) {
	env := System()
	name := testName(t, env)

	_, ok, err := env.Get(name, User)
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = env.ValueKind(name, User)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, env.Delete(name, User), "deleting an absent value")

	require.NoError(t, env.Set(name, `%USERPROFILE%\bin`, User, ExpandString))
	v, ok, err := env.Get(name, User)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `%USERPROFILE%\bin`, v, "stored unexpanded")
	kind, ok, err := env.ValueKind(name, User)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ExpandString, kind)

	require.NoError(t, env.Set(name, `C:\A;C:\B`, User, String))
	kind, _, err = env.ValueKind(name, User)
	require.NoError(t, err)
	require.Equal(t, String, kind)

	vars, err := env.GetAll(User)
	require.NoError(t, err)
	var found bool
	for _, variable := range vars {
		if variable.Name == name {
			found = true
			require.Equal(t, `C:\A;C:\B`, variable.Value)
		}
	}
	require.True(t, found, "%s missing from GetAll", name)

	require.NoError(t, env.Delete(name, User))
	_, ok, err = env.Get(name, User)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSystemUserAppendKinds(t *testing.T) {
	env := System()
	name := testName(t, env)

	require.NoError(t, env.Set(name, `%USERPROFILE%\bin`, User, ExpandString))
	change, err := Set(env, nil, SetOptions{Name: name, Scope: User, Delimiter: ';', Append: true, Force: true}, `C:\tools`)
	require.NoError(t, err)
	require.Equal(t, ExpandString, change.Kind)
	rec, err := (&Reader{Env: env}).Lookup(name, User, ';')
	require.NoError(t, err)
	require.Equal(t, []string{`%USERPROFILE%\bin`, `C:\tools`}, rec.Values)

	k, _, err := registry.CreateKey(registry.CURRENT_USER, UserKeyPath, registry.SET_VALUE)
	require.NoError(t, err)
	require.NoError(t, k.SetDWordValue(name, 7))
	require.NoError(t, k.Close())

	kind, ok, err := env.ValueKind(name, User)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, DWord, kind)
	v, _, err := env.Get(name, User)
	require.NoError(t, err)
	require.Equal(t, "7", v)

	_, err = Set(env, nil, SetOptions{Name: name, Scope: User, Delimiter: ';', Append: true, Force: true}, "8")
	require.ErrorIs(t, err, ErrRegistryKindValueWrong)
}

func TestSystemMachinePath(t *testing.T) {
	env := System()
	vars, err := env.GetAll(Machine)
	require.NoError(t, err)
	require.NotEmpty(t, vars)

	kind, ok, err := env.ValueKind("Path", Machine)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, kind.Writable(), "kind %s", kind)

	rec, err := (&Reader{Env: env}).Lookup("PATH", Machine, NoDelimiter)
	require.NoError(t, err)
	require.True(t, strings.EqualFold(rec.Name, "PATH"))
	require.NotEmpty(t, rec.Values)
}
