package envvar

import (
	"os"
	"strings"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	autogold.Expect([]string{"a", "b", "", "c"}).Equal(t, Split("a;b;;c", ';'))
	autogold.Expect([]string{"a;b"}).Equal(t, Split("a;b", NoDelimiter))
	autogold.Expect([]string{""}).Equal(t, Split("", ','))
}

func TestJoinSplitRoundTrip(t *testing.T) {
	lists := [][]string{
		{"C:\\A"},
		{"C:\\A", "C:\\B"},
		{".COM", ".EXE", ".BAT", ".CMD"},
		{"a b", " c "},
	}
	for _, list := range lists {
		require.Equal(t, list, Split(Join(list, ';'), ';'))
	}
	for _, s := range []string{"", "plain", "with spaces"} {
		require.Equal(t, []string{s}, Split(s, ';'))
		require.Equal(t, s, Join([]string{s}, ';'))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name, in, want string
		delim          rune
	}{
		{"clean", "a;b;c", "a;b;c", ';'},
		{"duplicates", "a;;;b;;c", "a;b;c", ';'},
		{"leading", ";a;b", "a;b", ';'},
		{"trailing", "a;b;", "a;b", ';'},
		{"whitespace", "a ; b\t;\r\nc", "a;b;c", ';'},
		{"blank segment", "a; ;b", "a;b", ';'},
		{"outer", "  a;b  ", "a;b", ';'},
		{"inner spaces kept", "C:\\Program Files;C:\\x y", "C:\\Program Files;C:\\x y", ';'},
		{"only delimiters", ";;;", "", ';'},
		{"colon", "::/usr/bin: :/bin:", "/usr/bin:/bin", ':'},
		{"no delimiter", "  a;;b ", "a;;b", NoDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, tt.delim)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, Normalize(got, tt.delim), "idempotent")
			if tt.delim != NoDelimiter {
				d := string(tt.delim)
				require.NotContains(t, got, d+d)
				require.False(t, strings.HasPrefix(got, d), "leading delimiter")
				require.False(t, strings.HasSuffix(got, d), "trailing delimiter")
			}
		})
	}
}

func TestWellKnownDelimiter(t *testing.T) {
	for _, name := range []string{"Path", "PATH", "path", "PATHEXT", "PSModulePath"} {
		d, ok := WellKnownDelimiter(name)
		require.True(t, ok, name)
		require.Equal(t, os.PathListSeparator, d, name)
	}
	_, ok := WellKnownDelimiter("TEMP")
	require.False(t, ok)

	require.Equal(t, ',', EffectiveDelimiter("FOO", ','))
	require.Equal(t, os.PathListSeparator, EffectiveDelimiter("Path", ','))
	require.Equal(t, NoDelimiter, EffectiveDelimiter("FOO", NoDelimiter))
}

func TestParse(t *testing.T) {
	scope, err := ParseScope("Machine")
	require.NoError(t, err)
	require.Equal(t, Machine, scope)
	_, err = ParseScope("system")
	autogold.Expect(`invalid target "system" (expected process, user or machine)`).Equal(t, err.Error())

	kind, err := ParseValueKind("expandstring")
	require.NoError(t, err)
	require.Equal(t, ExpandString, kind)
	_, err = ParseValueKind("DWord")
	require.Error(t, err)
}
