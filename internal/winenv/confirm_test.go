package winenv

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/hexops/autogold/v2"
	"github.com/hexops/winenv/internal/envvar"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/require"
)

func TestConfirmer(t *testing.T) {
	var (
		out    bytes.Buffer
		labels []string
		answer string
		err    error
	)
	c := &Confirmer{
		Threshold: envvar.ImpactHigh,
		Out:       &out,
		run: func(p *promptui.Prompt) (string, error) {
			labels = append(labels, p.Label.(string))
			return answer, err
		},
	}

	ok, cerr := c.Confirm(envvar.Prompt{Message: "Set FOO (Process, None) to \"bar\"", Impact: envvar.ImpactMedium})
	require.NoError(t, cerr)
	require.True(t, ok, "below threshold")
	require.Empty(t, labels)

	answer = "y"
	ok, cerr = c.Confirm(envvar.Prompt{Message: "Remove FOO (User)", Impact: envvar.ImpactHigh})
	require.NoError(t, cerr)
	require.True(t, ok)

	answer, err = "", promptui.ErrAbort
	ok, cerr = c.Confirm(envvar.Prompt{Message: "Remove FOO (Machine)", Impact: envvar.ImpactHigh})
	require.NoError(t, cerr)
	require.False(t, ok)

	err = promptui.ErrInterrupt
	_, cerr = c.Confirm(envvar.Prompt{Message: "Remove BAR (Machine)", Impact: envvar.ImpactHigh})
	require.ErrorIs(t, cerr, promptui.ErrInterrupt)

	autogold.Expect("Remove FOO (User)\nRemove FOO (Machine)\nRemove BAR (Machine)\n").Equal(t, out.String())
	autogold.Expect([]string{"Continue (high impact)", "Continue (high impact)", "Continue (high impact)"}).Equal(t, labels)
}

func TestConfirmerStdin(t *testing.T) {
	console := io.NopCloser(strings.NewReader("y\n"))
	var got *promptui.Prompt
	c := &Confirmer{
		Threshold: envvar.ImpactMedium,
		Out:       io.Discard,
		Stdin:     console,
		run: func(p *promptui.Prompt) (string, error) {
			got = p
			if p.Stdin == nil {
				return "", nil
			}
			b, err := io.ReadAll(p.Stdin)
			return string(b), err
		},
	}
	ok, err := c.Confirm(envvar.Prompt{Message: "Set LIST (Process, None) to \"a,b\"", Impact: envvar.ImpactMedium})
	require.NoError(t, err)
	require.True(t, ok, "answer is read from the console, not standard input")
	require.True(t, got.IsConfirm)
	require.Equal(t, "n", got.Default)

	// Without a console the prompt falls back to standard input.
	c.Stdin = nil
	_, err = c.Confirm(envvar.Prompt{Message: "Remove LIST (Process)", Impact: envvar.ImpactMedium})
	require.NoError(t, err)
	require.Nil(t, got.Stdin)
}
