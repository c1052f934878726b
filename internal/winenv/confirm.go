package winenv

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hexops/winenv/internal/envvar"
	"github.com/hexops/winenv/internal/errors"
	"github.com/manifoldco/promptui"
)

// Confirmer asks on the terminal before changes whose impact reaches Threshold.
type Confirmer struct {
	Threshold envvar.Impact

	// Out receives the change description. Defaults to os.Stdout.
	Out io.Writer

	// Stdin, if non-nil, is where the answer is read from instead of
	// os.Stdin. See OpenConsole.
	Stdin io.ReadCloser

	// run shows the yes/no prompt; replaced in tests.
	run func(prompt *promptui.Prompt) (string, error)
}

var _ envvar.Confirmer = &Confirmer{}

func (c *Confirmer) Confirm(p envvar.Prompt) (bool, error) {
	if p.Impact < c.Threshold {
		return true, nil
	}
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s\n", p.Message)

	run := c.run
	if run == nil {
		run = runPrompt
	}
	v, err := run(&promptui.Prompt{
		Label:     fmt.Sprintf("Continue (%s impact)", p.Impact),
		IsConfirm: true,
		Default:   "n",
		Stdin:     c.Stdin,
	})
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	} else if err != nil {
		return false, errors.Wrap(err, "Prompt")
	}
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes", nil
}

func runPrompt(prompt *promptui.Prompt) (string, error) {
	return prompt.Run()
}
