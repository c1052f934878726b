package winenv

import (
	"io"
	"os"
	"runtime"

	"github.com/hexops/winenv/internal/errors"
)

// OpenConsole opens the controlling terminal for reading, for prompts when
// standard input carries data.
func OpenConsole() (io.ReadCloser, error) {
	name := "/dev/tty"
	if runtime.GOOS == "windows" {
		name = "CONIN$"
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open console")
	}
	return f, nil
}
