package winenv

import (
	"runtime"
	"runtime/debug"
)

// Version is overridden at build time with
// -ldflags "-X github.com/hexops/winenv/internal/winenv.Version=..."
var Version = "dev"

// GoVersion is the Go toolchain the binary was built with.
var GoVersion = runtime.Version()

func init() {
	if Version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
}
