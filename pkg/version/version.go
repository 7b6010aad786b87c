package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is set at build time with -ldflags "-X github.com/fabric-cli/fab/pkg/version.Version=...".
var Version = "test"

// Platform returns the GOOS/GOARCH pair of the running binary.
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Get returns Version, falling back to the module version recorded by the
// Go toolchain for binaries installed with go install.
func Get() string {
	if Version != "" && Version != "test" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// String is the one-line version banner printed by `fab version`.
func String() string {
	return fmt.Sprintf("fab %s (%s, %s)", Get(), Platform(), runtime.Version())
}
