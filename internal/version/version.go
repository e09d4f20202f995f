package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "DialogStack"

// CommandName is the name of the executable command.
// It is initialized dynamically from the executable filename.
var CommandName = "dialogstack"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X github.com/GhostWriters/DialogStack/internal/version.Version=v1.2.3"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	// Dynamically determine the command name from the executable
	baseName := filepath.Base(os.Args[0])
	CommandName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// Fall back when running under go run or a test binary
	if strings.EqualFold(CommandName, ApplicationName) || strings.EqualFold(CommandName, "main") || strings.HasSuffix(CommandName, ".test") {
		CommandName = "dialogstack"
	}
}

// String returns the one-line version banner.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s/%s)",
		ApplicationName, Version, Commit, BuildDate, runtime.GOOS, runtime.GOARCH)
}
