package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/GhostWriters/DialogStack/internal/version"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// DataHomeOverride allows overriding the data home for tests.
	DataHomeOverride string
)

func appDir() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigDir returns the directory holding the config file. On macOS it
// follows the ~/.config convention instead of Application Support.
func GetConfigDir() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDir())
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appDir())
	}
	return filepath.Join(xdg.ConfigHome, appDir())
}

// GetConfigFilePath returns the absolute path to dialogstack.toml.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), appDir()+".toml")
}

// GetStateDir returns the directory for logs.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return filepath.Join(StateHomeOverride, appDir())
	}
	return filepath.Join(xdg.StateHome, appDir())
}

// GetDataDir returns the directory for persistent data such as the SSH
// host key.
func GetDataDir() string {
	if DataHomeOverride != "" {
		return filepath.Join(DataHomeOverride, appDir())
	}
	return filepath.Join(xdg.DataHome, appDir())
}
