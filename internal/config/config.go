package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/GhostWriters/DialogStack/internal/paths"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Stack    StackConfig    `toml:"stack"`
	Behavior BehaviorConfig `toml:"behavior"`
	UI       UIConfig       `toml:"ui"`
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Metrics  MetricsConfig  `toml:"metrics"`

	// Path is the file the config was loaded from, not saved to TOML
	Path string `toml:"-"`
}

// StackConfig holds dialog store settings.
type StackConfig struct {
	BaseZIndex int `toml:"base_z_index"`
}

// BehaviorConfig holds the default dialog policies.
type BehaviorConfig struct {
	CloseOnEsc          bool `toml:"close_on_esc"`
	CloseOnOutsideClick bool `toml:"close_on_outside_click"`
	ScrollLock          bool `toml:"scroll_lock"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	Shadow         bool `toml:"shadow"`
	LineCharacters bool `toml:"line_characters"`
	// ExitDelayMS is how long a closed dialog stays visible before it is
	// unmounted.
	ExitDelayMS int `toml:"exit_delay_ms"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig holds SSH server settings.
type ServerConfig struct {
	Address     string `toml:"address"`
	HostKeyPath string `toml:"host_key_path"`
}

// MetricsConfig holds the metrics endpoint settings. An empty address
// disables it.
type MetricsConfig struct {
	Address string `toml:"address"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() AppConfig {
	return AppConfig{
		Stack: StackConfig{BaseZIndex: 1000},
		Behavior: BehaviorConfig{
			CloseOnEsc:          true,
			CloseOnOutsideClick: true,
			ScrollLock:          true,
		},
		UI: UIConfig{
			Shadow:         true,
			LineCharacters: true,
			ExitDelayMS:    150,
		},
		Log: LogConfig{
			Level: "notice",
			File:  "${XDG_STATE_HOME}/dialogstack/dialogstack.log",
		},
		Server: ServerConfig{
			Address:     "localhost:23234",
			HostKeyPath: "${XDG_DATA_HOME}/dialogstack/host_ed25519",
		},
	}
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return filepath.Dir(paths.GetConfigDir())
		case "XDG_DATA_HOME":
			return filepath.Dir(paths.GetDataDir())
		case "XDG_STATE_HOME":
			return filepath.Dir(paths.GetStateDir())
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}

// Load reads the configuration at path, or the default location when path
// is empty. A missing file yields the defaults, which are written out so
// the user has something to edit. Fields missing from the file keep their
// default values.
func Load(path string) (AppConfig, error) {
	if path == "" {
		path = paths.GetConfigFilePath()
	}
	conf := Defaults()
	conf.Path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		_ = Save(conf)
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &conf); err != nil {
		def := Defaults()
		def.Path = path
		return def, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Validate checks values that would make the program misbehave.
func (c AppConfig) Validate() error {
	if c.UI.ExitDelayMS < 0 {
		return fmt.Errorf("ui.exit_delay_ms must not be negative, got %d", c.UI.ExitDelayMS)
	}
	return nil
}

// Save writes the configuration to conf.Path.
func Save(conf AppConfig) error {
	path := conf.Path
	if path == "" {
		path = paths.GetConfigFilePath()
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
