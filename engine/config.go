package engine

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/swift2d/engine/engine/core"
)

type ApplicationConfig struct {
	// The application name used in logs and window titles, if applicable.
	Name string `toml:"name"`
	// Root folder scanned for textures and scripts.
	AssetDir string `toml:"asset_dir"`
	// Folder worlds persist themselves into.
	SaveDir string `toml:"save_dir"`
	// Engine settings file, TOML.
	SettingsFile string `toml:"settings_file"`
	// Ticks per second the update loop targets.
	TargetTickRate uint32        `toml:"target_tick_rate"`
	LogLevel       core.LogLevel `toml:"log_level"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:           "Swift Application",
		AssetDir:       "assets",
		SaveDir:        "data/saves",
		SettingsFile:   "data/settings.toml",
		TargetTickRate: 60,
	}
}

// LoadApplicationConfig reads a TOML config file; a missing file yields the
// defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, &core.PersistenceError{Op: "read config", Path: path, Err: err}
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return DefaultApplicationConfig(), &core.PersistenceError{Op: "parse config", Path: path, Err: err}
	}
	return cfg, nil
}
