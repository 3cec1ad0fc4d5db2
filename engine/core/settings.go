package core

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds the user-tweakable engine options. Scripts get read access
// to these through the host-exposed surface.
type Settings struct {
	Fullscreen   bool   `toml:"fullscreen"`
	VerticalSync bool   `toml:"vertical_sync"`
	Width        uint32 `toml:"width"`
	Height       uint32 `toml:"height"`
	SoundLevel   uint8  `toml:"sound_level"`
	MusicLevel   uint8  `toml:"music_level"`
}

func DefaultSettings() *Settings {
	return &Settings{
		Width:      800,
		Height:     600,
		SoundLevel: 100,
		MusicLevel: 75,
	}
}

// LoadSettings reads a TOML settings file. A missing file is not an error;
// defaults are returned so a fresh install starts clean.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, &PersistenceError{Op: "read settings", Path: path, Err: err}
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return DefaultSettings(), &PersistenceError{Op: "parse settings", Path: path, Err: err}
	}
	return s, nil
}

func (s *Settings) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return &PersistenceError{Op: "encode settings", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &PersistenceError{Op: "write settings", Path: path, Err: err}
	}
	return nil
}
