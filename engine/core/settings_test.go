package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	s := &Settings{
		Fullscreen:   true,
		VerticalSync: true,
		Width:        1920,
		Height:       1080,
		SoundLevel:   40,
		MusicLevel:   10,
	}
	require.NoError(t, s.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	loaded, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), loaded)
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = {"), 0o644))

	loaded, err := LoadSettings(path)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, DefaultSettings(), loaded)
}
