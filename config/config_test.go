package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patsoffice/arcadecore/config"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.True(t, cfg.Checksums)
	assert.Empty(t, cfg.RomPaths)
	assert.NotNil(t, cfg.KeyBindings)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arcadecore.toml")

	cfg := config.Default()
	cfg.RomPaths = []string{"/roms/joust", "/roms/robotron"}
	cfg.Checksums = false
	cfg.AudioSampleRate = 48000
	cfg.Locale = "fr"
	cfg.KeyBindings["joust"] = map[string]string{"P1 Left": "ArrowLeft"}

	require.NoError(t, config.Save(cfg, path))

	got, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.RomPaths, got.RomPaths)
	assert.False(t, got.Checksums)
	assert.Equal(t, 48000, got.AudioSampleRate)
	assert.Equal(t, "fr", got.Locale)

	key, ok := got.Binding("joust", "P1 Left")
	require.True(t, ok)
	assert.Equal(t, "ArrowLeft", key)

	_, ok = got.Binding("joust", "nonexistent")
	assert.False(t, ok)
}

func TestPresetApplyMergesIntoExistingKeyBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cocktail.yaml")
	contents := `name: cocktail
bindings:
  - machine: robotron
    input: Move Up
    key: KeyW
  - machine: robotron
    input: Move Down
    key: KeyS
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	preset, err := config.LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, "cocktail", preset.Name)
	require.Len(t, preset.Bindings, 2)

	cfg := config.Default()
	cfg.KeyBindings["joust"] = map[string]string{"P1 Left": "ArrowLeft"}
	preset.Apply(&cfg)

	// The preset's bindings land alongside the pre-existing "joust" entry...
	downKey, ok := cfg.Binding("robotron", "Move Down")
	require.True(t, ok)
	assert.Equal(t, "KeyS", downKey)

	leftKey, ok := cfg.Binding("joust", "P1 Left")
	require.True(t, ok)
	assert.Equal(t, "ArrowLeft", leftKey)
}
