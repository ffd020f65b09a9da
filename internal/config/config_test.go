package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "forest.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Areaanalys_", cfg.OutputPrefix)
	assert.Equal(t, "#DE4D83", cfg.Palette.Pink)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input_dir = "/data/skog"
extensions = ["PNG", "tif"]
workers = 4
profile = "auto"
timings = false

[palette]
green = "#00FF00"

[font]
min_size = 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/skog", cfg.InputDir)
	assert.Equal(t, []string{".png", ".tif"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "auto", cfg.Profile)
	assert.Equal(t, "#00FF00", cfg.Palette.Green)
	assert.Equal(t, "#A72FA3", cfg.Palette.MidPurple)
	assert.Equal(t, 20, cfg.Font.MinSize)
	assert.Equal(t, 280, cfg.PanelHeight)
	assert.False(t, cfg.Timings)
	assert.True(t, Default().Timings)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `colour = "red"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Decoder = "magick"
	cfg.Border = -1
	cfg.OutputPrefix = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoder")
	assert.Contains(t, err.Error(), "border")
	assert.Contains(t, err.Error(), "output_prefix")
}
