package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 3500*time.Millisecond, cfg.Toast.DefaultDuration)
	assert.Equal(t, 0, cfg.Toast.MaxVisible)
	assert.Equal(t, MarkdownAuto, cfg.TUI.MarkdownStyle)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://magazine.example.com/api
  timeout: 5s
toast:
  default_duration: 2s
  max_visible: 4
tui:
  markdown_style: dark
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://magazine.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Toast.DefaultDuration)
	assert.Equal(t, 4, cfg.Toast.MaxVisible)
	assert.Equal(t, MarkdownDark, cfg.TUI.MarkdownStyle)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "toast:\n  max_visible: 3\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Toast.MaxVisible)
	assert.Equal(t, 3500*time.Millisecond, cfg.Toast.DefaultDuration)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [")

	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: ftp://example.com\n")

	_, err := Load(path, t.TempDir())
	assert.ErrorContains(t, err, "invalid config")
}

func TestConfig_LogFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"

	assert.Equal(t, filepath.Join("/data", "magazine.log"), cfg.LogFile())
}
