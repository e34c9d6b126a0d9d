package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
asset_root = "game_assets"
watch_debounce_ms = 250
nbr_major_version = 1
nbr_minor_version = 0
log_level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "game_assets", cfg.AssetRoot)
	require.Equal(t, int16(1), cfg.NBRMajorVersion)
	require.EqualValues(t, 250_000_000, cfg.WatchDebounce)
}

func TestLoadRejectsMissingAssetRoot(t *testing.T) {
	path := writeConfig(t, `
nbr_major_version = 1
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NotEmpty(t, cfg.AssetRoot)
	require.Greater(t, cfg.NBRMajorVersion, int16(0))
}
