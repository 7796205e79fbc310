package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REEF_SOCK", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reef.sock", cfg.Server.SocketPath)
	assert.Equal(t, 20, cfg.Render.FPS)
	assert.Equal(t, "session", cfg.Render.MainLabel)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Demo.Enabled)
	assert.InDelta(t, 0.1, cfg.Demo.ErrorRate, 1e-9)
}

func TestLoad_GlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("REEF_SOCK", "")
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".reef")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	global := "render:\n  fps: 10\n  main_label: my-session\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(global), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Render.FPS)
	assert.Equal(t, "my-session", cfg.Render.MainLabel)
	// Untouched sections keep their defaults.
	assert.Equal(t, "/tmp/reef.sock", cfg.Server.SocketPath)
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".reef")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	global := "render:\n  fps: 10\ndemo:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(global), 0o644))

	work := t.TempDir()
	local := "render:\n  fps: 30\n"
	require.NoError(t, os.WriteFile(filepath.Join(work, "config.yaml"), []byte(local), 0o644))
	t.Chdir(work)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Render.FPS)
	assert.True(t, cfg.Demo.Enabled, "global keys survive a local merge")
}

func TestDefaultSocketPath(t *testing.T) {
	t.Setenv("REEF_SOCK", "")
	assert.Equal(t, "/tmp/reef.sock", DefaultSocketPath())

	t.Setenv("REEF_SOCK", "/run/user/1000/reef.sock")
	assert.Equal(t, "/run/user/1000/reef.sock", DefaultSocketPath())
}
