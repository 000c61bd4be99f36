package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "memeverse.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Empty(t, cfg.Seed.Path)
	require.Equal(t, 30*time.Minute, cfg.Sessions.IdleTimeout)
	require.Equal(t, 5*time.Minute, cfg.Sessions.SweepInterval)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
db:
  path: /tmp/catalog.db
seed:
  path: /etc/memeverse/projects.yaml
sessions:
  idle_timeout: 2h
`), 0o644))

	t.Setenv("MEMEVERSE_CONFIG_PATH", path)
	t.Setenv("MEMEVERSE_SERVER_PORT", "9100")
	t.Setenv("MEMEVERSE_TRANSPORT", "stdio")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "/tmp/catalog.db", cfg.DB.Path)
	require.Equal(t, "/etc/memeverse/projects.yaml", cfg.Seed.Path)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, 2*time.Hour, cfg.Sessions.IdleTimeout)
	require.Equal(t, 5*time.Minute, cfg.Sessions.SweepInterval)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("MEMEVERSE_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("MEMEVERSE_SERVER_PORT", "")
	t.Setenv("MEMEVERSE_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_SessionDurations(t *testing.T) {
	t.Setenv("MEMEVERSE_SESSION_IDLE_TIMEOUT", "45m")
	t.Setenv("MEMEVERSE_SESSION_SWEEP_INTERVAL", "30s")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 45*time.Minute, cfg.Sessions.IdleTimeout)
	require.Equal(t, 30*time.Second, cfg.Sessions.SweepInterval)

	t.Setenv("MEMEVERSE_SESSION_IDLE_TIMEOUT", "soon")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("MEMEVERSE_SESSION_IDLE_TIMEOUT", "0s")
	_, err = Load()
	require.Error(t, err)
}
