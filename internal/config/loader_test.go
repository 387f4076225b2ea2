package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ReadsYAMLAndAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  mode: debug
postgres:
  host: db.example.com
  user: lexatlas
ingest:
  workers: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "db.example.com", cfg.Postgres.Host)
	assert.Equal(t, 4, cfg.Ingest.Workers)
	// Defaults fill everything the file omits.
	assert.Equal(t, DefaultPostgresPort, cfg.Postgres.Port)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfigFailsValidation(t *testing.T) {
	path := writeConfigFile(t, `
server:
  mode: production
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("LEXATLAS_SERVER_PORT", "7070")
	t.Setenv("LEXATLAS_POSTGRES_HOST", "env-db")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Postgres.Host)
}

func TestMustLoad_PanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "absent.yaml")) })
}
