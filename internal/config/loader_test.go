package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "sales_warehouse", cfg.Database.DBName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./migrations", cfg.Pipeline.MigrationsPath)
	assert.Equal(t, "./checks.yaml", cfg.Pipeline.ChecksPath)
	assert.Empty(t, cfg.Pipeline.MetricsAddr)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  host: db.internal
  port: 5433
log:
  level: debug
  format: json
pipeline:
  metrics_addr: ":9464"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":9464", cfg.Pipeline.MetricsAddr)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  host: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	t.Setenv("DW_DATABASE_HOST", "from-env")
	t.Setenv("DW_LOG_LEVEL", "warn")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "warn", cfg.Log.Level)
}
