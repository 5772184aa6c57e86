package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 9090, cfg.MetricsPort)
	assert.Equal(t, "sqlite3", cfg.Database.Dialect)
	assert.Equal(t, "custochef.db", cfg.Database.Path)
	assert.Equal(t, "openai", cfg.Advisor.Provider)
	assert.True(t, cfg.Seed)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: 9000
metrics_port: 9100
database:
  dialect: postgres
  url: "host=localhost user=app dbname=costs sslmode=disable"
advisor:
  provider: azure
  model: gpt-4o
seed: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 9100, cfg.MetricsPort)
	assert.Equal(t, "postgres", cfg.Database.Dialect)
	assert.Equal(t, "azure", cfg.Advisor.Provider)
	assert.Equal(t, "gpt-4o", cfg.Advisor.Model)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "host=localhost user=app dbname=costs sslmode=disable", cfg.DSN())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("DB_PATH", "override.db")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Port)
	assert.Equal(t, "override.db", cfg.Database.Path)
	assert.Equal(t, "sk-test", cfg.Advisor.OpenAIKey)
	assert.Equal(t, "override.db", cfg.DSN())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
