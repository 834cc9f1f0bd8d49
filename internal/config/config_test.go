package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "webpackq", cfg.Output.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Stats.ValidateSchema)
	assert.Equal(t, "webpackq.db", cfg.History.Path)
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webpackq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  path: analysis/out
  format: dot
log:
  level: debug
stats:
  validate_schema: false
history:
  path: runs.db
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "analysis/out", cfg.Output.Path)
	assert.Equal(t, "dot", cfg.Output.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Stats.ValidateSchema)
	assert.Equal(t, "runs.db", cfg.History.Path)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WEBPACKQ_OUTPUT_FORMAT", "html")
	t.Setenv("WEBPACKQ_LOG_LEVEL", "warn")
	t.Setenv("WEBPACKQ_VALIDATE_SCHEMA", "false")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "html", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Stats.ValidateSchema)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webpackq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
