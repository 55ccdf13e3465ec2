// Package config provides unit tests for configuration loading.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:8090", cfg.Server.ListenAddr)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_fromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/rulebook
server:
  listen_addr: 127.0.0.1:9999
log:
  level: debug
`), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/rulebook", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.ListenAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_partialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: ./elsewhere\n"), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "./elsewhere", cfg.DataDir)
	assert.Equal(t, "127.0.0.1:8090", cfg.Server.ListenAddr)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoad_envOverride(t *testing.T) {
	t.Setenv("RULEBOOK_DATA_DIR", "/tmp/from-env")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.DataDir)
}
