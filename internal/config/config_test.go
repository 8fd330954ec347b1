// ABOUTME: Tests for configuration loading
// ABOUTME: Covers file values, defaults, and environment overrides

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFixture(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFixture(t, map[string]any{
		"server": map[string]any{
			"name":     "ci",
			"address":  "10.0.0.5",
			"port":     46351,
			"password": "secret",
		},
		"registry": map[string]any{"path": "/var/lib/isaclient/servers.db"},
		"verbose":  true,
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ci", cfg.Server.Name)
	assert.Equal(t, "10.0.0.5", cfg.Server.Address)
	assert.Equal(t, 46351, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.Password)
	assert.Equal(t, "/var/lib/isaclient/servers.db", cfg.Registry.Path)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Server.Direct())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "isabelle", cfg.Server.Name)
	assert.Equal(t, "127.0.0.1", cfg.Server.Address)
	assert.NotEmpty(t, cfg.Registry.Path)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Server.Direct())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ISACLIENT_SERVER_NAME", "from-env")
	t.Setenv("ISACLIENT_SERVER_PASSWORD", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Server.Name)
	assert.Equal(t, "env-secret", cfg.Server.Password)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
