// ABOUTME: Configuration loading for the client CLI
// ABOUTME: YAML config file with ISACLIENT_* environment overrides

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Registry RegistryConfig `mapstructure:"registry"`
	Verbose  bool           `mapstructure:"verbose"`
}

type ServerConfig struct {
	// Name identifies the server instance, as in `isabelle server -n`.
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	// Port and Password short-circuit the launcher when both are set:
	// the client connects directly instead of spawning or discovering.
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// Direct reports whether the config fully names a reachable server, making
// the launcher unnecessary.
func (s ServerConfig) Direct() bool {
	return s.Port != 0 && s.Password != ""
}

// Load reads the config file at path, if any, applying defaults and
// ISACLIENT_* environment overrides (e.g. ISACLIENT_SERVER_PASSWORD).
// An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.name", "isabelle")
	v.SetDefault("server.address", "127.0.0.1")
	v.SetDefault("registry.path", defaultRegistryPath())
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("ISACLIENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults need an explicit binding for env overrides.
	for _, key := range []string{"server.port", "server.password"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultRegistryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "servers.db"
	}
	return filepath.Join(home, ".isaclient", "servers.db")
}
