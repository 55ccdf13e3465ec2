// Package config loads application configuration from an optional YAML
// file, environment variables and defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	// ListenAddr is the localhost address the UI connects to.
	ListenAddr string `mapstructure:"listen_addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	// DataDir holds the key-value store file.
	DataDir string       `mapstructure:"data_dir"`
	Server  ServerConfig `mapstructure:"server"`
	Log     LogConfig    `mapstructure:"log"`
}

// Load reads configuration. configFile may be empty, in which case only
// defaults and RULEBOOK_* environment variables apply.
func Load(configFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", "./data")
	v.SetDefault("server.listen_addr", "127.0.0.1:8090")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("RULEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
