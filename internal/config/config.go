// Package config loads service settings from defaults, an optional
// statwrap.yaml, a .env file and STATWRAP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Projects ProjectsConfig `mapstructure:"projects"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port       int    `mapstructure:"port"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

type WorkflowConfig struct {
	RelativizeToRoot bool `mapstructure:"relativize_to_root"`
}

type CacheConfig struct {
	// Size is the number of built graphs/trees kept; 0 disables caching.
	Size int `mapstructure:"size"`
}

type ProjectsConfig struct {
	File string `mapstructure:"file"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration. configFile may be empty, in which case
// statwrap.yaml is looked up in the working directory.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("workflow.relativize_to_root", false)
	v.SetDefault("cache.size", 256)
	v.SetDefault("projects.file", ".statwrap-projects.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("statwrap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STATWRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Cache.Size < 0 {
		return fmt.Errorf("invalid cache size: %d", cfg.Cache.Size)
	}
	if cfg.Projects.File == "" {
		return fmt.Errorf("projects file is required")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
