package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort        = 8080
	defaultMetricsPort = 9090
	defaultDialect     = "sqlite3"
	defaultDBPath      = "custochef.db"
	defaultModel       = "gpt-4o-mini"
)

// DatabaseConfig selects the storage backend. Dialect is "sqlite3" or
// "postgres"; Path is used for sqlite, URL for postgres.
type DatabaseConfig struct {
	Dialect string `yaml:"dialect"`
	Path    string `yaml:"path"`
	URL     string `yaml:"url"`
}

// AdvisorConfig holds the AI price advisor settings. Provider is "openai"
// (langchaingo) or "azure"; azure settings are read from the standard
// AZURE_OPENAI_* environment variables.
type AdvisorConfig struct {
	Provider  string `yaml:"provider"`
	OpenAIKey string `yaml:"openai_key"`
	Model     string `yaml:"model"`
}

// Config represents the application configuration
type Config struct {
	Port        int            `yaml:"port"`
	MetricsPort int            `yaml:"metrics_port"`
	GinMode     string         `yaml:"gin_mode"`
	Database    DatabaseConfig `yaml:"database"`
	Advisor     AdvisorConfig  `yaml:"advisor"`
	Seed        bool           `yaml:"seed"`
}

// Load reads the yaml configuration file, applies defaults, and lets
// environment variables override file values. A missing file is not an
// error; production deployments may rely on env injection alone.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:        defaultPort,
		MetricsPort: defaultMetricsPort,
		Seed:        true,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MetricsPort = port
		}
	}
	if v := os.Getenv("DB_DIALECT"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Advisor.OpenAIKey = v
	}
	if v := os.Getenv("ADVISOR_PROVIDER"); v != "" {
		cfg.Advisor.Provider = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Dialect == "" {
		cfg.Database.Dialect = defaultDialect
	}
	if cfg.Database.Dialect == "sqlite3" && cfg.Database.Path == "" {
		cfg.Database.Path = defaultDBPath
	}
	if cfg.Advisor.Provider == "" {
		cfg.Advisor.Provider = "openai"
	}
	if cfg.Advisor.Model == "" {
		cfg.Advisor.Model = defaultModel
	}
}

// DSN returns the gorm connection string for the configured dialect.
func (c *Config) DSN() string {
	if c.Database.Dialect == "postgres" {
		return c.Database.URL
	}
	return c.Database.Path
}
