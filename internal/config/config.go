package config

import (
	"errors"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTPAddr        string        `koanf:"http_addr"`
	DatabaseURL     string        `koanf:"database_url"`
	IdentityBaseURL string        `koanf:"identity_base_url"`
	Logging         LoggingConfig `koanf:"logging"`
	DB              DBConfig      `koanf:"db"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type DBConfig struct {
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// Load reads the optional YAML file at path, then applies ROTA_-prefixed
// environment overrides (ROTA_DATABASE_URL, ROTA_LOGGING__LEVEL, ...).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("ROTA_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rota_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.DB.MaxOpenConns == 0 {
		c.DB.MaxOpenConns = 10
	}
	if c.DB.MaxIdleConns == 0 {
		c.DB.MaxIdleConns = 5
	}
	if c.DB.ConnMaxLifetime == 0 {
		c.DB.ConnMaxLifetime = 30 * time.Minute
	}
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database_url is required")
	}
	if c.IdentityBaseURL == "" {
		return errors.New("identity_base_url is required")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return errors.New("logging.format must be json or console")
	}
	return nil
}
