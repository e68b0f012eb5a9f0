// Package config layers defaults, an optional YAML config file, .env files,
// ATSCRITIC_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. ATSCRITIC_FORMAT.
	EnvPrefix = "ATSCRITIC"
	// FileName is the config file looked up in the working directory.
	FileName = "atscritic"
)

// Config is the fully resolved configuration.
type Config struct {
	Catalog   string       `mapstructure:"catalog"`
	Format    string       `mapstructure:"format"`
	FailUnder int          `mapstructure:"fail-under"`
	Parallel  int          `mapstructure:"parallel"`
	Log       LogConfig    `mapstructure:"log"`
	Server    ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

type ServerConfig struct {
	Addr       string        `mapstructure:"addr"`
	RateLimit  int           `mapstructure:"rate-limit"`
	RateWindow time.Duration `mapstructure:"rate-window"`
	BodyLimit  int           `mapstructure:"body-limit"`
}

// Formats lists the accepted report formats.
var Formats = []string{"json", "md", "text"}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("catalog", "default")
	v.SetDefault("format", "json")
	v.SetDefault("fail-under", 0)
	v.SetDefault("parallel", 0)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate-limit", 60)
	v.SetDefault("server.rate-window", time.Minute)
	v.SetDefault("server.body-limit", 1<<20)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads the given .env files, or ".env" when none are given.
// Missing files are ignored; variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; otherwise atscritic.yaml in the working directory is used
// when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if !validFormat(c.Format) {
		errs = append(errs, fmt.Errorf("format: must be one of %s, got %q", strings.Join(Formats, ", "), c.Format))
	}
	if c.FailUnder < 0 || c.FailUnder > 100 {
		errs = append(errs, fmt.Errorf("fail-under: must be within [0,100], got %d", c.FailUnder))
	}
	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("parallel: must be >= 0, got %d", c.Parallel))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr: required"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate-limit: must be >= 0, got %d", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateWindow <= 0 {
		errs = append(errs, errors.New("server.rate-window: must be positive when rate limiting is enabled"))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, fmt.Errorf("server.body-limit: must be positive, got %d", c.Server.BodyLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config.Validate: %w", errors.Join(errs...))
	}
	return nil
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}
