// Package config loads ipo-watch settings from the environment, an optional
// YAML file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Prefix is the environment variable prefix, e.g. IPO_DATA_DIR.
const Prefix = "IPO"

// Config is the complete application configuration. Variable names are
// derived from field names under Prefix, e.g. IPO_NASDAQ_CALENDAR_URL.
type Config struct {
	DataDir     string `yaml:"data_dir" split_words:"true" validate:"required"`
	WebsiteDir  string `yaml:"website_dir" split_words:"true" validate:"required"`
	Backend     string `yaml:"backend" validate:"oneof=fs postgres"`
	DatabaseURL string `yaml:"database_url" split_words:"true" validate:"required_if=Backend postgres"`
	Port        string `yaml:"port" validate:"required,numeric"`

	Log    LogConfig    `yaml:"log"`
	Nasdaq NasdaqConfig `yaml:"nasdaq"`
	SEC    SECConfig    `yaml:"sec"`
	PDF    PDFConfig    `yaml:"pdf"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// NasdaqConfig configures the IPO calendar client.
type NasdaqConfig struct {
	CalendarURL  string        `yaml:"calendar_url" split_words:"true" validate:"required,url"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	RPS          float64       `yaml:"rps" validate:"gt=0"`
	MockFallback bool          `yaml:"mock_fallback" split_words:"true"`
}

// SECConfig configures the rule page scraper.
type SECConfig struct {
	ProposedURL string `yaml:"proposed_url" split_words:"true" validate:"required,url"`
	FinalURL    string `yaml:"final_url" split_words:"true" validate:"required,url"`
	UserAgent   string `yaml:"user_agent" split_words:"true"`
}

// PDFConfig controls headless Chrome printing of the report pages.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Load reads the environment and, if present, the YAML file named by
// IPO_CONFIG_FILE (default ipo-watch.yaml). Environment values win.
func Load() (*Config, error) {
	path := os.Getenv(Prefix + "_CONFIG_FILE")
	if path == "" {
		path = "ipo-watch.yaml"
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit YAML path. A missing file is not an error.
// Precedence, lowest first: defaults, file, DATABASE_URL and PORT, then
// IPO_-prefixed variables.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// the only unprefixed names honoured
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		cfg.Port = v
	}

	// fields whose variable is unset keep their file or default value
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:    ".",
		WebsiteDir: "website",
		Backend:    "fs",
		Port:       "8080",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Nasdaq: NasdaqConfig{
			CalendarURL:  "https://api.nasdaq.com/api/ipo/calendar",
			Timeout:      30 * time.Second,
			RPS:          1,
			MockFallback: true,
		},
		SEC: SECConfig{
			ProposedURL: "https://www.sec.gov/rules/proposed.shtml",
			FinalURL:    "https://www.sec.gov/rules/final.shtml",
			UserAgent:   "ipo-watch/1.0 (admin@example.com)",
		},
		PDF: PDFConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
