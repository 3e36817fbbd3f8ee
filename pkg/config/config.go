package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
	"github.com/goliatone/go-opsboard/pkg/telemetry"
)

// Config holds the opsboard CLI configuration.
type Config struct {
	OutputDir    string        `yaml:"output_dir"`
	Locale       string        `yaml:"locale"`
	DefaultRange string        `yaml:"default_range"` // 7d, 30d, 90d, 12m
	PageSize     int           `yaml:"page_size"`
	Theme        string        `yaml:"theme"`
	Seed         uint64        `yaml:"seed"` // 0 = random
	AssetsHost   string        `yaml:"assets_host"`
	Manifests    []string      `yaml:"manifests"`
	Logging      LoggingConfig `yaml:"logging"`
	Export       ExportConfig  `yaml:"export"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format   string `yaml:"format"` // xlsx, csv, json
	Humanize *bool  `yaml:"humanize"`
}

// HumanizeHeaders reports whether export headers are title-cased. Defaults to true.
func (e ExportConfig) HumanizeHeaders() bool {
	return e.Humanize == nil || *e.Humanize
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. ${VAR} and ${VAR:-default}
// references are expanded from the environment before parsing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(expandEnvVars(data)))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses, defaults and validates a configuration document. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "exports"
	}
	if c.Locale == "" {
		c.Locale = dataview.DefaultLocale.String()
	}
	if c.DefaultRange == "" {
		c.DefaultRange = string(provider.DefaultRange)
	}
	if c.PageSize <= 0 {
		c.PageSize = dataview.DefaultPageSize
	}
	if c.Theme == "" {
		c.Theme = "westeros"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = telemetry.FormatConsole
	}
	if c.Export.Format == "" {
		c.Export.Format = string(export.FormatXLSX)
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if _, err := provider.ParseDateRange(c.DefaultRange); err != nil {
		return fmt.Errorf("default_range: %w", err)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if _, err := dataview.ParseFormatter(c.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if c.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100, got %d", c.PageSize)
	}
	switch c.Logging.Format {
	case telemetry.FormatJSON, telemetry.FormatConsole:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", telemetry.FormatJSON, telemetry.FormatConsole, c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, fallback, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = fallback
		}
		return []byte(val)
	})
}
