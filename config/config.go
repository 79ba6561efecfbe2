// Package config loads pageconv settings from an optional YAML file and
// merges explicitly set command-line flags over them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/pageconv/core/blocks"
	"github.com/gaurav-prasanna/pageconv/core/fetch"
)

// Config is the full set of pageconv settings.
type Config struct {
	Readable  bool        `yaml:"readable"`
	OutputDir string      `yaml:"output_dir"`
	LogLevel  string      `yaml:"log_level"`
	Extractor string      `yaml:"extractor"` // readability | selector
	Fetch     FetchConfig `yaml:"fetch"`
	Blocks    BlockConfig `yaml:"blocks"`
}

// FetchConfig configures the HTTP fetcher.
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// BlockConfig configures Markdown to blocks conversion. StrictImageURLs
// also switches the CLI from the fail-open conversion to one that reports
// its errors.
type BlockConfig struct {
	StrictImageURLs bool `yaml:"strict_image_urls"`
	Truncate        bool `yaml:"truncate"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		Extractor: "readability",
		Fetch: FetchConfig{
			Timeout:   fetch.DefaultTimeout,
			UserAgent: fetch.DefaultUserAgent,
		},
		Blocks: BlockConfig{
			Truncate: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Environment variables in the file are expanded; unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Extractor {
	case "", "readability", "selector":
	default:
		return fmt.Errorf("unknown extractor %q", c.Extractor)
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must not be negative")
	}
	return nil
}

// ApplyFlags overrides settings with the flags the user set explicitly.
// Flags left at their defaults do not override the file.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "readable":
			c.Readable, err = fs.GetBool(f.Name)
		case "output_dir":
			c.OutputDir, err = fs.GetString(f.Name)
		case "log-level":
			c.LogLevel, err = fs.GetString(f.Name)
		case "extractor":
			c.Extractor, err = fs.GetString(f.Name)
		case "timeout":
			c.Fetch.Timeout, err = fs.GetDuration(f.Name)
		case "user-agent":
			c.Fetch.UserAgent, err = fs.GetString(f.Name)
		case "strict-images":
			c.Blocks.StrictImageURLs, err = fs.GetBool(f.Name)
		case "truncate":
			c.Blocks.Truncate, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("reading flags: %w", err)
	}
	return c.Validate()
}

// BlockOptions converts the block settings to conversion options.
func (c *Config) BlockOptions() blocks.Options {
	opts := blocks.DefaultOptions()
	opts.StrictImageURLs = c.Blocks.StrictImageURLs
	opts.Truncate = c.Blocks.Truncate
	return opts
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
