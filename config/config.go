// Package config loads runtime settings for the bar: defaults, then an
// optional YAML file, then ROCKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "ROCKS_"

// Config holds the settings shared by the CLI and TUI front ends.
type Config struct {
	ContentDir  string `yaml:"content_dir" env:"CONTENT_DIR"`
	Plain       bool   `yaml:"plain" env:"PLAIN"`
	Trace       bool   `yaml:"trace" env:"TRACE"`
	LogFile     string `yaml:"log_file" env:"LOG_FILE"`
	Glass       string `yaml:"glass" env:"GLASS"`
	HistorySize int    `yaml:"history_size" env:"HISTORY_SIZE"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ContentDir:  "content",
		HistorySize: 100,
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty) and the environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays ROCKS_* environment variables onto target. Unset
// variables leave the existing values alone.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports settings no front end can run with.
func (c Config) Validate() error {
	var errs []error
	if c.ContentDir == "" {
		errs = append(errs, errors.New("content_dir must not be empty"))
	}
	if c.HistorySize <= 0 {
		errs = append(errs, fmt.Errorf("history_size must be positive, got %d", c.HistorySize))
	}
	return errors.Join(errs...)
}
