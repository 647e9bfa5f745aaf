// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "MASSREPLACE_CONFIG"

// Report file formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Config is the complete configuration of a replacement run.
type Config struct {
	// World is the save directory to read.
	World string `yaml:"world"`

	// Output is where the world is copied before replacement. Ignored
	// when InPlace is set.
	Output string `yaml:"output"`

	// Rules is the path of the rule list.
	// Default: blocks.json
	Rules string `yaml:"rules"`

	// Workers bounds concurrent file processing. Zero means one per CPU.
	Workers int `yaml:"workers"`

	// InPlace rewrites World directly instead of a copy.
	InPlace bool `yaml:"in_place"`

	// DryRun counts matches without writing anything.
	DryRun bool `yaml:"dry_run"`

	// Report configures the optional run report file.
	Report ReportConfig `yaml:"report"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`
}

// ReportConfig configures the run report file.
type ReportConfig struct {
	// Path is where the report is written. Empty means no report.
	Path string `yaml:"path"`

	// Format is "json" or "cbor".
	// Default: json
	Format string `yaml:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// SlogLevel returns the configured level as a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Default returns the default configuration. Fields left unset in the
// config file keep these values.
func Default() *Config {
	return &Config{
		Rules:  "blocks.json",
		Report: ReportConfig{Format: FormatJSON},
		Log:    LogConfig{Level: "info"},
	}
}

// Load loads configuration from the MASSREPLACE_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of a massreplace.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path on top of
// [Default]. The only expansion performed is ${HOME}, ${WORLD} and
// ${VAR:-default} in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	// An empty file decodes to io.EOF and leaves the defaults.
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.World = expandVars(c.World, vars)
	vars["WORLD"] = c.World // Dependent paths may refer to the world.

	c.Output = expandVars(c.Output, vars)
	c.Rules = expandVars(c.Rules, vars)
	c.Report.Path = expandVars(c.Report.Path, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.World == "" {
		errs = append(errs, errors.New("world is required"))
	}
	if c.Rules == "" {
		errs = append(errs, errors.New("rules is required"))
	}
	if c.InPlace && c.Output != "" {
		errs = append(errs, errors.New("output must be empty when in_place is set"))
	}
	if !c.InPlace && !c.DryRun && c.Output == "" {
		errs = append(errs, errors.New("output is required unless in_place or dry_run is set"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}

	formats := []string{FormatJSON, FormatCBOR}
	if !slices.Contains(formats, c.Report.Format) {
		errs = append(errs, fmt.Errorf("report.format must be one of: %v", formats))
	}

	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
