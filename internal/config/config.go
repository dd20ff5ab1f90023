// Package config defines the .suitegen configuration file and its
// defaults. Settings merge in viper's order: command-line flag, then
// environment, then config file, then default.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultOutput = "tests"
)

// knownKeys lists every setting the config file may carry.
var knownKeys = map[string]bool{
	"input":       true,
	"output":      true,
	"environment": true,
	"flatten":     true,
	"enhanced":    true,
	"strict":      true,
	"time-budget": true,
	"report":      true,
}

// Config holds the settings a generate run is driven by.
type Config struct {
	Input       string `mapstructure:"input"`
	Output      string `mapstructure:"output"`
	Environment string `mapstructure:"environment"`
	Flatten     bool   `mapstructure:"flatten"`
	Enhanced    bool   `mapstructure:"enhanced"`
	Strict      bool   `mapstructure:"strict"`
	TimeBudget  int    `mapstructure:"time-budget"`
	Report      string `mapstructure:"report"`
}

// FromViper resolves the merged settings into a Config and applies
// defaults for anything still unset.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to resolve settings: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
}

// Validate checks the resolved settings and returns non-fatal warnings
// alongside any fatal error.
func Validate(cfg *Config) ([]string, error) {
	var warnings []string

	if cfg.TimeBudget < 0 {
		return warnings, fmt.Errorf("time-budget must not be negative, got %d", cfg.TimeBudget)
	}
	if cfg.Report != "" {
		switch strings.ToLower(filepath.Ext(cfg.Report)) {
		case ".json", ".yaml", ".yml":
		default:
			warnings = append(warnings, fmt.Sprintf("report path %q has an unrecognized extension; YAML will be written", cfg.Report))
		}
	}
	if cfg.TimeBudget > 0 && !cfg.Enhanced {
		warnings = append(warnings, "time-budget has no effect without enhanced mode")
	}

	return warnings, nil
}

// UnknownKeys reports settings present in the merged configuration that
// no released version reads. Bound flags and defaults only ever use
// known keys, so anything else came from the config file.
func UnknownKeys(v *viper.Viper) []string {
	var unknown []string
	for key := range v.AllSettings() {
		if !knownKeys[key] {
			unknown = append(unknown, fmt.Sprintf("unknown setting %q (ignored)", key))
		}
	}
	sort.Strings(unknown)
	return unknown
}
