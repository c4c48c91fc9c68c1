// Package config loads the optional TOML configuration file and applies
// defaults. A missing file is not an error; a present file must parse and
// validate.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all tunable settings for the CLI.
type Config struct {
	CachePath      string `toml:"cache_path" validate:"required"`
	GeocoderURL    string `toml:"geocoder_url" validate:"required,url"`
	JourneyURL     string `toml:"journey_url" validate:"required,url"`
	ClientName     string `toml:"client_name" validate:"required"`
	RequestTimeout int    `toml:"request_timeout" validate:"gt=0"`
	TimeRange      int    `toml:"time_range" validate:"gt=0"`
	DepartureCount int    `toml:"departure_count" validate:"gt=0,lte=100"`
	HintLimit      int    `toml:"hint_limit" validate:"gte=0,lte=20"`
	LogLevel       string `toml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat      string `toml:"log_format" validate:"omitempty,oneof=console json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CachePath:      "~/.cache/reise/stops.json",
		GeocoderURL:    "https://api.entur.io/geocoder/v1/autocomplete",
		JourneyURL:     "https://api.entur.io/journey-planner/v3/graphql",
		ClientName:     "reise-cli",
		RequestTimeout: 15,
		TimeRange:      3600,
		DepartureCount: 20,
		HintLimit:      5,
		LogLevel:       "warn",
		LogFormat:      "console",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return "~/.config/reise/config.toml"
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields the defaults. Explicit paths must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return finish(cfg)
		}
		return cfg, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return finish(cfg)
}

func finish(cfg Config) (Config, error) {
	expanded, err := ExpandPath(cfg.CachePath)
	if err != nil {
		return cfg, err
	}
	cfg.CachePath = expanded

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
