// Package config parses the process-wide engine configuration file: asset
// root, watch debounce, log level, and an NBR major/minor version pair.
// The parsed version is not read by engine/nbr: Save and Load always use
// nbr.CurrentMajorVersion and nbr.CurrentMinorVersion.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// tmpConfig is the on-disk TOML shape, kept separate from Config so the
// file format can gain fields (or rename them) without touching callers.
type tmpConfig struct {
	AssetRoot       string `toml:"asset_root"`
	WatchDebounceMS int64  `toml:"watch_debounce_ms"`
	NBRMajorVersion int16  `toml:"nbr_major_version"`
	NBRMinorVersion int16  `toml:"nbr_minor_version"`
	LogLevel        string `toml:"log_level"`
}

func (c *tmpConfig) Validate() error {
	if c.AssetRoot == "" {
		return fmt.Errorf("config: asset_root must not be empty")
	}
	if c.WatchDebounceMS < 0 {
		return fmt.Errorf("config: watch_debounce_ms must not be negative, got %d", c.WatchDebounceMS)
	}
	if c.NBRMajorVersion <= 0 {
		return fmt.Errorf("config: nbr_major_version must be positive, got %d", c.NBRMajorVersion)
	}
	return nil
}

// Config is the resolved, typed engine configuration.
type Config struct {
	AssetRoot       string
	WatchDebounce   time.Duration
	NBRMajorVersion int16
	NBRMinorVersion int16
	LogLevel        string
}

func (c *tmpConfig) transform() *Config {
	return &Config{
		AssetRoot:       c.AssetRoot,
		WatchDebounce:   time.Duration(c.WatchDebounceMS) * time.Millisecond,
		NBRMajorVersion: c.NBRMajorVersion,
		NBRMinorVersion: c.NBRMinorVersion,
		LogLevel:        c.LogLevel,
	}
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		AssetRoot:       "assets",
		WatchDebounce:   100 * time.Millisecond,
		NBRMajorVersion: 1,
		NBRMinorVersion: 0,
		LogLevel:        "info",
	}
}

// Load parses a TOML engine config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var tmp tmpConfig
	if err := toml.Unmarshal(data, &tmp); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := tmp.Validate(); err != nil {
		return nil, err
	}
	return tmp.transform(), nil
}
