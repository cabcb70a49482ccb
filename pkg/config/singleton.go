package config

import (
	"fmt"
	"sync"
)

var (
	// current holds the process-wide configuration.
	current   *Config
	currentMu sync.RWMutex
)

// Adjuster modifies a freshly loaded configuration before it is validated
// and published.
type Adjuster func(*Config)

// GetConfig returns the process-wide configuration, or nil before the
// first successful ReloadConfig or SetConfig.
func GetConfig() *Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetConfig replaces the process-wide configuration. The published value
// must not be mutated afterwards.
func SetConfig(cfg *Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = cfg
}

// ReloadConfig loads path with environment overrides, runs each adjuster
// on the private copy, validates the result and publishes it. On failure
// the published configuration is left unchanged.
func ReloadConfig(path string, adjust ...Adjuster) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(adjust) > 0 {
		for _, fn := range adjust {
			fn(cfg)
		}
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	SetConfig(cfg)
	return cfg, nil
}
