// Package telemetry reports anonymous, opt-in usage events for OpsWing.
// Only operation names and coarse counts are sent; never record contents.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StateFileName is the file that keeps the anonymous install ID.
const StateFileName = "telemetry.json"

// Config holds the telemetry state for this install.
type Config struct {
	// Enabled mirrors telemetry.enabled from the application config.
	Enabled bool `json:"-"`

	// AnonymousID is a random UUID generated once per install.
	// Not tied to any personally identifiable information.
	AnonymousID string `json:"anonymous_id"`
}

// IsEnabled returns true if telemetry is currently enabled.
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}

// Load reads the state file in dir, creating an anonymous ID on first use.
func Load(dir string, enabled bool) (*Config, error) {
	cfg := &Config{Enabled: enabled}
	path := filepath.Join(dir, StateFileName)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse telemetry state: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read telemetry state: %w", err)
	}

	if cfg.AnonymousID == "" {
		cfg.AnonymousID = uuid.New().String()
		if enabled {
			if err := cfg.Save(dir); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

// Save writes the state file with owner-only permissions.
func (c *Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create telemetry directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal telemetry state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, StateFileName), data, 0600); err != nil {
		return fmt.Errorf("write telemetry state: %w", err)
	}
	return nil
}
