package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// starterConfig is written by `opswing config init`. Keys mirror the viper
// layout so the file round-trips through InitConfig.
type starterConfig struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Store struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
		Watch  bool   `yaml:"watch"`
	} `yaml:"store"`
	Analysis struct {
		Weighting string `yaml:"weighting"`
	} `yaml:"analysis"`
	Notify struct {
		Sender       string `yaml:"sender"`
		From         string `yaml:"from"`
		ManagerEmail string `yaml:"managerEmail,omitempty"`
	} `yaml:"notify"`
	Telemetry struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"telemetry"`
}

const starterHeader = "# OpsWing Configuration\n# Environment variables override these values as OPSWING_<SECTION>_<KEY>.\n"

// WriteStarterConfig writes a config file populated with defaults to path.
// An existing file is left alone unless force is set.
func WriteStarterConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	var c starterConfig
	c.Server.Port = DefaultPort
	c.Server.AllowedOrigins = DefaultAllowedOrigins
	c.Store.Driver = DefaultStoreDriver
	c.Store.Path = filepath.Join(LocalDir, DefaultWorkbookFile)
	c.Analysis.Weighting = DefaultWeighting
	c.Notify.Sender = DefaultSender
	c.Notify.From = DefaultFrom

	out, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(starterHeader), out...), 0600)
}
