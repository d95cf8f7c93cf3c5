/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose   bool            `mapstructure:"verbose"`
	Config    string          `mapstructure:"config"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Store     StoreConfig     `mapstructure:"store" validate:"required"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Policy    PolicyConfig    `mapstructure:"policy"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// StoreConfig selects and configures the record store backend
type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=file sqlite postgres"`
	// Path is the workbook file for the file driver or the database file for sqlite.
	Path   string `mapstructure:"path" validate:"required_unless=Driver postgres"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml"`
	DSN    string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
	// Watch reloads the file workbook when it changes on disk.
	Watch bool `mapstructure:"watch"`
}

// AnalysisConfig holds engine settings. Lexicon and template overrides are
// read straight from viper by the analysis package since their order matters.
type AnalysisConfig struct {
	Weighting string `mapstructure:"weighting" validate:"omitempty,oneof=multiplicative threshold_penalty"`
}

// NotifyConfig holds notification settings
type NotifyConfig struct {
	Sender       string `mapstructure:"sender" validate:"omitempty,oneof=log memory"`
	From         string `mapstructure:"from" validate:"omitempty,email"`
	ManagerEmail string `mapstructure:"managerEmail" validate:"omitempty,email"`
}

// PolicyConfig points at an optional directory of Rego assignment policies
type PolicyConfig struct {
	Dir string `mapstructure:"dir"`
}

// TelemetryConfig holds opt-in usage reporting settings
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"apiKey"`
}
