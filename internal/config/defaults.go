// Package config provides centralized configuration constants for OpsWing.
// All default values should be defined here to ensure a single source of truth.
package config

import "github.com/spf13/viper"

// Store drivers
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// DefaultPort is the HTTP API port
	DefaultPort = 5000

	DefaultStoreDriver  = DriverFile
	DefaultWorkbookFile = "workbook.json"
	DefaultSQLiteFile   = "opswing.db"

	// DefaultWeighting is the assignment priority strategy
	DefaultWeighting = "multiplicative"

	DefaultSender = "log"
	DefaultFrom   = "noreply@opswing.local"
)

// DefaultAllowedOrigins lets a local frontend reach the API.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.allowedOrigins", DefaultAllowedOrigins)
	v.SetDefault("store.driver", DefaultStoreDriver)
	v.SetDefault("store.path", "")
	v.SetDefault("store.format", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.watch", false)
	v.SetDefault("analysis.weighting", DefaultWeighting)
	v.SetDefault("notify.sender", DefaultSender)
	v.SetDefault("notify.from", DefaultFrom)
	v.SetDefault("notify.managerEmail", "")
	v.SetDefault("policy.dir", "")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.apiKey", "")
}
