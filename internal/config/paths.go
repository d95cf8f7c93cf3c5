package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.opswing).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".opswing"), nil
}

// LocalDir is the per-project directory checked before the global one.
const LocalDir = ".opswing"

// GetDataDir returns the directory holding the workbook, database and crash logs.
// Resolution order (first match wins):
// 1. Local project directory: .opswing (if exists)
// 2. XDG_DATA_HOME/opswing (if XDG_DATA_HOME is set)
// 3. Global fallback: ~/.opswing
func GetDataDir() string {
	if info, err := os.Stat(LocalDir); err == nil && info.IsDir() {
		return LocalDir
	}
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "opswing")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return LocalDir
	}
	return dir
}

// GetStorePath returns store.path when set, otherwise the default file for
// the driver inside GetDataDir.
func GetStorePath(driver string) string {
	if path := viper.GetString("store.path"); path != "" {
		return path
	}
	name := DefaultWorkbookFile
	if driver == DriverSQLite {
		name = DefaultSQLiteFile
	}
	return filepath.Join(GetDataDir(), name)
}
