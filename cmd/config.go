package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/OpsWing/internal/config"
	"github.com/josephgoksu/OpsWing/types"
	"github.com/spf13/viper"
)

const (
	configName = ".opswing"
	envPrefix  = "OPSWING"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// configErr is reported by the root PersistentPreRunE; OnInitialize hooks
// cannot return errors themselves.
var configErr error

// validate is a single instance of Translate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	configErr = loadConfig()
}

func loadConfig() error {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		if info, err := os.Stat(config.LocalDir); err == nil && info.IsDir() {
			viper.AddConfigPath(config.LocalDir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case cfgFileFlag != "" && (errors.As(err, &notFound) || os.IsNotExist(err)):
			return fmt.Errorf("config file not found: %s", cfgFileFlag)
		case errors.As(err, &notFound):
			LogError("no config file found, using defaults and environment", nil)
		default:
			return fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
		}
	} else {
		LogError("using config file "+viper.ConfigFileUsed(), nil)
	}

	GlobalAppConfig = types.AppConfig{}
	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	if GlobalAppConfig.Store.Path == "" && GlobalAppConfig.Store.Driver != config.DriverPostgres {
		GlobalAppConfig.Store.Path = config.GetStorePath(GlobalAppConfig.Store.Driver)
	}
	return validateAppConfig(&GlobalAppConfig)
}

// GetConfig returns the loaded application configuration.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
