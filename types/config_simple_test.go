package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Port: 5000, AllowedOrigins: []string{"http://localhost:3000"}},
		Store:  StoreConfig{Driver: "file", Path: "/tmp/opswing/workbook.json", Format: "json"},
		Notify: NotifyConfig{Sender: "log", From: "ops@example.com"},
	}
}

func TestAppConfig_Validate(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(*AppConfig) {}},
		{name: "missing port", mutate: func(c *AppConfig) { c.Server.Port = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *AppConfig) { c.Store.Driver = "sheets" }, wantErr: true},
		{name: "file driver needs path", mutate: func(c *AppConfig) { c.Store.Path = "" }, wantErr: true},
		{name: "bad format", mutate: func(c *AppConfig) { c.Store.Format = "toml" }, wantErr: true},
		{
			name:    "postgres needs dsn",
			mutate:  func(c *AppConfig) { c.Store = StoreConfig{Driver: "postgres"} },
			wantErr: true,
		},
		{
			name:   "postgres with dsn",
			mutate: func(c *AppConfig) { c.Store = StoreConfig{Driver: "postgres", DSN: "postgres://localhost/ops"} },
		},
		{name: "bad weighting", mutate: func(c *AppConfig) { c.Analysis.Weighting = "random" }, wantErr: true},
		{name: "bad sender", mutate: func(c *AppConfig) { c.Notify.Sender = "smtp" }, wantErr: true},
		{name: "bad manager email", mutate: func(c *AppConfig) { c.Notify.ManagerEmail = "boss" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := v.Struct(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
