package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/app"
	"github.com/josephgoksu/OpsWing/internal/config"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/internal/policy"
	"github.com/josephgoksu/OpsWing/internal/telemetry"
	"github.com/josephgoksu/OpsWing/store"
	"github.com/josephgoksu/OpsWing/types"
	"github.com/spf13/viper"
)

// newService assembles a Service from cfg. The caller closes it.
func newService(ctx context.Context, cfg *types.AppConfig) (*app.Service, store.RecordStore, error) {
	acfg, err := analysis.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("load analysis config: %w", err)
	}

	var engine *policy.Engine
	if cfg.Policy.Dir != "" {
		engine, err = policy.NewEngine(ctx, policy.EngineConfig{PoliciesDir: cfg.Policy.Dir})
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("assignment policies loaded", "dir", cfg.Policy.Dir, "count", engine.PolicyCount())
	}

	sender, err := notify.NewSender(cfg.Notify.Sender)
	if err != nil {
		return nil, nil, err
	}

	rs, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	svc := app.New(app.Options{
		Store:        rs,
		Analyzer:     analysis.New(acfg),
		Policy:       engine,
		Notifier:     notify.NewNotifier(nil, sender, cfg.Notify.From),
		Telemetry:    newTelemetry(cfg.Telemetry),
		ManagerEmail: cfg.Notify.ManagerEmail,
	})
	return svc, rs, nil
}

func newTelemetry(cfg types.TelemetryConfig) telemetry.Client {
	if !cfg.Enabled {
		return telemetry.NewNoopClient()
	}
	tcfg, err := telemetry.Load(config.GetDataDir(), true)
	if err != nil {
		LogError("telemetry disabled", err)
		return telemetry.NewNoopClient()
	}
	return telemetry.New(telemetry.ClientConfig{
		APIKey:  cfg.APIKey,
		Version: version,
		Config:  tcfg,
	})
}

// withService opens the configured service, runs fn and closes it.
func withService(ctx context.Context, fn func(*app.Service) error) error {
	svc, _, err := newService(ctx, GetConfig())
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			LogError("close service", err)
		}
	}()
	return fn(svc)
}
