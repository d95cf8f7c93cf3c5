package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/OpsWing/types"
	"github.com/spf13/afero"
)

// Open returns the RecordStore selected by cfg.Driver.
func Open(ctx context.Context, cfg types.StoreConfig) (RecordStore, error) {
	switch cfg.Driver {
	case "", "file":
		s, err := NewFileStore(afero.NewOsFs(), cfg.Path, cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		slog.Debug("record store opened", "driver", "file", "path", cfg.Path)
		return s, nil
	case "sqlite":
		s, err := NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		slog.Debug("record store opened", "driver", "sqlite", "path", cfg.Path)
		return s, nil
	case "postgres":
		s, err := NewPostgresStore(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		slog.Debug("record store opened", "driver", "postgres")
		return s, nil
	}
	return nil, fmt.Errorf("unsupported store driver: %s. Supported drivers are file, sqlite, postgres", cfg.Driver)
}
