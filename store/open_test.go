package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/OpsWing/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     types.StoreConfig
		want    any
		wantErr bool
	}{
		{name: "file", cfg: types.StoreConfig{Driver: "file", Path: filepath.Join(dir, "ops.yaml")}, want: &FileStore{}},
		{name: "sqlite", cfg: types.StoreConfig{Driver: "sqlite", Path: filepath.Join(dir, "ops.db")}, want: &SQLiteStore{}},
		{name: "unknown driver", cfg: types.StoreConfig{Driver: "mongo"}, wantErr: true},
		{name: "file without path", cfg: types.StoreConfig{Driver: "file"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			assert.IsType(t, tt.want, s)
		})
	}
}
