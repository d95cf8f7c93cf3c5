package store

import (
	"context"
	"os"
	"testing"

	"github.com/josephgoksu/OpsWing/types"
	"github.com/stretchr/testify/require"
)

// Set OPSWING_TEST_POSTGRES_DSN to a disposable database to run these.
func postgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("OPSWING_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("OPSWING_TEST_POSTGRES_DSN not set")
	}
	return dsn
}

func TestPostgresStore_RecordLifecycle(t *testing.T) {
	dsn := postgresDSN(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.pool.Exec(ctx, `TRUNCATE tasks, team_members, kpis, delegations`)
	require.NoError(t, err)

	exerciseRecordStore(t, s)
}

func TestOpen_Postgres(t *testing.T) {
	dsn := postgresDSN(t)
	s, err := Open(context.Background(), types.StoreConfig{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewPool_BadDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz")
	require.Error(t, err)
}
