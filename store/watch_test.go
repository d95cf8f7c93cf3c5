package store

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_WatchReloadsExternalEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.json")

	s, err := NewFileStore(afero.NewOsFs(), path, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, func() { changes.Add(1) }) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	edited := `{"team":[{"employee_id":"1","name":"Grace"}]}`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	require.Eventually(t, func() bool { return changes.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	team, err := s.ListTeamMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, "Grace", team[0].Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
