package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/platekeeper/internal/watcher"
)

func startWatcher(t *testing.T, dbPath string) <-chan struct{} {
	t.Helper()

	w, err := watcher.New(watcher.Config{
		DBPath:      dbPath,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "platekeeper.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("seed"), 0o600))

	onChange := startWatcher(t, dbPath)

	// A burst of writes coalesces into one signal
	for i := range 10 {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("write%d", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		require.Fail(t, "expected notification but got timeout")
	}

	select {
	case <-onChange:
		require.Fail(t, "unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "platekeeper.db")
	otherPath := filepath.Join(dir, "platekeeper.db.bak")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o600))
	require.NoError(t, os.WriteFile(otherPath, []byte("backup"), 0o600))

	onChange := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("newer backup"), 0o600))

	select {
	case <-onChange:
		require.Fail(t, "should not notify for the backup file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WatchesWALFile(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "registry.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o600))

	onChange := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "registry.db-wal"), []byte("wal"), 0o600))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		require.Fail(t, "expected notification for WAL file write")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "platekeeper.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("seed"), 0o600))

	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Stop() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "Stop() timed out - possible deadlock")
	}

	require.NoError(t, w.Stop(), "second Stop is a no-op")
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "platekeeper.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/var/lib/platekeeper/platekeeper.db")

	require.Equal(t, "/var/lib/platekeeper/platekeeper.db", cfg.DBPath)
	require.Equal(t, 500*time.Millisecond, cfg.DebounceDur)
}
