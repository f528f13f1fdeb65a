package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) ReloadIfChanged(context.Context) (bool, error) {
	r.calls.Add(1)
	return true, nil
}

func startWatcher(t *testing.T, path string, reloader Reloader) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	w := New(path, reloader, WithDebounce(20*time.Millisecond))
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)
	return cancel, errCh
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table_tests.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	reloader := &countingReloader{}
	cancel, errCh := startWatcher(t, path, reloader)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"pdf":"a"}`+"\n"), 0o644))
	}

	require.Eventually(t, func() bool { return reloader.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), reloader.calls.Load(), "a burst of writes is debounced into one reload")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcherReloadsOnRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table_tests.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	reloader := &countingReloader{}
	cancel, _ := startWatcher(t, path, reloader)
	defer cancel()

	tmp := filepath.Join(dir, ".table_tests.jsonl.tmp-1")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"pdf":"b"}`+"\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool { return reloader.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table_tests.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	reloader := &countingReloader{}
	cancel, _ := startWatcher(t, path, reloader)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), reloader.calls.Load())
}

type failingReloader struct {
	calls atomic.Int32
}

func (r *failingReloader) ReloadIfChanged(context.Context) (bool, error) {
	r.calls.Add(1)
	return false, errors.New("half-written file")
}

func TestWatcherKeepsRunningAfterReloadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table_tests.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	reloader := &failingReloader{}
	cancel, _ := startWatcher(t, path, reloader)
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.Eventually(t, func() bool { return reloader.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("y"), 0o644))
	require.Eventually(t, func() bool { return reloader.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "table_tests.jsonl"), &countingReloader{})
	err := w.Run(context.Background())
	require.Error(t, err)
}
