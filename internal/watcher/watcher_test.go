package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", w.Path())
		return Event{}
	}
}

func TestWatcher_DeliversEventsForWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "STATE.md")

	w := New(path)
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.Active())

	require.NoError(t, os.WriteFile(path, []byte("Phase: 1\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, path, ev.Path)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ralph.log")

	w := New(path)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("Iteration: 1\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, "ralph.log", filepath.Base(ev.Path))
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "STATE.md"))

	err := w.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDir))
	assert.False(t, w.Active())

	w.Stop()
	w.Stop()
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "STATE.md"))
	require.NoError(t, w.Start())

	w.Stop()
	w.Stop()

	var nilWatcher *Watcher
	nilWatcher.Stop()
	assert.Nil(t, nilWatcher.Events())
	assert.False(t, nilWatcher.Active())
}

func TestWatcher_StartTwice(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "STATE.md"))
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.Error(t, w.Start())
}
