package dashboard

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/progresswatch/internal/config"
	"github.com/watchfire-io/progresswatch/internal/logging"
	"github.com/watchfire-io/progresswatch/internal/models"
	"github.com/watchfire-io/progresswatch/internal/render"
)

// recorder is a FrameRenderer that keeps every frame.
type recorder struct {
	mu     sync.Mutex
	frames []render.Frame
}

func (r *recorder) Render(f render.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recorder) last() render.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func (r *recorder) any(match func(render.Frame) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.frames {
		if match(f) {
			return true
		}
	}
	return false
}

func newTestController(t *testing.T, root string, interval time.Duration) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := New(Options{
		StatePath: config.StateFile(root),
		LogPath:   config.LogFile(root),
		Interval:  interval,
		Renderer:  rec,
		Now:       func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return c, rec
}

func runController(t *testing.T, c *Controller) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel, done
}

func writeLog(t *testing.T, root string, n int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "Iteration: %d\nTask: task-%d\nStatus: SUCCESS\n---\n", i, i)
	}
	require.NoError(t, os.WriteFile(config.LogFile(root), []byte(b.String()), 0o644))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{StatePath: "s", LogPath: "l", Interval: time.Second})
	assert.Error(t, err)

	_, err = New(Options{StatePath: "s", LogPath: "l", Renderer: &recorder{}})
	assert.Error(t, err)

	c, err := New(Options{StatePath: "s", LogPath: "l", Interval: time.Second, Renderer: &recorder{}})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRecentEntries, c.opts.Recent)
	assert.Equal(t, models.DefaultTitle, c.opts.Title)
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestStart_RendersWaitingStateWithoutFiles(t *testing.T) {
	root := t.TempDir()
	c, rec := newTestController(t, root, time.Hour)

	require.NoError(t, c.Start())
	defer c.Stop()

	assert.Equal(t, PhaseWatching, c.Phase())
	require.Equal(t, 1, rec.count())
	f := rec.last()
	assert.True(t, f.State.Missing)
	assert.Equal(t, "STATE.md", f.State.Name)
	assert.True(t, f.Log.Missing)
	assert.Equal(t, "ralph.log", f.Log.Name)

	assert.Nil(t, c.stateWatcher, "planning dir does not exist")
	assert.Nil(t, c.logWatcher)
}

func TestStart_Twice(t *testing.T) {
	c, _ := newTestController(t, t.TempDir(), time.Hour)
	require.NoError(t, c.Start())
	defer c.Stop()

	assert.Error(t, c.Start())
}

func TestRun_RequiresStart(t *testing.T) {
	c, _ := newTestController(t, t.TempDir(), time.Hour)
	assert.Error(t, c.Run(context.Background()))
}

func TestPass_MissingStateStillReadsLog(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PlanningDir(root), 0o755))
	writeLog(t, root, 2)

	c, rec := newTestController(t, root, time.Hour)
	require.NoError(t, c.Pass(TriggerTick))

	f := rec.last()
	assert.True(t, f.State.Missing)
	assert.False(t, f.Log.Missing)
	require.Len(t, f.Log.Value, 2)
}

func TestPass_ShowsLastFiveEntries(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PlanningDir(root), 0o755))
	writeLog(t, root, 7)

	c, rec := newTestController(t, root, time.Hour)
	require.NoError(t, c.Pass(TriggerTick))

	entries := rec.last().Log.Value
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprint(i+3), e.Iteration)
	}
}

func TestPass_ReadErrorIsInline(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.StateFile(root), 0o755)) // a directory cannot be read as a file
	writeLog(t, root, 1)

	c, rec := newTestController(t, root, time.Hour)
	require.NoError(t, c.Pass(TriggerTick))

	f := rec.last()
	assert.Error(t, f.State.Err)
	assert.False(t, f.State.Missing)
	assert.NoError(t, f.Log.Err)
	assert.Len(t, f.Log.Value, 1)
}

func TestRun_FileChangeTriggersPass(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PlanningDir(root), 0o755))

	c, rec := newTestController(t, root, time.Hour)
	require.NoError(t, c.Start())
	require.True(t, c.stateWatcher.Active())
	require.True(t, c.logWatcher.Active())
	runController(t, c)

	require.NoError(t, os.WriteFile(config.StateFile(root), []byte("Phase: Build\nStatus: SUCCESS\n"), 0o644))
	require.Eventually(t, func() bool {
		return rec.any(func(f render.Frame) bool { return f.State.Value.Phase == "Build" })
	}, 5*time.Second, 10*time.Millisecond)

	writeLog(t, root, 3)
	require.Eventually(t, func() bool {
		return rec.any(func(f render.Frame) bool {
			// every pass re-reads both artifacts
			return len(f.Log.Value) == 3 && f.State.Value.Phase == "Build"
		})
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRun_TimerDrivesPassesWithoutWatches(t *testing.T) {
	root := t.TempDir()
	c, rec := newTestController(t, root, 20*time.Millisecond)
	require.NoError(t, c.Start())
	runController(t, c)

	require.Eventually(t, func() bool { return rec.count() >= 4 }, 5*time.Second, 10*time.Millisecond)
	assert.True(t, rec.last().State.Missing)
}

func TestRun_CancelStops(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PlanningDir(root), 0o755))

	c, _ := newTestController(t, root, time.Hour)
	require.NoError(t, c.Start())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, PhaseStopped, c.Phase())

	c.Stop()
	assert.Equal(t, PhaseStopped, c.Phase())
}

func TestTriggerString(t *testing.T) {
	assert.Equal(t, "start", TriggerStart.String())
	assert.Equal(t, "state-change", TriggerStateChange.String())
	assert.Equal(t, "log-change", TriggerLogChange.String())
	assert.Equal(t, "tick", TriggerTick.String())
}

func TestReadLog_PlanningPathIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".planning"), []byte("x"), 0o644))

	a := ReadLog(config.LogFile(root), 5)
	// ENOTDIR is a read failure, not a missing file.
	assert.False(t, a.Missing)
	assert.Error(t, a.Err)
}

func TestRun_LogsChangeOp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(config.PlanningDir(root), 0o755))
	logPath := filepath.Join(t.TempDir(), "watch.log")
	closeLog, err := logging.Init(logging.Config{Level: "debug", File: logPath})
	require.NoError(t, err)
	t.Cleanup(closeLog) // runs after the controller is stopped

	c, rec := newTestController(t, root, time.Hour)
	require.NoError(t, c.Start())
	runController(t, c)

	require.NoError(t, os.WriteFile(config.StateFile(root), []byte("Phase: 1\n"), 0o644))
	require.Eventually(t, func() bool { return rec.count() >= 2 }, 5*time.Second, 10*time.Millisecond)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"change"`)
	assert.Contains(t, string(data), `"op":"`)
}
