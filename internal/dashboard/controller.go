// Package dashboard drives the refresh loop: it decides when to re-read the
// autopilot artifacts and hands each result to a renderer.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/watchfire-io/progresswatch/internal/logging"
	"github.com/watchfire-io/progresswatch/internal/models"
	"github.com/watchfire-io/progresswatch/internal/render"
	"github.com/watchfire-io/progresswatch/internal/watcher"
)

// Trigger names what caused a pass.
type Trigger int

// Pass triggers.
const (
	TriggerStart Trigger = iota
	TriggerStateChange
	TriggerLogChange
	TriggerTick
)

func (t Trigger) String() string {
	switch t {
	case TriggerStart:
		return "start"
	case TriggerStateChange:
		return "state-change"
	case TriggerLogChange:
		return "log-change"
	case TriggerTick:
		return "tick"
	default:
		return fmt.Sprintf("trigger(%d)", int(t))
	}
}

// Phase is the controller's lifecycle state.
type Phase int

// Lifecycle phases, in order.
const (
	PhaseIdle Phase = iota
	PhaseWatching
	PhaseShuttingDown
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWatching:
		return "watching"
	case PhaseShuttingDown:
		return "shutting-down"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// FrameRenderer displays one frame. *render.Renderer implements it.
type FrameRenderer interface {
	Render(render.Frame) error
}

// Options configures a Controller.
type Options struct {
	StatePath string
	LogPath   string
	// Interval between timer-driven passes.
	Interval time.Duration
	// Recent is the number of log entries shown. Defaults to models.DefaultRecentEntries.
	Recent   int
	Title    string
	Renderer FrameRenderer
	// Now stamps each frame. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the watch handles and the refresh timer. All passes run on
// the goroutine calling Start and Run, so two passes never overlap.
//
// Change notifications are not debounced: a burst of writes renders once per
// notification.
type Controller struct {
	opts Options

	stateWatcher *watcher.Watcher
	logWatcher   *watcher.Watcher
	ticker       *time.Ticker

	phase  Phase
	passes atomic.Int64
	logger zerolog.Logger
}

// New creates an idle controller.
func New(opts Options) (*Controller, error) {
	if opts.Renderer == nil {
		return nil, errors.New("dashboard: renderer is required")
	}
	if opts.StatePath == "" || opts.LogPath == "" {
		return nil, errors.New("dashboard: state and log paths are required")
	}
	if opts.Interval <= 0 {
		return nil, fmt.Errorf("dashboard: refresh interval must be positive, got %s", opts.Interval)
	}
	if opts.Recent <= 0 {
		opts.Recent = models.DefaultRecentEntries
	}
	if opts.Title == "" {
		opts.Title = models.DefaultTitle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Controller{
		opts:   opts,
		logger: logging.Component("dashboard"),
	}, nil
}

// Phase returns the lifecycle phase. It is only meaningful on the
// controller's goroutine or after Run has returned.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Passes returns the number of passes rendered so far.
func (c *Controller) Passes() int {
	return int(c.passes.Load())
}

// Start renders the first pass, then registers the watch handles and arms
// the timer. A missing artifact directory leaves that handle unregistered.
func (c *Controller) Start() error {
	if c.phase != PhaseIdle {
		return fmt.Errorf("dashboard: cannot start from phase %s", c.phase)
	}

	if err := c.Pass(TriggerStart); err != nil {
		c.logger.Warn().Err(err).Msg("initial render failed")
	}

	c.stateWatcher = c.watch(c.opts.StatePath)
	c.logWatcher = c.watch(c.opts.LogPath)
	c.ticker = time.NewTicker(c.opts.Interval)
	c.phase = PhaseWatching

	c.logger.Info().
		Str("state", c.opts.StatePath).
		Str("log", c.opts.LogPath).
		Bool("state_watched", c.stateWatcher.Active()).
		Bool("log_watched", c.logWatcher.Active()).
		Dur("interval", c.opts.Interval).
		Msg("watching")
	return nil
}

// watch registers a handle for path, or returns nil if it cannot be registered.
func (c *Controller) watch(path string) *watcher.Watcher {
	w := watcher.New(path)
	if err := w.Start(); err != nil {
		if errors.Is(err, watcher.ErrNoDir) {
			c.logger.Debug().Str("file", path).Msg("directory missing, not watching")
		} else {
			c.logger.Warn().Err(err).Str("file", path).Msg("failed to watch")
		}
		return nil
	}
	return w
}

// Run processes change notifications and timer ticks until ctx is done,
// then stops the controller.
func (c *Controller) Run(ctx context.Context) error {
	if c.phase != PhaseWatching {
		return fmt.Errorf("dashboard: cannot run from phase %s", c.phase)
	}
	defer c.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("shutdown requested")
			return nil
		case ev := <-c.stateWatcher.Events():
			c.logger.Debug().Str("file", ev.Path).Stringer("op", ev.Op).Msg("change")
			c.runPass(TriggerStateChange)
		case ev := <-c.logWatcher.Events():
			c.logger.Debug().Str("file", ev.Path).Stringer("op", ev.Op).Msg("change")
			c.runPass(TriggerLogChange)
		case <-c.ticker.C:
			c.runPass(TriggerTick)
		case err := <-c.stateWatcher.Errors():
			c.logger.Warn().Err(err).Msg("state watch error")
		case err := <-c.logWatcher.Errors():
			c.logger.Warn().Err(err).Msg("log watch error")
		}
	}
}

func (c *Controller) runPass(trigger Trigger) {
	if err := c.Pass(trigger); err != nil {
		c.logger.Warn().Err(err).Stringer("trigger", trigger).Msg("render failed")
	}
}

// Stop releases the watch handles and the timer. It is safe to call more than once.
func (c *Controller) Stop() {
	if c.phase == PhaseStopped {
		return
	}
	c.phase = PhaseShuttingDown

	c.stateWatcher.Stop()
	c.logWatcher.Stop()
	if c.ticker != nil {
		c.ticker.Stop()
	}

	c.phase = PhaseStopped
	c.logger.Info().Int("passes", c.Passes()).Msg("stopped")
}

// Pass re-reads both artifacts and renders one frame.
func (c *Controller) Pass(trigger Trigger) error {
	frame := render.Frame{
		Now:   c.opts.Now(),
		Title: c.opts.Title,
		State: ReadState(c.opts.StatePath),
		Log:   ReadLog(c.opts.LogPath, c.opts.Recent),
	}

	n := c.passes.Add(1)
	c.logger.Debug().
		Int64("pass", n).
		Stringer("trigger", trigger).
		Bool("state_missing", frame.State.Missing).
		Bool("log_missing", frame.Log.Missing).
		Int("entries", len(frame.Log.Value)).
		Msg("pass")

	return c.opts.Renderer.Render(frame)
}
