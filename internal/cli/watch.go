package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/watchfire-io/progresswatch/internal/config"
	"github.com/watchfire-io/progresswatch/internal/dashboard"
	"github.com/watchfire-io/progresswatch/internal/logging"
	"github.com/watchfire-io/progresswatch/internal/render"
)

// noColorEnv disables styling when set to any value.
const noColorEnv = "NO_COLOR"

var (
	flagInterval time.Duration
	flagRecent   int
	flagOnce     bool
	flagNoColor  bool
	flagLogFile  string
	flagLogLevel string
)

func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&flagInterval, "interval", 0, "refresh interval (overrides progress-watch.yaml, default 10s)")
	cmd.Flags().IntVar(&flagRecent, "recent", 0, "number of recent iterations to show (default 5)")
	cmd.Flags().BoolVar(&flagOnce, "once", false, "render a single frame and exit")
	cmd.Flags().BoolVar(&flagNoColor, "no-color", false, "disable colors and screen clearing")
	cmd.Flags().StringVar(&flagLogFile, "log-file", "", "write diagnostics to this file")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "diagnostics level (debug, info, warn, error)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	projectRoot, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if cmd.Flags().Changed("interval") {
		settings.RefreshInterval = flagInterval.String()
	}
	if cmd.Flags().Changed("recent") {
		settings.RecentEntries = flagRecent
	}
	if err := config.ValidateSettings(settings); err != nil {
		return err
	}
	interval, err := config.RefreshInterval(settings)
	if err != nil {
		return err
	}

	closeLog, err := logging.Init(logging.Config{Level: flagLogLevel, File: flagLogFile})
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	noColor := colorDisabled()
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	renderer := render.New(out, render.Options{
		NoColor: noColor,
		Clear:   !noColor && isTerminal(out),
	})

	ctrl, err := dashboard.New(dashboard.Options{
		StatePath: config.StateFile(projectRoot),
		LogPath:   config.LogFile(projectRoot),
		Interval:  interval,
		Recent:    settings.RecentEntries,
		Title:     settings.Title,
		Renderer:  renderer,
	})
	if err != nil {
		return err
	}

	if flagOnce {
		return ctrl.Pass(dashboard.TriggerStart)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Start(); err != nil {
		return err
	}
	if err := ctrl.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n\n"+styleWarning.Render("Stopping progress watcher..."))
	return nil
}

// resolveProjectRoot returns the absolute project root, which must exist.
func resolveProjectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if !config.DirExists(root) {
		return "", fmt.Errorf("project root not found: %s", root)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	return abs, nil
}

func colorDisabled() bool {
	if flagNoColor {
		return true
	}
	_, ok := os.LookupEnv(noColorEnv)
	return ok
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
