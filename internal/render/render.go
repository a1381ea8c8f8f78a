// Package render formats parsed autopilot progress into terminal screens.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/progresswatch/internal/models"
)

const (
	screenWidth = 67
	clockLayout = "15:04:05"
)

// Status glyphs.
const (
	glyphSuccess = "✓"
	glyphFailure = "✗"
	glyphRetry   = "⟳"
)

// Artifact is the outcome of reading and parsing one watched file.
// At most one of Missing and Err is set; otherwise Value holds the parse result.
type Artifact[T any] struct {
	Name    string
	Missing bool
	Err     error
	Value   T
}

// Frame is everything one screen shows.
type Frame struct {
	Now   time.Time
	Title string
	State Artifact[models.StateSnapshot]
	// Log holds only the entries to display, oldest first.
	Log Artifact[[]models.LogEntry]
}

// Options configures a Renderer.
type Options struct {
	// NoColor disables all styling.
	NoColor bool
	// Clear erases the screen before each frame.
	Clear bool
}

// Renderer writes frames to an output.
type Renderer struct {
	out    io.Writer
	clear  bool
	styles styles
}

// New creates a renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	return &Renderer{
		out:    out,
		clear:  opts.Clear,
		styles: newStyles(lipgloss.NewRenderer(out), opts.NoColor),
	}
}

// Render writes one complete frame.
func (r *Renderer) Render(f Frame) error {
	var b strings.Builder
	if r.clear {
		b.WriteString(ansi.EraseEntireScreen)
		b.WriteString(ansi.CursorHomePosition)
	}
	for _, line := range r.Lines(f) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

// Lines formats a frame into display lines. Identical frames give identical lines.
func (r *Renderer) Lines(f Frame) []string {
	s := r.styles
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	doubleRule := s.brand.Render(strings.Repeat("═", screenWidth))
	title := "  " + f.Title
	clock := f.Now.Format(clockLayout)
	gap := screenWidth - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	add(doubleRule,
		s.brand.Render(title)+strings.Repeat(" ", gap)+s.dim.Render(clock),
		doubleRule,
		"")

	add(r.stateLines(f.State)...)
	add(r.logLines(f.Log)...)

	add(s.dim.Render(strings.Repeat("─", screenWidth)),
		s.dim.Render("Watching for changes... (Ctrl+C to exit)"))
	return lines
}

func (r *Renderer) stateLines(a Artifact[models.StateSnapshot]) []string {
	s := r.styles
	switch {
	case a.Missing:
		return []string{s.dim.Render(fmt.Sprintf("Waiting for %s...", a.Name)), ""}
	case a.Err != nil:
		return []string{r.errorLine(a.Name, a.Err), ""}
	}

	state := a.Value
	lines := []string{
		s.heading.Render("Current Position:"),
		"  Phase:  " + s.value.Render(state.Phase),
		"  Plan:   " + s.value.Render(state.Plan),
		"  Status: " + s.value.Render(state.Status),
	}
	if state.LastActivity != "" {
		lines = append(lines, "  Last:   "+s.dim.Render(state.LastActivity))
	}
	lines = append(lines, "")

	if state.Progress != "" {
		lines = append(lines,
			s.heading.Render("Progress:"),
			"  "+state.Progress,
			"")
	}
	return lines
}

func (r *Renderer) logLines(a Artifact[[]models.LogEntry]) []string {
	s := r.styles
	switch {
	case a.Missing:
		return []string{s.dim.Render(fmt.Sprintf("Waiting for %s...", a.Name)), ""}
	case a.Err != nil:
		return []string{r.errorLine(a.Name, a.Err), ""}
	case len(a.Value) == 0:
		return nil
	}

	lines := []string{s.heading.Render("Recent Iterations:")}
	for _, entry := range a.Value {
		header := "  " + s.iteration.Render("#"+entry.Iteration)
		if status := r.formatStatus(entry); status != "" {
			header += " " + status
		}
		lines = append(lines, header, "      Task: "+s.dim.Render(entry.Task))
		if entry.Summary != "" {
			lines = append(lines, "      "+entry.Summary)
		}
		if entry.Duration != "" {
			lines = append(lines, "      "+s.dim.Render("Duration: "+entry.Duration))
		}
		lines = append(lines, "")
	}
	return lines
}

// formatStatus decorates recognized statuses; anything else passes through as written.
func (r *Renderer) formatStatus(entry models.LogEntry) string {
	s := r.styles
	switch entry.Kind() {
	case models.StatusKindSuccess:
		return s.success.Render(glyphSuccess + " " + entry.Status)
	case models.StatusKindFailure:
		return s.failure.Render(glyphFailure + " " + entry.Status)
	case models.StatusKindRetry:
		return s.retry.Render(glyphRetry + " " + entry.Status)
	default:
		return entry.Status
	}
}

func (r *Renderer) errorLine(name string, err error) string {
	return r.styles.err.Render(fmt.Sprintf("Error reading %s: %v", name, err))
}
