package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Adaptive colors, shared with the CLI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// styles holds the semantic styles for one output.
type styles struct {
	brand     lipgloss.Style
	heading   lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	iteration lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	retry     lipgloss.Style
	err       lipgloss.Style
}

// newStyles binds the styles to a lipgloss renderer for the output. With
// noColor the ASCII profile is forced so that no escape sequences are emitted.
func newStyles(r *lipgloss.Renderer, noColor bool) styles {
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		brand:     r.NewStyle().Bold(true).Foreground(colorCyan),
		heading:   r.NewStyle().Bold(true),
		value:     r.NewStyle().Foreground(colorWhite),
		dim:       r.NewStyle().Foreground(colorDim),
		iteration: r.NewStyle().Foreground(colorCyan),
		success:   r.NewStyle().Foreground(colorGreen),
		failure:   r.NewStyle().Foreground(colorRed),
		retry:     r.NewStyle().Foreground(colorYellow),
		err:       r.NewStyle().Foreground(colorRed),
	}
}
