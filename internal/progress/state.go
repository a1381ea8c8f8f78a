package progress

import (
	"strings"

	"github.com/watchfire-io/progresswatch/internal/models"
)

// State document labels.
const (
	LabelPhase        = "Phase:"
	LabelPlan         = "Plan:"
	LabelStatus       = "Status:"
	LabelLastActivity = "Last activity:"
	LabelProgress     = "Progress:"
)

var stateFields = []field[models.StateSnapshot]{
	{LabelPhase, func(s *models.StateSnapshot, v string) { s.Phase = v }},
	{LabelPlan, func(s *models.StateSnapshot, v string) { s.Plan = v }},
	{LabelStatus, func(s *models.StateSnapshot, v string) { s.Status = v }},
	{LabelLastActivity, func(s *models.StateSnapshot, v string) { s.LastActivity = v }},
	{LabelProgress, func(s *models.StateSnapshot, v string) { s.Progress = v }},
}

// ParseState extracts a snapshot from the contents of STATE.md.
// It never fails: text without any known label yields a zero snapshot.
func ParseState(text string) models.StateSnapshot {
	var snap models.StateSnapshot
	applyFields(&snap, stateFields, strings.Split(text, "\n"))
	return snap
}
