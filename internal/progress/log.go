package progress

import (
	"strings"

	"github.com/watchfire-io/progresswatch/internal/models"
)

// BlockSeparator is the line that terminates each iteration block in ralph.log.
const BlockSeparator = "---"

// Iteration log labels.
const (
	LabelIteration = "Iteration:"
	LabelTimestamp = "Timestamp:"
	LabelTask      = "Task:"
	LabelDuration  = "Duration:"
	LabelSummary   = "Summary:"
)

var logFields = []field[models.LogEntry]{
	{LabelIteration, func(e *models.LogEntry, v string) { e.Iteration = v }},
	{LabelTimestamp, func(e *models.LogEntry, v string) { e.Timestamp = v }},
	{LabelTask, func(e *models.LogEntry, v string) { e.Task = v }},
	{LabelStatus, func(e *models.LogEntry, v string) { e.Status = v }},
	{LabelDuration, func(e *models.LogEntry, v string) { e.Duration = v }},
	{LabelSummary, func(e *models.LogEntry, v string) { e.Summary = v }},
}

// ParseLog splits the contents of ralph.log into iteration entries, in the
// order they were appended. Blocks without an Iteration label are dropped.
func ParseLog(text string) []models.LogEntry {
	var entries []models.LogEntry
	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		var entry models.LogEntry
		applyFields(&entry, logFields, block)
		block = block[:0]
		if entry.Iteration != "" {
			entries = append(entries, entry)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimRight(line, "\r") == BlockSeparator {
			flush()
			continue
		}
		block = append(block, line)
	}
	flush()
	return entries
}

// Recent returns the last n entries, oldest first.
func Recent(entries []models.LogEntry, n int) []models.LogEntry {
	if n <= 0 {
		return nil
	}
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
