package models

import "strings"

// Iteration statuses written by the autopilot loop.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
	StatusRetry   = "RETRY"
)

// IterationStatus classifies a log entry's status literal.
type IterationStatus int

// Recognized iteration statuses. StatusKindOther covers empty and unknown literals.
const (
	StatusKindOther IterationStatus = iota
	StatusKindSuccess
	StatusKindFailure
	StatusKindRetry
)

// LogEntry represents one iteration record from .planning/ralph.log.
type LogEntry struct {
	Iteration string `yaml:"iteration"`
	Timestamp string `yaml:"timestamp"`
	Task      string `yaml:"task"`
	Status    string `yaml:"status"`
	Duration  string `yaml:"duration,omitempty"`
	Summary   string `yaml:"summary,omitempty"`
}

// Kind classifies the entry's status, ignoring case.
func (e LogEntry) Kind() IterationStatus {
	switch strings.ToUpper(e.Status) {
	case StatusSuccess:
		return StatusKindSuccess
	case StatusFailure:
		return StatusKindFailure
	case StatusRetry:
		return StatusKindRetry
	default:
		return StatusKindOther
	}
}
