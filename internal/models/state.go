// Package models contains the data structures shared between the parsers, renderer and CLI.
package models

// StateSnapshot is the structured view of the current-state document
// (.planning/STATE.md) as of the most recent read. Absent labels leave
// their field empty.
type StateSnapshot struct {
	Phase        string `yaml:"phase"`
	Plan         string `yaml:"plan"`
	Status       string `yaml:"status"`
	Progress     string `yaml:"progress"`
	LastActivity string `yaml:"last_activity"`
}

// IsZero reports whether no label was found in the source text.
func (s StateSnapshot) IsZero() bool {
	return s == StateSnapshot{}
}
