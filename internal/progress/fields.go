// Package progress parses the text artifacts written by the autopilot loop:
// the current-state document and the iteration log.
package progress

import "strings"

// field binds a line label to the setter that stores its value.
type field[T any] struct {
	label string
	set   func(*T, string)
}

// applyFields assigns the value of every labelled line in lines to dst.
// Labels match as exact, case-sensitive prefixes. A repeated label
// overwrites the earlier value.
func applyFields[T any](dst *T, fields []field[T], lines []string) {
	for _, line := range lines {
		for _, f := range fields {
			if strings.HasPrefix(line, f.label) {
				f.set(dst, strings.TrimSpace(line[len(f.label):]))
				break
			}
		}
	}
}
