package dashboard

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/watchfire-io/progresswatch/internal/models"
	"github.com/watchfire-io/progresswatch/internal/progress"
	"github.com/watchfire-io/progresswatch/internal/render"
)

// readArtifact reads path in full and parses it. A missing file is reported
// as Missing, any other read failure as Err; neither is fatal to the pass.
func readArtifact[T any](path string, parse func(string) T) render.Artifact[T] {
	a := render.Artifact[T]{Name: filepath.Base(path)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.Missing = true
	case err != nil:
		a.Err = err
	default:
		a.Value = parse(string(data))
	}
	return a
}

// ReadState reads and parses the current-state document.
func ReadState(path string) render.Artifact[models.StateSnapshot] {
	return readArtifact(path, progress.ParseState)
}

// ReadLog reads the iteration log and keeps its last n entries.
func ReadLog(path string, n int) render.Artifact[[]models.LogEntry] {
	return readArtifact(path, func(text string) []models.LogEntry {
		return progress.Recent(progress.ParseLog(text), n)
	})
}
