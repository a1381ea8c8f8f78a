package models

// Default settings values.
const (
	DefaultRefreshInterval = "10s"
	DefaultRecentEntries   = 5
	DefaultTitle           = "GSD Progress Watcher"
)

// Settings holds dashboard settings.
// This corresponds to <project>/.planning/progress-watch.yaml.
type Settings struct {
	RefreshInterval string `yaml:"refresh_interval"` // Go duration, e.g. "10s"
	RecentEntries   int    `yaml:"recent_entries"`
	Title           string `yaml:"title"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		RefreshInterval: DefaultRefreshInterval,
		RecentEntries:   DefaultRecentEntries,
		Title:           DefaultTitle,
	}
}
