package config

import (
	"fmt"
	"time"

	"github.com/watchfire-io/progresswatch/internal/models"
)

// LoadSettings loads the dashboard settings from <root>/.planning/progress-watch.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings(projectRoot string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(SettingsFile(projectRoot), models.NewSettings)
	if err != nil {
		return nil, err
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ValidateSettings checks that settings values are usable.
func ValidateSettings(settings *models.Settings) error {
	if _, err := RefreshInterval(settings); err != nil {
		return err
	}
	if settings.RecentEntries <= 0 {
		return fmt.Errorf("recent_entries must be positive, got %d", settings.RecentEntries)
	}
	return nil
}

// RefreshInterval parses the settings' refresh interval.
func RefreshInterval(settings *models.Settings) (time.Duration, error) {
	d, err := time.ParseDuration(settings.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh_interval %q: %w", settings.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("refresh_interval must be positive, got %s", d)
	}
	return d, nil
}
