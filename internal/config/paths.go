// Package config handles settings loading and artifact path management.
package config

import (
	"path/filepath"
)

const (
	// PlanningDirName is the name of the per-project directory the autopilot writes into.
	PlanningDirName = ".planning"
)

// File names
const (
	StateFileName    = "STATE.md"
	LogFileName      = "ralph.log"
	SettingsFileName = "progress-watch.yaml"
)

// PlanningDir returns the path to a project's .planning/ directory.
func PlanningDir(projectRoot string) string {
	return filepath.Join(projectRoot, PlanningDirName)
}

// StateFile returns the path to a project's STATE.md file.
func StateFile(projectRoot string) string {
	return filepath.Join(PlanningDir(projectRoot), StateFileName)
}

// LogFile returns the path to a project's ralph.log file.
func LogFile(projectRoot string) string {
	return filepath.Join(PlanningDir(projectRoot), LogFileName)
}

// SettingsFile returns the path to a project's progress-watch.yaml file.
func SettingsFile(projectRoot string) string {
	return filepath.Join(PlanningDir(projectRoot), SettingsFileName)
}
