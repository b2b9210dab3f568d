package config

import (
	"fmt"

	"github.com/ddemile/soundboard/internal/models"
)

// LoadSettings loads the global settings from ~/.soundboard/settings.yaml.
// If the file doesn't exist, returns default settings. Fields missing from
// the file are filled with their defaults.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	return settings, nil
}

// EnsureSettingsFile writes the default settings.yaml if there is none, so
// there is a file to edit and watch. It reports whether a file was created.
func EnsureSettingsFile() (bool, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return false, err
	}
	if FileExists(path) {
		return false, nil
	}
	if err := SaveSettings(models.NewSettings()); err != nil {
		return false, fmt.Errorf("failed to write default settings: %w", err)
	}
	return true, nil
}

// SaveSettings saves the global settings to ~/.soundboard/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// LogFilePath resolves where log output should go. An empty string means
// stderr.
func LogFilePath(settings *models.Settings) (string, error) {
	switch settings.Log.File {
	case "-":
		return "", nil
	case "":
		return GlobalLogFile()
	default:
		return settings.Log.File, nil
	}
}
