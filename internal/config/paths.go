// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global Soundboard directory.
	GlobalDirName = ".soundboard"

	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"

	// HomeEnv overrides the global directory when set.
	HomeEnv = "SOUNDBOARD_HOME"
)

// File names
const (
	InstanceFileName = "instance.yaml"
	SettingsFileName = "settings.yaml"
	LogFileName      = "soundboard.log"
)

// GlobalDir returns the path to the global Soundboard directory (~/.soundboard/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalInstanceFile returns the path to the instance.yaml file.
func GlobalInstanceFile() (string, error) {
	return inGlobalDir(InstanceFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return inGlobalDir(SettingsFileName)
}

// GlobalLogsDir returns the path to the logs directory.
func GlobalLogsDir() (string, error) {
	return inGlobalDir(LogsDirName)
}

// GlobalLogFile returns the default log file path.
func GlobalLogFile() (string, error) {
	dir, err := GlobalLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

func inGlobalDir(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// EnsureGlobalDir creates the global Soundboard directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
