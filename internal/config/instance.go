package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ddemile/soundboard/internal/models"
)

var (
	// ErrInstanceNotRunning is returned when a command needs a running instance.
	ErrInstanceNotRunning = errors.New("soundboard is not running")

	// ErrInstanceRunning is returned when another live process holds instance.yaml.
	ErrInstanceRunning = errors.New("soundboard is already running")
)

// LoadInstanceInfo loads the instance connection info from ~/.soundboard/instance.yaml.
// Returns nil if the file doesn't exist.
func LoadInstanceInfo() (*models.InstanceInfo, error) {
	path, err := GlobalInstanceFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.InstanceInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInstanceInfo saves the instance connection info to ~/.soundboard/instance.yaml.
func SaveInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveInstanceInfo removes the instance.yaml file.
func RemoveInstanceInfo() error {
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsInstanceRunning checks whether another process holds the instance file
// and is still alive. A stale file left by a process that exited without
// cleanup (Quit exits immediately) is removed.
func IsInstanceRunning() (bool, *models.InstanceInfo, error) {
	info, err := LoadInstanceInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	// PID reuse: the file is stale and about to be overwritten by us.
	if info.PID == os.Getpid() {
		return false, info, nil
	}

	if !processAlive(info.PID) {
		_ = RemoveInstanceInfo()
		return false, info, nil
	}

	return true, info, nil
}

// ClaimInstanceInfo writes instance.yaml only if no other live process holds
// it. Of two launches racing past IsInstanceRunning, one gets
// ErrInstanceRunning. A file left by a dead process, or by this process, is
// replaced.
func ClaimInstanceInfo(info *models.InstanceInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalInstanceFile()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		err := createExclusive(path, data)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return err
		}

		holder, err := LoadInstanceInfo()
		if err != nil {
			// Unreadable: another launch is still writing it.
			return ErrInstanceRunning
		}
		if holder != nil {
			if holder.PID <= 0 {
				return ErrInstanceRunning
			}
			if holder.PID != os.Getpid() && processAlive(holder.PID) {
				return ErrInstanceRunning
			}
		}
		if err := RemoveInstanceInfo(); err != nil {
			return err
		}
	}
	return ErrInstanceRunning
}

func createExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
