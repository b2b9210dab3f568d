package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddemile/soundboard/internal/models"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	return dir
}

func TestPathsFollowHomeEnv(t *testing.T) {
	dir := useTempHome(t)

	settings, err := GlobalSettingsFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsFileName), settings)

	instance, err := GlobalInstanceFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, InstanceFileName), instance)

	logFile, err := GlobalLogFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, LogsDirName, LogFileName), logFile)
}

func TestLoadSettingsDefaults(t *testing.T) {
	useTempHome(t)

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), settings)
}

func TestLoadSettingsFillsMissingFields(t *testing.T) {
	dir := useTempHome(t)
	data := []byte("window:\n  title: My Board\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), data, 0o644))

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "My Board", settings.Window.Title)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, 1024, settings.Window.Width)
	assert.Equal(t, "Soundboard", settings.Tray.Tooltip)
	assert.Equal(t, 1, settings.Version)
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	dir := useTempHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("window: [\n"), 0o644))

	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	dir := useTempHome(t)
	settings := models.NewSettings()
	settings.Tray.Tooltip = "Board"

	require.NoError(t, SaveSettings(settings))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SettingsFileName, entries[0].Name())
}

func TestLogFilePath(t *testing.T) {
	dir := useTempHome(t)

	tests := []struct {
		file string
		want string
	}{
		{"", filepath.Join(dir, LogsDirName, LogFileName)},
		{"-", ""},
		{"/var/log/board.log", "/var/log/board.log"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			settings := models.NewSettings()
			settings.Log.File = tt.file
			got, err := LogFilePath(settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstanceInfoLifecycle(t *testing.T) {
	useTempHome(t)

	info, err := LoadInstanceInfo()
	require.NoError(t, err)
	assert.Nil(t, info)

	running, _, err := IsInstanceRunning()
	require.NoError(t, err)
	assert.False(t, running)

	require.NoError(t, SaveInstanceInfo(models.NewInstanceInfo("127.0.0.1", 4321, os.Getppid())))

	running, info, err = IsInstanceRunning()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 4321, info.Port)

	require.NoError(t, RemoveInstanceInfo())
	require.NoError(t, RemoveInstanceInfo())

	info, err = LoadInstanceInfo()
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestOwnPIDIsNotRunning(t *testing.T) {
	useTempHome(t)
	require.NoError(t, SaveInstanceInfo(models.NewInstanceInfo("127.0.0.1", 1, os.Getpid())))

	running, info, err := IsInstanceRunning()
	require.NoError(t, err)
	assert.False(t, running)
	require.NotNil(t, info)

	path, err := GlobalInstanceFile()
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestClaimInstanceInfo(t *testing.T) {
	tests := []struct {
		name    string
		holder  *models.InstanceInfo
		wantErr error
		wantPID int
	}{
		{"no file", nil, nil, os.Getpid()},
		{"live holder", models.NewInstanceInfo("127.0.0.1", 1, os.Getppid()), ErrInstanceRunning, os.Getppid()},
		{"dead holder", models.NewInstanceInfo("127.0.0.1", 1, 2147483646), nil, os.Getpid()},
		{"own stale file", models.NewInstanceInfo("127.0.0.1", 1, os.Getpid()), nil, os.Getpid()},
		{"file being written", &models.InstanceInfo{}, ErrInstanceRunning, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempHome(t)
			if tt.holder != nil {
				require.NoError(t, SaveInstanceInfo(tt.holder))
			}

			err := ClaimInstanceInfo(models.NewInstanceInfo("127.0.0.1", 9999, os.Getpid()))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			info, err := LoadInstanceInfo()
			require.NoError(t, err)
			require.NotNil(t, info)
			assert.Equal(t, tt.wantPID, info.PID)
		})
	}
}

func TestEnsureSettingsFile(t *testing.T) {
	useTempHome(t)

	created, err := EnsureSettingsFile()
	require.NoError(t, err)
	assert.True(t, created)

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), settings)

	settings.Tray.Tooltip = "Edited"
	require.NoError(t, SaveSettings(settings))

	created, err = EnsureSettingsFile()
	require.NoError(t, err)
	assert.False(t, created)

	settings, err = LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "Edited", settings.Tray.Tooltip)
}
