package models

// WindowConfig holds settings for the main and overlay windows.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// OverlayFullscreenOnX11 makes the overlay cover the whole screen when
	// the display server is X11. Other backends keep it at its natural size.
	OverlayFullscreenOnX11 bool `yaml:"overlay_fullscreen_on_x11"`
}

// TrayConfig holds tray icon settings.
type TrayConfig struct {
	Tooltip string `yaml:"tooltip"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // empty = ~/.soundboard/logs/soundboard.log, "-" = stderr
}

// Settings represents global application settings.
// This corresponds to ~/.soundboard/settings.yaml.
type Settings struct {
	Version int          `yaml:"version"`
	Window  WindowConfig `yaml:"window"`
	Tray    TrayConfig   `yaml:"tray"`
	Log     LogConfig    `yaml:"log"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Window: WindowConfig{
			Title:                  "Soundboard",
			Width:                  1024,
			Height:                 700,
			OverlayFullscreenOnX11: true,
		},
		Tray: TrayConfig{
			Tooltip: "Soundboard",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills zero values left by a partial settings file.
func (s *Settings) ApplyDefaults() {
	def := NewSettings()
	if s.Version == 0 {
		s.Version = def.Version
	}
	if s.Window.Title == "" {
		s.Window.Title = def.Window.Title
	}
	if s.Window.Width <= 0 {
		s.Window.Width = def.Window.Width
	}
	if s.Window.Height <= 0 {
		s.Window.Height = def.Window.Height
	}
	if s.Tray.Tooltip == "" {
		s.Tray.Tooltip = def.Tray.Tooltip
	}
	if s.Log.Level == "" {
		s.Log.Level = def.Log.Level
	}
}
