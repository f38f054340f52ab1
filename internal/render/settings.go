package render

import "doomlike/internal/config"

// Settings are the fixed projection parameters of a renderer.
type Settings struct {
	Width     int
	Height    int
	Focal     float64
	NearPlane float64
	LookScale float64
}

// SettingsFromConfig reads the display and camera sections.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Width:     cfg.Display.ScreenWidth,
		Height:    cfg.Display.ScreenHeight,
		Focal:     cfg.Camera.FocalLength,
		NearPlane: cfg.Camera.NearPlane,
		LookScale: cfg.Camera.LookScale,
	}
}

// DefaultSettings matches DefaultConfig.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}
