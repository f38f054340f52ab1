package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all renderer configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Timing   TimingConfig   `yaml:"timing"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Palette  PaletteConfig  `yaml:"palette"`
	Level    LevelConfig    `yaml:"level"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	HUD      HUDConfig      `yaml:"hud"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`  // internal frame width in pixels
	ScreenHeight int    `yaml:"screen_height"` // internal frame height in pixels
	PixelScale   int    `yaml:"pixel_scale"`   // window pixels per frame pixel
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type TimingConfig struct {
	FrameIntervalMs int `yaml:"frame_interval_ms"`
	TicksPerSecond  int `yaml:"ticks_per_second"`
}

type CameraConfig struct {
	FocalLength float64 `yaml:"focal_length"`
	NearPlane   float64 `yaml:"near_plane"`
	LookScale   float64 `yaml:"look_scale"`
}

type MovementConfig struct {
	MoveSpeed int `yaml:"move_speed"`
	TurnSpeed int `yaml:"turn_speed"`
	FlySpeed  int `yaml:"fly_speed"`
	LookSpeed int `yaml:"look_speed"`
}

// PaletteConfig lists the colour table. Entry i is colour index i.
type PaletteConfig struct {
	Colors []PaletteEntry `yaml:"colors"`
}

type PaletteEntry struct {
	Name string `yaml:"name"`
	RGB  [3]int `yaml:"rgb"`
}

type LevelConfig struct {
	File string `yaml:"file"`
}

type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

type HUDConfig struct {
	Visible bool `yaml:"visible"`
}

var GlobalConfig *Config

// DefaultConfig returns the built-in configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  160,
			ScreenHeight: 120,
			PixelScale:   4,
			WindowTitle:  "Doomlike",
		},
		Timing: TimingConfig{
			FrameIntervalMs: 50,
			TicksPerSecond:  60,
		},
		Camera: CameraConfig{
			FocalLength: 200,
			NearPlane:   1,
			LookScale:   32,
		},
		Movement: MovementConfig{
			MoveSpeed: 10,
			TurnSpeed: 4,
			FlySpeed:  4,
			LookSpeed: 1,
		},
		Palette: PaletteConfig{
			Colors: []PaletteEntry{
				{Name: "yellow", RGB: [3]int{255, 255, 0}},
				{Name: "dark_yellow", RGB: [3]int{160, 160, 0}},
				{Name: "green", RGB: [3]int{0, 255, 0}},
				{Name: "dark_green", RGB: [3]int{0, 160, 0}},
				{Name: "cyan", RGB: [3]int{0, 255, 255}},
				{Name: "dark_cyan", RGB: [3]int{0, 160, 160}},
				{Name: "brown", RGB: [3]int{160, 100, 0}},
				{Name: "dark_brown", RGB: [3]int{110, 50, 0}},
				{Name: "background", RGB: [3]int{0, 60, 130}},
			},
		},
		Level: LevelConfig{
			File: "assets/level.yaml",
		},
		Metrics: MetricsConfig{
			ListenAddr: ":2112",
		},
		HUD: HUDConfig{
			Visible: true,
		},
	}
}

// LoadConfig loads the configuration from a yaml file on top of DefaultConfig
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// LoadConfigOrDefault falls back to DefaultConfig when the file does not exist
func LoadConfigOrDefault(filename string) (*Config, error) {
	config, err := LoadConfig(filename)
	if errors.Is(err, os.ErrNotExist) {
		GlobalConfig = DefaultConfig()
		return GlobalConfig, nil
	}
	return config, err
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfigOrDefault(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with
func (c *Config) Validate() error {
	if c.Display.ScreenWidth < 3 || c.Display.ScreenHeight < 3 {
		return fmt.Errorf("screen size %dx%d too small", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.PixelScale <= 0 {
		return fmt.Errorf("pixel_scale must be positive, got %d", c.Display.PixelScale)
	}
	if c.Timing.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame_interval_ms must be positive, got %d", c.Timing.FrameIntervalMs)
	}
	if c.Camera.FocalLength <= 0 {
		return fmt.Errorf("focal_length must be positive, got %v", c.Camera.FocalLength)
	}
	if c.Camera.NearPlane <= 0 {
		return fmt.Errorf("near_plane must be positive, got %v", c.Camera.NearPlane)
	}
	if c.Camera.LookScale == 0 {
		return errors.New("look_scale must not be zero")
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetWindowWidth() int {
	return c.Display.ScreenWidth * c.Display.PixelScale
}

func (c *Config) GetWindowHeight() int {
	return c.Display.ScreenHeight * c.Display.PixelScale
}

func (c *Config) GetFrameInterval() time.Duration {
	return time.Duration(c.Timing.FrameIntervalMs) * time.Millisecond
}
