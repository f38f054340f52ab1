package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "test_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(body); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeTempConfig(t, `display:
  screen_width: 320
  screen_height: 240
timing:
  frame_interval_ms: 20
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GetScreenWidth() != 320 || cfg.GetScreenHeight() != 240 {
		t.Errorf("Expected 320x240, got %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	// Untouched sections keep their defaults
	if cfg.Display.PixelScale != 4 {
		t.Errorf("Expected default pixel scale 4, got %d", cfg.Display.PixelScale)
	}
	if cfg.Camera.FocalLength != 200 {
		t.Errorf("Expected default focal length 200, got %v", cfg.Camera.FocalLength)
	}
	if len(cfg.Palette.Colors) != 9 {
		t.Errorf("Expected 9 default palette entries, got %d", len(cfg.Palette.Colors))
	}
	if cfg.GetFrameInterval() != 20*time.Millisecond {
		t.Errorf("Expected 20ms frame interval, got %v", cfg.GetFrameInterval())
	}
	if GlobalConfig != cfg {
		t.Error("Expected GlobalConfig to point at the loaded config")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"tiny screen", "display:\n  screen_width: 2\n"},
		{"zero pixel scale", "display:\n  pixel_scale: 0\n"},
		{"zero frame interval", "timing:\n  frame_interval_ms: 0\n"},
		{"negative focal length", "camera:\n  focal_length: -1\n"},
		{"zero near plane", "camera:\n  near_plane: 0\n"},
		{"broken yaml", "display: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.body)
			if _, err := LoadConfig(path); err == nil {
				t.Errorf("Expected an error for %q", tc.name)
			}
		})
	}
}

func TestLoadConfigOrDefaultMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadConfigOrDefault(missing)
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got %v", err)
	}
	if cfg.GetWindowWidth() != 640 || cfg.GetWindowHeight() != 480 {
		t.Errorf("Expected 640x480 window, got %dx%d", cfg.GetWindowWidth(), cfg.GetWindowHeight())
	}
}
