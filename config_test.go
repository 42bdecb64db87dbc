package pencil

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
width = 320
height = 240
background = "#000080"
pixel_ratio = 2.0
drag_threshold = 0.0
log_level = "debug"
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FrameRate != DefaultConfig().FrameRate {
		t.Error("unset keys should keep their defaults")
	}
	if cfg.DragThreshold != 0 || cfg.PixelRatio != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Errorf("level = %v", lvl)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
	}{
		{"unknown key", "colour = 1", ""},
		{"malformed", "width = ", ""},
		{"zero width", "width = 0", "width"},
		{"negative ratio", "pixel_ratio = -1.0", "pixel_ratio"},
		{"zero fps", "frame_rate = 0", "frame_rate"},
		{"negative threshold", "drag_threshold = -1.0", "drag_threshold"},
		{"bad background", `background = "not-a-color"`, "background"},
		{"bad level", `log_level = "loud"`, "log_level"},
		{"negative cache", "measure_cache_size = -1", "measure_cache_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.key == "" {
				return
			}
			var ioe *InvalidOptionError
			if !errors.As(err, &ioe) || ioe.Key != tt.key {
				t.Errorf("err = %v, want invalid %s", err, tt.key)
			}
			if !errors.Is(err, ErrInvalidOption) {
				t.Error("errors.Is(ErrInvalidOption) = false")
			}
		})
	}
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Title = "demo"
	cfg.Debug = true
	data, err := cfg.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title = 'demo'") && !strings.Contains(string(data), `title = "demo"`) {
		t.Errorf("encoded config missing title: %s", data)
	}
	back, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pencil.toml")
	if err := os.WriteFile(path, []byte("frame_rate = 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("frame rate = %d", cfg.FrameRate)
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEmptyLogLevelIsInfo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = ""
	if lvl, err := cfg.Level(); err != nil || lvl != slog.LevelInfo {
		t.Errorf("Level() = %v, %v", lvl, err)
	}
}
