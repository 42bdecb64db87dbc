package pencil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds scene settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Width and Height size the surface in scene units.
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`

	// Background clears the surface before each frame.
	Background string `toml:"background"`

	// PixelRatio converts device pixels to scene units.
	PixelRatio float64 `toml:"pixel_ratio"`

	// FrameRate drives Scene.Run, in frames per second.
	FrameRate int `toml:"frame_rate"`

	// DragThreshold is the distance in scene units a pressed pointer must
	// travel, strictly, before a drag starts.
	DragThreshold float64 `toml:"drag_threshold"`

	// MeasureCacheSize bounds the text measurement cache.
	MeasureCacheSize int `toml:"measure_cache_size"`

	// AssetRoot resolves relative resource paths.
	AssetRoot string `toml:"asset_root"`

	// Debug logs per-frame statistics.
	Debug    bool   `toml:"debug"`
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Width:            800,
		Height:           600,
		Title:            "pencil",
		Background:       "#ffffff",
		PixelRatio:       1,
		FrameRate:        60,
		DragThreshold:    4,
		MeasureCacheSize: 1024,
		LogLevel:         "info",
	}
}

// ParseConfig decodes TOML over DefaultConfig. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("pencil: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pencil: read config: %w", err)
	}
	return ParseConfig(data)
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every field against its domain.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return &InvalidOptionError{Key: "width", Value: c.Width, Reason: "must be positive"}
	case c.Height <= 0:
		return &InvalidOptionError{Key: "height", Value: c.Height, Reason: "must be positive"}
	case !isFinite(c.PixelRatio) || c.PixelRatio <= 0:
		return &InvalidOptionError{Key: "pixel_ratio", Value: c.PixelRatio, Reason: "must be positive"}
	case c.FrameRate <= 0:
		return &InvalidOptionError{Key: "frame_rate", Value: c.FrameRate, Reason: "must be positive"}
	case !isFinite(c.DragThreshold) || c.DragThreshold < 0:
		return &InvalidOptionError{Key: "drag_threshold", Value: c.DragThreshold, Reason: "must be zero or positive"}
	case c.MeasureCacheSize < 0:
		return &InvalidOptionError{Key: "measure_cache_size", Value: c.MeasureCacheSize, Reason: "negative"}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return &InvalidOptionError{Key: "background", Value: c.Background, Reason: err.Error()}
	}
	if _, err := c.Level(); err != nil {
		return &InvalidOptionError{Key: "log_level", Value: c.LogLevel, Reason: err.Error()}
	}
	return nil
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}
