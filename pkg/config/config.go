// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/camrecord/pkg/orchestrator"
	"github.com/user/camrecord/pkg/ports"
)

// Config represents the full configuration for camrecord.
type Config struct {
	// Output
	OutputDir string `yaml:"output_dir"`

	// Format
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	FPS         int `yaml:"fps"`
	DurationSec int `yaml:"duration"`

	Camera   CameraConfig   `yaml:"camera"`
	Encoder  EncoderConfig  `yaml:"encoder"`
	Playback PlaybackConfig `yaml:"playback"`
	Preview  PreviewConfig  `yaml:"preview"`
	Status   StatusConfig   `yaml:"status"`

	// Logging
	LogLevel      string `yaml:"log_level"`
	LogTimestamps bool   `yaml:"log_timestamps"`
	Quiet         bool   `yaml:"quiet"`
}

// CameraConfig controls device probing and capture.
type CameraConfig struct {
	// ProbeTool is the v4l2-ctl binary used to classify devices.
	ProbeTool string `yaml:"probe_tool"`
	// Bayer enables the raw sensor pipeline.
	Bayer bool `yaml:"bayer"`
	// PullTimeoutMs bounds each raw sensor frame pull.
	PullTimeoutMs int `yaml:"pull_timeout_ms"`
}

// EncoderConfig selects and tunes the encoder.
type EncoderConfig struct {
	Backend    string `yaml:"backend"` // auto, gstreamer, ffmpeg
	FFmpegPath string `yaml:"ffmpeg_path"`
	Preset     string `yaml:"preset"`
	Bitrate    int    `yaml:"bitrate"` // kbps, 0 for encoder default
	// FinishTimeoutMs bounds finalization.
	FinishTimeoutMs int `yaml:"finish_timeout_ms"`
}

// PlaybackConfig controls recording replay.
type PlaybackConfig struct {
	// Loop restarts single-file playback at the end of the file.
	// Stereo pairs always loop.
	Loop          bool `yaml:"loop"`
	PullTimeoutMs int  `yaml:"pull_timeout_ms"`
}

// PreviewConfig controls preview snapshots.
type PreviewConfig struct {
	SnapshotDir     string  `yaml:"snapshot_dir"`
	Format          string  `yaml:"format"` // jpeg or png
	Scale           float64 `yaml:"scale"`
	BackgroundColor string  `yaml:"background_color"`
	LabelColor      string  `yaml:"label_color"`
	FontPath        string  `yaml:"font_path"`
}

// StatusConfig controls the HTTP status server.
type StatusConfig struct {
	// Addr is the listen address; empty disables the server.
	Addr string `yaml:"addr"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir: "./recordings",

		Width:       640,
		Height:      480,
		FPS:         30,
		DurationSec: 10,

		Camera: CameraConfig{
			ProbeTool:     "v4l2-ctl",
			Bayer:         true,
			PullTimeoutMs: 2000,
		},
		Encoder: EncoderConfig{
			Backend:         "auto",
			Preset:          "fast",
			FinishTimeoutMs: 5000,
		},
		Playback: PlaybackConfig{
			PullTimeoutMs: 1000,
		},
		Preview: PreviewConfig{
			Format:          "jpeg",
			Scale:           0.5,
			BackgroundColor: "#1a1a2e",
			LabelColor:      "#ffffff",
		},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: invalid fps %d", c.FPS)
	}
	if c.DurationSec < 0 {
		return fmt.Errorf("config: invalid duration %d", c.DurationSec)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Preview.Format {
	case "", "jpeg", "jpg", "png":
	default:
		return fmt.Errorf("config: unknown preview format %q", c.Preview.Format)
	}
	return nil
}

// Size returns the configured frame size.
func (c Config) Size() ports.Dimension {
	return ports.Dimension{Width: c.Width, Height: c.Height}
}

// Duration returns the recording duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.DurationSec) * time.Second
}

// ImageFormat returns the preview snapshot format.
func (c PreviewConfig) ImageFormat() ports.ImageFormat {
	if c.Format == "png" {
		return ports.FormatPNG
	}
	return ports.FormatJPEG
}

// Millis converts a millisecond setting, returning fallback when unset.
func Millis(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	return color.RGBA{
		R: hexValue(hex[0])<<4 | hexValue(hex[1]),
		G: hexValue(hex[2])<<4 | hexValue(hex[3]),
		B: hexValue(hex[4])<<4 | hexValue(hex[5]),
		A: 255,
	}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Width:  c.Width,
		Height: c.Height,
	}
}
