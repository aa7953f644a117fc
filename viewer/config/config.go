// Package config loads viewer settings from TOML.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"zemljevid/viewer/gesture"
	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
	"zemljevid/viewer/widget"
)

type Config struct {
	Zoom     ZoomConfig     `toml:"zoom"`
	Gesture  GestureConfig  `toml:"gesture"`
	Motion   MotionConfig   `toml:"motion"`
	Window   WindowConfig   `toml:"window"`
	Viewport ViewportConfig `toml:"viewport"`
}

type ZoomConfig struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

type GestureConfig struct {
	DragMultiplier   float64 `toml:"drag_multiplier"`
	PinchSensitivity float64 `toml:"pinch_sensitivity"`
	WheelLine        float64 `toml:"wheel_line"` // pixels per wheel notch
}

type MotionConfig struct {
	FPS       int     `toml:"fps"`
	Frequency float64 `toml:"frequency"`
	Damping   float64 `toml:"damping"`
	Epsilon   float64 `toml:"epsilon"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	HUD    bool   `toml:"hud"`
}

type ViewportConfig struct {
	Margin int `toml:"margin"`
}

const DefaultConfigTOML = `# Zemljevid viewer settings.

[zoom]
min = 0.0
max = 5.0
step = 0.5

[gesture]
drag_multiplier = 1.0
pinch_sensitivity = 0.5
wheel_line = 100.0

[motion]
fps = 60
frequency = 13.0
damping = 1.0
epsilon = 0.001

[window]
width = 1280
height = 800
title = "Zemljevid"
hud = true

[viewport]
margin = 16
`

func Default() Config {
	return Config{
		Zoom: ZoomConfig{
			Min:  transform.DefaultMinZoom,
			Max:  transform.DefaultMaxZoom,
			Step: transform.DefaultZoomStep,
		},
		Gesture: GestureConfig{
			DragMultiplier:   gesture.DefaultDragMultiplier,
			PinchSensitivity: gesture.DefaultPinchSensitivity,
			WheelLine:        100,
		},
		Motion: MotionConfig{
			FPS:       motion.DefaultFPS,
			Frequency: motion.DefaultFrequency,
			Damping:   motion.DefaultDamping,
			Epsilon:   motion.DefaultEpsilon,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
			Title:  "Zemljevid",
			HUD:    true,
		},
		Viewport: ViewportConfig{Margin: 16},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults, so missing keys keep their default.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	cfg.Verify()
	return cfg, nil
}

// Verify repairs out-of-range values.
func (c *Config) Verify() {
	l := c.limits()
	l.Verify()
	c.Zoom = ZoomConfig{Min: l.Min, Max: l.Max, Step: l.Step}

	if !(c.Gesture.DragMultiplier > 0) {
		c.Gesture.DragMultiplier = gesture.DefaultDragMultiplier
	}
	if !(c.Gesture.PinchSensitivity > 0) {
		c.Gesture.PinchSensitivity = gesture.DefaultPinchSensitivity
	}
	if !(c.Gesture.WheelLine > 0) {
		c.Gesture.WheelLine = 100
	}

	m := c.motion()
	m.Verify()
	c.Motion = MotionConfig{FPS: m.FPS, Frequency: m.Frequency, Damping: m.Damping, Epsilon: m.Epsilon}

	if c.Window.Width <= 0 {
		c.Window.Width = 1280
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 800
	}
	if c.Window.Title == "" {
		c.Window.Title = "Zemljevid"
	}
	if c.Viewport.Margin < 0 {
		c.Viewport.Margin = 0
	}
}

// Widget returns the settings the viewer widget consumes.
func (c Config) Widget() widget.Config {
	return widget.Config{
		Limits: c.limits(),
		Gesture: gesture.Options{
			DragMultiplier:   c.Gesture.DragMultiplier,
			PinchSensitivity: c.Gesture.PinchSensitivity,
		},
		Motion: c.motion(),
	}
}

func (c Config) limits() transform.Limits {
	return transform.Limits{Min: c.Zoom.Min, Max: c.Zoom.Max, Step: c.Zoom.Step}
}

func (c Config) motion() motion.Options {
	return motion.Options{
		FPS:       c.Motion.FPS,
		Frequency: c.Motion.Frequency,
		Damping:   c.Motion.Damping,
		Epsilon:   c.Motion.Epsilon,
	}
}
