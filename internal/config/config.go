// Package config holds the application configuration snapshot, the cell that
// publishes it process-wide, and the loaders that read it from disk.
package config

import (
	"errors"
	"fmt"
)

// AppConfig is an immutable configuration snapshot. It only carries value
// fields so that assignment yields an independent copy.
type AppConfig struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Tray   TrayConfig   `toml:"tray" yaml:"tray"`
}

type WindowConfig struct {
	Title     string  `toml:"title" yaml:"title"`
	Width     float32 `toml:"width" yaml:"width"`
	Height    float32 `toml:"height" yaml:"height"`
	MinWidth  float32 `toml:"min_width" yaml:"min_width"`
	MinHeight float32 `toml:"min_height" yaml:"min_height"`
	Resizable bool    `toml:"resizable" yaml:"resizable"`
	Centered  bool    `toml:"centered" yaml:"centered"`
}

type LogConfig struct {
	Level   string `toml:"level" yaml:"level"`
	Dir     string `toml:"dir" yaml:"dir"`
	Console bool   `toml:"console" yaml:"console"`
}

type TrayConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Title:     "Hacker News",
			Width:     1200,
			Height:    800,
			MinWidth:  800,
			MinHeight: 600,
			Resizable: true,
			Centered:  true,
		},
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
		Tray: TrayConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first inconsistency in the snapshot.
func (c *AppConfig) Validate() error {
	var errs []error
	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %vx%v", w.Width, w.Height))
	}
	if w.MinWidth < 0 || w.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("window min size must not be negative, got %vx%v", w.MinWidth, w.MinHeight))
	}
	if w.MinWidth > w.Width || w.MinHeight > w.Height {
		errs = append(errs, fmt.Errorf("window min size %vx%v exceeds size %vx%v", w.MinWidth, w.MinHeight, w.Width, w.Height))
	}
	return errors.Join(errs...)
}
