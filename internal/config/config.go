// Package config loads the runtime configuration of the overlay.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/guidoenr/wallvis/internal/layout"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "OVERLAY_CONFIG"

// Config holds the runtime configuration.
type Config struct {
	Server     ServerConfig   `yaml:"server"`
	Viewport   ViewportConfig `yaml:"viewport"`
	Render     RenderConfig   `yaml:"render"`
	Log        LogConfig      `yaml:"log"`
	Properties map[string]any `yaml:"properties"`
}

// ServerConfig holds the host transport settings.
type ServerConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// ViewportConfig is the viewport used until the host reports its own.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig controls the local frame source and preview.
type RenderConfig struct {
	Demo      bool    `yaml:"demo"`
	DemoBars  int     `yaml:"demo_bars"`
	TargetFPS float64 `yaml:"target_fps"`
	Window    bool    `yaml:"window"`
	Profile   string  `yaml:"profile"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// Property is one startup property assignment.
type Property struct {
	Name  string
	Value any
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Enabled: true, Port: 8080},
		Viewport: ViewportConfig{Width: 1920, Height: 1080},
		Render: RenderConfig{
			DemoBars:  64,
			TargetFPS: 30,
		},
		Properties: map[string]any{},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the runtime cannot start with.
func (c *Config) Validate() error {
	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 ||
		c.Viewport.Width > layout.MaxViewportDimension || c.Viewport.Height > layout.MaxViewportDimension {
		return fmt.Errorf("invalid viewport: width=%d height=%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Render.TargetFPS <= 0 {
		return fmt.Errorf("render.target_fps must be positive (got %.2f)", c.Render.TargetFPS)
	}
	if c.Render.Demo && c.Render.DemoBars <= 0 {
		return fmt.Errorf("render.demo_bars must be positive (got %d)", c.Render.DemoBars)
	}
	return nil
}

// PropertyList returns the startup properties sorted by name so they apply
// in a stable order.
func (c *Config) PropertyList() []Property {
	out := make([]Property, 0, len(c.Properties))
	for name, value := range c.Properties {
		out = append(out, Property{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
