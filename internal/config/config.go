package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/san-kum/tixy/internal/field"
	"github.com/san-kum/tixy/internal/grid"
	"github.com/san-kum/tixy/internal/palette"
	"github.com/san-kum/tixy/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDim          = render.DefaultDim
	DefaultMaxRadius    = render.DefaultMaxRadius
	DefaultGap          = render.DefaultGap
	DefaultDelay        = 0.05
	DefaultCanvasFill   = "black"
	DefaultPositiveFill = "white"
	DefaultNegativeFill = "#FE2244"
)

type Config struct {
	Pattern string      `yaml:"pattern"`
	Grid    GridConfig  `yaml:"grid"`
	Colors  ColorConfig `yaml:"colors"`
	Delay   float64     `yaml:"delay"`
	Frames  int         `yaml:"frames"`
}

type GridConfig struct {
	Dim       int     `yaml:"dim"`
	MaxRadius float64 `yaml:"max_radius"`
	Gap       float64 `yaml:"gap"`
}

type ColorConfig struct {
	Canvas   string `yaml:"canvas"`
	Positive string `yaml:"positive"`
	Negative string `yaml:"negative"`
}

func DefaultConfig() *Config {
	return &Config{
		Pattern: field.DefaultPattern,
		Grid: GridConfig{
			Dim:       DefaultDim,
			MaxRadius: DefaultMaxRadius,
			Gap:       DefaultGap,
		},
		Colors: ColorConfig{
			Canvas:   DefaultCanvasFill,
			Positive: DefaultPositiveFill,
			Negative: DefaultNegativeFill,
		},
		Delay: DefaultDelay,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file over cfg. Keys missing from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyTheme replaces the colors with a named theme.
func (c *Config) ApplyTheme(name string) error {
	th, err := palette.GetTheme(name)
	if err != nil {
		return err
	}
	c.Colors = ColorConfig{Canvas: th.Canvas, Positive: th.Positive, Negative: th.Negative}
	return nil
}

func (c *Config) GridConfig() grid.Config {
	return grid.Config{Dim: c.Grid.Dim, MaxRadius: c.Grid.MaxRadius, Gap: c.Grid.Gap}
}

func (c *Config) Validate() error {
	if err := c.GridConfig().Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.Delay) || math.IsInf(c.Delay, 0) || c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %v", c.Delay)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", c.Frames)
	}
	if _, err := palette.ParseStyle(c.Colors.Canvas, c.Colors.Positive, c.Colors.Negative); err != nil {
		return err
	}
	return nil
}

// RenderConfig validates c and converts it for the renderer.
func (c *Config) RenderConfig() (render.Config, error) {
	if err := c.Validate(); err != nil {
		return render.Config{}, err
	}
	style, err := palette.ParseStyle(c.Colors.Canvas, c.Colors.Positive, c.Colors.Negative)
	if err != nil {
		return render.Config{}, err
	}
	return render.Config{
		Grid:   c.GridConfig(),
		Style:  style,
		Delay:  time.Duration(c.Delay * float64(time.Second)),
		Frames: c.Frames,
	}, nil
}
