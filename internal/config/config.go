// Package config loads radarview settings from YAML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"radarview/internal/dataset"
	"radarview/internal/logging"
	"radarview/internal/radar"
)

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config not found")
	// ErrInvalid is returned for unparsable or out of range settings.
	ErrInvalid = errors.New("invalid config")
)

type Chart struct {
	Diameter float64 `yaml:"diameter"`
	MaxValue float64 `yaml:"max_value"`
	Title    string  `yaml:"title"`
}

type Data struct {
	Path  string            `yaml:"path"`
	Label string            `yaml:"label"`
	Value string            `yaml:"value"`
	Where map[string]string `yaml:"where"`
	Top   int               `yaml:"top"`
	Unit  string            `yaml:"unit"`
	Sheet string            `yaml:"sheet"`
	SQL   string            `yaml:"sql"`

	// Filter names the column the viewers cycle with [ and ]. Empty
	// falls back to the first where key.
	Filter string `yaml:"filter"`
}

// Theme colors are hex strings; empty keeps the default.
type Theme struct {
	Polygon string `yaml:"polygon"`
	Ring    string `yaml:"ring"`
	Text    string `yaml:"text"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type Config struct {
	Chart Chart `yaml:"chart"`
	Data  Data  `yaml:"data"`
	Theme Theme `yaml:"theme"`
	Log   Log   `yaml:"log"`
}

// Default mirrors the screen time dashboard: a 250 px chart scaled to 10.
func Default() Config {
	return Config{
		Chart: Chart{Diameter: 250, MaxValue: radar.DefaultMaxValue},
		Data:  Data{Label: "label", Value: "value"},
		Log:   Log{Level: "info", Format: "console"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Chart.Diameter <= 0 {
		return fmt.Errorf("%w: chart.diameter must be positive, got %v", ErrInvalid, c.Chart.Diameter)
	}
	if c.Chart.MaxValue <= 0 {
		return fmt.Errorf("%w: chart.max_value must be positive, got %v", ErrInvalid, c.Chart.MaxValue)
	}
	if c.Data.Top < 0 {
		return fmt.Errorf("%w: data.top must not be negative, got %d", ErrInvalid, c.Data.Top)
	}
	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if c.Log.Format != "" && c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := c.Theme.Resolve(); err != nil {
		return err
	}
	return nil
}

// Query returns the dataset query described by the data section.
func (c Config) Query() dataset.Query {
	return dataset.Query{Label: c.Data.Label, Value: c.Data.Value, Where: c.Data.Where, Top: c.Data.Top}
}

// FilterColumn is the column the viewers cycle, or empty for none.
func (c Config) FilterColumn() string {
	return dataset.FilterColumn(c.Data.Filter, c.Data.Where)
}

// LoadOptions returns the format options of the data section.
func (c Config) LoadOptions() dataset.Options {
	return dataset.Options{Sheet: c.Data.Sheet, SQL: c.Data.SQL}
}

// Logging returns the logger configuration writing to out.
func (c Config) Logging(out *os.File) logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format, Output: out}
}

// Resolve turns the theme into radar styles on top of radar.DefaultTheme.
func (t Theme) Resolve() (radar.Theme, error) {
	th := radar.DefaultTheme()
	if t.Polygon != "" {
		c, err := parseHex("theme.polygon", t.Polygon)
		if err != nil {
			return th, err
		}
		th = th.WithAccent(c)
	}
	if t.Ring != "" {
		c, err := parseHex("theme.ring", t.Ring)
		if err != nil {
			return th, err
		}
		th.Ring.Stroke = c
	}
	if t.Text != "" {
		c, err := parseHex("theme.text", t.Text)
		if err != nil {
			return th, err
		}
		th.Label.Color, th.Title.Color, th.TooltipText.Color = c, c, c
	}
	return th, nil
}

func parseHex(field, s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %s %q: %v", ErrInvalid, field, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
