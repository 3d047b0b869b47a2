// Package config loads processing settings from a TOML file, a .env file
// and PROCESSING_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/gogpu/psdkit"
	"github.com/gogpu/psdkit/psd"
)

// DotEnvFile is read by Load when it exists.
var DotEnvFile = ".env"

// Config holds every tunable of the pipeline.
type Config struct {
	Canvas     Canvas     `toml:"canvas"`
	Stroke     Stroke     `toml:"stroke"`
	Resolution Resolution `toml:"resolution"`
	Input      Input      `toml:"input"`
}

// Canvas configures the outward transform.
type Canvas struct {
	Padding int `toml:"padding" env:"PROCESSING_CANVAS_PADDING"`
}

// Stroke configures stroke generation.
type Stroke struct {
	Width     int     `toml:"width" env:"PROCESSING_DEFAULT_STROKE_WIDTH"`
	Color     string  `toml:"color" env:"PROCESSING_DEFAULT_STROKE_COLOR"`
	Style     string  `toml:"style" env:"PROCESSING_STROKE_STYLE"`
	Smooth    float64 `toml:"smooth" env:"PROCESSING_DEFAULT_STROKE_SMOOTH_FACTOR"`
	Threshold int     `toml:"threshold" env:"PROCESSING_STROKE_THRESHOLD"`

	// Widths lists the stroke versions built for every template.
	// Environment values are separated by semicolons.
	Widths []int `toml:"widths" env:"PROCESSING_STROKE_WIDTHS"`
}

// Resolution is written into documents that carry none.
type Resolution struct {
	DPIH float64 `toml:"dpi_h" env:"PROCESSING_DEFAULT_DPI_H"`
	DPIV float64 `toml:"dpi_v" env:"PROCESSING_DEFAULT_DPI_V"`
	Unit int     `toml:"unit" env:"PROCESSING_DEFAULT_DPI_UNIT"`
}

// Input limits what the CLI accepts.
type Input struct {
	MaxFileSize int64 `toml:"max_file_size" env:"PROCESSING_MAX_FILE_SIZE"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas: Canvas{Padding: psdkit.DefaultPadding},
		Stroke: Stroke{
			Width:     2,
			Color:     "#ffffff",
			Style:     psdkit.StrokePrecise.String(),
			Smooth:    1.0,
			Threshold: 10,
			Widths:    []int{2},
		},
		Resolution: Resolution{DPIH: psd.DefaultDPI, DPIV: psd.DefaultDPI, Unit: 1},
		Input:      Input{MaxFileSize: 100 << 20},
	}
}

// Load returns the defaults overlaid with the TOML file at path (skipped
// when path is empty), then DotEnvFile, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("config: unknown keys in %s: %v", path, keys)
		}
	}

	if _, err := os.Stat(DotEnvFile); err == nil {
		if err := godotenv.Load(DotEnvFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", DotEnvFile, err)
		}
	}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and parses the colour and style.
func (c *Config) Validate() error {
	if c.Canvas.Padding < 0 {
		return fmt.Errorf("config: canvas padding must not be negative, got %d", c.Canvas.Padding)
	}
	if c.Stroke.Threshold < 0 || c.Stroke.Threshold > 255 {
		return fmt.Errorf("config: stroke threshold %d outside 0..255", c.Stroke.Threshold)
	}
	if _, err := c.StrokeSpec(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := psdkit.NormalizeStrokeWidths(c.Stroke.Widths); err != nil {
		return fmt.Errorf("config: stroke widths: %w", err)
	}
	if c.Resolution.DPIH <= 0 || c.Resolution.DPIV <= 0 {
		return fmt.Errorf("config: resolution must be positive")
	}
	if c.Input.MaxFileSize <= 0 {
		return fmt.Errorf("config: max file size must be positive")
	}
	return nil
}

// StrokeSpec converts the stroke settings.
func (c *Config) StrokeSpec() (psdkit.StrokeSpec, error) {
	col, err := ParseColor(c.Stroke.Color)
	if err != nil {
		return psdkit.StrokeSpec{}, err
	}
	style, err := psdkit.ParseStrokeStyle(c.Stroke.Style)
	if err != nil {
		return psdkit.StrokeSpec{}, err
	}
	spec := psdkit.StrokeSpec{
		Width:     c.Stroke.Width,
		Color:     col,
		Style:     style,
		Smooth:    c.Stroke.Smooth,
		Threshold: uint8(min(max(c.Stroke.Threshold, 0), 255)),
	}
	return spec, spec.Validate()
}

// DocumentResolution converts the resolution settings.
func (c *Config) DocumentResolution() *psd.Resolution {
	unit := uint16(c.Resolution.Unit)
	return &psd.Resolution{
		HRes: c.Resolution.DPIH, HResUnit: unit, WidthUnit: 1,
		VRes: c.Resolution.DPIV, VResUnit: unit, HeightUnit: 1,
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return err.Error()
	}
	return b.String()
}
