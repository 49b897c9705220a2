// Package config loads the gazeline configuration from TOML or YAML files
// and builds the configured palette, screen geometry, and detector set.
package config

import (
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/gazelab/gazeline/detect"
	"github.com/gazelab/gazeline/gaze"
	"github.com/gazelab/gazeline/scarf"
	"gopkg.in/yaml.v3"
	"image/color"
	"io/ioutil"
	"path/filepath"
	"strconv"
)

type Config struct {
	Screen    ScreenConfig      `toml:"screen" yaml:"screen"`
	Colors    map[string]string `toml:"palette" yaml:"palette"`
	Detection DetectionConfig   `toml:"detectors" yaml:"detectors"`
	Viewer    ViewerConfig      `toml:"viewer" yaml:"viewer"`
	Store     StoreConfig       `toml:"store" yaml:"store"`
	Report    ReportConfig      `toml:"report" yaml:"report"`
}

type ScreenConfig struct {
	DistanceCM  float64 `toml:"distance_cm" yaml:"distance_cm"`
	PixelSizeCM float64 `toml:"pixel_size_cm" yaml:"pixel_size_cm"`
}

type DetectionConfig struct {
	IVT             IVTConfig     `toml:"ivt" yaml:"ivt"`
	IDT             IDTConfig     `toml:"idt" yaml:"idt"`
	Engbert         EngbertConfig `toml:"engbert" yaml:"engbert"`
	MinEventSamples int           `toml:"min_event_samples" yaml:"min_event_samples"`
}

type IVTConfig struct {
	SaccadeVelocityDeg float64 `toml:"saccade_velocity_deg" yaml:"saccade_velocity_deg"`
}

type IDTConfig struct {
	DispersionDeg float64 `toml:"dispersion_deg" yaml:"dispersion_deg"`
	DurationMS    float64 `toml:"duration_ms" yaml:"duration_ms"`
}

type EngbertConfig struct {
	Lambda float64 `toml:"lambda" yaml:"lambda"`
}

// ViewerConfig selects an external image viewer for rendered scarfplots.
// An empty command means the built-in window is used instead.
type ViewerConfig struct {
	Command string `toml:"command" yaml:"command"`
}

type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

type ReportConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the full working default configuration: a 60 cm viewing
// distance, the stock palette, and the detectors at their literature
// parameters.
func Default() *Config {
	cfg := &Config{
		Screen: ScreenConfig{DistanceCM: 60, PixelSizeCM: 0.027},
		Colors: make(map[string]string),
		Detection: DetectionConfig{
			IVT: IVTConfig{SaccadeVelocityDeg: detect.DefaultSaccadeVelocityDeg},
			IDT: IDTConfig{
				DispersionDeg: detect.DefaultDispersionDeg,
				DurationMS:    detect.DefaultIDTDurationMS,
			},
			Engbert:         EngbertConfig{Lambda: detect.DefaultEngbertLambda},
			MinEventSamples: detect.DefaultMinSamples,
		},
		Store:  StoreConfig{Path: "gazeline.db"},
		Report: ReportConfig{Path: "report.html"},
	}
	for label, rgba := range scarf.DefaultPalette() {
		cfg.Colors[label.String()] = fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
	}
	return cfg
}

// Load reads a configuration file over the defaults and validates it. The
// format follows the file extension, with TOML as the fallback; an empty
// path returns the defaults untouched.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %v", err)
	}
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %v", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %v", err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode config (unknown format): %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if err := c.ScreenGeometry().Validate(); err != nil {
		return err
	}
	if !(c.Detection.IVT.SaccadeVelocityDeg > 0) {
		return fmt.Errorf("invalid config: ivt.saccade_velocity_deg must be positive, not %v",
			c.Detection.IVT.SaccadeVelocityDeg)
	}
	if !(c.Detection.IDT.DispersionDeg > 0) {
		return fmt.Errorf("invalid config: idt.dispersion_deg must be positive, not %v",
			c.Detection.IDT.DispersionDeg)
	}
	if !(c.Detection.IDT.DurationMS > 0) {
		return fmt.Errorf("invalid config: idt.duration_ms must be positive, not %v",
			c.Detection.IDT.DurationMS)
	}
	if !(c.Detection.Engbert.Lambda > 0) {
		return fmt.Errorf("invalid config: engbert.lambda must be positive, not %v",
			c.Detection.Engbert.Lambda)
	}
	if c.Detection.MinEventSamples < 1 {
		return fmt.Errorf("invalid config: min_event_samples must be at least 1, not %d",
			c.Detection.MinEventSamples)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

func (c *Config) ScreenGeometry() gaze.Screen {
	return gaze.Screen{
		DistanceCM:  c.Screen.DistanceCM,
		PixelSizeCM: c.Screen.PixelSizeCM,
	}
}

// Palette resolves the configured label colors. Unknown label names and
// malformed color strings are rejected.
func (c *Config) Palette() (scarf.Palette, error) {
	pal := make(scarf.Palette, len(c.Colors))
	for name, raw := range c.Colors {
		label, err := gaze.ParseEventLabel(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %v", err)
		}
		rgba, err := parseHexColor(raw)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %v", name, err)
		}
		pal[label] = rgba
	}
	return pal, nil
}

// Detectors builds the configured detector set.
func (c *Config) Detectors() ([]detect.Detector, error) {
	screen := c.ScreenGeometry()
	if err := screen.Validate(); err != nil {
		return nil, err
	}
	return []detect.Detector{
		&detect.IVT{
			Screen:             screen,
			SaccadeVelocityDeg: c.Detection.IVT.SaccadeVelocityDeg,
			MinSamples:         c.Detection.MinEventSamples,
		},
		&detect.IDT{
			Screen:        screen,
			DispersionDeg: c.Detection.IDT.DispersionDeg,
			DurationMS:    c.Detection.IDT.DurationMS,
			MinSamples:    c.Detection.MinEventSamples,
		},
		&detect.Engbert{
			Screen:     screen,
			Lambda:     c.Detection.Engbert.Lambda,
			MinSamples: c.Detection.MinEventSamples,
		},
	}, nil
}

func parseHexColor(raw string) (color.RGBA, error) {
	if len(raw) != 7 || raw[0] != '#' {
		return color.RGBA{}, fmt.Errorf("expected \"#RRGGBB\", got %q", raw)
	}
	v, err := strconv.ParseUint(raw[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("expected \"#RRGGBB\", got %q", raw)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
