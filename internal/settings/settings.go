// Package settings loads and saves the viewer preferences file.
package settings

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/theme"
)

// Tuning holds the numeric heuristics of the viewer.
type Tuning struct {
	DefaultRoiDivisor float64 `yaml:"defaultRoiDivisor"`
	DefaultRoiStep    float64 `yaml:"defaultRoiStep"`
	WheelStep         float64 `yaml:"wheelStep"`
	ClickDelayMs      int     `yaml:"clickDelayMs"`
	SliderMargin      float64 `yaml:"sliderMargin"`
	ZoomMargin        float64 `yaml:"zoomMargin"`
	PanDampingFactor  float64 `yaml:"panDampingFactor"`
	PanDampingBase    float64 `yaml:"panDampingBase"`
}

// Settings are the persisted viewer preferences.
type Settings struct {
	LeftToRight       bool               `yaml:"leftToRight"`
	Theme             string             `yaml:"theme"`
	DisplayMode       events.DisplayMode `yaml:"displayMode"`
	ZoomVisible       bool               `yaml:"zoomVisible"`
	LayersVisible     bool               `yaml:"layersVisible"`
	AbsolutePositions bool               `yaml:"absolutePositions"`
	Tuning            Tuning             `yaml:"tuning"`
}

// DefaultTuning returns the stock heuristics.
func DefaultTuning() Tuning {
	return Tuning{
		DefaultRoiDivisor: 350,
		DefaultRoiStep:    50,
		WheelStep:         5,
		ClickDelayMs:      200,
		SliderMargin:      10,
		ZoomMargin:        10,
		PanDampingFactor:  0.2,
		PanDampingBase:    3,
	}
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		LeftToRight:       false,
		Theme:             theme.DefaultName,
		DisplayMode:       events.ModeFull,
		ZoomVisible:       true,
		LayersVisible:     true,
		AbsolutePositions: true,
		Tuning:            DefaultTuning(),
	}
}

// Load reads the settings at path. A missing file yields the defaults; keys
// absent from the file keep their default values; invalid values are
// replaced by defaults with a warning.
func Load(path string, logger *slog.Logger) (Settings, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	s.normalize(logger)
	return s, nil
}

func (s *Settings) normalize(logger *slog.Logger) {
	def := Default()
	if _, err := events.ParseDisplayMode(string(s.DisplayMode)); err != nil {
		logger.Warn("invalid display mode in settings, using default", "value", s.DisplayMode, "default", def.DisplayMode)
		s.DisplayMode = def.DisplayMode
	}
	if !theme.Valid(s.Theme) {
		logger.Warn("unknown theme in settings, using default", "value", s.Theme, "default", def.Theme)
		s.Theme = def.Theme
	}

	t, d := &s.Tuning, def.Tuning
	positive := func(name string, v *float64, fallback float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
			logger.Warn("invalid tuning value, using default", "key", name, "value", *v, "default", fallback)
			*v = fallback
		}
	}
	nonNegative := func(name string, v *float64, fallback float64) {
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			logger.Warn("invalid tuning value, using default", "key", name, "value", *v, "default", fallback)
			*v = fallback
		}
	}
	positive("defaultRoiDivisor", &t.DefaultRoiDivisor, d.DefaultRoiDivisor)
	positive("defaultRoiStep", &t.DefaultRoiStep, d.DefaultRoiStep)
	positive("wheelStep", &t.WheelStep, d.WheelStep)
	nonNegative("sliderMargin", &t.SliderMargin, d.SliderMargin)
	nonNegative("zoomMargin", &t.ZoomMargin, d.ZoomMargin)
	nonNegative("panDampingFactor", &t.PanDampingFactor, d.PanDampingFactor)
	positive("panDampingBase", &t.PanDampingBase, d.PanDampingBase)
	if t.ClickDelayMs <= 0 {
		logger.Warn("invalid tuning value, using default", "key", "clickDelayMs", "value", t.ClickDelayMs, "default", d.ClickDelayMs)
		t.ClickDelayMs = d.ClickDelayMs
	}
}

// Save writes s to path atomically.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temporary settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set settings file permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
