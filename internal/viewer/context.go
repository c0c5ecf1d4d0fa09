package viewer

import (
	"io"
	"log/slog"
	"time"

	"github.com/studiowebux/gutview/internal/settings"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/zoom"
)

// Context carries the configuration of one viewer instance. Every component
// receives what it needs from here; nothing is read from package state.
type Context struct {
	Settings settings.Settings
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewContext returns a context with a silent logger and the wall clock when
// those are not given.
func NewContext(s settings.Settings, logger *slog.Logger) Context {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Context{Settings: s, Logger: logger, Now: time.Now}
}

// SliderConfig returns the slider heuristics from the settings.
func (c Context) SliderConfig() slider.Config {
	t := c.Settings.Tuning
	return slider.Config{
		Margin:            t.SliderMargin,
		WheelStep:         t.WheelStep,
		DefaultRoiDivisor: t.DefaultRoiDivisor,
		DefaultRoiStep:    t.DefaultRoiStep,
		ClickDelay:        time.Duration(t.ClickDelayMs) * time.Millisecond,
	}
}

// ZoomConfig returns the zoom heuristics from the settings.
func (c Context) ZoomConfig() zoom.Config {
	t := c.Settings.Tuning
	return zoom.Config{
		Margin:           t.ZoomMargin,
		PanDampingFactor: t.PanDampingFactor,
		PanDampingBase:   t.PanDampingBase,
	}
}

func (c Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
