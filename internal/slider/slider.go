package slider

import (
	"math"
	"time"

	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
	"github.com/studiowebux/gutview/internal/transform"
)

// Config holds the tunable heuristics of the slider panel.
type Config struct {
	Margin            float64       // pixels kept empty at both ends of a row
	WheelStep         float64       // largest position change per wheel event
	DefaultRoiDivisor float64       // default width = round(length/divisor) * step
	DefaultRoiStep    float64
	ClickDelay        time.Duration // single vs double click window
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{
		Margin:            10,
		WheelStep:         5,
		DefaultRoiDivisor: 350,
		DefaultRoiStep:    50,
		ClickDelay:        200 * time.Millisecond,
	}
}

// DefaultWidth returns the initial window width for a branch of the given
// length, never below 1 nor above the length.
func (c Config) DefaultWidth(length float64) float64 {
	w := length
	if c.DefaultRoiDivisor > 0 && c.DefaultRoiStep > 0 {
		w = math.Round(length/c.DefaultRoiDivisor) * c.DefaultRoiStep
	}
	return transform.Clamp(w, math.Min(roi.MinWidth, length), length)
}

// Slider is the viewport controller of one branch: a transform and a region
// of interest over the branch's sub-model. Mutating interactions end with a
// call to the change callback.
type Slider struct {
	branch    gut.Branch
	model     *gut.Gut
	transform *transform.Transform
	state     *roi.State
	cfg       Config
	active    bool
	hover     *float64
	onChange  func(*Slider)
}

// NewSlider creates a controller over model, seeded with the default window
// at the start of the branch. model must have regions.
func NewSlider(branch gut.Branch, model *gut.Gut, width float64, leftToRight bool, cfg Config, onChange func(*Slider)) *Slider {
	if model == nil || model.RegionCount() == 0 {
		panic("slider: branch " + branch.String() + " has no regions")
	}
	extent := roi.Extent{Start: model.StartPos(), End: model.EndPos()}
	return &Slider{
		branch:    branch,
		model:     model,
		transform: transform.New(width, extent.Length(), leftToRight, extent.Start, cfg.Margin, 0),
		state:     roi.New(extent, extent.Start, cfg.DefaultWidth(extent.Length())),
		cfg:       cfg,
		onChange:  onChange,
	}
}

func (s *Slider) Branch() gut.Branch               { return s.branch }
func (s *Slider) Model() *gut.Gut                  { return s.model }
func (s *Slider) Transform() *transform.Transform { return s.transform }
func (s *Slider) Active() bool                     { return s.active }

// Extents returns a snapshot of the window and cursor.
func (s *Slider) Extents() roi.Extents {
	return s.state.Extents()
}

// Extent returns the branch range.
func (s *Slider) Extent() roi.Extent {
	return s.state.Extent()
}

// Activate shows the window and cursor of this branch.
func (s *Slider) Activate() { s.active = true }

// Deactivate hides the window and cursor of this branch.
func (s *Slider) Deactivate() {
	s.active = false
	s.hover = nil
}

// SetDisplayWidth resizes the row.
func (s *Slider) SetDisplayWidth(width float64) {
	s.transform.SetWidth(width)
}

// SetDirection flips the row.
func (s *Slider) SetDirection(leftToRight bool) {
	s.transform.SetDirection(leftToRight)
}

func (s *Slider) dispatch() {
	if s.onChange != nil {
		s.onChange(s)
	}
}

// SetRoi replaces the window and cursor without notifying.
func (s *Slider) SetRoi(e roi.Extents) {
	s.state.Restore(e)
}

// SetPosition moves the window without notifying. The cursor is placed at
// cursor when given, otherwise clamped into the new window.
func (s *Slider) SetPosition(pos float64, cursor *float64) {
	if cursor == nil {
		s.state.SetPosition(pos)
		return
	}
	s.state.SetPositionAndCursor(pos, cursor)
}

// SetWidth resizes the window without notifying.
func (s *Slider) SetWidth(width float64) {
	s.state.SetWidth(width)
}

// SetCursor moves the cursor without notifying.
func (s *Slider) SetCursor(pos float64) {
	s.state.SetCursor(pos)
}

// UpdateRoi applies a width (when given and different) and then a position
// (when given) with the cursor at cursor or the window midpoint. It notifies
// once.
func (s *Slider) UpdateRoi(pos, width, cursor *float64) {
	if width != nil && *width != s.state.Width() {
		s.state.SetWidth(*width)
	}
	if pos != nil {
		s.state.SetPositionAndCursor(*pos, cursor)
	}
	s.dispatch()
}

// UpdateCursor moves the cursor and notifies. Non-finite positions are
// ignored without notification.
func (s *Slider) UpdateCursor(pos float64) bool {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return false
	}
	s.state.SetCursor(pos)
	s.dispatch()
	return true
}

// DragWindow moves the window by dx pixels. The cursor keeps its offset
// inside the window.
func (s *Slider) DragWindow(dx float64) {
	d := s.transform.UnscaleLength(dx)
	if !s.transform.LeftToRight() {
		d = -d
	}
	e := s.state.Extents()
	offset := e.CursorPosition - e.Position
	s.state.SetPosition(e.Position + d)
	s.state.SetCursor(s.state.Position() + offset)
	s.dispatch()
}

// ClickWindow moves the cursor to the position under pixel px.
func (s *Slider) ClickWindow(px float64) {
	s.state.SetCursor(math.Round(s.transform.PixelToPosition(px, 0)))
	s.dispatch()
}

// CenterAt moves the window so its midpoint sits under pixel px, with the
// cursor at the new midpoint.
func (s *Slider) CenterAt(px float64) {
	pos := s.transform.PixelToPosition(px, 0) - s.state.Width()/2
	s.state.SetPositionAndCursor(pos, nil)
	s.dispatch()
}

func (s *Slider) wheelDelta(deltaY float64) float64 {
	dw := math.Round(s.transform.UnscaleLength(deltaY))
	return transform.Clamp(dw, -s.cfg.WheelStep, s.cfg.WheelStep)
}

// Wheel pans the window, or resizes it when ctrl is held. Inactive sliders
// ignore the wheel and report false. Positive deltaY moves the window
// towards the left edge of the row in both directions.
func (s *Slider) Wheel(deltaY float64, ctrl bool) bool {
	if !s.active || math.IsNaN(deltaY) {
		return false
	}
	dw := s.wheelDelta(deltaY)
	if ctrl {
		s.state.SetWidth(s.state.Width() - dw)
		s.dispatch()
		return true
	}

	if !s.transform.LeftToRight() {
		dw = -dw
	}
	e := s.state.Extents()
	offset := e.CursorPosition - e.Position
	s.state.SetPosition(math.Round(e.Position - dw))
	s.state.SetCursor(s.state.Position() + offset)
	s.dispatch()
	return true
}

// ZoomBy resizes the window by a wheel delta coming from the zoom view.
func (s *Slider) ZoomBy(deltaY float64) {
	if math.IsNaN(deltaY) {
		return
	}
	s.state.SetWidth(s.state.Width() - s.wheelDelta(deltaY))
	s.dispatch()
}

// Hover records the pointer position over the row, shown as a ghost cursor.
func (s *Slider) Hover(px float64) {
	pos := s.transform.ClampToContent(s.transform.PixelToPosition(px, 0))
	s.hover = &pos
}

// ClearHover removes the ghost cursor.
func (s *Slider) ClearHover() {
	s.hover = nil
}

// HoverPosition returns the ghost cursor position, if any.
func (s *Slider) HoverPosition() (float64, bool) {
	if s.hover == nil {
		return 0, false
	}
	return *s.hover, true
}

// WindowPixels returns the left and right pixel edges of the window.
func (s *Slider) WindowPixels() (left, right float64) {
	e := s.state.Extents()
	left = s.transform.PositionToPixel(e.Position, e.Width)
	return left, left + s.transform.ScaleLength(e.Width)
}

// CursorPixel returns the pixel of the cursor.
func (s *Slider) CursorPixel() float64 {
	return s.transform.PositionToPixel(s.state.Cursor(), 0)
}

// InWindow reports whether pixel px falls on the window.
func (s *Slider) InWindow(px float64) bool {
	left, right := s.WindowPixels()
	return px >= left && px <= right
}
