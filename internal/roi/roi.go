// Package roi keeps a region of interest (window and cursor) inside a branch.
package roi

import (
	"math"

	"github.com/studiowebux/gutview/internal/transform"
)

// MinWidth is the smallest window width.
const MinWidth = 1.0

// Extent is the coordinate range of a branch.
type Extent struct {
	Start float64
	End   float64
}

// Length returns End minus Start.
func (e Extent) Length() float64 {
	return e.End - e.Start
}

// Extents is a snapshot of a region of interest.
type Extents struct {
	Position       float64
	Width          float64
	CursorPosition float64
}

// End returns the window end.
func (e Extents) End() float64 {
	return e.Position + e.Width
}

// Mid returns the window midpoint.
func (e Extents) Mid() float64 {
	return e.Position + e.Width/2
}

// Shift returns the extents moved by d.
func (e Extents) Shift(d float64) Extents {
	e.Position += d
	e.CursorPosition += d
	return e
}

// State is the window and cursor of one branch. After every mutation
//
//	extent.Start <= position
//	position + width <= extent.End
//	position <= cursor <= position + width
//	width >= 1 (or the branch length when shorter)
//
// Non-finite arguments are ignored.
type State struct {
	extent   Extent
	position float64
	width    float64
	cursor   float64
}

// New creates a state inside extent with the cursor at the window midpoint.
func New(extent Extent, position, width float64) *State {
	s := &State{extent: extent, position: extent.Start, width: extent.Length()}
	s.width = s.clampWidth(width)
	if finite(position) {
		s.position = s.clampPosition(position)
	}
	s.cursor = s.position + s.width/2
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (s *State) minWidth() float64 {
	return math.Min(MinWidth, s.extent.Length())
}

func (s *State) clampWidth(w float64) float64 {
	if !finite(w) {
		return s.width
	}
	w = transform.Clamp(w, s.minWidth(), s.extent.Length())
	if rounded := math.Round(w); rounded >= s.minWidth() && rounded <= s.extent.Length() {
		w = rounded
	}
	return w
}

func (s *State) clampPosition(pos float64) float64 {
	return transform.Clamp(pos, s.extent.Start, s.extent.End-s.width)
}

func (s *State) clampCursor() {
	s.cursor = transform.Clamp(s.cursor, s.position, s.position+s.width)
}

// Extent returns the branch range the state is bound to.
func (s *State) Extent() Extent {
	return s.extent
}

// Extents returns a snapshot of the window and cursor.
func (s *State) Extents() Extents {
	return Extents{Position: s.position, Width: s.width, CursorPosition: s.cursor}
}

func (s *State) Position() float64 { return s.position }
func (s *State) Width() float64    { return s.width }
func (s *State) Cursor() float64   { return s.cursor }

// SetPosition moves the window, clamped into the extent. The cursor is
// clamped into the new window, not re-centred.
func (s *State) SetPosition(pos float64) {
	if !finite(pos) {
		return
	}
	s.position = s.clampPosition(pos)
	s.clampCursor()
}

// SetWidth resizes the window around its midpoint. The width is clamped to
// [1, branch length] first, then the position is clamped so the whole window
// stays inside the branch.
func (s *State) SetWidth(width float64) {
	if !finite(width) {
		return
	}
	w := s.clampWidth(width)
	if w == s.width {
		return
	}
	dw := (w - s.width) / 2
	s.width = w
	s.position = s.clampPosition(math.Round(s.position - dw))
	s.clampCursor()
}

// SetCursor moves the cursor, clamped into the window.
func (s *State) SetCursor(pos float64) {
	if !finite(pos) {
		return
	}
	s.cursor = transform.Clamp(pos, s.position, s.position+s.width)
}

// SetPositionAndCursor moves the window and places the cursor. A nil cursor
// puts it at the window midpoint.
func (s *State) SetPositionAndCursor(pos float64, cursor *float64) {
	if !finite(pos) {
		return
	}
	s.position = s.clampPosition(pos)
	c := s.position + s.width/2
	if cursor != nil && finite(*cursor) {
		c = *cursor
	}
	s.cursor = transform.Clamp(c, s.position, s.position+s.width)
}

// Restore replaces the window and cursor with e, clamped into the extent.
func (s *State) Restore(e Extents) {
	if !finite(e.Position) || !finite(e.Width) || !finite(e.CursorPosition) {
		return
	}
	s.width = s.clampWidth(e.Width)
	s.position = s.clampPosition(e.Position)
	s.cursor = transform.Clamp(e.CursorPosition, s.position, s.position+s.width)
}

// SetExtent binds the state to a new branch range and re-clamps.
func (s *State) SetExtent(extent Extent) {
	s.extent = extent
	s.width = transform.Clamp(s.width, s.minWidth(), extent.Length())
	s.position = s.clampPosition(s.position)
	s.clampCursor()
}
