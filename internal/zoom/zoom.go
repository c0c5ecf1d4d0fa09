// Package zoom implements the detail viewport drawn under the slider panel.
// Panning inside it moves the region of interest itself and is reported as
// region_dragged; moving its cursor is reported as zoom_cursor_change.
package zoom

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/transform"
)

// Config holds the tunable heuristics of the zoom view.
type Config struct {
	Margin float64
	// Pan damping is scale*PanDampingFactor + PanDampingBase; larger values
	// pan fewer positions per pixel.
	PanDampingFactor float64
	PanDampingBase   float64
}

// DefaultConfig returns the stock heuristics.
func DefaultConfig() Config {
	return Config{Margin: 10, PanDampingFactor: 0.2, PanDampingBase: 3}
}

// Zoom is the detail viewport over the region of interest. Its transform
// maps [start, end] of the current model onto the full row width.
type Zoom struct {
	bus    *bus.Bus
	logger *slog.Logger
	cfg    Config

	model     *gut.Gut
	branch    gut.Branch
	transform *transform.Transform

	start, end float64
	cursor     float64

	absolute      bool
	layersVisible bool
}

// New creates a zoom view over model. The window is empty until SetRoi.
func New(b *bus.Bus, model *gut.Gut, width float64, leftToRight bool, cfg Config, logger *slog.Logger) *Zoom {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Zoom{
		bus:           b,
		logger:        logger,
		cfg:           cfg,
		model:         model,
		transform:     transform.New(width, 0, leftToRight, 0, cfg.Margin, 0),
		absolute:      true,
		layersVisible: true,
	}
}

func (z *Zoom) Model() *gut.Gut                  { return z.model }
func (z *Zoom) Branch() gut.Branch               { return z.branch }
func (z *Zoom) Transform() *transform.Transform { return z.transform }
func (z *Zoom) Start() float64                   { return z.start }
func (z *Zoom) End() float64                     { return z.end }
func (z *Zoom) Cursor() float64                  { return z.cursor }
func (z *Zoom) AbsolutePositions() bool          { return z.absolute }
func (z *Zoom) LayersVisible() bool              { return z.layersVisible }

// SetModel points the view at another model, usually a branch sub-model.
// branch is the branch drawn in front.
func (z *Zoom) SetModel(model *gut.Gut, branch gut.Branch) {
	z.model = model
	z.branch = branch
}

// SetRoi shows the window of e. The zoom cursor follows e's cursor, clamped
// into the window.
func (z *Zoom) SetRoi(e roi.Extents) {
	z.start = e.Position
	z.end = e.End()
	z.cursor = transform.Clamp(e.CursorPosition, z.start, z.end)
	z.transform.SetLength(e.Width)
	z.transform.SetPositionOffset(e.Position)
}

// Extents returns the window and zoom cursor.
func (z *Zoom) Extents() roi.Extents {
	return roi.Extents{Position: z.start, Width: z.end - z.start, CursorPosition: z.cursor}
}

func (z *Zoom) SetDisplayWidth(width float64) { z.transform.SetWidth(width) }
func (z *Zoom) SetDirection(leftToRight bool) { z.transform.SetDirection(leftToRight) }
func (z *Zoom) SetAbsolutePositions(abs bool) { z.absolute = abs }
func (z *Zoom) SetLayersVisible(visible bool) { z.layersVisible = visible }

// Shift pans the window by a pixel displacement. The position change is
// damped by the current scale and never leaves the model extent. It reports
// whether the window moved; only then is region_dragged published.
func (z *Zoom) Shift(dx float64) bool {
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		return false
	}
	dPos := math.Ceil(math.Abs(z.transform.UnscaleLength(dx)))
	if dPos == 0 {
		return false
	}
	f := z.transform.Scale()*z.cfg.PanDampingFactor + z.cfg.PanDampingBase
	if f > 0 {
		dPos = math.Max(1, math.Round(dPos/f))
	}

	lr := z.transform.LeftToRight()
	if (dx > 0 && !lr) || (dx < 0 && lr) {
		dPos = math.Min(dPos, math.Max(0, z.model.EndPos()-z.end))
	} else {
		dPos = -math.Min(dPos, math.Max(0, z.start-z.model.StartPos()))
	}
	if dPos == 0 {
		return false
	}

	z.start += dPos
	z.end += dPos
	z.transform.SetPositionOffset(z.start)
	z.cursor = transform.Clamp(z.cursor, z.start, z.end)

	bus.Publish(z.bus, events.RegionDragged, events.RegionDrag{
		Position:       z.start,
		Width:          z.end - z.start,
		CursorPosition: z.cursor,
	})
	return true
}

// Drag pans the window as the pointer moves by dx pixels.
func (z *Zoom) Drag(dx float64) bool {
	return z.Shift(dx)
}

// Wheel pans the window, or asks the slider panel to resize it when ctrl is
// held.
func (z *Zoom) Wheel(deltaY float64, ctrl bool) {
	if math.IsNaN(deltaY) {
		return
	}
	if ctrl {
		bus.Publish(z.bus, events.ZoomChangeRequested, events.ZoomChange{DeltaY: deltaY})
		return
	}
	z.Shift(deltaY)
}

// DragCursor moves the zoom cursor under pixel px, clamped to the window,
// and publishes zoom_cursor_change.
func (z *Zoom) DragCursor(px float64) bool {
	pos := z.transform.PixelToPosition(px, 0)
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return false
	}
	z.cursor = transform.Clamp(pos, z.start, z.end)
	bus.Publish(z.bus, events.ZoomCursorChanged, events.ZoomCursorMove{CursorPosition: z.cursor})
	return true
}

// CursorPixel returns the pixel of the zoom cursor.
func (z *Zoom) CursorPixel() float64 {
	return z.transform.PositionToPixel(z.cursor, 0)
}

// PositionAt returns the whole position under pixel px, clamped to the
// window.
func (z *Zoom) PositionAt(px float64) float64 {
	return transform.Clamp(math.Round(z.transform.PixelToPosition(px, 0)), z.start, z.end)
}

// Click toggles the front branch when both branches exist under pixel px.
func (z *Zoom) Click(px float64) bool {
	main, ext := z.model.FindRegions(z.PositionAt(px))
	if main < 0 || ext < 0 {
		return false
	}
	if z.branch == gut.BranchExt {
		z.branch = gut.BranchMain
	} else {
		z.branch = gut.BranchExt
	}
	z.logger.Debug("zoom branch toggled", "branch", z.branch)
	bus.Publish(z.bus, events.BranchToggled, events.BranchToggle{Branch: z.branch})
	return true
}

// RequestMarker asks the host to create a marker under pixel px on the
// front branch.
func (z *Zoom) RequestMarker(px float64) {
	bus.Publish(z.bus, events.MarkerRequested, events.MarkerRequest{
		Position: z.PositionAt(px),
		Branch:   z.branch,
	})
}

// Press registers a press at pixel px with the shared click detector. A
// single click toggles the front branch; a double click requests a marker.
func (z *Zoom) Press(clicks *slider.ClickDetector, px float64, now time.Time) (seq int, pending bool) {
	return clicks.Press("zoom", now,
		func() { z.Click(px) },
		func() { z.RequestMarker(px) },
	)
}

// Clip is a region cut to the zoom window.
type Clip struct {
	Region     gut.Region
	Start, End float64
}

// VisibleRegions returns the regions intersecting the window, clipped to it.
func (z *Zoom) VisibleRegions() []Clip {
	var out []Clip
	for _, r := range z.model.Regions() {
		if !r.Intersects(z.start, z.end) {
			continue
		}
		out = append(out, Clip{
			Region: r,
			Start:  math.Max(r.StartPos, z.start),
			End:    math.Min(r.EndPos, z.end),
		})
	}
	return out
}

// VisibleLandmarks returns the landmarks intersecting the window.
func (z *Zoom) VisibleLandmarks() []gut.Landmark {
	var out []gut.Landmark
	for _, l := range z.model.Landmarks() {
		if l.Intersects(z.start, z.end) {
			out = append(out, l)
		}
	}
	return out
}

// VisibleMarkers returns the markers inside the window.
func (z *Zoom) VisibleMarkers() []gut.Marker {
	var out []gut.Marker
	for _, m := range z.model.Markers() {
		if m.Position >= z.start && m.Position <= z.end {
			out = append(out, m)
		}
	}
	return out
}

// Labels returns the start and end captions of the window. Each names the
// region the edge falls in and the distance into it, as "mm (pct%)" in
// absolute mode or just a percentage otherwise.
func (z *Zoom) Labels() (start, end string) {
	return z.label(z.start), z.label(z.end)
}

func (z *Zoom) label(pos float64) string {
	i := z.model.FindRegionIndex(pos, z.branch)
	if i < 0 {
		return fmt.Sprintf("%.0f", pos)
	}
	r := z.model.Region(i)
	rel := pos - r.StartPos
	pct := 0.0
	if r.Size() > 0 {
		pct = math.Round(rel / r.Size() * 100)
	}
	if z.absolute {
		return fmt.Sprintf("%s:%.0fmm (%.0f%%)", r.Name, math.Round(rel), pct)
	}
	return fmt.Sprintf("%s:%.0f%%", r.Name, pct)
}
