// Package viewer assembles the slider panel, the zoom view and the
// annotation panel around one notification bus and exposes the programmatic
// API of the viewer.
//
// Routing between the panels:
//
//	roi_change            -> zoom window, annotation range
//	branch_change         -> zoom model, annotation list
//	region_dragged        -> active slider position and cursor
//	zoom_cursor_change    -> active slider cursor
//	zoom_change_request   -> active slider width
//	branch_toggle_request -> current branch (front branch in overlap mode)
//
// Every call of the API results in at most one roi_change.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/studiowebux/gutview/internal/annotation"
	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
	"github.com/studiowebux/gutview/internal/settings"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/theme"
	"github.com/studiowebux/gutview/internal/zoom"
)

// ErrNoModel is returned when a viewer is created without a model.
var ErrNoModel = errors.New("no model")

// Viewer is one gut viewer instance.
type Viewer struct {
	ctx    Context
	logger *slog.Logger
	bus    *bus.Bus

	model       *gut.Gut
	panel       *slider.Panel
	zoom        *zoom.Zoom
	annotations *annotation.Panel

	fullView bool
	theme    string
	subs     []bus.Subscription
}

// New builds a viewer for model at the given display width in pixels and
// publishes its initial state.
func New(ctx Context, model *gut.Gut, width float64) (*Viewer, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	s := ctx.Settings
	v := &Viewer{
		ctx:      ctx,
		logger:   ctx.logger(),
		bus:      bus.New(),
		model:    model,
		fullView: s.ZoomVisible,
		theme:    theme.MustGet(s.Theme).Name,
	}

	v.panel = slider.NewPanel(v.bus, model, width, s.LeftToRight, ctx.SliderConfig(), v.logger)
	v.zoom = zoom.New(v.bus, v.panel.Active().Model(), width, s.LeftToRight, ctx.ZoomConfig(), v.logger)
	v.zoom.SetAbsolutePositions(s.AbsolutePositions)
	v.zoom.SetLayersVisible(s.LayersVisible)
	v.annotations = annotation.NewPanel(v.panel.Active().Model())
	v.annotations.SetAbsolutePositions(s.AbsolutePositions)

	v.wire()

	if s.DisplayMode != "" && s.DisplayMode != v.panel.Mode() && v.panel.Available(s.DisplayMode) {
		if err := v.panel.SetDisplayMode(s.DisplayMode); err != nil {
			v.logger.Warn("failed to restore display mode", "mode", s.DisplayMode, "error", err)
			v.panel.Refresh()
		}
	} else {
		v.panel.Refresh()
	}
	return v, nil
}

func (v *Viewer) wire() {
	v.subs = append(v.subs,
		bus.Subscribe(v.bus, events.RoiChanged, v.onRoiChange),
		bus.Subscribe(v.bus, events.BranchChanged, v.onBranchChange),
		bus.Subscribe(v.bus, events.RegionDragged, func(e events.RegionDrag) {
			v.panel.SetRoiFromZoom(e.Position, e.CursorPosition)
		}),
		bus.Subscribe(v.bus, events.ZoomCursorChanged, func(e events.ZoomCursorMove) {
			v.panel.SetCursorPosition(e.CursorPosition)
		}),
		bus.Subscribe(v.bus, events.ZoomChangeRequested, func(e events.ZoomChange) {
			v.panel.ZoomBy(e.DeltaY)
		}),
		bus.Subscribe(v.bus, events.BranchToggled, func(e events.BranchToggle) {
			if err := v.panel.SelectBranch(e.Branch); err != nil {
				v.logger.Warn("failed to bring branch to front", "branch", e.Branch, "error", err)
			}
		}),
	)
}

func (v *Viewer) onRoiChange(e events.RoiChange) {
	v.zoom.SetRoi(roi.Extents{Position: e.Position, Width: e.Width, CursorPosition: e.CursorPosition})
	v.annotations.UpdateRoi(e)
}

func (v *Viewer) onBranchChange(e events.BranchChange) {
	v.zoom.SetModel(e.Model, e.Branch)
	v.annotations.SetModel(e.Model)
}

// Close detaches the panels from the bus. Subscribers added by the host are
// left alone.
func (v *Viewer) Close() {
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
}

func (v *Viewer) Context() Context                { return v.ctx }
func (v *Viewer) Bus() *bus.Bus                   { return v.bus }
func (v *Viewer) Model() *gut.Gut                 { return v.model }
func (v *Viewer) Panel() *slider.Panel            { return v.panel }
func (v *Viewer) Zoom() *zoom.Zoom                { return v.zoom }
func (v *Viewer) Annotations() *annotation.Panel  { return v.annotations }
func (v *Viewer) DisplayMode() events.DisplayMode { return v.panel.Mode() }
func (v *Viewer) CurrentBranch() gut.Branch       { return v.panel.CurrentBranch() }
func (v *Viewer) FullView() bool                  { return v.fullView }
func (v *Viewer) Theme() string                   { return v.theme }
func (v *Viewer) Palette() theme.Palette          { return theme.MustGet(v.theme) }
func (v *Viewer) LeftToRight() bool               { return v.panel.LeftToRight() }
func (v *Viewer) AbsolutePositions() bool         { return v.zoom.AbsolutePositions() }
func (v *Viewer) LayersVisible() bool             { return v.zoom.LayersVisible() }

// UpdateRoi places the region of interest of branch at pos, with an
// optional width. Branch 1 is made current when needed.
func (v *Viewer) UpdateRoi(pos float64, branch gut.Branch, width *float64) error {
	return v.panel.UpdateRoi(pos, branch, width, nil)
}

// SetRoi places the window and the cursor in one change.
func (v *Viewer) SetRoi(pos float64, branch gut.Branch, width, cursor *float64) error {
	return v.panel.UpdateRoi(pos, branch, width, cursor)
}

// SetCursorPosition moves the cursor of the current branch.
func (v *Viewer) SetCursorPosition(pos float64) {
	v.panel.SetCursorPosition(pos)
}

// RoiExtents returns the region of interest of the current branch.
func (v *Viewer) RoiExtents() roi.Extents {
	return v.panel.RoiExtents()
}

// Offset returns the origin of the current branch in full-model coordinates.
func (v *Viewer) Offset() float64 {
	return v.panel.Offset()
}

// SetDisplayMode switches the slider panel mode.
func (v *Viewer) SetDisplayMode(mode events.DisplayMode) error {
	return v.panel.SetDisplayMode(mode)
}

// CycleDisplayMode moves to the next mode the model supports.
func (v *Viewer) CycleDisplayMode() error {
	return v.panel.CycleDisplayMode()
}

// SetModel replaces the displayed model. Markers of the previous model are
// not carried over.
func (v *Viewer) SetModel(model *gut.Gut) error {
	if model == nil {
		return ErrNoModel
	}
	if err := model.Validate(); err != nil {
		return fmt.Errorf("failed to load model: %w", err)
	}
	v.model = model
	bus.Publish(v.bus, events.ModelChanged, events.ModelChange{Model: model})
	v.panel.SetModel(model)
	v.logger.Info("model loaded", "id", model.ID, "name", model.Name, "regions", model.RegionCount())
	return nil
}

// AddMarker adds a marker at pos. With a branch the position is expressed in
// that branch's coordinates; without one it is a full-model position.
func (v *Viewer) AddMarker(pos float64, description string, branch *gut.Branch) (gut.Marker, error) {
	target := v.model
	b := gut.BranchBoth
	if branch != nil {
		b = *branch
		if b == gut.BranchMain || b == gut.BranchExt {
			if !v.panel.HasBranch(b) {
				return gut.Marker{}, fmt.Errorf("%w: %s", slider.ErrBranchUnavailable, b)
			}
			target = v.panel.Slider(b).Model()
		}
	}
	m, err := target.AddMarker(pos, description, b)
	if err != nil {
		return gut.Marker{}, fmt.Errorf("failed to add marker: %w", err)
	}
	v.logger.Debug("marker added", "id", m.ID, "position", m.Position, "branch", m.Branch)
	return m, nil
}

// AddMarkerInZoom adds a marker at a position of the zoomed model.
func (v *Viewer) AddMarkerInZoom(pos float64, description string) (gut.Marker, error) {
	m, err := v.zoom.Model().AddMarker(pos, description, v.zoom.Branch())
	if err != nil {
		return gut.Marker{}, fmt.Errorf("failed to add marker: %w", err)
	}
	return m, nil
}

// Markers returns every marker in full-model coordinates.
func (v *Viewer) Markers() []gut.Marker {
	return v.model.Markers()
}

// RemoveMarker deletes a marker by id.
func (v *Viewer) RemoveMarker(id int) bool {
	return v.model.RemoveMarker(id)
}

// ClearMarkers deletes every marker.
func (v *Viewer) ClearMarkers() {
	v.model.ClearMarkers()
}

// ReplaceMarkers swaps the markers for ms, given in full-model coordinates.
func (v *Viewer) ReplaceMarkers(ms []gut.Marker) (skipped int) {
	return v.model.ReplaceMarkers(ms)
}

// SetFullView shows or hides the zoom and annotation panels.
func (v *Viewer) SetFullView(enabled bool) {
	if v.fullView == enabled {
		return
	}
	v.fullView = enabled
	bus.Publish(v.bus, events.FullViewToggled, events.FullViewToggle{Enabled: enabled})
}

// ToggleFullView flips the zoom and annotation panels.
func (v *Viewer) ToggleFullView() {
	v.SetFullView(!v.fullView)
}

// SetLeftToRight changes the drawing direction of every panel.
func (v *Viewer) SetLeftToRight(leftToRight bool) {
	v.panel.SetDirection(leftToRight)
	v.zoom.SetDirection(leftToRight)
}

// ToggleDirection flips the drawing direction.
func (v *Viewer) ToggleDirection() {
	v.SetLeftToRight(!v.LeftToRight())
}

// Resize changes the display width of the slider rows and the zoom view.
func (v *Viewer) Resize(width float64) {
	if math.IsNaN(width) || width <= 0 {
		return
	}
	v.panel.SetDisplayWidth(width)
	v.zoom.SetDisplayWidth(width)
}

// SetAbsolutePositions switches labels between positions and percentages.
func (v *Viewer) SetAbsolutePositions(abs bool) {
	v.zoom.SetAbsolutePositions(abs)
	v.annotations.SetAbsolutePositions(abs)
}

// ToggleLayers shows or hides the zoom layers.
func (v *Viewer) ToggleLayers() {
	v.zoom.SetLayersVisible(!v.zoom.LayersVisible())
}

// SetTheme selects a palette by name.
func (v *Viewer) SetTheme(name string) error {
	p, err := theme.Get(name)
	if err != nil {
		return err
	}
	v.theme = p.Name
	return nil
}

// CycleTheme moves to the next palette.
func (v *Viewer) CycleTheme() string {
	v.theme = theme.Next(v.theme)
	return v.theme
}

// Settings returns the current preferences, ready to be saved.
func (v *Viewer) Settings() settings.Settings {
	s := v.ctx.Settings
	s.LeftToRight = v.LeftToRight()
	s.Theme = v.theme
	s.DisplayMode = v.panel.Mode()
	s.ZoomVisible = v.fullView
	s.LayersVisible = v.zoom.LayersVisible()
	s.AbsolutePositions = v.zoom.AbsolutePositions()
	return s
}
