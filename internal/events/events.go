// Package events defines the notifications exchanged between viewer panels
// and the payload each one carries. Payloads are values; a subscriber never
// shares state with the publisher.
package events

import (
	"fmt"

	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/gut"
)

// DisplayMode selects which branches the slider panel shows.
type DisplayMode string

const (
	ModeFull    DisplayMode = "full"    // both branches, one row each
	ModeMain    DisplayMode = "main"    // branch 0 only
	ModeExt     DisplayMode = "ext"     // branch 1 only
	ModeOverlap DisplayMode = "overlap" // both branches in one coordinate space
)

// DisplayModes lists the modes in cycling order.
var DisplayModes = []DisplayMode{ModeFull, ModeMain, ModeExt, ModeOverlap}

// ParseDisplayMode validates a mode name.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range DisplayModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown display mode %q (expected full, main, ext or overlap)", s)
}

// RoiChange is the authoritative region of interest after any change.
// Positions are in the coordinates of the current branch; Offset is that
// branch's origin within the full model.
type RoiChange struct {
	Position       float64
	Width          float64
	CursorPosition float64
	Branch         gut.Branch
	Offset         float64
}

// RegionDrag reports that the zoom view panned the window itself.
type RegionDrag struct {
	Position       float64
	Width          float64
	CursorPosition float64
}

// ZoomCursorMove reports a cursor move inside the zoom view.
type ZoomCursorMove struct {
	CursorPosition float64
}

// ZoomChange asks the current slider to resize its window.
type ZoomChange struct {
	DeltaY float64
}

// BranchChange reports that the current branch or its model changed.
type BranchChange struct {
	Model  *gut.Gut
	Branch gut.Branch
}

// ModelChange reports a newly displayed model.
type ModelChange struct {
	Model *gut.Gut
}

// ModeChange reports a display mode switch.
type ModeChange struct {
	From DisplayMode
	To   DisplayMode
}

// RoiDialog asks the host to open the ROI editing dialog.
type RoiDialog struct {
	Position       float64
	Width          float64
	CursorPosition float64
	Branch         gut.Branch
}

// MarkerRequest asks the host to create a marker at a position of the
// zoomed branch.
type MarkerRequest struct {
	Position float64
	Branch   gut.Branch
}

// BranchToggle asks the slider panel to bring another branch to the front
// of the zoom view.
type BranchToggle struct {
	Branch gut.Branch
}

// FullViewToggle reports that the zoom panel full view was switched.
type FullViewToggle struct {
	Enabled bool
}

var (
	RoiChanged          = bus.NewTopic[RoiChange]("roi_change")
	RegionDragged       = bus.NewTopic[RegionDrag]("region_dragged")
	ZoomCursorChanged   = bus.NewTopic[ZoomCursorMove]("zoom_cursor_change")
	ZoomChangeRequested = bus.NewTopic[ZoomChange]("zoom_change_request")
	BranchChanged       = bus.NewTopic[BranchChange]("branch_change")
	ModelChanged        = bus.NewTopic[ModelChange]("model_change")
	ModeChanged         = bus.NewTopic[ModeChange]("display_mode_change")
	RoiDialogRequested  = bus.NewTopic[RoiDialog]("roi_dialog_request")
	MarkerRequested     = bus.NewTopic[MarkerRequest]("marker_request")
	BranchToggled       = bus.NewTopic[BranchToggle]("branch_toggle_request")
	FullViewToggled     = bus.NewTopic[FullViewToggle]("full_view_toggle")
)

// Recorder collects the payloads of one topic, for tests and debugging.
type Recorder[T any] struct {
	Events []T
	sub    bus.Subscription
}

// Record subscribes a recorder to topic t.
func Record[T any](b *bus.Bus, t bus.Topic[T]) *Recorder[T] {
	r := &Recorder[T]{}
	r.sub = bus.Subscribe(b, t, func(p T) { r.Events = append(r.Events, p) })
	return r
}

// Last returns the most recent payload.
func (r *Recorder[T]) Last() (T, bool) {
	var zero T
	if len(r.Events) == 0 {
		return zero, false
	}
	return r.Events[len(r.Events)-1], true
}

// Reset forgets recorded payloads.
func (r *Recorder[T]) Reset() {
	r.Events = nil
}

// Stop unsubscribes the recorder.
func (r *Recorder[T]) Stop() {
	r.sub.Unsubscribe()
}
