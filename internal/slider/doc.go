// Package slider implements the slider panel: one viewport controller per
// branch and the coordinator that switches between them.
//
// # Overview
//
// A Slider maps one branch's sub-model onto a row of pixels and owns the
// region of interest (ROI) of that branch: a window [position, position+width]
// and a cursor inside it. Dragging, wheel and click interactions mutate the
// ROI and end with exactly one change callback.
//
// A Panel owns the sliders of both branches plus a third one over the full
// model, used in overlap mode. Only one slider is active at a time; its ROI is
// the authoritative one and every change is published on the bus as a
// roi_change notification.
//
// # Coordinates
//
// The main branch slider uses full-model positions. The extension branch
// slider is rebased so the branch starts at 0; RoiChange.Offset carries the
// amount to add to get back to full-model positions. The overlap slider uses
// full-model positions for both branches.
//
// # Display modes
//
//	full     both branches, one row each
//	main     branch 0 only
//	ext      branch 1 only
//	overlap  both branches on a single row
//
// Entering overlap converts the current branch ROI to full-model coordinates.
// Leaving restores it exactly when nothing changed meanwhile; otherwise the
// branch holding the larger share of the window becomes current.
//
// # Clicks
//
// ClickDetector separates single from double clicks. The host schedules
// Resolve after the click delay, which keeps the detector free of timers.
package slider
