package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/annotation"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
)

// formatNumber prints a position without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// jumpTo centres the window and the cursor on a. Annotation positions are
// in the coordinates of the active row.
func (m *Model) jumpTo(a annotation.Annotation) {
	e := m.viewer.RoiExtents()
	mid := (a.Start + a.End) / 2
	m.viewer.Panel().SetRoiFromZoom(math.Round(mid-e.Width/2), mid)
	m.annotationIndex = 0
}

// submitDialog applies the open dialog. Invalid input keeps the dialog open
// with an error.
func (m *Model) submitDialog() tea.Cmd {
	values := m.dialog.Values()
	branch, pos, inZoom := m.dialog.Target()

	switch m.dialog.Kind() {
	case DialogRoi:
		p, width, cursor, err := parseRoiValues(values)
		if err != nil {
			m.dialog.SetError(err.Error())
			return nil
		}
		// In overlap mode the dialog shows shared coordinates, which are
		// those of branch 0.
		if m.viewer.DisplayMode() == events.ModeOverlap {
			branch = gut.BranchMain
		}
		if err := m.viewer.SetRoi(p, branch, &width, cursor); err != nil {
			m.dialog.SetError(err.Error())
			return nil
		}
		m.closeDialog()
		return nil

	case DialogMarker:
		var mk gut.Marker
		var err error
		switch {
		case inZoom:
			mk, err = m.viewer.AddMarkerInZoom(pos, values[0])
		case m.viewer.DisplayMode() == events.ModeOverlap:
			mk, err = m.viewer.AddMarker(pos, values[0], nil)
		default:
			mk, err = m.viewer.AddMarker(pos, values[0], &branch)
		}
		if err != nil {
			m.dialog.SetError(err.Error())
			return nil
		}
		m.closeDialog()
		return m.setStatusMessage(fmt.Sprintf("Marker %d added at %s", mk.ID, formatNumber(mk.Position)))

	case DialogSaveSet:
		name := values[0]
		if name == "" {
			m.dialog.SetError("Set name: " + errEmptyField.Error())
			return nil
		}
		m.closeDialog()
		return m.saveMarkerSet(name)
	}
	return nil
}

func (m *Model) closeDialog() {
	m.dialog.Reset()
	m.mode = ModeNormal
}

// copyRoi copies the current window to the clipboard
func (m *Model) copyRoi() tea.Cmd {
	e := m.viewer.RoiExtents()
	text := fmt.Sprintf("%s %s-%s cursor %s", m.viewer.CurrentBranch(),
		formatNumber(e.Position), formatNumber(e.End()), formatNumber(e.CursorPosition))
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg("Copied " + text)
	}
}

// copyLink copies the ontology link of a to the clipboard
func (m *Model) copyLink(a annotation.Annotation) tea.Cmd {
	link := a.Link()
	if link == "" {
		return m.setErrorMessage(fmt.Sprintf("%s has no ontology term", a.Title))
	}
	return func() tea.Msg {
		if err := clipboard.WriteAll(link); err != nil {
			return errorMsg(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		}
		return statusMsg("Copied " + link)
	}
}

// saveMarkerSet stores the current markers under name
func (m *Model) saveMarkerSet(name string) tea.Cmd {
	store := m.markers
	modelID := m.viewer.Model().ID
	markers := m.viewer.Markers()
	return func() tea.Msg {
		if err := store.Save(name, modelID, markers); err != nil {
			return errorMsg(fmt.Sprintf("Failed to save markers: %v", err))
		}
		return statusMsg(fmt.Sprintf("Saved %d markers as %q", len(markers), name))
	}
}

// listMarkerSets loads the saved sets of the current model for the picker
func (m *Model) listMarkerSets() tea.Cmd {
	if m.markers == nil {
		return m.setErrorMessage("Marker storage is disabled")
	}
	store := m.markers
	modelID := m.viewer.Model().ID
	return func() tea.Msg {
		sets, err := store.List(modelID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to list marker sets: %v", err))
		}
		return markerSetsLoadedMsg{sets: sets}
	}
}

func (m *Model) loadMarkerSet(name string) tea.Cmd {
	store := m.markers
	return func() tea.Msg {
		set, err := store.Load(name)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load markers: %v", err))
		}
		return markerSetLoadedMsg{set: set}
	}
}

func (m *Model) deleteMarkerSet(name string) tea.Cmd {
	store := m.markers
	return func() tea.Msg {
		if err := store.Delete(name); err != nil {
			return errorMsg(fmt.Sprintf("Failed to delete marker set: %v", err))
		}
		return markerSetDeletedMsg{name: name}
	}
}
