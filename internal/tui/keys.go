package tui

import (
	"math"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/keybinds"
)

// keyContext returns the keybinds context of the current mode and focus.
func (m *Model) keyContext() keybinds.Context {
	switch m.mode {
	case ModeSearch:
		return keybinds.ContextSearch
	case ModeDialog:
		return keybinds.ContextDialog
	case ModeMarkerSets:
		return keybinds.ContextMarkerSets
	case ModeHelp:
		return keybinds.ContextHelp
	case ModeConfirm:
		return keybinds.ContextConfirm
	}
	return m.focusContext()
}

// focusContext returns the keybinds context of the focused panel.
func (m *Model) focusContext() keybinds.Context {
	switch m.focus {
	case FocusZoom:
		return keybinds.ContextZoom
	case FocusAnnotations:
		return keybinds.ContextAnnotations
	}
	return keybinds.ContextNormal
}

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	ctx := m.keyContext()

	var action keybinds.Action
	var ok bool
	switch m.mode {
	case ModeSearch, ModeDialog:
		action, ok = m.keybinds.Match(ctx, msg.String())
	default:
		var partial bool
		action, ok, partial = m.keybinds.MatchMultiKey(ctx, msg.String())
		if partial {
			return nil
		}
	}

	if ok && action == keybinds.ActionQuitForce {
		return tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKeys(msg, action, ok)
	case ModeDialog:
		return m.handleDialogKeys(msg, action, ok)
	case ModeMarkerSets:
		return m.handleMarkerSetKeys(action)
	case ModeHelp:
		return m.handleHelpKeys(action)
	case ModeConfirm:
		return m.handleConfirmKeys(action)
	}
	if !ok {
		return nil
	}
	return m.handleMainAction(action)
}

// handleMainAction runs an action of the slider, zoom or annotation panel.
func (m *Model) handleMainAction(action keybinds.Action) tea.Cmd {
	if cmd, handled := m.handleViewerAction(action); handled {
		return cmd
	}
	switch m.focus {
	case FocusZoom:
		m.handleZoomAction(action)
	case FocusAnnotations:
		return m.handleAnnotationAction(action)
	default:
		m.handleSliderAction(action)
	}
	return nil
}

// handleViewerAction runs the actions shared by every main view panel.
func (m *Model) handleViewerAction(action keybinds.Action) (tea.Cmd, bool) {
	v := m.viewer
	p := v.Panel()
	var err error

	switch action {
	case keybinds.ActionQuit:
		return tea.Quit, true
	case keybinds.ActionSwitchFocus:
		m.cycleFocus(1)
	case keybinds.ActionSwitchFocusBack:
		m.cycleFocus(-1)
	case keybinds.ActionSwitchBranch:
		next := gut.BranchExt
		if p.CurrentBranch() == gut.BranchExt {
			next = gut.BranchMain
		}
		err = p.SelectBranch(next)
	case keybinds.ActionCycleMode:
		err = v.CycleDisplayMode()
	case keybinds.ActionToggleOverlap:
		err = p.ToggleOverlap()
	case keybinds.ActionToggleExtension:
		err = p.ToggleExtension()
	case keybinds.ActionToggleDirection:
		v.ToggleDirection()
	case keybinds.ActionToggleZoom:
		v.ToggleFullView()
	case keybinds.ActionToggleLayers:
		v.ToggleLayers()
	case keybinds.ActionToggleAbsolute:
		v.SetAbsolutePositions(!v.AbsolutePositions())
	case keybinds.ActionCycleTheme:
		return m.setStatusMessage("Theme: " + v.CycleTheme()), true
	case keybinds.ActionOpenRoiDialog:
		p.RequestRoiDialog()
	case keybinds.ActionClearMarkers:
		m.askConfirm(confirmClearMarkers, "Remove every marker?", "")
	case keybinds.ActionSaveMarkers:
		return m.openSaveSetDialog(), true
	case keybinds.ActionLoadMarkers:
		return m.listMarkerSets(), true
	case keybinds.ActionCopyRoi:
		return m.copyRoi(), true
	case keybinds.ActionOpenSearch:
		m.mode = ModeSearch
		return m.search.Start(), true
	case keybinds.ActionOpenHelp:
		m.updateHelpView()
		m.helpView.GotoTop()
		m.mode = ModeHelp
	default:
		return nil, false
	}

	if err != nil {
		return m.setErrorMessage(err.Error()), true
	}
	return nil, true
}

// cycleFocus moves the focus through the visible panels.
func (m *Model) cycleFocus(delta int) {
	panels := []Focus{FocusSliders}
	l := m.layout()
	if l.zoomTop >= 0 {
		panels = append(panels, FocusZoom)
	}
	if l.annotationsTop >= 0 {
		panels = append(panels, FocusAnnotations)
	}
	i := 0
	for j, f := range panels {
		if f == m.focus {
			i = j
		}
	}
	m.setFocus(panels[(i+delta+len(panels))%len(panels)])
	m.annotationIndex = 0
}

// setFocus moves the focus to f and drops a key sequence started in the
// panel that loses it.
func (m *Model) setFocus(f Focus) {
	if f != m.focus {
		m.keybinds.ClearMultiKeyState(m.focusContext())
	}
	m.focus = f
}

// handleSliderAction moves the window of the current slider.
func (m *Model) handleSliderAction(action keybinds.Action) {
	v := m.viewer
	p := v.Panel()
	s := p.Active()

	switch action {
	case keybinds.ActionPanLeft:
		p.DragWindow(-PanPixels)
	case keybinds.ActionPanRight:
		p.DragWindow(PanPixels)
	case keybinds.ActionPanLeftFast:
		p.DragWindow(-s.Transform().ScaleLength(s.Model().Length() / 10))
	case keybinds.ActionPanRightFast:
		p.DragWindow(s.Transform().ScaleLength(s.Model().Length() / 10))
	case keybinds.ActionGrowRoi:
		p.ZoomBy(-WheelPixels)
	case keybinds.ActionShrinkRoi:
		p.ZoomBy(WheelPixels)
	case keybinds.ActionCursorLeft, keybinds.ActionCursorRight:
		e := v.RoiExtents()
		step := math.Max(1, math.Round(e.Width/CursorStepRatio))
		if action == keybinds.ActionCursorLeft {
			step = -step
		}
		if !v.LeftToRight() {
			step = -step
		}
		v.SetCursorPosition(e.CursorPosition + step)
	case keybinds.ActionRoiStart:
		start := s.Model().StartPos()
		p.SetRoiFromZoom(start, start)
	case keybinds.ActionRoiEnd:
		e := v.RoiExtents()
		pos := s.Model().EndPos() - e.Width
		p.SetRoiFromZoom(pos, pos+e.Width/2)
	case keybinds.ActionAddMarker:
		e := v.RoiExtents()
		m.openMarkerDialog(e.CursorPosition, v.CurrentBranch(), false)
	}
}

// handleZoomAction pans the zoom view and moves its cursor.
func (m *Model) handleZoomAction(action keybinds.Action) {
	z := m.viewer.Zoom()

	switch action {
	case keybinds.ActionPanLeft:
		z.Shift(PanPixels)
	case keybinds.ActionPanRight:
		z.Shift(-PanPixels)
	case keybinds.ActionPanLeftFast:
		z.Shift(PanFastPixels)
	case keybinds.ActionPanRightFast:
		z.Shift(-PanFastPixels)
	case keybinds.ActionGrowRoi:
		z.Wheel(-WheelPixels, true)
	case keybinds.ActionShrinkRoi:
		z.Wheel(WheelPixels, true)
	case keybinds.ActionCursorLeft:
		z.DragCursor(z.CursorPixel() - 1)
	case keybinds.ActionCursorRight:
		z.DragCursor(z.CursorPixel() + 1)
	case keybinds.ActionRoiStart, keybinds.ActionRoiEnd:
		m.handleSliderAction(action)
	case keybinds.ActionAddMarker:
		z.RequestMarker(z.CursorPixel())
	}
}

// handleAnnotationAction moves the list selection and jumps to annotations.
func (m *Model) handleAnnotationAction(action keybinds.Action) tea.Cmd {
	l := m.layout()
	view := m.viewer.Annotations().View(l.annotationLines)
	all := m.viewer.Annotations().All()

	switch action {
	case keybinds.ActionNavigateUp:
		m.annotationIndex = max(0, m.annotationIndex-1)
	case keybinds.ActionNavigateDown:
		m.annotationIndex = max(0, min(len(view.Items)-1, m.annotationIndex+1))
	case keybinds.ActionPageUp, keybinds.ActionPageDown:
		e := m.viewer.RoiExtents()
		d := e.Width
		if action == keybinds.ActionPageUp {
			d = -d
		}
		m.viewer.Panel().SetRoiFromZoom(e.Position+d, e.CursorPosition+d)
	case keybinds.ActionGoToTop:
		if len(all) > 0 {
			m.jumpTo(all[0])
		}
	case keybinds.ActionGoToBottom:
		if len(all) > 0 {
			m.jumpTo(all[len(all)-1])
		}
	case keybinds.ActionJumpTo:
		if a, ok := m.selectedAnnotation(); ok {
			m.jumpTo(a)
		}
	case keybinds.ActionCopyLink:
		a, ok := m.selectedAnnotation()
		if !ok {
			return nil
		}
		return m.copyLink(a)
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg, action keybinds.Action, ok bool) tea.Cmd {
	if ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.search.Reset()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionJumpTo:
			a, found := m.search.Selected()
			m.search.Reset()
			m.mode = ModeNormal
			if found {
				m.jumpTo(a)
			}
			return nil
		case keybinds.ActionNavigateUp:
			m.search.Move(-1)
			return nil
		case keybinds.ActionNavigateDown:
			m.search.Move(1)
			return nil
		case keybinds.ActionTextPaste:
			if text, err := clipboard.ReadAll(); err == nil {
				m.search.SetQuery(m.search.Query()+text, m.viewer.Annotations().Search)
			}
			return nil
		}
	}
	return m.search.Update(msg, m.viewer.Annotations().Search)
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg, action keybinds.Action, ok bool) tea.Cmd {
	if ok {
		switch action {
		case keybinds.ActionTextCancel:
			m.dialog.Reset()
			m.mode = ModeNormal
			return nil
		case keybinds.ActionTextSubmit:
			return m.submitDialog()
		case keybinds.ActionNextField:
			m.dialog.NextField()
			return nil
		case keybinds.ActionPrevField:
			m.dialog.PrevField()
			return nil
		case keybinds.ActionTextPaste:
			text, err := clipboard.ReadAll()
			if err != nil {
				m.dialog.SetError("Failed to read clipboard: " + err.Error())
				return nil
			}
			m.dialog.Paste(text)
			return nil
		}
	}
	return m.dialog.Update(msg)
}

func (m *Model) handleMarkerSetKeys(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.sets.Move(-1)
	case keybinds.ActionNavigateDown:
		m.sets.Move(1)
	case keybinds.ActionLoadMarkers:
		if s, ok := m.sets.Selected(); ok {
			return m.loadMarkerSet(s.Name)
		}
	case keybinds.ActionDeleteMarkers:
		if s, ok := m.sets.Selected(); ok {
			m.askConfirm(confirmDeleteSet, "Delete marker set \""+s.Name+"\"?", s.Name)
		}
	}
	return nil
}

func (m *Model) handleHelpKeys(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionCloseModal:
		m.mode = ModeNormal
	case keybinds.ActionNavigateUp:
		m.helpView.SetYOffset(m.helpView.YOffset - 1)
	case keybinds.ActionNavigateDown:
		m.helpView.SetYOffset(m.helpView.YOffset + 1)
	case keybinds.ActionPageUp:
		m.helpView.SetYOffset(m.helpView.YOffset - m.helpView.Height)
	case keybinds.ActionPageDown:
		m.helpView.SetYOffset(m.helpView.YOffset + m.helpView.Height)
	}
	return nil
}

func (m *Model) askConfirm(action confirmAction, message, name string) {
	m.confirm.action = action
	m.confirm.message = message
	m.confirm.name = name
	m.confirm.back = m.mode
	m.mode = ModeConfirm
}

func (m *Model) handleConfirmKeys(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionConfirm:
		m.mode = m.confirm.back
		switch m.confirm.action {
		case confirmClearMarkers:
			m.viewer.ClearMarkers()
			return m.setStatusMessage("Markers cleared")
		case confirmDeleteSet:
			return m.deleteMarkerSet(m.confirm.name)
		}
	case keybinds.ActionCancel:
		m.mode = m.confirm.back
	}
	return nil
}

// openRoiDialog shows the window of the active row for editing.
func (m *Model) openRoiDialog(e events.RoiDialog) {
	m.dialog.Open(DialogRoi, "Region of interest ("+e.Branch.String()+")",
		[]string{"Position", "Width", "Cursor"},
		[]string{formatNumber(e.Position), formatNumber(e.Width), formatNumber(e.CursorPosition)},
	)
	m.dialog.SetTarget(e.Branch, e.Position, false)
	m.mode = ModeDialog
}

// openMarkerDialog asks for the description of a marker at pos.
func (m *Model) openMarkerDialog(pos float64, branch gut.Branch, inZoom bool) {
	m.dialog.Open(DialogMarker, "New marker at "+formatNumber(pos)+" ("+branch.String()+")",
		[]string{"Description"}, nil)
	m.dialog.SetTarget(branch, pos, inZoom)
	m.mode = ModeDialog
}

func (m *Model) openSaveSetDialog() tea.Cmd {
	if m.markers == nil {
		return m.setErrorMessage("Marker storage is disabled")
	}
	m.dialog.Open(DialogSaveSet, "Save markers", []string{"Set name"}, []string{m.viewer.Model().ID})
	m.mode = ModeDialog
	return nil
}
