package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/slider"
)

type dragKind int

const (
	dragWindow dragKind = iota
	dragZoom
	dragZoomCursor
)

// dragState is a mouse button held down on a row.
type dragState struct {
	kind   dragKind
	slider *slider.Slider
	px     float64 // pixel of the press
	lastX  int
	moved  bool
}

// hoverState remembers the slider showing a ghost cursor.
type hoverState struct {
	slider *slider.Slider
}

// pixelAt returns the pixel at the centre of terminal column x. Content
// starts after the left box border.
func pixelAt(x int) float64 {
	return float64(x-1) + 0.5
}

// handleMouse routes mouse events to the row under the pointer.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.layout()

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.drag != nil {
			m.dragTo(msg.X)
			return nil
		}
		m.hoverAt(l, msg)
	case tea.MouseActionRelease:
		return m.release()
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.wheel(l, msg, -WheelPixels)
		case tea.MouseButtonWheelDown:
			return m.wheel(l, msg, WheelPixels)
		case tea.MouseButtonLeft:
			return m.press(l, msg)
		}
	}
	return nil
}

func (m *Model) press(l screen, msg tea.MouseMsg) tea.Cmd {
	px := pixelAt(msg.X)
	p := m.viewer.Panel()

	if s, _, ok := l.sliderAt(msg.Y); ok {
		m.setFocus(FocusSliders)
		if s.Active() && s.InWindow(px) {
			m.drag = &dragState{kind: dragWindow, slider: s, px: px, lastX: msg.X}
			return nil
		}
		if err := p.ClickRegion(s, px); err != nil {
			return m.setErrorMessage(err.Error())
		}
		return nil
	}

	if line, ok := l.zoomLineAt(msg.Y); ok {
		m.setFocus(FocusZoom)
		if line == ZoomRowLines-1 {
			m.viewer.Zoom().DragCursor(px)
			m.drag = &dragState{kind: dragZoomCursor, px: px, lastX: msg.X}
			return nil
		}
		m.drag = &dragState{kind: dragZoom, px: px, lastX: msg.X}
		return nil
	}

	if line, ok := l.annotationLineAt(msg.Y); ok {
		m.setFocus(FocusAnnotations)
		v := m.viewer.Annotations().View(l.annotationLines)
		if v.HasPrev {
			line--
		}
		if line >= 0 && line < len(v.Items) {
			m.jumpTo(v.Items[line])
		}
	}
	return nil
}

func (m *Model) dragTo(x int) {
	d := m.drag
	dx := x - d.lastX
	d.lastX = x

	switch d.kind {
	case dragWindow:
		if dx != 0 {
			m.viewer.Panel().DragWindow(float64(dx))
			d.moved = true
		}
	case dragZoom:
		if dx != 0 {
			m.viewer.Zoom().Drag(float64(dx))
			d.moved = true
		}
	case dragZoomCursor:
		m.viewer.Zoom().DragCursor(pixelAt(x))
	}
}

// release ends a drag. A press that did not move is a click, resolved as a
// single click once the double click delay has passed.
func (m *Model) release() tea.Cmd {
	d := m.drag
	m.drag = nil
	if d == nil || d.moved {
		return nil
	}

	p := m.viewer.Panel()
	var seq int
	var pending bool
	switch d.kind {
	case dragWindow:
		seq, pending = p.PressWindow(d.slider, d.px, m.now())
	case dragZoom:
		seq, pending = m.viewer.Zoom().Press(p.Clicks(), d.px, m.now())
	}
	if !pending {
		return nil
	}
	return tea.Tick(p.Clicks().Delay(), func(time.Time) tea.Msg {
		return clickResolveMsg{seq: seq}
	})
}

func (m *Model) wheel(l screen, msg tea.MouseMsg, dy float64) tea.Cmd {
	if s, _, ok := l.sliderAt(msg.Y); ok {
		m.viewer.Panel().Wheel(s, dy, msg.Ctrl)
		return nil
	}
	if _, ok := l.zoomLineAt(msg.Y); ok {
		m.viewer.Zoom().Wheel(dy, msg.Ctrl)
		return nil
	}
	if _, ok := l.annotationLineAt(msg.Y); ok {
		e := m.viewer.RoiExtents()
		d := e.Width / 2
		if dy < 0 {
			d = -d
		}
		m.viewer.Panel().SetRoiFromZoom(e.Position+d, e.CursorPosition+d)
	}
	return nil
}

// hoverAt shows a ghost cursor on the slider under the pointer.
func (m *Model) hoverAt(l screen, msg tea.MouseMsg) {
	s, _, ok := l.sliderAt(msg.Y)
	if m.hover.slider != nil && m.hover.slider != s {
		m.hover.slider.ClearHover()
		m.hover.slider = nil
	}
	if !ok {
		return
	}
	s.Hover(pixelAt(msg.X))
	m.hover.slider = s
}
