package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/gutview/internal/annotation"
	"github.com/studiowebux/gutview/internal/export"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/keybinds"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/theme"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// screen is the vertical layout of the main view. Every y is a terminal
// line; content starts one column in, after the box border.
type screen struct {
	sliders         []*slider.Slider
	sliderTop       int
	zoomTop         int // -1 when hidden
	annotationsTop  int // -1 when hidden
	annotationLines int
}

func (m *Model) layout() screen {
	l := screen{
		sliders:        m.viewer.Panel().Visible(),
		zoomTop:        -1,
		annotationsTop: -1,
	}
	y := TitleLines
	l.sliderTop = y + 1
	y += BorderHeight + len(l.sliders)*SliderRowLines
	if !m.viewer.FullView() {
		return l
	}
	l.zoomTop = y + 1
	y += BorderHeight + ZoomRowLines
	if rest := m.height - StatusLines - y - BorderHeight; rest >= MinAnnotationLines {
		l.annotationsTop = y + 1
		l.annotationLines = rest
	}
	return l
}

// sliderAt returns the slider drawn on terminal line y and the line within
// its row.
func (l screen) sliderAt(y int) (*slider.Slider, int, bool) {
	i := y - l.sliderTop
	if i < 0 || i >= len(l.sliders)*SliderRowLines {
		return nil, 0, false
	}
	return l.sliders[i/SliderRowLines], i % SliderRowLines, true
}

// zoomLineAt returns the zoom row line drawn on terminal line y.
func (l screen) zoomLineAt(y int) (int, bool) {
	if l.zoomTop < 0 || y < l.zoomTop || y >= l.zoomTop+ZoomRowLines {
		return 0, false
	}
	return y - l.zoomTop, true
}

// annotationLineAt returns the annotation list line drawn on terminal line y.
func (l screen) annotationLineAt(y int) (int, bool) {
	if l.annotationsTop < 0 || y < l.annotationsTop || y >= l.annotationsTop+l.annotationLines {
		return 0, false
	}
	return y - l.annotationsTop, true
}

func (m *Model) box(content string, focused bool) string {
	p := m.viewer.Palette()
	border := p.Subtle
	if focused {
		border = p.RoiBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(m.contentWidth()).
		Render(content)
}

// renderMain renders the slider, zoom and annotation panels
func (m *Model) renderMain() string {
	l := m.layout()
	p := m.viewer.Palette()
	width := m.contentWidth()

	var rows []string
	for _, s := range l.sliders {
		rows = append(rows, m.renderSliderRow(s, p, width)...)
	}
	parts := []string{
		m.renderTitle(p),
		m.box(strings.Join(rows, "\n"), m.focus == FocusSliders),
	}
	if l.zoomTop >= 0 {
		parts = append(parts, m.box(strings.Join(m.renderZoomRow(p, width), "\n"), m.focus == FocusZoom))
	}
	if l.annotationsTop >= 0 {
		list := m.renderAnnotations(p, width, l.annotationLines)
		parts = append(parts, m.box(strings.Join(list, "\n"), m.focus == FocusAnnotations))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderTitle(p theme.Palette) string {
	g := m.viewer.Model()
	name := g.Name
	if name == "" {
		name = g.ID
	}
	direction := "ltr"
	if !m.viewer.LeftToRight() {
		direction = "rtl"
	}
	text := fmt.Sprintf(" gutview · %s │ %s │ %s │ %s", name, m.viewer.DisplayMode(), m.viewer.CurrentBranch(), direction)
	return lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(p.Title)).
		Foreground(lipgloss.Color(p.Text)).
		Width(m.width).
		Render(truncate(text, m.width))
}

func branchLabel(s *slider.Slider) string {
	g := s.Model()
	return fmt.Sprintf("%s %.0f-%.0f", s.Branch(), g.StartPos(), g.EndPos())
}

// renderSliderRow draws the three lines of one branch row.
func (m *Model) renderSliderRow(s *slider.Slider, p theme.Palette, width int) []string {
	t := s.Transform()
	g := s.Model()

	labels := newLine(width)
	labels.text(0, truncate(branchLabel(s), width/3), p.Subtle)
	for _, lm := range g.Landmarks() {
		if lm.IsPseudo() {
			continue
		}
		labels.set(t.PositionToPixel(lm.Position, 0), cell{ch: glyphLandmark, fg: p.Landmark})
	}
	for _, mk := range g.Markers() {
		labels.set(t.PositionToPixel(mk.Position, 0), cell{ch: glyphMarker, fg: p.Marker})
	}

	regions := m.strips.regions(s, p, width)

	window := newLine(width)
	if s.Active() {
		left, right := s.WindowPixels()
		window.fill(left, right, cell{ch: glyphWindow, fg: p.RoiBorder})
		if px, ok := hoverPixel(s); ok {
			window.set(px, cell{ch: glyphHover, fg: p.Subtle})
		}
		window.set(s.CursorPixel(), cell{ch: glyphCursor, fg: p.Cursor})
	} else if px, ok := hoverPixel(s); ok {
		window.set(px, cell{ch: glyphHover, fg: p.Subtle})
	}

	return []string{labels.render(), regions.render(), window.render()}
}

func hoverPixel(s *slider.Slider) (float64, bool) {
	pos, ok := s.HoverPosition()
	if !ok {
		return 0, false
	}
	return s.Transform().PositionToPixel(pos, 0), true
}

// renderZoomRow draws the caption, region and cursor lines of the zoom view.
func (m *Model) renderZoomRow(p theme.Palette, width int) []string {
	z := m.viewer.Zoom()
	t := z.Transform()

	captions := newLine(width)
	startLabel, endLabel := z.Labels()
	if !t.LeftToRight() {
		startLabel, endLabel = endLabel, startLabel
	}
	half := width / 2
	captions.text(0, truncate(startLabel, half-1), p.Subtle)
	endLabel = truncate(endLabel, half-1)
	captions.text(width-runewidth.StringWidth(endLabel), endLabel, p.Subtle)

	regions := newLine(width)
	front := z.Branch()
	for _, c := range z.VisibleRegions() {
		x, w := span(t, c.Start, c.End)
		color := export.RegionColor(p, c.Region)
		ch := glyphRegion
		if front != gut.BranchBoth && c.Region.Branch != gut.BranchBoth && c.Region.Branch != front {
			ch = glyphBack
		}
		regions.fill(x, x+w, cell{ch: ch, fg: color})
		name := c.Region.Name
		if z.LayersVisible() && len(c.Region.Layers) > 0 {
			name += " [" + strings.Join(c.Region.Layers, ", ") + "]"
		}
		if ch == glyphRegion && int(w) > len(name)+2 {
			first, _ := columns(x, x+w, width)
			for i, r := range []rune(name) {
				if col := first + 1 + i; col < width {
					regions[col] = cell{ch: r, fg: p.Text, bg: color}
				}
			}
		}
	}

	marks := newLine(width)
	for _, lm := range z.VisibleLandmarks() {
		if lm.IsPseudo() {
			continue
		}
		x, w := span(t, lm.StartPos, lm.EndPos)
		if w >= 1 {
			marks.fill(x, x+w, cell{ch: '─', fg: p.Landmark})
		}
		px := t.PositionToPixel(lm.Position, 0)
		marks.set(px, cell{ch: glyphLandmark, fg: p.Landmark})
		marks.text(int(px)+1, truncate(lm.DisplayTitle(), width/4), p.Landmark)
	}
	for _, mk := range z.VisibleMarkers() {
		marks.set(t.PositionToPixel(mk.Position, 0), cell{ch: glyphMarker, fg: p.Marker})
	}
	marks.set(z.CursorPixel(), cell{ch: glyphCursor, fg: p.Cursor})

	return []string{captions.render(), regions.render(), marks.render()}
}

// renderAnnotations draws the annotation list window for the current
// region of interest.
func (m *Model) renderAnnotations(p theme.Palette, width, lines int) []string {
	a := m.viewer.Annotations()
	v := a.View(lines)
	inRoi := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.RoiBorder))

	var out []string
	if v.HasPrev {
		out = append(out, styleSubtle.Render("  …"))
	}
	for i, item := range v.Items {
		pos := a.PositionText(item)
		title := item.Title
		if item.Kind == gut.KindLandmark {
			title = string(glyphLandmark) + " " + title
		}
		avail := width - runewidth.StringWidth(pos) - 3
		text := runewidth.FillRight(truncate(title, avail), max(0, avail)) + " " + pos
		text = "  " + text

		switch {
		case m.focus == FocusAnnotations && i == m.annotationIndex:
			out = append(out, styleSelected.Render("▸"+text[1:]))
		case i >= v.HighlightStart && i <= v.HighlightEnd:
			out = append(out, inRoi.Render(text))
		default:
			out = append(out, styleSubtle.Render(text))
		}
	}
	if v.HasNext {
		out = append(out, styleSubtle.Render("  …"))
	}
	for len(out) < lines {
		out = append(out, "")
	}
	return out
}

// selectedAnnotation returns the annotation under the list selection.
func (m *Model) selectedAnnotation() (annotation.Annotation, bool) {
	l := m.layout()
	if l.annotationsTop < 0 {
		return annotation.Annotation{}, false
	}
	v := m.viewer.Annotations().View(l.annotationLines)
	if m.annotationIndex < 0 || m.annotationIndex >= len(v.Items) {
		return annotation.Annotation{}, false
	}
	return v.Items[m.annotationIndex], true
}

func (m *Model) renderStatusBar() string {
	e := m.viewer.RoiExtents()
	roi := fmt.Sprintf("%s %.0f-%.0f ┃%.0f", m.viewer.CurrentBranch(), e.Position, e.End(), e.CursorPosition)
	help := m.keybinds.GetBindingString(m.focusContext(), keybinds.ActionOpenHelp)
	left := styleSubtle.Render(fmt.Sprintf(" %s │ %s │ %s help", roi, m.focus, help))

	var msg string
	switch {
	case m.errorMsg != "":
		msg = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		msg = styleSuccess.Render(m.statusMsg)
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(msg)-1)
	return left + strings.Repeat(" ", gap) + msg
}

// modal renders content in a centered bordered box.
func (m *Model) modal(title, content, footer string) string {
	body := styleTitle.Render(title) + "\n\n" + content
	if footer != "" {
		body += "\n\n" + styleSubtle.Render(footer)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(1, 2).
		Width(max(20, m.width-ModalWidthMargin*2)).
		Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.search.InputView())
	b.WriteString("\n\n")

	results := m.search.Results()
	limit := max(1, m.height-ModalOverhead-6)
	if len(results) == 0 && m.search.Query() != "" {
		b.WriteString(styleSubtle.Render("no match"))
	}
	for i, a := range results {
		if i >= limit {
			b.WriteString(styleSubtle.Render(fmt.Sprintf("… %d more", len(results)-limit)))
			break
		}
		text := fmt.Sprintf("%-30s %s %s", truncate(a.Title, 30), a.Branch, a.PositionText(0))
		if i == m.search.Index() {
			b.WriteString(styleSelected.Render("▸ " + text))
		} else {
			b.WriteString("  " + text)
		}
		b.WriteString("\n")
	}
	return m.modal("Search annotations", b.String(), "enter: jump  esc: cancel")
}

func (m *Model) renderDialog() string {
	var b strings.Builder
	labels := m.dialog.Labels()
	fields := m.dialog.FieldViews()
	width := 0
	for _, l := range labels {
		width = max(width, runewidth.StringWidth(l))
	}
	for i, l := range labels {
		label := runewidth.FillRight(l, width)
		if i == m.dialog.Focused() {
			label = styleTitle.Render(label)
		}
		b.WriteString(label + "  " + fields[i] + "\n")
	}
	if err := m.dialog.Error(); err != "" {
		b.WriteString("\n" + styleError.Render(err))
	}
	return m.modal(m.dialog.Title(), b.String(), "enter: apply  tab: next field  esc: cancel")
}

func (m *Model) renderMarkerSets() string {
	sets := m.sets.Sets()
	if len(sets) == 0 {
		return m.modal("Marker sets", styleSubtle.Render("No saved marker sets for this model"), "esc: close")
	}
	var b strings.Builder
	for i, s := range sets {
		text := fmt.Sprintf("%-24s %3d markers  %s", truncate(s.Name, 24), s.Count, s.UpdatedAt.Format("2006-01-02 15:04"))
		if i == m.sets.Index() {
			b.WriteString(styleSelected.Render("▸ " + text))
		} else {
			b.WriteString("  " + text)
		}
		b.WriteString("\n")
	}
	return m.modal("Marker sets", b.String(), "enter: load  D: delete  esc: close")
}

func (m *Model) renderConfirm() string {
	return m.modal("Confirm", m.confirm.message, "y: yes  n: no")
}

func (m *Model) renderHelp() string {
	return m.modal("Key bindings", m.helpView.View(), "↑/↓ scroll  esc: close")
}

// updateHelpView fills the help viewport with the bindings of every
// context.
func (m *Model) updateHelpView() {
	var b strings.Builder
	for _, ctx := range keybinds.AllContexts {
		bindings := m.keybinds.ListBindings(ctx)
		if len(bindings) == 0 || ctx == keybinds.ContextGlobal {
			continue
		}
		b.WriteString(styleTitle.Render(string(ctx)) + "\n")
		for _, bind := range bindings {
			fmt.Fprintf(&b, "  %-12s %s\n", bind.Key, keybinds.GetActionInfo(bind.Action).Description)
		}
		b.WriteString("\n")
	}
	m.helpView.SetContent(b.String())
}
