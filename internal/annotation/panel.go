package annotation

import (
	"fmt"

	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
)

// Panel keeps the annotation list of the model shown in the zoom view and
// the region of interest it is filtered by.
type Panel struct {
	model    *gut.Gut
	list     []Annotation
	roi      events.RoiChange
	hasRoi   bool
	absolute bool
}

// NewPanel builds the list for model.
func NewPanel(model *gut.Gut) *Panel {
	p := &Panel{absolute: true}
	p.SetModel(model)
	return p
}

// SetModel rebuilds the list for another model.
func (p *Panel) SetModel(model *gut.Gut) {
	p.model = model
	p.list = Build(model)
}

// UpdateRoi filters the list by a new region of interest.
func (p *Panel) UpdateRoi(roi events.RoiChange) {
	p.roi = roi
	p.hasRoi = true
}

func (p *Panel) Model() *gut.Gut         { return p.model }
func (p *Panel) All() []Annotation       { return p.list }
func (p *Panel) Roi() events.RoiChange   { return p.roi }
func (p *Panel) AbsolutePositions() bool { return p.absolute }

// SetAbsolutePositions switches between absolute and relative positions.
func (p *Panel) SetAbsolutePositions(abs bool) {
	p.absolute = abs
}

// Current returns the annotations starting inside the region of interest.
func (p *Panel) Current() []Annotation {
	if !p.hasRoi {
		return nil
	}
	return InRoi(p.list, p.roi.Position, p.roi.Position+p.roi.Width)
}

// View returns what fits in maxLines.
func (p *Panel) View(maxLines int) View {
	if !p.hasRoi {
		return View{HighlightEnd: -1}
	}
	return Window(p.list, p.roi.Position, p.roi.Position+p.roi.Width, maxLines)
}

// Search ranks the whole list against query.
func (p *Panel) Search(query string) []Annotation {
	return Search(p.list, query)
}

// PositionText formats a's position for display: in full-model coordinates
// when absolute positions are on, otherwise as a region-relative percentage.
func (p *Panel) PositionText(a Annotation) string {
	if p.absolute {
		return a.PositionText(p.roi.Offset)
	}
	if name, pct, ok := p.model.RelativePosition(a.Start, a.Branch); ok {
		return fmt.Sprintf("%s %.0f%%", name, pct)
	}
	return a.PositionText(p.roi.Offset)
}
