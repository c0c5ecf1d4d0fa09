package slider

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
)

// ErrBranchUnavailable is returned when an operation needs a branch the
// model does not have.
var ErrBranchUnavailable = errors.New("branch not available in this model")

// overlapEntry remembers the branch ROI that was converted when overlap mode
// was entered, so leaving without any change restores it exactly.
type overlapEntry struct {
	branch  gut.Branch
	local   roi.Extents
	unified roi.Extents
}

// Panel coordinates the sliders of both branches. It owns one slider per
// branch plus one over the full model for overlap mode, tracks the current
// branch and publishes every region of interest change on the bus.
type Panel struct {
	bus    *bus.Bus
	logger *slog.Logger
	cfg    Config

	model       *gut.Gut
	width       float64
	leftToRight bool

	mode     events.DisplayMode
	prevMode events.DisplayMode
	sliders  [2]*Slider
	overlap  *Slider
	current  gut.Branch
	focus    gut.Branch
	entry    *overlapEntry

	clicks *ClickDetector
}

// NewPanel creates the sliders for model. Branch 0 must have regions.
func NewPanel(b *bus.Bus, model *gut.Gut, width float64, leftToRight bool, cfg Config, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Panel{
		bus:         b,
		logger:      logger,
		cfg:         cfg,
		width:       width,
		leftToRight: leftToRight,
		mode:        events.ModeFull,
		prevMode:    events.ModeFull,
		clicks:      NewClickDetector(cfg.ClickDelay),
	}
	p.build(model)
	return p
}

func (p *Panel) build(model *gut.Gut) {
	p.model = model
	p.current = gut.BranchMain
	p.focus = gut.BranchMain
	p.entry = nil

	main := model.SubModel(gut.BranchMain, nil)
	if main == nil {
		panic("slider: model has no regions on the main branch")
	}
	p.sliders[gut.BranchMain] = NewSlider(gut.BranchMain, main, p.width, p.leftToRight, p.cfg, p.onSliderChange)

	origin := 0.0
	if ext := model.SubModel(gut.BranchExt, &origin); ext != nil {
		p.sliders[gut.BranchExt] = NewSlider(gut.BranchExt, ext, p.width, p.leftToRight, p.cfg, p.onSliderChange)
		p.overlap = NewSlider(gut.BranchBoth, model, p.width, p.leftToRight, p.cfg, p.onSliderChange)
	} else {
		p.sliders[gut.BranchExt] = nil
		p.overlap = nil
	}

	if !p.available(p.mode) {
		p.mode = events.ModeFull
	}
	if p.mode == events.ModeOverlap {
		p.enterOverlap()
	} else if p.mode == events.ModeExt {
		p.current = gut.BranchExt
	}
	p.activate()
}

// SetModel replaces the model, rebuilding every slider, and publishes the
// new state.
func (p *Panel) SetModel(model *gut.Gut) {
	p.build(model)
	p.Refresh()
}

// Refresh publishes the current branch and region of interest.
func (p *Panel) Refresh() {
	p.publishBranch()
	p.publishRoi(p.Active())
}

func (p *Panel) Model() *gut.Gut                { return p.model }
func (p *Panel) Mode() events.DisplayMode       { return p.mode }
func (p *Panel) Clicks() *ClickDetector         { return p.clicks }
func (p *Panel) HasBranch(b gut.Branch) bool    { return b >= 0 && int(b) < len(p.sliders) && p.sliders[b] != nil }
func (p *Panel) Slider(b gut.Branch) *Slider    { return p.sliders[b] }
func (p *Panel) OverlapSlider() *Slider         { return p.overlap }
func (p *Panel) LeftToRight() bool              { return p.leftToRight }

// CurrentBranch returns the current branch. In overlap mode this is the
// branch shown in front.
func (p *Panel) CurrentBranch() gut.Branch {
	if p.mode == events.ModeOverlap {
		return p.focus
	}
	return p.current
}

// Active returns the slider whose window is the authoritative region of
// interest.
func (p *Panel) Active() *Slider {
	if p.mode == events.ModeOverlap {
		return p.overlap
	}
	return p.sliders[p.current]
}

// Visible returns the sliders shown in the current mode, top to bottom.
func (p *Panel) Visible() []*Slider {
	switch p.mode {
	case events.ModeMain:
		return []*Slider{p.sliders[gut.BranchMain]}
	case events.ModeExt:
		return []*Slider{p.sliders[gut.BranchExt]}
	case events.ModeOverlap:
		return []*Slider{p.overlap}
	}
	if p.sliders[gut.BranchExt] == nil {
		return []*Slider{p.sliders[gut.BranchMain]}
	}
	return []*Slider{p.sliders[gut.BranchMain], p.sliders[gut.BranchExt]}
}

// RoiExtents returns the authoritative window and cursor.
func (p *Panel) RoiExtents() roi.Extents {
	return p.Active().Extents()
}

// Offset returns the value to add to positions of the active slider to get
// full-model positions.
func (p *Panel) Offset() float64 {
	return -p.Active().Model().Offset()
}

func (p *Panel) shift(b gut.Branch) float64 {
	return -p.sliders[b].Model().Offset()
}

// Shares returns how much of e, given in full-model coordinates, lies on
// each branch.
func (p *Panel) Shares(e roi.Extents) (main, ext float64) {
	end := e.End()
	mainMax := p.model.BranchEnd(gut.BranchMain)
	main = math.Max(0, math.Min(mainMax, end)-e.Position)

	if !p.model.HasBranch(gut.BranchExt) {
		return main, 0
	}
	extMin := math.Min(end, p.model.BranchStart(gut.BranchExt))
	ext = math.Max(0, end-math.Max(extMin, e.Position))
	return main, ext
}

func (p *Panel) available(mode events.DisplayMode) bool {
	switch mode {
	case events.ModeExt, events.ModeOverlap:
		return p.sliders[gut.BranchExt] != nil
	case events.ModeFull, events.ModeMain:
		return true
	}
	return false
}

// Available reports whether mode can be shown for this model.
func (p *Panel) Available(mode events.DisplayMode) bool {
	return p.available(mode)
}

func (p *Panel) activate() {
	for _, s := range p.sliders {
		if s != nil {
			s.Deactivate()
		}
	}
	if p.overlap != nil {
		p.overlap.Deactivate()
	}
	p.Active().Activate()
}

func (p *Panel) enterOverlap() {
	src := p.sliders[p.current]
	local := src.Extents()
	p.overlap.SetRoi(local.Shift(p.shift(p.current)))

	unified := p.overlap.Extents()
	main, ext := p.Shares(unified)
	switch {
	case main > ext:
		p.focus = gut.BranchMain
	case ext > main:
		p.focus = gut.BranchExt
	default:
		p.focus = p.current
	}
	p.entry = &overlapEntry{branch: p.current, local: local, unified: unified}
}

// leaveOverlap re-bases the unified window into one branch. For the full
// mode the shares pick the branch; main and ext modes take their own branch.
func (p *Panel) leaveOverlap(to events.DisplayMode) {
	unified := p.overlap.Extents()
	target, fixed := p.focus, true
	switch to {
	case events.ModeMain:
		target = gut.BranchMain
	case events.ModeExt:
		target = gut.BranchExt
	default:
		fixed = false
	}

	if e := p.entry; e != nil && e.unified == unified && (!fixed || e.branch == target) {
		p.sliders[e.branch].SetRoi(e.local)
		p.current = e.branch
		p.entry = nil
		return
	}

	if !fixed {
		main, ext := p.Shares(unified)
		switch {
		case main > ext:
			target = gut.BranchMain
		case ext > main:
			target = gut.BranchExt
		}
	}
	p.sliders[target].SetRoi(unified.Shift(-p.shift(target)))
	p.current = target
	p.entry = nil
}

// switchMode changes the mode and re-bases the region of interest without
// publishing it.
func (p *Panel) switchMode(mode events.DisplayMode) error {
	if !p.available(mode) {
		return fmt.Errorf("%w: display mode %s", ErrBranchUnavailable, mode)
	}
	from := p.mode
	if from == mode {
		return nil
	}

	if from == events.ModeOverlap {
		p.leaveOverlap(mode)
	} else {
		p.prevMode = from
	}
	p.mode = mode

	switch mode {
	case events.ModeMain:
		p.current = gut.BranchMain
	case events.ModeExt:
		p.current = gut.BranchExt
	case events.ModeOverlap:
		p.enterOverlap()
	}
	p.activate()

	p.logger.Debug("display mode changed", "from", from, "to", mode, "branch", p.CurrentBranch())
	bus.Publish(p.bus, events.ModeChanged, events.ModeChange{From: from, To: mode})
	p.publishBranch()
	return nil
}

// SetDisplayMode switches the display mode and publishes the region of
// interest once.
func (p *Panel) SetDisplayMode(mode events.DisplayMode) error {
	if mode == p.mode {
		return nil
	}
	if err := p.switchMode(mode); err != nil {
		return err
	}
	p.publishRoi(p.Active())
	return nil
}

// ToggleExtension switches between main and full.
func (p *Panel) ToggleExtension() error {
	if p.mode == events.ModeMain {
		return p.SetDisplayMode(events.ModeFull)
	}
	return p.SetDisplayMode(events.ModeMain)
}

// ToggleOverlap enters overlap mode, or returns to the mode it was entered
// from.
func (p *Panel) ToggleOverlap() error {
	if p.mode == events.ModeOverlap {
		return p.SetDisplayMode(p.prevMode)
	}
	return p.SetDisplayMode(events.ModeOverlap)
}

// CycleDisplayMode moves to the next available mode.
func (p *Panel) CycleDisplayMode() error {
	i := slices.Index(events.DisplayModes, p.mode)
	for n := 1; n <= len(events.DisplayModes); n++ {
		next := events.DisplayModes[(i+n)%len(events.DisplayModes)]
		if p.available(next) {
			return p.SetDisplayMode(next)
		}
	}
	return nil
}

// setCurrent makes b the current branch, showing it first when the mode
// hides it. In overlap mode it only changes which branch is in front.
func (p *Panel) setCurrent(b gut.Branch) error {
	if b != gut.BranchMain && b != gut.BranchExt {
		panic(fmt.Sprintf("slider: invalid branch index %d", int(b)))
	}
	if !p.HasBranch(b) {
		return fmt.Errorf("%w: %s", ErrBranchUnavailable, b)
	}

	if p.mode == events.ModeOverlap {
		if p.focus != b {
			p.focus = b
			p.publishBranch()
		}
		return nil
	}

	if (p.mode == events.ModeMain && b == gut.BranchExt) || (p.mode == events.ModeExt && b == gut.BranchMain) {
		if err := p.switchMode(events.ModeFull); err != nil {
			return err
		}
	}
	if p.current == b {
		return nil
	}

	p.current = b
	p.activate()
	p.logger.Debug("current branch changed", "branch", b)
	p.publishBranch()
	return nil
}

// SelectBranch makes b current and publishes the region of interest.
func (p *Panel) SelectBranch(b gut.Branch) error {
	if err := p.setCurrent(b); err != nil {
		return err
	}
	p.publishRoi(p.Active())
	return nil
}

// UpdateRoi places the window of branch b at pos with an optional width and
// cursor, switching the current branch if needed. In overlap mode a branch 1
// position is converted to the shared coordinates. A non-finite position is
// ignored.
func (p *Panel) UpdateRoi(pos float64, b gut.Branch, width, cursor *float64) error {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		p.logger.Debug("ignored non-finite position", "op", "UpdateRoi")
		return nil
	}
	if b != gut.BranchMain && b != gut.BranchExt {
		panic(fmt.Sprintf("slider: invalid branch index %d", int(b)))
	}
	if !p.HasBranch(b) {
		return fmt.Errorf("%w: %s", ErrBranchUnavailable, b)
	}

	if p.mode == events.ModeOverlap {
		if b == gut.BranchExt {
			d := p.shift(gut.BranchExt)
			pos += d
			if cursor != nil {
				c := *cursor + d
				cursor = &c
			}
		}
		p.overlap.UpdateRoi(&pos, width, cursor)
		return nil
	}

	if err := p.setCurrent(b); err != nil {
		return err
	}
	p.Active().UpdateRoi(&pos, width, cursor)
	return nil
}

// SetCursorPosition moves the cursor of the active slider.
func (p *Panel) SetCursorPosition(pos float64) {
	if !p.Active().UpdateCursor(pos) {
		p.logger.Debug("ignored non-finite position", "op", "SetCursorPosition")
	}
}

// SetRoiFromZoom applies a pan made in the zoom view.
func (p *Panel) SetRoiFromZoom(pos, cursor float64) {
	a := p.Active()
	a.SetPosition(pos, nil)
	a.SetCursor(cursor)
	a.dispatch()
}

// ZoomBy resizes the active window from a zoom view wheel event.
func (p *Panel) ZoomBy(deltaY float64) {
	p.Active().ZoomBy(deltaY)
}

// DragWindow drags the active window by dx pixels.
func (p *Panel) DragWindow(dx float64) {
	p.Active().DragWindow(dx)
}

// Wheel forwards a wheel event to s.
func (p *Panel) Wheel(s *Slider, deltaY float64, ctrl bool) bool {
	return s.Wheel(deltaY, ctrl)
}

// ClickRegion centres the window of s on pixel px, making s current first.
func (p *Panel) ClickRegion(s *Slider, px float64) error {
	if s != p.Active() {
		if err := p.setCurrent(s.Branch()); err != nil {
			return err
		}
	}
	s.CenterAt(px)
	return nil
}

// PressWindow registers a press on the window of s at pixel px. A single
// click moves the cursor once the click delay elapses; a double click asks
// the host for the ROI dialog.
func (p *Panel) PressWindow(s *Slider, px float64, now time.Time) (seq int, pending bool) {
	control := "window:" + s.Branch().String()
	return p.clicks.Press(control, now,
		func() { s.ClickWindow(px) },
		func() { p.RequestRoiDialog() },
	)
}

// ResolveClick runs a pending single click.
func (p *Panel) ResolveClick(seq int) bool {
	return p.clicks.Resolve(seq)
}

// RequestRoiDialog publishes a request for the ROI editing dialog.
func (p *Panel) RequestRoiDialog() {
	e := p.RoiExtents()
	bus.Publish(p.bus, events.RoiDialogRequested, events.RoiDialog{
		Position:       e.Position,
		Width:          e.Width,
		CursorPosition: e.CursorPosition,
		Branch:         p.CurrentBranch(),
	})
}

// SetDisplayWidth resizes every row.
func (p *Panel) SetDisplayWidth(width float64) {
	p.width = width
	for _, s := range p.all() {
		s.SetDisplayWidth(width)
	}
}

// SetDirection flips every row. Regions of interest are unchanged.
func (p *Panel) SetDirection(leftToRight bool) {
	p.leftToRight = leftToRight
	for _, s := range p.all() {
		s.SetDirection(leftToRight)
	}
}

func (p *Panel) all() []*Slider {
	var out []*Slider
	for _, s := range p.sliders {
		if s != nil {
			out = append(out, s)
		}
	}
	if p.overlap != nil {
		out = append(out, p.overlap)
	}
	return out
}

func (p *Panel) onSliderChange(s *Slider) {
	p.publishRoi(s)
}

func (p *Panel) publishRoi(s *Slider) {
	e := s.Extents()
	branch := s.Branch()
	if s == p.overlap {
		branch = gut.BranchBoth
		if p.focus == gut.BranchMain {
			branch = gut.BranchMain
		}
	}
	bus.Publish(p.bus, events.RoiChanged, events.RoiChange{
		Position:       e.Position,
		Width:          e.Width,
		CursorPosition: e.CursorPosition,
		Branch:         branch,
		Offset:         -s.Model().Offset(),
	})
}

func (p *Panel) publishBranch() {
	bus.Publish(p.bus, events.BranchChanged, events.BranchChange{
		Model:  p.Active().Model(),
		Branch: p.CurrentBranch(),
	})
}
