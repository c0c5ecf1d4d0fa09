package slider

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
)

type panelFixture struct {
	panel    *Panel
	bus      *bus.Bus
	rois     *events.Recorder[events.RoiChange]
	branches *events.Recorder[events.BranchChange]
	modes    *events.Recorder[events.ModeChange]
	dialogs  *events.Recorder[events.RoiDialog]
}

func newPanelFixture(t *testing.T, model *gut.Gut) *panelFixture {
	t.Helper()
	b := bus.New()
	f := &panelFixture{
		bus:      b,
		rois:     events.Record(b, events.RoiChanged),
		branches: events.Record(b, events.BranchChanged),
		modes:    events.Record(b, events.ModeChanged),
		dialogs:  events.Record(b, events.RoiDialogRequested),
	}
	f.panel = NewPanel(b, model, 800, true, DefaultConfig(), nil)
	return f
}

func (f *panelFixture) reset() {
	f.rois.Reset()
	f.branches.Reset()
	f.modes.Reset()
	f.dialogs.Reset()
}

func (f *panelFixture) lastRoi(t *testing.T) events.RoiChange {
	t.Helper()
	if len(f.rois.Events) != 1 {
		t.Fatalf("got %d roi_change notifications, want exactly 1", len(f.rois.Events))
	}
	e, _ := f.rois.Last()
	return e
}

func TestNewPanel(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel

	AssertModelField(t, "mode", p.Mode(), events.ModeFull)
	AssertModelField(t, "current", p.CurrentBranch(), gut.BranchMain)
	AssertCount(t, "visible", len(p.Visible()), 2)

	if !p.Slider(gut.BranchMain).Active() || p.Slider(gut.BranchExt).Active() {
		t.Error("only the main slider should be active")
	}
	if len(f.rois.Events) != 0 {
		t.Error("construction must not publish")
	}

	ext := p.Slider(gut.BranchExt).Extent()
	if ext.Start != 0 || ext.End != 500 {
		t.Errorf("ext extent = %+v, want rebased [0, 500]", ext)
	}
}

func TestPanel_Refresh(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.Refresh()

	AssertCount(t, "branch_change", len(f.branches.Events), 1)
	e := f.lastRoi(t)
	AssertModelField(t, "branch", e.Branch, gut.BranchMain)
	assertFloat(t, "width", e.Width, 150)
}

func TestPanel_UpdateRoiSwitchesBranch(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())

	if err := f.panel.UpdateRoi(750, gut.BranchExt, ptr(800), nil); err != nil {
		t.Fatalf("UpdateRoi: %v", err)
	}

	e := f.lastRoi(t)
	AssertModelField(t, "branch", e.Branch, gut.BranchExt)
	assertFloat(t, "width", e.Width, 500)
	assertFloat(t, "position", e.Position, 0)
	assertFloat(t, "cursor", e.CursorPosition, 250)
	assertFloat(t, "offset", e.Offset, 900)
	AssertModelField(t, "current", f.panel.CurrentBranch(), gut.BranchExt)

	if !f.panel.Slider(gut.BranchExt).Active() || f.panel.Slider(gut.BranchMain).Active() {
		t.Error("active slider did not follow the current branch")
	}
	if b, ok := f.branches.Last(); !ok || b.Branch != gut.BranchExt {
		t.Errorf("branch_change = %+v, %v", b, ok)
	}
}

func TestPanel_UpdateRoiWithCursor(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())

	f.panel.UpdateRoi(100, gut.BranchMain, ptr(200), ptr(120))
	e := f.lastRoi(t)
	assertFloat(t, "position", e.Position, 100)
	assertFloat(t, "cursor", e.CursorPosition, 120)
}

func TestPanel_UpdateRoiIgnoresNaN(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	before := f.panel.RoiExtents()

	if err := f.panel.UpdateRoi(math.NaN(), gut.BranchExt, nil, nil); err != nil {
		t.Fatalf("UpdateRoi(NaN): %v", err)
	}
	if len(f.rois.Events) != 0 || f.panel.RoiExtents() != before {
		t.Error("NaN position changed state")
	}
	AssertModelField(t, "current", f.panel.CurrentBranch(), gut.BranchMain)
}

func TestPanel_UpdateRoiMissingBranch(t *testing.T) {
	f := newPanelFixture(t, gut.NewSingleBranchGut(1000))

	err := f.panel.UpdateRoi(10, gut.BranchExt, nil, nil)
	if !errors.Is(err, ErrBranchUnavailable) {
		t.Errorf("error = %v, want ErrBranchUnavailable", err)
	}
}

func TestPanel_UpdateRoiInvalidBranchPanics(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for branch 7")
		}
	}()
	f.panel.UpdateRoi(10, gut.Branch(7), nil, nil)
}

func TestPanel_UpdateRoiFromMainMode(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.SetDisplayMode(events.ModeMain)
	f.reset()

	f.panel.UpdateRoi(100, gut.BranchExt, nil, nil)

	AssertModelField(t, "mode", f.panel.Mode(), events.ModeFull)
	AssertModelField(t, "current", f.panel.CurrentBranch(), gut.BranchExt)
	e := f.lastRoi(t)
	AssertModelField(t, "branch", e.Branch, gut.BranchExt)
	assertFloat(t, "position", e.Position, 100)
}

func TestPanel_ModeRoundTrip(t *testing.T) {
	for _, current := range []gut.Branch{gut.BranchMain, gut.BranchExt} {
		t.Run(current.String(), func(t *testing.T) {
			f := newPanelFixture(t, gut.NewSampleGut())
			p := f.panel
			p.Slider(gut.BranchMain).SetRoi(roi.Extents{Position: 200, Width: 100, CursorPosition: 230})
			p.Slider(gut.BranchExt).SetRoi(roi.Extents{Position: 100, Width: 50, CursorPosition: 110})
			p.setCurrent(current)
			mainBefore := p.Slider(gut.BranchMain).Extents()
			extBefore := p.Slider(gut.BranchExt).Extents()

			if err := p.SetDisplayMode(events.ModeOverlap); err != nil {
				t.Fatalf("enter overlap: %v", err)
			}
			if err := p.SetDisplayMode(events.ModeFull); err != nil {
				t.Fatalf("leave overlap: %v", err)
			}

			if got := p.Slider(gut.BranchMain).Extents(); got != mainBefore {
				t.Errorf("main ROI = %+v, want %+v", got, mainBefore)
			}
			if got := p.Slider(gut.BranchExt).Extents(); got != extBefore {
				t.Errorf("ext ROI = %+v, want %+v", got, extBefore)
			}
			AssertModelField(t, "current", p.CurrentBranch(), current)
		})
	}
}

func TestPanel_EnterOverlap(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel
	p.UpdateRoi(100, gut.BranchExt, ptr(50), ptr(110))
	f.reset()

	p.SetDisplayMode(events.ModeOverlap)

	assertExtents(t, "unified", p.RoiExtents(), roi.Extents{Position: 1000, Width: 50, CursorPosition: 1010})
	AssertModelField(t, "focus", p.CurrentBranch(), gut.BranchExt)
	AssertCount(t, "visible", len(p.Visible()), 1)
	if !p.OverlapSlider().Active() {
		t.Error("overlap slider should be active")
	}

	e := f.lastRoi(t)
	AssertModelField(t, "branch", e.Branch, gut.BranchBoth)
	assertFloat(t, "offset", e.Offset, 0)
	if m, ok := f.modes.Last(); !ok || m.From != events.ModeFull || m.To != events.ModeOverlap {
		t.Errorf("mode change = %+v", m)
	}
}

func TestPanel_LeaveOverlapByShares(t *testing.T) {
	tests := []struct {
		name    string
		unified roi.Extents
		branch  gut.Branch
		want    roi.Extents
	}{
		{"mostly main", roi.Extents{Position: 100, Width: 200, CursorPosition: 200}, gut.BranchMain, roi.Extents{Position: 100, Width: 200, CursorPosition: 200}},
		{"mostly ext", roi.Extents{Position: 950, Width: 300, CursorPosition: 1000}, gut.BranchExt, roi.Extents{Position: 50, Width: 300, CursorPosition: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPanelFixture(t, gut.NewSampleGut())
			p := f.panel
			p.SetDisplayMode(events.ModeOverlap)
			p.OverlapSlider().SetRoi(tt.unified)

			p.SetDisplayMode(events.ModeFull)

			AssertModelField(t, "current", p.CurrentBranch(), tt.branch)
			assertExtents(t, tt.name, p.Slider(tt.branch).Extents(), tt.want)
		})
	}
}

func TestPanel_LeaveOverlapToSingleBranch(t *testing.T) {
	tests := []struct {
		name    string
		from    gut.Branch
		local   roi.Extents
		unified *roi.Extents
		mode    events.DisplayMode
		branch  gut.Branch
		want    roi.Extents
	}{
		{
			name:    "tie kept by main goes to ext",
			from:    gut.BranchMain,
			local:   roi.Extents{Position: 0, Width: 150, CursorPosition: 75},
			unified: &roi.Extents{Position: 910, Width: 60, CursorPosition: 940},
			mode:    events.ModeExt,
			branch:  gut.BranchExt,
			want:    roi.Extents{Position: 10, Width: 60, CursorPosition: 40},
		},
		{
			name:   "unchanged ext window goes to main",
			from:   gut.BranchExt,
			local:  roi.Extents{Position: 50, Width: 50, CursorPosition: 60},
			mode:   events.ModeMain,
			branch: gut.BranchMain,
			want:   roi.Extents{Position: 950, Width: 50, CursorPosition: 960},
		},
		{
			name:   "unchanged main window is restored",
			from:   gut.BranchMain,
			local:  roi.Extents{Position: 200, Width: 100, CursorPosition: 230},
			mode:   events.ModeMain,
			branch: gut.BranchMain,
			want:   roi.Extents{Position: 200, Width: 100, CursorPosition: 230},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPanelFixture(t, gut.NewSampleGut())
			p := f.panel
			p.Slider(tt.from).SetRoi(tt.local)
			p.setCurrent(tt.from)
			p.SetDisplayMode(events.ModeOverlap)
			if tt.unified != nil {
				p.OverlapSlider().SetRoi(*tt.unified)
			}
			f.reset()

			if err := p.SetDisplayMode(tt.mode); err != nil {
				t.Fatalf("SetDisplayMode: %v", err)
			}

			AssertModelField(t, "current", p.CurrentBranch(), tt.branch)
			assertExtents(t, tt.name, p.RoiExtents(), tt.want)
			e := f.lastRoi(t)
			assertExtents(t, "published", roi.Extents{Position: e.Position, Width: e.Width, CursorPosition: e.CursorPosition}, tt.want)
		})
	}
}

func TestPanel_RegionOnBothBranches(t *testing.T) {
	g := gut.NewSampleGut()
	g.AddRegion(gut.Region{Span: gut.Span{Name: "Shared", StartPos: 1400, EndPos: 1500, Branch: gut.BranchBoth}})
	f := newPanelFixture(t, g)
	p := f.panel

	main := p.Slider(gut.BranchMain).Model()
	assertFloat(t, "main end", main.EndPos(), 1000)
	assertFloat(t, "ext length", p.Slider(gut.BranchExt).Model().Length(), 500)

	if err := p.UpdateRoi(950, gut.BranchMain, ptr(200), nil); err != nil {
		t.Fatalf("UpdateRoi: %v", err)
	}
	e := f.lastRoi(t)
	assertFloat(t, "position", e.Position, 800)
	if e.Position+e.Width > 1000 {
		t.Errorf("window %+v leaves the main branch", e)
	}
}

func TestPanel_BothRegionWithoutExtension(t *testing.T) {
	g := gut.NewSingleBranchGut(1000)
	g.AddRegion(gut.Region{Span: gut.Span{Name: "Shared", StartPos: 1000, EndPos: 1100, Branch: gut.BranchBoth}})
	f := newPanelFixture(t, g)
	p := f.panel

	if p.HasBranch(gut.BranchExt) {
		t.Error("a region on both branches must not create the extension slider")
	}
	if p.Available(events.ModeOverlap) || p.Available(events.ModeExt) {
		t.Error("ext and overlap modes reported available")
	}
	if err := p.UpdateRoi(50, gut.BranchExt, nil, nil); !errors.Is(err, ErrBranchUnavailable) {
		t.Errorf("error = %v, want ErrBranchUnavailable", err)
	}
	AssertModelField(t, "current", p.CurrentBranch(), gut.BranchMain)
}

func TestPanel_UpdateRoiInOverlap(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel
	p.SetDisplayMode(events.ModeOverlap)
	f.reset()

	p.UpdateRoi(100, gut.BranchExt, ptr(40), nil)

	e := f.lastRoi(t)
	assertFloat(t, "shared position", e.Position, 1000)
	assertFloat(t, "cursor", e.CursorPosition, 1020)
	AssertModelField(t, "mode", p.Mode(), events.ModeOverlap)
}

func TestPanel_Shares(t *testing.T) {
	p := newPanelFixture(t, gut.NewSampleGut()).panel

	tests := []struct {
		name      string
		e         roi.Extents
		main, ext float64
	}{
		{"main only", roi.Extents{Position: 100, Width: 200}, 200, 0},
		{"ext only", roi.Extents{Position: 1100, Width: 200}, 0, 200},
		{"across the junction", roi.Extents{Position: 850, Width: 200}, 150, 150},
		{"covering both", roi.Extents{Position: 0, Width: 1400}, 1000, 500},
	}
	for _, tt := range tests {
		main, ext := p.Shares(tt.e)
		assertFloat(t, tt.name+" main", main, tt.main)
		assertFloat(t, tt.name+" ext", ext, tt.ext)
	}
}

func TestPanel_MainAndExtModes(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel
	p.UpdateRoi(10, gut.BranchExt, nil, nil)
	extBefore := p.Slider(gut.BranchExt).Extents()
	f.reset()

	p.SetDisplayMode(events.ModeMain)
	AssertModelField(t, "current in main", p.CurrentBranch(), gut.BranchMain)
	AssertCount(t, "visible in main", len(p.Visible()), 1)
	AssertModelField(t, "roi branch", f.lastRoi(t).Branch, gut.BranchMain)

	f.reset()
	p.SetDisplayMode(events.ModeExt)
	AssertModelField(t, "current in ext", p.CurrentBranch(), gut.BranchExt)
	AssertModelField(t, "visible branch", p.Visible()[0].Branch(), gut.BranchExt)
	if got := p.RoiExtents(); got != extBefore {
		t.Errorf("ext ROI changed: %+v, want %+v", got, extBefore)
	}

	f.reset()
	p.SetDisplayMode(events.ModeExt)
	if len(f.rois.Events) != 0 || len(f.modes.Events) != 0 {
		t.Error("setting the same mode must not publish")
	}
}

func TestPanel_Toggles(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel

	p.ToggleExtension()
	AssertModelField(t, "after first toggle", p.Mode(), events.ModeMain)
	p.ToggleExtension()
	AssertModelField(t, "after second toggle", p.Mode(), events.ModeFull)

	p.SetDisplayMode(events.ModeMain)
	p.ToggleOverlap()
	AssertModelField(t, "overlap", p.Mode(), events.ModeOverlap)
	p.ToggleOverlap()
	AssertModelField(t, "back to previous", p.Mode(), events.ModeMain)

	p.CycleDisplayMode()
	AssertModelField(t, "cycle from main", p.Mode(), events.ModeExt)
}

func TestPanel_SingleBranchModes(t *testing.T) {
	f := newPanelFixture(t, gut.NewSingleBranchGut(1000))
	p := f.panel

	if err := p.SetDisplayMode(events.ModeOverlap); !errors.Is(err, ErrBranchUnavailable) {
		t.Errorf("overlap error = %v", err)
	}
	if p.Available(events.ModeExt) {
		t.Error("ext mode reported available")
	}
	AssertCount(t, "visible", len(p.Visible()), 1)

	p.CycleDisplayMode()
	AssertModelField(t, "cycle 1", p.Mode(), events.ModeMain)
	p.CycleDisplayMode()
	AssertModelField(t, "cycle 2", p.Mode(), events.ModeFull)
}

func TestPanel_SelectBranch(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())

	if err := f.panel.SelectBranch(gut.BranchExt); err != nil {
		t.Fatalf("SelectBranch: %v", err)
	}
	e := f.lastRoi(t)
	AssertModelField(t, "branch", e.Branch, gut.BranchExt)
	b, _ := f.branches.Last()
	if b.Model != f.panel.Slider(gut.BranchExt).Model() {
		t.Error("branch_change does not carry the ext sub-model")
	}
}

func TestPanel_ClickRegionActivates(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel
	ext := p.Slider(gut.BranchExt)

	p.ClickRegion(ext, ext.Transform().PositionToPixel(300, 0))

	AssertModelField(t, "current", p.CurrentBranch(), gut.BranchExt)
	e := f.lastRoi(t)
	assertFloat(t, "position", e.Position, 275)
	assertFloat(t, "cursor", e.CursorPosition, 300)
}

func TestPanel_PressWindow(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	p := f.panel
	s := p.Active()
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	px := s.Transform().PositionToPixel(420, 0)

	seq, pending := p.PressWindow(s, px, t0)
	if !pending || len(f.rois.Events) != 0 {
		t.Fatal("single click must wait for the delay")
	}
	p.ResolveClick(seq)
	assertFloat(t, "cursor", f.lastRoi(t).CursorPosition, 420)

	f.reset()
	p.PressWindow(s, px, t0.Add(time.Second))
	p.PressWindow(s, px, t0.Add(time.Second+100*time.Millisecond))
	AssertCount(t, "dialogs", len(f.dialogs.Events), 1)
	AssertCount(t, "roi changes", len(f.rois.Events), 0)
}

func TestPanel_SetCursorPosition(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.UpdateRoi(400, gut.BranchMain, ptr(300), nil)
	f.reset()

	f.panel.SetCursorPosition(600)
	assertFloat(t, "cursor", f.lastRoi(t).CursorPosition, 600)

	f.reset()
	f.panel.SetCursorPosition(math.NaN())
	AssertCount(t, "nan", len(f.rois.Events), 0)
}

func TestPanel_SetRoiFromZoom(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.UpdateRoi(400, gut.BranchMain, ptr(300), nil)
	f.reset()

	f.panel.SetRoiFromZoom(420, 600)
	e := f.lastRoi(t)
	assertFloat(t, "position", e.Position, 420)
	assertFloat(t, "cursor", e.CursorPosition, 600)
	assertFloat(t, "width", e.Width, 300)
}

func TestPanel_DragPublishesOnce(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.UpdateRoi(400, gut.BranchMain, ptr(300), nil)
	f.reset()

	f.panel.DragWindow(78)
	assertFloat(t, "position after drag", f.lastRoi(t).Position, 500)
}

func TestPanel_SetModel(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	f.panel.SetDisplayMode(events.ModeOverlap)
	f.reset()

	f.panel.SetModel(gut.NewSingleBranchGut(200))

	AssertModelField(t, "mode falls back", f.panel.Mode(), events.ModeFull)
	e := f.lastRoi(t)
	assertFloat(t, "width", e.Width, 50)
}

func TestPanel_Direction(t *testing.T) {
	f := newPanelFixture(t, gut.NewSampleGut())
	before := f.panel.RoiExtents()

	f.panel.SetDirection(false)
	f.panel.SetDisplayWidth(300)

	if f.panel.LeftToRight() {
		t.Error("direction not applied")
	}
	if f.panel.RoiExtents() != before {
		t.Error("direction change moved the ROI")
	}
	if f.panel.Slider(gut.BranchExt).Transform().LeftToRight() {
		t.Error("ext slider not flipped")
	}
}

func AssertModelField[T comparable](t *testing.T, name string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}
