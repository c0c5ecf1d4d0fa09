package slider

import (
	"math"
	"testing"

	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/roi"
)

func ptr(v float64) *float64 { return &v }

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertExtents(t *testing.T, label string, got, want roi.Extents) {
	t.Helper()
	assertFloat(t, label+" position", got.Position, want.Position)
	assertFloat(t, label+" width", got.Width, want.Width)
	assertFloat(t, label+" cursor", got.CursorPosition, want.CursorPosition)
}

// newMainSlider returns an active slider over a 1000 unit branch drawn on
// 800 pixels with a margin of 10, so one pixel is 1/0.78 units.
func newMainSlider(t *testing.T, leftToRight bool) (*Slider, *int) {
	t.Helper()
	calls := 0
	model := gut.NewSampleGut().SubModel(gut.BranchMain, nil)
	s := NewSlider(gut.BranchMain, model, 800, leftToRight, DefaultConfig(), func(*Slider) { calls++ })
	s.Activate()
	return s, &calls
}

func TestConfig_DefaultWidth(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		length float64
		want   float64
	}{
		{1000, 150},
		{500, 50},
		{100, 1},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		assertFloat(t, "DefaultWidth", cfg.DefaultWidth(tt.length), tt.want)
	}

	cfg.DefaultRoiDivisor = 0
	assertFloat(t, "disabled heuristic uses the length", cfg.DefaultWidth(300), 300)
}

func TestNewSlider_DefaultRoi(t *testing.T) {
	s, calls := newMainSlider(t, true)

	assertExtents(t, "seeded", s.Extents(), roi.Extents{Position: 0, Width: 150, CursorPosition: 75})
	if *calls != 0 {
		t.Errorf("construction dispatched %d times", *calls)
	}
	if s.Branch() != gut.BranchMain || !s.Active() {
		t.Errorf("branch = %v, active = %v", s.Branch(), s.Active())
	}
}

func TestNewSlider_PanicsWithoutRegions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an empty model")
		}
	}()
	NewSlider(gut.BranchMain, gut.New(gut.Info{}), 800, true, DefaultConfig(), nil)
}

func TestSlider_BranchScenario(t *testing.T) {
	s, calls := newMainSlider(t, true)

	s.UpdateRoi(ptr(400), ptr(300), nil)
	assertExtents(t, "after update", s.Extents(), roi.Extents{Position: 400, Width: 300, CursorPosition: 550})
	if *calls != 1 {
		t.Errorf("UpdateRoi dispatched %d times, want 1", *calls)
	}

	s.SetWidth(300)
	assertExtents(t, "no-op width", s.Extents(), roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	s.SetPosition(900, nil)
	assertExtents(t, "clamped", s.Extents(), roi.Extents{Position: 700, Width: 300, CursorPosition: 700})
	if *calls != 1 {
		t.Errorf("programmatic setters dispatched, calls = %d", *calls)
	}
}

func TestSlider_DragWindow(t *testing.T) {
	tests := []struct {
		name        string
		leftToRight bool
		dx          float64
		want        roi.Extents
	}{
		{"right in ltr", true, 78, roi.Extents{Position: 500, Width: 300, CursorPosition: 550}},
		{"right in rtl", false, 78, roi.Extents{Position: 300, Width: 300, CursorPosition: 350}},
		{"left in ltr", true, -39, roi.Extents{Position: 350, Width: 300, CursorPosition: 400}},
		{"past the end", true, 7800, roi.Extents{Position: 700, Width: 300, CursorPosition: 750}},
		{"past the start", true, -7800, roi.Extents{Position: 0, Width: 300, CursorPosition: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, calls := newMainSlider(t, tt.leftToRight)
			s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 450})

			s.DragWindow(tt.dx)

			assertExtents(t, tt.name, s.Extents(), tt.want)
			if *calls != 1 {
				t.Errorf("dispatched %d times, want 1", *calls)
			}
		})
	}
}

func TestSlider_ClickWindow(t *testing.T) {
	s, calls := newMainSlider(t, true)
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	s.ClickWindow(s.Transform().PositionToPixel(420, 0))
	assertFloat(t, "cursor", s.Extents().CursorPosition, 420)

	s.ClickWindow(s.Transform().PositionToPixel(900, 0))
	assertFloat(t, "cursor clamped into window", s.Extents().CursorPosition, 700)
	assertFloat(t, "position unchanged", s.Extents().Position, 400)

	if *calls != 2 {
		t.Errorf("dispatched %d times, want 2", *calls)
	}
}

func TestSlider_CenterAt(t *testing.T) {
	s, _ := newMainSlider(t, true)
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	s.CenterAt(s.Transform().PositionToPixel(200, 0))
	assertExtents(t, "centred", s.Extents(), roi.Extents{Position: 50, Width: 300, CursorPosition: 200})

	s.CenterAt(s.Transform().PositionToPixel(990, 0))
	assertExtents(t, "centred near end", s.Extents(), roi.Extents{Position: 700, Width: 300, CursorPosition: 850})
}

func TestSlider_Wheel(t *testing.T) {
	tests := []struct {
		name        string
		leftToRight bool
		deltaY      float64
		ctrl        bool
		want        roi.Extents
	}{
		{"pan ltr", true, 100, false, roi.Extents{Position: 395, Width: 300, CursorPosition: 545}},
		{"pan ltr back", true, -100, false, roi.Extents{Position: 405, Width: 300, CursorPosition: 555}},
		{"pan rtl", false, 100, false, roi.Extents{Position: 405, Width: 300, CursorPosition: 555}},
		{"small delta", true, 1.56, false, roi.Extents{Position: 398, Width: 300, CursorPosition: 548}},
		{"shrink", true, 100, true, roi.Extents{Position: 403, Width: 295, CursorPosition: 550}},
		{"grow", true, -100, true, roi.Extents{Position: 398, Width: 305, CursorPosition: 550}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, calls := newMainSlider(t, tt.leftToRight)
			s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

			if !s.Wheel(tt.deltaY, tt.ctrl) {
				t.Fatal("Wheel returned false on an active slider")
			}
			assertExtents(t, tt.name, s.Extents(), tt.want)
			if *calls != 1 {
				t.Errorf("dispatched %d times, want 1", *calls)
			}
		})
	}
}

func TestSlider_WheelInactive(t *testing.T) {
	s, calls := newMainSlider(t, true)
	s.Deactivate()
	before := s.Extents()

	if s.Wheel(100, false) {
		t.Error("inactive slider accepted the wheel")
	}
	if s.Wheel(math.NaN(), false) {
		t.Error("NaN delta accepted")
	}
	if s.Extents() != before || *calls != 0 {
		t.Error("inactive slider changed state")
	}
}

func TestSlider_ZoomBy(t *testing.T) {
	s, calls := newMainSlider(t, true)
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	s.ZoomBy(-1000)
	assertFloat(t, "width", s.Extents().Width, 305)

	s.ZoomBy(math.NaN())
	if *calls != 1 {
		t.Errorf("dispatched %d times, want 1", *calls)
	}
}

func TestSlider_UpdateCursor(t *testing.T) {
	s, calls := newMainSlider(t, true)
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	if !s.UpdateCursor(600) {
		t.Fatal("UpdateCursor(600) returned false")
	}
	assertFloat(t, "cursor", s.Extents().CursorPosition, 600)

	if s.UpdateCursor(math.NaN()) {
		t.Error("NaN cursor accepted")
	}
	if *calls != 1 {
		t.Errorf("dispatched %d times, want 1", *calls)
	}
}

func TestSlider_Hover(t *testing.T) {
	s, _ := newMainSlider(t, true)

	if _, ok := s.HoverPosition(); ok {
		t.Error("unexpected hover before any pointer move")
	}

	s.Hover(s.Transform().PositionToPixel(600, 0))
	pos, ok := s.HoverPosition()
	if !ok {
		t.Fatal("hover not recorded")
	}
	assertFloat(t, "hover", pos, 600)

	s.Hover(-500)
	pos, _ = s.HoverPosition()
	assertFloat(t, "hover clamped", pos, 0)

	s.Deactivate()
	if _, ok := s.HoverPosition(); ok {
		t.Error("hover kept after deactivation")
	}
}

func TestSlider_WindowPixels(t *testing.T) {
	ltr, _ := newMainSlider(t, true)
	ltr.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	left, right := ltr.WindowPixels()
	assertFloat(t, "ltr left", left, 322)
	assertFloat(t, "ltr right", right, 556)
	assertFloat(t, "ltr cursor", ltr.CursorPixel(), 439)

	rtl, _ := newMainSlider(t, false)
	rtl.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})

	left, right = rtl.WindowPixels()
	assertFloat(t, "rtl left", left, 244)
	assertFloat(t, "rtl right", right, 478)

	if !rtl.InWindow(300) || rtl.InWindow(600) {
		t.Error("InWindow disagrees with WindowPixels")
	}
}

func TestSlider_DisplayChanges(t *testing.T) {
	s, _ := newMainSlider(t, true)
	s.SetRoi(roi.Extents{Position: 400, Width: 300, CursorPosition: 550})
	before := s.Extents()

	s.SetDisplayWidth(410)
	assertFloat(t, "scale", s.Transform().Scale(), 0.39)
	s.SetDirection(false)

	if s.Extents() != before {
		t.Error("display changes must not move the window")
	}
}
