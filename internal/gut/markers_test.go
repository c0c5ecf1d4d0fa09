package gut

import (
	"errors"
	"math"
	"testing"
)

func TestAddMarker(t *testing.T) {
	g := NewSampleGut()

	if _, err := g.AddMarker(600, "polyp", BranchMain); err != nil {
		t.Fatalf("AddMarker: %v", err)
	}
	if _, err := g.AddMarker(200, "biopsy", BranchMain); err != nil {
		t.Fatalf("AddMarker: %v", err)
	}

	markers := g.Markers()
	if len(markers) != 2 {
		t.Fatalf("got %d markers, want 2", len(markers))
	}
	if markers[0].Description != "biopsy" || markers[1].Description != "polyp" {
		t.Errorf("markers not ordered by position: %+v", markers)
	}
}

func TestAddMarker_Invalid(t *testing.T) {
	g := NewSampleGut()

	for _, pos := range []float64{math.NaN(), math.Inf(1), -1, 1401} {
		if _, err := g.AddMarker(pos, "x", BranchMain); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("AddMarker(%v) error = %v, want ErrInvalidPosition", pos, err)
		}
	}
	if n := len(g.Markers()); n != 0 {
		t.Errorf("invalid markers were stored: %d", n)
	}
}

func TestMarkers_SharedWithSubModels(t *testing.T) {
	g := NewSampleGut()
	origin := 0.0
	ext := g.SubModel(BranchExt, &origin)
	main := g.SubModel(BranchMain, nil)

	m, err := ext.AddMarker(100, "ulcer", BranchMain)
	if err != nil {
		t.Fatalf("AddMarker on sub-model: %v", err)
	}
	if m.Branch != BranchExt || m.Position != 100 {
		t.Errorf("returned marker = %+v", m)
	}

	full := g.Markers()
	if len(full) != 1 || full[0].Position != 1000 || full[0].Branch != BranchExt {
		t.Errorf("full model markers = %+v, want one at 1000 on ext", full)
	}
	if n := len(main.Markers()); n != 0 {
		t.Errorf("main sub-model sees %d ext markers", n)
	}
	if got := ext.Markers(); len(got) != 1 || got[0].Position != 100 {
		t.Errorf("ext sub-model markers = %+v", got)
	}
}

func TestRemoveAndClearMarkers(t *testing.T) {
	g := NewSampleGut()
	a, _ := g.AddMarker(10, "a", BranchMain)
	g.AddMarker(20, "b", BranchMain)

	if !g.RemoveMarker(a.ID) {
		t.Fatal("RemoveMarker returned false")
	}
	if g.RemoveMarker(a.ID) {
		t.Error("second RemoveMarker should report false")
	}
	if n := len(g.Markers()); n != 1 {
		t.Errorf("got %d markers after remove, want 1", n)
	}

	g.ClearMarkers()
	if n := len(g.Markers()); n != 0 {
		t.Errorf("got %d markers after clear", n)
	}
}

func TestReplaceMarkers(t *testing.T) {
	g := NewSampleGut()
	g.AddMarker(10, "old", BranchMain)

	skipped := g.ReplaceMarkers([]Marker{
		{Position: 300, Description: "new", Branch: BranchMain},
		{Position: 5000, Description: "out of range", Branch: BranchMain},
	})

	AssertCount(t, "skipped", skipped, 1)
	markers := g.Markers()
	if len(markers) != 1 || markers[0].Description != "new" {
		t.Errorf("markers = %+v", markers)
	}
}
