package markerstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/studiowebux/gutview/internal/gut"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "data", "markers.db"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestSaveLoad(t *testing.T) {
	m := newTestManager(t)
	stamp := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	m.now = fixedClock(stamp)

	markers := []gut.Marker{
		{ID: 7, Position: 1000, Description: "polyp", Branch: gut.BranchExt},
		{ID: 3, Position: 250, Description: "biopsy", Branch: gut.BranchMain},
	}
	if err := m.Save("visit 1", "sample", markers); err != nil {
		t.Fatalf("Save: %v", err)
	}

	set, err := m.Load("visit 1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.ModelID != "sample" || !set.UpdatedAt.Equal(stamp) {
		t.Errorf("unexpected set %+v", set)
	}
	want := []gut.Marker{
		{ID: 1, Position: 250, Description: "biopsy", Branch: gut.BranchMain},
		{ID: 2, Position: 1000, Description: "polyp", Branch: gut.BranchExt},
	}
	if len(set.Markers) != len(want) {
		t.Fatalf("got %d markers, want %d", len(set.Markers), len(want))
	}
	for i := range want {
		if set.Markers[i] != want[i] {
			t.Errorf("marker %d = %+v, want %+v", i, set.Markers[i], want[i])
		}
	}
}

func TestSave_Replaces(t *testing.T) {
	m := newTestManager(t)

	if err := m.Save("run", "sample", []gut.Marker{{Position: 1}, {Position: 2}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Save("run", "sample", []gut.Marker{{Position: 5}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	set, err := m.Load("run")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Markers) != 1 || set.Markers[0].Position != 5 {
		t.Errorf("markers not replaced: %+v", set.Markers)
	}
}

func TestList(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = fixedClock(base, base.Add(time.Hour), base.Add(2*time.Hour))

	m.Save("old", "sample", []gut.Marker{{Position: 1}})
	m.Save("other model", "demo", nil)
	m.Save("new", "sample", []gut.Marker{{Position: 1}, {Position: 2}})

	all, err := m.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].Name != "new" || all[2].Name != "old" {
		t.Errorf("unexpected order %+v", all)
	}

	sample, err := m.List("sample")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sample) != 2 {
		t.Fatalf("got %d sets for sample, want 2", len(sample))
	}
	if sample[0].Count != 2 || sample[1].Count != 1 {
		t.Errorf("unexpected counts %+v", sample)
	}
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	m.Save("gone", "sample", []gut.Marker{{Position: 1}})

	if err := m.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Load("gone"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("Load after delete: got %v", err)
	}
	if err := m.Delete("gone"); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("second delete: got %v", err)
	}

	var orphans int
	m.db.QueryRow("SELECT COUNT(*) FROM markers").Scan(&orphans)
	if orphans != 0 {
		t.Errorf("%d markers left after delete", orphans)
	}
}

func TestEmptyName(t *testing.T) {
	m := newTestManager(t)
	if err := m.Save("  ", "sample", nil); err == nil {
		t.Error("blank name accepted")
	}
	if _, err := m.Load(""); err == nil {
		t.Error("blank name accepted")
	}
}
