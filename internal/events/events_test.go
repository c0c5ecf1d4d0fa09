package events

import (
	"testing"

	"github.com/studiowebux/gutview/internal/bus"
)

func TestParseDisplayMode(t *testing.T) {
	for _, m := range DisplayModes {
		got, err := ParseDisplayMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseDisplayMode(%q) = %q, %v", m, got, err)
		}
	}

	if _, err := ParseDisplayMode("sideways"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestRecorder(t *testing.T) {
	b := bus.New()
	rec := Record(b, RoiChanged)

	if _, ok := rec.Last(); ok {
		t.Error("Last on an empty recorder should report false")
	}

	bus.Publish(b, RoiChanged, RoiChange{Position: 1})
	bus.Publish(b, RoiChanged, RoiChange{Position: 2})

	if len(rec.Events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(rec.Events))
	}
	if last, _ := rec.Last(); last.Position != 2 {
		t.Errorf("Last().Position = %v, want 2", last.Position)
	}

	rec.Reset()
	rec.Stop()
	bus.Publish(b, RoiChanged, RoiChange{Position: 3})
	if len(rec.Events) != 0 {
		t.Errorf("stopped recorder received %d events", len(rec.Events))
	}
}

func TestTopicNames(t *testing.T) {
	names := map[string]bool{}
	for _, n := range []string{
		RoiChanged.Name(), RegionDragged.Name(), ZoomCursorChanged.Name(),
		ZoomChangeRequested.Name(), BranchChanged.Name(), ModelChanged.Name(),
		ModeChanged.Name(), RoiDialogRequested.Name(), MarkerRequested.Name(),
		FullViewToggled.Name(), BranchToggled.Name(),
	} {
		if names[n] {
			t.Errorf("duplicate topic name %q", n)
		}
		names[n] = true
	}
}
