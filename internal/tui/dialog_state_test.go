package tui

import (
	"errors"
	"testing"

	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/markerstore"
)

func TestParseRoiValues(t *testing.T) {
	tests := []struct {
		name       string
		values     []string
		wantPos    float64
		wantWidth  float64
		wantCursor *float64
		wantErr    bool
	}{
		{"all fields", []string{"100", "50", "120"}, 100, 50, ptr(120), false},
		{"empty cursor", []string{"100", "50", ""}, 100, 50, nil, false},
		{"decimals", []string{"12.5", "0.5", "13"}, 12.5, 0.5, ptr(13), false},
		{"empty position", []string{"", "50", ""}, 0, 0, nil, true},
		{"zero width", []string{"100", "0", ""}, 0, 0, nil, true},
		{"negative width", []string{"100", "-5", ""}, 0, 0, nil, true},
		{"not a number", []string{"abc", "50", ""}, 0, 0, nil, true},
		{"infinite", []string{"100", "Inf", ""}, 0, 0, nil, true},
		{"bad cursor", []string{"100", "50", "x"}, 0, 0, nil, true},
		{"too few values", []string{"100"}, 0, 0, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, width, cursor, err := parseRoiValues(tt.values)
			if tt.wantErr {
				AssertError(t, err)
				return
			}
			AssertNoError(t, err)
			AssertModelField(t, "position", pos, tt.wantPos)
			AssertModelField(t, "width", width, tt.wantWidth)
			if (cursor == nil) != (tt.wantCursor == nil) {
				t.Fatalf("cursor = %v, want %v", cursor, tt.wantCursor)
			}
			if cursor != nil {
				AssertModelField(t, "cursor", *cursor, *tt.wantCursor)
			}
		})
	}
}

func TestParseNumber_EmptyField(t *testing.T) {
	_, err := parseNumber("width", "")
	if !errors.Is(err, errEmptyField) {
		t.Errorf("err = %v, want errEmptyField", err)
	}
}

func TestDialogState_Fields(t *testing.T) {
	s := NewDialogState()
	s.Open(DialogRoi, "Region of interest", []string{"Position", "Width", "Cursor"}, []string{"0", " 150 ", "75"})
	s.SetTarget(gut.BranchExt, 12, true)

	AssertModelField(t, "kind", s.Kind(), DialogRoi)
	AssertModelField(t, "title", s.Title(), "Region of interest")
	AssertModelField(t, "focused", s.Focused(), 0)
	AssertModelField(t, "trimmed value", s.Values()[1], "150")
	AssertModelField(t, "field views", len(s.FieldViews()), 3)

	branch, pos, inZoom := s.Target()
	AssertModelField(t, "branch", branch, gut.BranchExt)
	AssertModelField(t, "position", pos, 12.0)
	AssertModelField(t, "in zoom", inZoom, true)

	s.PrevField()
	AssertModelField(t, "focused after wrap back", s.Focused(), 2)
	s.NextField()
	AssertModelField(t, "focused after wrap", s.Focused(), 0)
	s.NextField()
	AssertModelField(t, "focused", s.Focused(), 1)
}

func TestDialogState_Paste(t *testing.T) {
	s := NewDialogState()
	s.Open(DialogMarker, "New marker", []string{"Description"}, []string{"polyp"})

	s.Paste(" near\nfold ")
	AssertModelField(t, "value", s.Values()[0], "polypnear fold")
}

func TestDialogState_ErrorAndReset(t *testing.T) {
	s := NewDialogState()
	s.Open(DialogSaveSet, "Save markers", []string{"Set name"}, nil)
	s.SetTarget(gut.BranchMain, 5, true)

	s.SetError("Set name: value required")
	AssertModelField(t, "error", s.Error(), "Set name: value required")

	s.Reset()
	AssertModelField(t, "error after reset", s.Error(), "")
	AssertModelField(t, "values after reset", len(s.Values()), 0)
	_, _, inZoom := s.Target()
	AssertModelField(t, "in zoom after reset", inZoom, false)

	// Moving the focus of a closed dialog is a no-op.
	s.NextField()
	AssertModelField(t, "focused", s.Focused(), 0)
}

func TestSearchState(t *testing.T) {
	m, _ := CreateTestModel(t)
	s := NewSearchState()
	find := m.viewer.Annotations().Search

	s.Start()
	s.SetQuery("colon", find)
	if len(s.Results()) < 3 {
		t.Fatalf("results = %d, want the three colon regions", len(s.Results()))
	}
	AssertModelField(t, "query", s.Query(), "colon")
	AssertModelField(t, "index", s.Index(), 0)

	s.Move(1)
	AssertModelField(t, "index", s.Index(), 1)
	s.Move(100)
	AssertModelField(t, "index clamped", s.Index(), len(s.Results())-1)
	s.Move(-100)
	AssertModelField(t, "index clamped", s.Index(), 0)

	if _, ok := s.Selected(); !ok {
		t.Error("a match should be selected")
	}

	s.Reset()
	AssertModelField(t, "query after reset", s.Query(), "")
	if _, ok := s.Selected(); ok {
		t.Error("nothing should be selected after reset")
	}
	s.Move(1)
	AssertModelField(t, "index without results", s.Index(), 0)
}

func TestMarkerSetState(t *testing.T) {
	s := NewMarkerSetState()
	if _, ok := s.Selected(); ok {
		t.Error("an empty list has no selection")
	}
	s.Move(1)

	s.SetSets([]markerstore.Summary{
		{Name: "a", Count: 1},
		{Name: "b", Count: 2},
		{Name: "c", Count: 3},
	})
	s.Move(5)
	AssertModelField(t, "index", s.Index(), 2)

	s.Remove("c")
	AssertModelField(t, "index after remove", s.Index(), 1)
	sel, ok := s.Selected()
	if !ok {
		t.Fatal("a set should be selected")
	}
	AssertModelField(t, "selected", sel.Name, "b")

	s.Remove("a")
	s.Remove("b")
	AssertModelField(t, "sets", len(s.Sets()), 0)
	AssertModelField(t, "index", s.Index(), 0)
}

func ptr(v float64) *float64 { return &v }
