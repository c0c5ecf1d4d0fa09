package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/theme"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Errorf("got %+v, want defaults", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := Default()
	want.LeftToRight = true
	want.Theme = "dark"
	want.DisplayMode = events.ModeOverlap
	want.ZoomVisible = false
	want.Tuning.WheelStep = 8
	want.Tuning.ClickDelayMs = 300

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	os.WriteFile(path, []byte("leftToRight: true\ntuning:\n  wheelStep: 10\n"), 0644)

	s, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.LeftToRight || s.Tuning.WheelStep != 10 {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.Tuning.DefaultRoiDivisor != 350 || s.Theme != theme.DefaultName || !s.ZoomVisible {
		t.Errorf("missing keys lost their defaults: %+v", s)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(Settings) bool
	}{
		{"display mode", "displayMode: sideways\n", func(s Settings) bool { return s.DisplayMode == events.ModeFull }},
		{"theme", "theme: sepia\n", func(s Settings) bool { return s.Theme == theme.DefaultName }},
		{"wheel step", "tuning:\n  wheelStep: -2\n", func(s Settings) bool { return s.Tuning.WheelStep == 5 }},
		{"click delay", "tuning:\n  clickDelayMs: 0\n", func(s Settings) bool { return s.Tuning.ClickDelayMs == 200 }},
		{"pan damping base", "tuning:\n  panDampingBase: 0\n", func(s Settings) bool { return s.Tuning.PanDampingBase == 3 }},
		{"zero margin is allowed", "tuning:\n  sliderMargin: 0\n", func(s Settings) bool { return s.Tuning.SliderMargin == 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			os.WriteFile(path, []byte(tt.content), 0644)

			s, err := Load(path, nil)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !tt.check(s) {
				t.Errorf("unexpected settings %+v", s)
			}
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	os.WriteFile(path, []byte("leftToRight: [unterminated\n"), 0644)

	s, err := Load(path, nil)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if s != Default() {
		t.Error("malformed file did not fall back to defaults")
	}
}
