package export

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/settings"
	"github.com/studiowebux/gutview/internal/theme"
	"github.com/studiowebux/gutview/internal/viewer"
)

func newTestViewer(t *testing.T) *viewer.Viewer {
	t.Helper()
	v, err := viewer.New(viewer.NewContext(settings.Default(), nil), gut.NewSampleGut(), 800)
	if err != nil {
		t.Fatalf("viewer.New: %v", err)
	}
	t.Cleanup(v.Close)
	return v
}

func TestHeight(t *testing.T) {
	v := newTestViewer(t)
	full := Height(v)
	if want := titleHeight + gap + 2*(rowHeight+gap) + zoomHeight + gap; full != want {
		t.Errorf("full mode height = %d, want %d", full, want)
	}

	v.SetFullView(false)
	if err := v.SetDisplayMode(events.ModeMain); err != nil {
		t.Fatal(err)
	}
	if got, want := Height(v), titleHeight+gap+rowHeight+gap; got != want {
		t.Errorf("main mode height = %d, want %d", got, want)
	}
}

func TestWritePNG(t *testing.T) {
	v := newTestViewer(t)
	if _, err := v.AddMarker(500, "biopsy", nil); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, v, 640); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 640 || b.Dy() != Height(v) {
		t.Errorf("image is %dx%d, want 640x%d", b.Dx(), b.Dy(), Height(v))
	}
	if w := v.Panel().Active().Transform().Width(); w != 640 {
		t.Errorf("slider width = %v, want 640", w)
	}
}

func TestSavePNG(t *testing.T) {
	v := newTestViewer(t)
	path := filepath.Join(t.TempDir(), "gut.png")
	if err := SavePNG(path, v, 400); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty PNG file")
	}
}

func TestRender_TooNarrow(t *testing.T) {
	v := newTestViewer(t)
	if _, err := Render(v, MinWidth-1); !errors.Is(err, ErrTooNarrow) {
		t.Errorf("got %v, want ErrTooNarrow", err)
	}
	if w := v.Panel().Active().Transform().Width(); w != 800 {
		t.Errorf("rejected render resized the viewer to %v", w)
	}
}

func TestRegionColor(t *testing.T) {
	p := theme.MustGet("blue")
	tests := []struct {
		name   string
		region gut.Region
		want   string
	}{
		{"own colour", gut.Region{Span: gut.Span{Color: "#010203"}}, "#010203"},
		{"main", gut.Region{Span: gut.Span{Branch: gut.BranchMain}}, p.Gut},
		{"ext", gut.Region{Span: gut.Span{Branch: gut.BranchExt}}, p.GutExt},
		{"both", gut.Region{Span: gut.Span{Branch: gut.BranchBoth}}, p.Gut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RegionColor(p, tt.region); got != tt.want {
				t.Errorf("RegionColor = %q, want %q", got, tt.want)
			}
		})
	}
}
