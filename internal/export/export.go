// Package export draws the viewer as a PNG image: one row per visible
// branch with its window and cursor, and the zoom row when the full view is
// on. Rows use the same transforms as the interactive viewer.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"

	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/theme"
	"github.com/studiowebux/gutview/internal/transform"
	"github.com/studiowebux/gutview/internal/viewer"
)

// MinWidth is the narrowest image that can be drawn.
const MinWidth = 200

const (
	titleHeight = 28
	rowHeight   = 52
	zoomHeight  = 120
	gap         = 6
	barHeight   = 18
)

var ErrTooNarrow = errors.New("image too narrow")

// Height returns the image height for v.
func Height(v *viewer.Viewer) int {
	h := titleHeight + gap + len(v.Panel().Visible())*(rowHeight+gap)
	if v.FullView() {
		h += zoomHeight + gap
	}
	return h
}

// Render resizes v to width pixels and draws it.
func Render(v *viewer.Viewer, width int) (image.Image, error) {
	dc, err := draw(v, width)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders v and encodes it to w.
func WritePNG(w io.Writer, v *viewer.Viewer, width int) error {
	dc, err := draw(v, width)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG renders v into the file at path.
func SavePNG(path string, v *viewer.Viewer, width int) error {
	dc, err := draw(v, width)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func draw(v *viewer.Viewer, width int) (*gg.Context, error) {
	if width < MinWidth {
		return nil, fmt.Errorf("%w: %d < %d pixels", ErrTooNarrow, width, MinWidth)
	}
	v.Resize(float64(width))

	p := v.Palette()
	dc := gg.NewContext(width, Height(v))
	dc.SetHexColor(p.Background)
	dc.Clear()

	dc.SetHexColor(p.Title)
	dc.DrawRectangle(0, 0, float64(width), titleHeight)
	dc.Fill()
	dc.SetHexColor(p.Text)
	title := v.Model().Name
	if title == "" {
		title = v.Model().ID
	}
	dc.DrawStringAnchored(fmt.Sprintf("%s  [%s]", title, v.DisplayMode()), 8, titleHeight/2, 0, 0.5)

	y := float64(titleHeight + gap)
	for _, s := range v.Panel().Visible() {
		drawSlider(dc, p, s, y)
		y += rowHeight + gap
	}
	if v.FullView() {
		drawZoom(dc, p, v, y)
	}
	return dc, nil
}

// RegionColor returns the colour of r, or the palette colour of its branch.
func RegionColor(p theme.Palette, r gut.Region) string {
	if r.Color != "" {
		return r.Color
	}
	if r.Branch == gut.BranchExt {
		return p.GutExt
	}
	return p.Gut
}

// span returns the left pixel and the pixel width of [start, end].
func span(t *transform.Transform, start, end float64) (x, w float64) {
	return t.PositionToPixel(start, end-start), t.ScaleLength(end - start)
}

func drawSlider(dc *gg.Context, p theme.Palette, s *slider.Slider, y float64) {
	t := s.Transform()
	dc.SetHexColor(p.Slider)
	dc.DrawRectangle(0, y, t.Width(), rowHeight)
	dc.Fill()

	barY := y + (rowHeight-barHeight)/2
	for _, r := range s.Model().Regions() {
		x, w := span(t, r.StartPos, r.EndPos)
		dc.SetHexColor(RegionColor(p, r))
		dc.DrawRectangle(x, barY, w, barHeight)
		dc.Fill()
		dc.SetHexColor(p.Border)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, barY, w, barHeight)
		dc.Stroke()
	}

	for _, l := range s.Model().Landmarks() {
		if l.IsPseudo() {
			continue
		}
		x := t.PositionToPixel(l.Position, 0)
		dc.SetHexColor(p.Landmark)
		dc.DrawCircle(x, barY+barHeight+5, 3)
		dc.Fill()
	}

	for _, m := range s.Model().Markers() {
		x := t.PositionToPixel(m.Position, 0)
		dc.SetHexColor(p.Marker)
		dc.MoveTo(x, barY-1)
		dc.LineTo(x-4, barY-8)
		dc.LineTo(x+4, barY-8)
		dc.ClosePath()
		dc.Fill()
	}

	if !s.Active() {
		return
	}
	left, right := s.WindowPixels()
	dc.SetHexColor(p.Roi)
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, y+4, right-left, rowHeight-8)
	dc.Push()
	dc.SetRGBA(1, 1, 1, 0.25)
	dc.FillPreserve()
	dc.Pop()
	dc.SetHexColor(p.RoiBorder)
	dc.SetLineWidth(2)
	dc.Stroke()

	cx := s.CursorPixel()
	dc.SetHexColor(p.Cursor)
	dc.SetLineWidth(2)
	dc.DrawLine(cx, y+4, cx, y+rowHeight-4)
	dc.Stroke()
}

func drawZoom(dc *gg.Context, p theme.Palette, v *viewer.Viewer, y float64) {
	z := v.Zoom()
	t := z.Transform()
	dc.SetHexColor(p.Zoom)
	dc.DrawRectangle(0, y, t.Width(), zoomHeight)
	dc.Fill()

	barY := y + 30
	bar := float64(zoomHeight - 60)
	for _, c := range z.VisibleRegions() {
		x, w := span(t, c.Start, c.End)
		h, top := bar, barY
		if c.Region.Branch != z.Branch() && c.Region.Branch != gut.BranchBoth {
			h, top = bar/2, barY+bar/4
		}
		dc.SetHexColor(RegionColor(p, c.Region))
		dc.DrawRectangle(x, top, w, h)
		dc.Fill()
		dc.SetHexColor(p.Border)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, top, w, h)
		dc.Stroke()
		if w > 60 {
			dc.SetHexColor(p.Text)
			dc.DrawStringAnchored(c.Region.Name, x+w/2, top+h/2, 0.5, 0.5)
		}
	}

	for _, l := range z.VisibleLandmarks() {
		x, w := span(t, l.StartPos, l.EndPos)
		dc.SetHexColor(p.Landmark)
		if w < 2 {
			dc.DrawLine(x, barY-6, x, barY+bar+6)
			dc.SetLineWidth(2)
			dc.Stroke()
		} else {
			dc.DrawRectangle(x, barY-6, w, 4)
			dc.Fill()
		}
	}

	for _, m := range z.VisibleMarkers() {
		x := t.PositionToPixel(m.Position, 0)
		dc.SetHexColor(p.Marker)
		dc.DrawCircle(x, barY-12, 4)
		dc.Fill()
	}

	cx := z.CursorPixel()
	dc.SetHexColor(p.Cursor)
	dc.SetLineWidth(2)
	dc.DrawLine(cx, barY-4, cx, barY+bar+4)
	dc.Stroke()

	start, end := z.Labels()
	if !t.LeftToRight() {
		start, end = end, start
	}
	dc.SetHexColor(p.Text)
	dc.DrawStringAnchored(start, 8, y+zoomHeight-12, 0, 0.5)
	dc.DrawStringAnchored(end, t.Width()-8, y+zoomHeight-12, 1, 0.5)
}
