// Package transform maps positions along a gut branch to screen pixels and back.
package transform

// DefaultMargin is the number of pixels left empty at each end of a row.
const DefaultMargin = 2.0

// Transform converts between gut positions and pixel coordinates for a
// display area of a given width. Mutators keep scale consistent with width,
// length and margin.
type Transform struct {
	width       float64
	length      float64
	leftToRight bool
	posOffset   float64
	margin      float64
	pixelOffset float64
	scale       float64
}

// New creates a transform. A zero length yields a zero scale.
func New(width, length float64, leftToRight bool, posOffset, margin, pixelOffset float64) *Transform {
	t := &Transform{
		width:       width,
		length:      length,
		leftToRight: leftToRight,
		posOffset:   posOffset,
		margin:      margin,
		pixelOffset: pixelOffset,
	}
	t.updateScale()
	return t
}

func (t *Transform) updateScale() {
	if t.length > 0 {
		t.scale = (t.width - 2*t.margin) / t.length
	} else {
		t.scale = 0
	}
}

// PositionToPixel returns the pixel coordinate of pos. elementWidth is the
// extent of the element in position units; in right-to-left mode the element
// is anchored by its far edge so it still grows away from the origin.
func (t *Transform) PositionToPixel(pos, elementWidth float64) float64 {
	distance := pos - t.posOffset
	if !t.leftToRight {
		distance += elementWidth
	}
	w := distance * t.scale
	if t.leftToRight {
		return t.margin + w + t.pixelOffset
	}
	return t.width - t.margin - w - t.pixelOffset
}

// PixelToPosition is the inverse of PositionToPixel. With a zero scale every
// pixel maps to the position offset.
func (t *Transform) PixelToPosition(px, elementWidth float64) float64 {
	if t.scale == 0 {
		return t.posOffset
	}
	var w float64
	if t.leftToRight {
		w = px - t.pixelOffset - t.margin
	} else {
		w = t.width - px - t.pixelOffset - t.margin
	}
	pos := w/t.scale + t.posOffset
	if !t.leftToRight {
		pos -= elementWidth
	}
	return pos
}

// ScaleLength converts a length in position units to pixels.
func (t *Transform) ScaleLength(v float64) float64 {
	return v * t.scale
}

// UnscaleLength converts a pixel length to position units.
func (t *Transform) UnscaleLength(v float64) float64 {
	if t.scale == 0 {
		return 0
	}
	return v / t.scale
}

// ClampToContent clamps pos into [posOffset, posOffset+length].
func (t *Transform) ClampToContent(pos float64) float64 {
	return Clamp(pos, t.posOffset, t.posOffset+t.length)
}

// SetWidth changes the display width.
func (t *Transform) SetWidth(width float64) {
	t.width = width
	t.updateScale()
}

// SetLength changes the content length.
func (t *Transform) SetLength(length float64) {
	t.length = length
	t.updateScale()
}

// SetMargin changes the empty space kept at both ends.
func (t *Transform) SetMargin(margin float64) {
	t.margin = margin
	t.updateScale()
}

// SetPositionOffset sets the position rendered at the origin edge.
func (t *Transform) SetPositionOffset(offset float64) {
	t.posOffset = offset
}

// SetPixelOffset shifts every pixel away from the origin edge.
func (t *Transform) SetPixelOffset(offset float64) {
	t.pixelOffset = offset
}

// SetDirection switches between left-to-right and right-to-left.
func (t *Transform) SetDirection(leftToRight bool) {
	t.leftToRight = leftToRight
}

func (t *Transform) Width() float64          { return t.width }
func (t *Transform) Length() float64         { return t.length }
func (t *Transform) Margin() float64         { return t.margin }
func (t *Transform) Scale() float64          { return t.scale }
func (t *Transform) LeftToRight() bool       { return t.leftToRight }
func (t *Transform) PositionOffset() float64 { return t.posOffset }
func (t *Transform) PixelOffset() float64    { return t.pixelOffset }

// Clamp limits val to the range spanned by b1 and b2, in either order.
func Clamp(val, b1, b2 float64) float64 {
	lo, hi := b1, b2
	if lo > hi {
		lo, hi = hi, lo
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
