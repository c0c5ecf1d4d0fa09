package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"

	"github.com/studiowebux/gutview/internal/export"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/slider"
	"github.com/studiowebux/gutview/internal/theme"
	"github.com/studiowebux/gutview/internal/transform"
)

const (
	glyphRegion    = '█'
	glyphRegionAlt = '▓'
	glyphBack      = '▄'
	glyphLandmark  = '▾'
	glyphMarker    = '▼'
	glyphWindow    = '▔'
	glyphCursor    = '┃'
	glyphHover     = '┆'
)

// cell is one terminal column of a row.
type cell struct {
	ch rune
	fg string
	bg string
}

// line is a row of cells, one per column.
type line []cell

func newLine(width int) line {
	l := make(line, max(0, width))
	for i := range l {
		l[i] = cell{ch: ' '}
	}
	return l
}

// columns returns the columns covered by the pixel range [from, to). A
// range narrower than one column still covers the column it starts in.
func columns(from, to float64, width int) (first, last int) {
	first = int(math.Round(from))
	last = int(math.Round(to)) - 1
	if last < first {
		last = first
	}
	return max(0, first), min(width-1, last)
}

func (l line) fill(from, to float64, c cell) {
	first, last := columns(from, to, len(l))
	for i := first; i <= last; i++ {
		l[i] = c
	}
}

func (l line) set(px float64, c cell) {
	i := int(math.Floor(px))
	if i >= 0 && i < len(l) {
		l[i] = c
	}
}

// text writes s from column x on, keeping the background already there.
func (l line) text(x int, s string, fg string) {
	for _, r := range s {
		if x >= len(l) {
			return
		}
		if x >= 0 {
			l[x].ch = r
			l[x].fg = fg
		}
		x += runewidth.RuneWidth(r)
	}
}

// render turns the cells into a styled string, one lipgloss call per run of
// equal colours.
func (l line) render() string {
	var b strings.Builder
	for i := 0; i < len(l); {
		j := i
		var run strings.Builder
		for j < len(l) && l[j].fg == l[i].fg && l[j].bg == l[i].bg {
			run.WriteRune(l[j].ch)
			j++
		}
		style := lipgloss.NewStyle()
		if l[i].fg != "" {
			style = style.Foreground(lipgloss.Color(l[i].fg))
		}
		if l[i].bg != "" {
			style = style.Background(lipgloss.Color(l[i].bg))
		}
		b.WriteString(style.Render(run.String()))
		i = j
	}
	return b.String()
}

func (l line) String() string {
	var b strings.Builder
	for _, c := range l {
		b.WriteRune(c.ch)
	}
	return b.String()
}

// truncate fits s into width columns.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// span returns the left pixel and the pixel width of [start, end].
func span(t *transform.Transform, start, end float64) (x, w float64) {
	return t.PositionToPixel(start, end-start), t.ScaleLength(end - start)
}

// stripKey identifies a drawn region strip. Sub-models are rebuilt when the
// model changes, so the model pointer also tracks model replacement.
type stripKey struct {
	model  *gut.Gut
	branch gut.Branch
	width  int
	ltr    bool
	theme  string
}

// stripCache keeps the region strips of the slider rows. Regions only move
// when the width, the direction, the theme or the model change, while the
// window and cursor move on every event, so the two are drawn separately.
type stripCache struct {
	cache  *lru.Cache[stripKey, line]
	hits   int
	misses int
}

func newStripCache(size int) *stripCache {
	cache, err := lru.New[stripKey, line](size)
	if err != nil {
		panic(err)
	}
	return &stripCache{cache: cache}
}

// regions returns a copy of the region strip of s, drawing it on a miss.
func (c *stripCache) regions(s *slider.Slider, p theme.Palette, width int) line {
	key := stripKey{
		model:  s.Model(),
		branch: s.Branch(),
		width:  width,
		ltr:    s.Transform().LeftToRight(),
		theme:  p.Name,
	}
	cached, ok := c.cache.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
		cached = regionStrip(s.Model(), s.Transform(), p, width)
		c.cache.Add(key, cached)
	}
	out := make(line, len(cached))
	copy(out, cached)
	return out
}

// Purge drops every strip.
func (c *stripCache) Purge() {
	c.cache.Purge()
}

func (c *stripCache) Len() int {
	return c.cache.Len()
}

// regionStrip draws the regions of model. Neighbouring regions alternate
// between two glyphs so equal colours stay apart.
func regionStrip(model *gut.Gut, t *transform.Transform, p theme.Palette, width int) line {
	l := newLine(width)
	for i, r := range model.Regions() {
		ch := glyphRegion
		if i%2 == 1 {
			ch = glyphRegionAlt
		}
		x, w := span(t, r.StartPos, r.EndPos)
		l.fill(x, x+w, cell{ch: ch, fg: export.RegionColor(p, r)})
	}
	return l
}
