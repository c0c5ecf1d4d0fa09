// Package annotation lists the regions and landmarks of a model as text
// annotations and selects the ones to show for a region of interest.
package annotation

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/gutview/internal/gut"
)

// OntologyURL is the prefix of ontology term links.
const OntologyURL = "http://purl.obolibrary.org/obo/"

// Annotation is one line of the annotation list.
type Annotation struct {
	Kind        gut.Kind
	Title       string
	Description string
	Start       float64
	End         float64
	Branch      gut.Branch
	ExternalID  string
}

// IsSpan reports whether the annotation covers a range rather than a point.
func (a Annotation) IsSpan() bool {
	return a.End != a.Start
}

// Link returns the ontology link of the annotation, or "" without one.
func (a Annotation) Link() string {
	return Link(a.ExternalID)
}

// PositionText formats the position, shifted by offset, as "start" or
// "start - end".
func (a Annotation) PositionText(offset float64) string {
	start := math.Round(a.Start + offset)
	if !a.IsSpan() {
		return fmt.Sprintf("%.0f", start)
	}
	return fmt.Sprintf("%.0f - %.0f", start, math.Round(a.End+offset))
}

// Link builds an ontology link from a compact id such as "UBERON:0001153".
func Link(externalID string) string {
	id := strings.TrimSpace(externalID)
	if id == "" {
		return ""
	}
	return OntologyURL + strings.Replace(id, ":", "_", 1)
}

// compare orders by start; on ties landmarks come before regions.
func compare(a, b Annotation) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(b.Kind, a.Kind)
}

// Build lists the regions and non-pseudo landmarks of model.
func Build(model *gut.Gut) []Annotation {
	var list []Annotation
	for _, r := range model.Regions() {
		list = append(list, Annotation{
			Kind:        gut.KindRegion,
			Title:       "Region: " + r.Name,
			Description: r.Description,
			Start:       r.StartPos,
			End:         r.EndPos,
			Branch:      r.Branch,
			ExternalID:  r.ExternalID,
		})
	}
	for _, l := range model.Landmarks() {
		if l.IsPseudo() {
			continue
		}
		a := Annotation{
			Kind:        gut.KindLandmark,
			Title:       "Landmark: " + l.DisplayTitle(),
			Description: l.Description,
			Start:       l.Position,
			End:         l.Position,
			Branch:      l.Branch,
			ExternalID:  l.ExternalID,
		}
		if l.StartPos != l.EndPos {
			a.Start, a.End = l.StartPos, l.EndPos
		}
		list = append(list, a)
	}
	slices.SortStableFunc(list, compare)
	return list
}

// InRoi returns the annotations starting inside [start, end].
func InRoi(list []Annotation, start, end float64) []Annotation {
	var out []Annotation
	for _, a := range list {
		if a.Start >= start && a.Start <= end {
			out = append(out, a)
		}
	}
	return out
}

// View is the part of the list that fits the panel. Items[HighlightStart:
// HighlightEnd+1] start inside the region of interest; HasPrev and HasNext
// tell whether entries were left out before or after.
type View struct {
	Items          []Annotation
	HighlightStart int
	HighlightEnd   int
	HasPrev        bool
	HasNext        bool
}

// Window picks at most maxLines annotations around [start, end]. When the
// annotations inside the range do not fill the panel, neighbours on both
// sides are added; when they overflow, the middle ones are kept. One line is
// given up on each side that has more entries, for the ellipsis.
func Window(list []Annotation, start, end float64, maxLines int) View {
	n := len(list)
	if n == 0 || maxLines <= 0 {
		return View{HighlightEnd: -1}
	}

	first := 0
	for first < n-1 && list[first].Start < start {
		first++
	}
	if list[first].Start > end {
		first = max(0, first-1)
	}
	last := n - 1
	for last > 0 && list[last].Start > end {
		last--
	}

	var from, to int
	count := last - first + 1
	if count > maxLines {
		over := count - maxLines
		from = first + over/2
		to = last - (over - over/2)
	} else {
		extra := maxLines - count
		before, after := first, n-last-1
		if min(before, after) <= extra/2 {
			if before < after {
				from, to = 0, maxLines-1
			} else {
				to = n - 1
				from = to - maxLines + 1
			}
		} else {
			from = first - extra/2
			to = last + (extra - extra/2)
		}
	}

	v := View{HighlightEnd: -1}
	if from > 0 {
		v.HasPrev = true
		from++
	}
	if to < n-1 {
		v.HasNext = true
		to--
	}
	from = max(0, from)
	to = min(n-1, to)

	for i := from; i <= to; i++ {
		if i == first {
			v.HighlightStart = len(v.Items)
		}
		if i == last {
			v.HighlightEnd = len(v.Items)
		}
		v.Items = append(v.Items, list[i])
	}
	if v.HighlightEnd < 0 {
		v.HighlightEnd = len(v.Items) - 1
	}
	return v
}

type titles []Annotation

func (t titles) String(i int) string { return t[i].Title + " " + t[i].Description }
func (t titles) Len() int            { return len(t) }

// Search ranks the annotations matching query, best first.
func Search(list []Annotation, query string) []Annotation {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	matches := fuzzy.FindFrom(query, titles(list))
	out := make([]Annotation, 0, len(matches))
	for _, m := range matches {
		out = append(out, list[m.Index])
	}
	return out
}
