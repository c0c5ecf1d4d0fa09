package gut

import (
	"fmt"
	"math"
	"slices"
)

// markerList is shared by a model and all of its sub-models. Positions are
// stored in full-model coordinates.
type markerList struct {
	items  []Marker
	nextID int
}

// AddMarker adds a marker at pos, expressed in this model's coordinates.
// On a sub-model the marker is attached to the sub-model's branch.
func (g *Gut) AddMarker(pos float64, description string, b Branch) (Marker, error) {
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return Marker{}, fmt.Errorf("%w: %v", ErrInvalidPosition, pos)
	}
	if pos < g.StartPos() || pos > g.EndPos() {
		return Marker{}, fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidPosition, pos, g.StartPos(), g.EndPos())
	}
	if g.sub {
		b = g.branch
	}

	g.markers.nextID++
	m := Marker{
		ID:          g.markers.nextID,
		Position:    pos - g.offset,
		Description: description,
		Branch:      b,
	}
	g.markers.items = append(g.markers.items, m)
	slices.SortStableFunc(g.markers.items, func(a, c Marker) int {
		return compareFloat(a.Position, c.Position)
	})

	m.Position = pos
	return m, nil
}

// RemoveMarker deletes the marker with the given id.
func (g *Gut) RemoveMarker(id int) bool {
	i := slices.IndexFunc(g.markers.items, func(m Marker) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	g.markers.items = slices.Delete(g.markers.items, i, i+1)
	return true
}

// ClearMarkers removes every marker of the model and its sub-models.
func (g *Gut) ClearMarkers() {
	g.markers.items = nil
}

// Markers returns the markers visible in this model, ordered by position and
// expressed in its coordinates.
func (g *Gut) Markers() []Marker {
	var out []Marker
	for _, m := range g.markers.items {
		if g.sub && !m.Branch.Includes(g.branch) {
			continue
		}
		m.Position += g.offset
		out = append(out, m)
	}
	return out
}

// ReplaceMarkers drops the current markers and adds ms, given in this
// model's coordinates. Invalid markers are skipped and counted.
func (g *Gut) ReplaceMarkers(ms []Marker) (skipped int) {
	g.ClearMarkers()
	for _, m := range ms {
		if _, err := g.AddMarker(m.Position, m.Description, m.Branch); err != nil {
			skipped++
		}
	}
	return skipped
}
