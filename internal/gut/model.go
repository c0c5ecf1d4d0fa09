package gut

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidPosition is returned when a marker position is not a finite
	// number inside the model extent.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNoRegions is returned by Validate for a model without regions.
	ErrNoRegions = errors.New("model has no regions")
)

// Info holds descriptive metadata of a model.
type Info struct {
	ID          string
	Name        string
	Species     string
	Description string
	Owner       string
	Version     string
}

// Gut is an ordered set of regions and landmarks along one or two branches.
// A sub-model is a Gut restricted to one branch, sharing its parent's markers.
type Gut struct {
	Info

	regions   []Region
	landmarks []Landmark

	sub    bool
	branch Branch
	offset float64 // sub-model position minus full-model position

	markers   *markerList
	subModels map[subKey]*Gut
}

type subKey struct {
	branch    Branch
	hasOrigin bool
	origin    float64
}

// New creates an empty model.
func New(info Info) *Gut {
	return &Gut{
		Info:      info,
		markers:   &markerList{},
		subModels: make(map[subKey]*Gut),
	}
}

// AddRegion inserts a region keeping the model order: by start within a
// branch, branch 0 before branch 1, regions of both branches last.
func (g *Gut) AddRegion(r Region) {
	g.regions = append(g.regions, r)
	slices.SortStableFunc(g.regions, compareRegions)
	clear(g.subModels)
}

// AddLandmark inserts a landmark ordered by position, branch 0 first on ties.
func (g *Gut) AddLandmark(l Landmark) {
	g.landmarks = append(g.landmarks, l)
	slices.SortStableFunc(g.landmarks, compareLandmarks)
	clear(g.subModels)
}

func compareRegions(a, b Region) int {
	if a.Branch == b.Branch {
		return compareFloat(a.StartPos, b.StartPos)
	}
	return int(a.Branch) - int(b.Branch)
}

func compareLandmarks(a, b Landmark) int {
	if c := compareFloat(a.Position, b.Position); c != 0 {
		return c
	}
	return int(a.Branch) - int(b.Branch)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Regions returns a copy of the ordered regions.
func (g *Gut) Regions() []Region {
	return slices.Clone(g.regions)
}

// Landmarks returns a copy of the ordered landmarks.
func (g *Gut) Landmarks() []Landmark {
	return slices.Clone(g.landmarks)
}

// Entities returns regions and landmarks as one list ordered by start.
func (g *Gut) Entities() []Entity {
	out := make([]Entity, 0, len(g.regions)+len(g.landmarks))
	for _, r := range g.regions {
		out = append(out, r)
	}
	for _, l := range g.landmarks {
		out = append(out, l)
	}
	slices.SortStableFunc(out, func(a, b Entity) int {
		return compareFloat(a.Common().StartPos, b.Common().StartPos)
	})
	return out
}

// Region returns the region at index i.
func (g *Gut) Region(i int) Region {
	return g.regions[i]
}

// RegionCount returns the number of regions.
func (g *Gut) RegionCount() int {
	return len(g.regions)
}

// IsSubModel reports whether g is a branch view of a larger model.
func (g *Gut) IsSubModel() bool {
	return g.sub
}

// Branch returns the branch of a sub-model. ok is false for a full model.
func (g *Gut) Branch() (b Branch, ok bool) {
	return g.branch, g.sub
}

// StartPos returns the smallest region start.
func (g *Gut) StartPos() float64 {
	if len(g.regions) == 0 {
		return 0
	}
	start := g.regions[0].StartPos
	for _, r := range g.regions[1:] {
		start = math.Min(start, r.StartPos)
	}
	return start
}

// EndPos returns the largest region end.
func (g *Gut) EndPos() float64 {
	if len(g.regions) == 0 {
		return 0
	}
	end := g.regions[0].EndPos
	for _, r := range g.regions[1:] {
		end = math.Max(end, r.EndPos)
	}
	return end
}

// Length returns EndPos minus StartPos.
func (g *Gut) Length() float64 {
	return g.EndPos() - g.StartPos()
}

// HasBranch reports whether any region belongs to branch b.
func (g *Gut) HasBranch(b Branch) bool {
	for _, r := range g.regions {
		if r.Branch == b {
			return true
		}
	}
	return false
}

// BranchStart returns the smallest start of the regions tagged b, or
// StartPos when there are none.
func (g *Gut) BranchStart(b Branch) float64 {
	start, found := 0.0, false
	for _, r := range g.regions {
		if r.Branch != b {
			continue
		}
		if !found || r.StartPos < start {
			start, found = r.StartPos, true
		}
	}
	if !found {
		return g.StartPos()
	}
	return start
}

// BranchEnd returns the largest end of the regions tagged b, or EndPos when
// there are none.
func (g *Gut) BranchEnd(b Branch) float64 {
	end, found := 0.0, false
	for _, r := range g.regions {
		if r.Branch != b {
			continue
		}
		if !found || r.EndPos > end {
			end, found = r.EndPos, true
		}
	}
	if !found {
		return g.EndPos()
	}
	return end
}

// BranchLength returns the extent covered by branch b.
func (g *Gut) BranchLength(b Branch) float64 {
	return g.BranchEnd(b) - g.BranchStart(b)
}

// FindRegionIndex returns the index of the first region of branch b that
// contains pos, or -1. BranchBoth matches any branch, so boundaries shared by
// two branches resolve to branch 0.
func (g *Gut) FindRegionIndex(pos float64, b Branch) int {
	for i, r := range g.regions {
		if r.Branch.Includes(b) && r.Contains(pos) {
			return i
		}
	}
	return -1
}

// FindRegions returns the region index containing pos on each branch, -1
// where a branch has none.
func (g *Gut) FindRegions(pos float64) (main, ext int) {
	return g.FindRegionIndex(pos, BranchMain), g.FindRegionIndex(pos, BranchExt)
}

// ClosestRegionPos returns pos when it falls inside a region of branch b,
// otherwise the nearest region boundary of that branch.
func (g *Gut) ClosestRegionPos(pos float64, b Branch) float64 {
	best, bestDist := pos, math.Inf(1)
	for _, r := range g.regions {
		if !r.Branch.Includes(b) {
			continue
		}
		if r.Contains(pos) {
			return pos
		}
		for _, edge := range []float64{r.StartPos, r.EndPos} {
			if d := math.Abs(edge - pos); d < bestDist {
				best, bestDist = edge, d
			}
		}
	}
	return best
}

// RelativePosition expresses pos as a region name and a percentage into that
// region.
func (g *Gut) RelativePosition(pos float64, b Branch) (name string, percent float64, ok bool) {
	i := g.FindRegionIndex(pos, b)
	if i < 0 {
		return "", 0, false
	}
	r := g.regions[i]
	if r.Size() <= 0 {
		return r.Name, 0, true
	}
	return r.Name, math.Round((pos - r.StartPos) / r.Size() * 100), true
}

// SubModel returns the memoized view of branch b. Only the regions of b are
// copied, so the extent of the view is the branch extent; landmarks of b or of
// both branches come along. With a non-nil
// origin all positions are shifted so that the branch starts there. Returns
// nil when the branch has no regions.
func (g *Gut) SubModel(b Branch, origin *float64) *Gut {
	key := subKey{branch: b}
	if origin != nil {
		key.hasOrigin, key.origin = true, *origin
	}
	if s, ok := g.subModels[key]; ok {
		return s
	}

	var regions []Region
	for _, r := range g.regions {
		if r.Branch == b {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		return nil
	}
	slices.SortStableFunc(regions, func(a, c Region) int {
		return compareFloat(a.StartPos, c.StartPos)
	})

	var landmarks []Landmark
	for _, l := range g.landmarks {
		if l.Branch == b || l.Branch == BranchBoth {
			landmarks = append(landmarks, l)
		}
	}

	d := 0.0
	if origin != nil {
		d = *origin - regions[0].StartPos
	}

	s := &Gut{
		Info:      g.Info,
		regions:   shift(regions, d),
		landmarks: shift(landmarks, d),
		sub:       true,
		branch:    b,
		offset:    g.offset + d,
		markers:   g.markers,
		subModels: make(map[subKey]*Gut),
	}
	g.subModels[key] = s
	return s
}

// Offset returns the shift applied to full-model positions in this view.
func (g *Gut) Offset() float64 {
	return g.offset
}

// Validate checks that the model has regions, every region has a positive
// size and regions of the same branch do not overlap.
func (g *Gut) Validate() error {
	if len(g.regions) == 0 {
		return ErrNoRegions
	}
	for i, r := range g.regions {
		if math.IsNaN(r.StartPos) || math.IsNaN(r.EndPos) || r.EndPos <= r.StartPos {
			return fmt.Errorf("region %q: invalid extent [%v, %v]", r.Name, r.StartPos, r.EndPos)
		}
		if i > 0 {
			prev := g.regions[i-1]
			if prev.Branch == r.Branch && r.StartPos < prev.EndPos {
				return fmt.Errorf("region %q overlaps %q on branch %s", r.Name, prev.Name, r.Branch)
			}
		}
	}
	return nil
}
