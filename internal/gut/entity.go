package gut

import "fmt"

// Branch identifies an anatomical branch of the gut.
type Branch int

const (
	BranchMain Branch = 0 // colon
	BranchExt  Branch = 1 // ileum
	BranchBoth Branch = 2 // applies to both branches
)

func (b Branch) String() string {
	switch b {
	case BranchMain:
		return "main"
	case BranchExt:
		return "ext"
	case BranchBoth:
		return "both"
	default:
		return fmt.Sprintf("branch(%d)", int(b))
	}
}

// Includes reports whether an entity tagged b belongs to branch other.
func (b Branch) Includes(other Branch) bool {
	return b == other || b == BranchBoth || other == BranchBoth
}

// Span is the record shared by every positioned entity of the model.
type Span struct {
	ID          string
	Name        string
	Description string
	Color       string
	ExternalID  string
	StartPos    float64
	EndPos      float64
	Branch      Branch
}

// Size returns the length covered by the span.
func (s Span) Size() float64 {
	return s.EndPos - s.StartPos
}

// Contains reports whether pos lies inside the span, ends included.
func (s Span) Contains(pos float64) bool {
	return pos >= s.StartPos && pos <= s.EndPos
}

// Intersects reports whether the span overlaps [start, end].
func (s Span) Intersects(start, end float64) bool {
	return s.StartPos <= end && s.EndPos >= start
}

// Kind distinguishes the variants of Entity.
type Kind int

const (
	KindRegion Kind = iota
	KindLandmark
)

func (k Kind) String() string {
	if k == KindLandmark {
		return "Landmark"
	}
	return "Region"
}

// Entity is either a Region or a Landmark.
type Entity interface {
	Common() Span
	Kind() Kind
	shifted(d float64) Entity
}

// Region is a contiguous section of one branch.
type Region struct {
	Span
	Layers []string
}

func (r Region) Common() Span { return r.Span }
func (r Region) Kind() Kind   { return KindRegion }

func (r Region) shifted(d float64) Entity {
	r.StartPos += d
	r.EndPos += d
	r.Layers = append([]string(nil), r.Layers...)
	return r
}

// LandmarkType classifies landmarks. Pseudo landmarks take part in layout
// but are not listed as annotations.
type LandmarkType string

const (
	LandmarkNormal LandmarkType = "normal"
	LandmarkPseudo LandmarkType = "pseudo"
)

// Landmark is a named point (or short span) along a branch.
type Landmark struct {
	Span
	Title    string
	Position float64
	Type     LandmarkType
}

func (l Landmark) Common() Span { return l.Span }
func (l Landmark) Kind() Kind   { return KindLandmark }

func (l Landmark) shifted(d float64) Entity {
	l.StartPos += d
	l.EndPos += d
	l.Position += d
	return l
}

// IsPseudo reports whether the landmark is hidden from annotation lists.
func (l Landmark) IsPseudo() bool {
	return l.Type == LandmarkPseudo
}

// DisplayTitle returns the title, falling back to the name.
func (l Landmark) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.Name
}

// shift returns copies of items moved by d.
func shift[E Entity](items []E, d float64) []E {
	out := make([]E, len(items))
	for i, item := range items {
		out[i] = item.shifted(d).(E)
	}
	return out
}

// Marker is a user annotation at a single position.
type Marker struct {
	ID          int
	Position    float64
	Description string
	Branch      Branch
}
