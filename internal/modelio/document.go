package modelio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/gutview/internal/gut"
)

// version accepts both strings and numbers.
type version string

func (v *version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = version(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("version must be a string or a number: %w", err)
	}
	*v = version(n.String())
	return nil
}

func (v *version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: version must be a scalar", node.Line)
	}
	*v = version(node.Value)
	return nil
}

type anatomyDoc struct {
	ID              string `json:"id" yaml:"id"`
	AbbreviatedName string `json:"abbreviated_name" yaml:"abbreviated_name"`
	Text            string `json:"text" yaml:"text"`
	Color           string `json:"color" yaml:"color"`
	ExternalID      string `json:"external_id" yaml:"external_id"`
}

type entityDoc struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Anatomy       []anatomyDoc `json:"anatomy" yaml:"anatomy"`
	Paths         []string     `json:"paths" yaml:"paths"`
	Color         string       `json:"color" yaml:"color"`
	StartPosition *float64     `json:"start_position" yaml:"start_position"`
	EndPosition   *float64     `json:"end_position" yaml:"end_position"`
	Position      []float64    `json:"position" yaml:"position"`
	Layers        []string     `json:"layers" yaml:"layers"`
	Type          string       `json:"type" yaml:"type"`
}

type modelDoc struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Species     string      `json:"species" yaml:"species"`
	Owner       string      `json:"owner" yaml:"owner"`
	Description string      `json:"description" yaml:"description"`
	Version     version     `json:"version" yaml:"version"`
	SubVersion  version     `json:"sub_version" yaml:"sub_version"`
	Regions     []entityDoc `json:"regions" yaml:"regions"`
	Landmarks   []entityDoc `json:"landmarks" yaml:"landmarks"`
}

func parseJSON(data []byte) (*gut.Gut, error) {
	var doc modelDoc
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return doc.build()
}

func parseYAML(data []byte) (*gut.Gut, error) {
	var doc modelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return doc.build()
}

// span fills the fields shared by regions and landmarks. The first anatomy
// record names the entity; the entity colour overrides the anatomy colour.
func (e entityDoc) span() gut.Span {
	s := gut.Span{ID: e.ID, Name: e.Name, Branch: branchFromPaths(e.Paths)}
	if len(e.Anatomy) > 0 {
		a := e.Anatomy[0]
		if a.AbbreviatedName != "" {
			s.Name = a.AbbreviatedName
		}
		s.Description = a.Text
		s.Color = a.Color
		s.ExternalID = a.ExternalID
	}
	if s.Name == "" {
		s.Name = e.ID
	}
	if e.Color != "" {
		s.Color = e.Color
	}
	s.Color = normalizeColor(s.Color)
	return s
}

// extent returns start, end and position. Missing start or end fall back to
// the position; a missing position is the midpoint.
func (e entityDoc) extent() (start, end, pos float64, ok bool) {
	var p *float64
	if len(e.Position) > 0 {
		p = &e.Position[0]
	}
	switch {
	case e.StartPosition != nil:
		start = *e.StartPosition
	case p != nil:
		start = *p
	default:
		return 0, 0, 0, false
	}
	switch {
	case e.EndPosition != nil:
		end = *e.EndPosition
	case p != nil:
		end = *p
	default:
		return 0, 0, 0, false
	}
	pos = (start + end) / 2
	if p != nil {
		pos = *p
	}
	return start, end, pos, true
}

func (d modelDoc) build() (*gut.Gut, error) {
	v := string(d.Version)
	if d.SubVersion != "" {
		v += "." + string(d.SubVersion)
	}
	g := gut.New(gut.Info{
		ID:          d.ID,
		Name:        d.Name,
		Species:     d.Species,
		Description: d.Description,
		Owner:       d.Owner,
		Version:     v,
	})

	for i, e := range d.Regions {
		start, end, _, ok := e.extent()
		if !ok {
			return nil, fmt.Errorf("region %d (%s): missing start_position or end_position", i, e.ID)
		}
		s := e.span()
		s.StartPos, s.EndPos = start, end
		g.AddRegion(gut.Region{Span: s, Layers: e.Layers})
	}

	for i, e := range d.Landmarks {
		start, end, pos, ok := e.extent()
		if !ok {
			return nil, fmt.Errorf("landmark %d (%s): missing position", i, e.ID)
		}
		s := e.span()
		s.StartPos, s.EndPos = start, end
		g.AddLandmark(gut.Landmark{
			Span:     s,
			Title:    s.Name,
			Position: pos,
			Type:     landmarkType(s.Name, e.Type),
		})
	}
	return g, nil
}

func parseFloat(attr, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", attr, value, err)
	}
	return f, nil
}
