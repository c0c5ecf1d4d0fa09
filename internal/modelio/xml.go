package modelio

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/studiowebux/gutview/internal/gut"
)

type xmlRegion struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Description string `xml:"description,attr"`
	Uberon      string `xml:"uberon,attr"`
	Color       string `xml:"color,attr"`
	Start       string `xml:"start,attr"`
	End         string `xml:"end,attr"`
	Branch      string `xml:"branch,attr"`
	Layers      string `xml:"layers,attr"`
}

type xmlLandmark struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Title       string `xml:"title,attr"`
	Description string `xml:"description,attr"`
	Uberon      string `xml:"uberon,attr"`
	Color       string `xml:"color,attr"`
	Pos         string `xml:"pos,attr"`
	Start       string `xml:"start,attr"`
	End         string `xml:"end,attr"`
	Branch      string `xml:"branch,attr"`
	Type        string `xml:"type,attr"`
}

type xmlModel struct {
	XMLName     xml.Name      `xml:"model"`
	ID          string        `xml:"id,attr"`
	Name        string        `xml:"name,attr"`
	Species     string        `xml:"species,attr"`
	Owner       string        `xml:"owner,attr"`
	Description string        `xml:"description,attr"`
	Version     string        `xml:"version,attr"`
	Regions     []xmlRegion   `xml:"regions>region"`
	Landmarks   []xmlLandmark `xml:"landmarks>landmark"`
}

func parseXML(data []byte) (*gut.Gut, error) {
	var doc xmlModel
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	g := gut.New(gut.Info{
		ID:          doc.ID,
		Name:        doc.Name,
		Species:     doc.Species,
		Description: doc.Description,
		Owner:       doc.Owner,
		Version:     doc.Version,
	})

	for _, r := range doc.Regions {
		region, err := r.region()
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", r.ID, err)
		}
		g.AddRegion(region)
	}
	for _, l := range doc.Landmarks {
		landmark, err := l.landmark()
		if err != nil {
			return nil, fmt.Errorf("landmark %s: %w", l.ID, err)
		}
		g.AddLandmark(landmark)
	}
	return g, nil
}

func (r xmlRegion) region() (gut.Region, error) {
	start, err := parseFloat("start", r.Start)
	if err != nil {
		return gut.Region{}, err
	}
	end, err := parseFloat("end", r.End)
	if err != nil {
		return gut.Region{}, err
	}
	branch, err := parseBranch(r.Branch)
	if err != nil {
		return gut.Region{}, err
	}

	name := r.Name
	if name == "" {
		name = r.ID
	}
	return gut.Region{
		Span: gut.Span{
			ID:          r.ID,
			Name:        name,
			Description: r.Description,
			Color:       normalizeColor(r.Color),
			ExternalID:  r.Uberon,
			StartPos:    start,
			EndPos:      end,
			Branch:      branch,
		},
		Layers: splitList(r.Layers),
	}, nil
}

func (l xmlLandmark) landmark() (gut.Landmark, error) {
	var (
		pos, start, end float64
		err             error
	)
	hasPos := l.Pos != ""
	if hasPos {
		if pos, err = parseFloat("pos", l.Pos); err != nil {
			return gut.Landmark{}, err
		}
	}
	switch {
	case l.Start != "":
		if start, err = parseFloat("start", l.Start); err != nil {
			return gut.Landmark{}, err
		}
	case hasPos:
		start = pos
	default:
		return gut.Landmark{}, fmt.Errorf("missing pos or start")
	}
	switch {
	case l.End != "":
		if end, err = parseFloat("end", l.End); err != nil {
			return gut.Landmark{}, err
		}
	case hasPos:
		end = pos
	default:
		return gut.Landmark{}, fmt.Errorf("missing pos or end")
	}
	if !hasPos {
		pos = (start + end) / 2
	}
	branch, err := parseBranch(l.Branch)
	if err != nil {
		return gut.Landmark{}, err
	}

	name, title := l.Name, l.Title
	if name == "" {
		name = title
	}
	if title == "" {
		title = name
	}
	return gut.Landmark{
		Span: gut.Span{
			ID:          l.ID,
			Name:        name,
			Description: l.Description,
			Color:       normalizeColor(l.Color),
			ExternalID:  l.Uberon,
			StartPos:    start,
			EndPos:      end,
			Branch:      branch,
		},
		Title:    title,
		Position: pos,
		Type:     landmarkType(name, l.Type),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
