// Package query describes a gut model as plain data for the inspect command
// and applies JMESPath expressions to that description.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jmespath/go-jmespath"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/gutview/internal/gut"
)

// ErrUnknownFormat is returned for an output format other than text, json
// or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

type Summary struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Species     string            `json:"species,omitempty" yaml:"species,omitempty"`
	Owner       string            `json:"owner,omitempty" yaml:"owner,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string            `json:"version,omitempty" yaml:"version,omitempty"`
	Start       float64           `json:"start" yaml:"start"`
	End         float64           `json:"end" yaml:"end"`
	Length      float64           `json:"length" yaml:"length"`
	Branches    []BranchSummary   `json:"branches" yaml:"branches"`
	Regions     []RegionSummary   `json:"regions" yaml:"regions"`
	Landmarks   []LandmarkSummary `json:"landmarks" yaml:"landmarks"`
	Markers     []MarkerSummary   `json:"markers" yaml:"markers"`
}

type BranchSummary struct {
	Branch    string  `json:"branch" yaml:"branch"`
	Start     float64 `json:"start" yaml:"start"`
	End       float64 `json:"end" yaml:"end"`
	Length    float64 `json:"length" yaml:"length"`
	Regions   int     `json:"regions" yaml:"regions"`
	Landmarks int     `json:"landmarks" yaml:"landmarks"`
}

type RegionSummary struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Branch     string   `json:"branch" yaml:"branch"`
	Start      float64  `json:"start" yaml:"start"`
	End        float64  `json:"end" yaml:"end"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"`
	ExternalID string   `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Layers     []string `json:"layers,omitempty" yaml:"layers,omitempty"`
}

type LandmarkSummary struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Title    string  `json:"title" yaml:"title"`
	Branch   string  `json:"branch" yaml:"branch"`
	Type     string  `json:"type" yaml:"type"`
	Position float64 `json:"position" yaml:"position"`
	Start    float64 `json:"start" yaml:"start"`
	End      float64 `json:"end" yaml:"end"`
}

type MarkerSummary struct {
	ID          int     `json:"id" yaml:"id"`
	Position    float64 `json:"position" yaml:"position"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Branch      string  `json:"branch" yaml:"branch"`
}

// Summarize describes g. Markers are those currently attached to g.
func Summarize(g *gut.Gut) Summary {
	s := Summary{
		ID:          g.ID,
		Name:        g.Name,
		Species:     g.Species,
		Owner:       g.Owner,
		Description: g.Description,
		Version:     g.Version,
		Start:       g.StartPos(),
		End:         g.EndPos(),
		Length:      g.Length(),
		Branches:    []BranchSummary{},
		Regions:     []RegionSummary{},
		Landmarks:   []LandmarkSummary{},
		Markers:     []MarkerSummary{},
	}

	for _, b := range []gut.Branch{gut.BranchMain, gut.BranchExt} {
		if !g.HasBranch(b) {
			continue
		}
		bs := BranchSummary{
			Branch: b.String(),
			Start:  g.BranchStart(b),
			End:    g.BranchEnd(b),
			Length: g.BranchLength(b),
		}
		for _, r := range g.Regions() {
			if r.Branch == b {
				bs.Regions++
			}
		}
		for _, l := range g.Landmarks() {
			if l.Branch == b || l.Branch == gut.BranchBoth {
				bs.Landmarks++
			}
		}
		s.Branches = append(s.Branches, bs)
	}

	for _, r := range g.Regions() {
		s.Regions = append(s.Regions, RegionSummary{
			ID:         r.ID,
			Name:       r.Name,
			Branch:     r.Branch.String(),
			Start:      r.StartPos,
			End:        r.EndPos,
			Color:      r.Color,
			ExternalID: r.ExternalID,
			Layers:     r.Layers,
		})
	}
	for _, l := range g.Landmarks() {
		s.Landmarks = append(s.Landmarks, LandmarkSummary{
			ID:       l.ID,
			Name:     l.Name,
			Title:    l.DisplayTitle(),
			Branch:   l.Branch.String(),
			Type:     string(l.Type),
			Position: l.Position,
			Start:    l.StartPos,
			End:      l.EndPos,
		})
	}
	for _, m := range g.Markers() {
		s.Markers = append(s.Markers, MarkerSummary{
			ID:          m.ID,
			Position:    m.Position,
			Description: m.Description,
			Branch:      m.Branch.String(),
		})
	}
	return s
}

// Search applies a JMESPath expression to s. The result is made of the
// generic values produced by encoding/json (maps, slices, float64, string).
func Search(s Summary, expression string) (any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	result, err := jp.Search(data)
	if err != nil {
		return nil, fmt.Errorf("JMESPath search failed: %w", err)
	}
	return result, nil
}

// IsValidExpression reports whether expression compiles.
func IsValidExpression(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// Format encodes v as json, yaml or text. Text is a table view for a
// Summary and falls back to JSON for query results.
func Format(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "text":
		if s, ok := v.(Summary); ok {
			return []byte(Text(s)), nil
		}
		if str, ok := v.(string); ok {
			return []byte(str + "\n"), nil
		}
		return formatJSON(v)
	case "json":
		return formatJSON(v)
	case "yaml", "yml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func formatJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(out, '\n'), nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Text renders s as a header followed by branch and region tables.
func Text(s Summary) string {
	var b strings.Builder
	name := s.Name
	if name == "" {
		name = s.ID
	}
	fmt.Fprintf(&b, "%s (%s)\n", name, s.ID)
	if s.Species != "" {
		fmt.Fprintf(&b, "Species:   %s\n", s.Species)
	}
	if s.Version != "" {
		fmt.Fprintf(&b, "Version:   %s\n", s.Version)
	}
	fmt.Fprintf(&b, "Extent:    %g - %g (%g)\n", s.Start, s.End, s.Length)
	fmt.Fprintf(&b, "Landmarks: %d\n", len(s.Landmarks))
	fmt.Fprintf(&b, "Markers:   %d\n\n", len(s.Markers))

	branches := newTable("Branch", "Start", "End", "Length", "Regions", "Landmarks")
	for _, br := range s.Branches {
		branches.Row(br.Branch, num(br.Start), num(br.End), num(br.Length),
			fmt.Sprint(br.Regions), fmt.Sprint(br.Landmarks))
	}
	b.WriteString(branches.String())
	b.WriteString("\n\n")

	regions := newTable("ID", "Name", "Branch", "Start", "End")
	for _, r := range s.Regions {
		regions.Row(r.ID, r.Name, r.Branch, num(r.Start), num(r.End))
	}
	b.WriteString(regions.String())
	b.WriteString("\n")
	return b.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}

// Highlight writes src to w with terminal colours for the given format.
func Highlight(w io.Writer, src []byte, format string) error {
	lexer := strings.ToLower(format)
	if lexer == "yml" {
		lexer = "yaml"
	}
	if err := quick.Highlight(w, string(src), lexer, "terminal256", "monokai"); err != nil {
		return fmt.Errorf("failed to highlight output: %w", err)
	}
	return nil
}

// UseColor reports whether output to f should be coloured: f is a terminal
// and NO_COLOR is unset.
func UseColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
