// Package modelio reads gut models from files.
//
// The JSON layout lists regions and landmarks, each tagged with anatomy
// records and the paths they belong to. JSON files may carry comments
// (JSONC). YAML files use the same keys. XML files use a flat attribute
// form under <model><regions> and <model><landmarks>.
package modelio

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/gutview/internal/gut"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known
// model format.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Format is a model file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// ExtensionPath is the path id marking the ileum branch.
const ExtensionPath = "GUT_ATLAS_PAT:20"

//go:embed demo.jsonc
var demoModel []byte

// DetectFormat returns the format for a file name by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads and validates the model at path.
func Load(path string) (*gut.Gut, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	g, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return g, nil
}

// Parse decodes and validates a model.
func Parse(data []byte, format Format) (*gut.Gut, error) {
	var (
		g   *gut.Gut
		err error
	)
	switch format {
	case FormatJSON:
		g, err = parseJSON(data)
	case FormatYAML:
		g, err = parseYAML(data)
	case FormatXML:
		g, err = parseXML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return g, nil
}

// Demo returns the built-in human gut model.
func Demo() (*gut.Gut, error) {
	g, err := Parse(demoModel, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to load demo model: %w", err)
	}
	return g, nil
}

// LoadOrDemo loads path, or the demo model when path is empty.
func LoadOrDemo(path string) (*gut.Gut, error) {
	if path == "" {
		return Demo()
	}
	return Load(path)
}

// branchFromPaths maps the path list of an entity to a branch: no path is
// the colon, several paths are both branches.
func branchFromPaths(paths []string) gut.Branch {
	switch {
	case len(paths) == 0:
		return gut.BranchMain
	case len(paths) > 1:
		return gut.BranchBoth
	case strings.EqualFold(strings.TrimSpace(paths[0]), ExtensionPath):
		return gut.BranchExt
	}
	return gut.BranchMain
}

// parseBranch reads a branch written as an index or a name.
func parseBranch(s string) (gut.Branch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "main", "colon":
		return gut.BranchMain, nil
	case "1", "ext", "ileum":
		return gut.BranchExt, nil
	case "2", "both":
		return gut.BranchBoth, nil
	}
	return 0, fmt.Errorf("unknown branch %q", s)
}

func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if strings.HasPrefix(strings.ToLower(c), "0x") {
		return "#" + c[2:]
	}
	return c
}

func landmarkType(name, declared string) gut.LandmarkType {
	if strings.EqualFold(name, "pil") || strings.EqualFold(declared, string(gut.LandmarkPseudo)) {
		return gut.LandmarkPseudo
	}
	return gut.LandmarkNormal
}
