// Package theme holds the colour palettes shared by the terminal front-end
// and the PNG exporter. Colours are hex strings so both lipgloss and gg can
// use them.
package theme

import (
	"fmt"
	"slices"
)

// Palette is the set of colours of one theme.
type Palette struct {
	Name       string
	Background string
	Title      string
	Slider     string
	Zoom       string
	Gut        string
	GutExt     string
	Border     string
	Roi        string
	RoiBorder  string
	Cursor     string
	Landmark   string
	Marker     string
	Text       string
	Subtle     string
}

const DefaultName = "blue"

var palettes = []Palette{
	{
		Name:       "blue",
		Background: "#646890",
		Title:      "#EAE8FF",
		Slider:     "#D2CFDF",
		Zoom:       "#EEE9FF",
		Gut:        "#BBBBBB",
		GutExt:     "#D4BB5C",
		Border:     "#000000",
		Roi:        "#FFFFFF",
		RoiBorder:  "#FF4000",
		Cursor:     "#5555AA",
		Landmark:   "#C5B5B2",
		Marker:     "#E03C31",
		Text:       "#1A1A2E",
		Subtle:     "#6C6C8A",
	},
	{
		Name:       "neutral",
		Background: "#605555",
		Title:      "#AEABBD",
		Slider:     "#F6F4FF",
		Zoom:       "#B8B4C8",
		Gut:        "#AAAAAA",
		GutExt:     "#C9A93A",
		Border:     "#000000",
		Roi:        "#FFFFFF",
		RoiBorder:  "#FF4000",
		Cursor:     "#5555AA",
		Landmark:   "#C5B5B2",
		Marker:     "#C0392B",
		Text:       "#222222",
		Subtle:     "#777777",
	},
	{
		Name:       "dark",
		Background: "#1E1E24",
		Title:      "#3A3A48",
		Slider:     "#2B2B36",
		Zoom:       "#33334A",
		Gut:        "#8A8A9A",
		GutExt:     "#A88914",
		Border:     "#DDDDDD",
		Roi:        "#F0F0F0",
		RoiBorder:  "#FF6A33",
		Cursor:     "#AAAAFF",
		Landmark:   "#9E8F8C",
		Marker:     "#FF5C5C",
		Text:       "#E6E6F0",
		Subtle:     "#8888A0",
	},
}

// Names lists the themes in cycling order.
func Names() []string {
	out := make([]string, len(palettes))
	for i, p := range palettes {
		out[i] = p.Name
	}
	return out
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	return slices.ContainsFunc(palettes, func(p Palette) bool { return p.Name == name })
}

// Get returns the palette called name.
func Get(name string) (Palette, error) {
	for _, p := range palettes {
		if p.Name == name {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("unknown theme %q", name)
}

// MustGet returns the palette called name, or the default one.
func MustGet(name string) Palette {
	if p, err := Get(name); err == nil {
		return p
	}
	return palettes[0]
}

// Next returns the theme after name, wrapping around.
func Next(name string) string {
	i := slices.IndexFunc(palettes, func(p Palette) bool { return p.Name == name })
	return palettes[(i+1)%len(palettes)].Name
}
