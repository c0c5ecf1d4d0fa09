package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Box borders
	BorderWidth  = 2 // Columns consumed by the left and right border
	BorderHeight = 2 // Lines consumed by the top and bottom border

	// Rows
	TitleLines     = 1 // Title bar
	StatusLines    = 1 // Status bar
	SliderRowLines = 3 // Label line, region line, window line
	ZoomRowLines   = 3 // Caption line, region line, cursor line

	// Minimal sizes
	MinAnnotationLines = 3  // Annotation box is dropped below this
	MinContentWidth    = 20 // Narrower terminals are not drawn

	// Modal Dimensions
	ModalWidthMargin  = 6 // m.width - 6
	ModalHeightMargin = 3 // m.height - 3
	ModalOverhead     = 6 // Title (2) + padding (2) + border (2)

	// Input
	WheelPixels     = 3  // Columns of travel per wheel notch
	PanPixels       = 1  // Columns per pan key press
	PanFastPixels   = 10 // Columns per fast pan key press
	CursorStepRatio = 20 // Cursor key step is the window width over this

	// Strip cache
	StripCacheSize = 64

	// Messages
	StatusTimeout  = 4 * time.Second
	MaxStatusWidth = 100
)
