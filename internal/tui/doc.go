/*
Package tui implements the terminal front-end of gutview.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: wraps one viewer.Viewer plus the terminal-only state
  - Update: turns key and mouse messages into viewer calls
  - View: draws the slider rows, the zoom row and the annotation list

# Key Components

  - model.go: Model struct, Init/Update/View and bus subscriptions
  - keys.go: keyboard routing through the keybinds registry
  - mouse.go: hit-testing, drags, wheel and single/double clicks
  - render.go: layout and lipgloss drawing
  - strip.go: branch strips, cached per width, direction and theme
  - actions.go: clipboard and marker set side effects

# Layout

One title line, a box with one three-line row per visible branch, then,
when full view is on, a box with the zoom row and a box with the annotation
list. A status bar takes the last line. Terminal columns inside the boxes
are the pixels of the viewer transforms.

Each slider row is:

	main  0-1000          ▾ landmarks and ▼ markers
	█████▓▓▓▓▓████▓▓▓▓▓   regions
	     ▔▔▔▔┃▔▔▔         window and cursor

# Modal System

Modal views (search, input dialogs, marker sets, help, confirmation) take
over the key handling of the main view. Each maps to one keybinds context.
*/
package tui
