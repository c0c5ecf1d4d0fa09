package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/bus"
	"github.com/studiowebux/gutview/internal/events"
	"github.com/studiowebux/gutview/internal/gut"
	"github.com/studiowebux/gutview/internal/keybinds"
	"github.com/studiowebux/gutview/internal/markerstore"
	"github.com/studiowebux/gutview/internal/settings"
	"github.com/studiowebux/gutview/internal/viewer"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal     Mode = iota
	ModeSearch          // Fuzzy search over annotations
	ModeDialog          // ROI, marker or set name input
	ModeMarkerSets      // Saved marker set picker
	ModeHelp            // Key binding list
	ModeConfirm         // Yes/no prompt
)

// Focus is the main view panel receiving keys.
type Focus int

const (
	FocusSliders Focus = iota
	FocusZoom
	FocusAnnotations
)

func (f Focus) String() string {
	switch f {
	case FocusZoom:
		return "zoom"
	case FocusAnnotations:
		return "annotations"
	}
	return "sliders"
}

// Model is the Bubble Tea model of the viewer.
type Model struct {
	viewer       *viewer.Viewer
	keybinds     *keybinds.Registry
	markers      *markerstore.Manager
	logger       *slog.Logger
	now          func() time.Time
	settingsPath string

	// Window dimensions
	width  int
	height int

	mode  Mode
	focus Focus

	strips *stripCache
	drag   *dragState
	hover  hoverState

	// Annotation list selection, an index into the visible items
	annotationIndex int

	dialog   *DialogState
	search   *SearchState
	sets     *MarkerSetState
	confirm  *confirmState
	helpView viewport.Model

	statusMsg string
	errorMsg  string

	subs []bus.Subscription
}

// Options configures a Model.
type Options struct {
	Model    *gut.Gut
	Settings settings.Settings
	Logger   *slog.Logger
	Keybinds *keybinds.Registry
	// Markers stores named marker sets; nil disables saving and loading.
	Markers *markerstore.Manager
	// SettingsPath receives the preferences on quit when set.
	SettingsPath string
	Now          func() time.Time
}

// New creates a TUI model around a new viewer.
func New(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	ctx := viewer.NewContext(opts.Settings, logger)
	ctx.Now = now
	v, err := viewer.New(ctx, opts.Model, 80-BorderWidth)
	if err != nil {
		return nil, err
	}

	m := &Model{
		viewer:       v,
		keybinds:     registry,
		markers:      opts.Markers,
		logger:       logger,
		now:          now,
		settingsPath: opts.SettingsPath,
		mode:         ModeNormal,
		focus:        FocusSliders,
		strips:       newStripCache(StripCacheSize),
		dialog:       NewDialogState(),
		search:       NewSearchState(),
		sets:         NewMarkerSetState(),
		confirm:      &confirmState{},
		helpView:     viewport.New(80, 20),
	}
	m.subscribe()
	return m, nil
}

// subscribe routes the viewer requests that need a modal view.
func (m *Model) subscribe() {
	b := m.viewer.Bus()
	m.subs = append(m.subs,
		bus.Subscribe(b, events.RoiDialogRequested, func(e events.RoiDialog) {
			m.openRoiDialog(e)
		}),
		bus.Subscribe(b, events.MarkerRequested, func(e events.MarkerRequest) {
			m.openMarkerDialog(e.Position, e.Branch, true)
		}),
		bus.Subscribe(b, events.BranchChanged, func(events.BranchChange) {
			m.annotationIndex = 0
		}),
		bus.Subscribe(b, events.FullViewToggled, func(e events.FullViewToggle) {
			if !e.Enabled {
				m.setFocus(FocusSliders)
			}
		}),
		bus.Subscribe(b, events.ModeChanged, func(e events.ModeChange) {
			m.statusMsg = fmt.Sprintf("Display mode: %s", e.To)
		}),
	)
}

// Viewer returns the wrapped viewer.
func (m *Model) Viewer() *viewer.Viewer {
	return m.viewer
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cleanup saves the preferences and closes the marker database.
func (m *Model) Cleanup() {
	if m.settingsPath != "" {
		if err := settings.Save(m.settingsPath, m.viewer.Settings()); err != nil {
			fmt.Fprintf(os.Stderr, "error saving settings: %v\n", err)
		}
	}
	for _, s := range m.subs {
		s.Unsubscribe()
	}
	m.subs = nil
	m.viewer.Close()
	if m.markers != nil {
		if err := m.markers.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing marker database: %v\n", err)
		}
		m.markers = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.mode == ModeNormal {
			cmd = m.handleMouse(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case clickResolveMsg:
		m.viewer.Panel().ResolveClick(msg.seq)

	case markerSetsLoadedMsg:
		m.sets.SetSets(msg.sets)
		m.mode = ModeMarkerSets

	case markerSetLoadedMsg:
		skipped := m.viewer.ReplaceMarkers(msg.set.Markers)
		m.mode = ModeNormal
		status := fmt.Sprintf("Loaded %d markers from %q", len(msg.set.Markers)-skipped, msg.set.Name)
		if skipped > 0 {
			status += fmt.Sprintf(" (%d outside the model)", skipped)
		}
		cmd = m.setStatusMessage(status)

	case markerSetDeletedMsg:
		m.sets.Remove(msg.name)
		cmd = m.setStatusMessage(fmt.Sprintf("Deleted marker set %q", msg.name))

	case statusMsg:
		cmd = m.setStatusMessage(string(msg))

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
	}

	return m, cmd
}

// resize lays the panels out for a new terminal size.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewer.Resize(float64(m.contentWidth()))
	m.helpView.Width = max(10, width-ModalWidthMargin)
	m.helpView.Height = max(3, height-ModalOverhead)
	m.updateHelpView()
}

func (m *Model) contentWidth() int {
	return max(MinContentWidth, m.width-BorderWidth)
}

// View renders the current state
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeSearch:
		return m.renderSearch()
	case ModeDialog:
		return m.renderDialog()
	case ModeMarkerSets:
		return m.renderMarkerSets()
	case ModeConfirm:
		return m.renderConfirm()
	}
	return m.renderMain()
}

type clickResolveMsg struct {
	seq int
}

type markerSetsLoadedMsg struct {
	sets []markerstore.Summary
}

type markerSetLoadedMsg struct {
	set markerstore.Set
}

type markerSetDeletedMsg struct {
	name string
}

type statusMsg string
type errorMsg string
type clearStatusMsg struct{}
type clearErrorMsg struct{}

func shorten(msg string) string {
	if len([]rune(msg)) > MaxStatusWidth {
		return truncate(msg, MaxStatusWidth)
	}
	return msg
}

// Helper methods for setting messages with a timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = shorten(msg)
	m.errorMsg = ""
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.errorMsg = shorten(msg)
	m.logger.Debug("error shown", "message", msg)
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
