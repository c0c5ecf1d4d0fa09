package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/gut"
)

// DialogKind selects what a submitted dialog does.
type DialogKind int

const (
	DialogRoi DialogKind = iota
	DialogMarker
	DialogSaveSet
)

// DialogState encapsulates the input dialog state
type DialogState struct {
	mu sync.RWMutex

	kind    DialogKind
	title   string
	labels  []string
	fields  []textinput.Model
	focused int
	err     string

	// Target of ROI and marker dialogs
	branch   gut.Branch
	position float64
	inZoom   bool
}

// NewDialogState creates a new dialog state
func NewDialogState() *DialogState {
	return &DialogState{}
}

// Open replaces the dialog with one field per label, prefilled with values.
func (s *DialogState) Open(kind DialogKind, title string, labels, values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = kind
	s.title = title
	s.labels = labels
	s.fields = make([]textinput.Model, len(labels))
	for i := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.Width = 30
		if i < len(values) {
			ti.SetValue(values[i])
			ti.CursorEnd()
		}
		s.fields[i] = ti
	}
	s.focused = 0
	s.err = ""
	if len(s.fields) > 0 {
		s.fields[0].Focus()
	}
}

// SetTarget records the branch and position the dialog applies to.
func (s *DialogState) SetTarget(branch gut.Branch, position float64, inZoom bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branch = branch
	s.position = position
	s.inZoom = inZoom
}

// Target returns the branch and position the dialog applies to.
func (s *DialogState) Target() (branch gut.Branch, position float64, inZoom bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branch, s.position, s.inZoom
}

func (s *DialogState) Kind() DialogKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

func (s *DialogState) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

func (s *DialogState) Focused() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}

func (s *DialogState) focus(i int) {
	if len(s.fields) == 0 {
		return
	}
	s.fields[s.focused].Blur()
	s.focused = (i + len(s.fields)) % len(s.fields)
	s.fields[s.focused].Focus()
}

// NextField moves the focus down, wrapping around.
func (s *DialogState) NextField() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus(s.focused + 1)
}

// PrevField moves the focus up, wrapping around.
func (s *DialogState) PrevField() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus(s.focused - 1)
}

// Update forwards a key to the focused field.
func (s *DialogState) Update(msg tea.Msg) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	s.fields[s.focused], cmd = s.fields[s.focused].Update(msg)
	s.err = ""
	return cmd
}

// Paste inserts text into the focused field at its cursor.
func (s *DialogState) Paste(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fields) == 0 {
		return
	}
	f := &s.fields[s.focused]
	text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	value := []rune(f.Value())
	pos := min(f.Position(), len(value))
	f.SetValue(string(value[:pos]) + text + string(value[pos:]))
	f.SetCursor(pos + len([]rune(text)))
}

// Values returns the trimmed field values.
func (s *DialogState) Values() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = strings.TrimSpace(f.Value())
	}
	return out
}

// Labels returns the field labels.
func (s *DialogState) Labels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.labels
}

// FieldViews returns the rendered fields.
func (s *DialogState) FieldViews() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.View()
	}
	return out
}

func (s *DialogState) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *DialogState) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Reset closes the dialog
func (s *DialogState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = ""
	s.labels = nil
	s.fields = nil
	s.focused = 0
	s.err = ""
	s.inZoom = false
}

var errEmptyField = errors.New("value required")

// parseNumber reads a finite number from a dialog field.
func parseNumber(label, value string) (float64, error) {
	if value == "" {
		return 0, fmt.Errorf("%s: %w", label, errEmptyField)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", label, value)
	}
	return f, nil
}

// parseRoiValues reads the position, width and cursor fields of the ROI
// dialog. An empty cursor means the window midpoint.
func parseRoiValues(values []string) (pos, width float64, cursor *float64, err error) {
	if len(values) != 3 {
		return 0, 0, nil, fmt.Errorf("expected 3 values, got %d", len(values))
	}
	if pos, err = parseNumber("position", values[0]); err != nil {
		return 0, 0, nil, err
	}
	if width, err = parseNumber("width", values[1]); err != nil {
		return 0, 0, nil, err
	}
	if width <= 0 {
		return 0, 0, nil, fmt.Errorf("width: must be positive")
	}
	if values[2] != "" {
		c, err := parseNumber("cursor", values[2])
		if err != nil {
			return 0, 0, nil, err
		}
		cursor = &c
	}
	return pos, width, cursor, nil
}
