package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/gutview/internal/annotation"
)

// SearchState encapsulates the annotation search input and its matches
type SearchState struct {
	mu sync.RWMutex

	input   textinput.Model
	results []annotation.Annotation
	index   int
}

// NewSearchState creates a new search state
func NewSearchState() *SearchState {
	ti := textinput.New()
	ti.Placeholder = "region or landmark"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return &SearchState{input: ti}
}

// Start clears the query and focuses the input.
func (s *SearchState) Start() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.SetValue("")
	s.results = nil
	s.index = 0
	return s.input.Focus()
}

// Update forwards a key to the input and reruns the search with find.
func (s *SearchState) Update(msg tea.Msg, find func(string) []annotation.Annotation) tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if q := s.input.Value(); q != before {
		s.results = find(q)
		s.index = 0
	}
	return cmd
}

// SetQuery replaces the query and reruns the search.
func (s *SearchState) SetQuery(q string, find func(string) []annotation.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.SetValue(q)
	s.input.CursorEnd()
	s.results = find(q)
	s.index = 0
}

func (s *SearchState) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input.Value()
}

func (s *SearchState) InputView() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input.View()
}

func (s *SearchState) Results() []annotation.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results
}

func (s *SearchState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Move changes the selected match by delta, clamped to the results.
func (s *SearchState) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.results) == 0 {
		s.index = 0
		return
	}
	s.index = max(0, min(len(s.results)-1, s.index+delta))
}

// Selected returns the highlighted match.
func (s *SearchState) Selected() (annotation.Annotation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index < 0 || s.index >= len(s.results) {
		return annotation.Annotation{}, false
	}
	return s.results[s.index], true
}

// Reset blurs the input and forgets the matches
func (s *SearchState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input.Blur()
	s.input.SetValue("")
	s.results = nil
	s.index = 0
}
