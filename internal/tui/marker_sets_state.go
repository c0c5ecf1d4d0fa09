package tui

import (
	"slices"
	"sync"

	"github.com/studiowebux/gutview/internal/markerstore"
)

// MarkerSetState holds the saved marker sets shown by the picker
type MarkerSetState struct {
	mu sync.RWMutex

	sets  []markerstore.Summary
	index int
}

// NewMarkerSetState creates a new marker set state
func NewMarkerSetState() *MarkerSetState {
	return &MarkerSetState{}
}

// SetSets replaces the listed sets and selects the first.
func (s *MarkerSetState) SetSets(sets []markerstore.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = sets
	s.index = 0
}

func (s *MarkerSetState) Sets() []markerstore.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}

func (s *MarkerSetState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Move changes the selection by delta, clamped to the list.
func (s *MarkerSetState) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sets) == 0 {
		return
	}
	s.index = max(0, min(len(s.sets)-1, s.index+delta))
}

// Selected returns the highlighted set.
func (s *MarkerSetState) Selected() (markerstore.Summary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index < 0 || s.index >= len(s.sets) {
		return markerstore.Summary{}, false
	}
	return s.sets[s.index], true
}

// Remove drops a set from the list after it was deleted.
func (s *MarkerSetState) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = slices.DeleteFunc(s.sets, func(sum markerstore.Summary) bool { return sum.Name == name })
	if s.index >= len(s.sets) {
		s.index = max(0, len(s.sets)-1)
	}
}

// confirmAction is what a confirmed prompt does.
type confirmAction int

const (
	confirmClearMarkers confirmAction = iota
	confirmDeleteSet
)

// confirmState is the pending yes/no prompt.
type confirmState struct {
	action  confirmAction
	message string
	name    string
	back    Mode
}
