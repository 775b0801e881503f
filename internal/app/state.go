// Package app provides application lifecycle management, state, and events.
package app

import (
	"fmt"
	"sync"

	"keymatrix/internal/layout"
	"keymatrix/internal/matrix"
)

// State holds the application state: the open layout, the annotation
// engine over it, and the event listeners the UI hangs off it.
type State struct {
	mu sync.RWMutex

	// Project
	LayoutPath string
	Modified   bool

	// The open layout and the engine working on it
	Layout    *layout.Layout
	Annotator *matrix.Annotator

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventLayoutLoaded EventType = iota
	EventLayoutSaved
	EventAssignmentsChanged
	EventModified
	EventToolChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with an empty layout.
func NewState() *State {
	s := &State{
		listeners: make(map[EventType][]EventListener),
	}
	s.setLayout(&layout.Layout{})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the layout as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

func (s *State) setLayout(l *layout.Layout) {
	s.Layout = l
	s.Annotator = matrix.NewAnnotator(matrix.NewStore(l))
}

// SetLayout replaces the open layout, e.g. with a detection result.
func (s *State) SetLayout(l *layout.Layout) {
	s.mu.Lock()
	s.LayoutPath = ""
	s.Modified = true
	s.setLayout(l)
	s.mu.Unlock()
	s.Emit(EventLayoutLoaded, "")
}

// LoadLayout loads a layout file from the specified path.
func (s *State) LoadLayout(path string) error {
	l, err := layout.Load(path)
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	s.mu.Lock()
	s.LayoutPath = path
	s.Modified = false
	s.setLayout(l)
	s.mu.Unlock()

	s.Emit(EventLayoutLoaded, path)
	return nil
}

// SaveLayout saves the layout to the specified path.
func (s *State) SaveLayout(path string) error {
	s.mu.RLock()
	l := s.Layout
	s.mu.RUnlock()

	if err := l.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.LayoutPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventLayoutSaved, path)
	return nil
}

// AssignmentsChanged marks the layout modified and notifies listeners
// after an engine mutation (draw commit, renumber, removal, auto run).
func (s *State) AssignmentsChanged() {
	s.SetModified(true)
	s.Emit(EventAssignmentsChanged, nil)
}
