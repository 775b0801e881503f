package matrix

import (
	"keymatrix/pkg/geometry"
)

// Annotator is the gesture front-end over a Store. It owns the transient
// per-gesture state (drawing sequence, renumber session) and applies all
// mutations synchronously; one gesture commits atomically at its terminal
// event (second click, Enter, or removal click).
type Annotator struct {
	store *Store

	// Sensitivity is the line-capture tolerance in key units.
	Sensitivity float64

	// RemoveTarget selects what a removal click clears.
	RemoveTarget RemoveTarget

	seq *sequence
	ren renumberSession
}

// NewAnnotator creates an annotator with the default sensitivity.
func NewAnnotator(store *Store) *Annotator {
	return &Annotator{
		store:       store,
		Sensitivity: DefaultSensitivity,
	}
}

// Store returns the assignment store the annotator mutates.
func (a *Annotator) Store() *Store {
	return a.store
}

// Drawing reports whether a two-click draw sequence is in progress, and
// from which point it started.
func (a *Annotator) Drawing() (geometry.Point2D, bool) {
	if a.seq == nil {
		return geometry.Point2D{}, false
	}
	return a.seq.firstPoint, true
}
