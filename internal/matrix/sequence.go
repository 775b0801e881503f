package matrix

import (
	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// sequence is the transient state of one two-click draw gesture:
// Idle (nil) -> Started (first click) -> Completed (second click).
type sequence struct {
	dim        Dimension
	first      *layout.Key
	firstPoint geometry.Point2D

	// target is the group index the gesture will assign. It is resolved
	// at start when continuing an existing group, otherwise at commit.
	target     int
	continuing bool
}

// StartGesture handles the first click of a gesture at p. In remove mode
// the click is terminal and routed to RemoveAt. For row/column modes a
// click on a key starts a sequence; when that key already carries an
// index in the active dimension the sequence continues that group, so a
// second group can never be started from an assigned key. Clicks outside
// any key are no-ops.
//
// Returns true when the click had an effect.
func (a *Annotator) StartGesture(mode Mode, p geometry.Point2D) bool {
	if mode == ModeRemove {
		return len(a.RemoveAt(p)) > 0
	}
	dim, ok := mode.dimension()
	if !ok {
		return false
	}

	k := a.store.KeyAt(p)
	if k == nil {
		return false
	}

	seq := &sequence{dim: dim, first: k, firstPoint: p, target: -1}
	if idx := a.store.Index(k, dim); idx != nil {
		seq.target = *idx
		seq.continuing = true
	}
	a.seq = seq
	return true
}

// CommitClick handles the second click of a draw gesture at p. It
// captures the keys along the line from the first click, resolves the
// target index, and assigns it to every captured key that the skip rules
// allow. A click outside any key abandons the sequence without side
// effects.
//
// Returns the keys that received an assignment.
func (a *Annotator) CommitClick(p geometry.Point2D) []*layout.Key {
	seq := a.seq
	if seq == nil {
		return nil
	}
	a.seq = nil

	last := a.store.KeyAt(p)
	if last == nil {
		return nil
	}

	target := seq.target
	if !seq.continuing {
		target = a.store.NextFree(seq.dim)
	}

	// Capture candidates: keys unassigned in the active dimension, plus
	// the continued group's keys so a line drawn over them stays ordered.
	candidates := a.store.Unassigned(seq.dim)
	if seq.continuing {
		candidates = append(candidates, a.store.Group(seq.dim, target)...)
	}

	captured := KeysAlong(geometry.NewSegment(seq.firstPoint, p), a.Sensitivity, candidates, seq.first, last)

	var assigned []*layout.Key
	for _, k := range captured {
		if !a.assignable(k, seq.dim, target) {
			continue
		}
		a.store.SetIndex(k, seq.dim, target)
		assigned = append(assigned, k)
	}
	return assigned
}

// CancelGesture discards a pending draw sequence without side effects.
func (a *Annotator) CancelGesture() {
	a.seq = nil
}

// assignable applies the per-key skip rules: a key keeps a different
// existing index in the active dimension, and a key is skipped when the
// assignment would complete a (row, col) pair already held by a key that
// cannot be told apart by a variant. The rest of the gesture proceeds;
// a partial success is never rolled back.
func (a *Annotator) assignable(k *layout.Key, dim Dimension, target int) bool {
	if cur := a.store.Index(k, dim); cur != nil && *cur != target {
		return false
	}

	other := a.store.Index(k, dim.Other())
	if other != nil {
		row, col := target, *other
		if dim == Column {
			row, col = *other, target
		}
		if a.store.conflictsAt(k, row, col) {
			return false
		}
	}
	return true
}
