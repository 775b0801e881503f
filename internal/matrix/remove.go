package matrix

import (
	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// RemoveTarget selects which dimension a removal click clears.
type RemoveTarget int

const (
	RemoveBoth RemoveTarget = iota
	RemoveRow
	RemoveColumn
)

// RemoveAt applies a removal click at p. A click on a key clears that
// key's assignment in the active removal target, leaving the rest of its
// group intact. A click on the connecting line between two adjacent keys
// of a group clears the entire group. Freed indices become available for
// reuse by the smallest-unused allocation. Clicks hitting neither are
// no-ops.
//
// Returns the keys whose assignment changed.
func (a *Annotator) RemoveAt(p geometry.Point2D) []*layout.Key {
	if k := a.store.KeyFaceAt(p); k != nil {
		return a.removeFromKey(k)
	}

	dim, n, ok := a.groupLineAt(p)
	if !ok {
		return nil
	}
	switch {
	case a.RemoveTarget == RemoveRow && dim != Row:
		return nil
	case a.RemoveTarget == RemoveColumn && dim != Column:
		return nil
	}

	keys := a.store.Group(dim, n)
	for _, k := range keys {
		a.store.ClearIndex(k, dim)
	}
	return keys
}

func (a *Annotator) removeFromKey(k *layout.Key) []*layout.Key {
	var changed bool
	if a.RemoveTarget != RemoveColumn && a.store.Index(k, Row) != nil {
		a.store.ClearIndex(k, Row)
		changed = true
	}
	if a.RemoveTarget != RemoveRow && a.store.Index(k, Column) != nil {
		a.store.ClearIndex(k, Column)
		changed = true
	}
	if !changed {
		return nil
	}
	return []*layout.Key{k}
}
