package matrix

import (
	"sort"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// Store is the assignment read/write API over a layout's keys. The label
// strings in slot 0 are a serialization boundary: all reads parse and all
// writes format, so no other code touches the encoding.
//
// Ghost and decal keys are invisible to every Store method.
type Store struct {
	l *layout.Layout
}

// NewStore creates a store over the given layout.
func NewStore(l *layout.Layout) *Store {
	return &Store{l: l}
}

// Layout returns the underlying layout.
func (s *Store) Layout() *layout.Layout {
	return s.l
}

// Keys returns the annotatable keys in layout order.
func (s *Store) Keys() []*layout.Key {
	return s.l.AnnotatableKeys()
}

// KeyAt returns the first annotatable key whose unrotated cell bounds
// contain p, or nil. Draw clicks use the full cell so clicking anywhere
// in a key counts.
func (s *Store) KeyAt(p geometry.Point2D) *layout.Key {
	for _, k := range s.Keys() {
		if k.Bounds().Contains(p) {
			return k
		}
	}
	return nil
}

// KeyFaceAt returns the annotatable key whose keycap face contains p, or
// nil. Hover and removal classification use the face so the gap between
// adjacent caps can be hit as a group line.
func (s *Store) KeyFaceAt(p geometry.Point2D) *layout.Key {
	for _, k := range s.Keys() {
		if k.FaceBounds().Contains(p) {
			return k
		}
	}
	return nil
}

// Index returns the key's index in the given dimension, or nil.
func (s *Store) Index(k *layout.Key, dim Dimension) *int {
	a := k.Matrix()
	if dim == Row {
		return a.Row
	}
	return a.Col
}

// SetIndex assigns the key's index in the given dimension, preserving the
// other dimension.
func (s *Store) SetIndex(k *layout.Key, dim Dimension, n int) {
	a := k.Matrix()
	if dim == Row {
		a.Row = layout.Index(n)
	} else {
		a.Col = layout.Index(n)
	}
	k.SetMatrix(a)
}

// ClearIndex removes the key's index in the given dimension, preserving
// the other dimension.
func (s *Store) ClearIndex(k *layout.Key, dim Dimension) {
	a := k.Matrix()
	if dim == Row {
		a.Row = nil
	} else {
		a.Col = nil
	}
	k.SetMatrix(a)
}

// Group returns the keys holding index n in the given dimension, sorted
// along the group's axis: rows left-to-right, columns top-to-bottom.
func (s *Store) Group(dim Dimension, n int) []*layout.Key {
	var keys []*layout.Key
	for _, k := range s.Keys() {
		if idx := s.Index(k, dim); idx != nil && *idx == n {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if dim == Row {
			return keys[i].Center().X < keys[j].Center().X
		}
		return keys[i].Center().Y < keys[j].Center().Y
	})
	return keys
}

// UsedIndices returns the sorted set of indices in use for a dimension.
func (s *Store) UsedIndices(dim Dimension) []int {
	seen := make(map[int]bool)
	for _, k := range s.Keys() {
		if idx := s.Index(k, dim); idx != nil {
			seen[*idx] = true
		}
	}
	indices := make([]int, 0, len(seen))
	for n := range seen {
		indices = append(indices, n)
	}
	sort.Ints(indices)
	return indices
}

// NextFree returns the smallest non-negative index not in use for a
// dimension. Indices freed by removal are reused before new ones are
// appended.
func (s *Store) NextFree(dim Dimension) int {
	next := 0
	for _, n := range s.UsedIndices(dim) {
		if n != next {
			break
		}
		next++
	}
	return next
}

// Unassigned returns the keys with no index in the given dimension.
func (s *Store) Unassigned(dim Dimension) []*layout.Key {
	var keys []*layout.Key
	for _, k := range s.Keys() {
		if s.Index(k, dim) == nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// Progress summarizes how much of the layout has been annotated.
type Progress struct {
	RowsDefined     int
	ColsDefined     int
	KeysLeftForRows int
	KeysLeftForCols int
}

// Progress reports defined group counts and remaining unassigned keys.
func (s *Store) Progress() Progress {
	return Progress{
		RowsDefined:     len(s.UsedIndices(Row)),
		ColsDefined:     len(s.UsedIndices(Column)),
		KeysLeftForRows: len(s.Unassigned(Row)),
		KeysLeftForCols: len(s.Unassigned(Column)),
	}
}
