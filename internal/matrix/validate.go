package matrix

import (
	"sort"

	"keymatrix/internal/layout"
)

// Position is a fully-specified matrix coordinate.
type Position struct {
	Row int
	Col int
}

// PositionKeys lists the keys sharing one matrix position.
type PositionKeys struct {
	Position Position
	Keys     []*layout.Key
}

// Report is the duplicate-position validation result. It is purely
// diagnostic; producing it never mutates the layout.
type Report struct {
	IsValid bool

	// DuplicatesWithoutOption are positions shared by keys that cannot be
	// told apart by an (option, choice) pair.
	DuplicatesWithoutOption []PositionKeys

	// ValidLayoutOptions are positions shared by keys that all carry
	// distinct, fully-specified (option, choice) pairs.
	ValidLayoutOptions []PositionKeys
}

// Validate partitions the annotatable keys by their complete (row, col)
// pair and checks each multi-key position: it is a valid layout-option
// cluster iff every member has a distinct, fully-specified variant.
func (s *Store) Validate() Report {
	byPos := make(map[Position][]*layout.Key)
	var order []Position
	for _, k := range s.Keys() {
		a := k.Matrix()
		if !a.Complete() {
			continue
		}
		pos := Position{Row: *a.Row, Col: *a.Col}
		if _, ok := byPos[pos]; !ok {
			order = append(order, pos)
		}
		byPos[pos] = append(byPos[pos], k)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Row != order[j].Row {
			return order[i].Row < order[j].Row
		}
		return order[i].Col < order[j].Col
	})

	report := Report{IsValid: true}
	for _, pos := range order {
		keys := byPos[pos]
		if len(keys) < 2 {
			continue
		}
		if distinctVariants(keys) {
			report.ValidLayoutOptions = append(report.ValidLayoutOptions, PositionKeys{Position: pos, Keys: keys})
		} else {
			report.IsValid = false
			report.DuplicatesWithoutOption = append(report.DuplicatesWithoutOption, PositionKeys{Position: pos, Keys: keys})
		}
	}
	return report
}

// distinctVariants reports whether every key carries a fully-specified
// variant and no two variants repeat.
func distinctVariants(keys []*layout.Key) bool {
	seen := make(map[layout.Variant]bool, len(keys))
	for _, k := range keys {
		v, ok := k.Variant()
		if !ok || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// conflictsAt reports whether giving key k the complete position
// (row, col) would collide with another key that cannot be told apart by
// a variant pair. Used by the sequence assigner to skip offending keys
// inside an otherwise-successful gesture.
func (s *Store) conflictsAt(k *layout.Key, row, col int) bool {
	kv, kok := k.Variant()
	for _, o := range s.Keys() {
		if o == k {
			continue
		}
		a := o.Matrix()
		if !a.Complete() || *a.Row != row || *a.Col != col {
			continue
		}
		ov, ook := o.Variant()
		if !kok || !ook || kv == ov {
			return true
		}
	}
	return false
}

// DefaultLayoutKeys selects the keys representing the base physical
// variant: every key with no variant label, plus the choice-0 member of
// each variant cluster.
func (s *Store) DefaultLayoutKeys() []*layout.Key {
	var keys []*layout.Key
	for _, k := range s.Keys() {
		v, ok := k.Variant()
		if !ok || v.Choice == 0 {
			keys = append(keys, k)
		}
	}
	return keys
}
