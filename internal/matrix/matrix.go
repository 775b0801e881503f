// Package matrix implements the switch-matrix annotation engine: line
// capture over drawn segments, the row/column sequence assigner, whole
// layout auto-annotation, interactive renumbering, removal with index
// reuse, and duplicate-position validation.
//
// All operations are synchronous and single-gesture: the UI feeds pointer
// and keyboard events in, the engine mutates key label slots through the
// Store, and the UI renders the result back out.
package matrix

// DefaultSensitivity is the perpendicular-distance tolerance, in key
// units, used to decide whether a key center lies "on" a drawn line.
const DefaultSensitivity = 0.3

// Dimension selects the matrix axis an operation works on.
type Dimension int

const (
	Row Dimension = iota
	Column
)

func (d Dimension) String() string {
	if d == Row {
		return "row"
	}
	return "column"
}

// Other returns the opposite dimension.
func (d Dimension) Other() Dimension {
	if d == Row {
		return Column
	}
	return Row
}

// Mode is the active drawing tool.
type Mode int

const (
	ModeRow Mode = iota
	ModeColumn
	ModeRemove
)

func (m Mode) String() string {
	switch m {
	case ModeRow:
		return "row"
	case ModeColumn:
		return "column"
	case ModeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// dimension returns the matrix axis a drawing mode assigns, if any.
func (m Mode) dimension() (Dimension, bool) {
	switch m {
	case ModeRow:
		return Row, true
	case ModeColumn:
		return Column, true
	default:
		return 0, false
	}
}
