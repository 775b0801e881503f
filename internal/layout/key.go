// Package layout provides the keyboard layout data model: keys with
// position, size, rotation, and the label slots the annotation engine
// reads and writes.
package layout

import (
	"math"

	"keymatrix/pkg/geometry"
)

// Label slot indices with special meaning. The remaining slots hold
// ordinary keycap legends and pass through untouched.
const (
	// SlotMatrix holds the switch-matrix position as "row,col".
	// Either side may be empty.
	SlotMatrix = 0
	// SlotCenterLegend holds the main keycap legend.
	SlotCenterLegend = 4
	// SlotVariant holds the layout-variant discriminator as "option,choice".
	SlotVariant = 8

	// NumSlots is the number of label slots per key.
	NumSlots = 12
)

// Key is a single key of a keyboard layout. Position and size are in key
// units (1u = one standard keycap pitch). Rotation is in degrees around
// (RotationX, RotationY).
type Key struct {
	X      float64
	Y      float64
	Width  float64
	Height float64

	RotationAngle float64
	RotationX     float64
	RotationY     float64

	Labels [NumSlots]string
	Color  string

	// Ghost and decal keys are visual annotations only and are excluded
	// from all matrix semantics.
	Ghost bool
	Decal bool
}

// NewKey creates a 1u key at the given position.
func NewKey(x, y float64) *Key {
	return &Key{X: x, Y: y, Width: 1, Height: 1}
}

// Bounds returns the unrotated bounding rectangle in layout units.
func (k *Key) Bounds() geometry.Rect {
	w, h := k.Width, k.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	return geometry.NewRect(k.X, k.Y, w, h)
}

// FaceInset is how far, in key units, the rendered keycap face is inset
// from each edge of its cell. Pointer classification uses the face so
// the gap between adjacent caps stays clickable as a group line.
const FaceInset = 0.1

// FaceBounds returns the keycap face rectangle: the cell bounds inset by
// FaceInset on each side (never inverted for tiny keys).
func (k *Key) FaceBounds() geometry.Rect {
	b := k.Bounds()
	inset := FaceInset
	if b.Width < 2*inset || b.Height < 2*inset {
		return b
	}
	return geometry.NewRect(b.X+inset, b.Y+inset, b.Width-2*inset, b.Height-2*inset)
}

// Center returns the unrotated bounding-box center. Clustering and line
// capture operate on this point; see RotatedCenter for the rendered
// position of rotated keys.
func (k *Key) Center() geometry.Point2D {
	return k.Bounds().Center()
}

// RotatedCenter returns the center after applying the key's rotation
// around its rotation origin.
func (k *Key) RotatedCenter() geometry.Point2D {
	if k.RotationAngle == 0 {
		return k.Center()
	}
	t := geometry.RotationAround(
		k.RotationAngle*math.Pi/180,
		geometry.NewPoint2D(k.RotationX, k.RotationY),
	)
	return t.Apply(k.Center())
}

// Matrix returns the parsed matrix assignment from SlotMatrix.
func (k *Key) Matrix() Assignment {
	return ParseAssignment(k.Labels[SlotMatrix])
}

// SetMatrix writes the matrix assignment back to SlotMatrix.
func (k *Key) SetMatrix(a Assignment) {
	k.Labels[SlotMatrix] = a.String()
}

// Variant returns the parsed (option, choice) pair from SlotVariant.
// ok is false unless both parts are present and non-negative.
func (k *Key) Variant() (Variant, bool) {
	return ParseVariant(k.Labels[SlotVariant])
}

// Annotatable reports whether the key participates in matrix semantics.
func (k *Key) Annotatable() bool {
	return !k.Ghost && !k.Decal
}
