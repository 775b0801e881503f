package matrix

import (
	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// newGrid builds a regular rows x cols layout of 1u keys at integer
// positions and returns an annotator over it.
func newGrid(rows, cols int) *Annotator {
	l := &layout.Layout{}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			l.Keys = append(l.Keys, layout.NewKey(float64(x), float64(y)))
		}
	}
	return NewAnnotator(NewStore(l))
}

// keyCenter returns the center of the 1u key at grid position (x, y).
func keyCenter(x, y float64) geometry.Point2D {
	return geometry.NewPoint2D(x+0.5, y+0.5)
}

// gridKey returns the key whose top-left corner is at (x, y), or nil.
func gridKey(a *Annotator, x, y float64) *layout.Key {
	for _, k := range a.Store().Keys() {
		if k.X == x && k.Y == y {
			return k
		}
	}
	return nil
}

// matrixLabels collects slot-0 labels keyed by grid position, for
// readable assertions.
func matrixLabels(a *Annotator) map[[2]float64]string {
	out := make(map[[2]float64]string)
	for _, k := range a.Store().Keys() {
		out[[2]float64{k.X, k.Y}] = k.Labels[layout.SlotMatrix]
	}
	return out
}
