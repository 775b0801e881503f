package matrix

import (
	"keymatrix/pkg/geometry"
)

// groupLineAt classifies a pointer position as resting on the connecting
// line between two adjacent keys of one group. A position on a keycap
// face is never a line hit: the key wins.
func (a *Annotator) groupLineAt(p geometry.Point2D) (Dimension, int, bool) {
	if a.store.KeyFaceAt(p) != nil {
		return 0, 0, false
	}
	for _, dim := range []Dimension{Row, Column} {
		for _, n := range a.store.UsedIndices(dim) {
			keys := a.store.Group(dim, n)
			for i := 0; i+1 < len(keys); i++ {
				seg := geometry.NewSegment(keys[i].Center(), keys[i+1].Center())
				if seg.DistanceTo(p) <= a.Sensitivity {
					return dim, n, true
				}
			}
		}
	}
	return 0, 0, false
}

// GroupSegments returns the connecting segments of one group, adjacent
// key center to adjacent key center, for rendering.
func (a *Annotator) GroupSegments(dim Dimension, n int) []geometry.Segment {
	keys := a.store.Group(dim, n)
	if len(keys) < 2 {
		return nil
	}
	segs := make([]geometry.Segment, 0, len(keys)-1)
	for i := 0; i+1 < len(keys); i++ {
		segs = append(segs, geometry.NewSegment(keys[i].Center(), keys[i+1].Center()))
	}
	return segs
}
