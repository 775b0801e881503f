package matrix

import (
	"sort"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// KeysAlong returns the candidate keys whose centers lie on the drawn
// segment, ordered by draw position along it. A candidate is captured iff
// its center projects inside the segment (0 <= t <= 1) and its
// perpendicular distance is within sensitivity. A key whose center lies
// beyond either endpoint is excluded even when it is physically close to
// the carrier line, so a wide key straddling the line is never captured
// by accident.
//
// The two explicitly clicked keys, first and last, are always included
// regardless of distance. Either may be nil.
func KeysAlong(seg geometry.Segment, sensitivity float64, candidates []*layout.Key, first, last *layout.Key) []*layout.Key {
	type hit struct {
		key *layout.Key
		t   float64
	}

	var hits []hit
	seen := make(map[*layout.Key]bool)

	if seg.Length() > 0 {
		for _, k := range candidates {
			if k == first || k == last {
				continue // forced below
			}
			t, dist := seg.Project(k.Center())
			if t < 0 || t > 1 || dist > sensitivity {
				continue
			}
			hits = append(hits, hit{key: k, t: t})
			seen[k] = true
		}
	}

	// Clicked keys participate at their projected position, clamped into
	// the segment so ordering stays sane when the click landed off-center.
	force := func(k *layout.Key) {
		if k == nil || seen[k] {
			return
		}
		t := 0.0
		if seg.Length() > 0 {
			t, _ = seg.Project(k.Center())
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
		}
		hits = append(hits, hit{key: k, t: t})
		seen[k] = true
	}
	force(first)
	force(last)

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	keys := make([]*layout.Key, len(hits))
	for i, h := range hits {
		keys[i] = h.key
	}
	return keys
}
