package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

func TestKeysAlongOrdersByDrawDirection(t *testing.T) {
	a := newGrid(1, 3)
	keys := a.Store().Keys()

	// Right to left: draw order must follow the segment, not layout order
	seg := geometry.NewSegment(keyCenter(2, 0), keyCenter(0, 0))
	got := KeysAlong(seg, DefaultSensitivity, keys, keys[2], keys[0])
	require.Len(t, got, 3)
	assert.Equal(t, 2.0, got[0].X)
	assert.Equal(t, 1.0, got[1].X)
	assert.Equal(t, 0.0, got[2].X)
}

func TestKeysAlongExcludesBeyondEndpoints(t *testing.T) {
	a := newGrid(1, 5)
	keys := a.Store().Keys()

	// Line from key 1 to key 3: keys 0 and 4 lie on the carrier line but
	// beyond the endpoints (t<0 / t>1) and must not be captured.
	seg := geometry.NewSegment(keyCenter(1, 0), keyCenter(3, 0))
	got := KeysAlong(seg, DefaultSensitivity, keys, keys[1], keys[3])
	require.Len(t, got, 3)
	for _, k := range got {
		assert.GreaterOrEqual(t, k.X, 1.0)
		assert.LessOrEqual(t, k.X, 3.0)
	}
}

func TestKeysAlongWideKeyNotOvereagerlyCaptured(t *testing.T) {
	// Regression layout: two clicked 1x1 keys with an intervening wide
	// key whose center is off the drawn segment. Drawing strictly between
	// the clicked centers must not pick up the wide key.
	l := &layout.Layout{}
	a1 := layout.NewKey(0, 0) // center (0.5, 0.5)
	b := layout.NewKey(2.5, 1) // center (3.0, 1.5)
	wide := layout.NewKey(1, 0)
	wide.Width = 2 // center (2.0, 0.5), ~0.56u off the segment
	l.Keys = append(l.Keys, a1, wide, b)

	ann := NewAnnotator(NewStore(l))
	seg := geometry.NewSegment(a1.Center(), b.Center())
	got := KeysAlong(seg, DefaultSensitivity, ann.Store().Keys(), a1, b)

	require.Len(t, got, 2)
	assert.Same(t, a1, got[0])
	assert.Same(t, b, got[1])
}

func TestKeysAlongForcesClickedKeys(t *testing.T) {
	a := newGrid(1, 3)
	keys := a.Store().Keys()

	// Segment between corners of the end keys: their centers are within
	// tolerance of nothing in particular but clicked keys always count.
	seg := geometry.NewSegment(geometry.NewPoint2D(0.1, 0.1), geometry.NewPoint2D(2.9, 0.1))
	got := KeysAlong(seg, 0.05, keys, keys[0], keys[2])
	require.Len(t, got, 2)
	assert.Same(t, keys[0], got[0])
	assert.Same(t, keys[2], got[1])
}

func TestKeysAlongDegenerateSegment(t *testing.T) {
	a := newGrid(1, 3)
	keys := a.Store().Keys()

	seg := geometry.NewSegment(keyCenter(1, 0), keyCenter(1, 0))
	got := KeysAlong(seg, DefaultSensitivity, keys, keys[1], keys[1])
	require.Len(t, got, 1)
	assert.Same(t, keys[1], got[0])
}
