package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

func TestDrawRowThenColumn(t *testing.T) {
	a := newGrid(3, 3)

	// Row mode: click (0,0) then (2,0); the middle key is auto-captured
	require.True(t, a.StartGesture(ModeRow, keyCenter(0, 0)))
	assigned := a.CommitClick(keyCenter(2, 0))
	require.Len(t, assigned, 3)

	labels := matrixLabels(a)
	assert.Equal(t, "0,", labels[[2]float64{0, 0}])
	assert.Equal(t, "0,", labels[[2]float64{1, 0}])
	assert.Equal(t, "0,", labels[[2]float64{2, 0}])

	// Column mode: click (0,0) then (0,2)
	require.True(t, a.StartGesture(ModeColumn, keyCenter(0, 0)))
	assigned = a.CommitClick(keyCenter(0, 2))
	require.Len(t, assigned, 3)

	labels = matrixLabels(a)
	assert.Equal(t, "0,0", labels[[2]float64{0, 0}])
	assert.Equal(t, ",0", labels[[2]float64{0, 1}])
	assert.Equal(t, ",0", labels[[2]float64{0, 2}])
}

func TestDrawAllocatesSmallestFreeIndex(t *testing.T) {
	a := newGrid(3, 3)

	for y := 0; y < 3; y++ {
		require.True(t, a.StartGesture(ModeRow, keyCenter(0, float64(y))))
		a.CommitClick(keyCenter(2, float64(y)))
	}
	assert.Equal(t, []int{0, 1, 2}, a.Store().UsedIndices(Row))
}

func TestStartOnAssignedKeyContinuesGroup(t *testing.T) {
	a := newGrid(1, 4)

	require.True(t, a.StartGesture(ModeRow, keyCenter(0, 0)))
	a.CommitClick(keyCenter(1, 0))
	assert.Equal(t, []int{0}, a.Store().UsedIndices(Row))

	// Starting from an assigned key must continue row 0, never start a
	// second group on it.
	require.True(t, a.StartGesture(ModeRow, keyCenter(1, 0)))
	assigned := a.CommitClick(keyCenter(3, 0))
	require.NotEmpty(t, assigned)

	assert.Equal(t, []int{0}, a.Store().UsedIndices(Row))
	assert.Len(t, a.Store().Group(Row, 0), 4)
}

func TestDrawSkipsKeysInOtherGroups(t *testing.T) {
	a := newGrid(2, 3)

	// Row 0 across the top
	a.StartGesture(ModeRow, keyCenter(0, 0))
	a.CommitClick(keyCenter(2, 0))

	// A diagonal-ish row draw that clicks an already-assigned key as its
	// endpoint: the endpoint keeps its prior assignment, the rest of the
	// gesture still succeeds.
	a.StartGesture(ModeRow, keyCenter(0, 1))
	assigned := a.CommitClick(keyCenter(2, 0))

	for _, k := range assigned {
		assert.Equal(t, 1.0, k.Y, "only unassigned bottom-row keys may join row 1")
	}
	top := gridKey(a, 2, 0)
	require.NotNil(t, top)
	idx := a.Store().Index(top, Row)
	require.NotNil(t, idx)
	assert.Equal(t, 0, *idx, "endpoint already in row 0 is skipped, not reassigned")
}

func TestDrawSkipsDuplicatePositions(t *testing.T) {
	// Two keys stacked at the same spot, both already in column 0. Drawing
	// a row over them would give both (0,0); the second is skipped because
	// neither carries a variant pair.
	l := &layout.Layout{}
	k1 := layout.NewKey(0, 0)
	k2 := layout.NewKey(0, 0)
	far := layout.NewKey(2, 0)
	l.Keys = append(l.Keys, k1, k2, far)

	a := NewAnnotator(NewStore(l))
	a.Store().SetIndex(k1, Column, 0)
	a.Store().SetIndex(k2, Column, 0)

	a.StartGesture(ModeRow, keyCenter(0, 0))
	assigned := a.CommitClick(keyCenter(2, 0))

	rows := 0
	for _, k := range []*layout.Key{k1, k2} {
		if a.Store().Index(k, Row) != nil {
			rows++
		}
	}
	assert.Equal(t, 1, rows, "exactly one of the stacked keys gets the row")
	require.NotNil(t, a.Store().Index(far, Row), "gesture partially succeeds for the rest")
	assert.NotEmpty(t, assigned)
}

func TestDrawAllowsDuplicateWithDistinctVariants(t *testing.T) {
	l := &layout.Layout{}
	k1 := layout.NewKey(0, 0)
	k1.Labels[layout.SlotVariant] = "0,0"
	k2 := layout.NewKey(0, 0)
	k2.Labels[layout.SlotVariant] = "0,1"
	far := layout.NewKey(2, 0)
	l.Keys = append(l.Keys, k1, k2, far)

	a := NewAnnotator(NewStore(l))
	a.Store().SetIndex(k1, Column, 0)
	a.Store().SetIndex(k2, Column, 0)

	a.StartGesture(ModeRow, keyCenter(0, 0))
	a.CommitClick(keyCenter(2, 0))

	require.NotNil(t, a.Store().Index(k1, Row))
	require.NotNil(t, a.Store().Index(k2, Row))
	assert.True(t, a.Store().Validate().IsValid)
}

func TestGapReuseAfterRemoval(t *testing.T) {
	a := newGrid(3, 3)
	for y := 0; y < 3; y++ {
		a.StartGesture(ModeRow, keyCenter(0, float64(y)))
		a.CommitClick(keyCenter(2, float64(y)))
	}

	// Remove the whole of row 1 by clicking the gap between the first two
	// keycap faces, on the group's connecting line
	a.RemoveTarget = RemoveBoth
	removed := a.RemoveAt(geometry.NewPoint2D(1.0, 1.5))
	require.Len(t, removed, 3)
	assert.Equal(t, []int{0, 2}, a.Store().UsedIndices(Row))

	// The next freshly drawn row takes index 1, not 3
	a.StartGesture(ModeRow, keyCenter(0, 1))
	a.CommitClick(keyCenter(2, 1))
	assert.Equal(t, []int{0, 1, 2}, a.Store().UsedIndices(Row))
	k := gridKey(a, 1, 1)
	idx := a.Store().Index(k, Row)
	require.NotNil(t, idx)
	assert.Equal(t, 1, *idx)
}

func TestCommitWithoutStartIsNoop(t *testing.T) {
	a := newGrid(2, 2)
	assert.Nil(t, a.CommitClick(keyCenter(1, 1)))
}

func TestStartOnEmptySpaceIsNoop(t *testing.T) {
	a := newGrid(2, 2)
	assert.False(t, a.StartGesture(ModeRow, keyCenter(5, 5)))
	_, drawing := a.Drawing()
	assert.False(t, drawing)
}

func TestCommitOnEmptySpaceAbandonsSequence(t *testing.T) {
	a := newGrid(2, 2)
	require.True(t, a.StartGesture(ModeRow, keyCenter(0, 0)))
	assert.Nil(t, a.CommitClick(keyCenter(5, 5)))
	_, drawing := a.Drawing()
	assert.False(t, drawing)
	assert.Empty(t, a.Store().UsedIndices(Row))
}

func TestGhostKeysNeverAssigned(t *testing.T) {
	l := &layout.Layout{}
	k1 := layout.NewKey(0, 0)
	ghost := layout.NewKey(1, 0)
	ghost.Ghost = true
	k3 := layout.NewKey(2, 0)
	l.Keys = append(l.Keys, k1, ghost, k3)

	a := NewAnnotator(NewStore(l))
	a.StartGesture(ModeRow, keyCenter(0, 0))
	assigned := a.CommitClick(keyCenter(2, 0))

	require.Len(t, assigned, 2)
	assert.Empty(t, ghost.Labels[layout.SlotMatrix])
}
