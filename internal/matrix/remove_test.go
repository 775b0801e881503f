package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/pkg/geometry"
)

func annotateGrid(a *Annotator) {
	a.AutoAnnotate()
}

func TestRemoveSingleKeyBoth(t *testing.T) {
	a := newGrid(2, 2)
	annotateGrid(a)

	removed := a.RemoveAt(keyCenter(0, 0))
	require.Len(t, removed, 1)

	k := gridKey(a, 0, 0)
	assert.Nil(t, a.Store().Index(k, Row))
	assert.Nil(t, a.Store().Index(k, Column))

	// The rest of the former groups stay intact
	assert.Len(t, a.Store().Group(Row, 0), 1)
	assert.Len(t, a.Store().Group(Column, 0), 1)
}

func TestRemoveSingleKeyRowOnly(t *testing.T) {
	a := newGrid(2, 2)
	annotateGrid(a)
	a.RemoveTarget = RemoveRow

	removed := a.RemoveAt(keyCenter(1, 1))
	require.Len(t, removed, 1)

	k := gridKey(a, 1, 1)
	assert.Nil(t, a.Store().Index(k, Row))
	require.NotNil(t, a.Store().Index(k, Column))
	assert.Equal(t, 1, *a.Store().Index(k, Column))
}

func TestRemoveGroupByLineClick(t *testing.T) {
	a := newGrid(3, 3)
	drawRows(t, a, 3, 3)

	// Click the gap on row 1's connecting line
	removed := a.RemoveAt(geometry.NewPoint2D(1.0, 1.5))
	require.Len(t, removed, 3)
	assert.Equal(t, []int{0, 2}, a.Store().UsedIndices(Row))
	for _, k := range removed {
		assert.Nil(t, a.Store().Index(k, Row))
	}
}

func TestRemoveTargetFiltersLineClicks(t *testing.T) {
	a := newGrid(3, 3)
	drawRows(t, a, 3, 3)

	// Column removal mode must not clear a row group line
	a.RemoveTarget = RemoveColumn
	assert.Empty(t, a.RemoveAt(geometry.NewPoint2D(1.0, 1.5)))
	assert.Equal(t, []int{0, 1, 2}, a.Store().UsedIndices(Row))
}

func TestRemoveMissIsNoop(t *testing.T) {
	a := newGrid(2, 2)
	annotateGrid(a)
	assert.Empty(t, a.RemoveAt(geometry.NewPoint2D(10, 10)))
	assert.Equal(t, []int{0, 1}, a.Store().UsedIndices(Row))
}

func TestRemoveUnassignedKeyIsNoop(t *testing.T) {
	a := newGrid(1, 2)
	assert.Empty(t, a.RemoveAt(keyCenter(0, 0)))
}
