package matrix

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/internal/layout"
)

func TestAutoAnnotateGrid(t *testing.T) {
	a := newGrid(2, 3)
	a.AutoAnnotate()

	labels := matrixLabels(a)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, fmt.Sprintf("%d,%d", y, x), labels[[2]float64{float64(x), float64(y)}])
		}
	}
	assert.True(t, a.Store().Validate().IsValid)
}

func TestAutoAnnotateIdempotent(t *testing.T) {
	a := newGrid(4, 5)
	a.AutoAnnotate()
	first := matrixLabels(a)
	a.AutoAnnotate()
	assert.Equal(t, first, matrixLabels(a))
}

func TestAutoAnnotateMatchesManualDrawing(t *testing.T) {
	// Equivalence on a regular grid: exhaustive two-click row and column
	// drawing produces the same assignment as AutoAnnotate.
	manual := newGrid(3, 4)
	for y := 0; y < 3; y++ {
		require.True(t, manual.StartGesture(ModeRow, keyCenter(0, float64(y))))
		manual.CommitClick(keyCenter(3, float64(y)))
	}
	for x := 0; x < 4; x++ {
		require.True(t, manual.StartGesture(ModeColumn, keyCenter(float64(x), 0)))
		manual.CommitClick(keyCenter(float64(x), 2))
	}

	auto := newGrid(3, 4)
	auto.AutoAnnotate()

	assert.Equal(t, matrixLabels(manual), matrixLabels(auto))
}

func TestAutoAnnotateColumnsAlignAcrossRows(t *testing.T) {
	// Two rows whose x centers differ by less than the tolerance must
	// land in the same column clusters even though no row is perfectly
	// aligned with the other.
	l := &layout.Layout{}
	for x := 0; x < 3; x++ {
		l.Keys = append(l.Keys, layout.NewKey(float64(x), 0))
	}
	for x := 0; x < 3; x++ {
		l.Keys = append(l.Keys, layout.NewKey(float64(x)+0.2, 1))
	}

	a := NewAnnotator(NewStore(l))
	a.AutoAnnotate()

	labels := matrixLabels(a)
	assert.Equal(t, "0,0", labels[[2]float64{0, 0}])
	assert.Equal(t, "1,0", labels[[2]float64{0.2, 1}])
	assert.Equal(t, "0,2", labels[[2]float64{2, 0}])
	assert.Equal(t, "1,2", labels[[2]float64{2.2, 1}])
}

func TestAutoAnnotateIgnoresGhosts(t *testing.T) {
	l := &layout.Layout{}
	l.Keys = append(l.Keys, layout.NewKey(0, 0))
	ghost := layout.NewKey(1, 0)
	ghost.Ghost = true
	l.Keys = append(l.Keys, ghost, layout.NewKey(2, 0))

	a := NewAnnotator(NewStore(l))
	a.AutoAnnotate()

	assert.Empty(t, ghost.Labels[layout.SlotMatrix])
	labels := matrixLabels(a)
	assert.Equal(t, "0,0", labels[[2]float64{0, 0}])
	assert.Equal(t, "0,1", labels[[2]float64{2, 0}])
}
