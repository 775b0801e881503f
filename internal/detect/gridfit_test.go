package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/pkg/geometry"
)

// capsGrid builds pixel bounds for a rows x cols grid of square caps.
func capsGrid(rows, cols, pitch, size, originX, originY int) []geometry.RectInt {
	var caps []geometry.RectInt
	margin := (pitch - size) / 2
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			caps = append(caps, geometry.RectInt{
				X:      originX + c*pitch + margin,
				Y:      originY + r*pitch + margin,
				Width:  size,
				Height: size,
			})
		}
	}
	return caps
}

func TestSnapQuarter(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.12, 0},
		{0.13, 0.25},
		{1.0, 1.0},
		{1.49, 1.5},
		{2.76, 2.75},
		{-0.3, -0.25},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, snapQuarter(tc.in), "snapQuarter(%v)", tc.in)
	}
}

func TestPitchSeedUsesCommonCapEdge(t *testing.T) {
	caps := capsGrid(2, 5, 100, 90, 0, 0)
	// One wide cap should not drag the seed up
	caps = append(caps, geometry.RectInt{X: 0, Y: 300, Width: 200, Height: 90})

	assert.InDelta(t, 90, pitchSeed(caps, true), 1)
	assert.InDelta(t, 90, pitchSeed(caps, false), 1)
}

func TestFitAxisRecoversPitchAndOrigin(t *testing.T) {
	// Centers of 1u caps at pitch 100 starting at pixel 40
	centers := []float64{90, 190, 290, 390, 590}

	fit, err := fitAxis(centers, 95)
	require.NoError(t, err)

	assert.InDelta(t, 100, fit.Pitch, 0.5)
	assert.InDelta(t, 40, fit.Origin, 1)
	assert.InDelta(t, 0.5, fit.ToUnits(90), 0.01)
	assert.InDelta(t, 5.5, fit.ToUnits(590), 0.01)
}

func TestFitAxisSingleLineFallsBackToSeed(t *testing.T) {
	// All caps on one grid line: the system is rank deficient or the fitted
	// pitch is implausible, so the seed wins either way.
	centers := []float64{250, 250, 250}

	fit, err := fitAxis(centers, 80)
	require.NoError(t, err)

	assert.InDelta(t, 80, fit.Pitch, 0.01)
	assert.InDelta(t, 210, fit.Origin, 0.01)
}

func TestFitAxisRejectsNonPositiveSeed(t *testing.T) {
	_, err := fitAxis([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestFitGridMapsBothAxes(t *testing.T) {
	caps := capsGrid(3, 4, 120, 110, 30, 50)

	fit, err := fitGrid(caps)
	require.NoError(t, err)

	assert.InDelta(t, 120, fit.X.Pitch, 2)
	assert.InDelta(t, 120, fit.Y.Pitch, 2)

	// First cap center should land on unit position 0.5 on both axes
	c := caps[0].Center()
	assert.InDelta(t, 0.5, fit.X.ToUnits(c.X), 0.1)
	assert.InDelta(t, 0.5, fit.Y.ToUnits(c.Y), 0.1)
}

func TestBuildLayoutSnapsToUnits(t *testing.T) {
	caps := capsGrid(2, 3, 100, 90, 0, 0)
	// A 2u cap on the second row
	caps = append(caps, geometry.RectInt{X: 305, Y: 105, Width: 190, Height: 90})

	fit, err := fitGrid(caps)
	require.NoError(t, err)
	l := buildLayout(caps, fit)

	require.Len(t, l.Keys, 7)
	for _, k := range l.Keys[:6] {
		assert.Equal(t, 1.0, k.Width)
		assert.Equal(t, 1.0, k.Height)
	}
	wide := l.Keys[6]
	assert.Equal(t, 2.0, wide.Width)
	assert.Equal(t, 1.0, wide.Height)
	assert.InDelta(t, 3.0, wide.X, 0.26)
	assert.InDelta(t, 1.0, wide.Y, 0.26)
}
