package export

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymatrix/internal/layout"
	"keymatrix/internal/matrix"
)

func annotatedPair(t *testing.T) *matrix.Annotator {
	t.Helper()
	l := &layout.Layout{Keys: []*layout.Key{
		{X: 0, Y: 0, Width: 1, Height: 1, Color: "#cccccc"},
		{X: 2, Y: 0, Width: 1, Height: 1, Color: "#cccccc"},
	}}
	a := matrix.NewAnnotator(matrix.NewStore(l))
	a.Store().SetIndex(l.Keys[0], matrix.Row, 0)
	a.Store().SetIndex(l.Keys[1], matrix.Row, 0)
	return a
}

func TestRenderDimensions(t *testing.T) {
	a := annotatedPair(t)
	opts := DefaultOptions()
	opts.Scale = 40
	opts.Padding = 0.5

	img := Render(a, opts)

	// Layout spans 3u x 1u plus 0.5u padding on each side
	assert.Equal(t, image.Rect(0, 0, 160, 80), img.Bounds())
}

func TestRenderDrawsKeysAndGroupLine(t *testing.T) {
	a := annotatedPair(t)
	opts := DefaultOptions()
	opts.Scale = 40
	opts.Padding = 0.5

	img := Render(a, opts)

	// A point on the first keycap, away from the group line and labels,
	// carries the cap fill color
	capPx := img.RGBAAt(40, 28)
	assert.Equal(t, color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}, capPx)

	// Midpoint between the two key centers lies on the row group line
	linePx := img.RGBAAt(80, 40)
	assert.Equal(t, opts.RowColor, linePx)

	// A corner stays background
	assert.Equal(t, opts.Background, img.RGBAAt(2, 2))
}

func TestRenderDefaultsZeroScale(t *testing.T) {
	a := annotatedPair(t)
	opts := Options{}

	img := Render(a, opts)
	assert.False(t, img.Bounds().Empty())
}

func TestWritePNG(t *testing.T) {
	a := annotatedPair(t)
	path := filepath.Join(t.TempDir(), "snapshot.png")

	require.NoError(t, WritePNG(path, a, DefaultOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
