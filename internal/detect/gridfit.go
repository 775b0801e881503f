package detect

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"keymatrix/pkg/geometry"
)

// axisFit maps pixel coordinates to key units along one axis:
// units = (px - Origin) / Pitch.
type axisFit struct {
	Origin float64
	Pitch  float64
}

// ToUnits converts a pixel coordinate to key units.
func (f axisFit) ToUnits(px float64) float64 {
	return (px - f.Origin) / f.Pitch
}

// gridFit is the pixel-to-unit mapping for both axes.
type gridFit struct {
	X axisFit
	Y axisFit
}

// fitGrid estimates the key pitch on each axis from detected keycap
// bounds and refines origin and pitch by least squares over the snapped
// grid indices. Only near-1u caps feed the fit: the center of a wider
// cap sits between grid lines and would skew it.
func fitGrid(caps []geometry.RectInt) (gridFit, error) {
	seedX := pitchSeed(caps, true)
	seedY := pitchSeed(caps, false)

	var xs, ys []float64
	for _, r := range caps {
		c := r.Center()
		if float64(r.Width) <= 1.3*seedX {
			xs = append(xs, c.X)
		}
		if float64(r.Height) <= 1.3*seedY {
			ys = append(ys, c.Y)
		}
	}

	fx, err := fitAxis(xs, seedX)
	if err != nil {
		return gridFit{}, fmt.Errorf("fit x axis: %w", err)
	}
	fy, err := fitAxis(ys, seedY)
	if err != nil {
		return gridFit{}, fmt.Errorf("fit y axis: %w", err)
	}
	return gridFit{X: fx, Y: fy}, nil
}

// pitchSeed estimates the 1u pitch in pixels as the median cap edge
// length on the axis. Wide caps inflate the median slightly; the least
// squares refinement absorbs that.
func pitchSeed(caps []geometry.RectInt, horizontal bool) float64 {
	edges := make([]float64, len(caps))
	for i, r := range caps {
		if horizontal {
			edges[i] = float64(r.Width)
		} else {
			edges[i] = float64(r.Height)
		}
	}
	sort.Float64s(edges)
	// Lower quartile rather than median: 1u caps dominate the small end
	return edges[len(edges)/4]
}

// fitAxis snaps each center to an integer-ish grid index using the seed
// pitch, then solves px ~= pitch*index + origin by least squares.
func fitAxis(centers []float64, seed float64) (axisFit, error) {
	if seed <= 0 {
		return axisFit{}, fmt.Errorf("non-positive pitch seed %.2f", seed)
	}
	if len(centers) == 0 {
		return axisFit{}, fmt.Errorf("no unit caps to fit")
	}
	minC := centers[0]
	for _, c := range centers[1:] {
		if c < minC {
			minC = c
		}
	}

	n := len(centers)
	a := mat.NewDense(n, 2, nil)
	b := mat.NewVecDense(n, nil)
	for i, c := range centers {
		idx := math.Round((c - minC) / seed)
		a.Set(i, 0, idx)
		a.Set(i, 1, 1)
		b.SetVec(i, c)
	}

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		// Degenerate when every cap sits on one grid line (single row or
		// column); the seed is all we have.
		return axisFit{Origin: minC - seed/2, Pitch: seed}, nil
	}

	pitch := x.AtVec(0)
	if pitch <= 0 || math.Abs(pitch-seed) > seed/2 {
		return axisFit{Origin: minC - seed/2, Pitch: seed}, nil
	}
	// Origin shifts back half a pitch so a cap centered on index 0 starts
	// at unit position 0.
	return axisFit{Origin: x.AtVec(1) - pitch/2, Pitch: pitch}, nil
}

// snapQuarter rounds a unit measure to the nearest quarter unit, the
// granularity real keyboard layouts use.
func snapQuarter(v float64) float64 {
	return math.Round(v*4) / 4
}
