// Package detect builds a keyboard layout from a photograph or scan:
// keycap rectangles are extracted with OpenCV, fitted to a regular grid,
// converted to key units, and optionally labeled by OCR of the legends.
package detect

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"sort"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"

	"keymatrix/internal/layout"
	"keymatrix/pkg/geometry"
)

// Params controls keycap detection.
type Params struct {
	// MinKeyFrac and MaxKeyFrac bound a plausible keycap edge length as a
	// fraction of the smaller image dimension.
	MinKeyFrac float64
	MaxKeyFrac float64

	// BlockSize and C are the adaptive threshold parameters.
	BlockSize int
	C         float64
}

// DefaultParams returns detection parameters that work for straight-on
// photos and scans of full keyboards.
func DefaultParams() Params {
	return Params{
		MinKeyFrac: 0.02,
		MaxKeyFrac: 0.25,
		BlockSize:  51,
		C:          5,
	}
}

// Result holds the outcome of a detection run.
type Result struct {
	// Keycaps are the accepted keycap bounds in image pixels, sorted top
	// to bottom then left to right.
	Keycaps []geometry.RectInt

	// PitchX and PitchY are the estimated 1u pitches in pixels.
	PitchX float64
	PitchY float64

	// Layout is the detected layout in key units.
	Layout *layout.Layout
}

// File runs detection on an image file. PNG, JPEG, and TIFF inputs are
// supported.
func File(path string, params Params) (*Result, error) {
	mat, err := fileMat(path)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	return Mat(mat, params)
}

// fileMat decodes an image file into an OpenCV matrix.
func fileMat(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("decode %s: %w", path, err)
	}
	return matFromImage(img)
}

// Image runs detection on a decoded image.
func Image(img image.Image, params Params) (*Result, error) {
	mat, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	return Mat(mat, params)
}

// Mat runs detection on an OpenCV matrix.
func Mat(img gocv.Mat, params Params) (*Result, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	caps := findKeycaps(img, params)
	if len(caps) < 2 {
		return nil, fmt.Errorf("found %d keycap candidates, need at least 2", len(caps))
	}

	fit, err := fitGrid(caps)
	if err != nil {
		return nil, err
	}

	l := buildLayout(caps, fit)
	return &Result{
		Keycaps: caps,
		PitchX:  fit.X.Pitch,
		PitchY:  fit.Y.Pitch,
		Layout:  l,
	}, nil
}

// findKeycaps extracts candidate keycap bounds: grayscale, adaptive
// threshold, a closing pass to heal legend holes, then external contours
// filtered to plausible keycap sizes.
func findKeycaps(img gocv.Mat, params Params) []geometry.RectInt {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	blockSize := params.BlockSize
	if blockSize%2 == 0 {
		blockSize++
	}
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.AdaptiveThreshold(gray, &mask, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, blockSize, float32(params.C))

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 5, Y: 5})
	defer kernel.Close()
	gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)

	minDim := img.Cols()
	if img.Rows() < minDim {
		minDim = img.Rows()
	}
	minPx := int(params.MinKeyFrac * float64(minDim))
	maxPx := int(params.MaxKeyFrac * float64(minDim))

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var caps []geometry.RectInt
	for i := 0; i < contours.Size(); i++ {
		r := gocv.BoundingRect(contours.At(i))
		w, h := r.Dx(), r.Dy()
		if w < minPx || h < minPx || w > maxPx*6 || h > maxPx {
			continue // too small to be a cap, or taller than any cap
		}
		// Keycaps are at most ~8u wide (spacebars) and near-square tall
		if float64(w) > 8.5*float64(h) {
			continue
		}
		caps = append(caps, geometry.RectInt{X: r.Min.X, Y: r.Min.Y, Width: w, Height: h})
	}

	sort.SliceStable(caps, func(i, j int) bool {
		ci, cj := caps[i].Center(), caps[j].Center()
		if ci.Y != cj.Y {
			return ci.Y < cj.Y
		}
		return ci.X < cj.X
	})
	return caps
}

// buildLayout converts detected pixel bounds to key units using the grid
// fit, snapping positions and sizes to quarter units.
func buildLayout(caps []geometry.RectInt, fit gridFit) *layout.Layout {
	l := &layout.Layout{Name: "detected"}
	for _, r := range caps {
		c := r.Center()
		w := snapQuarter(float64(r.Width) / fit.X.Pitch)
		h := snapQuarter(float64(r.Height) / fit.Y.Pitch)
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		k := &layout.Key{
			X:      snapQuarter(fit.X.ToUnits(c.X) - w/2),
			Y:      snapQuarter(fit.Y.ToUnits(c.Y) - h/2),
			Width:  w,
			Height: h,
		}
		l.Keys = append(l.Keys, k)
	}
	return l
}

// matFromImage converts a decoded Go image to an OpenCV matrix.
func matFromImage(img image.Image) (gocv.Mat, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return gocv.NewMat(), fmt.Errorf("encode image: %w", err)
	}
	mat, err := gocv.IMDecode(buf.Bytes(), gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("convert image: %w", err)
	}
	return mat, nil
}
