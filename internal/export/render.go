// Package export renders an annotated layout to a PNG snapshot: keycaps
// in their colors, matrix assignments, and the row and column group
// lines as drawn in the editor.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"keymatrix/internal/layout"
	"keymatrix/internal/matrix"
	"keymatrix/pkg/colorutil"
	"keymatrix/pkg/geometry"
)

// Options controls snapshot rendering.
type Options struct {
	// Scale is the number of pixels per key unit.
	Scale float64

	// Padding is the margin around the layout in key units.
	Padding float64

	Background  color.RGBA
	RowColor    color.RGBA
	ColumnColor color.RGBA

	// Legends draws each key's center legend when true.
	Legends bool
}

// DefaultOptions returns rendering options matching the editor's look.
func DefaultOptions() Options {
	return Options{
		Scale:       48,
		Padding:     0.5,
		Background:  color.RGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xFF},
		RowColor:    colorutil.Red,
		ColumnColor: colorutil.Blue,
		Legends:     true,
	}
}

// Bounds returns the bounding box of the annotator's keys in key units.
func Bounds(a *matrix.Annotator) geometry.Rect {
	var bb geometry.Rect
	first := true
	for _, k := range a.Store().Keys() {
		if first {
			bb = k.Bounds()
			first = false
			continue
		}
		bb = bb.Union(k.Bounds())
	}
	return bb
}

// Origin returns the key-unit position that maps to the top-left pixel
// of a rendered snapshot.
func Origin(a *matrix.Annotator, opts Options) geometry.Point2D {
	bb := Bounds(a)
	return geometry.NewPoint2D(bb.X-opts.Padding, bb.Y-opts.Padding)
}

// Render draws the annotator's layout into a new image.
func Render(a *matrix.Annotator, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	keys := a.Store().Keys()
	bb := Bounds(a)

	offX := bb.X - opts.Padding
	offY := bb.Y - opts.Padding
	w := int(math.Ceil((bb.Width + 2*opts.Padding) * opts.Scale))
	h := int(math.Ceil((bb.Height + 2*opts.Padding) * opts.Scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := NewPainter(img, opts.Scale, geometry.NewPoint2D(offX, offY))

	for _, k := range keys {
		r.drawKey(k, opts)
	}
	for _, dim := range []matrix.Dimension{matrix.Row, matrix.Column} {
		col := opts.RowColor
		if dim == matrix.Column {
			col = opts.ColumnColor
		}
		for _, n := range a.Store().UsedIndices(dim) {
			for _, seg := range a.GroupSegments(dim, n) {
				r.Line(seg, col)
			}
		}
	}
	for _, k := range keys {
		r.drawKeyText(k, opts)
	}
	return img
}

// WritePNG renders the layout and writes it as a PNG file.
func WritePNG(path string, a *matrix.Annotator, opts Options) error {
	img := Render(a, opts)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// Painter draws layout primitives into an RGBA image using a key-unit
// to pixel mapping. The editor canvas shares it for overlay drawing.
type Painter struct {
	img    *image.RGBA
	scale  float64
	origin geometry.Point2D
}

// NewPainter creates a painter over img with the given pixels-per-unit
// scale and key-unit origin for the top-left pixel.
func NewPainter(img *image.RGBA, scale float64, origin geometry.Point2D) *Painter {
	return &Painter{img: img, scale: scale, origin: origin}
}

// ToPx converts a key-unit position to pixel coordinates.
func (r *Painter) ToPx(p geometry.Point2D) (int, int) {
	return int((p.X - r.origin.X) * r.scale), int((p.Y - r.origin.Y) * r.scale)
}

func (r *Painter) drawKey(k *layout.Key, opts Options) {
	fill := colorutil.ParseHex(k.Color, colorutil.KeyGrey)
	if k.Ghost || k.Decal {
		fill.A = 0x60
	}

	b := k.Bounds()
	x1, y1 := r.ToPx(geometry.NewPoint2D(b.X, b.Y))
	x2, y2 := r.ToPx(geometry.NewPoint2D(b.X+b.Width, b.Y+b.Height))
	// One pixel gap between adjacent caps
	r.FillRect(x1+1, y1+1, x2-1, y2-1, fill)

	f := k.FaceBounds()
	fx1, fy1 := r.ToPx(geometry.NewPoint2D(f.X, f.Y))
	fx2, fy2 := r.ToPx(geometry.NewPoint2D(f.X+f.Width, f.Y+f.Height))
	r.StrokeRect(fx1, fy1, fx2, fy2, dim(fill))
}

func (r *Painter) drawKeyText(k *layout.Key, opts Options) {
	fill := colorutil.ParseHex(k.Color, colorutil.KeyGrey)
	text := colorutil.ContrastText(fill)

	f := k.FaceBounds()
	fx1, fy1 := r.ToPx(geometry.NewPoint2D(f.X, f.Y))
	fx2, fy2 := r.ToPx(geometry.NewPoint2D(f.X+f.Width, f.Y+f.Height))

	glyphScale := int(r.scale / 16)
	if glyphScale < 1 {
		glyphScale = 1
	}

	if opts.Legends {
		if legend := k.Labels[layout.SlotCenterLegend]; legend != "" {
			tw := TextWidth(legend, glyphScale)
			cx := (fx1+fx2)/2 - tw/2
			cy := (fy1+fy2)/2 - 5*glyphScale/2
			r.Text(legend, cx, cy, glyphScale, text)
		}
	}

	if m := k.Matrix(); m.HasRow() || m.HasCol() {
		label := m.String()
		r.Text(label, fx1+glyphScale, fy2-6*glyphScale, glyphScale, text)
	}
}

// FillRect fills a pixel rectangle.
func (r *Painter) FillRect(x1, y1, x2, y2 int, col color.RGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			r.img.SetRGBA(x, y, col)
		}
	}
}

// StrokeRect outlines a pixel rectangle.
func (r *Painter) StrokeRect(x1, y1, x2, y2 int, col color.RGBA) {
	for x := x1; x < x2; x++ {
		r.img.SetRGBA(x, y1, col)
		r.img.SetRGBA(x, y2-1, col)
	}
	for y := y1; y < y2; y++ {
		r.img.SetRGBA(x1, y, col)
		r.img.SetRGBA(x2-1, y, col)
	}
}

// Line rasterizes a key-unit segment with a 3 pixel stroke.
func (r *Painter) Line(seg geometry.Segment, col color.RGBA) {
	x1, y1 := r.ToPx(seg.A)
	x2, y2 := r.ToPx(seg.B)

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x1 + int(t*dx)
		y := y1 + int(t*dy)
		for ox := -1; ox <= 1; ox++ {
			for oy := -1; oy <= 1; oy++ {
				r.img.SetRGBA(x+ox, y+oy, col)
			}
		}
	}
}

// TextWidth returns the pixel width of a string at a glyph scale.
func TextWidth(s string, scale int) int {
	n := len([]rune(s))
	if n == 0 {
		return 0
	}
	return (n*4 - 1) * scale
}

// Text renders a string with the 3x5 glyph font, top-left at (x, y).
func (r *Painter) Text(s string, x, y, scale int, col color.RGBA) {
	for _, ch := range s {
		pattern := glyphPattern(ch)
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if pattern[row]&(1<<(2-c)) == 0 {
					continue
				}
				r.FillRect(x+c*scale, y+row*scale, x+(c+1)*scale, y+(row+1)*scale, col)
			}
		}
		x += 4 * scale
	}
}
