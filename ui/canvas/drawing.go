package canvas

import (
	"image"
	"image/draw"
	"math"

	"fyne.io/fyne/v2"

	"keymatrix/internal/export"
	"keymatrix/pkg/geometry"
)

// renderOptions returns the snapshot options matching the current view.
func (kc *KeyboardCanvas) renderOptions() export.Options {
	opts := export.DefaultOptions()
	opts.Scale = kc.zoom
	opts.Legends = kc.showLegends
	return opts
}

// viewOrigin returns the key-unit position of the canvas top-left pixel.
func (kc *KeyboardCanvas) viewOrigin() geometry.Point2D {
	if kc.annotator == nil {
		return geometry.Point2D{}
	}
	return export.Origin(kc.annotator, kc.renderOptions())
}

// updateContentSize resizes the raster to the rendered layout size.
func (kc *KeyboardCanvas) updateContentSize() {
	size := fyne.NewSize(400, 300)
	if kc.annotator != nil {
		opts := kc.renderOptions()
		bb := export.Bounds(kc.annotator)
		w := float32((bb.Width + 2*opts.Padding) * kc.zoom)
		h := float32((bb.Height + 2*opts.Padding) * kc.zoom)
		if w >= 1 && h >= 1 {
			size = fyne.NewSize(w, h)
		}
	}

	kc.raster.SetMinSize(size)
	kc.raster.Resize(size)
	if kc.content != nil {
		kc.content.Resize(size)
		kc.content.Refresh()
	}
	kc.raster.Refresh()
	if kc.scroll != nil {
		kc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (kc *KeyboardCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	opts := kc.renderOptions()
	draw.Draw(output, output.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	if kc.annotator == nil || w == 0 || h == 0 {
		return output
	}

	base := export.Render(kc.annotator, opts)
	draw.Draw(output, base.Bounds(), base, image.Point{}, draw.Src)

	painter := export.NewPainter(output, kc.zoom, kc.viewOrigin())
	kc.drawOverlays(painter)
	return output
}

// glyphScale returns the overlay text scale for the current zoom.
func (kc *KeyboardCanvas) glyphScale() int {
	s := int(math.Round(kc.zoom / 16))
	if s < 1 {
		s = 1
	}
	return s
}
