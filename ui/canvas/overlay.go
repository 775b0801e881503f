package canvas

import (
	"image/color"
	"strconv"

	"keymatrix/internal/export"
	"keymatrix/internal/matrix"
	"keymatrix/pkg/colorutil"
	"keymatrix/pkg/geometry"
)

var (
	highlightColor = colorutil.Yellow
	chipBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

// modeColor returns the line color for the active annotation mode.
func (kc *KeyboardCanvas) modeColor() color.RGBA {
	if kc.mode == matrix.ModeColumn {
		return colorutil.Blue
	}
	return colorutil.Red
}

// drawOverlays paints the transient interaction state over the rendered
// layout: the rubber line of a pending draw sequence, the highlighted
// group line under the cursor, and the pending renumber buffer.
func (kc *KeyboardCanvas) drawOverlays(p *export.Painter) {
	a := kc.annotator

	if first, drawing := a.Drawing(); drawing && kc.hasCursor {
		p.Line(geometry.NewSegment(first, kc.cursor), kc.modeColor())
	}

	dim, n, hovered := a.HoveredGroup()
	if !hovered {
		return
	}

	for _, seg := range a.GroupSegments(dim, n) {
		p.Line(seg, highlightColor)
	}
	kc.drawRenumberChip(p, dim, n)
}

// drawRenumberChip shows the hovered group's index, or the digits typed
// so far, in a small chip beside the cursor.
func (kc *KeyboardCanvas) drawRenumberChip(p *export.Painter, dim matrix.Dimension, n int) {
	if !kc.hasCursor {
		return
	}

	label := dim.String() + " " + strconv.Itoa(n)
	if buf := kc.annotator.RenumberBuffer(); buf != "" {
		label += " > " + buf
	}

	scale := kc.glyphScale()
	x, y := p.ToPx(kc.cursor)
	x += 12
	y -= 6 * scale

	w := export.TextWidth(label, scale)
	p.FillRect(x-2*scale, y-2*scale, x+w+2*scale, y+7*scale, chipBackground)
	p.Text(label, x, y, scale, colorutil.White)
}
