// Package canvas provides the interactive keyboard canvas: the layout
// rendered in key units with pan, zoom, and the annotation gestures.
package canvas

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"keymatrix/internal/matrix"
	"keymatrix/pkg/geometry"
)

const (
	minZoom  = 16.0
	maxZoom  = 200.0
	zoomStep = 1.25
)

// KeyboardCanvas displays an annotator's layout and feeds pointer
// gestures into it. Zoom is expressed in pixels per key unit.
type KeyboardCanvas struct {
	widget.BaseWidget

	annotator *matrix.Annotator

	raster *fynecanvas.Raster
	zoom   float64

	mode        matrix.Mode
	showLegends bool

	// cursor is the last hover position in key units.
	cursor    geometry.Point2D
	hasCursor bool

	scroll  *zoomScroll
	content *interactiveContent

	onChange     func()
	onZoomChange func(zoom float64)
	onStatus     func(msg string)
}

// NewKeyboardCanvas creates a canvas over the given annotator.
func NewKeyboardCanvas(a *matrix.Annotator) *KeyboardCanvas {
	kc := &KeyboardCanvas{
		annotator:   a,
		zoom:        48,
		mode:        matrix.ModeRow,
		showLegends: true,
	}

	kc.raster = fynecanvas.NewRaster(kc.draw)
	kc.raster.ScaleMode = fynecanvas.ImageScalePixels

	kc.content = newInteractiveContent(kc, kc.raster)
	kc.scroll = newZoomScroll(kc.content, kc)

	kc.ExtendBaseWidget(kc)
	kc.updateContentSize()
	return kc
}

// Container returns the canvas container for embedding in layouts.
func (kc *KeyboardCanvas) Container() fyne.CanvasObject {
	return kc.scroll
}

// SetAnnotator replaces the annotator, e.g. after loading a layout.
func (kc *KeyboardCanvas) SetAnnotator(a *matrix.Annotator) {
	kc.annotator = a
	kc.hasCursor = false
	kc.updateContentSize()
}

// Annotator returns the annotator the canvas drives.
func (kc *KeyboardCanvas) Annotator() *matrix.Annotator {
	return kc.annotator
}

// SetMode switches the annotation mode, cancelling any pending gesture.
func (kc *KeyboardCanvas) SetMode(mode matrix.Mode) {
	if kc.annotator != nil {
		kc.annotator.CancelGesture()
		kc.annotator.RenumberCancel()
	}
	kc.mode = mode
	kc.Refresh()
}

// Mode returns the active annotation mode.
func (kc *KeyboardCanvas) Mode() matrix.Mode {
	return kc.mode
}

// SetShowLegends toggles drawing of keycap legends.
func (kc *KeyboardCanvas) SetShowLegends(show bool) {
	kc.showLegends = show
	kc.Refresh()
}

// SetZoom sets the zoom in pixels per key unit.
func (kc *KeyboardCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	kc.zoom = zoom
	kc.updateContentSize()

	if kc.onZoomChange != nil {
		kc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom in pixels per key unit.
func (kc *KeyboardCanvas) Zoom() float64 {
	return kc.zoom
}

// ZoomIn increases the zoom level.
func (kc *KeyboardCanvas) ZoomIn() {
	kc.SetZoom(kc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (kc *KeyboardCanvas) ZoomOut() {
	kc.SetZoom(kc.zoom / zoomStep)
}

// OnChange sets a callback invoked after any gesture mutates
// assignments.
func (kc *KeyboardCanvas) OnChange(callback func()) {
	kc.onChange = callback
}

// OnZoomChange sets a callback for zoom changes.
func (kc *KeyboardCanvas) OnZoomChange(callback func(zoom float64)) {
	kc.onZoomChange = callback
}

// OnStatus sets a callback for transient status messages.
func (kc *KeyboardCanvas) OnStatus(callback func(msg string)) {
	kc.onStatus = callback
}

// Refresh refreshes the canvas display.
func (kc *KeyboardCanvas) Refresh() {
	kc.raster.Refresh()
}

// leftClick routes a left click in key units into the active gesture.
func (kc *KeyboardCanvas) leftClick(p geometry.Point2D) {
	a := kc.annotator
	if a == nil {
		return
	}

	if _, drawing := a.Drawing(); drawing {
		if assigned := a.CommitClick(p); len(assigned) > 0 {
			kc.status(fmt.Sprintf("assigned %d keys", len(assigned)))
			kc.changed()
		}
		kc.Refresh()
		return
	}

	started := a.StartGesture(kc.mode, p)
	if started && kc.mode == matrix.ModeRemove {
		kc.status("assignment removed")
		kc.changed()
	}
	kc.Refresh()
}

// rightClick cancels the pending gesture or renumber session.
func (kc *KeyboardCanvas) rightClick(p geometry.Point2D) {
	a := kc.annotator
	if a == nil {
		return
	}
	a.CancelGesture()
	a.RenumberCancel()
	kc.Refresh()
}

// hover tracks the cursor for the rubber line and drives the renumber
// session while no draw sequence is pending.
func (kc *KeyboardCanvas) hover(p geometry.Point2D) {
	kc.cursor = p
	kc.hasCursor = true
	if kc.annotator != nil {
		kc.annotator.ContinueHover(p)
	}
	kc.Refresh()
}

// hoverEnd clears the cursor when the pointer leaves the canvas.
func (kc *KeyboardCanvas) hoverEnd() {
	kc.hasCursor = false
	if kc.annotator != nil {
		kc.annotator.ContinueHover(geometry.NewPoint2D(-1e9, -1e9))
	}
	kc.Refresh()
}

// TypedRune feeds typed characters into the renumber session.
func (kc *KeyboardCanvas) TypedRune(r rune) {
	a := kc.annotator
	if a == nil {
		return
	}
	a.RenumberKeypress(r)
	kc.Refresh()
}

// TypedKey handles Enter and Escape for the renumber session.
func (kc *KeyboardCanvas) TypedKey(ev *fyne.KeyEvent) {
	a := kc.annotator
	if a == nil {
		return
	}
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		_, before, _ := a.HoveredGroup()
		a.RenumberCommit()
		if _, after, ok := a.HoveredGroup(); ok && after != before {
			kc.changed()
		}
		kc.Refresh()
	case fyne.KeyEscape:
		a.CancelGesture()
		a.RenumberCancel()
		kc.Refresh()
	}
}

func (kc *KeyboardCanvas) changed() {
	if kc.onChange != nil {
		kc.onChange()
	}
}

func (kc *KeyboardCanvas) status(msg string) {
	if kc.onStatus != nil {
		kc.onStatus(msg)
	}
}

// CreateRenderer implements fyne.Widget.
func (kc *KeyboardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(kc.scroll)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *KeyboardCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *KeyboardCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// interactiveContent wraps the raster to receive pointer events.
type interactiveContent struct {
	widget.BaseWidget
	canvas *KeyboardCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Hoverable = (*interactiveContent)(nil)

func newInteractiveContent(kc *KeyboardCanvas, raster *fynecanvas.Raster) *interactiveContent {
	ic := &interactiveContent{canvas: kc, raster: raster}
	ic.ExtendBaseWidget(ic)
	return ic
}

func (ic *interactiveContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.raster)
}

func (ic *interactiveContent) MinSize() fyne.Size {
	return ic.raster.MinSize()
}

// toUnits converts a widget position to key units.
func (ic *interactiveContent) toUnits(pos fyne.Position) geometry.Point2D {
	kc := ic.canvas
	origin := kc.viewOrigin()
	return geometry.NewPoint2D(
		float64(pos.X)/kc.zoom+origin.X,
		float64(pos.Y)/kc.zoom+origin.Y,
	)
}

func (ic *interactiveContent) Tapped(ev *fyne.PointEvent) {
	size := ic.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	ic.canvas.leftClick(ic.toUnits(ev.Position))
}

func (ic *interactiveContent) TappedSecondary(ev *fyne.PointEvent) {
	ic.canvas.rightClick(ic.toUnits(ev.Position))
}

func (ic *interactiveContent) MouseIn(ev *desktop.MouseEvent) {
	ic.canvas.hover(ic.toUnits(ev.Position))
}

func (ic *interactiveContent) MouseMoved(ev *desktop.MouseEvent) {
	ic.canvas.hover(ic.toUnits(ev.Position))
}

func (ic *interactiveContent) MouseOut() {
	ic.canvas.hoverEnd()
}

func (ic *interactiveContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ic.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ic.canvas.ZoomOut()
	}
}
