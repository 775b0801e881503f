// Package panels provides the side panels of the annotator window.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"keymatrix/internal/app"
	"keymatrix/internal/matrix"
	"keymatrix/ui/canvas"
)

var modeNames = []string{"Rows", "Columns", "Remove"}

func modeFromName(name string) matrix.Mode {
	switch name {
	case "Columns":
		return matrix.ModeColumn
	case "Remove":
		return matrix.ModeRemove
	default:
		return matrix.ModeRow
	}
}

var removeTargetNames = []string{"Both", "Row only", "Column only"}

func removeTargetFromName(name string) matrix.RemoveTarget {
	switch name {
	case "Row only":
		return matrix.RemoveRow
	case "Column only":
		return matrix.RemoveColumn
	default:
		return matrix.RemoveBoth
	}
}

// AnnotatePanel holds the annotation controls: mode selection, removal
// target, capture sensitivity, auto-annotation, progress, and the
// duplicate-position validation report.
type AnnotatePanel struct {
	state  *app.State
	window fyne.Window
	canvas *canvas.KeyboardCanvas
	box    *fyne.Container

	modeRadio        *widget.RadioGroup
	removeSelect     *widget.Select
	sensitivitySlide *widget.Slider
	sensitivityLabel *widget.Label

	progressLabel   *widget.Label
	validationLabel *widget.Label
}

// NewAnnotatePanel creates the annotation panel over the shared state
// and canvas. The window is needed for confirmation dialogs.
func NewAnnotatePanel(state *app.State, window fyne.Window, kc *canvas.KeyboardCanvas) *AnnotatePanel {
	ap := &AnnotatePanel{state: state, window: window, canvas: kc}

	ap.modeRadio = widget.NewRadioGroup(modeNames, func(name string) {
		mode := modeFromName(name)
		kc.SetMode(mode)
		ap.removeSelect.Enable()
		if mode != matrix.ModeRemove {
			ap.removeSelect.Disable()
		}
		state.Emit(app.EventToolChanged, mode)
	})
	ap.modeRadio.SetSelected("Rows")

	ap.removeSelect = widget.NewSelect(removeTargetNames, func(name string) {
		if a := state.Annotator; a != nil {
			a.RemoveTarget = removeTargetFromName(name)
		}
	})
	ap.removeSelect.SetSelected("Both")
	ap.removeSelect.Disable()

	ap.sensitivityLabel = widget.NewLabel("")
	ap.sensitivitySlide = widget.NewSlider(0.05, 1.0)
	ap.sensitivitySlide.Step = 0.05
	ap.sensitivitySlide.Value = matrix.DefaultSensitivity
	ap.sensitivitySlide.OnChanged = func(v float64) {
		if a := state.Annotator; a != nil {
			a.Sensitivity = v
		}
		ap.updateSensitivityLabel(v)
	}
	ap.updateSensitivityLabel(matrix.DefaultSensitivity)

	autoButton := widget.NewButton("Auto-annotate", ap.AutoAnnotate)

	ap.progressLabel = widget.NewLabel("")
	ap.progressLabel.Wrapping = fyne.TextWrapWord
	ap.validationLabel = widget.NewLabel("")
	ap.validationLabel.Wrapping = fyne.TextWrapWord

	ap.box = container.NewVBox(
		widget.NewCard("Draw", "", container.NewVBox(
			ap.modeRadio,
			widget.NewLabel("Remove target:"),
			ap.removeSelect,
		)),
		widget.NewCard("Sensitivity", "", container.NewVBox(
			ap.sensitivityLabel,
			ap.sensitivitySlide,
		)),
		widget.NewCard("Matrix", "", container.NewVBox(
			autoButton,
			ap.progressLabel,
			ap.validationLabel,
		)),
	)

	state.On(app.EventAssignmentsChanged, func(interface{}) { ap.Update() })
	state.On(app.EventLayoutLoaded, func(interface{}) { ap.Update() })

	ap.Update()
	return ap
}

// Container returns the panel's root container.
func (ap *AnnotatePanel) Container() fyne.CanvasObject {
	return ap.box
}

func (ap *AnnotatePanel) updateSensitivityLabel(v float64) {
	ap.sensitivityLabel.SetText(fmt.Sprintf("Capture distance: %.2f u", v))
}

// AutoAnnotate runs whole-layout annotation, asking first when it would
// overwrite existing assignments.
func (ap *AnnotatePanel) AutoAnnotate() {
	a := ap.state.Annotator
	if a == nil {
		return
	}

	run := func() {
		a.AutoAnnotate()
		ap.state.AssignmentsChanged()
	}

	p := a.Store().Progress()
	if p.RowsDefined > 0 || p.ColsDefined > 0 {
		dialog.ShowConfirm("Auto-annotate",
			"Existing row and column assignments will be replaced. Continue?",
			func(ok bool) {
				if ok {
					run()
				}
			}, ap.window)
		return
	}
	run()
}

// Update refreshes the progress readout and validation report.
func (ap *AnnotatePanel) Update() {
	a := ap.state.Annotator
	if a == nil {
		return
	}

	p := a.Store().Progress()
	ap.progressLabel.SetText(fmt.Sprintf(
		"%d rows, %d columns defined\n%d keys without row, %d without column",
		p.RowsDefined, p.ColsDefined, p.KeysLeftForRows, p.KeysLeftForCols))

	ap.validationLabel.SetText(formatReport(a.Store().Validate()))
}
