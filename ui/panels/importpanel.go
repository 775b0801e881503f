package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"keymatrix/internal/app"
	"keymatrix/internal/detect"
)

// ImportPanel builds a layout from a keyboard photo or scan: keycap
// detection, grid fitting, and optional legend OCR.
type ImportPanel struct {
	state  *app.State
	window fyne.Window
	box    *fyne.Container

	pathLabel   *widget.Label
	ocrCheck    *widget.Check
	runButton   *widget.Button
	resultLabel *widget.Label

	imagePath string
}

// NewImportPanel creates the import panel. The window is needed for
// file dialogs.
func NewImportPanel(state *app.State, window fyne.Window) *ImportPanel {
	ip := &ImportPanel{state: state, window: window}

	ip.pathLabel = widget.NewLabel("No image selected")
	ip.pathLabel.Wrapping = fyne.TextWrapBreak

	browseButton := widget.NewButton("Choose image...", ip.browse)

	ip.ocrCheck = widget.NewCheck("Read legends (OCR)", nil)

	ip.runButton = widget.NewButton("Detect keys", ip.run)
	ip.runButton.Disable()

	ip.resultLabel = widget.NewLabel("")
	ip.resultLabel.Wrapping = fyne.TextWrapWord

	ip.box = container.NewVBox(
		widget.NewCard("Import from image", "", container.NewVBox(
			browseButton,
			ip.pathLabel,
			ip.ocrCheck,
			ip.runButton,
			ip.resultLabel,
		)),
	)
	return ip
}

// Container returns the panel's root container.
func (ip *ImportPanel) Container() fyne.CanvasObject {
	return ip.box
}

func (ip *ImportPanel) browse() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		ip.imagePath = reader.URI().Path()
		ip.pathLabel.SetText(ip.imagePath)
		ip.runButton.Enable()
	}, ip.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}))
	fd.Show()
}

func (ip *ImportPanel) run() {
	if ip.imagePath == "" {
		return
	}

	params := detect.DefaultParams()
	var result *detect.Result
	var err error
	if ip.ocrCheck.Checked {
		result, err = detect.FileWithLegends(ip.imagePath, params)
	} else {
		result, err = detect.File(ip.imagePath, params)
	}
	if err != nil {
		ip.resultLabel.SetText(fmt.Sprintf("Detection failed: %v", err))
		return
	}

	ip.resultLabel.SetText(fmt.Sprintf(
		"%d keys found, pitch %.1f x %.1f px",
		len(result.Keycaps), result.PitchX, result.PitchY))

	if ip.state.Modified {
		dialog.ShowConfirm("Replace layout",
			"The current layout has unsaved changes. Replace it with the detected layout?",
			func(ok bool) {
				if ok {
					ip.state.SetLayout(result.Layout)
				}
			}, ip.window)
		return
	}
	ip.state.SetLayout(result.Layout)
}
