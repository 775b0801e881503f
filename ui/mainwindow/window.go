// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"keymatrix/internal/app"
	"keymatrix/internal/export"
	"keymatrix/internal/layout"
	"keymatrix/internal/version"
	"keymatrix/ui/canvas"
	"keymatrix/ui/panels"
	"keymatrix/ui/prefs"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas        *canvas.KeyboardCanvas
	annotatePanel *panels.AnnotatePanel
	importPanel   *panels.ImportPanel
	statusBar     *widget.Label

	legendsItem *fyne.MenuItem
	showLegends bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Keymatrix")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		state:       state,
		prefs:       appPrefs,
		showLegends: appPrefs.Bool(prefs.KeyShowLegends, true),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupKeyboard()
	mw.restorePreferences()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewKeyboardCanvas(mw.state.Annotator)
	mw.canvas.SetShowLegends(mw.showLegends)
	mw.canvas.OnChange(func() {
		mw.state.AssignmentsChanged()
	})
	mw.canvas.OnStatus(mw.updateStatus)

	mw.annotatePanel = panels.NewAnnotatePanel(mw.state, mw.Window, mw.canvas)
	mw.importPanel = panels.NewImportPanel(mw.state, mw.Window)

	sideTabs := container.NewAppTabs(
		container.NewTabItem("Annotate", mw.annotatePanel.Container()),
		container.NewTabItem("Import", mw.importPanel.Container()),
	)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(sideTabs, canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	actualBtn := widget.NewButton("1:1", func() {
		mw.canvas.SetZoom(48)
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", mw.onNewLayout),
		fyne.NewMenuItem("Open Layout...", mw.onOpenLayout),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSaveLayout),
		fyne.NewMenuItem("Save As...", mw.onSaveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Snapshot...", mw.onExportSnapshot),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.legendsItem = fyne.NewMenuItem(legendsLabel(mw.showLegends), mw.onToggleLegends)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItemSeparator(),
		mw.legendsItem,
	)

	matrixMenu := fyne.NewMenu("Matrix",
		fyne.NewMenuItem("Auto-annotate", mw.onAutoAnnotate),
		fyne.NewMenuItem("Validate", mw.onValidate),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, matrixMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventLayoutLoaded, func(data interface{}) {
		mw.canvas.SetAnnotator(mw.state.Annotator)
		mw.canvas.Annotator().Sensitivity = mw.prefs.FloatWithFallback(
			prefs.KeySensitivity, mw.canvas.Annotator().Sensitivity)
		if path, ok := data.(string); ok && path != "" {
			mw.SetTitle("Keymatrix - " + filepath.Base(path))
			mw.updateStatus("Layout loaded: " + path)
		} else {
			mw.SetTitle("Keymatrix")
			mw.updateStatus("Layout replaced")
		}
	})

	mw.state.On(app.EventLayoutSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Keymatrix - " + filepath.Base(path))
			mw.updateStatus("Saved: " + path)
		}
	})

	mw.state.On(app.EventAssignmentsChanged, func(interface{}) {
		mw.canvas.Refresh()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setupKeyboard routes typed input to the canvas for the renumber
// machine.
func (mw *MainWindow) setupKeyboard() {
	mw.Canvas().SetOnTypedRune(mw.canvas.TypedRune)
	mw.Canvas().SetOnTypedKey(mw.canvas.TypedKey)
}

// restorePreferences applies saved window size and sensitivity.
func (mw *MainWindow) restorePreferences() {
	w := mw.prefs.FloatWithFallback(prefs.KeyWindowWidth, 1200)
	h := mw.prefs.FloatWithFallback(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	if a := mw.state.Annotator; a != nil {
		a.Sensitivity = mw.prefs.FloatWithFallback(prefs.KeySensitivity, a.Sensitivity)
	}
}

// SavePreferences writes the current UI state to the preferences file.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	mw.prefs.SetBool(prefs.KeyShowLegends, mw.showLegends)
	if a := mw.state.Annotator; a != nil {
		mw.prefs.SetFloat(prefs.KeySensitivity, a.Sensitivity)
	}
	if mw.state.LayoutPath != "" {
		mw.prefs.SetString(prefs.KeyLastLayout, mw.state.LayoutPath)
	}
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Saving preferences failed: " + err.Error())
	}
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onNewLayout() {
	mw.state.SetLayout(&layout.Layout{})
	mw.state.SetModified(false)
	mw.SetTitle("Keymatrix - New Layout")
	mw.canvas.Refresh()
}

func (mw *MainWindow) onOpenLayout() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveLayout() {
	if mw.state.LayoutPath == "" {
		mw.onSaveLayoutAs()
		return
	}
	if err := mw.state.SaveLayout(mw.state.LayoutPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveLayoutAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveLayout(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("layout.json")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportSnapshot() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		mw.saveLastDir(path)

		opts := export.DefaultOptions()
		opts.Legends = mw.showLegends
		if err := export.WritePNG(path, mw.state.Annotator, opts); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Snapshot exported: " + path)
	}, mw.Window)
	fd.SetFileName("matrix.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func legendsLabel(on bool) string {
	if on {
		return "* Show Legends"
	}
	return "  Show Legends"
}

func (mw *MainWindow) onToggleLegends() {
	mw.showLegends = !mw.showLegends
	mw.legendsItem.Label = legendsLabel(mw.showLegends)
	mw.canvas.SetShowLegends(mw.showLegends)
}

func (mw *MainWindow) onAutoAnnotate() {
	mw.annotatePanel.AutoAnnotate()
}

func (mw *MainWindow) onValidate() {
	a := mw.state.Annotator
	if a == nil {
		return
	}
	report := a.Store().Validate()
	if report.IsValid {
		dialog.ShowInformation("Validation", "No duplicate matrix positions.", mw.Window)
		return
	}
	msg := fmt.Sprintf("%d matrix positions are shared by keys without distinct layout options.",
		len(report.DuplicatesWithoutOption))
	dialog.ShowInformation("Validation", msg, mw.Window)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Keymatrix",
		fmt.Sprintf("Keymatrix v%s\n\n"+
			"A keyboard switch-matrix annotation tool.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
