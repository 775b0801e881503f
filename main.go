// Package main provides the entry point for the Keymatrix application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"keymatrix/internal/app"
	"keymatrix/internal/version"
	"keymatrix/ui/mainwindow"
	"keymatrix/ui/prefs"
)

const appTitle = "Keymatrix"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("keymatrix")
	fyneApp.Settings().SetTheme(&app.AnnotatorTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a layout given on the command line, else the last one used
	layoutPath := appPrefs.String(prefs.KeyLastLayout)
	if len(os.Args) > 1 {
		layoutPath = os.Args[1]
	}
	if layoutPath != "" {
		if err := appState.LoadLayout(layoutPath); err != nil {
			log.Printf("Failed to load layout %s: %v", layoutPath, err)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.SavePreferences()
	})

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: saving preferences before restart...")
				win.SavePreferences()
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
