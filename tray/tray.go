// Package tray runs the system tray menu. Run blocks until Quit is chosen,
// so it belongs on the main goroutine.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Callbacks are invoked from the tray's own goroutine.
type Callbacks struct {
	OnReadSelection func()
	OnScreenshot    func()
	OnReplay        func()
	OnOpenLogs      func()
	OnExit          func()
}

// Run starts the tray event loop and blocks until exit.
func Run(cb Callbacks) {
	systray.Run(func() { onReady(cb) }, func() {
		if cb.OnExit != nil {
			cb.OnExit()
		}
	})
}

// Quit asks the tray loop to exit, which unblocks Run.
func Quit() {
	systray.Quit()
}

func onReady(cb Callbacks) {
	systray.SetIcon(iconData)
	systray.SetTitle("TTS Reader")
	systray.SetTooltip("TTS Reader: reads selected or on-screen text aloud")

	mRead := systray.AddMenuItem("Read Selection", "Read the currently selected text")
	mShot := systray.AddMenuItem("Read Screenshot", "Select a screen region and read recognized text")
	mReplay := systray.AddMenuItem("Read Again", "Repeat the last spoken text")
	systray.AddSeparator()
	mLogs := systray.AddMenuItem("Open Log", "Show the log file")
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		for {
			select {
			case <-mRead.ClickedCh:
				if cb.OnReadSelection != nil {
					go cb.OnReadSelection()
				}
			case <-mShot.ClickedCh:
				if cb.OnScreenshot != nil {
					go cb.OnScreenshot()
				}
			case <-mReplay.ClickedCh:
				if cb.OnReplay != nil {
					go cb.OnReplay()
				}
			case <-mLogs.ClickedCh:
				if cb.OnOpenLogs != nil {
					cb.OnOpenLogs()
				}
			case <-mQuit.ClickedCh:
				log.Printf("Quit selected from tray menu")
				systray.Quit()
				return
			}
		}
	}()
}
