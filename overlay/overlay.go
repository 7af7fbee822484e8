// Package overlay shows a fullscreen region-selection overlay. The user drags
// a rectangle over a dimmed screenshot of the desktop; Escape cancels.
package overlay

import (
	"sync"

	"tts-reader/screenshot"
)

// Selector picks a screen region interactively.
type Selector interface {
	// Select blocks until the user drags a region or cancels. ok is false
	// when the user dismissed the overlay without selecting.
	Select() (region screenshot.Region, ok bool, err error)
}

// New returns the platform selector. Select calls are serialized: the tray
// menu and the hotkey thread can both fire the screenshot trigger, and only
// one overlay window may own the selection state at a time.
func New() Selector {
	return &serialSelector{inner: newSelector()}
}

type serialSelector struct {
	mu    sync.Mutex
	inner Selector
}

func (s *serialSelector) Select() (screenshot.Region, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Select()
}
