// Package hotkey registers system-wide hotkeys and invokes a callback per
// press. Each listener owns a dedicated message-loop goroutine; registration
// conflicts surface synchronously from Listen.
package hotkey

import (
	"log"

	"tts-reader/config"
)

// Listener is a registered global hotkey. Stop unregisters it and shuts the
// listener's loop down.
type Listener struct {
	combo string
	stop  func()
}

// Listen registers combo (e.g. "alt+q") and invokes onTrigger on every
// press. The callback runs on the listener's loop goroutine; panics in it are
// caught and logged so they cannot kill the loop.
func Listen(combo string, onTrigger func()) (*Listener, error) {
	chord, err := config.ParseHotkey(combo)
	if err != nil {
		return nil, err
	}

	guarded := func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey callback for %q: %v", combo, r)
			}
		}()
		onTrigger()
	}

	stop, err := listen(chord, guarded)
	if err != nil {
		return nil, err
	}
	log.Printf("Global hotkey %q registered", combo)
	return &Listener{combo: combo, stop: stop}, nil
}

// Combo returns the hotkey string this listener was registered with.
func (l *Listener) Combo() string { return l.combo }

// Stop unregisters the hotkey. Safe to call once per listener.
func (l *Listener) Stop() {
	if l.stop != nil {
		l.stop()
		l.stop = nil
		log.Printf("Global hotkey %q unregistered", l.combo)
	}
}
