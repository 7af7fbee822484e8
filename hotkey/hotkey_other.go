//go:build !windows

package hotkey

import (
	"log"
	"sync"
	"unicode"

	gohook "github.com/robotn/gohook"

	"tts-reader/config"
)

// Non-Windows builds use a single shared gohook event loop and match combos
// by tracking modifier key state, the way the keyboard hook reports it.

type binding struct {
	parts []string // modifiers..., key
	cb    func()
}

var (
	hookMu      sync.Mutex
	hookStarted bool
	bindings    = map[int]*binding{}
	nextBinding int
)

func listen(chord config.Chord, onTrigger func()) (func(), error) {
	hookMu.Lock()
	defer hookMu.Unlock()

	if !hookStarted {
		hookStarted = true
		go runHookLoop()
	}

	nextBinding++
	id := nextBinding
	bindings[id] = &binding{parts: chord.Parts, cb: onTrigger}

	stop := func() {
		hookMu.Lock()
		delete(bindings, id)
		hookMu.Unlock()
	}
	return stop, nil
}

func runHookLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in hotkey hook loop: %v", r)
		}
	}()

	evChan := gohook.Start()
	if evChan == nil {
		log.Printf("ERROR: gohook.Start() returned nil channel")
		return
	}

	pressed := map[string]bool{}
	for ev := range evChan {
		if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
			continue
		}
		down := ev.Kind == gohook.KeyDown
		if name := modifierName(ev.Rawcode); name != "" {
			pressed[name] = down
			continue
		}
		if !down {
			continue
		}
		dispatch(pressed, keyName(ev))
	}
	log.Printf("Hotkey hook event channel closed")
}

func dispatch(pressed map[string]bool, key string) {
	if key == "" {
		return
	}
	hookMu.Lock()
	var matched []*binding
	for _, b := range bindings {
		if comboMatches(b.parts, pressed, key) {
			matched = append(matched, b)
		}
	}
	hookMu.Unlock()
	for _, b := range matched {
		b.cb()
	}
}

func comboMatches(parts []string, pressed map[string]bool, key string) bool {
	if len(parts) < 2 || parts[len(parts)-1] != key {
		return false
	}
	for _, mod := range parts[:len(parts)-1] {
		name := mod
		if name == "cmd" || name == "super" {
			name = "win"
		}
		if !pressed[name] {
			return false
		}
	}
	return true
}

func modifierName(rawcode uint16) string {
	switch rawcode {
	case 29, 97, 162, 163: // left/right ctrl (evdev and VK codes)
		return "ctrl"
	case 56, 100, 164, 165: // left/right alt
		return "alt"
	case 42, 54, 160, 161: // left/right shift
		return "shift"
	case 125, 126, 91, 92: // super/meta
		return "win"
	}
	return ""
}

func keyName(ev gohook.Event) string {
	r := unicode.ToLower(rune(ev.Keychar))
	if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
		return string(r)
	}
	return ""
}
