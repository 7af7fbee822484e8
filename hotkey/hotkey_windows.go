//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"tts-reader/config"
)

const modNoRepeat = 0x4000

// Wrappers for hotkey functions missing from lxn/win.
var (
	user32                = syscall.NewLazyDLL("user32.dll")
	procRegisterHotKey    = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey  = user32.NewProc("UnregisterHotKey")
	procPostThreadMessage = user32.NewProc("PostThreadMessageW")
)

var nextHotkeyID atomic.Int32

// listen runs RegisterHotKey plus a GetMessage loop on a dedicated locked
// thread. RegisterHotKey with a NULL hwnd delivers WM_HOTKEY to the
// registering thread's queue, so registration and the loop must share the
// thread.
func listen(chord config.Chord, onTrigger func()) (func(), error) {
	id := nextHotkeyID.Add(1)
	ready := make(chan error, 1)
	done := make(chan struct{})
	var threadID uint32

	go func() {
		// The message queue is per-OS-thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)

		threadID = windows.GetCurrentThreadId()
		if !registerHotKey(id, chord.Modifiers|modNoRepeat, chord.VK) {
			// Some layered input tools reject MOD_NOREPEAT; retry plain.
			if !registerHotKey(id, chord.Modifiers, chord.VK) {
				ready <- fmt.Errorf("RegisterHotKey failed, likely hotkey conflict")
				return
			}
		}
		defer unregisterHotKey(id)
		ready <- nil

		var msg win.MSG
		for {
			r := win.GetMessage(&msg, 0, 0, 0)
			if r == 0 || r == -1 { // WM_QUIT or error
				return
			}
			if msg.Message == win.WM_HOTKEY && int32(msg.WParam) == int32(id) {
				onTrigger()
			}
		}
	}()

	if err := <-ready; err != nil {
		return nil, err
	}

	stop := func() {
		procPostThreadMessage.Call(uintptr(threadID), win.WM_QUIT, 0, 0)
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
	}
	return stop, nil
}

func registerHotKey(id int32, modifiers, vk uint32) bool {
	r, _, _ := procRegisterHotKey.Call(0, uintptr(id), uintptr(modifiers), uintptr(vk))
	return r != 0
}

func unregisterHotKey(id int32) {
	procUnregisterHotKey.Call(0, uintptr(id))
}
