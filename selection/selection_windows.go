//go:build windows

package selection

import (
	"syscall"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"
)

const (
	wmCopyMsg        = 0x0301 // WM_COPY
	wmGetText        = 0x000D // WM_GETTEXT
	wmGetTextLength  = 0x000E // WM_GETTEXTLENGTH
	emGetSel         = 0x00B0 // EM_GETSEL
	vkShift          = 0x10
	vkControl        = 0x11
	vkMenu           = 0x12
	vkInsert         = 0x2D
	vkC              = 0x43
	keyEventFKeyUp   = 0x0002
	asyncKeyDownMask = 0x8000
)

// Wrappers for input/query functions missing from lxn/win.
var (
	user32               = syscall.NewLazyDLL("user32.dll")
	procKeybdEvent       = user32.NewProc("keybd_event")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
	procGetGUIThreadInfo = user32.NewProc("GetGUIThreadInfo")
)

type guiThreadInfo struct {
	CbSize        uint32
	Flags         uint32
	HwndActive    win.HWND
	HwndFocus     win.HWND
	HwndCapture   win.HWND
	HwndMenuOwner win.HWND
	HwndMoveSize  win.HWND
	HwndCaret     win.HWND
	RcCaret       win.RECT
}

// focusWindow resolves the window with keyboard focus inside the foreground
// window's thread, falling back to the foreground window itself.
func focusWindow() win.HWND {
	foreground := win.GetForegroundWindow()
	if foreground == 0 {
		return 0
	}
	threadID := win.GetWindowThreadProcessId(foreground, nil)
	if threadID == 0 {
		return foreground
	}
	var info guiThreadInfo
	info.CbSize = uint32(unsafe.Sizeof(info))
	r, _, _ := procGetGUIThreadInfo.Call(uintptr(threadID), uintptr(unsafe.Pointer(&info)))
	if r == 0 || info.HwndFocus == 0 {
		return foreground
	}
	return info.HwndFocus
}

// winQuerier reads an edit-style control's selection via EM_GETSEL and
// WM_GETTEXT. This works for classic Edit/RichEdit controls only, which is
// exactly why it is tried first and never trusted as the sole strategy.
type winQuerier struct{}

func newQuerier() Querier { return winQuerier{} }

func (winQuerier) FocusedSelection() string {
	hwnd := focusWindow()
	if hwnd == 0 {
		return ""
	}

	var start, end uint32
	win.SendMessage(hwnd, emGetSel, uintptr(unsafe.Pointer(&start)), uintptr(unsafe.Pointer(&end)))
	if end <= start {
		return ""
	}

	length := win.SendMessage(hwnd, wmGetTextLength, 0, 0)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	copied := win.SendMessage(hwnd, wmGetText, length+1, uintptr(unsafe.Pointer(&buf[0])))
	if copied == 0 {
		return ""
	}
	if uintptr(end) > copied {
		end = uint32(copied)
	}
	if start >= end {
		return ""
	}
	return string(utf16.Decode(buf[start:end]))
}

// winInjector dispatches copy triggers with WM_COPY and keybd_event chords.
type winInjector struct{}

func newInjector() Injector { return winInjector{} }

func (winInjector) SendCopyCommand() bool {
	hwnd := focusWindow()
	if hwnd == 0 {
		return false
	}
	win.SendMessage(hwnd, wmCopyMsg, 0, 0)
	return true
}

func (winInjector) SendCtrlC() bool {
	keybdEvent(vkControl, 0)
	keybdEvent(vkC, 0)
	keybdEvent(vkC, keyEventFKeyUp)
	keybdEvent(vkControl, keyEventFKeyUp)
	return true
}

func (winInjector) SendCtrlInsert() bool {
	keybdEvent(vkControl, 0)
	keybdEvent(vkInsert, 0)
	keybdEvent(vkInsert, keyEventFKeyUp)
	keybdEvent(vkControl, keyEventFKeyUp)
	return true
}

func (winInjector) WaitModifierRelease(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !keyDown(vkMenu) && !keyDown(vkControl) && !keyDown(vkShift) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func keybdEvent(vk uint32, flags uint32) {
	procKeybdEvent.Call(uintptr(vk), 0, uintptr(flags), 0)
}

func keyDown(vk uint32) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(r)&asyncKeyDownMask != 0
}
