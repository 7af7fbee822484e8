//go:build windows

package clipguard

import (
	"syscall"
	"unicode/utf16"
	"unsafe"

	"github.com/lxn/win"
)

// Wrappers for clipboard functions missing from lxn/win.
var (
	user32                      = syscall.NewLazyDLL("user32.dll")
	kernel32                    = syscall.NewLazyDLL("kernel32.dll")
	procEnumClipboardFormats    = user32.NewProc("EnumClipboardFormats")
	procGetClipboardSequenceNum = user32.NewProc("GetClipboardSequenceNumber")
	procGlobalSize              = kernel32.NewProc("GlobalSize")
)

// Formats whose clipboard handles are not HGLOBAL memory blocks and cannot be
// duplicated byte-wise (GDI objects, owner display, private formats).
func isCopyableFormat(format uint32) bool {
	switch format {
	case win.CF_BITMAP, win.CF_METAFILEPICT, win.CF_PALETTE, win.CF_ENHMETAFILE,
		win.CF_OWNERDISPLAY, win.CF_DSPBITMAP, win.CF_DSPMETAFILEPICT, win.CF_DSPENHMETAFILE:
		return false
	}
	if format >= win.CF_PRIVATEFIRST && format <= win.CF_PRIVATELAST {
		return false
	}
	return true
}

type winSystem struct{}

func newSystem() System { return &winSystem{} }

func (s *winSystem) Open() bool {
	return win.OpenClipboard(0)
}

func (s *winSystem) Close() {
	win.CloseClipboard()
}

func (s *winSystem) Formats() []uint32 {
	var formats []uint32
	current := uint32(0)
	for {
		r, _, _ := procEnumClipboardFormats.Call(uintptr(current))
		current = uint32(r)
		if current == 0 {
			break
		}
		if isCopyableFormat(current) {
			formats = append(formats, current)
		}
	}
	return formats
}

func (s *winSystem) Read(format uint32) ([]byte, bool) {
	h := win.HGLOBAL(win.GetClipboardData(format))
	if h == 0 {
		return nil, false
	}
	p := win.GlobalLock(h)
	if p == nil {
		return nil, false
	}
	defer win.GlobalUnlock(h)
	size, _, _ := procGlobalSize.Call(uintptr(h))
	if size == 0 {
		return nil, false
	}
	payload := make([]byte, size)
	copy(payload, unsafe.Slice((*byte)(p), size))
	return payload, true
}

func (s *winSystem) Write(format uint32, payload []byte) bool {
	if len(payload) == 0 {
		return false
	}
	h := win.GlobalAlloc(win.GMEM_MOVEABLE, uintptr(len(payload)))
	if h == 0 {
		return false
	}
	p := win.GlobalLock(h)
	if p == nil {
		win.GlobalFree(h)
		return false
	}
	copy(unsafe.Slice((*byte)(p), len(payload)), payload)
	win.GlobalUnlock(h)
	if win.SetClipboardData(format, win.HANDLE(h)) == 0 {
		// Ownership stays with us on failure.
		win.GlobalFree(h)
		return false
	}
	return true
}

func (s *winSystem) Clear() bool {
	return win.EmptyClipboard()
}

func (s *winSystem) ReadText() (string, bool) {
	if !win.IsClipboardFormatAvailable(win.CF_UNICODETEXT) {
		return "", false
	}
	h := win.HGLOBAL(win.GetClipboardData(win.CF_UNICODETEXT))
	if h == 0 {
		return "", false
	}
	p := win.GlobalLock(h)
	if p == nil {
		return "", false
	}
	defer win.GlobalUnlock(h)
	u16 := (*[1 << 20]uint16)(p)
	var n int
	for n = 0; n < len(u16) && u16[n] != 0; n++ {
	}
	return syscall.UTF16ToString(u16[:n]), true
}

func (s *winSystem) WriteText(text string) bool {
	u16 := utf16.Encode([]rune(text))
	u16 = append(u16, 0)
	payload := unsafe.Slice((*byte)(unsafe.Pointer(&u16[0])), len(u16)*2)
	return s.Write(win.CF_UNICODETEXT, payload)
}

func (s *winSystem) SequenceNumber() uint32 {
	r, _, _ := procGetClipboardSequenceNum.Call()
	return uint32(r)
}
