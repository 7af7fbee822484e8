//go:build windows

package overlay

import (
	"fmt"
	"image"
	"log"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"tts-reader/screenshot"
)

var (
	user32          = windows.NewLazySystemDLL("user32.dll")
	gdi32           = windows.NewLazySystemDLL("gdi32.dll")
	procMessageBeep = user32.NewProc("MessageBeep")
	procCreatePen   = gdi32.NewProc("CreatePen")
	procRectangle   = gdi32.NewProc("Rectangle")
)

const minSelectionPx = 5

type winSelector struct{}

func newSelector() Selector { return winSelector{} }

// Window state lives in package globals because the wndProc callback has no
// receiver. Only one overlay runs at a time: the serialSelector returned by
// New admits a single Select call into this file at once.
type overlayState struct {
	hwnd           win.HWND
	selecting      bool
	startX, startY int32
	endX, endY     int32
	virtualX       int32 // virtual-screen origin, added to client coords
	virtualY       int32
	background     *image.RGBA
	result         chan screenshot.Region
}

var state *overlayState

func (winSelector) Select() (screenshot.Region, bool, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 0 || vh <= 0 {
		return screenshot.Region{}, false, fmt.Errorf("no usable virtual screen (w=%d h=%d)", vw, vh)
	}
	log.Printf("Region overlay covering virtual screen x=%d y=%d w=%d h=%d", vx, vy, vw, vh)

	background, err := screenshot.CaptureRegion(screenshot.Region{
		X: int(vx), Y: int(vy), Width: int(vw), Height: int(vh),
	})
	if err != nil {
		return screenshot.Region{}, false, fmt.Errorf("failed to capture desktop for overlay: %v", err)
	}

	state = &overlayState{
		virtualX:   vx,
		virtualY:   vy,
		background: background,
		result:     make(chan screenshot.Region, 1),
	}
	defer func() { state = nil }()

	className := syscall.StringToUTF16Ptr(fmt.Sprintf("TTSReaderOverlay_%d", time.Now().UnixNano()))
	wndClass := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		Style:         win.CS_HREDRAW | win.CS_VREDRAW,
		LpfnWndProc:   syscall.NewCallback(overlayWndProc),
		HInstance:     win.GetModuleHandle(nil),
		HCursor:       win.LoadCursor(0, win.MAKEINTRESOURCE(win.IDC_CROSS)),
		HbrBackground: 0,
		LpszClassName: className,
	}
	if win.RegisterClassEx(&wndClass) == 0 {
		return screenshot.Region{}, false, fmt.Errorf("failed to register overlay window class")
	}
	defer win.UnregisterClass(className)

	state.hwnd = win.CreateWindowEx(
		win.WS_EX_TOPMOST,
		className,
		syscall.StringToUTF16Ptr("Drag to select text region, Esc to cancel"),
		win.WS_POPUP|win.WS_VISIBLE,
		vx, vy, vw, vh,
		0, 0, win.GetModuleHandle(nil), nil,
	)
	if state.hwnd == 0 {
		return screenshot.Region{}, false, fmt.Errorf("failed to create overlay window")
	}
	defer win.DestroyWindow(state.hwnd)

	win.ShowWindow(state.hwnd, win.SW_SHOW)
	win.SetForegroundWindow(state.hwnd)
	win.SetFocus(state.hwnd)
	win.UpdateWindow(state.hwnd)

	var msg win.MSG
	for {
		ret := win.GetMessage(&msg, 0, 0, 0)
		if ret == 0 || ret == -1 {
			break
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)

		select {
		case region := <-state.result:
			procMessageBeep.Call(0xFFFFFFFF) // audible capture cue
			log.Printf("Region selected: %+v", region)
			return region, true, nil
		default:
		}
	}

	log.Printf("Region selection dismissed")
	return screenshot.Region{}, false, nil
}

func overlayWndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	s := state
	if s == nil {
		return win.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	switch msg {
	case win.WM_LBUTTONDOWN:
		win.SetCapture(hwnd)
		s.selecting = true
		s.startX = int32(win.LOWORD(uint32(lParam)))
		s.startY = int32(win.HIWORD(uint32(lParam)))
		s.endX, s.endY = s.startX, s.startY
		win.InvalidateRect(hwnd, nil, false)
		win.UpdateWindow(hwnd)
		return 0

	case win.WM_MOUSEMOVE:
		if s.selecting {
			s.endX = int32(win.LOWORD(uint32(lParam)))
			s.endY = int32(win.HIWORD(uint32(lParam)))
			win.InvalidateRect(hwnd, nil, false)
			win.UpdateWindow(hwnd)
		}
		return 0

	case win.WM_LBUTTONUP:
		if s.selecting {
			win.ReleaseCapture()
			s.selecting = false
			s.endX = int32(win.LOWORD(uint32(lParam)))
			s.endY = int32(win.HIWORD(uint32(lParam)))

			left := min32(s.startX, s.endX)
			top := min32(s.startY, s.endY)
			width := abs32(s.endX - s.startX)
			height := abs32(s.endY - s.startY)

			if width > minSelectionPx && height > minSelectionPx {
				s.result <- screenshot.Region{
					X:      int(left + s.virtualX),
					Y:      int(top + s.virtualY),
					Width:  int(width),
					Height: int(height),
				}
			} else {
				log.Printf("Selection %dx%d too small, ignoring", width, height)
			}
		}
		return 0

	case win.WM_PAINT:
		var ps win.PAINTSTRUCT
		hdc := win.BeginPaint(hwnd, &ps)
		if s.background != nil {
			drawBackground(hdc, s.background)
		}
		if s.selecting {
			drawSelectionRect(hdc, s)
		}
		win.EndPaint(hwnd, &ps)
		return 0

	case win.WM_KEYDOWN:
		if wParam == win.VK_ESCAPE {
			win.PostQuitMessage(0)
		}
		return 0

	case win.WM_NCHITTEST:
		// Every point counts as client area so mouse events reach us.
		return uintptr(win.HTCLIENT)

	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}

	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

func drawSelectionRect(hdc win.HDC, s *overlayState) {
	redPen, _, _ := procCreatePen.Call(0 /* PS_SOLID */, 3, 0x0000FF)
	oldPen := win.SelectObject(hdc, win.HGDIOBJ(redPen))
	oldBrush := win.SelectObject(hdc, win.GetStockObject(win.NULL_BRUSH))

	procRectangle.Call(uintptr(hdc),
		uintptr(min32(s.startX, s.endX)), uintptr(min32(s.startY, s.endY)),
		uintptr(max32(s.startX, s.endX)), uintptr(max32(s.startY, s.endY)))

	win.SelectObject(hdc, oldPen)
	win.SelectObject(hdc, oldBrush)
	win.DeleteObject(win.HGDIOBJ(redPen))
}

// drawBackground blits the captured desktop into the window via a DIB
// section, converting RGBA pixel order to the BGRA that GDI expects.
func drawBackground(hdc win.HDC, img *image.RGBA) {
	memDC := win.CreateCompatibleDC(hdc)
	defer win.DeleteDC(memDC)

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	bitmapInfo := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(width),
			BiHeight:      -int32(height), // top-down
			BiPlanes:      1,
			BiBitCount:    32,
			BiCompression: win.BI_RGB,
		},
	}

	var pBits unsafe.Pointer
	hBitmap := win.CreateDIBSection(memDC, &bitmapInfo.BmiHeader, win.DIB_RGB_COLORS, &pBits, 0, 0)
	if hBitmap == 0 {
		return
	}
	defer win.DeleteObject(win.HGDIOBJ(hBitmap))

	oldBitmap := win.SelectObject(memDC, win.HGDIOBJ(hBitmap))
	defer win.SelectObject(memDC, oldBitmap)

	dst := unsafe.Slice((*byte)(pBits), width*height*4)
	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		row := dst[y*width*4 : (y+1)*width*4]
		for x := 0; x < width; x++ {
			row[x*4+0] = src[x*4+2] // B
			row[x*4+1] = src[x*4+1] // G
			row[x*4+2] = src[x*4+0] // R
			row[x*4+3] = src[x*4+3] // A
		}
	}

	win.BitBlt(hdc, 0, 0, int32(width), int32(height), memDC, 0, 0, win.SRCCOPY)
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
