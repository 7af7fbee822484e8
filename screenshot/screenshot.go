// Package screenshot captures screen pixels for the OCR pipeline.
package screenshot

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// Region is a screen rectangle in virtual-desktop coordinates.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bounds returns the region as an image.Rectangle.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// CaptureRegion captures the pixels of a screen region.
func CaptureRegion(region Region) (*image.RGBA, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return nil, fmt.Errorf("invalid region dimensions: width=%d, height=%d", region.Width, region.Height)
	}

	img, err := screenshot.CaptureRect(region.Bounds())
	if err != nil {
		return nil, fmt.Errorf("failed to capture region: %v", err)
	}
	return img, nil
}

// GetDisplayBounds returns the bounds of the primary display.
func GetDisplayBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return screenshot.GetDisplayBounds(0), nil
}

// VirtualBounds returns the union of all active display bounds. This is the
// rectangle the region-selection overlay has to cover.
func VirtualBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		bounds = bounds.Union(screenshot.GetDisplayBounds(i))
	}
	return bounds, nil
}
