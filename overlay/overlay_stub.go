//go:build !windows

package overlay

import (
	"fmt"

	"tts-reader/screenshot"
)

type stubSelector struct{}

func newSelector() Selector { return stubSelector{} }

func (stubSelector) Select() (screenshot.Region, bool, error) {
	return screenshot.Region{}, false, fmt.Errorf("interactive region selection not implemented for this platform")
}
