//go:build !windows

package speech

import "fmt"

// NewSAPIEngine is Windows-only.
func NewSAPIEngine() (Engine, error) {
	return nil, fmt.Errorf("SAPI speech engine not available on this platform")
}
