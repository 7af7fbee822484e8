// Package clipboard writes text to the system clipboard. Used for the
// copy-recognized-text-to-clipboard option; the capture pipeline's
// snapshot/restore machinery lives in clipguard instead.
package clipboard

import (
	"golang.design/x/clipboard"
)

func Init() error {
	return clipboard.Init()
}

func Write(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
}
