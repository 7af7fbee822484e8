// Package clipguard preserves and reinstates the system clipboard around a
// destructive read. The clipboard is a systemwide one-owner-at-a-time
// resource, so opening retries briefly and every mutation is bracketed by
// Snapshot/Restore so no tool text is ever left behind permanently.
package clipguard

import (
	"log"
	"time"
)

// System is the platform clipboard surface the guard runs on. Open is a
// single attempt; the guard owns the retry policy. A test backend can stand
// in for win32.
type System interface {
	Open() bool
	Close()
	// Formats enumerates currently available format ids. Valid only while open.
	Formats() []uint32
	Read(format uint32) ([]byte, bool)
	Write(format uint32, payload []byte) bool
	Clear() bool
	ReadText() (string, bool)
	WriteText(text string) bool
	// SequenceNumber does not require the clipboard to be open. It increases
	// on any clipboard write by any process.
	SequenceNumber() uint32
}

// FormatData is one captured (format id, raw payload) pair.
type FormatData struct {
	ID      uint32
	Payload []byte
}

// Snapshot is the captured clipboard state. An invalid snapshot (clipboard
// could not be opened) makes Restore a no-op: capture is best-effort
// infrastructure, never a reason to fail the caller.
type Snapshot struct {
	Valid         bool
	HadContent    bool
	Formats       []FormatData
	TextBackup    string
	HasTextBackup bool
}

const (
	openRetryBudget = 300 * time.Millisecond
	openRetryStep   = 10 * time.Millisecond
)

// Guard performs snapshot/restore through a System.
type Guard struct {
	sys System
}

// New returns a guard on the platform clipboard.
func New() *Guard {
	return &Guard{sys: newSystem()}
}

// NewWithSystem returns a guard on the given backend.
func NewWithSystem(sys System) *Guard {
	return &Guard{sys: sys}
}

// Snapshot captures every available clipboard format plus a plain-text
// backup. Failure to open yields an invalid snapshot rather than an error.
func (g *Guard) Snapshot() Snapshot {
	if !g.openWithRetry() {
		log.Printf("Clipboard snapshot skipped: could not open clipboard")
		return Snapshot{}
	}
	defer g.sys.Close()

	snap := Snapshot{Valid: true}
	if text, ok := g.sys.ReadText(); ok {
		snap.TextBackup = text
		snap.HasTextBackup = true
	}
	for _, format := range g.sys.Formats() {
		payload, ok := g.sys.Read(format)
		if !ok {
			continue
		}
		snap.Formats = append(snap.Formats, FormatData{ID: format, Payload: payload})
	}
	snap.HadContent = len(snap.Formats) > 0
	return snap
}

// Restore reinstates a snapshot. It is a no-op when the snapshot is invalid
// or recorded no prior content (an empty clipboard stays empty). Otherwise it
// clears and replays every captured format; if nothing replays, it falls back
// to the text backup, then to fallbackText, so the clipboard is never left in
// a worse state than before.
func (g *Guard) Restore(snap Snapshot, fallbackText string) {
	if !snap.Valid || !snap.HadContent {
		return
	}
	if !g.openWithRetry() {
		log.Printf("Clipboard restore failed: could not open clipboard")
		return
	}
	defer g.sys.Close()

	if !g.sys.Clear() {
		log.Printf("Clipboard restore failed: could not clear clipboard")
		return
	}
	restored := 0
	for _, fd := range snap.Formats {
		if g.sys.Write(fd.ID, fd.Payload) {
			restored++
		}
	}
	if restored == 0 {
		text := fallbackText
		if snap.HasTextBackup {
			text = snap.TextBackup
		}
		if text != "" {
			g.sys.WriteText(text)
		}
		log.Printf("Clipboard restore replayed no formats, wrote text fallback (%d chars)", len(text))
	}
}

// ReadText reads the current plain-text clipboard content, retrying the open.
func (g *Guard) ReadText() (string, bool) {
	if !g.openWithRetry() {
		return "", false
	}
	defer g.sys.Close()
	return g.sys.ReadText()
}

// SequenceNumber returns the clipboard change-sequence counter.
func (g *Guard) SequenceNumber() uint32 {
	return g.sys.SequenceNumber()
}

func (g *Guard) openWithRetry() bool {
	deadline := time.Now().Add(openRetryBudget)
	for {
		if g.sys.Open() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(openRetryStep)
	}
}
