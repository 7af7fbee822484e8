// Package selection acquires "the currently selected text" from whatever
// application has focus. It tries a non-destructive focused-control query
// first and falls back to driving the clipboard through copy commands,
// restoring the clipboard's prior content on every exit path.
package selection

import (
	"log"
	"strings"
	"time"

	"tts-reader/clipguard"
)

// Method tags reported with each capture outcome.
const (
	MethodAccessibility = "accessibility"
	MethodWMCopy        = "wm_copy"
	MethodCtrlC         = "ctrl+c"
	MethodCtrlInsert    = "ctrl+insert"
	MethodTimeout       = "clipboard-timeout"
)

// pollStepMS is the clipboard change-sequence polling increment.
const pollStepMS = 20

// Querier reads the focused control's selected text without touching the
// clipboard. Empty means unavailable; whitespace-only results are not
// trusted and the caller falls through to the clipboard strategy.
type Querier interface {
	FocusedSelection() string
}

// Injector dispatches the three copy-trigger mechanisms and the settle wait
// before key chords. Each send reports whether dispatch itself worked; the
// clipboard change-sequence counter tells whether the copy actually landed.
type Injector interface {
	SendCopyCommand() bool
	SendCtrlC() bool
	SendCtrlInsert() bool
	WaitModifierRelease(timeout time.Duration)
}

// Clip is the clipboard surface the capturer needs (satisfied by
// *clipguard.Guard).
type Clip interface {
	Snapshot() clipguard.Snapshot
	Restore(snap clipguard.Snapshot, fallbackText string)
	ReadText() (string, bool)
	SequenceNumber() uint32
}

// Capturer runs the multi-strategy selection capture.
type Capturer struct {
	clip  Clip
	query Querier
	inj   Injector
}

// New returns a capturer on the platform clipboard and input facilities.
func New() *Capturer {
	return &Capturer{
		clip:  clipguard.New(),
		query: newQuerier(),
		inj:   newInjector(),
	}
}

// NewWithCollaborators wires explicit collaborators (used by tests).
func NewWithCollaborators(clip Clip, query Querier, inj Injector) *Capturer {
	return &Capturer{clip: clip, query: query, inj: inj}
}

// Capture returns the selected text and the method that produced it. The
// text is normalized (CRLF folded, surrounding whitespace trimmed); an empty
// result means capture failure, with the method tag explaining why.
func (c *Capturer) Capture(copyDelayMS, retryCount int) (string, string) {
	if raw := c.query.FocusedSelection(); raw != "" {
		if text := Normalize(raw); text != "" {
			log.Printf("Selection captured via focused-control query (%d chars)", len(text))
			return text, MethodAccessibility
		}
		log.Printf("Focused-control query returned whitespace only; falling back to clipboard")
	}
	return c.captureViaClipboard(copyDelayMS, retryCount)
}

// waitProfile is the per-mechanism wait budget of one attempt round, in ms.
type waitProfile struct {
	wmCopy     int
	ctrlC      int
	ctrlInsert int
}

func (c *Capturer) captureViaClipboard(copyDelayMS, retryCount int) (string, string) {
	snap := c.clip.Snapshot()
	seq := c.clip.SequenceNumber()

	var capturedRaw string
	defer func() {
		c.clip.Restore(snap, capturedRaw)
	}()

	profiles := waitProfiles(copyDelayMS, retryCount)
	for round, profile := range profiles {
		var raw string
		raw, seq = c.attemptCopy(MethodWMCopy, c.inj.SendCopyCommand, seq, profile.wmCopy)
		if raw != "" {
			capturedRaw = raw
			return Normalize(raw), MethodWMCopy
		}

		// Let the hotkey's own modifiers clear before injecting chords, so a
		// still-held Alt does not turn Ctrl+C into Ctrl+Alt+C.
		c.inj.WaitModifierRelease(120 * time.Millisecond)

		raw, seq = c.attemptCopy(MethodCtrlC, c.inj.SendCtrlC, seq, profile.ctrlC)
		if raw != "" {
			capturedRaw = raw
			return Normalize(raw), MethodCtrlC
		}

		raw, seq = c.attemptCopy(MethodCtrlInsert, c.inj.SendCtrlInsert, seq, profile.ctrlInsert)
		if raw != "" {
			capturedRaw = raw
			return Normalize(raw), MethodCtrlInsert
		}

		log.Printf("Clipboard capture round %d/%d produced no text", round+1, len(profiles))
		time.Sleep(60 * time.Millisecond)
	}

	log.Printf("Clipboard capture timed out without selected text")
	return "", MethodTimeout
}

// waitProfiles builds the per-round wait budgets. The first round uses a
// compressed quick profile so responsive applications dominate typical
// latency; later rounds use the full configured delay for slower legacy apps.
func waitProfiles(copyDelayMS, retryCount int) []waitProfile {
	fullDelay := copyDelayMS
	if fullDelay < 140 {
		fullDelay = 140
	}
	quick := waitProfile{
		wmCopy:     minInt(90, fullDelay),
		ctrlC:      minInt(140, fullDelay),
		ctrlInsert: 180,
	}
	full := waitProfile{
		wmCopy:     minInt(fullDelay, 220),
		ctrlC:      fullDelay,
		ctrlInsert: maxInt(fullDelay, 260),
	}

	rounds := retryCount
	if rounds < 1 {
		rounds = 1
	}
	profiles := []waitProfile{quick}
	for i := 1; i < rounds; i++ {
		profiles = append(profiles, full)
	}
	return profiles
}

func (c *Capturer) attemptCopy(name string, send func() bool, prevSeq uint32, waitMS int) (string, uint32) {
	if !send() {
		log.Printf("Copy action %q could not be dispatched", name)
		return "", prevSeq
	}
	raw, seq := c.waitForClipboardText(prevSeq, waitMS)
	if raw == "" {
		log.Printf("Copy attempt %q produced no text", name)
	}
	return raw, seq
}

// waitForClipboardText polls the change-sequence counter in short increments
// until the budget runs out, reading text once the counter has ticked. The
// budget comes straight from the round profile; the floor only guarantees a
// single poll step.
func (c *Capturer) waitForClipboardText(prevSeq uint32, waitMS int) (string, uint32) {
	if waitMS < pollStepMS {
		waitMS = pollStepMS
	}
	deadline := time.Now().Add(time.Duration(waitMS) * time.Millisecond)
	seq := prevSeq
	changed := false
	for time.Now().Before(deadline) {
		if current := c.clip.SequenceNumber(); current != seq {
			seq = current
			changed = true
		}
		if changed {
			if text, ok := c.clip.ReadText(); ok && text != "" {
				return text, seq
			}
		}
		time.Sleep(pollStepMS * time.Millisecond)
	}
	return "", seq
}

// Normalize folds CRLF to LF and trims surrounding whitespace. Empty after
// trimming means "no usable text".
func Normalize(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
