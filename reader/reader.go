// Package reader wires hotkey triggers to text capture and speech. Every
// trigger takes a fresh request id; work belonging to an older id is
// discarded at checkpoints, and the final staleness check right before
// speech is the single commit point for audible output.
package reader

import (
	"fmt"
	"log"
	"sync"

	"tts-reader/clipboard"
	"tts-reader/config"
	"tts-reader/hotkey"
	"tts-reader/logutil"
	"tts-reader/screenocr"
	"tts-reader/sequencer"
)

// Spoken fallback notices for empty outcomes, suppressed when
// skip_if_no_text is set.
const (
	noticeNoSelection = "No text selected"
	noticeNoOCRText   = "No text found"
	noticeOCRFailed   = "Text recognition failed"
	noticeNoReplay    = "Nothing to read again"
)

// SelectionCapturer acquires the currently selected text.
type SelectionCapturer interface {
	Capture(copyDelayMS, retryCount int) (text, method string)
}

// ScreenCapturer runs the region-select plus OCR sequence.
type ScreenCapturer interface {
	Capture(abortIf func() bool) (screenocr.Result, error)
}

// Speaker is the speech controller surface the orchestrator drives.
type Speaker interface {
	Speak(text string)
	Interrupt()
	UpdateSettings(rate int, voiceFilter string)
}

type listener interface {
	Combo() string
	Stop()
}

type listenFunc func(combo string, onTrigger func()) (listener, error)

// Reader binds the capture pipeline per trigger type.
type Reader struct {
	seq      *sequencer.Sequencer
	speech   Speaker
	selected SelectionCapturer
	screen   ScreenCapturer
	listen   listenFunc

	mu           sync.Mutex
	cfg          config.Config
	lastText     string
	selListener  listener
	shotListener listener
}

func New(cfg config.Config, speech Speaker, selected SelectionCapturer, screen ScreenCapturer) *Reader {
	return &Reader{
		seq:      sequencer.New(),
		speech:   speech,
		selected: selected,
		screen:   screen,
		cfg:      cfg,
		listen: func(combo string, onTrigger func()) (listener, error) {
			return hotkey.Listen(combo, onTrigger)
		},
	}
}

// Start registers both hotkeys and pushes the initial speech settings. A
// conflict on either hotkey fails startup with nothing left registered.
func (r *Reader) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel, err := r.listen(r.cfg.Hotkey, r.OnReadSelection)
	if err != nil {
		return fmt.Errorf("failed to register read hotkey %q: %v", r.cfg.Hotkey, err)
	}
	shot, err := r.listen(r.cfg.ScreenshotHotkey, r.OnReadScreenshot)
	if err != nil {
		sel.Stop()
		return fmt.Errorf("failed to register screenshot hotkey %q: %v", r.cfg.ScreenshotHotkey, err)
	}
	r.selListener = sel
	r.shotListener = shot

	r.speech.UpdateSettings(r.cfg.TTSRate, r.cfg.TTSVoiceContains)
	return nil
}

// Stop unregisters the hotkeys.
func (r *Reader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selListener != nil {
		r.selListener.Stop()
		r.selListener = nil
	}
	if r.shotListener != nil {
		r.shotListener.Stop()
		r.shotListener = nil
	}
}

// OnReadSelection handles the read-selection trigger.
func (r *Reader) OnReadSelection() {
	id := r.seq.Next()
	r.speech.Interrupt()
	cfg := r.config()

	if title := activeWindowTitle(); title != "" {
		log.Printf("[req %d] Read selection from window %q", id, logutil.Sanitize(title))
	} else {
		log.Printf("[req %d] Read selection", id)
	}

	text, method := r.selected.Capture(cfg.CopyDelayMS, cfg.CopyRetryCount)
	if !r.seq.IsLatest(id) {
		log.Printf("[req %d] Superseded during selection capture, discarding", id)
		return
	}
	if text == "" {
		log.Printf("[req %d] No selection text (%s)", id, method)
		r.speakNotice(id, cfg, noticeNoSelection)
		return
	}

	text = truncate(text, cfg.MaxChars)
	log.Printf("[req %d] Captured %d chars via %s", id, len(text), method)

	if !r.seq.IsLatest(id) {
		log.Printf("[req %d] Superseded before speech, discarding", id)
		return
	}
	r.setLastText(text)
	r.speech.Speak(text)
}

// OnReadScreenshot handles the screen-region OCR trigger.
func (r *Reader) OnReadScreenshot() {
	id := r.seq.Next()
	r.speech.Interrupt()
	cfg := r.config()
	log.Printf("[req %d] Read screenshot", id)

	result, err := r.screen.Capture(func() bool { return !r.seq.IsLatest(id) })
	if err != nil {
		log.Printf("[req %d] ERROR: screen OCR failed: %v", id, err)
		r.speakNotice(id, cfg, noticeOCRFailed)
		return
	}

	switch result.Method {
	case screenocr.MethodAborted:
		log.Printf("[req %d] Superseded during OCR, discarding", id)
		return
	case screenocr.MethodCancelled:
		log.Printf("[req %d] Region selection cancelled", id)
		return
	case screenocr.MethodNoText:
		log.Printf("[req %d] OCR found no text (capture %dms, ocr %dms, %d px)",
			id, result.CaptureMS, result.OCRMS, result.Pixels)
		r.speakNotice(id, cfg, noticeNoOCRText)
		return
	}

	text := truncate(result.Text, cfg.MaxChars)
	log.Printf("[req %d] OCR %d chars via %s (capture %dms, ocr %dms, %d px)",
		id, len(text), result.Method, result.CaptureMS, result.OCRMS, result.Pixels)

	if !r.seq.IsLatest(id) {
		log.Printf("[req %d] Superseded before speech, discarding", id)
		return
	}
	r.setLastText(text)
	if cfg.CopyOCRResult {
		clipboard.Write(text)
	}
	r.speech.Speak(text)
}

// Replay re-speaks the last captured text. It takes a fresh id, so a replay
// also invalidates any still-running capture.
func (r *Reader) Replay() {
	id := r.seq.Next()
	r.speech.Interrupt()
	cfg := r.config()

	text := r.getLastText()
	if text == "" {
		r.speakNotice(id, cfg, noticeNoReplay)
		return
	}
	log.Printf("[req %d] Replaying %d chars", id, len(text))
	if !r.seq.IsLatest(id) {
		return
	}
	r.speech.Speak(text)
}

// ApplyConfig swaps in a new configuration. Hotkey listeners restart only
// when their combo actually changed; a failed restart rolls the earlier swap
// back so a previously working hotkey never silently disappears.
func (r *Reader) ApplyConfig(next config.Config) error {
	if err := next.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.cfg

	selChanged := !config.HotkeyEqual(prev.Hotkey, next.Hotkey)
	if selChanged && r.selListener != nil {
		if err := r.swapListener(&r.selListener, next.Hotkey, r.OnReadSelection); err != nil {
			return fmt.Errorf("failed to apply read hotkey %q: %v", next.Hotkey, err)
		}
	}

	if !config.HotkeyEqual(prev.ScreenshotHotkey, next.ScreenshotHotkey) && r.shotListener != nil {
		if err := r.swapListener(&r.shotListener, next.ScreenshotHotkey, r.OnReadScreenshot); err != nil {
			if selChanged && r.selListener != nil {
				if rbErr := r.swapListener(&r.selListener, prev.Hotkey, r.OnReadSelection); rbErr != nil {
					log.Printf("ERROR: rollback of read hotkey %q failed: %v", prev.Hotkey, rbErr)
				}
			}
			return fmt.Errorf("failed to apply screenshot hotkey %q: %v", next.ScreenshotHotkey, err)
		}
	}

	r.cfg = next
	r.speech.UpdateSettings(next.TTSRate, next.TTSVoiceContains)
	log.Printf("Configuration applied: read=%s screenshot=%s rate=%d",
		next.Hotkey, next.ScreenshotHotkey, next.TTSRate)
	return nil
}

// swapListener replaces *slot with a listener on combo. On registration
// failure the old combo is re-registered so the slot is never left empty.
func (r *Reader) swapListener(slot *listener, combo string, onTrigger func()) error {
	old := *slot
	oldCombo := old.Combo()
	old.Stop()

	fresh, err := r.listen(combo, onTrigger)
	if err != nil {
		restored, restoreErr := r.listen(oldCombo, onTrigger)
		if restoreErr != nil {
			*slot = nil
			log.Printf("ERROR: hotkey %q lost, restore failed: %v", oldCombo, restoreErr)
			return err
		}
		*slot = restored
		return err
	}
	*slot = fresh
	return nil
}

// speakNotice voices a short fallback phrase for empty outcomes unless the
// configuration suppresses them.
func (r *Reader) speakNotice(id uint64, cfg config.Config, notice string) {
	if cfg.SkipIfNoText {
		return
	}
	if !r.seq.IsLatest(id) {
		return
	}
	r.speech.Speak(notice)
}

func (r *Reader) config() config.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

func (r *Reader) setLastText(text string) {
	r.mu.Lock()
	r.lastText = text
	r.mu.Unlock()
}

func (r *Reader) getLastText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastText
}

func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	// Counted in runes so a multi-byte character is never cut in half.
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	log.Printf("Truncating %d chars to %d", len(runes), maxChars)
	return string(runes[:maxChars])
}
