package reader

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"tts-reader/config"
	"tts-reader/screenocr"
)

type fakeSpeaker struct {
	mu         sync.Mutex
	spoken     []string
	interrupts int
	rate       int
	filter     string
}

func (f *fakeSpeaker) Speak(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
}

func (f *fakeSpeaker) Interrupt() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interrupts++
}

func (f *fakeSpeaker) UpdateSettings(rate int, filter string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
	f.filter = filter
}

func (f *fakeSpeaker) snapshot() ([]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...), f.interrupts
}

// fakeSelection returns scripted results per call, optionally sleeping first
// to simulate a slow capture.
type selResult struct {
	delay time.Duration
	text  string
}

type fakeSelection struct {
	mu      sync.Mutex
	calls   int
	results []selResult
}

func (f *fakeSelection) Capture(copyDelayMS, retryCount int) (string, string) {
	f.mu.Lock()
	i := f.calls
	f.calls++
	f.mu.Unlock()

	if i >= len(f.results) {
		return "", "clipboard-timeout"
	}
	if f.results[i].delay > 0 {
		time.Sleep(f.results[i].delay)
	}
	if f.results[i].text == "" {
		return "", "clipboard-timeout"
	}
	return f.results[i].text, "wm_copy"
}

type fakeScreen struct {
	result screenocr.Result
	err    error
}

func (f *fakeScreen) Capture(abortIf func() bool) (screenocr.Result, error) {
	if abortIf() {
		return screenocr.Result{Method: screenocr.MethodAborted}, nil
	}
	return f.result, f.err
}

type fakeListener struct {
	combo   string
	stopped bool
}

func (f *fakeListener) Combo() string { return f.combo }
func (f *fakeListener) Stop() { f.stopped = true }

// recordingListen fakes hotkey registration and can be told to fail combos.
type recordingListen struct {
	mu         sync.Mutex
	registered []string
	failCombos map[string]bool
	listeners  []*fakeListener
}

func (rl *recordingListen) listen(combo string, onTrigger func()) (listener, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if rl.failCombos[combo] {
		return nil, fmt.Errorf("hotkey %q already registered", combo)
	}
	rl.registered = append(rl.registered, combo)
	l := &fakeListener{combo: combo}
	rl.listeners = append(rl.listeners, l)
	return l, nil
}

func newTestReader(cfg config.Config, sel *fakeSelection, screen *fakeScreen) (*Reader, *fakeSpeaker, *recordingListen) {
	speaker := &fakeSpeaker{}
	if sel == nil {
		sel = &fakeSelection{}
	}
	if screen == nil {
		screen = &fakeScreen{}
	}
	r := New(cfg, speaker, sel, screen)
	rl := &recordingListen{failCombos: map[string]bool{}}
	r.listen = rl.listen
	return r, speaker, rl
}

func TestLastTriggerWins(t *testing.T) {
	sel := &fakeSelection{results: []selResult{
		{delay: 200 * time.Millisecond, text: "slow first capture"},
		{text: "fast second capture"},
	}}
	r, speaker, _ := newTestReader(config.Default(), sel, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.OnReadSelection()
	}()
	time.Sleep(50 * time.Millisecond)
	r.OnReadSelection()
	wg.Wait()

	spoken, interrupts := speaker.snapshot()
	if interrupts != 2 {
		t.Errorf("interrupts = %d, want 2", interrupts)
	}
	if len(spoken) != 1 || spoken[0] != "fast second capture" {
		t.Errorf("spoken = %v, want only the second capture", spoken)
	}
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("x", 5000)
	sel := &fakeSelection{results: []selResult{{text: long}}}

	cfg := config.Default()
	cfg.MaxChars = 4000
	r, speaker, _ := newTestReader(cfg, sel, nil)

	r.OnReadSelection()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 1 {
		t.Fatalf("spoken = %d utterances, want 1", len(spoken))
	}
	if len(spoken[0]) != 4000 || spoken[0] != long[:4000] {
		t.Errorf("spoken %d chars, want the first 4000", len(spoken[0]))
	}
}

func TestTruncationCountsRunes(t *testing.T) {
	long := strings.Repeat("日本語テキスト", 1000)
	sel := &fakeSelection{results: []selResult{{text: long}}}

	cfg := config.Default()
	cfg.MaxChars = 4000
	r, speaker, _ := newTestReader(cfg, sel, nil)

	r.OnReadSelection()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 1 {
		t.Fatalf("spoken = %d utterances, want 1", len(spoken))
	}
	if !utf8.ValidString(spoken[0]) {
		t.Error("truncated text is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(spoken[0]); n != 4000 {
		t.Errorf("spoken %d runes, want 4000", n)
	}
	if spoken[0] != string([]rune(long)[:4000]) {
		t.Error("spoken text is not the first 4000 characters")
	}
}

func TestSupersededCaptureDoesNotUpdateReplayCache(t *testing.T) {
	sel := &fakeSelection{results: []selResult{
		{delay: 200 * time.Millisecond, text: "slow stale capture"},
		{text: "current capture"},
	}}
	r, speaker, _ := newTestReader(config.Default(), sel, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.OnReadSelection()
	}()
	time.Sleep(50 * time.Millisecond)
	r.OnReadSelection()
	wg.Wait()

	r.Replay()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 2 || spoken[1] != "current capture" {
		t.Errorf("spoken = %v, want the replay to repeat the current capture", spoken)
	}
}

func TestEmptySelectionNotice(t *testing.T) {
	cfg := config.Default()
	cfg.SkipIfNoText = false
	r, speaker, _ := newTestReader(cfg, &fakeSelection{}, nil)

	r.OnReadSelection()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 1 || spoken[0] != noticeNoSelection {
		t.Errorf("spoken = %v, want the no-selection notice", spoken)
	}
}

func TestEmptySelectionNoticeSuppressed(t *testing.T) {
	cfg := config.Default()
	cfg.SkipIfNoText = true
	r, speaker, _ := newTestReader(cfg, &fakeSelection{}, nil)

	r.OnReadSelection()

	if spoken, _ := speaker.snapshot(); len(spoken) != 0 {
		t.Errorf("spoken = %v, want nothing with skip_if_no_text", spoken)
	}
}

func TestScreenshotSpoken(t *testing.T) {
	screen := &fakeScreen{result: screenocr.Result{Text: "Hello", Method: screenocr.MethodOCR}}
	r, speaker, _ := newTestReader(config.Default(), nil, screen)

	r.OnReadScreenshot()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 1 || spoken[0] != "Hello" {
		t.Errorf("spoken = %v, want [Hello]", spoken)
	}
}

func TestScreenshotCancelledIsSilent(t *testing.T) {
	cfg := config.Default()
	cfg.SkipIfNoText = false
	screen := &fakeScreen{result: screenocr.Result{Method: screenocr.MethodCancelled}}
	r, speaker, _ := newTestReader(cfg, nil, screen)

	r.OnReadScreenshot()

	if spoken, _ := speaker.snapshot(); len(spoken) != 0 {
		t.Errorf("spoken = %v, want silence for a cancelled selection", spoken)
	}
}

func TestReplay(t *testing.T) {
	sel := &fakeSelection{results: []selResult{{text: "remember me"}}}
	r, speaker, _ := newTestReader(config.Default(), sel, nil)

	r.OnReadSelection()
	r.Replay()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 2 || spoken[1] != "remember me" {
		t.Errorf("spoken = %v, want the capture replayed", spoken)
	}
}

func TestReplayWithNothingCached(t *testing.T) {
	cfg := config.Default()
	cfg.SkipIfNoText = false
	r, speaker, _ := newTestReader(cfg, nil, nil)

	r.Replay()

	spoken, _ := speaker.snapshot()
	if len(spoken) != 1 || spoken[0] != noticeNoReplay {
		t.Errorf("spoken = %v, want the nothing-to-replay notice", spoken)
	}
}

func TestStartRegistersBothHotkeys(t *testing.T) {
	r, speaker, rl := newTestReader(config.Default(), nil, nil)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	if len(rl.registered) != 2 {
		t.Fatalf("registered = %v, want both hotkeys", rl.registered)
	}
	speaker.mu.Lock()
	rate := speaker.rate
	speaker.mu.Unlock()
	if rate != config.Default().TTSRate {
		t.Errorf("initial rate = %d, want %d", rate, config.Default().TTSRate)
	}
}

func TestStartConflictUnwindsFirstHotkey(t *testing.T) {
	cfg := config.Default()
	r, _, rl := newTestReader(cfg, nil, nil)
	rl.failCombos[cfg.ScreenshotHotkey] = true

	if err := r.Start(); err == nil {
		t.Fatal("Start succeeded despite hotkey conflict")
	}
	if len(rl.listeners) != 1 || !rl.listeners[0].stopped {
		t.Error("first hotkey left registered after failed startup")
	}
}

func TestApplyConfigRestartsOnlyChangedHotkey(t *testing.T) {
	r, _, rl := newTestReader(config.Default(), nil, nil)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	// Same hotkeys up to case and spacing: no listener churn.
	next := config.Default()
	next.Hotkey = " ALT+Q "
	if err := r.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if len(rl.registered) != 2 {
		t.Errorf("registered = %v, want no restarts for equivalent hotkeys", rl.registered)
	}

	next = config.Default()
	next.ScreenshotHotkey = "alt+s"
	if err := r.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if len(rl.registered) != 3 || rl.registered[2] != "alt+s" {
		t.Errorf("registered = %v, want exactly one new registration", rl.registered)
	}
}

func TestApplyConfigRollsBackOnPartialFailure(t *testing.T) {
	cfg := config.Default()
	r, _, rl := newTestReader(cfg, nil, nil)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	defer r.Stop()

	next := config.Default()
	next.Hotkey = "ctrl+alt+q"
	next.ScreenshotHotkey = "ctrl+alt+r"
	rl.failCombos["ctrl+alt+r"] = true

	if err := r.ApplyConfig(next); err == nil {
		t.Fatal("ApplyConfig succeeded despite screenshot hotkey conflict")
	}

	// Read hotkey must be back on its previous combo, and both slots
	// must still hold live listeners.
	r.mu.Lock()
	selCombo := r.selListener.Combo()
	shotCombo := r.shotListener.Combo()
	r.mu.Unlock()
	if selCombo != cfg.Hotkey {
		t.Errorf("read hotkey = %q, want rollback to %q", selCombo, cfg.Hotkey)
	}
	if shotCombo != cfg.ScreenshotHotkey {
		t.Errorf("screenshot hotkey = %q, want %q kept", shotCombo, cfg.ScreenshotHotkey)
	}
}

func TestApplyConfigRejectsInvalid(t *testing.T) {
	r, _, _ := newTestReader(config.Default(), nil, nil)
	next := config.Default()
	next.Hotkey = "not a hotkey"
	if err := r.ApplyConfig(next); err == nil {
		t.Error("ApplyConfig accepted an unparsable hotkey")
	}
}
