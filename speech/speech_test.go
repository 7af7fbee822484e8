package speech

import (
	"sync"
	"testing"
	"time"
)

type fakeEngine struct {
	mu      sync.Mutex
	busy    bool
	spoken  []string
	stops   int
	rate    int
	voice   string
	voices  []Voice
	current string

	// asyncStart mimics an engine whose playback has not begun yet: Speak
	// accepts the text but Busy stays false until startPlayback is called.
	asyncStart bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{current: "default-voice", voice: "default-voice"}
}

func (f *fakeEngine) Speak(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	if !f.asyncStart {
		f.busy = true
	}
	return nil
}

func (f *fakeEngine) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.busy = false
	return nil
}

func (f *fakeEngine) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *fakeEngine) SetRate(wpm int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = wpm
	return nil
}

func (f *fakeEngine) SetVoice(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voice = id
	return nil
}

func (f *fakeEngine) CurrentVoice() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeEngine) Voices() ([]Voice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voices, nil
}

func (f *fakeEngine) Close() {}

func (f *fakeEngine) finishPlayback() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

func (f *fakeEngine) snapshot() ([]string, int, int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...), f.stops, f.rate, f.voice
}

func settle() { time.Sleep(100 * time.Millisecond) }

func TestSpeakStartsPlayback(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.Speak("hello")
	settle()

	spoken, _, _, _ := engine.snapshot()
	if len(spoken) != 1 || spoken[0] != "hello" {
		t.Errorf("spoken = %v, want [hello]", spoken)
	}
	if c.State() != Speaking {
		t.Errorf("state = %v, want speaking", c.State())
	}
}

func TestInterruptBeforeEngineReportsBusy(t *testing.T) {
	engine := newFakeEngine()
	engine.asyncStart = true
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.Speak("not yet audible")
	time.Sleep(25 * time.Millisecond)
	c.Interrupt()
	settle()

	_, stops, _, _ := engine.snapshot()
	if stops == 0 {
		t.Error("engine was never stopped")
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestPendingTextLatestWins(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)

	// Both slots filled before the loop ever runs; only the newest value
	// survives to playback.
	c.Speak("first")
	c.Speak("second")

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()
	settle()

	spoken, _, _, _ := engine.snapshot()
	if len(spoken) != 1 || spoken[0] != "second" {
		t.Errorf("spoken = %v, want [second]", spoken)
	}
}

func TestInterruptStopsPlayback(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.Speak("long utterance")
	settle()
	c.Interrupt()
	settle()

	_, stops, _, _ := engine.snapshot()
	if stops == 0 {
		t.Error("interrupt did not stop the engine")
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle after interrupt", c.State())
	}
}

func TestSpeakWhileSpeakingStopsFirst(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.Speak("one")
	settle()
	c.Speak("two")
	settle()

	spoken, stops, _, _ := engine.snapshot()
	if len(spoken) != 2 || spoken[1] != "two" {
		t.Errorf("spoken = %v, want [one two]", spoken)
	}
	if stops == 0 {
		t.Error("expected a stop before the second utterance")
	}
}

func TestNaturalCompletion(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.Speak("short")
	settle()
	engine.finishPlayback()
	settle()

	if c.State() != Idle {
		t.Errorf("state = %v, want idle after playback finished", c.State())
	}
	_, stops, _, _ := engine.snapshot()
	if stops != 0 {
		t.Errorf("stops = %d, want 0 for natural completion", stops)
	}
}

func TestVoiceFilterSelection(t *testing.T) {
	engine := newFakeEngine()
	engine.voices = []Voice{
		{ID: "TTS_MS_EN-US_DAVID", Name: "Microsoft David"},
		{ID: "TTS_MS_EN-US_ZIRA", Name: "Microsoft Zira"},
	}
	c := New(engine)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()

	c.UpdateSettings(200, "zira")
	settle()
	_, _, rate, voice := engine.snapshot()
	if rate != 200 {
		t.Errorf("rate = %d, want 200", rate)
	}
	if voice != "TTS_MS_EN-US_ZIRA" {
		t.Errorf("voice = %q, want the Zira id", voice)
	}

	// Empty filter restores the default voice captured at startup.
	c.UpdateSettings(180, "")
	settle()
	_, _, _, voice = engine.snapshot()
	if voice != "default-voice" {
		t.Errorf("voice = %q, want default restored", voice)
	}
}

func TestSettingsLatestWins(t *testing.T) {
	engine := newFakeEngine()
	c := New(engine)

	c.UpdateSettings(120, "david")
	c.UpdateSettings(240, "")

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	defer c.Stop()
	settle()

	_, _, rate, voice := engine.snapshot()
	if rate != 240 {
		t.Errorf("rate = %d, want 240", rate)
	}
	if voice != "default-voice" {
		t.Errorf("voice = %q, want default", voice)
	}
}
