package selection

import (
	"testing"
	"time"

	"tts-reader/clipguard"
)

type fakeClip struct {
	text       string
	hasText    bool
	seq        uint32
	snapshots  int
	restores   int
	restoreArg clipguard.Snapshot
	fallback   string
}

func (f *fakeClip) Snapshot() clipguard.Snapshot {
	f.snapshots++
	return clipguard.Snapshot{Valid: true, HadContent: true, TextBackup: "prior", HasTextBackup: true}
}

func (f *fakeClip) Restore(snap clipguard.Snapshot, fallbackText string) {
	f.restores++
	f.restoreArg = snap
	f.fallback = fallbackText
}

func (f *fakeClip) ReadText() (string, bool) { return f.text, f.hasText }

func (f *fakeClip) SequenceNumber() uint32 { return f.seq }

// setClipboard simulates another process (the focused app) landing a copy.
func (f *fakeClip) setClipboard(text string) {
	f.text = text
	f.hasText = true
	f.seq++
}

type fakeQuerier struct{ text string }

func (q fakeQuerier) FocusedSelection() string { return q.text }

type fakeInjector struct {
	clip       *fakeClip
	copyCalls  int
	ctrlC      int
	ctrlIns    int
	succeedOn  string // mechanism that lands text, "" for never
	copiedText string
}

func (i *fakeInjector) SendCopyCommand() bool {
	i.copyCalls++
	if i.succeedOn == MethodWMCopy {
		i.clip.setClipboard(i.copiedText)
	}
	return true
}

func (i *fakeInjector) SendCtrlC() bool {
	i.ctrlC++
	if i.succeedOn == MethodCtrlC {
		i.clip.setClipboard(i.copiedText)
	}
	return true
}

func (i *fakeInjector) SendCtrlInsert() bool {
	i.ctrlIns++
	if i.succeedOn == MethodCtrlInsert {
		i.clip.setClipboard(i.copiedText)
	}
	return true
}

func (i *fakeInjector) WaitModifierRelease(time.Duration) {}

func newTestCapturer(querierText, succeedOn, copiedText string) (*Capturer, *fakeClip, *fakeInjector) {
	clip := &fakeClip{}
	inj := &fakeInjector{clip: clip, succeedOn: succeedOn, copiedText: copiedText}
	return NewWithCollaborators(clip, fakeQuerier{text: querierText}, inj), clip, inj
}

func TestAccessibilityPathSkipsClipboard(t *testing.T) {
	c, clip, inj := newTestCapturer("hello world", "", "")
	text, method := c.Capture(100, 2)
	if text != "hello world" || method != MethodAccessibility {
		t.Fatalf("got (%q, %q)", text, method)
	}
	if clip.snapshots != 0 || inj.ctrlC != 0 {
		t.Fatal("accessibility success must not touch the clipboard")
	}
}

func TestWhitespaceAccessibilityFallsThrough(t *testing.T) {
	c, clip, _ := newTestCapturer("   ", MethodCtrlC, "from clipboard")
	text, method := c.Capture(100, 2)
	if text != "from clipboard" || method != MethodCtrlC {
		t.Fatalf("whitespace-only query should fall through, got (%q, %q)", text, method)
	}
	if clip.snapshots != 1 {
		t.Fatal("clipboard strategy should have run")
	}
}

func TestClipboardCaptureRestoresOnSuccess(t *testing.T) {
	c, clip, _ := newTestCapturer("", MethodCtrlC, "copied\r\ntext\n")
	text, method := c.Capture(100, 2)
	if text != "copied\ntext" || method != MethodCtrlC {
		t.Fatalf("got (%q, %q)", text, method)
	}
	if clip.restores != 1 {
		t.Fatal("restore must run after a successful capture")
	}
	if clip.fallback != "copied\r\ntext\n" {
		t.Fatalf("restore fallback should be the raw captured text, got %q", clip.fallback)
	}
}

func TestClipboardCaptureRestoresOnTimeout(t *testing.T) {
	c, clip, _ := newTestCapturer("", "", "")
	text, method := c.Capture(50, 1)
	if text != "" || method != MethodTimeout {
		t.Fatalf("got (%q, %q)", text, method)
	}
	if clip.restores != 1 {
		t.Fatal("restore must run on the timeout path too")
	}
}

func TestRetryCountBoundsRounds(t *testing.T) {
	c, _, inj := newTestCapturer("", "", "")
	c.Capture(50, 1)
	if inj.copyCalls != 1 || inj.ctrlC != 1 || inj.ctrlIns != 1 {
		t.Fatalf("retry count 1 should run exactly one round, got %d/%d/%d",
			inj.copyCalls, inj.ctrlC, inj.ctrlIns)
	}

	c3, _, inj3 := newTestCapturer("", "", "")
	c3.Capture(50, 3)
	if inj3.copyCalls != 3 || inj3.ctrlC != 3 || inj3.ctrlIns != 3 {
		t.Fatalf("retry count 3 should run exactly three rounds, got %d/%d/%d",
			inj3.copyCalls, inj3.ctrlC, inj3.ctrlIns)
	}
}

func TestWaitBudgetIsNotInflated(t *testing.T) {
	c, _, _ := newTestCapturer("", "", "")
	start := time.Now()
	text, _ := c.waitForClipboardText(0, 60)
	elapsed := time.Since(start)
	if text != "" {
		t.Fatalf("text = %q, want none", text)
	}
	if elapsed >= 120*time.Millisecond {
		t.Errorf("60ms wait budget ran for %v", elapsed)
	}
}

func TestWmCopyWinsFirst(t *testing.T) {
	c, _, inj := newTestCapturer("", MethodWMCopy, "fast app")
	text, method := c.Capture(100, 2)
	if text != "fast app" || method != MethodWMCopy {
		t.Fatalf("got (%q, %q)", text, method)
	}
	if inj.ctrlC != 0 {
		t.Fatal("chords should not be injected after a wm_copy success")
	}
}

func TestWaitProfiles(t *testing.T) {
	profiles := waitProfiles(260, 3)
	if len(profiles) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(profiles))
	}
	if profiles[0].wmCopy != 90 || profiles[0].ctrlC != 140 || profiles[0].ctrlInsert != 180 {
		t.Fatalf("quick profile wrong: %+v", profiles[0])
	}
	if profiles[1].wmCopy != 220 || profiles[1].ctrlC != 260 || profiles[1].ctrlInsert != 260 {
		t.Fatalf("full profile wrong: %+v", profiles[1])
	}

	// Small configured delays are floored so waits stay meaningful.
	profiles = waitProfiles(10, 1)
	if profiles[0].ctrlC != 140 {
		t.Fatalf("tiny delay should floor to 140, got %d", profiles[0].ctrlC)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  a\r\nb  \n"); got != "a\nb" {
		t.Fatalf("Normalize = %q", got)
	}
	if got := Normalize(" \r\n "); got != "" {
		t.Fatalf("whitespace should normalize empty, got %q", got)
	}
}
