package config

import (
	"path/filepath"
	"testing"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		combo     string
		modifiers uint32
		vk        uint32
	}{
		{"alt+q", ModAlt, 'Q'},
		{"Ctrl+Alt+Q", ModControl | ModAlt, 'Q'},
		{"ctrl+shift+f9", ModControl | ModShift, 0x78},
		{" win + 3 ", ModWin, '3'},
	}
	for _, tt := range tests {
		chord, err := ParseHotkey(tt.combo)
		if err != nil {
			t.Fatalf("ParseHotkey(%q): %v", tt.combo, err)
		}
		if chord.Modifiers != tt.modifiers {
			t.Errorf("ParseHotkey(%q) modifiers = %#x, want %#x", tt.combo, chord.Modifiers, tt.modifiers)
		}
		if chord.VK != tt.vk {
			t.Errorf("ParseHotkey(%q) vk = %#x, want %#x", tt.combo, chord.VK, tt.vk)
		}
	}
}

func TestParseHotkeyRejectsBadInput(t *testing.T) {
	for _, combo := range []string{"", "q", "alt+", "bogus+q", "alt+enter", "alt+f13"} {
		if _, err := ParseHotkey(combo); err == nil {
			t.Errorf("ParseHotkey(%q) should fail", combo)
		}
	}
}

func TestValidateRejectsIdenticalHotkeys(t *testing.T) {
	cfg := Default()
	cfg.ScreenshotHotkey = " ALT+Q "
	if err := cfg.Validate(); err == nil {
		t.Fatal("identical hotkeys (case/space-insensitive) should not validate")
	}
}

func TestValidateBounds(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := cfg
	bad.CopyRetryCount = 0
	if err := bad.Validate(); err == nil {
		t.Error("copy_retry_count 0 should not validate")
	}

	bad = cfg
	bad.MaxChars = 0
	if err := bad.Validate(); err == nil {
		t.Error("max_chars 0 should not validate")
	}

	bad = cfg
	bad.TTSRate = 20
	if err := bad.Validate(); err == nil {
		t.Error("tts_rate 20 should not validate")
	}
}

func TestSaveAndReadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Default()
	want.Hotkey = "ctrl+alt+s"
	want.MaxChars = 1234
	want.TTSVoiceContains = "zira"

	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Hotkey != want.Hotkey || got.MaxChars != want.MaxChars || got.TTSVoiceContains != want.TTSVoiceContains {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestReadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Hotkey = "not-a-hotkey"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("invalid hotkey in file should fail ReadFile")
	}
}

func TestHotkeyEqual(t *testing.T) {
	if !HotkeyEqual("Alt+Q", " alt+q ") {
		t.Error("comparison should ignore case and surrounding space")
	}
	if HotkeyEqual("alt+q", "alt+r") {
		t.Error("different hotkeys should not compare equal")
	}
}
