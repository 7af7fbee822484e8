package llm

import "testing"

func TestNewValidation(t *testing.T) {
	if _, err := New("", "model", nil); err == nil {
		t.Error("Expected error with missing API key")
	}
	if _, err := New("key", "", nil); err == nil {
		t.Error("Expected error with missing model")
	}
	if _, err := New("key", "model", nil); err != nil {
		t.Errorf("Unexpected error with valid config: %v", err)
	}
}

func TestProviderPreferences(t *testing.T) {
	c, err := New("key", "model", nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.providerPreferences() != nil {
		t.Error("Expected nil preferences without providers")
	}

	c, err = New("key", "model", []string{"deepinfra", "novita"})
	if err != nil {
		t.Fatal(err)
	}
	prefs := c.providerPreferences()
	if prefs == nil {
		t.Fatal("Expected preferences with providers set")
	}
	if len(prefs.Order) != 2 || prefs.Order[0] != "deepinfra" {
		t.Errorf("Unexpected provider order: %v", prefs.Order)
	}
	if prefs.AllowFallbacks == nil || *prefs.AllowFallbacks {
		t.Error("Expected fallbacks disabled when providers are pinned")
	}
}

func TestCleanExtractedText(t *testing.T) {
	cases := map[string]string{
		"hello world":          "hello world",
		"hello world</image>":  "hello world",
		"</image>":             "",
		"  padded  ":           "padded",
		"line one\nline two":   "line one\nline two",
	}
	for in, want := range cases {
		if got := cleanExtractedText(in); got != want {
			t.Errorf("cleanExtractedText(%q) = %q, want %q", in, got, want)
		}
	}
}
