package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const configFileName = "config.json"

// Win32 hotkey modifier bits (RegisterHotKey fsModifiers).
const (
	ModAlt     = 0x0001
	ModControl = 0x0002
	ModShift   = 0x0004
	ModWin     = 0x0008
)

// Config is an immutable snapshot of all settings. Hot-reload and the
// settings surface always produce a complete new value; nothing mutates a
// Config in place.
type Config struct {
	Hotkey           string `json:"hotkey"`
	ScreenshotHotkey string `json:"screenshot_hotkey"`
	CopyDelayMS      int    `json:"copy_delay_ms"`
	CopyRetryCount   int    `json:"copy_retry_count"`
	MaxChars         int    `json:"max_chars"`
	TTSRate          int    `json:"tts_rate"`
	TTSVoiceContains string `json:"tts_voice_contains"`
	SkipIfNoText     bool   `json:"skip_if_no_text"`
	CopyOCRResult    bool   `json:"copy_ocr_result"`
	OCRDeadlineSec   int    `json:"ocr_deadline_sec"`

	// Environment-only settings (engine credentials and switches).
	EnableFileLogging bool     `json:"-" env:"ENABLE_FILE_LOGGING"`
	TTSEngine         string   `json:"-" env:"TTS_ENGINE"`
	APIKey            string   `json:"-" env:"OPENROUTER_API_KEY"`
	Model             string   `json:"-" env:"MODEL"`
	Providers         []string `json:"-" env:"PROVIDERS" envSeparator:","`
	MinOCRConfidence  float64  `json:"-" env:"MIN_OCR_CONFIDENCE"`
}

// Chord is a parsed hotkey: win32 modifier bits plus a virtual-key code.
type Chord struct {
	Modifiers uint32
	VK        uint32
	Parts     []string
}

// Default returns the built-in settings, before any file or env overrides.
func Default() Config {
	return Config{
		Hotkey:            "alt+q",
		ScreenshotHotkey:  "alt+r",
		CopyDelayMS:       260,
		CopyRetryCount:    2,
		MaxChars:          4000,
		TTSRate:           180,
		OCRDeadlineSec:    15,
		EnableFileLogging: true,
		MinOCRConfidence:  0.35,
	}
}

// Load reads .env (current dir or executable dir), the config.json value
// file (written with defaults when missing), and environment overrides.
func Load() (Config, error) {
	loadDotEnv()

	cfg := Default()
	path := Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(cfg, path); err != nil {
			return Config{}, fmt.Errorf("failed to write default config: %v", err)
		}
	} else {
		loaded, err := ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %v", err)
	}
	if cfg.MinOCRConfidence <= 0 {
		cfg.MinOCRConfidence = 0.35
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadFile parses and validates the value file at path on top of defaults.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %v", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the file-backed settings to path.
func Save(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Path returns the config.json location: next to the executable when it
// exists there, otherwise the current directory.
func Path() string {
	if execPath, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(execPath), configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return configFileName
}

// Validate checks the settings the pipeline depends on.
func (c Config) Validate() error {
	if _, err := ParseHotkey(c.Hotkey); err != nil {
		return err
	}
	if _, err := ParseHotkey(c.ScreenshotHotkey); err != nil {
		return err
	}
	if HotkeyEqual(c.Hotkey, c.ScreenshotHotkey) {
		return fmt.Errorf("text hotkey and screenshot hotkey cannot be the same")
	}
	if c.CopyRetryCount < 1 {
		return fmt.Errorf("copy_retry_count must be at least 1, got %d", c.CopyRetryCount)
	}
	if c.MaxChars < 1 {
		return fmt.Errorf("max_chars must be positive, got %d", c.MaxChars)
	}
	if c.TTSRate < 50 || c.TTSRate > 500 {
		return fmt.Errorf("tts_rate %d out of range [50, 500]", c.TTSRate)
	}
	if c.OCRDeadlineSec < 1 {
		return fmt.Errorf("ocr_deadline_sec must be positive, got %d", c.OCRDeadlineSec)
	}
	return nil
}

// HotkeyEqual compares hotkey strings ignoring case and surrounding space.
func HotkeyEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

var modifierMap = map[string]uint32{
	"alt":   ModAlt,
	"ctrl":  ModControl,
	"shift": ModShift,
	"win":   ModWin,
	"cmd":   ModWin,
	"super": ModWin,
}

// ParseHotkey converts a combo string like "alt+q" or "ctrl+shift+f9" into a
// Chord. The last part is the key; everything before it must be a modifier.
func ParseHotkey(combo string) (Chord, error) {
	var parts []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("invalid hotkey %q, example: alt+q", combo)
	}

	var modifiers uint32
	for _, part := range parts[:len(parts)-1] {
		m, ok := modifierMap[part]
		if !ok {
			return Chord{}, fmt.Errorf("unknown hotkey modifier %q in %q", part, combo)
		}
		modifiers |= m
	}

	vk, err := keyToVK(parts[len(parts)-1])
	if err != nil {
		return Chord{}, fmt.Errorf("%v in %q", err, combo)
	}
	return Chord{Modifiers: modifiers, VK: vk, Parts: parts}, nil
}

func keyToVK(key string) (uint32, error) {
	if len(key) == 1 {
		ch := key[0]
		if ch >= 'a' && ch <= 'z' {
			return uint32(ch - 'a' + 'A'), nil
		}
		if ch >= '0' && ch <= '9' {
			return uint32(ch), nil
		}
	}
	if strings.HasPrefix(key, "f") && len(key) <= 3 {
		var n int
		if _, err := fmt.Sscanf(key, "f%d", &n); err == nil && n >= 1 && n <= 12 {
			return uint32(0x70 + n - 1), nil // VK_F1..VK_F12
		}
	}
	return 0, fmt.Errorf("unknown hotkey key %q", key)
}

func loadDotEnv() {
	envPaths := []string{".env"}
	if execPath, err := os.Executable(); err == nil {
		envPaths = append(envPaths, filepath.Join(filepath.Dir(execPath), ".env"))
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			godotenv.Load(envPath)
			break
		}
	}
}
