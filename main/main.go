package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"tts-reader/clipboard"
	"tts-reader/config"
	"tts-reader/llm"
	"tts-reader/logutil"
	"tts-reader/overlay"
	"tts-reader/reader"
	"tts-reader/screenocr"
	"tts-reader/selection"
	"tts-reader/singleinstance"
	"tts-reader/speech"
	"tts-reader/tray"
)

func main() {
	enableDPIAwareness()

	// The tray and overlay both want the main thread's message queue.
	runtime.LockOSThread()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logutil.Setup(cfg.EnableFileLogging)

	lock, err := singleinstance.Acquire()
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		fmt.Fprintln(os.Stderr, "tts-reader is already running")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Failed to acquire instance lock: %v", err)
	}
	defer lock.Release()

	if cfg.APIKey == "" {
		log.Fatalf("OPENROUTER_API_KEY is required. Please set it in your .env file.")
	}
	if cfg.Model == "" {
		log.Fatalf("MODEL is required. Please set it in your .env file.")
	}

	ocrClient, err := llm.New(cfg.APIKey, cfg.Model, cfg.Providers)
	if err != nil {
		log.Fatalf("Failed to create OCR client: %v", err)
	}

	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := newSpeechEngine(ctx, cfg.TTSEngine)
	if err != nil {
		log.Fatalf("Failed to initialize speech engine: %v", err)
	}
	speechCtl := speech.New(engine)
	if err := speechCtl.Start(); err != nil {
		log.Fatalf("Failed to start speech controller: %v", err)
	}
	defer speechCtl.Stop()

	screenCap := screenocr.New(
		overlay.New(),
		screenocr.NewLLMEngine(ocrClient),
		cfg.MinOCRConfidence,
		time.Duration(cfg.OCRDeadlineSec)*time.Second,
	)

	rd := reader.New(cfg, speechCtl, selection.New(), screenCap)
	if err := rd.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer rd.Stop()

	// Hot-reload: value-file changes reapply on the fly. Env-only settings
	// (credentials, engine selection) keep their startup values.
	envOnly := cfg
	err = config.Watch(ctx, config.Path(), func(next config.Config) {
		next.EnableFileLogging = envOnly.EnableFileLogging
		next.TTSEngine = envOnly.TTSEngine
		next.APIKey = envOnly.APIKey
		next.Model = envOnly.Model
		next.Providers = envOnly.Providers
		next.MinOCRConfidence = envOnly.MinOCRConfidence
		if err := rd.ApplyConfig(next); err != nil {
			log.Printf("ERROR: config reload rejected: %v", err)
		}
	})
	if err != nil {
		log.Printf("ERROR: config watch unavailable: %v", err)
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		tray.Quit()
	}()

	log.Printf("TTS Reader started: read=%s screenshot=%s model=%s",
		cfg.Hotkey, cfg.ScreenshotHotkey, cfg.Model)

	tray.Run(tray.Callbacks{
		OnReadSelection: rd.OnReadSelection,
		OnScreenshot:    rd.OnReadScreenshot,
		OnReplay:        rd.Replay,
		OnOpenLogs:      openLogFile,
		OnExit:          cancel,
	})
}

// newSpeechEngine picks the backend: "google" uses Cloud TTS anywhere, the
// default is the native SAPI voice.
func newSpeechEngine(ctx context.Context, name string) (speech.Engine, error) {
	if name == "google" {
		return speech.NewGoogleEngine(ctx)
	}
	return speech.NewSAPIEngine()
}

func openLogFile() {
	path := logutil.Path()
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("ERROR: failed to open log file %s: %v", path, err)
	}
}

// enableDPIAwareness asks Windows for per-monitor DPI awareness so overlay
// coordinates match physical pixels on scaled displays.
func enableDPIAwareness() {
	if runtime.GOOS != "windows" {
		return
	}
	shcore := syscall.NewLazyDLL("Shcore.dll")
	setProcessDpiAwareness := shcore.NewProc("SetProcessDpiAwareness")
	const perMonitorDPIAware = 2
	if err := setProcessDpiAwareness.Find(); err == nil {
		setProcessDpiAwareness.Call(uintptr(perMonitorDPIAware))
		return
	}
	user32 := syscall.NewLazyDLL("user32.dll")
	setProcessDPIAware := user32.NewProc("SetProcessDPIAware")
	if err := setProcessDPIAware.Find(); err == nil {
		setProcessDPIAware.Call()
	}
}
