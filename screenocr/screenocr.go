// Package screenocr orchestrates interactive region capture and text
// recognition with cooperative abort. Callers pass an abort predicate that is
// polled at every checkpoint; a true return discards the work in progress
// with no further side effects.
package screenocr

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/nfnt/resize"

	"tts-reader/overlay"
	"tts-reader/screenshot"
)

// Method tags describing how a capture attempt concluded.
const (
	MethodOCR         = "ocr"
	MethodOCRFallback = "ocr-fallback-pass"
	MethodAborted     = "aborted"
	MethodCancelled   = "cancelled"
	MethodNoText      = "no-text"
)

// Recognition pass size caps. The first pass shrinks large captures so the
// common case stays fast; the retry pass rescales to a larger cap, which can
// salvage low-resolution captures at extra cost.
const (
	primaryMaxDim  = 1600
	fallbackMaxDim = 2048
)

// Line is one recognized text line with its confidence score in [0, 1].
type Line struct {
	Text       string
	Confidence float64
}

// Engine recognizes text in an image. Implementations are not assumed safe
// for concurrent invocation.
type Engine interface {
	Recognize(img image.Image) ([]Line, error)
}

// Result describes one capture attempt. Timing and pixel metrics cover both
// recognition passes when the fallback pass ran.
type Result struct {
	Text      string
	Method    string
	CaptureMS int64
	OCRMS     int64
	Pixels    int
}

// Capturer runs the region-select, screenshot, recognize sequence.
type Capturer struct {
	selector      overlay.Selector
	engine        Engine
	minConfidence float64
	deadline      time.Duration

	recognizeMu sync.Mutex // engine is single in-flight only
}

// New builds a capturer. deadline bounds the interactive selection; zero
// means wait forever.
func New(selector overlay.Selector, engine Engine, minConfidence float64, deadline time.Duration) *Capturer {
	return &Capturer{
		selector:      selector,
		engine:        engine,
		minConfidence: minConfidence,
		deadline:      deadline,
	}
}

type selection struct {
	region screenshot.Region
	ok     bool
	err    error
}

// Capture runs one capture attempt. abortIf is polled before the overlay is
// shown, after selection, and once more immediately before a successful
// return, so a result for a superseded request is never handed out.
func (c *Capturer) Capture(abortIf func() bool) (Result, error) {
	if abortIf() {
		return Result{Method: MethodAborted}, nil
	}

	sel, ok := c.selectRegion()
	if !ok {
		return Result{Method: MethodCancelled}, nil
	}
	if sel.err != nil {
		return Result{}, sel.err
	}

	if abortIf() {
		log.Printf("OCR request superseded during region selection, discarding")
		return Result{Method: MethodAborted}, nil
	}

	captureStart := time.Now()
	img, err := screenshot.CaptureRegion(sel.region)
	if err != nil {
		return Result{}, fmt.Errorf("screen capture failed: %v", err)
	}
	captureMS := time.Since(captureStart).Milliseconds()

	if abortIf() {
		return Result{Method: MethodAborted}, nil
	}

	text, method, ocrMS, pixels, err := c.recognize(img)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Text:      text,
		Method:    method,
		CaptureMS: captureMS,
		OCRMS:     ocrMS,
		Pixels:    pixels,
	}
	if abortIf() {
		log.Printf("OCR result arrived for superseded request, discarding (%d chars)", len(text))
		return Result{Method: MethodAborted}, nil
	}
	return result, nil
}

// selectRegion runs the interactive selector, bounded by the deadline. On
// timeout the selection is treated as cancelled; the overlay goroutine is
// left to finish on its own since the UI loop cannot be interrupted.
func (c *Capturer) selectRegion() (selection, bool) {
	done := make(chan selection, 1)
	go func() {
		region, ok, err := c.selector.Select()
		done <- selection{region: region, ok: ok, err: err}
	}()

	if c.deadline <= 0 {
		sel := <-done
		return sel, sel.ok || sel.err != nil
	}

	select {
	case sel := <-done:
		return sel, sel.ok || sel.err != nil
	case <-time.After(c.deadline):
		log.Printf("Region selection exceeded %v deadline, treating as cancelled", c.deadline)
		return selection{}, false
	}
}

// recognize runs the two-pass policy under the engine lock.
func (c *Capturer) recognize(img *image.RGBA) (text, method string, ocrMS int64, pixels int, err error) {
	c.recognizeMu.Lock()
	defer c.recognizeMu.Unlock()

	primary := capToMaxDim(img, primaryMaxDim)
	text, ms, px, err := c.runPass(primary)
	ocrMS, pixels = ms, px
	if err != nil {
		return "", "", 0, 0, err
	}
	if text != "" {
		return text, MethodOCR, ocrMS, pixels, nil
	}

	// Empty first pass: retry once at the larger cap before giving up.
	retry := scaleToMaxDim(img, fallbackMaxDim)
	text, ms, px, err = c.runPass(retry)
	ocrMS += ms
	pixels += px
	if err != nil {
		return "", "", 0, 0, err
	}
	if text != "" {
		log.Printf("OCR fallback pass recovered %d chars", len(text))
		return text, MethodOCRFallback, ocrMS, pixels, nil
	}
	return "", MethodNoText, ocrMS, pixels, nil
}

func (c *Capturer) runPass(img image.Image) (string, int64, int, error) {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()

	start := time.Now()
	lines, err := c.engine.Recognize(img)
	ms := time.Since(start).Milliseconds()
	if err != nil {
		return "", ms, pixels, fmt.Errorf("recognition failed: %v", err)
	}

	var kept []string
	for _, line := range lines {
		if line.Confidence < c.minConfidence {
			continue
		}
		if trimmed := strings.TrimSpace(line.Text); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n"), ms, pixels, nil
}

// capToMaxDim shrinks img so its longest side is at most maxDim. Images
// already within the cap pass through untouched.
func capToMaxDim(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return scaleToMaxDim(img, maxDim)
}

// scaleToMaxDim rescales img, up or down, so its longest side equals maxDim.
func scaleToMaxDim(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	if w >= h {
		return resize.Resize(uint(maxDim), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(maxDim), img, resize.Lanczos3)
}
