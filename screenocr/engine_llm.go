package screenocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"tts-reader/llm"
)

// LLMEngine adapts the OpenRouter vision client to the Engine interface.
// Vision models report no per-line confidence, so every line scores 1.0 and
// passes any sane threshold.
type LLMEngine struct {
	client *llm.Client
}

func NewLLMEngine(client *llm.Client) *LLMEngine {
	return &LLMEngine{client: client}
}

func (e *LLMEngine) Recognize(img image.Image) ([]Line, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %v", err)
	}

	text, err := e.client.QueryVision(buf.Bytes())
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		lines = append(lines, Line{Text: raw, Confidence: 1.0})
	}
	return lines, nil
}
