// Package llm extracts text from images through the OpenRouter chat API
// using a vision-capable model.
package llm

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"tts-reader/logutil"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	maxRetries    = 3
	initialDelay  = 1 * time.Second

	ocrPrompt = "Perform OCR on this image. Return ONLY the raw extracted text with:\n" +
		"- No formatting\n" +
		"- No XML/HTML tags\n" +
		"- No markdown\n" +
		"- No explanations\n" +
		"- Preserve line breaks accurately from the visual layout.\n" +
		"If no text found, return 'NO_TEXT_FOUND'"
)

// Client talks to a single OpenRouter model.
type Client struct {
	apiKey    string
	model     string
	providers []string
	http      *http.Client
}

// New builds a client. providers optionally pins provider routing; empty
// means default OpenRouter routing.
func New(apiKey, model string, providers []string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	log.Printf("LLM client: model=%s key=%s providers=%v", model, logutil.RedactKey(apiKey), providers)
	return &Client{
		apiKey:    apiKey,
		model:     model,
		providers: providers,
		http:      &http.Client{Timeout: 45 * time.Second},
	}, nil
}

type message struct {
	Role    string    `json:"role"`
	Content []content `json:"content"`
}

type content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type providerPreferences struct {
	Order          []string `json:"order,omitempty"`
	AllowFallbacks *bool    `json:"allow_fallbacks,omitempty"`
}

type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []message            `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	Provider    *providerPreferences `json:"provider,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string      `json:"message"`
	Type    string      `json:"type"`
	Code    interface{} `json:"code"` // string or number depending on provider
}

// QueryVision OCRs a PNG image. Returns "" with a nil error when the model
// reports the image contains no text.
func (c *Client) QueryVision(pngData []byte) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)

	request := chatRequest{
		Model: c.model,
		Messages: []message{{
			Role: "user",
			Content: []content{
				{Type: "text", Text: ocrPrompt},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			},
		}},
		Temperature: 0.1,
		MaxTokens:   2000,
		Provider:    c.providerPreferences(),
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(initialDelay) * (1.5 * float64(attempt)))
			log.Printf("OCR request retry %d after %v: %v", attempt, delay, lastErr)
			time.Sleep(delay)
		}

		response, err := c.post(request)
		if err != nil {
			lastErr = err
			continue
		}
		if len(response.Choices) == 0 {
			lastErr = fmt.Errorf("no choices in API response")
			continue
		}

		text := cleanExtractedText(response.Choices[0].Message.Content)
		if text == "" || text == "NO_TEXT_FOUND" {
			return "", nil
		}
		return text, nil
	}

	return "", fmt.Errorf("failed after %d attempts: %v", maxRetries, lastErr)
}

func (c *Client) providerPreferences() *providerPreferences {
	if len(c.providers) == 0 {
		return nil
	}
	allowFallbacks := false
	return &providerPreferences{Order: c.providers, AllowFallbacks: &allowFallbacks}
}

func (c *Client) post(request chatRequest) (*chatResponse, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", openRouterURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", "TTS Reader")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %v", err)
	}
	defer resp.Body.Close()

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}
	if response.Error != nil {
		return nil, fmt.Errorf("API error: %s (type: %s, code: %v)",
			response.Error.Message, response.Error.Type, response.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	return &response, nil
}

// cleanExtractedText strips tag artifacts some models wrap around OCR output.
func cleanExtractedText(text string) string {
	text = strings.TrimSuffix(strings.TrimSpace(text), "</image>")
	return strings.TrimSpace(text)
}
