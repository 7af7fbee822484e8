package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// googleEngine synthesizes speech through Google Cloud Text-to-Speech and
// plays the MP3 result locally. Credentials come from the usual
// GOOGLE_APPLICATION_CREDENTIALS environment.
type googleEngine struct {
	client *texttospeech.Client
	ctx    context.Context

	mu     sync.Mutex
	busy   bool
	rate   float64       // speaking-rate multiplier
	voice  string        // voice name, empty selects server default
	gen    int           // playback generation, bumped on Stop and on each Speak
	cancel chan struct{} // closed when the current generation is invalidated
}

const googleLanguageCode = "en-US"

// NewGoogleEngine connects to the Cloud TTS API.
func NewGoogleEngine(ctx context.Context) (Engine, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud TTS client: %v", err)
	}
	return &googleEngine{client: client, ctx: ctx, rate: 1.0, cancel: make(chan struct{})}, nil
}

// Speak synthesizes and plays text on a background goroutine so the caller
// is not held for network or playback time.
func (e *googleEngine) Speak(text string) error {
	e.mu.Lock()
	e.busy = true
	e.invalidateLocked()
	gen := e.gen
	cancelled := e.cancel
	rate := e.rate
	voice := e.voice
	e.mu.Unlock()

	go func() {
		defer e.finish(gen)
		if err := e.synthesizeAndPlay(text, rate, voice, gen, cancelled); err != nil {
			log.Printf("ERROR: Cloud TTS playback failed: %v", err)
		}
	}()
	return nil
}

func (e *googleEngine) synthesizeAndPlay(text string, rate float64, voice string, gen int, cancelled <-chan struct{}) error {
	ctx, cancel := context.WithTimeout(e.ctx, 30*time.Second)
	defer cancel()

	req := &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: googleLanguageCode,
			Name:         voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: ttspb.AudioEncoding_MP3,
			SpeakingRate:  rate,
		},
	}
	started := time.Now()
	resp, err := e.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return err
	}
	log.Printf("Cloud TTS synthesized %d chars in %v", len(text), time.Since(started))

	if e.cancelled(gen) {
		return nil
	}

	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(resp.GetAudioContent())))
	if err != nil {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() { close(done) })))
	// speaker.Clear drops queued streamers without running their callbacks,
	// so an interrupted utterance is released through the cancel channel.
	select {
	case <-done:
	case <-cancelled:
	}
	return nil
}

// Stop clears the speaker and invalidates any synthesis or playback still
// in flight.
func (e *googleEngine) Stop() error {
	e.mu.Lock()
	e.busy = false
	e.invalidateLocked()
	e.mu.Unlock()
	speaker.Clear()
	return nil
}

// invalidateLocked bumps the playback generation and releases any goroutine
// waiting on the previous one. Callers hold e.mu.
func (e *googleEngine) invalidateLocked() {
	e.gen++
	close(e.cancel)
	e.cancel = make(chan struct{})
}

func (e *googleEngine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *googleEngine) SetRate(wordsPerMinute int) error {
	rate := float64(wordsPerMinute) / 180.0
	if rate < 0.25 {
		rate = 0.25
	}
	if rate > 4.0 {
		rate = 4.0
	}
	e.mu.Lock()
	e.rate = rate
	e.mu.Unlock()
	return nil
}

func (e *googleEngine) SetVoice(id string) error {
	e.mu.Lock()
	e.voice = id
	e.mu.Unlock()
	return nil
}

func (e *googleEngine) CurrentVoice() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.voice, nil
}

func (e *googleEngine) Voices() ([]Voice, error) {
	ctx, cancel := context.WithTimeout(e.ctx, 15*time.Second)
	defer cancel()

	resp, err := e.client.ListVoices(ctx, &ttspb.ListVoicesRequest{LanguageCode: googleLanguageCode})
	if err != nil {
		return nil, fmt.Errorf("Cloud TTS ListVoices failed: %v", err)
	}

	var voices []Voice
	for _, v := range resp.GetVoices() {
		name := v.GetName()
		voices = append(voices, Voice{
			ID:   name,
			Name: name + " (" + strings.Join(v.GetLanguageCodes(), ",") + ")",
		})
	}
	return voices, nil
}

func (e *googleEngine) Close() {
	if err := e.client.Close(); err != nil {
		log.Printf("ERROR: Cloud TTS client close failed: %v", err)
	}
}

func (e *googleEngine) finish(gen int) {
	e.mu.Lock()
	if e.gen == gen {
		e.busy = false
	}
	e.mu.Unlock()
}

func (e *googleEngine) cancelled(gen int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen != gen
}
