// Package speech runs an interruptible speech-output queue of depth one. A
// single processing loop owns the engine; callers hand work over through
// single-slot fields where a newer value overwrites an unconsumed older one.
package speech

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// State of the controller's playback machine.
type State int

const (
	Idle State = iota
	Speaking
)

func (s State) String() string {
	if s == Speaking {
		return "speaking"
	}
	return "idle"
}

const (
	tickInterval = 10 * time.Millisecond
	// Ticks drained after a stop so the engine settles before the next
	// utterance is enqueued.
	drainTicks = 5
	// An utterance younger than this is not checked for completion; async
	// engines may not report busy immediately after Speak.
	completionGrace = 50 * time.Millisecond
)

type pendingSettings struct {
	rate        int
	voiceFilter string
}

// Controller serializes all engine access through one processing loop.
type Controller struct {
	engine Engine

	mu              sync.Mutex
	pendingText     *string
	pendingSettings *pendingSettings
	interruptReq    bool
	state           State

	defaultVoice   string
	utteranceStart time.Time
	wasInterrupted bool

	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
}

func New(engine Engine) *Controller {
	return &Controller{engine: engine}
}

// Start records the engine's default voice and launches the processing
// loop. Engine probe failure is fatal to startup.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return fmt.Errorf("speech controller already started")
	}

	voice, err := c.engine.CurrentVoice()
	if err != nil {
		return fmt.Errorf("speech engine probe failed: %v", err)
	}
	c.defaultVoice = voice
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	c.started = true
	go c.loop()
	log.Printf("Speech controller started, default voice %q", voice)
	return nil
}

// Stop shuts the loop down and releases the engine.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	c.started = false
	close(c.stopCh)
	done := c.doneCh
	c.mu.Unlock()

	<-done
	c.engine.Stop()
	c.engine.Close()
	log.Printf("Speech controller stopped")
}

// Speak stores text in the pending slot, overwriting any unconsumed prior
// value, and returns immediately.
func (c *Controller) Speak(text string) {
	c.mu.Lock()
	if c.pendingText != nil {
		log.Printf("Pending utterance overwritten before playback (%d chars dropped)", len(*c.pendingText))
	}
	c.pendingText = &text
	c.mu.Unlock()
}

// Interrupt requests that current playback stop. The loop honors it on its
// next tick.
func (c *Controller) Interrupt() {
	c.mu.Lock()
	c.interruptReq = true
	c.mu.Unlock()
}

// UpdateSettings stores rate and voice-filter overrides to be applied before
// the next utterance. Latest call wins.
func (c *Controller) UpdateSettings(rate int, voiceFilter string) {
	c.mu.Lock()
	c.pendingSettings = &pendingSettings{rate: rate, voiceFilter: voiceFilter}
	c.mu.Unlock()
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) loop() {
	defer close(c.doneCh)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *Controller) tick() {
	c.mu.Lock()
	interrupt := c.interruptReq
	c.interruptReq = false
	settings := c.pendingSettings
	c.pendingSettings = nil
	text := c.pendingText
	c.pendingText = nil
	state := c.state
	c.mu.Unlock()

	// Keyed on our own state, not Busy: an async engine may not report busy
	// until playback actually starts, and an interrupt in that window must
	// still stop the utterance already handed to it.
	if interrupt && (state == Speaking || c.engine.Busy()) {
		c.stopAndDrain()
		c.markInterrupted()
		state = c.finishUtterance()
	}

	if settings != nil {
		c.applySettings(settings)
	}

	if text != nil {
		if c.engine.Busy() {
			c.stopAndDrain()
			c.markInterrupted()
			c.finishUtterance()
		}
		if err := c.engine.Speak(*text); err != nil {
			log.Printf("ERROR: speech engine rejected utterance: %v", err)
		} else {
			c.beginUtterance(len(*text))
		}
		return
	}

	if state == Speaking && !c.engine.Busy() && c.utteranceAge() >= completionGrace {
		c.finishUtterance()
	}
}

// stopAndDrain stops playback and waits a few ticks for the engine to go
// quiet, so enqueuing right after a stop does not race engine teardown.
func (c *Controller) stopAndDrain() {
	if err := c.engine.Stop(); err != nil {
		log.Printf("ERROR: speech engine stop failed: %v", err)
	}
	for i := 0; i < drainTicks && c.engine.Busy(); i++ {
		time.Sleep(tickInterval)
	}
}

func (c *Controller) applySettings(s *pendingSettings) {
	if err := c.engine.SetRate(s.rate); err != nil {
		log.Printf("ERROR: failed to set speech rate %d: %v", s.rate, err)
	}
	if err := c.applyVoiceFilter(s.voiceFilter); err != nil {
		log.Printf("ERROR: failed to apply voice filter %q: %v", s.voiceFilter, err)
	}
}

// applyVoiceFilter selects the first voice whose id or name contains the
// filter, case-insensitive. An empty filter restores the default voice.
func (c *Controller) applyVoiceFilter(filter string) error {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return c.engine.SetVoice(c.defaultVoice)
	}

	voices, err := c.engine.Voices()
	if err != nil {
		return err
	}
	needle := strings.ToLower(filter)
	for _, v := range voices {
		if strings.Contains(strings.ToLower(v.ID), needle) || strings.Contains(strings.ToLower(v.Name), needle) {
			log.Printf("Voice filter %q matched %q", filter, v.Name)
			return c.engine.SetVoice(v.ID)
		}
	}
	log.Printf("Voice filter %q matched no installed voice, keeping default", filter)
	return c.engine.SetVoice(c.defaultVoice)
}

func (c *Controller) beginUtterance(chars int) {
	c.mu.Lock()
	c.state = Speaking
	c.utteranceStart = time.Now()
	c.wasInterrupted = false
	c.mu.Unlock()
	log.Printf("Speaking %d chars", chars)
}

func (c *Controller) markInterrupted() {
	c.mu.Lock()
	c.wasInterrupted = true
	c.mu.Unlock()
}

func (c *Controller) finishUtterance() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Speaking {
		if c.wasInterrupted {
			log.Printf("Utterance interrupted")
		} else {
			log.Printf("Utterance completed naturally")
		}
	}
	c.state = Idle
	return c.state
}

func (c *Controller) utteranceAge() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.utteranceStart)
}
