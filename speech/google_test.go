package speech

import (
	"testing"
	"time"
)

func TestGoogleStopReleasesInterruptedPlayback(t *testing.T) {
	e := &googleEngine{cancel: make(chan struct{})}
	e.mu.Lock()
	cancelled := e.cancel
	e.mu.Unlock()

	done := make(chan struct{}) // playback completion that never fires
	released := make(chan struct{})
	go func() {
		select {
		case <-done:
		case <-cancelled:
		}
		close(released)
	}()

	if err := e.Stop(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("interrupted playback goroutine was not released")
	}
	if e.Busy() {
		t.Error("Busy() = true after Stop")
	}
}

func TestGoogleNewGenerationInvalidatesPrior(t *testing.T) {
	e := &googleEngine{cancel: make(chan struct{})}
	e.mu.Lock()
	prior := e.cancel
	e.invalidateLocked()
	current := e.gen
	e.mu.Unlock()

	select {
	case <-prior:
	default:
		t.Error("prior generation channel not closed")
	}
	if e.cancelled(current) {
		t.Error("current generation reported cancelled")
	}
	if !e.cancelled(current - 1) {
		t.Error("prior generation not reported cancelled")
	}
}
