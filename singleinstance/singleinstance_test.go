package singleinstance

import (
	"errors"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	t.Setenv("SINGLEINSTANCE_PORT_START", "49700")
	t.Setenv("SINGLEINSTANCE_PORT_END", "49710")

	lock, err := Acquire()
	if err != nil {
		t.Skipf("loopback unavailable in this environment: %v", err)
	}
	if lock.Port() < 49700 || lock.Port() > 49710 {
		t.Errorf("port = %d, want one inside the configured range", lock.Port())
	}

	if _, err := Acquire(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Acquire err = %v, want ErrAlreadyRunning", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	again, err := Acquire()
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	again.Release()
}

func TestPortRangeClampAndSwap(t *testing.T) {
	t.Setenv("SINGLEINSTANCE_PORT_START", "100")
	t.Setenv("SINGLEINSTANCE_PORT_END", "70000")
	start, end := portRange()
	if start != 1024 || end != 65535 {
		t.Errorf("range = [%d, %d], want clamped to [1024, 65535]", start, end)
	}

	t.Setenv("SINGLEINSTANCE_PORT_START", "50000")
	t.Setenv("SINGLEINSTANCE_PORT_END", "49000")
	start, end = portRange()
	if start != 49000 || end != 50000 {
		t.Errorf("range = [%d, %d], want swapped into order", start, end)
	}
}
