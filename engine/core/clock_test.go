package core

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	clock := NewClock()

	// Updating a clock that was never started does nothing.
	clock.Update()
	if clock.Elapsed() != 0 {
		t.Fatalf("elapsed = %f on a non-started clock", clock.Elapsed())
	}

	clock.Start()
	time.Sleep(10 * time.Millisecond)
	clock.Update()
	if clock.Elapsed() <= 0 {
		t.Fatal("elapsed should advance after Start")
	}

	clock.Stop()
	frozen := clock.Elapsed()
	time.Sleep(5 * time.Millisecond)
	clock.Update()
	if clock.Elapsed() != frozen {
		t.Errorf("elapsed moved after Stop: %f -> %f", frozen, clock.Elapsed())
	}

	// Restarting resets elapsed time.
	clock.Start()
	if clock.Elapsed() != 0 {
		t.Errorf("elapsed = %f after restart, want 0", clock.Elapsed())
	}
}
