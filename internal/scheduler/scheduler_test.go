package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

const noReader = 20 * time.Millisecond

func TestStartStepStop(t *testing.T) {
	clock := NewManualClock()
	s := New(clock.Factory())

	var ticks atomic.Int32
	if err := s.Start(func() bool { ticks.Add(1); return true }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.State() != Running {
		t.Fatalf("State() = %v, expected running", s.State())
	}

	for range 5 {
		clock.Step()
	}
	s.Stop()

	if got := ticks.Load(); got != 5 {
		t.Errorf("ticks = %d, expected 5", got)
	}
	if s.State() != Stopped {
		t.Errorf("State() = %v, expected stopped", s.State())
	}
	if clock.TryStep(noReader) {
		t.Error("no loop should receive frames after Stop")
	}

	s.Stop() // idempotent
}

func TestStartTwice(t *testing.T) {
	clock := NewManualClock()
	s := New(clock.Factory())
	defer s.Stop()

	if err := s.Start(func() bool { return true }); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := s.Start(func() bool { return true }); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() error = %v, expected ErrAlreadyRunning", err)
	}
}

func TestPauseResume(t *testing.T) {
	clock := NewManualClock()
	s := New(clock.Factory())
	defer s.Stop()

	var ticks atomic.Int32
	_ = s.Start(func() bool { ticks.Add(1); return true })
	clock.Step()
	clock.Step()

	if !s.Pause() {
		t.Fatal("Pause() should succeed while running")
	}
	if s.Pause() {
		t.Error("Pause() twice should report no change")
	}
	if clock.TryStep(noReader) {
		t.Error("paused scheduler must not consume frames")
	}
	if got := ticks.Load(); got != 2 {
		t.Errorf("ticks while paused = %d, expected 2", got)
	}

	if !s.Resume() {
		t.Fatal("Resume() should succeed while paused")
	}
	clock.Step()
	clock.Step() // the second send completes only after the first tick returned
	if got := ticks.Load(); got < 3 {
		t.Errorf("ticks after resume = %d, expected at least 3", got)
	}
}

func TestTickReturningFalseStops(t *testing.T) {
	clock := NewManualClock()
	s := New(clock.Factory())

	var ticks atomic.Int32
	_ = s.Start(func() bool { return ticks.Add(1) < 3 })

	for range 3 {
		clock.Step()
	}
	if clock.TryStep(noReader) {
		t.Error("loop should have exited after tick returned false")
	}
	if s.State() != Stopped {
		t.Errorf("State() = %v, expected stopped", s.State())
	}

	// A stopped scheduler may be restarted.
	if err := s.Start(func() bool { return true }); err != nil {
		t.Errorf("restart failed: %v", err)
	}
	s.Stop()
}

func TestStopCancelsPendingTick(t *testing.T) {
	clock := NewManualClock()
	s := New(clock.Factory())

	var old atomic.Int32
	_ = s.Start(func() bool { old.Add(1); return true })
	clock.Step()
	s.Stop()

	var fresh atomic.Int32
	_ = s.Start(func() bool { fresh.Add(1); return true })
	for range 4 {
		clock.Step()
	}
	s.Stop()

	if got := old.Load(); got != 1 {
		t.Errorf("old run ticks = %d, expected 1", got)
	}
	if got := fresh.Load(); got != 4 {
		t.Errorf("new run ticks = %d, expected 4", got)
	}
}

func TestTickerClock(t *testing.T) {
	s := New(TickerClock(200))

	done := make(chan struct{})
	var ticks atomic.Int32
	_ = s.Start(func() bool {
		if ticks.Add(1) == 3 {
			close(done)
			return false
		}
		return true
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker clock did not deliver frames")
	}
	s.Stop()
}
