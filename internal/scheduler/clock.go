package scheduler

import (
	"time"
)

// Clock delivers frame signals to a scheduler run. A fresh Clock is
// created for every run and stopped when the run ends.
type Clock interface {
	Frames() <-chan time.Time
	Stop()
}

// ClockFactory creates the clock for one run.
type ClockFactory func() Clock

type tickerClock struct {
	t *time.Ticker
}

func (c tickerClock) Frames() <-chan time.Time { return c.t.C }
func (c tickerClock) Stop()                    { c.t.Stop() }

// TickerClock returns a factory for wall-clock frames at fps per second.
func TickerClock(fps int) ClockFactory {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return func() Clock {
		return tickerClock{t: time.NewTicker(interval)}
	}
}

// ManualClock lets a host or test push frames explicitly. The same clock
// may serve several runs; Stop does not close it.
type ManualClock struct {
	ch chan time.Time
}

// NewManualClock creates an unbuffered manual clock.
func NewManualClock() *ManualClock {
	return &ManualClock{ch: make(chan time.Time)}
}

// Factory returns a ClockFactory that always hands out this clock.
func (c *ManualClock) Factory() ClockFactory {
	return func() Clock { return c }
}

// Frames implements Clock.
func (c *ManualClock) Frames() <-chan time.Time { return c.ch }

// Stop implements Clock.
func (c *ManualClock) Stop() {}

// Step delivers one frame and blocks until a running loop receives it.
func (c *ManualClock) Step() {
	c.ch <- time.Now()
}

// TryStep delivers one frame unless no loop receives it within d.
func (c *ManualClock) TryStep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case c.ch <- time.Now():
		return true
	case <-timer.C:
		return false
	}
}
