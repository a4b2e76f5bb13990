// Package scheduler drives a tick function once per frame on a single
// goroutine and owns the running/paused/stopped lifecycle.
package scheduler

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrAlreadyRunning is returned by Start on a running or paused scheduler.
var ErrAlreadyRunning = errors.New("scheduler: already running")

// State is the scheduler lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Scheduler runs tick on its own goroutine once per clock frame. Ticks
// never overlap. Pause, Stop and a tick returning false all end the
// current loop goroutine; Pause and Stop wait for it to exit, so no tick
// of that loop runs after they return. They must not be called from
// inside tick.
type Scheduler struct {
	newClock ClockFactory
	logger   *log.Logger

	mu    sync.Mutex
	state State
	tick  func() bool
	run   *run
}

// run is the cancellation handle of one loop goroutine.
type run struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func (r *run) halt() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets a logger for lifecycle debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// New creates an idle scheduler. A nil factory means a 60 fps ticker.
func New(clock ClockFactory, opts ...Option) *Scheduler {
	if clock == nil {
		clock = TickerClock(60)
	}
	s := &Scheduler{newClock: clock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins ticking. Returning false from tick ends the loop and moves
// the scheduler to Stopped. A stopped scheduler may be started again.
func (s *Scheduler) Start(tick func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running || s.state == Paused {
		return ErrAlreadyRunning
	}
	s.tick = tick
	s.launch()
	s.state = Running
	s.debug("scheduler started")
	return nil
}

// Pause stops scheduling ticks. It reports whether the state changed.
func (s *Scheduler) Pause() bool {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}
	r := s.run
	s.run = nil
	s.state = Paused
	s.mu.Unlock()

	r.halt()
	s.debug("scheduler paused")
	return true
}

// Resume continues ticking with a fresh clock after Pause.
func (s *Scheduler) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Paused {
		return false
	}
	s.launch()
	s.state = Running
	s.debug("scheduler resumed")
	return true
}

// Stop cancels the pending tick and waits for the loop to exit.
// Calling it more than once is harmless.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	r := s.run
	s.run = nil
	if s.state != Idle {
		s.state = Stopped
	}
	s.mu.Unlock()

	if r != nil {
		r.halt()
		s.debug("scheduler stopped")
	}
}

// launch starts a loop goroutine. Caller holds mu.
func (s *Scheduler) launch() {
	r := &run{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	s.run = r
	go s.loop(r, s.newClock(), s.tick)
}

func (s *Scheduler) loop(r *run, clock Clock, tick func() bool) {
	defer close(r.done)
	defer clock.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-clock.Frames():
			// A received frame always ticks; stop is seen before the next one.
			if !tick() {
				s.finish(r)
				return
			}
		}
	}
}

// finish marks the scheduler stopped when the loop ended on its own.
func (s *Scheduler) finish(r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == r {
		s.run = nil
		s.state = Stopped
		s.debug("scheduler finished")
	}
}

func (s *Scheduler) debug(msg string) {
	if s.logger != nil {
		s.logger.Debug(msg)
	}
}
