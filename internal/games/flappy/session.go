package flappy

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/scheduler"
)

var (
	// ErrNoRenderSink is returned when a session has nowhere to draw.
	ErrNoRenderSink = errors.New("flappy: no render sink")
	// ErrNoMode is returned when a session has no mode strategy.
	ErrNoMode = errors.New("flappy: no mode")
	// ErrLevelRequired is returned by Start for modes played by level.
	ErrLevelRequired = errors.New("flappy: mode requires a level")
	// ErrLevelNotSupported is returned by StartLevel for modes without levels.
	ErrLevelNotSupported = errors.New("flappy: mode does not use levels")
)

// State is the session lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// SessionConfig wires a session to its mode and collaborators.
type SessionConfig struct {
	Mode    Mode
	Game    config.GameConfig // zero value means config.DefaultGameConfig()
	Options config.Options    // ignored by StartLevel
	Render  RenderSink
	Events  EventSink // nil discards events

	// RNG builds the random source of each round. When nil a generator
	// seeded with Seed is used; a zero Seed picks one from the clock.
	RNG  func() core.RNG
	Seed int64

	// Clock drives ticking. When nil no scheduler runs and the host
	// calls Tick itself.
	Clock  scheduler.ClockFactory
	Logger *log.Logger
}

// Session runs rounds of one mode. Lifecycle calls may come from any
// goroutine; ticks run one at a time.
type Session struct {
	cfg   SessionConfig
	game  config.GameConfig
	sched *scheduler.Scheduler

	ctl sync.Mutex // serializes lifecycle calls

	mu       sync.Mutex
	state    State
	run      uint64
	round    *Round
	level    *config.Level
	finished bool
	outcome  *Outcome
}

// NewSession validates the configuration. Nothing ticks until Start or
// StartLevel.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Mode == nil {
		return nil, ErrNoMode
	}
	if isNil(cfg.Render) {
		return nil, ErrNoRenderSink
	}
	if cfg.Events == nil {
		cfg.Events = Discard
	}

	game := cfg.Game
	if game.Modes == nil && game.World.Width == 0 {
		game = config.DefaultGameConfig()
	} else {
		game.Modes = maps.Clone(game.Modes)
	}
	game.Normalize()

	s := &Session{cfg: cfg, game: game}
	if cfg.Clock != nil {
		var opts []scheduler.Option
		if cfg.Logger != nil {
			opts = append(opts, scheduler.WithLogger(cfg.Logger))
		}
		s.sched = scheduler.New(cfg.Clock, opts...)
	}
	return s, nil
}

// isNil also catches interfaces holding a nil pointer or func.
func isNil(sink RenderSink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Start begins a fresh round with the configured options.
func (s *Session) Start() error {
	if s.cfg.Mode.RequiresLevel() {
		return ErrLevelRequired
	}
	params, err := s.game.Resolve(s.cfg.Mode.ID(), s.cfg.Options)
	if err != nil {
		return fmt.Errorf("flappy: cannot start %s: %w", s.cfg.Mode.ID(), err)
	}
	return s.begin(params, nil)
}

// StartLevel begins a fresh round of a level. An invalid level leaves the
// session untouched.
func (s *Session) StartLevel(l *config.Level) error {
	if !s.cfg.Mode.RequiresLevel() {
		return ErrLevelNotSupported
	}
	if l == nil {
		return fmt.Errorf("%w: missing level", config.ErrInvalidLevel)
	}
	params, err := s.game.ResolveLevel(*l)
	if err != nil {
		return err
	}
	level := *l
	return s.begin(params, &level)
}

func (s *Session) begin(params config.Params, level *config.Level) error {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.stop()

	s.mu.Lock()
	s.run++
	run := s.run
	var dm *config.DifficultyManager
	if level == nil {
		dm = config.NewDifficultyManager(s.game.Difficulty)
	}
	s.round = newRound(run, s.game, params, s.cfg.Mode, level, s.newRNG(), dm)
	s.level = level
	s.state = Running
	s.finished = false
	s.outcome = nil
	s.round.emit(Event{Kind: RoundStarted})
	s.publish()
	s.mu.Unlock()

	if s.sched != nil {
		if err := s.sched.Start(func() bool { return s.step(run) }); err != nil {
			return fmt.Errorf("flappy: cannot schedule round: %w", err)
		}
	}
	return nil
}

func (s *Session) newRNG() core.RNG {
	if s.cfg.RNG != nil {
		return s.cfg.RNG()
	}
	return core.NewRNG(s.cfg.Seed)
}

// Tick advances the current round by one frame. Hosts without a clock
// call it directly. It reports whether the round is still live.
func (s *Session) Tick() bool {
	s.mu.Lock()
	run := s.run
	s.mu.Unlock()
	return s.step(run)
}

// step is the tick body. A tick from a replaced run or a finished round
// does nothing.
func (s *Session) step(run uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run != s.run || s.finished || s.round == nil {
		return false
	}
	if s.state != Running {
		return true
	}

	res, done := s.round.Step()
	if done {
		s.finishLocked(res)
	}
	s.publish()
	return !done
}

// finishLocked latches the finished flag before the outcome goes out.
func (s *Session) finishLocked(res Result) {
	s.finished = true
	s.state = Finished
	out := s.round.finish(res)
	s.outcome = &out
}

// publish renders the round and flushes its events. Caller holds mu.
func (s *Session) publish() {
	s.cfg.Render.Render(s.round.snapshot(s.state, s.outcome))
	for _, e := range s.round.Drain() {
		s.cfg.Events.Emit(e)
	}
}

// Pause freezes a running round without touching its entities.
func (s *Session) Pause() bool {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}
	s.state = Paused
	s.publish()
	s.mu.Unlock()

	if s.sched != nil {
		s.sched.Pause()
	}
	return true
}

// Resume continues a paused round from where it stopped.
func (s *Session) Resume() bool {
	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	if s.state != Paused {
		s.mu.Unlock()
		return false
	}
	s.state = Running
	s.publish()
	s.mu.Unlock()

	if s.sched != nil {
		s.sched.Resume()
	}
	return true
}

// TogglePause pauses a running round or resumes a paused one.
func (s *Session) TogglePause() {
	if !s.Pause() {
		s.Resume()
	}
}

// Stop ends a live round as lost with its current score and cancels any
// pending tick. Stopping twice reports the outcome once.
func (s *Session) Stop() {
	s.ctl.Lock()
	defer s.ctl.Unlock()
	s.stop()
}

func (s *Session) stop() {
	s.mu.Lock()
	if s.round != nil && !s.finished {
		s.finishLocked(Lost)
		s.publish()
	}
	s.mu.Unlock()

	// Outside mu: the loop may be waiting for it inside step.
	if s.sched != nil {
		s.sched.Stop()
	}
}

// ApplyImpulse flaps the player. Only the body changes; everything else
// waits for the next tick.
func (s *Session) ApplyImpulse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running || s.round == nil {
		return false
	}
	s.round.ApplyImpulse()
	return true
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Outcome returns the last finished round's outcome.
func (s *Session) Outcome() (Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Snapshot returns the current render data.
func (s *Session) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return Snapshot{}, false
	}
	return s.round.snapshot(s.state, s.outcome), true
}

// Level returns a copy of the level being played, or nil.
func (s *Session) Level() *config.Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.level == nil {
		return nil
	}
	l := *s.level
	return &l
}

// Mode returns the session's mode strategy.
func (s *Session) Mode() Mode {
	return s.cfg.Mode
}

// Game returns the normalized configuration the session runs with.
func (s *Session) Game() config.GameConfig {
	return s.game
}
