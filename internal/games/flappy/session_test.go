package flappy

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/scheduler"
)

// stubMode is a minimal strategy so the session can be tested without
// the real modes package.
type stubMode struct {
	id      string
	level   bool
	collect bool
	winAt   int // EvaluateTerminal reports Won from this tick; 0 never
}

func (m stubMode) ID() string          { return m.id }
func (m stubMode) Title() string       { return m.id }
func (m stubMode) Description() string { return "" }
func (m stubMode) RequiresLevel() bool { return m.level }
func (m stubMode) Collectibles() bool  { return m.collect }

func (m stubMode) OnObstaclePassed(*Round) {}

func (m stubMode) OnCollision(*Round, Collision) Resolution { return Fatal }

func (m stubMode) EvaluateTerminal(r *Round) (Result, bool) {
	if m.winAt > 0 && r.Tick() >= m.winAt {
		return Won, true
	}
	return 0, false
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) of(kind EventKind) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func newTestSession(t *testing.T, mode Mode, events EventSink) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{
		Mode:   mode,
		Render: RenderFunc(func(Snapshot) {}),
		Events: events,
		Seed:   7,
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

var (
	classicStub = stubMode{id: config.ModeClassic}
	careerStub  = stubMode{id: config.ModeCareer, level: true}
)

func TestNewSessionValidation(t *testing.T) {
	if _, err := NewSession(SessionConfig{Render: &LatestFrame{}}); !errors.Is(err, ErrNoMode) {
		t.Errorf("missing mode error = %v, expected ErrNoMode", err)
	}

	sinks := []struct {
		name   string
		render RenderSink
	}{
		{"missing", nil},
		{"nil frame", (*LatestFrame)(nil)},
		{"nil func", RenderFunc(nil)},
	}
	for _, tc := range sinks {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSession(SessionConfig{Mode: classicStub, Render: tc.render})
			if !errors.Is(err, ErrNoRenderSink) {
				t.Errorf("NewSession() error = %v, expected ErrNoRenderSink", err)
			}
			if s != nil {
				t.Error("NewSession() returned a session with no render sink")
			}
		})
	}
}

func TestStartEntryPoints(t *testing.T) {
	level := &config.Level{ID: "1", Target: 5}

	career := newTestSession(t, careerStub, nil)
	if err := career.Start(); !errors.Is(err, ErrLevelRequired) {
		t.Errorf("Start() on career = %v, expected ErrLevelRequired", err)
	}

	classic := newTestSession(t, classicStub, nil)
	if err := classic.StartLevel(level); !errors.Is(err, ErrLevelNotSupported) {
		t.Errorf("StartLevel() on classic = %v, expected ErrLevelNotSupported", err)
	}

	bad := []*config.Level{
		nil,
		{ID: "", Target: 5},
		{ID: "x", Target: 0},
	}
	for _, l := range bad {
		if err := career.StartLevel(l); !errors.Is(err, config.ErrInvalidLevel) {
			t.Errorf("StartLevel(%+v) = %v, expected ErrInvalidLevel", l, err)
		}
		if career.State() != Idle {
			t.Errorf("State() after invalid level = %v, expected idle", career.State())
		}
		if _, ok := career.Snapshot(); ok {
			t.Error("invalid level must not create a round")
		}
	}

	if err := career.StartLevel(level); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}
	if got := career.Level(); got == nil || got.ID != "1" {
		t.Errorf("Level() = %+v, expected level 1", got)
	}
	snap, _ := career.Snapshot()
	if snap.Target != 5 || snap.LevelID != "1" {
		t.Errorf("snapshot target=%d level=%q, expected 5 and \"1\"", snap.Target, snap.LevelID)
	}
}

func TestFreeFallEndsRoundLost(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, classicStub, rec)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	// y(n) = 300 + n(n+1)/4 with gravity 0.5; the bottom edge (y+12)
	// passes 600 first at n = 34.
	ticks := 0
	for s.Tick() {
		ticks++
		if ticks > 100 {
			t.Fatal("round never ended")
		}
	}

	out, ok := s.Outcome()
	if !ok {
		t.Fatal("Outcome() missing after the round ended")
	}
	if out.Result != Lost || out.Ticks != 34 || out.Score != 0 {
		t.Errorf("outcome = %+v, expected lost at tick 34 with score 0", out)
	}
	if s.State() != Finished {
		t.Errorf("State() = %v, expected finished", s.State())
	}

	if s.Tick() {
		t.Error("Tick() after finish should report false")
	}
	s.Stop()
	if n := len(rec.of(RoundLost)); n != 1 {
		t.Errorf("RoundLost emitted %d times, expected 1", n)
	}
	if n := len(rec.of(RoundStarted)); n != 1 {
		t.Errorf("RoundStarted emitted %d times, expected 1", n)
	}
}

func TestStopReportsLostOnce(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, classicStub, rec)
	_ = s.Start()
	for range 5 {
		s.Tick()
	}

	s.Stop()
	s.Stop()

	lost := rec.of(RoundLost)
	if len(lost) != 1 {
		t.Fatalf("RoundLost emitted %d times, expected 1", len(lost))
	}
	if lost[0].Outcome == nil || lost[0].Outcome.Ticks != 5 {
		t.Errorf("outcome = %+v, expected ticks 5", lost[0].Outcome)
	}
	if s.State() != Finished {
		t.Errorf("State() = %v, expected finished", s.State())
	}
}

func TestImpulseOnlyWhileRunning(t *testing.T) {
	s := newTestSession(t, classicStub, nil)
	if s.ApplyImpulse() {
		t.Error("impulse before start should be ignored")
	}

	_ = s.Start()
	if !s.ApplyImpulse() {
		t.Error("impulse while running should apply")
	}
	snap, _ := s.Snapshot()
	if snap.Player.Velocity != -8 {
		t.Errorf("velocity = %f, expected -8", snap.Player.Velocity)
	}

	s.Pause()
	if s.ApplyImpulse() {
		t.Error("impulse while paused should be ignored")
	}
	s.Resume()
	s.Stop()
	if s.ApplyImpulse() {
		t.Error("impulse after stop should be ignored")
	}
}

func TestPauseFreezesRound(t *testing.T) {
	s := newTestSession(t, classicStub, nil)
	_ = s.Start()
	for range 3 {
		s.Tick()
	}

	if !s.Pause() {
		t.Fatal("Pause() should succeed")
	}
	before, _ := s.Snapshot()
	for range 5 {
		if !s.Tick() {
			t.Fatal("paused round reported finished")
		}
	}
	after, _ := s.Snapshot()
	if after.Tick != 3 || after.Hash() != before.Hash() {
		t.Errorf("paused round advanced to tick %d", after.Tick)
	}
	if s.Pause() {
		t.Error("Pause() twice should report no change")
	}

	s.TogglePause()
	if s.State() != Running {
		t.Fatalf("State() = %v, expected running", s.State())
	}
	s.Tick()
	if snap, _ := s.Snapshot(); snap.Tick != 4 {
		t.Errorf("tick after resume = %d, expected 4", snap.Tick)
	}
}

func TestRestartIsolatesRuns(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(t, classicStub, rec)
	_ = s.Start()
	for range 3 {
		s.Tick()
	}

	_ = s.Start()
	lost := rec.of(RoundLost)
	if len(lost) != 1 || lost[0].Run != 1 {
		t.Fatalf("restart should finish run 1 once, got %+v", lost)
	}
	started := rec.of(RoundStarted)
	if len(started) != 2 || started[1].Run != 2 {
		t.Fatalf("RoundStarted events = %+v", started)
	}

	snap, _ := s.Snapshot()
	if snap.Run != 2 || snap.Tick != 0 || snap.Score != 0 {
		t.Errorf("fresh round = run %d tick %d score %d", snap.Run, snap.Tick, snap.Score)
	}
	if _, ok := s.Outcome(); ok {
		t.Error("a fresh round has no outcome")
	}

	// A tick bound to the old run is a no-op.
	if s.step(1) {
		t.Error("stale run tick should report false")
	}
	if snap, _ := s.Snapshot(); snap.Tick != 0 {
		t.Errorf("stale tick advanced the new round to %d", snap.Tick)
	}
}

func TestWinLatchesOnce(t *testing.T) {
	rec := &recorder{}
	mode := stubMode{id: config.ModeCareer, level: true, winAt: 3}
	s := newTestSession(t, mode, rec)
	if err := s.StartLevel(&config.Level{ID: "2", Target: 1}); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}

	for s.Tick() {
	}
	s.Tick()
	s.Stop()

	won := rec.of(RoundWon)
	if len(won) != 1 {
		t.Fatalf("RoundWon emitted %d times, expected 1", len(won))
	}
	if out := won[0].Outcome; out.Result != Won || out.LevelID != "2" || out.Ticks != 3 {
		t.Errorf("outcome = %+v, expected won level 2 at tick 3", out)
	}
	if n := len(rec.of(RoundLost)); n != 0 {
		t.Errorf("Stop after a win emitted %d RoundLost events", n)
	}
}

func TestSeededSessionsAreDeterministic(t *testing.T) {
	mode := stubMode{id: config.ModeArcade, collect: true}
	a := newTestSession(t, mode, nil)
	b := newTestSession(t, mode, nil)
	_ = a.Start()
	_ = b.Start()

	for tick := 1; tick <= 300; tick++ {
		if tick%18 == 0 {
			a.ApplyImpulse()
			b.ApplyImpulse()
		}
		liveA, liveB := a.Tick(), b.Tick()
		sa, _ := a.Snapshot()
		sb, _ := b.Snapshot()
		if liveA != liveB || sa.Hash() != sb.Hash() {
			t.Fatalf("tick %d: sessions diverged", tick)
		}
		if !liveA {
			break
		}
	}
}

func waitFrame(t *testing.T, frames <-chan Snapshot, match func(Snapshot) bool) Snapshot {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-frames:
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatal("timed out waiting for frame")
			return Snapshot{}
		}
	}
}

func TestScheduledSession(t *testing.T) {
	clock := scheduler.NewManualClock()
	frames := make(chan Snapshot, 256)
	s, err := NewSession(SessionConfig{
		Mode: classicStub,
		Render: RenderFunc(func(snap Snapshot) {
			select {
			case frames <- snap:
			default:
			}
		}),
		Seed:  1,
		Clock: clock.Factory(),
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	_ = s.Start()
	for range 3 {
		clock.Step()
	}
	waitFrame(t, frames, func(f Snapshot) bool { return f.Tick == 3 })

	s.Pause()
	if clock.TryStep(20 * time.Millisecond) {
		t.Error("paused session consumed a frame")
	}

	s.Resume()
	clock.Step()
	waitFrame(t, frames, func(f Snapshot) bool { return f.Tick == 4 })

	s.Stop()
	out, ok := s.Outcome()
	if !ok || out.Ticks != 4 || out.Result != Lost {
		t.Errorf("outcome = %+v, expected lost at tick 4", out)
	}

	// The clock now feeds only the new run.
	_ = s.Start()
	clock.Step()
	f := waitFrame(t, frames, func(f Snapshot) bool { return f.Run == 2 && f.Tick == 1 })
	if f.State != Running {
		t.Errorf("new run state = %v, expected running", f.State)
	}
	s.Stop()
}
