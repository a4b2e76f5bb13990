package modes

import (
	"testing"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/registry"
)

// hover flaps whenever the body sinks below line, keeping it in a band
// about 60 units tall above line.
func hover(b flappy.Body, line float64) bool {
	return b.Y > line && b.Velocity > 0
}

type recorder struct {
	events []flappy.Event
}

func (r *recorder) Emit(e flappy.Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind flappy.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func arcadeRound(t *testing.T, roll float64, chances float64) *flappy.Round {
	t.Helper()
	cfg := config.DefaultGameConfig()
	params, err := cfg.Resolve(config.ModeArcade, config.Options{
		CoinChance: config.F64(chances),
		ItemChance: config.F64(chances),
	})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	return flappy.NewRound(cfg, params, Arcade{}, nil, core.FixedRNG{Value: roll})
}

func TestRegisteredModes(t *testing.T) {
	list := registry.List()
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	expected := []string{config.ModeArcade, config.ModeCareer, config.ModeClassic}
	if len(ids) != len(expected) {
		t.Fatalf("registered modes = %v, expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Errorf("mode %d = %s, expected %s", i, ids[i], expected[i])
		}
	}

	m, err := registry.Create(config.ModeCareer)
	if err != nil {
		t.Fatalf("Create(career) failed: %v", err)
	}
	if !m.RequiresLevel() || m.Collectibles() {
		t.Error("career should require a level and have no collectibles")
	}
	if _, err := registry.Create("tetris"); err == nil {
		t.Error("Create(unknown) should fail")
	}

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	registry.Register(config.ModeClassic, func() flappy.Mode { return Classic{} })
}

func TestClassicScoresThenFalls(t *testing.T) {
	rec := &recorder{}
	s, err := flappy.NewSession(flappy.SessionConfig{
		Mode:   Classic{},
		Render: &flappy.LatestFrame{},
		Events: rec,
		RNG:    func() core.RNG { return core.FixedRNG{Value: 0.5} },
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	flapping := true
	for tick := 0; tick < 1000; tick++ {
		snap, _ := s.Snapshot()
		if snap.Score >= 1 {
			flapping = false
		}
		if flapping && hover(snap.Player, 310) {
			s.ApplyImpulse()
		}
		if !s.Tick() {
			break
		}
	}

	out, ok := s.Outcome()
	if !ok {
		t.Fatal("round did not end")
	}
	if out.Result != flappy.Lost || out.Score != 1 {
		t.Errorf("outcome = %+v, expected lost with score 1", out)
	}
	if n := rec.count(flappy.ObstaclePassed); n != 1 {
		t.Errorf("ObstaclePassed emitted %d times, expected 1", n)
	}
	if n := rec.count(flappy.CoinCollected); n != 0 {
		t.Errorf("classic emitted %d coin events", n)
	}
}

func TestCareerWinsAtTarget(t *testing.T) {
	rec := &recorder{}
	s, err := flappy.NewSession(flappy.SessionConfig{
		Mode:   Career{},
		Render: &flappy.LatestFrame{},
		Events: rec,
		RNG:    func() core.RNG { return core.FixedRNG{Value: 0.5} },
	})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatal("career Start() without a level should fail")
	}

	level := &config.Level{ID: "1", Name: "First Flight", Target: 5, Speed: 3, Gap: 150, SpawnInterval: 90}
	if err := s.StartLevel(level); err != nil {
		t.Fatalf("StartLevel() failed: %v", err)
	}

	// Gaps sit at [225, 375]; hovering below 310 never touches a pipe.
	for tick := 0; tick < 1000; tick++ {
		snap, _ := s.Snapshot()
		if hover(snap.Player, 310) {
			s.ApplyImpulse()
		}
		if !s.Tick() {
			break
		}
	}

	out, ok := s.Outcome()
	if !ok {
		t.Fatal("round did not end")
	}
	// Pipes spawn every 91 ticks from tick 91 and take 127 ticks to pass.
	if out.Result != flappy.Won || out.Score != 5 || out.Ticks != 582 {
		t.Errorf("outcome = %+v, expected won with score 5 at tick 582", out)
	}
	if out.LevelID != "1" {
		t.Errorf("LevelID = %q, expected \"1\"", out.LevelID)
	}
	if n := rec.count(flappy.RoundWon); n != 1 {
		t.Errorf("RoundWon emitted %d times, expected 1", n)
	}
	if n := rec.count(flappy.ObstaclePassed); n != 5 {
		t.Errorf("ObstaclePassed emitted %d times, expected 5", n)
	}
	if s.Tick() {
		t.Error("Tick() after a win should report false")
	}
}

func TestCareerEndsOnTheTargetTick(t *testing.T) {
	r := flappy.NewRound(config.DefaultGameConfig(), config.Params{
		Speed: 3, Gap: 150, SpawnInterval: 90, Target: 1,
	}, Career{}, &config.Level{ID: "1", Target: 1}, core.FixedRNG{Value: 0.5})

	var res flappy.Result
	for range 1000 {
		if hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		out, done := r.Step()
		if done {
			res = out
			break
		}
		if r.Progress().Score >= 1 {
			t.Fatal("target reached without ending the round")
		}
	}
	if res != flappy.Won {
		t.Errorf("result = %v, expected won", res)
	}
}

func TestShieldAbsorbsOneHit(t *testing.T) {
	// Gaps at [50, 200]: hovering at 250..310 hits every pipe.
	r := arcadeRound(t, 0, 0)
	r.Powerups().Activate(flappy.Shield)

	brokenAt := -1
	var res flappy.Result
	done := false
	for range 1000 {
		if hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		res, done = r.Step()
		for _, e := range r.Drain() {
			if e.Kind == flappy.ShieldBroken {
				if brokenAt >= 0 {
					t.Fatal("shield broke twice")
				}
				brokenAt = e.Tick
			}
		}
		if done {
			break
		}
	}

	if brokenAt < 0 {
		t.Fatal("shield never absorbed a hit")
	}
	if !done || res != flappy.Lost {
		t.Fatalf("round = %v done=%v, expected lost", res, done)
	}
	if r.Tick() <= brokenAt {
		t.Errorf("lost at tick %d, expected after the shield broke at %d", r.Tick(), brokenAt)
	}
	if r.Powerups().Active(flappy.Shield) {
		t.Error("shield should be spent")
	}
	if r.Progress().Score != 0 {
		t.Errorf("score = %d, expected 0", r.Progress().Score)
	}
}

func TestGhostPassesPipesButNotBounds(t *testing.T) {
	r := arcadeRound(t, 0, 0)
	r.Powerups().Activate(flappy.Ghost)

	var res flappy.Result
	done := false
	for range 1000 {
		if r.Progress().Score == 0 && hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		if res, done = r.Step(); done {
			break
		}
	}

	if !done || res != flappy.Lost {
		t.Fatalf("round = %v done=%v, expected lost", res, done)
	}
	if r.Progress().Score != 1 {
		t.Errorf("score = %d, expected 1 pipe passed through", r.Progress().Score)
	}
	if !r.Powerups().Active(flappy.Ghost) {
		t.Error("ghost should still be active when bounds end the round")
	}
	if b := r.Body(); !b.OutOfBounds(600) {
		t.Errorf("body at y=%f should be out of bounds", b.Y)
	}
}

func TestGapWidenLetsLowFlightPass(t *testing.T) {
	// Gaps sit at [225, 375]. Hovering below 385 dips the body under 375,
	// but stays inside the widened opening [190, 410].
	play := func(widen bool) (*flappy.Round, bool) {
		r := arcadeRound(t, 0.5, 0)
		for range 300 {
			if hover(r.Body(), 385) {
				r.ApplyImpulse()
			}
			if _, done := r.Step(); done {
				return r, false
			}

			if widen && len(r.Pipes()) > 0 && !r.Powerups().Active(flappy.GapWiden) {
				r.Powerups().Activate(flappy.GapWiden)
			}
			for _, p := range r.Pipes() {
				if p.Gap() != 150 {
					t.Fatalf("stored gap = %f, expected 150", p.Gap())
				}
			}
			if r.Progress().Score >= 1 {
				return r, true
			}
		}
		return r, false
	}

	if _, passed := play(false); passed {
		t.Fatal("low flight should hit the unwidened pipe")
	}
	if _, passed := play(true); !passed {
		t.Fatal("low flight should pass once the gap widens")
	}
}

func TestGapWidenEasesPipeOpenings(t *testing.T) {
	r := arcadeRound(t, 0.5, 0)
	for len(r.Pipes()) == 0 {
		if hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		if _, done := r.Step(); done {
			t.Fatalf("round ended at tick %d", r.Tick())
		}
	}
	r.Powerups().Activate(flappy.GapWiden)

	prev := 150.0
	for i := range 30 {
		if hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		if _, done := r.Step(); done {
			t.Fatalf("round ended at tick %d", r.Tick())
		}

		snap := r.Snapshot()
		opening := snap.Pipes[0].Bottom - snap.Pipes[0].Top
		if opening < prev || opening > 220 {
			t.Fatalf("opening at widen tick %d = %f, previous %f", i+1, opening, prev)
		}
		if i == 0 && opening >= 220 {
			t.Errorf("first widen tick opened fully to %f", opening)
		}
		prev = opening

		if g := r.Pipes()[0].Gap(); g != 150 {
			t.Errorf("stored gap = %f, expected 150", g)
		}
	}
	if prev != 220 {
		t.Errorf("opening after the ease = %f, expected 220", prev)
	}
}

func TestMagnetCollectsGapCoin(t *testing.T) {
	r := arcadeRound(t, 0.5, 1)
	r.Powerups().Activate(flappy.Magnet)

	coins := 0
	for range 220 {
		if hover(r.Body(), 310) {
			r.ApplyImpulse()
		}
		if _, done := r.Step(); done {
			t.Fatalf("round ended at tick %d", r.Tick())
		}
		for _, e := range r.Drain() {
			if e.Kind == flappy.CoinCollected {
				coins++
			}
		}
	}

	if coins < 1 || r.Progress().Coins != coins {
		t.Errorf("coins = %d (progress %d), expected at least 1", coins, r.Progress().Coins)
	}
}

func TestArcadeSessionsAreReproducible(t *testing.T) {
	play := func() flappy.Outcome {
		s, err := flappy.NewSession(flappy.SessionConfig{
			Mode:   Arcade{},
			Render: &flappy.LatestFrame{},
			Seed:   2024,
		})
		if err != nil {
			t.Fatalf("NewSession() failed: %v", err)
		}
		_ = s.Start()
		for tick := 0; tick < 2000; tick++ {
			snap, _ := s.Snapshot()
			if hover(snap.Player, 320) {
				s.ApplyImpulse()
			}
			if !s.Tick() {
				break
			}
		}
		s.Stop()
		out, _ := s.Outcome()
		return out
	}

	a, b := play(), play()
	if a != b {
		t.Errorf("outcomes differ: %+v vs %+v", a, b)
	}
}
