package flappy

import "sync"

// EventKind identifies a domain event emitted by a session.
type EventKind int

const (
	RoundStarted EventKind = iota
	ObstaclePassed
	CoinCollected
	PowerupUsed
	ShieldBroken
	RoundWon
	RoundLost
)

func (k EventKind) String() string {
	switch k {
	case RoundStarted:
		return "round_started"
	case ObstaclePassed:
		return "obstacle_passed"
	case CoinCollected:
		return "coin_collected"
	case PowerupUsed:
		return "powerup_used"
	case ShieldBroken:
		return "shield_broken"
	case RoundWon:
		return "round_won"
	case RoundLost:
		return "round_lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the event ends a round.
func (k EventKind) Terminal() bool {
	return k == RoundWon || k == RoundLost
}

// Outcome is the terminal report of one round.
type Outcome struct {
	Result  Result
	Mode    string
	LevelID string // empty outside career
	Score   int
	Coins   int
	Ticks   int
}

// Event is one domain event. Run increases with every start so listeners
// can tell rounds apart.
type Event struct {
	Run     uint64
	Kind    EventKind
	Tick    int
	Mode    string
	LevelID string
	Score   int
	Coins   int
	Powerup Kind     // PowerupUsed only
	Outcome *Outcome // RoundWon and RoundLost only
}

// EventSink receives events synchronously on the ticking goroutine while
// the session lock is held. Implementations must not block and must not
// call back into the session.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard EventSink = SinkFunc(func(Event) {})

// MultiSink fans every event out to each sink in order.
type MultiSink []EventSink

// Emit implements EventSink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Filter forwards only the listed kinds to sink.
func Filter(sink EventSink, kinds ...EventKind) EventSink {
	allowed := make(map[EventKind]bool, len(kinds))
	for _, k := range kinds {
		allowed[k] = true
	}
	return SinkFunc(func(e Event) {
		if allowed[e.Kind] {
			sink.Emit(e)
		}
	})
}

// ChannelSink buffers events for a consumer goroutine. When the buffer
// is full the oldest event is dropped so Emit never blocks.
type ChannelSink struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewChannelSink creates a sink with the given buffer size.
func NewChannelSink(size int) *ChannelSink {
	if size < 1 {
		size = 64
	}
	return &ChannelSink{
		events: make(chan Event, size),
		done:   make(chan struct{}),
	}
}

// Emit implements EventSink.
func (s *ChannelSink) Emit(e Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- e:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- e:
		default:
		}
	}
}

// Events returns the channel consumers read from.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Done is closed by Close.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
