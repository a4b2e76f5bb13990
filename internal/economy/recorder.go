package economy

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgap/internal/games/flappy"
)

// Recorder settles a player's rounds on its own goroutine so the tick
// never waits on the database.
type Recorder struct {
	econ   *Economy
	player string
	logger *log.Logger

	events *flappy.ChannelSink
	sink   flappy.EventSink
	done   chan struct{}
}

// NewRecorder starts a recorder for player. Wire Sink into the session
// and Close it when the session ends.
func (e *Economy) NewRecorder(player string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	events := flappy.NewChannelSink(16)
	r := &Recorder{
		econ:   e,
		player: player,
		logger: logger,
		events: events,
		sink:   flappy.Filter(events, flappy.RoundWon, flappy.RoundLost),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Sink returns the event sink to hand to the session.
func (r *Recorder) Sink() flappy.EventSink {
	return r.sink
}

// Close stops accepting events, settles what is buffered and waits.
func (r *Recorder) Close() {
	r.events.Close()
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for {
		select {
		case ev := <-r.events.Events():
			r.settle(ev)
		case <-r.events.Done():
			for {
				select {
				case ev := <-r.events.Events():
					r.settle(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) settle(ev flappy.Event) {
	if ev.Outcome == nil {
		return
	}
	out := *ev.Outcome
	if err := r.econ.Settle(r.player, out); err != nil {
		r.logger.Error("Could not settle round", "player", r.player, "mode", out.Mode, "error", err)
		return
	}
	r.logger.Debug("Round settled", "player", r.player, "mode", out.Mode, "result", out.Result, "score", out.Score, "coins", out.Coins)
}
