// Package telemetry records session events for later analysis. Events
// are logged at debug level and stored as JSON payloads.
package telemetry

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgap/internal/games/flappy"
)

// Store persists telemetry rows. *storage.Store implements it.
type Store interface {
	SaveTelemetry(player, kind string, payload []byte) (int64, error)
}

// Payload is the stored form of one event.
type Payload struct {
	Run     uint64 `json:"run"`
	Tick    int    `json:"tick"`
	Mode    string `json:"mode"`
	LevelID string `json:"level_id,omitempty"`
	Score   int    `json:"score"`
	Coins   int    `json:"coins"`
	Powerup string `json:"powerup,omitempty"`
	Result  string `json:"result,omitempty"`
}

// Encode builds the JSON payload for an event.
func Encode(e flappy.Event) ([]byte, error) {
	p := Payload{
		Run:     e.Run,
		Tick:    e.Tick,
		Mode:    e.Mode,
		LevelID: e.LevelID,
		Score:   e.Score,
		Coins:   e.Coins,
	}
	if e.Kind == flappy.PowerupUsed {
		p.Powerup = e.Powerup.String()
	}
	if e.Outcome != nil {
		p.Result = e.Outcome.Result.String()
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot encode %s: %w", e.Kind, err)
	}
	return data, nil
}

// Recorder drains a player's events on its own goroutine. A nil store
// only logs.
type Recorder struct {
	store  Store
	player string
	logger *log.Logger

	events *flappy.ChannelSink
	done   chan struct{}
}

// NewRecorder starts a recorder. Close it when the session ends.
func NewRecorder(store Store, player string, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	r := &Recorder{
		store:  store,
		player: player,
		logger: logger.WithPrefix("telemetry"),
		events: flappy.NewChannelSink(256),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Sink returns the event sink to hand to the session.
func (r *Recorder) Sink() flappy.EventSink {
	return r.events
}

// Close stops accepting events, stores what is buffered and waits.
func (r *Recorder) Close() {
	r.events.Close()
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for {
		select {
		case e := <-r.events.Events():
			r.record(e)
		case <-r.events.Done():
			for {
				select {
				case e := <-r.events.Events():
					r.record(e)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) record(e flappy.Event) {
	r.logger.Debug(e.Kind.String(), "player", r.player, "run", e.Run, "tick", e.Tick, "score", e.Score)
	if r.store == nil {
		return
	}

	data, err := Encode(e)
	if err != nil {
		r.logger.Error("Could not encode event", "error", err)
		return
	}
	if _, err := r.store.SaveTelemetry(r.player, e.Kind.String(), data); err != nil {
		r.logger.Error("Could not store event", "kind", e.Kind, "error", err)
	}
}
