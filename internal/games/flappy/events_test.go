package flappy

import "testing"

func TestChannelSinkDropsOldest(t *testing.T) {
	sink := NewChannelSink(2)
	for tick := 1; tick <= 3; tick++ {
		sink.Emit(Event{Kind: ObstaclePassed, Tick: tick})
	}

	var got []int
	for range 2 {
		got = append(got, (<-sink.Events()).Tick)
	}
	if got[0] != 2 || got[1] != 3 {
		t.Errorf("buffered ticks = %v, expected [2 3]", got)
	}
}

func TestChannelSinkClose(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Close()
	sink.Close()

	sink.Emit(Event{Kind: RoundLost})
	select {
	case e := <-sink.Events():
		t.Errorf("closed sink delivered %v", e.Kind)
	default:
	}
	select {
	case <-sink.Done():
	default:
		t.Error("Done() should be closed")
	}
}

func TestFilterAndMultiSink(t *testing.T) {
	var all, terminal []EventKind
	sink := MultiSink{
		SinkFunc(func(e Event) { all = append(all, e.Kind) }),
		Filter(SinkFunc(func(e Event) { terminal = append(terminal, e.Kind) }), RoundWon, RoundLost),
	}

	for _, k := range []EventKind{RoundStarted, ObstaclePassed, CoinCollected, RoundWon} {
		sink.Emit(Event{Kind: k})
	}

	if len(all) != 4 {
		t.Errorf("unfiltered sink saw %d events, expected 4", len(all))
	}
	if len(terminal) != 1 || terminal[0] != RoundWon {
		t.Errorf("filtered sink saw %v, expected [round_won]", terminal)
	}
}

func TestEventKindTerminal(t *testing.T) {
	tests := []struct {
		kind     EventKind
		expected bool
	}{
		{RoundStarted, false},
		{ObstaclePassed, false},
		{ShieldBroken, false},
		{RoundWon, true},
		{RoundLost, true},
	}
	for _, tc := range tests {
		if got := tc.kind.Terminal(); got != tc.expected {
			t.Errorf("%v.Terminal() = %v, expected %v", tc.kind, got, tc.expected)
		}
	}
}
