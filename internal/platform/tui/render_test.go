package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
)

// testSnapshot maps 10x10 world units onto each cell of a 40x21 screen.
func testSnapshot() flappy.Snapshot {
	return flappy.Snapshot{
		State:  flappy.Running,
		Mode:   "career",
		WorldW: 400,
		WorldH: 200,
		Player: flappy.Body{X: 50, Y: 100, Radius: 10},
		Pipes:  []flappy.PipeView{{X: 100, Width: 20, Top: 50, Bottom: 150}},
		Coins: []flappy.Coin{
			{Pos: core.Vec{X: 200, Y: 100}},
			{Pos: core.Vec{X: 300, Y: 100}, Collected: true},
		},
		Items:   []flappy.ItemView{{Pos: core.Vec{X: 250, Y: 30}, Kind: flappy.Magnet}},
		Score:   3,
		Target:  5,
		LevelID: "2",
	}
}

func TestDrawSnapshot(t *testing.T) {
	s := core.NewScreen(40, 21)
	DrawSnapshot(s, testSnapshot())

	tests := []struct {
		name     string
		x, y     int
		expected rune
	}{
		{"pipe above gap", 10, 5, pipeGlyph},
		{"pipe second column", 11, 1, pipeGlyph},
		{"gap top", 10, 6, ' '},
		{"gap bottom", 10, 15, ' '},
		{"pipe below gap", 10, 16, pipeGlyph},
		{"past pipe", 12, 5, ' '},
		{"player", 5, 11, '>'},
		{"coin", 20, 11, coinGlyph},
		{"collected coin", 30, 11, ' '},
		{"item", 25, 4, flappy.Magnet.Glyph()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Get(tc.x, tc.y); got != tc.expected {
				t.Errorf("Get(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	hud := s.Row(0)
	if !strings.Contains(hud, "SCORE 3/5") || !strings.Contains(hud, "CAREER 2") {
		t.Errorf("HUD = %q", hud)
	}
	if strings.Contains(s.String(), "GAME OVER") {
		t.Error("running round should not show a banner")
	}
}

func TestDrawSnapshotTinyScreen(t *testing.T) {
	s := core.NewScreen(10, 1)
	DrawSnapshot(s, testSnapshot())
	if got := s.Row(0); strings.TrimSpace(got) != "" {
		t.Errorf("row = %q, expected blank", got)
	}
}

func TestBannerLines(t *testing.T) {
	lost := testSnapshot()
	lost.State = flappy.Finished
	lost.Outcome = &flappy.Outcome{Result: flappy.Lost, Score: 3, Coins: 1}

	won := lost
	won.Outcome = &flappy.Outcome{Result: flappy.Won, Score: 5}

	paused := testSnapshot()
	paused.State = flappy.Paused

	tests := []struct {
		name  string
		snap  flappy.Snapshot
		title string
	}{
		{"running", testSnapshot(), ""},
		{"paused", paused, "PAUSED"},
		{"lost", lost, "GAME OVER"},
		{"won", won, "LEVEL CLEAR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines := bannerLines(tc.snap)
			title := ""
			if len(lines) > 0 {
				title = lines[0]
			}
			if title != tc.title {
				t.Errorf("banner title = %q, expected %q", title, tc.title)
			}
		})
	}

	s := core.NewScreen(40, 21)
	DrawSnapshot(s, lost)
	if !strings.Contains(s.String(), "Score 3  Coins 1") {
		t.Errorf("finished screen misses the result:\n%s", s.String())
	}
}

func TestHUDShowsPowerups(t *testing.T) {
	snap := testSnapshot()
	snap.Target = 0
	snap.Collected = 4
	snap.Powerups = []flappy.ActivePowerup{{Kind: flappy.Shield, Remaining: 120}}

	left, _ := hudText(snap)
	expected := " SCORE 3  COINS 4  ◈ 120"
	if left != expected {
		t.Errorf("hudText() = %q, expected %q", left, expected)
	}
}

func TestPlayerStyle(t *testing.T) {
	tests := []struct {
		rotation float64
		expected rune
	}{
		{-25, '/'},
		{0, '>'},
		{60, '\\'},
	}
	for _, tc := range tests {
		if got := playerGlyph(flappy.Body{Rotation: tc.rotation}); got != tc.expected {
			t.Errorf("playerGlyph(%v) = %q, expected %q", tc.rotation, got, tc.expected)
		}
	}

	snap := testSnapshot()
	snap.Powerups = []flappy.ActivePowerup{{Kind: flappy.Ghost, Remaining: 10}}
	if got := playerColor(snap); got != core.ColorGray {
		t.Errorf("ghost color = %v, expected gray", got)
	}
}

func TestRenderScreenKeepsRows(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColor(0, 1, "ab", core.ColorRed)
	s.DrawText(2, 1, "cd")

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("RenderScreen() has %d line breaks, expected 2", n)
	}
	if !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen() = %q, missing text", out)
	}
}
