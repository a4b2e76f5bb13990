package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
)

func TestLevelPickerLocksUnclearedLevels(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Economy.Settle("ann", flappy.Outcome{Result: flappy.Won, Mode: config.ModeCareer, LevelID: "1", Score: 5})

	m := NewLevelPickerModel(env, 80, 24)
	expected := []bool{true, true, false}
	for i, open := range expected {
		if m.status[i].unlocked != open {
			t.Errorf("level %s unlocked = %v, expected %v", m.levels[i].ID, m.status[i].unlocked, open)
		}
	}
	if m.status[0].best != 5 {
		t.Errorf("level 1 best = %d, expected 5", m.status[0].best)
	}

	down := tea.KeyMsg{Type: tea.KeyDown}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	next := press(m, down, down, enter).(LevelPickerModel)
	if next.Selected() != nil || next.notice == "" {
		t.Error("a locked level should not be selectable")
	}

	next = press(next, runeKey('k'), enter).(LevelPickerModel)
	if sel := next.Selected(); sel == nil || sel.ID != "2" {
		t.Errorf("Selected() = %v, expected level 2", sel)
	}
}

func TestLevelPickerWithoutEconomy(t *testing.T) {
	m := NewLevelPickerModel(Env{Levels: config.BuiltinLevels()}, 80, 24)
	for i, st := range m.status {
		if !st.unlocked {
			t.Errorf("level %s locked without an economy", m.levels[i].ID)
		}
	}

	next := press(m, tea.KeyMsg{Type: tea.KeyEsc}).(LevelPickerModel)
	if !next.WantsBack() {
		t.Error("esc should go back")
	}
}

func TestAppFlow(t *testing.T) {
	env, _ := newTestEnv(t)
	var app tea.Model = NewAppModel(env, slowConfig)
	defer func() { app.(AppModel).Close() }()

	current := func() page { return app.(AppModel).page }

	// Modes are listed arcade, career, classic.
	app = press(app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if current() != pageLevels {
		t.Fatalf("page = %v, expected the level list", current())
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	if current() != pageGame {
		t.Fatalf("page = %v, expected the game", current())
	}
	if lvl := app.(AppModel).game.Session().Level(); lvl == nil || lvl.ID != "1" {
		t.Errorf("level = %v, expected 1", lvl)
	}

	app = press(app, runeKey('p'), runeKey('b'))
	if current() != pageLevels {
		t.Fatalf("page after back = %v, expected the level list", current())
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyTab})
	if current() != pageScores {
		t.Fatalf("page = %v, expected scores", current())
	}

	app = press(app, runeKey('b'))
	if current() != pageMenu {
		t.Fatalf("page = %v, expected the menu", current())
	}

	app, cmd := app.Update(runeKey('q'))
	if !app.(AppModel).quitting || cmd == nil {
		t.Error("q should quit the app")
	}
}
