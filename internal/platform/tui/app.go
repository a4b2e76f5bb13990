package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
)

// page is the screen the app is showing.
type page int

const (
	pageMenu page = iota
	pageLevels
	pageScores
	pageGame
)

// AppModel manages the full flow: menu -> (levels) -> game -> menu. It
// is the top-level model for local and SSH play.
type AppModel struct {
	env      Env
	config   core.RuntimeConfig
	page     page
	mode     string
	menu     MenuModel
	levels   LevelPickerModel
	scores   ScoreboardModel
	game     *Model
	quitting bool
}

// NewAppModel creates an app showing the mode menu.
func NewAppModel(env Env, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active page.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.page {
	case pageLevels:
		return m.updateLevels(msg)
	case pageScores:
		return m.updateScores(msg)
	case pageGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.page = pageScores
		m.scores = NewScoreboardModel(m.env.Store, m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		info := m.menu.Selected()
		m.mode = info.ID
		if info.RequiresLevel {
			m.page = pageLevels
			m.levels = NewLevelPickerModel(m.env, m.config.ScreenW, m.config.ScreenH)
			return m, m.levels.Init()
		}
		return m.startGame(nil)
	}

	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	if levels, ok := next.(LevelPickerModel); ok {
		m.levels = levels
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.levels.WantsBack():
		return m.toMenu()

	case m.levels.Selected() != nil:
		level := m.levels.Selected()
		m.levels.selected = nil
		return m.startGame(level)
	}

	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.IsQuitting():
		m.game.Close()
		m.game = nil
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.game.Close()
		m.game = nil
		if m.levels.levels != nil {
			m.page = pageLevels
			m.levels.refresh()
			return m, nil
		}
		return m.toMenu()
	}

	return m, cmd
}

// startGame opens a session for the chosen mode. A failed start stays on
// the level list with a notice.
func (m AppModel) startGame(level *config.Level) (tea.Model, tea.Cmd) {
	game, err := NewModel(m.env, m.mode, level, m.config)
	if err != nil {
		m.env.logger().Warn("Could not start round", "mode", m.mode, "player", m.env.Player, "error", err)
		if level != nil {
			m.levels.SetNotice(noticeFor(err))
			return m, nil
		}
		return m.toMenu()
	}
	m.game = &game
	m.page = pageGame
	return m, m.game.Init()
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.page = pageMenu
	m.mode = ""
	m.levels = LevelPickerModel{}
	m.menu = NewMenuModel(m.env, m.config)
	return m, m.menu.Init()
}

// View renders the active page.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.page {
	case pageLevels:
		return m.levels.View()
	case pageScores:
		return m.scores.View()
	case pageGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Close releases the running game, if any.
func (m AppModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
}

// RunApp runs the menu-driven app in the local terminal.
func RunApp(env Env, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewAppModel(env, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if app, ok := final.(AppModel); ok {
		app.Close()
	}
	return err
}
