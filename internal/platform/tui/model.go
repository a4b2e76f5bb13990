package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapgap/internal/config"
	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/economy"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
	"github.com/vovakirdan/flapgap/internal/registry"
	"github.com/vovakirdan/flapgap/internal/scheduler"
	"github.com/vovakirdan/flapgap/internal/storage"
	"github.com/vovakirdan/flapgap/internal/telemetry"
)

// Env is what the screens need from the outside world. Store and
// Economy may be nil; the game still runs without persistence.
type Env struct {
	Game    config.GameConfig
	Options config.Options
	Levels  config.LevelSet
	Store   *storage.Store
	Economy *economy.Economy
	Player  string
	Logger  *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

// Model is the Bubble Tea model for one session. The session ticks on its
// own scheduler; the model redraws at the tick rate.
type Model struct {
	env     Env
	session *flappy.Session
	frame   *flappy.LatestFrame
	level   *config.Level
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    *KeyMapper
	closers []func()

	notice     string
	quitting   bool
	backToMenu bool
}

// NewModel creates a session for modeID and starts its first round.
// Career modes need level; playing one spends a life when an economy is
// configured.
func NewModel(env Env, modeID string, level *config.Level, cfg core.RuntimeConfig) (Model, error) {
	mode, err := registry.Create(modeID)
	if err != nil {
		return Model{}, err
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	env.Logger = env.logger()

	m := Model{
		env:    env,
		frame:  &flappy.LatestFrame{},
		level:  level,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   NewKeyMapper(),
	}

	var sinks flappy.MultiSink
	if env.Economy != nil {
		rec := env.Economy.NewRecorder(env.Player, env.Logger)
		sinks = append(sinks, rec.Sink())
		m.closers = append(m.closers, rec.Close)
	}
	if env.Store != nil {
		rec := telemetry.NewRecorder(env.Store, env.Player, env.Logger)
		sinks = append(sinks, rec.Sink())
		m.closers = append(m.closers, rec.Close)
	}

	m.session, err = flappy.NewSession(flappy.SessionConfig{
		Mode:    mode,
		Game:    env.Game,
		Options: env.Options,
		Render:  m.frame,
		Events:  sinks,
		Seed:    cfg.Seed,
		Clock:   scheduler.TickerClock(cfg.TickRate),
		Logger:  env.Logger,
	})
	if err != nil {
		m.Close()
		return Model{}, err
	}

	if err := m.start(); err != nil {
		m.Close()
		return Model{}, err
	}
	return m, nil
}

// start begins a round of the current mode or level.
func (m *Model) start() error {
	if m.level == nil {
		return m.session.Start()
	}
	if m.env.Economy != nil {
		if _, err := m.env.Economy.ConsumeLife(m.env.Player); err != nil {
			return err
		}
	}
	return m.session.StartLevel(m.level)
}

// Init starts the redraw loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting || m.backToMenu {
			return m, nil
		}
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keys.MapKeyToFrame(msg, &frame) {
		m.session.Stop()
		m.quitting = true
		return m, tea.Quit
	}
	m.apply(frame)
	return m, nil
}

// apply forwards one frame of actions to the session.
func (m *Model) apply(frame core.InputFrame) {
	state := m.session.State()

	switch {
	case frame.Has(core.ActionFlap):
		m.session.ApplyImpulse()

	case frame.Has(core.ActionPause):
		m.session.TogglePause()

	case frame.Has(core.ActionRestart) && state == flappy.Finished:
		m.restart(m.level)

	case frame.Has(core.ActionConfirm) && state == flappy.Finished:
		if out, ok := m.session.Outcome(); ok && out.Result == flappy.Won && m.level != nil {
			if next, ok := m.env.Levels.Next(m.level.ID); ok {
				m.restart(next)
			}
		}

	case frame.Has(core.ActionBack) && (state == flappy.Finished || state == flappy.Paused):
		m.session.Stop()
		m.backToMenu = true
	}
}

// restart starts a new round, keeping the old screen if it cannot.
func (m *Model) restart(level *config.Level) {
	prev := m.level
	m.level = level
	m.notice = ""
	if err := m.start(); err != nil {
		m.level = prev
		m.notice = noticeFor(err)
	}
}

// noticeFor turns a start error into a status line.
func noticeFor(err error) string {
	if errors.Is(err, economy.ErrNoLives) {
		return "No lives left. Wait for one to come back."
	}
	return err.Error()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flapgap", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.session.Mode().ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.draw().String()), 0o600)
}

// draw paints the latest frame into the screen buffer.
func (m Model) draw() *core.Screen {
	if snap, ok := m.frame.Latest(); ok {
		DrawSnapshot(m.screen, snap)
	} else {
		m.screen.Clear()
	}
	if m.notice != "" {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.notice, core.ColorBrightRed)
	}
	return m.screen
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.draw())
}

// Session returns the hosted session.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Notice returns the current status message, if any.
func (m Model) Notice() string {
	return m.notice
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Close ends the session and flushes the recorders. An unfinished round
// is recorded as lost.
func (m Model) Close() {
	if m.session != nil {
		m.session.Stop()
	}
	for _, c := range m.closers {
		c()
	}
}

// Run plays modeID in its own Bubble Tea program.
func Run(env Env, modeID string, level *config.Level, cfg core.RuntimeConfig) error {
	model, err := NewModel(env, modeID, level, cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
