package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapgap/internal/config"
)

// levelStatus is what the picker shows next to a level.
type levelStatus struct {
	unlocked bool
	best     int // best winning score; 0 when not cleared
}

// LevelPickerModel lets users choose a career level.
type LevelPickerModel struct {
	env       Env
	levels    []config.Level
	status    []levelStatus
	profile   string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  *config.Level
	notice    string
	quitting  bool
	back      bool
}

// NewLevelPickerModel loads the ladder and the player's progress. Without
// an economy every level is open.
func NewLevelPickerModel(env Env, width, height int) LevelPickerModel {
	m := LevelPickerModel{
		env:       env,
		levels:    env.Levels.Levels,
		status:    make([]levelStatus, len(env.Levels.Levels)),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh reloads progress after a round.
func (m *LevelPickerModel) refresh() {
	if m.env.Economy == nil {
		for i := range m.status {
			m.status[i] = levelStatus{unlocked: true}
		}
		return
	}

	prof, err := m.env.Economy.Profile(m.env.Player)
	if err != nil {
		m.env.logger().Warn("Could not load profile", "player", m.env.Player, "error", err)
		return
	}
	m.profile = formatProfile(prof)
	for i, l := range m.levels {
		open, err := m.env.Economy.Unlocked(m.env.Player, l.ID)
		if err != nil {
			m.env.logger().Warn("Could not check level", "level", l.ID, "error", err)
		}
		m.status[i] = levelStatus{unlocked: open, best: prof.Completed[l.ID]}
	}
}

// Init initializes the model.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelPickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""
	case MenuActionDown:
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}
		m.notice = ""
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		if !m.status[m.cursor].unlocked {
			m.notice = "Clear the previous level first."
			return m, nil
		}
		l := m.levels[m.cursor]
		m.selected = &l
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

// View renders the level list.
func (m LevelPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("C A R E E R", m.width))
	b.WriteString("\n\n")
	if m.profile != "" {
		b.WriteString(centerText(m.profile, m.width))
		b.WriteString("\n\n")
	}

	for i, l := range m.levels {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		st := m.status[i]
		mark := "   "
		switch {
		case st.best > 0:
			mark = "[*]"
		case !st.unlocked:
			mark = "[#]"
		}

		line := fmt.Sprintf("%s%s %2s. %-14s pass %2d  reward %3d", cursor, mark, l.ID, l.Name, l.Target, l.Reward)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(m.notice, m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen level, or nil.
func (m LevelPickerModel) Selected() *config.Level {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelPickerModel) WantsBack() bool {
	return m.back
}

// SetNotice shows a message under the list, such as a failed start.
func (m *LevelPickerModel) SetNotice(s string) {
	m.notice = s
}
