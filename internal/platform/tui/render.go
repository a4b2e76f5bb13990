package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapgap/internal/core"
	"github.com/vovakirdan/flapgap/internal/games/flappy"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// hudRows is the space above the playfield.
const hudRows = 1

const (
	pipeGlyph = '█'
	coinGlyph = 'o'
)

// DrawSnapshot paints one frame of a round: the playfield scaled to the
// screen below a one-line HUD, plus a banner when the round is paused or
// over.
func DrawSnapshot(s *core.Screen, snap flappy.Snapshot) {
	s.Clear()
	if s.Width() <= 0 || s.Height() <= hudRows {
		return
	}

	vp := core.Viewport{
		WorldW: snap.WorldW,
		WorldH: snap.WorldH,
		Cols:   s.Width(),
		Rows:   s.Height() - hudRows,
	}

	for _, p := range snap.Pipes {
		drawPipe(s, vp, p)
	}
	for _, c := range snap.Coins {
		if !c.Collected {
			plot(s, vp, c.Pos, coinGlyph, core.ColorBrightYellow)
		}
	}
	for _, it := range snap.Items {
		plot(s, vp, it.Pos, it.Kind.Glyph(), itemColor(it.Kind))
	}
	plot(s, vp, snap.Player.Pos(), playerGlyph(snap.Player), playerColor(snap))

	drawHUD(s, snap)
	drawBanner(s, bannerLines(snap))
}

// plot draws one glyph at a world position, clipped to the playfield.
func plot(s *core.Screen, vp core.Viewport, p core.Vec, r rune, c core.Color) {
	row := vp.CellY(p.Y)
	if row < 0 || row >= vp.Rows {
		return
	}
	s.SetColor(vp.CellX(p.X), row+hudRows, r, c)
}

// drawPipe fills every row whose center lies outside the opening.
func drawPipe(s *core.Screen, vp core.Viewport, p flappy.PipeView) {
	x0 := vp.CellX(p.X)
	x1 := max(vp.CellX(p.X+p.Width), x0+1)
	cell := vp.WorldH / float64(vp.Rows)

	for row := range vp.Rows {
		center := (float64(row) + 0.5) * cell
		if center > p.Top && center < p.Bottom {
			continue
		}
		s.DrawHLine(x0, row+hudRows, x1-x0, pipeGlyph, core.ColorGreen)
	}
}

func playerGlyph(b flappy.Body) rune {
	switch {
	case b.Rotation < -10:
		return '/'
	case b.Rotation > 30:
		return '\\'
	default:
		return '>'
	}
}

func playerColor(snap flappy.Snapshot) core.Color {
	if snap.Outcome != nil && snap.Outcome.Result == flappy.Lost {
		return core.ColorBrightRed
	}
	for _, p := range snap.Powerups {
		switch p.Kind {
		case flappy.Ghost:
			return core.ColorGray
		case flappy.Shield:
			return core.ColorBrightCyan
		}
	}
	return core.ColorBrightYellow
}

func itemColor(k flappy.Kind) core.Color {
	switch k {
	case flappy.Shield:
		return core.ColorCyan
	case flappy.Magnet:
		return core.ColorMagenta
	case flappy.Ghost:
		return core.ColorWhite
	default:
		return core.ColorBrightGreen
	}
}

// hudText returns the left and right halves of the status line.
func hudText(snap flappy.Snapshot) (left, right string) {
	var b strings.Builder
	if snap.Target > 0 {
		fmt.Fprintf(&b, " SCORE %d/%d", snap.Score, snap.Target)
	} else {
		fmt.Fprintf(&b, " SCORE %d", snap.Score)
	}
	fmt.Fprintf(&b, "  COINS %d", snap.Collected)
	for _, p := range snap.Powerups {
		fmt.Fprintf(&b, "  %c %d", p.Kind.Glyph(), p.Remaining)
	}

	right = snap.Mode
	if snap.LevelID != "" {
		right = fmt.Sprintf("%s %s", snap.Mode, snap.LevelID)
	}
	return b.String(), strings.ToUpper(right) + " "
}

func drawHUD(s *core.Screen, snap flappy.Snapshot) {
	left, right := hudText(snap)
	s.DrawHLine(0, 0, s.Width(), ' ', core.ColorDefault)
	s.DrawTextColor(0, 0, left, core.ColorBrightWhite)
	if x := s.Width() - len([]rune(right)); x > len([]rune(left)) {
		s.DrawTextColor(x, 0, right, core.ColorGray)
	}
}

// bannerLines returns the overlay text for a paused or finished round.
func bannerLines(snap flappy.Snapshot) []string {
	switch snap.State {
	case flappy.Paused:
		return []string{"PAUSED", "", "P: Resume  B: Menu  Q: Quit"}
	case flappy.Finished:
		if snap.Outcome == nil {
			return nil
		}
		title := "GAME OVER"
		hint := "R: Retry  B: Menu  Q: Quit"
		if snap.Outcome.Result == flappy.Won {
			title = "LEVEL CLEAR"
			hint = "Enter: Next level  R: Replay  B: Menu"
		}
		return []string{
			title,
			"",
			fmt.Sprintf("Score %d  Coins %d", snap.Outcome.Score, snap.Outcome.Coins),
			"",
			hint,
		}
	}
	return nil
}

// drawBanner draws lines centered in a box.
func drawBanner(s *core.Screen, lines []string) {
	if len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.NewRect((s.Width()-width-4)/2, (s.Height()-len(lines)-2)/2, width+4, len(lines)+2)
	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box)
	for i, l := range lines {
		x := box.X + 2 + (width-len([]rune(l)))/2
		s.DrawTextColor(x, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
