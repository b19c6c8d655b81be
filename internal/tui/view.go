package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/vytor/colorflash/internal/models"
)

const (
	swatchWidth  = 8
	swatchHeight = 3
	swatchGap    = 2
	timeBarWidth = 30

	rowTitle   = 0
	rowStats   = 2
	rowTime    = 3
	rowTarget  = 5
	rowOptions = rowTarget + swatchHeight + 2
	rowStatus  = rowOptions + swatchHeight + 2
)

var (
	styleTitle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlert = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func cellColor(c models.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// labelColor picks black or white text, whichever reads better on c.
func labelColor(c models.Color) tcell.Color {
	l, _, _ := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

func statsLine(s models.Snapshot) string {
	line := fmt.Sprintf("Score: %d   High: %d   Level: %d   Streak: %d", s.Score, s.HighScore, s.Level, s.Streak)
	if s.LastPoints > 0 && s.State == models.StatePlaying {
		line += fmt.Sprintf("   +%d", s.LastPoints)
	}
	return line
}

func timeLine(s models.Snapshot, total float64) string {
	filled := 0
	if total > 0 {
		filled = int(s.TimeRemaining / total * timeBarWidth)
	}
	filled = min(max(filled, 0), timeBarWidth)
	return fmt.Sprintf("Time: %5.1fs [%s%s]", s.TimeRemaining, strings.Repeat("#", filled), strings.Repeat(" ", timeBarWidth-filled))
}

func soundLabel(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// statusLines are the state-specific hints shown under the board.
func statusLines(s models.Snapshot) []string {
	settings := fmt.Sprintf("d: difficulty (%s)   s: sound (%s)", s.NextDifficulty, soundLabel(s.SoundEnabled))
	switch s.State {
	case models.StateNotStarted:
		return []string{"Press SPACE to start", settings, "q: quit"}
	case models.StatePlaying:
		return []string{fmt.Sprintf("1-%d: pick the matching color   p: pause   e: end game", len(s.ColorOptions)), settings}
	case models.StatePaused:
		return []string{"PAUSED", "p: resume   e: end game", settings}
	case models.StateGameOver:
		over := fmt.Sprintf("GAME OVER   final score %d", s.Score)
		if s.NewHighScore {
			over += "   NEW HIGH SCORE!"
		}
		return []string{over, "SPACE: play again   m: menu   q: quit", settings}
	default:
		return nil
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func drawSwatch(screen tcell.Screen, x, y int, c models.Color, label string) {
	style := tcell.StyleDefault.Background(cellColor(c)).Foreground(labelColor(c))
	for dy := 0; dy < swatchHeight; dy++ {
		for dx := 0; dx < swatchWidth; dx++ {
			screen.SetContent(x+dx, y+dy, ' ', nil, style)
		}
	}
	if label != "" {
		drawText(screen, x+(swatchWidth-len(label))/2, y+swatchHeight/2, style, label)
	}
}

// draw renders s; total is the round length used to scale the time bar.
func draw(screen tcell.Screen, s models.Snapshot, total float64) {
	screen.Clear()

	drawText(screen, 2, rowTitle, styleTitle, "COLOR FLASH")
	drawText(screen, 2, rowStats, styleText, statsLine(s))

	if s.State == models.StatePlaying || s.State == models.StatePaused {
		timeStyle := styleText
		if s.TimeRemaining <= 5 {
			timeStyle = styleAlert
		}
		drawText(screen, 2, rowTime, timeStyle, timeLine(s, total))

		drawText(screen, 2, rowTarget+1, styleText, "Match:")
		drawSwatch(screen, 10, rowTarget, s.TargetColor, "")

		for i, c := range s.ColorOptions {
			x := 2 + i*(swatchWidth+swatchGap)
			drawSwatch(screen, x, rowOptions, c, fmt.Sprintf("%d", i+1))
		}
	}

	style := styleDim
	if s.State == models.StateGameOver {
		style = styleAlert
	}
	for i, line := range statusLines(s) {
		drawText(screen, 2, rowStatus+i, style, line)
		style = styleDim
	}

	screen.Show()
}
