package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dvidx/focusdial/internal/config"
)

// Dial geometry: 24 marks around the ring, one per 15 degrees (five
// minutes of dial travel). Twelve o'clock is zero, clockwise.
const (
	dialMarks = 24
	dialRows  = 13
	dialCols  = 33
)

// cell is one character position on the dial grid.
type cell struct {
	glyph  string
	filled bool
}

// renderDial draws the ring with the selection/progress filled up to
// angle, a pointer at the angle itself, and the time label centered
// inside.
func renderDial(angleDegrees float64, timeLabel, typeLabel string, accent lipgloss.Color, theme config.ThemeConfig) string {
	grid := make([][]cell, dialRows)
	for i := range grid {
		grid[i] = make([]cell, dialCols)
	}

	cx, cy := dialCols/2, dialRows/2
	// Terminal cells are roughly twice as tall as wide
	rx, ry := float64(cx-1), float64(cy-1)

	pointer := nearestMark(angleDegrees)
	for i := 0; i < dialMarks; i++ {
		markAngle := float64(i) * 360 / dialMarks
		theta := markAngle * math.Pi / 180
		x := cx + int(math.Round(rx*math.Sin(theta)))
		y := cy - int(math.Round(ry*math.Cos(theta)))

		c := cell{glyph: theme.DialEmpty}
		if markAngle <= angleDegrees && angleDegrees > 0 {
			c = cell{glyph: theme.DialFilled, filled: true}
		}
		if i == pointer && angleDegrees > 0 {
			c = cell{glyph: theme.DialPointer, filled: true}
		}
		grid[y][x] = c
	}

	// Center the time and the session label inside the ring
	placeCenter(grid, cy-1, timeLabel)
	placeCenter(grid, cy+1, typeLabel)

	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPaused))
	filledStyle := lipgloss.NewStyle().Foreground(accent)
	textStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)

	var b strings.Builder
	for y, row := range grid {
		for _, c := range row {
			switch {
			case c.glyph == "":
				b.WriteString(" ")
			case c.filled:
				b.WriteString(filledStyle.Render(c.glyph))
			case c.glyph == theme.DialEmpty:
				b.WriteString(emptyStyle.Render(c.glyph))
			default:
				b.WriteString(textStyle.Render(c.glyph))
			}
		}
		if y < dialRows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// nearestMark returns the ring position closest to the angle.
func nearestMark(angleDegrees float64) int {
	mark := int(math.Round(angleDegrees / (360 / dialMarks)))
	if mark >= dialMarks {
		mark = dialMarks - 1
	}
	if mark < 0 {
		mark = 0
	}
	return mark
}

// placeCenter writes text horizontally centered on the given row, one
// glyph per cell.
func placeCenter(grid [][]cell, row int, text string) {
	runes := []rune(text)
	start := dialCols/2 - len(runes)/2
	for i, r := range runes {
		x := start + i
		if x < 0 || x >= dialCols || row < 0 || row >= len(grid) {
			continue
		}
		grid[row][x].glyph = string(r)
	}
}
