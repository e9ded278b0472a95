package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Palette styles each cell role of the board.
type Palette map[core.Color]lipgloss.Style

// DefaultPalette is the green-snake-on-dark look.
func DefaultPalette() Palette {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Palette{
		core.ColorFrame:  fg("28"),
		core.ColorBody:   fg("34"),
		core.ColorHead:   fg("46").Bold(true),
		core.ColorFood:   fg("196"),
		core.ColorTitle:  fg("15").Bold(true),
		core.ColorMuted:  fg("245"),
		core.ColorText:   fg("252"),
		core.ColorPaused: fg("220").Bold(true),
		core.ColorWon:    fg("46").Bold(true),
		core.ColorLost:   fg("203").Bold(true),
	}
}

// Style returns the style for role c; unknown roles render unstyled.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if st, ok := p[c]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

var defaultPalette = DefaultPalette()

// RenderScreen styles a Screen with the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render turns the screen into styled terminal text. Each row is split into
// spans of one role so a span costs one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	rows := make([]string, s.Height())
	var span []rune
	for y := range rows {
		var line strings.Builder
		role := core.ColorDefault
		span = span[:0]
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != role && len(span) > 0 {
				line.WriteString(p.Style(role).Render(string(span)))
				span = span[:0]
			}
			role = cell.Color
			span = append(span, cell.Rune)
		}
		if len(span) > 0 {
			line.WriteString(p.Style(role).Render(string(span)))
		}
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
