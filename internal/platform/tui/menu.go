package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("22")).
			Padding(0, 1)
	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(1, 4)
)

// menuView renders the difficulty picker with the last score.
func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("S N A K E"))
	b.WriteString("\n\n")

	snap := m.session.Snapshot()
	fmt.Fprintf(&b, "Last score: %d\n\n", snap.LastScore)

	for i, p := range config.Presets() {
		line := fmt.Sprintf("%-8s %4dms", p.Title(), m.cfg.Difficulty.IntervalMS(p))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	geom := m.session.Geometry()
	fmt.Fprintf(&b, "\nBoard: %d x %d", geom.Columns, geom.Rows)
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}

	box := menuBoxStyle.Render(b.String())
	footer := helpStyle.Render("↑/↓ choose  •  enter start  •  q quit")
	content := lipgloss.JoinVertical(lipgloss.Center, box, "", footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
