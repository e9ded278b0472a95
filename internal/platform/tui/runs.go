package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunsKeyMap defines the key bindings for the run browser.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Replay, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// RunsModel lists journaled runs; Enter picks one for replay.
type RunsModel struct {
	runs     []storage.Run
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	selected string
}

// NewRunsModel creates a run browser over runs, newest first.
func NewRunsModel(runs []storage.Run, width, height int) RunsModel {
	m := RunsModel{
		runs:   runs,
		help:   help.New(),
		keys:   DefaultRunsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

func (m *RunsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(RunColumns()),
		table.WithRows(RunRows(m.runs)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("22")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// RunColumns are the columns shown for a run.
func RunColumns() []table.Column {
	return []table.Column{
		{Title: "Run", Width: 36},
		{Title: "Date", Width: 12},
		{Title: "Level", Width: 6},
		{Title: "Board", Width: 7},
		{Title: "Score", Width: 6},
		{Title: "Ticks", Width: 6},
		{Title: "Outcome", Width: 11},
	}
}

// RunRows formats runs as table rows.
func RunRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.ID,
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Difficulty,
			fmt.Sprintf("%dx%d", r.Columns, r.Rows),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Ticks),
			r.Outcome,
		}
	}
	return rows
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Replay):
			if len(m.runs) > 0 {
				m.selected = m.runs[m.table.Cursor()].ID
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run browser.
func (m RunsModel) View() string {
	title := titleStyle.MarginBottom(1).Render("RECENT RUNS")

	body := m.table.View()
	if len(m.runs) == 0 {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No runs journaled yet. Play a game first!")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, title, box, helpStyle.Render(m.help.View(m.keys)))
}

// Selected returns the run chosen for replay, or "".
func (m RunsModel) Selected() string {
	return m.selected
}

// RunBrowser shows runs and returns the ID picked for replay ("" if none).
func RunBrowser(runs []storage.Run, width, height int) (string, error) {
	p := tea.NewProgram(
		NewRunsModel(runs, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(RunsModel); ok {
		return m.Selected(), nil
	}
	return "", nil
}
