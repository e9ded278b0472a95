package tui

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// helpRows is the space kept below the board for the key help.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configure a game model.
type Options struct {
	Config     config.SnakeConfig
	Runtime    core.RuntimeConfig
	Difficulty config.DifficultyPreset // Preselected in the menu; empty = config default
	Journal    Journal                 // Optional run journal
	Publisher  Publisher               // Optional spectator feed
	Logger     *log.Logger
}

// Model is the Bubble Tea model for one player: the difficulty menu and
// the game screen of a single snake.Session.
type Model struct {
	session   *snake.Session
	cfg       config.SnakeConfig
	screen    *core.Screen
	keys      *KeyMapper
	help      help.Model
	rec       *recorder
	publisher Publisher
	logger    *log.Logger
	width     int
	height    int
	cursor    int    // Selected difficulty in the menu
	gen       uint64 // Tick generation; bumped whenever the tick schedule changes
	notice    string // Shown in the menu, e.g. when the terminal is too small
	quitting  bool
}

// NewModel creates a model sitting in the menu.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	preset := opts.Difficulty
	if preset == "" {
		preset = opts.Config.Difficulty.Default
	}
	cursor := 0
	for i, p := range config.Presets() {
		if p == preset {
			cursor = i
		}
	}

	m := Model{
		session:   snake.NewSession(opts.Config, viewport(opts.Config, rt.ScreenW, rt.ScreenH), rt.Seed),
		cfg:       opts.Config,
		screen:    core.NewScreen(rt.ScreenW, rt.ScreenH-helpRows),
		keys:      NewKeyMapper(),
		help:      help.New(),
		rec:       &recorder{journal: opts.Journal, logger: logger},
		publisher: opts.Publisher,
		logger:    logger,
		width:     rt.ScreenW,
		height:    rt.ScreenH,
		cursor:    cursor,
	}
	m.help.Width = rt.ScreenW
	m.publish()
	return m
}

func viewport(cfg config.SnakeConfig, w, h int) snake.Geometry {
	return snake.ViewportGeometry(cfg.Board, w, h-helpRows)
}

// Init implements tea.Model. Nothing ticks until a run starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	if !m.keys.MapKeyToFrame(msg, &frame) {
		return m, nil
	}
	if frame.Has(core.ActionQuit) {
		p := m.progress()
		m.rec.finish(p.score, p.ticks, storage.OutcomeAbandoned)
		m.quitting = true
		return m, tea.Quit
	}

	if m.session.Phase() == snake.PhaseMenu {
		return m.handleMenuKey(frame.Actions()[0])
	}

	before := m.progress()
	applied, err := m.session.Dispatch(frame)
	if err != nil {
		m.setNotice(err)
	}
	for _, a := range applied {
		if d, ok := snake.DirectionFromAction(a); ok {
			m.rec.turn(m.session.Ticks(), d)
		}
	}
	return m.after(before)
}

func (m Model) handleMenuKey(action core.Action) (tea.Model, tea.Cmd) {
	presets := config.Presets()
	switch action {
	case core.ActionUp, core.ActionLeft:
		m.cursor = core.Clamp(m.cursor-1, 0, len(presets)-1)
	case core.ActionDown, core.ActionRight:
		m.cursor = core.Clamp(m.cursor+1, 0, len(presets)-1)
	case core.ActionConfirm:
		before := m.progress()
		if _, err := m.session.Start(presets[m.cursor]); err != nil {
			m.setNotice(err)
			return m, nil
		}
		m.notice = ""
		return m.after(before)
	}
	return m, nil
}

func (m *Model) setNotice(err error) {
	if errors.Is(err, snake.ErrInvalidGeometry) {
		m.notice = "Terminal too small for a board. Enlarge the window and try again."
	} else {
		m.notice = err.Error()
	}
	m.logger.Warn("Could not start run", "error", err, "width", m.width, "height", m.height)
}

// progress is what the model compares before and after input to keep the
// journal and the tick schedule in step with the session.
type progress struct {
	phase snake.Phase
	runs  uint64
	score int
	ticks uint64
}

func (m Model) progress() progress {
	return progress{
		phase: m.session.Phase(),
		runs:  m.session.Runs(),
		score: m.session.Score(),
		ticks: m.session.Ticks(),
	}
}

func (m Model) after(before progress) (tea.Model, tea.Cmd) {
	now := m.progress()

	// A restart or a return to the menu abandons an unfinished run.
	if now.runs != before.runs || now.phase == snake.PhaseMenu {
		m.rec.finish(before.score, before.ticks, storage.OutcomeAbandoned)
	}
	if now.runs != before.runs {
		m.rec.begin(m.session)
	}

	var cmd tea.Cmd
	if now.phase != before.phase || now.runs != before.runs {
		m.gen++
		if now.phase == snake.PhaseRunning {
			cmd = tickCmd(m.session.Interval(), m.gen)
		}
	}
	m.publish()
	return m, cmd
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.session.Phase() != snake.PhaseRunning {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.session.Tick() {
	case snake.OutcomeCollision:
		m.rec.finish(m.session.Score(), m.session.Ticks(), storage.OutcomeCollision)
		m.gen++
	case snake.OutcomeBoardFull:
		m.rec.finish(m.session.Score(), m.session.Ticks(), storage.OutcomeBoardFull)
		m.gen++
	default:
		cmd = tickCmd(m.session.Interval(), m.gen)
	}
	m.publish()
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, msg.Height-helpRows)
	m.help.Width = msg.Width
	// A running board keeps its size; the new viewport applies to the next run.
	m.session.SetViewport(viewport(m.cfg, msg.Width, msg.Height))
	return m, nil
}

func (m Model) publish() {
	if m.publisher != nil {
		m.publisher.Publish(m.session.Snapshot())
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.session.Phase() == snake.PhaseMenu {
		return m.menuView()
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// Session exposes the game session.
func (m Model) Session() *snake.Session {
	return m.session
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local player.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
