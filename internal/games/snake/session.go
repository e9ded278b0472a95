package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Outcome is what a call to Tick did.
type Outcome int

const (
	OutcomeIdle      Outcome = iota // Not running; nothing happened
	OutcomeMoved                    // Snake moved, length unchanged
	OutcomeAte                      // Snake ate food and grew by one
	OutcomeCollision                // Snake hit a wall or itself; game over
	OutcomeBoardFull                // Snake filled the board; game over, won
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeCollision:
		return "collision"
	case OutcomeBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Session owns one player's game: the board, the phase machine and the
// random source for food. It is not safe for concurrent use; the platform
// delivers ticks and input on a single goroutine.
//
// Illegal transitions (pausing while paused, steering from the menu, ...)
// are no-ops reported by a false return value, never errors.
type Session struct {
	cfg      config.SnakeConfig
	seeds    *rand.Rand
	viewport Geometry // Board size for the next run
	geom     Geometry // Board size of the current run
	engine   *Engine

	phase      Phase
	difficulty config.DifficultyPreset
	interval   time.Duration
	runSeed    int64
	runs       uint64

	board     Board
	heading   Direction // Direction applied by the last committed step
	pending   Direction // Direction the next tick will use
	ticks     uint64
	won       bool
	message   string
	lastScore int
}

// NewSession creates a session in the menu. seed feeds the per-run seeds so
// a whole sequence of runs is reproducible.
func NewSession(cfg config.SnakeConfig, viewport Geometry, seed int64) *Session {
	return &Session{
		cfg:        cfg,
		seeds:      rand.New(rand.NewSource(seed)),
		viewport:   viewport,
		geom:       viewport,
		phase:      PhaseMenu,
		difficulty: cfg.Difficulty.Default,
		board:      Board{Food: noFood},
	}
}

// Phase returns the active phase.
func (s *Session) Phase() Phase { return s.phase }

// Difficulty returns the preset of the current (or last) run.
func (s *Session) Difficulty() config.DifficultyPreset { return s.difficulty }

// Interval returns the tick interval of the current run, 0 in the menu.
func (s *Session) Interval() time.Duration { return s.interval }

// Ticks returns the number of steps executed in the current run.
func (s *Session) Ticks() uint64 { return s.ticks }

// Score returns the current score.
func (s *Session) Score() int { return s.board.Score }

// RunSeed returns the food seed of the current run.
func (s *Session) RunSeed() int64 { return s.runSeed }

// Runs returns how many runs this session has started. It changes exactly
// when a new run begins.
func (s *Session) Runs() uint64 { return s.runs }

// Gameplay returns the scoring and spawn parameters runs are played with.
func (s *Session) Gameplay() config.GameplayConfig { return s.cfg.Gameplay }

// Geometry returns the board size of the current run.
func (s *Session) Geometry() Geometry { return s.geom }

// SetViewport records the board size for the next run. A running board is
// never resized.
func (s *Session) SetViewport(g Geometry) {
	s.viewport = g
	if s.phase == PhaseMenu {
		s.geom = g
	}
}

// Start begins a run from the menu or after game over. It fails with
// ErrInvalidGeometry when the board is too small, leaving the phase as is.
func (s *Session) Start(p config.DifficultyPreset) (bool, error) {
	if s.phase != PhaseMenu && s.phase != PhaseGameOver {
		return false, nil
	}
	if err := s.start(p, s.seeds.Int63()); err != nil {
		return false, err
	}
	return true, nil
}

// Restart starts a fresh run with the same difficulty. Legal while paused
// or after game over.
func (s *Session) Restart() (bool, error) {
	if s.phase != PhasePaused && s.phase != PhaseGameOver {
		return false, nil
	}
	if err := s.start(s.difficulty, s.seeds.Int63()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) start(p config.DifficultyPreset, seed int64) error {
	if _, err := config.ParsePreset(string(p)); err != nil {
		return fmt.Errorf("snake: %w", err)
	}
	interval := s.cfg.Difficulty.Interval(p)
	if interval <= 0 {
		return fmt.Errorf("snake: no tick interval configured for %q", p)
	}

	geom := s.viewport
	length := s.cfg.Gameplay.InitialLength
	if err := geom.Validate(length); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	spawner := NewFoodSpawner(rng, geom, s.cfg.Gameplay.ExhaustiveSpawnRatio)
	body := InitialBody(geom, length)
	food, _ := spawner.Place(body) // Validate guarantees a free cell

	s.geom = geom
	s.engine = NewEngine(geom, spawner, s.cfg.Gameplay.ScorePerFood)
	s.runSeed = seed
	s.runs++
	s.difficulty = p
	s.interval = interval
	s.board = Board{Body: body, Food: food}
	s.heading = DirUp
	s.pending = DirUp
	s.ticks = 0
	s.won = false
	s.message = ""
	s.phase = PhaseRunning
	return nil
}

// Pause freezes a running game.
func (s *Session) Pause() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.phase = PhasePaused
	return true
}

// Resume continues a paused game.
func (s *Session) Resume() bool {
	if s.phase != PhasePaused {
		return false
	}
	s.phase = PhaseRunning
	return true
}

// TogglePause pauses a running game or resumes a paused one.
func (s *Session) TogglePause() bool {
	if s.phase == PhasePaused {
		return s.Resume()
	}
	return s.Pause()
}

// GoToMenu discards the run. Legal while paused or after game over; the
// final score is kept for the menu.
func (s *Session) GoToMenu() bool {
	if s.phase != PhasePaused && s.phase != PhaseGameOver {
		return false
	}
	s.lastScore = s.board.Score
	s.board = Board{Food: noFood}
	s.engine = nil
	s.geom = s.viewport
	s.interval = 0
	s.heading = DirUp
	s.pending = DirUp
	s.ticks = 0
	s.won = false
	s.message = ""
	s.phase = PhaseMenu
	return true
}

// SetDirection queues the direction for the next tick. It is rejected
// outside Running and Paused, and when d reverses the current direction of
// travel. Among several changes before one tick the last accepted wins.
func (s *Session) SetDirection(d Direction) bool {
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		return false
	}
	if !d.Valid() || d == s.heading.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// Heading returns the direction of travel.
func (s *Session) Heading() Direction { return s.heading }

// Pending returns the direction the next tick will use.
func (s *Session) Pending() Direction { return s.pending }

// Tick executes one step while running and is a no-op otherwise.
func (s *Session) Tick() Outcome {
	if s.phase != PhaseRunning {
		return OutcomeIdle
	}
	s.ticks++

	res := s.engine.Step(&s.board, s.pending)
	if res.Collision != CollisionNone {
		s.finish(false, fmt.Sprintf("Game Over! Score: %d", s.board.Score))
		return OutcomeCollision
	}
	s.heading = s.pending

	switch {
	case res.BoardFull:
		s.finish(true, fmt.Sprintf("Board cleared! Score: %d", s.board.Score))
		return OutcomeBoardFull
	case res.Ate:
		return OutcomeAte
	default:
		return OutcomeMoved
	}
}

func (s *Session) finish(won bool, msg string) {
	s.phase = PhaseGameOver
	s.won = won
	s.message = msg
	s.lastScore = s.board.Score
}

// Dispatch applies the actions of one input frame in arrival order and
// returns those that took effect. Confirm starts a run from the menu and
// restarts after game over.
func (s *Session) Dispatch(frame core.InputFrame) ([]core.Action, error) {
	var applied []core.Action
	for _, a := range frame.Actions() {
		ok, err := s.apply(a)
		if err != nil {
			return applied, err
		}
		if ok {
			applied = append(applied, a)
		}
	}
	return applied, nil
}

func (s *Session) apply(a core.Action) (bool, error) {
	if d, ok := DirectionFromAction(a); ok {
		return s.SetDirection(d), nil
	}

	switch a {
	case core.ActionPause:
		return s.TogglePause(), nil
	case core.ActionRestart:
		return s.Restart()
	case core.ActionMenu:
		return s.GoToMenu(), nil
	case core.ActionConfirm:
		switch s.phase {
		case PhaseMenu:
			return s.Start(s.difficulty)
		case PhaseGameOver:
			return s.Restart()
		}
	}
	return false, nil
}
