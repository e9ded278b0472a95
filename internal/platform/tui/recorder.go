package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Journal is the part of the run store the game writes to.
type Journal interface {
	CreateRun(r storage.Run) (string, error)
	AppendEvent(runID string, tick uint64, direction string) error
	FinishRun(runID string, score int, ticks uint64, outcome string) error
}

// Publisher receives every snapshot the game produces.
type Publisher interface {
	Publish(snap snake.Snapshot)
}

// recorder journals the run in progress. Journal errors are logged and
// never interrupt the game.
type recorder struct {
	journal Journal
	logger  *log.Logger
	runID   string
}

func (r *recorder) active() bool {
	return r.runID != ""
}

// begin journals the run the session just started.
func (r *recorder) begin(s *snake.Session) {
	if r.journal == nil {
		return
	}
	geom := s.Geometry()
	gameplay := s.Gameplay()
	id, err := r.journal.CreateRun(storage.Run{
		Difficulty: string(s.Difficulty()),
		Seed:       s.RunSeed(),
		Columns:    geom.Columns,
		Rows:       geom.Rows,
		Gameplay:   &gameplay,
	})
	if err != nil {
		r.logger.Warn("Could not journal run", "error", err)
		r.runID = ""
		return
	}
	r.runID = id
	r.logger.Debug("Run started", "run", id, "difficulty", s.Difficulty(), "board", geom)
}

// turn journals a direction change accepted after tick steps.
func (r *recorder) turn(tick uint64, d snake.Direction) {
	if !r.active() {
		return
	}
	if err := r.journal.AppendEvent(r.runID, tick, d.String()); err != nil {
		r.logger.Warn("Could not journal turn", "run", r.runID, "error", err)
	}
}

// finish closes the active run, if any.
func (r *recorder) finish(score int, ticks uint64, outcome string) {
	if !r.active() {
		return
	}
	if err := r.journal.FinishRun(r.runID, score, ticks, outcome); err != nil {
		r.logger.Warn("Could not finish run", "run", r.runID, "error", err)
	}
	r.logger.Info("Run finished", "run", r.runID, "score", score, "ticks", ticks, "outcome", outcome)
	r.runID = ""
}
