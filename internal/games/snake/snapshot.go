package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Phase is the session state. Exactly one phase is active at a time.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < PhaseMenu || p > PhaseGameOver {
		return nil, fmt.Errorf("snake: invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for q := PhaseMenu; q <= PhaseGameOver; q++ {
		if q.String() == string(text) {
			*p = q
			return nil
		}
	}
	return fmt.Errorf("snake: unknown phase %q", text)
}

// Snapshot is a read-only copy of the session for renderers and
// spectators. It never aliases live session state.
type Snapshot struct {
	Phase      Phase                   `json:"phase"`
	Geometry   Geometry                `json:"geometry"`
	Body       []Cell                  `json:"body"`
	Food       Cell                    `json:"food"`
	HasFood    bool                    `json:"has_food"`
	Heading    Direction               `json:"heading"`
	Score      int                     `json:"score"`
	LastScore  int                     `json:"last_score"`
	Difficulty config.DifficultyPreset `json:"difficulty"`
	IntervalMS int64                   `json:"interval_ms"`
	Ticks      uint64                  `json:"ticks"`
	Won        bool                    `json:"won"`
	Message    string                  `json:"message,omitempty"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      s.phase,
		Geometry:   s.geom,
		Body:       s.board.Body.Cells(),
		Heading:    s.heading,
		Score:      s.board.Score,
		LastScore:  s.lastScore,
		Difficulty: s.difficulty,
		IntervalMS: s.interval.Milliseconds(),
		Ticks:      s.ticks,
		Won:        s.won,
		Message:    s.message,
	}
	if s.phase != PhaseMenu && s.board.Food != noFood {
		snap.Food = s.board.Food
		snap.HasFood = true
	} else {
		snap.Food = noFood
	}
	return snap
}

// Head returns the head cell, or false for an empty body.
func (s Snapshot) Head() (Cell, bool) {
	if len(s.Body) == 0 {
		return Cell{}, false
	}
	return s.Body[0], true
}
