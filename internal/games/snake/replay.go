package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// Turn is a direction change accepted before the step with index Tick+1.
type Turn struct {
	Tick      uint64
	Direction Direction
}

// Recording is everything needed to re-simulate one run.
type Recording struct {
	Seed       int64
	Geometry   Geometry
	Difficulty config.DifficultyPreset
	Gameplay   *config.GameplayConfig // Parameters the run was played with; nil uses the replay config
	Turns      []Turn // Ordered by Tick
	Ticks      uint64 // Steps executed when the run ended
}

// Replay re-simulates a recorded run and returns its final snapshot. The
// run stops at game over or after rec.Ticks steps, whichever comes first.
// Recorded gameplay parameters take precedence over cfg.
func Replay(cfg config.SnakeConfig, rec Recording) (Snapshot, error) {
	if rec.Gameplay != nil {
		cfg.Gameplay = *rec.Gameplay
	}
	s := NewSession(cfg, rec.Geometry, 0)
	if err := s.start(rec.Difficulty, rec.Seed); err != nil {
		return Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	next := 0
	for s.phase == PhaseRunning && s.ticks < rec.Ticks {
		for next < len(rec.Turns) && rec.Turns[next].Tick <= s.ticks {
			if rec.Turns[next].Tick == s.ticks {
				s.SetDirection(rec.Turns[next].Direction)
			}
			next++
		}
		s.Tick()
	}
	return s.Snapshot(), nil
}
