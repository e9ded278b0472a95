package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Recording loads a journaled run in the form the engine replays.
func (s *Store) Recording(id string) (Run, snake.Recording, error) {
	run, err := s.Run(id)
	if err != nil {
		return Run{}, snake.Recording{}, err
	}
	events, err := s.Events(id)
	if err != nil {
		return Run{}, snake.Recording{}, err
	}

	preset, err := config.ParsePreset(run.Difficulty)
	if err != nil {
		return Run{}, snake.Recording{}, fmt.Errorf("storage: run %s: %w", id, err)
	}

	rec := snake.Recording{
		Seed:       run.Seed,
		Geometry:   snake.Geometry{Columns: run.Columns, Rows: run.Rows},
		Difficulty: preset,
		Gameplay:   run.Gameplay,
		Ticks:      run.Ticks,
		Turns:      make([]snake.Turn, 0, len(events)),
	}
	for _, e := range events {
		d, err := snake.ParseDirection(e.Direction)
		if err != nil {
			return Run{}, snake.Recording{}, fmt.Errorf("storage: run %s: %w", id, err)
		}
		rec.Turns = append(rec.Turns, snake.Turn{Tick: e.Tick, Direction: d})
	}
	return run, rec, nil
}
