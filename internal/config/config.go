// Package config provides YAML-based configuration loading and difficulty
// presets for the snake game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig describes how the viewport is divided into cells.
type BoardConfig struct {
	CellSize   int `yaml:"cell_size"`   // Viewport units per cell
	HUDRows    int `yaml:"hud_rows"`    // Rows reserved above the board
	CellAspect int `yaml:"cell_aspect"` // Terminal columns drawn per cell
}

// GameplayConfig holds scoring and spawn parameters.
type GameplayConfig struct {
	ScorePerFood         int     `yaml:"score_per_food"`
	InitialLength        int     `yaml:"initial_length"`
	ExhaustiveSpawnRatio float64 `yaml:"exhaustive_spawn_ratio"` // Occupancy above which food spawn enumerates free cells
}

// DifficultyConfig maps presets to tick intervals in milliseconds.
type DifficultyConfig struct {
	Default  DifficultyPreset `yaml:"default"`
	EasyMS   int              `yaml:"easy_ms"`
	NormalMS int              `yaml:"normal_ms"`
	HardMS   int              `yaml:"hard_ms"`
}

// Validate checks that every value is usable.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Board.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("board.cell_size must be positive, got %d", c.Board.CellSize))
	}
	if c.Board.HUDRows < 0 {
		errs = append(errs, fmt.Errorf("board.hud_rows must not be negative, got %d", c.Board.HUDRows))
	}
	if c.Board.CellAspect <= 0 {
		errs = append(errs, fmt.Errorf("board.cell_aspect must be positive, got %d", c.Board.CellAspect))
	}
	if c.Gameplay.ScorePerFood <= 0 {
		errs = append(errs, fmt.Errorf("gameplay.score_per_food must be positive, got %d", c.Gameplay.ScorePerFood))
	}
	if c.Gameplay.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("gameplay.initial_length must be at least 1, got %d", c.Gameplay.InitialLength))
	}
	if r := c.Gameplay.ExhaustiveSpawnRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("gameplay.exhaustive_spawn_ratio must be within [0, 1], got %g", r))
	}
	if _, err := ParsePreset(string(c.Difficulty.Default)); err != nil {
		errs = append(errs, fmt.Errorf("difficulty.default: %w", err))
	}
	for _, p := range Presets() {
		if c.Difficulty.IntervalMS(p) <= 0 {
			errs = append(errs, fmt.Errorf("difficulty.%s_ms must be positive", p))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
