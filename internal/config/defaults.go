package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It matches the
// embedded defaults/snake.yaml and is used when that file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			CellSize:   1,
			HUDRows:    2,
			CellAspect: 2,
		},
		Gameplay: GameplayConfig{
			ScorePerFood:         10,
			InitialLength:        3,
			ExhaustiveSpawnRatio: 0.5,
		},
		Difficulty: DifficultyConfig{
			Default:  DifficultyNormal,
			EasyMS:   120,
			NormalMS: 75,
			HardMS:   45,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
