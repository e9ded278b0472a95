package config

import (
	"fmt"
	"strings"
	"time"
)

// DifficultyPreset represents a named difficulty tier. A preset is chosen
// once per session and fixes the tick interval for that session.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets returns all presets, slowest first.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset converts user input ("Hard", " easy ") into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Title returns the display name of the preset.
func (p DifficultyPreset) Title() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return string(p)
	}
}

// IntervalMS returns the configured tick interval of a preset in
// milliseconds, or 0 for an unknown preset.
func (d DifficultyConfig) IntervalMS(p DifficultyPreset) int {
	switch p {
	case DifficultyEasy:
		return d.EasyMS
	case DifficultyNormal:
		return d.NormalMS
	case DifficultyHard:
		return d.HardMS
	default:
		return 0
	}
}

// Interval returns the tick interval of a preset.
func (d DifficultyConfig) Interval(p DifficultyPreset) time.Duration {
	return time.Duration(d.IntervalMS(p)) * time.Millisecond
}
