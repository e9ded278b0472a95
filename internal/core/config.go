package core

// RuntimeConfig contains what the platform knows about the terminal at
// session start: the viewport in characters and the RNG seed.
type RuntimeConfig struct {
	ScreenW int   // Viewport width in characters
	ScreenH int   // Viewport height in characters
	Seed    int64 // RNG seed for deterministic food placement (0 = time based)
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
