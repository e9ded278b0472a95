package core

// Color is the role a screen cell plays. The platform decides how each role
// looks, so the engine never deals in terminal color codes.
type Color uint8

const (
	ColorDefault Color = iota // Unstyled
	ColorFrame                // Board border
	ColorBody                 // Snake segments behind the head
	ColorHead                 // Snake head
	ColorFood                 // Food cell
	ColorTitle                // HUD score line
	ColorMuted                // Secondary HUD text and separators
	ColorText                 // Overlay hints
	ColorPaused               // Pause overlay
	ColorWon                  // Game over after clearing the board
	ColorLost                 // Game over after a collision
)
