package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Glyphs used on the board.
const (
	BodyGlyph = '█'
	FoodGlyph = '●'
)

var headGlyphs = map[Direction]rune{
	DirUp:    '▲',
	DirDown:  '▼',
	DirLeft:  '◀',
	DirRight: '▶',
}

// BoardRect returns where the framed board sits on a screen of the given
// size, frame included.
func (s *Session) BoardRect(screenW int) core.Rect {
	cw, ch := s.cellSize()
	w := s.geom.Columns*cw + 2
	h := s.geom.Rows*ch + 2
	return core.NewRect((screenW-w)/2, s.cfg.Board.HUDRows, w, h)
}

func (s *Session) cellSize() (w, h int) {
	size := max(s.cfg.Board.CellSize, 1)
	return size * max(s.cfg.Board.CellAspect, 1), size
}

// Render draws the HUD, the board and the pause or game-over overlay.
// The menu is drawn by the platform, so nothing but the HUD is drawn there.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.renderHUD(dst)
	if s.phase == PhaseMenu {
		return
	}

	frame := s.BoardRect(dst.Bounds().W)
	dst.DrawBox(frame, core.ColorFrame)
	inner := frame.Inset(1)

	if s.board.Food != noFood {
		s.fillCell(dst, inner, s.board.Food, FoodGlyph, core.ColorFood)
	}
	for i := len(s.board.Body) - 1; i >= 0; i-- {
		if i == 0 {
			s.fillCell(dst, inner, s.board.Body[i], headGlyphs[s.heading], core.ColorHead)
			continue
		}
		s.fillCell(dst, inner, s.board.Body[i], BodyGlyph, core.ColorBody)
	}

	switch s.phase {
	case PhasePaused:
		renderOverlay(dst, frame, core.ColorPaused, "Paused", "P: resume  R: restart  M: menu")
	case PhaseGameOver:
		color := core.ColorLost
		if s.won {
			color = core.ColorWon
		}
		renderOverlay(dst, frame, color, s.message, "R: restart  M: menu")
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	if s.cfg.Board.HUDRows < 1 {
		return
	}

	left := fmt.Sprintf(" SNAKE  Score: %d", s.board.Score)
	if s.phase == PhaseMenu {
		left = fmt.Sprintf(" SNAKE  Last score: %d", s.lastScore)
	}
	dst.DrawText(0, 0, left, core.ColorTitle)

	if s.phase != PhaseMenu {
		right := fmt.Sprintf("%s  %dms ", s.difficulty.Title(), s.interval.Milliseconds())
		dst.DrawText(dst.Width()-len(right), 0, right, core.ColorMuted)
	}

	if s.cfg.Board.HUDRows > 1 {
		for x := range dst.Width() {
			dst.SetColor(x, 1, '─', core.ColorMuted)
		}
	}
}

// fillCell paints every character of one board cell.
func (s *Session) fillCell(dst *core.Screen, inner core.Rect, c Cell, r rune, color core.Color) {
	cw, ch := s.cellSize()
	dst.FillRect(core.NewRect(inner.X+c.Col*cw, inner.Y+c.Row*ch, cw, ch), r, color)
}

// renderOverlay draws a centered two-line box over the board.
func renderOverlay(dst *core.Screen, area core.Rect, color core.Color, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := area.Centered(w, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(box, box.Y+1, line1, color)
	dst.DrawTextCentered(box, box.Y+3, line2, core.ColorText)
}
