package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderRunningBoard(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	screen := core.NewScreen(80, 24)
	s := NewSession(cfg, ViewportGeometry(cfg.Board, 80, 24), 1)
	if _, err := s.Start(config.DifficultyNormal); err != nil {
		t.Fatal(err)
	}
	s.board.Food = Cell{0, 0}

	s.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	frame := s.BoardRect(screen.Width())
	if got := screen.Get(frame.X, frame.Y); got == ' ' {
		t.Error("board frame corner not drawn")
	}

	inner := frame.Inset(1)
	cw, _ := s.cellSize()
	head := s.board.Body.Head()
	if got := screen.Get(inner.X+head.Col*cw, inner.Y+head.Row); got != '▲' {
		t.Errorf("head glyph = %q, want ▲", got)
	}
	if got := screen.GetCell(inner.X, inner.Y); got.Rune != FoodGlyph || got.Color != core.ColorFood {
		t.Errorf("food cell = %+v", got)
	}
	tail := s.board.Body[s.board.Body.Len()-1]
	if got := screen.Get(inner.X+tail.Col*cw+1, inner.Y+tail.Row); got != BodyGlyph {
		t.Errorf("tail glyph = %q, want %q", got, BodyGlyph)
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	screen := core.NewScreen(80, 24)
	s := NewSession(cfg, ViewportGeometry(cfg.Board, 80, 24), 1)
	if _, err := s.Start(config.DifficultyNormal); err != nil {
		t.Fatal(err)
	}
	s.board.Score = 50
	s.finish(false, "Game Over! Score: 50")

	s.Render(screen)

	if !strings.Contains(screen.String(), "Game Over! Score: 50") {
		t.Errorf("overlay missing:\n%s", screen.String())
	}
}

func TestRenderMenuShowsLastScore(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	screen := core.NewScreen(80, 24)
	s := NewSession(cfg, ViewportGeometry(cfg.Board, 80, 24), 1)
	s.lastScore = 70

	s.Render(screen)

	if !strings.Contains(screen.Row(0), "Last score: 70") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
}
