package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "ab", core.ColorBody)
	s.DrawText(2, 0, "cd", core.ColorFood)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("line 1 %q missing xyz", lines[1])
	}
}

func TestPaletteCoversEveryRole(t *testing.T) {
	p := DefaultPalette()
	roles := []core.Color{
		core.ColorFrame, core.ColorBody, core.ColorHead, core.ColorFood, core.ColorTitle,
		core.ColorMuted, core.ColorText, core.ColorPaused, core.ColorWon, core.ColorLost,
	}
	for _, c := range roles {
		if _, ok := p[c]; !ok {
			t.Errorf("no style for role %d", c)
		}
	}
}

func TestPaletteRenderUnknownRoleIsPlain(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.DrawText(0, 0, "abc", core.Color(200))

	if got := (Palette{}).Render(s); got != "abc" {
		t.Errorf("Render() = %q, want plain abc", got)
	}
}
