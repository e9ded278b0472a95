package snake

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 10}, 42)
	if ok, err := s.Start(config.DifficultyNormal); !ok || err != nil {
		t.Fatalf("Start = %v, %v", ok, err)
	}
	return s
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 10}, 1)
	if s.Phase() != PhaseMenu {
		t.Errorf("phase = %v, want menu", s.Phase())
	}
	if s.Tick() != OutcomeIdle {
		t.Error("Tick in the menu should be idle")
	}
	snap := s.Snapshot()
	if len(snap.Body) != 0 || snap.HasFood {
		t.Errorf("menu snapshot should be empty: %+v", snap)
	}
}

func TestStartInitialState(t *testing.T) {
	s := newTestSession(t)

	snap := s.Snapshot()
	if snap.Phase != PhaseRunning {
		t.Errorf("phase = %v, want running", snap.Phase)
	}
	if !slices.Equal(snap.Body, []Cell{{5, 5}, {5, 6}, {5, 7}}) {
		t.Errorf("body = %v", snap.Body)
	}
	if snap.Heading != DirUp || s.Pending() != DirUp {
		t.Errorf("direction = %v/%v, want up", snap.Heading, s.Pending())
	}
	if snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("score/ticks = %d/%d, want 0/0", snap.Score, snap.Ticks)
	}
	if !snap.HasFood || slices.Contains(snap.Body, snap.Food) {
		t.Errorf("food %v must be placed off the snake", snap.Food)
	}
	if s.Interval().Milliseconds() != 75 {
		t.Errorf("interval = %v, want 75ms", s.Interval())
	}
}

func TestStartRejectsSmallBoard(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 4}, 1)

	ok, err := s.Start(config.DifficultyEasy)
	if ok || !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("Start = %v, %v; want ErrInvalidGeometry", ok, err)
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("phase = %v, want menu", s.Phase())
	}
}

func TestStartRejectsUnknownDifficulty(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 10}, 1)
	if ok, err := s.Start("insane"); ok || err == nil {
		t.Errorf("Start(insane) = %v, %v; want error", ok, err)
	}
}

func TestStartIllegalWhileRunning(t *testing.T) {
	s := newTestSession(t)
	seed := s.RunSeed()
	if ok, err := s.Start(config.DifficultyHard); ok || err != nil {
		t.Errorf("Start while running = %v, %v; want no-op", ok, err)
	}
	if s.RunSeed() != seed || s.Difficulty() != config.DifficultyNormal {
		t.Error("Start while running changed the run")
	}
}

func TestTickMovesUp(t *testing.T) {
	s := newTestSession(t)
	s.board.Food = Cell{0, 0}

	if out := s.Tick(); out != OutcomeMoved {
		t.Fatalf("Tick = %v, want moved", out)
	}
	if !slices.Equal(s.board.Body, Body{{5, 4}, {5, 5}, {5, 6}}) {
		t.Errorf("body = %v", s.board.Body)
	}
	if s.Score() != 0 || s.Ticks() != 1 {
		t.Errorf("score/ticks = %d/%d, want 0/1", s.Score(), s.Ticks())
	}
}

func TestTickEatsFood(t *testing.T) {
	s := newTestSession(t)
	s.board.Food = Cell{5, 4}

	if out := s.Tick(); out != OutcomeAte {
		t.Fatalf("Tick = %v, want ate", out)
	}
	if !slices.Equal(s.board.Body, Body{{5, 4}, {5, 5}, {5, 6}, {5, 7}}) {
		t.Errorf("body = %v", s.board.Body)
	}
	if s.Score() != 10 {
		t.Errorf("score = %d, want 10", s.Score())
	}
	if s.board.Body.Contains(s.board.Food) {
		t.Errorf("food %v placed on the snake", s.board.Food)
	}
}

func TestTickWallCollisionEndsGame(t *testing.T) {
	s := newTestSession(t)
	body := Body{{0, 5}, {1, 5}, {2, 5}}
	s.board.Body = body
	s.board.Score = 20
	s.heading = DirLeft
	s.pending = DirLeft

	if out := s.Tick(); out != OutcomeCollision {
		t.Fatalf("Tick = %v, want collision", out)
	}
	if s.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game over", s.Phase())
	}
	if !slices.Equal(s.board.Body, body) {
		t.Errorf("body = %v, want unchanged %v", s.board.Body, body)
	}
	snap := s.Snapshot()
	if snap.Message != "Game Over! Score: 20" || snap.Won {
		t.Errorf("message = %q won = %v", snap.Message, snap.Won)
	}
	if s.Tick() != OutcomeIdle {
		t.Error("Tick after game over should be idle")
	}
}

func TestTickBoardFullWins(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	s := NewSession(cfg, Geometry{Columns: 10, Rows: 10}, 1)
	if _, err := s.Start(config.DifficultyEasy); err != nil {
		t.Fatal(err)
	}
	// Swap in a 2x2 board the snake is about to fill.
	geom := Geometry{Columns: 2, Rows: 2}
	s.geom = geom
	s.engine = newTestEngine(geom, 1)
	s.board = Board{Body: Body{{0, 1}, {1, 1}, {1, 0}}, Food: Cell{0, 0}, Score: 20}

	if out := s.Tick(); out != OutcomeBoardFull {
		t.Fatalf("Tick = %v, want board full", out)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseGameOver || !snap.Won || snap.HasFood {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Message != "Board cleared! Score: 30" {
		t.Errorf("message = %q", snap.Message)
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	s := newTestSession(t)

	if s.SetDirection(DirDown) {
		t.Error("reversing from up should be rejected")
	}
	if s.Pending() != DirUp {
		t.Errorf("pending = %v, want up", s.Pending())
	}

	if !s.SetDirection(DirLeft) {
		t.Fatal("left should be accepted")
	}
	// Still heading up until the next tick, so down stays illegal even
	// though left is pending.
	if s.SetDirection(DirDown) {
		t.Error("down should be rejected before the tick commits left")
	}
	if !s.SetDirection(DirRight) {
		t.Error("right should be accepted, last accepted change wins")
	}

	s.board.Food = Cell{0, 0}
	s.Tick()
	if s.Heading() != DirRight {
		t.Errorf("heading = %v, want right", s.Heading())
	}
	if s.SetDirection(DirLeft) {
		t.Error("reversing from right should be rejected")
	}
}

func TestSetDirectionInMenuIsNoop(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 10}, 1)
	if s.SetDirection(DirLeft) {
		t.Error("SetDirection in the menu should be rejected")
	}
	if _, err := s.Start(config.DifficultyNormal); err != nil {
		t.Fatal(err)
	}
	if s.Pending() != DirUp || s.Heading() != DirUp {
		t.Errorf("direction after start = %v/%v, want up", s.Pending(), s.Heading())
	}
}

func TestPauseResume(t *testing.T) {
	s := newTestSession(t)

	if !s.Pause() {
		t.Fatal("Pause from running should succeed")
	}
	if s.Pause() {
		t.Error("Pause while paused should be a no-op")
	}
	if s.Phase() != PhasePaused {
		t.Errorf("phase = %v, want paused", s.Phase())
	}

	before := s.board.Body.Cells()
	if s.Tick() != OutcomeIdle || s.Ticks() != 0 {
		t.Error("Tick while paused should be idle")
	}
	if !slices.Equal(s.board.Body, before) {
		t.Error("body moved while paused")
	}

	if !s.SetDirection(DirRight) {
		t.Error("steering while paused should be accepted")
	}
	if !s.Resume() || s.Phase() != PhaseRunning {
		t.Error("Resume should return to running")
	}
	if s.Resume() {
		t.Error("Resume while running should be a no-op")
	}
}

func TestRestartResetsRun(t *testing.T) {
	s := newTestSession(t)
	s.board.Food = Cell{5, 4}
	s.Tick()
	s.SetDirection(DirLeft)
	s.Tick()
	s.Pause()

	if ok, err := s.Restart(); !ok || err != nil {
		t.Fatalf("Restart = %v, %v", ok, err)
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseRunning || snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("restart snapshot = %+v", snap)
	}
	if !slices.Equal(snap.Body, []Cell{{5, 5}, {5, 6}, {5, 7}}) || snap.Heading != DirUp {
		t.Errorf("restart body/heading = %v/%v", snap.Body, snap.Heading)
	}
	if snap.Difficulty != config.DifficultyNormal {
		t.Errorf("difficulty = %v, want normal", snap.Difficulty)
	}
}

func TestRestartIllegalWhileRunning(t *testing.T) {
	s := newTestSession(t)
	if ok, _ := s.Restart(); ok {
		t.Error("Restart while running should be a no-op")
	}
}

func TestGoToMenuKeepsLastScore(t *testing.T) {
	s := newTestSession(t)
	if s.GoToMenu() {
		t.Error("GoToMenu while running should be a no-op")
	}
	s.board.Score = 40
	s.Pause()

	if !s.GoToMenu() {
		t.Fatal("GoToMenu from paused should succeed")
	}
	snap := s.Snapshot()
	if snap.Phase != PhaseMenu || snap.LastScore != 40 || snap.Score != 0 {
		t.Errorf("menu snapshot = %+v", snap)
	}
}

func TestSetViewportAppliesToNextRun(t *testing.T) {
	s := newTestSession(t)
	s.SetViewport(Geometry{Columns: 20, Rows: 12})
	if s.Geometry() != (Geometry{Columns: 10, Rows: 10}) {
		t.Errorf("running board resized to %+v", s.Geometry())
	}

	s.Pause()
	s.Restart()
	if s.Geometry() != (Geometry{Columns: 20, Rows: 12}) {
		t.Errorf("geometry after restart = %+v", s.Geometry())
	}
}

func TestDispatch(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 10, Rows: 10}, 1)

	frame := core.NewInputFrame()
	frame.Set(core.ActionLeft)
	frame.Set(core.ActionConfirm)
	frame.Set(core.ActionRight)

	applied, err := s.Dispatch(frame)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.Action{core.ActionConfirm, core.ActionRight}
	if !slices.Equal(applied, want) {
		t.Errorf("applied = %v, want %v", applied, want)
	}
	if s.Phase() != PhaseRunning || s.Pending() != DirRight {
		t.Errorf("phase/pending = %v/%v", s.Phase(), s.Pending())
	}

	frame = core.NewInputFrame()
	frame.Set(core.ActionPause)
	frame.Set(core.ActionMenu)
	if _, err := s.Dispatch(frame); err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseMenu {
		t.Errorf("phase = %v, want menu", s.Phase())
	}
}

func TestDispatchConfirmSurfacesGeometryError(t *testing.T) {
	s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 3, Rows: 3}, 1)
	frame := core.NewInputFrame()
	frame.Set(core.ActionConfirm)

	if _, err := s.Dispatch(frame); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Dispatch = %v, want ErrInvalidGeometry", err)
	}
}

func TestSameSeedSameRuns(t *testing.T) {
	play := func() Snapshot {
		s := NewSession(config.DefaultSnakeConfig(), Geometry{Columns: 16, Rows: 12}, 2024)
		if _, err := s.Start(config.DifficultyHard); err != nil {
			t.Fatal(err)
		}
		turns := map[uint64]Direction{4: DirLeft, 7: DirDown, 9: DirRight, 14: DirUp}
		for i := uint64(0); i < 40 && s.Phase() == PhaseRunning; i++ {
			if d, ok := turns[i]; ok {
				s.SetDirection(d)
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if !slices.Equal(a.Body, b.Body) || a.Food != b.Food || a.Score != b.Score || a.Ticks != b.Ticks {
		t.Errorf("runs diverged:\n%+v\n%+v", a, b)
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := newTestSession(t)
	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	for _, want := range []string{`"phase":"running"`, `"heading":"up"`, `"difficulty":"normal"`, `"interval_ms":75`} {
		if !strings.Contains(text, want) {
			t.Errorf("snapshot JSON %s missing %s", text, want)
		}
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := newTestSession(t)
	snap := s.Snapshot()
	snap.Body[0] = Cell{9, 9}
	if s.board.Body.Head() == (Cell{9, 9}) {
		t.Error("snapshot body aliases the session")
	}
}
