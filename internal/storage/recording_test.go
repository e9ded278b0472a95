package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

func TestRecordingReplaysJournaledRun(t *testing.T) {
	store := openTestStore(t)
	cfg := config.DefaultSnakeConfig()
	geom := snake.Geometry{Columns: 12, Rows: 9}

	s := snake.NewSession(cfg, geom, 31)
	if _, err := s.Start(config.DifficultyNormal); err != nil {
		t.Fatal(err)
	}
	gameplay := s.Gameplay()
	id, err := store.CreateRun(Run{
		Difficulty: string(s.Difficulty()),
		Seed:       s.RunSeed(),
		Columns:    geom.Columns,
		Rows:       geom.Rows,
		Gameplay:   &gameplay,
	})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	plan := map[uint64]snake.Direction{1: snake.DirRight, 4: snake.DirDown, 6: snake.DirLeft}
	for i := 0; i < 60 && s.Phase() == snake.PhaseRunning; i++ {
		if d, ok := plan[s.Ticks()]; ok && s.SetDirection(d) {
			if err := store.AppendEvent(id, s.Ticks(), d.String()); err != nil {
				t.Fatalf("AppendEvent() failed: %v", err)
			}
		}
		s.Tick()
	}
	if err := store.FinishRun(id, s.Score(), s.Ticks(), OutcomeCollision); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, rec, err := store.Recording(id)
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if len(rec.Turns) != 3 || rec.Geometry != geom || rec.Difficulty != config.DifficultyNormal {
		t.Errorf("recording = %+v", rec)
	}

	if rec.Gameplay == nil || *rec.Gameplay != cfg.Gameplay {
		t.Fatalf("recorded gameplay = %+v, want %+v", rec.Gameplay, cfg.Gameplay)
	}

	// A later edit of the config file must not change the replay.
	edited := cfg
	edited.Gameplay.InitialLength = 5
	edited.Gameplay.ScorePerFood = 1

	got, err := snake.Replay(edited, rec)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.Score != run.Score || got.Ticks != run.Ticks {
		t.Errorf("replay score/ticks = %d/%d, journal = %d/%d", got.Score, got.Ticks, run.Score, run.Ticks)
	}
	if got.Phase != snake.PhaseGameOver {
		t.Errorf("replay phase = %v, want game over", got.Phase)
	}
}

func TestRecordingRejectsBadDifficulty(t *testing.T) {
	store := openTestStore(t)
	id, err := store.CreateRun(Run{Difficulty: "nightmare", Columns: 10, Rows: 10})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	if _, _, err := store.Recording(id); err == nil {
		t.Error("Recording() should reject an unknown difficulty")
	}
}

func TestOpenUpgradesOldRunsTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE runs (
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			seed INTEGER NOT NULL,
			grid_columns INTEGER NOT NULL,
			grid_rows INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);
		INSERT INTO runs (id, difficulty, seed, grid_columns, grid_rows, outcome)
		VALUES ('old-run', 'easy', 3, 10, 10, 'abandoned');
	`)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	run, rec, err := store.Recording("old-run")
	if err != nil {
		t.Fatalf("Recording() failed: %v", err)
	}
	if run.Gameplay != nil || rec.Gameplay != nil {
		t.Errorf("old run gameplay = %+v, want nil", run.Gameplay)
	}

	gameplay := config.DefaultSnakeConfig().Gameplay
	id, err := store.CreateRun(Run{Difficulty: "easy", Columns: 10, Rows: 10, Gameplay: &gameplay})
	if err != nil {
		t.Fatalf("CreateRun() after upgrade failed: %v", err)
	}
	got, err := store.Run(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Gameplay == nil || *got.Gameplay != gameplay {
		t.Errorf("gameplay = %+v, want %+v", got.Gameplay, gameplay)
	}
}
