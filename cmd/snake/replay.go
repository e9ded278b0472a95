package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagJSON bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a journaled run",
	Long: `Re-run a journaled game headlessly from its seed and recorded turns,
then compare the result with what the journal recorded.

Exits non-zero when the replayed score or step count differs.

Examples:
  snake replay 3f1c2a9e-...
  snake replay 3f1c2a9e-... --json`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the final snapshot as JSON")
}

func runReplay(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !replayRun(store, cfg, args[0]) {
		store.Close()
		os.Exit(1)
	}
}

// replayRun replays one run and reports the result. It returns false when
// the run cannot be replayed or the result disagrees with the journal.
func replayRun(store *storage.Store, cfg config.SnakeConfig, id string) bool {
	run, rec, err := store.Recording(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no run %q. Run 'snake runs' to list runs.\n", id)
		return false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}

	if rec.Gameplay == nil {
		fmt.Fprintln(os.Stderr, "Warning: run has no recorded gameplay settings; replaying with the current config")
	}

	snap, err := snake.Replay(cfg, rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		return false
	}

	if flagJSON {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		fmt.Println(string(out))
	} else {
		fmt.Printf("Run %s (%s, %dx%d, seed %d)\n", run.ID, run.Difficulty, run.Columns, run.Rows, run.Seed)
		fmt.Printf("  journal: score %d after %d ticks, %s\n", run.Score, run.Ticks, run.Outcome)
		fmt.Printf("  replay:  score %d after %d ticks, %s\n", snap.Score, snap.Ticks, snap.Phase)
		if snap.Message != "" {
			fmt.Printf("  %s\n", snap.Message)
		}
	}

	if run.Outcome == storage.OutcomeInProgress {
		fmt.Fprintln(os.Stderr, "Warning: run never finished; nothing to compare against")
		return true
	}
	if snap.Score != run.Score || snap.Ticks != run.Ticks {
		fmt.Fprintln(os.Stderr, "Mismatch: replay does not reproduce the journaled run")
		return false
	}
	return true
}
