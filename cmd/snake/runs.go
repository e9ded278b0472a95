package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit  int
	flagPlain  bool
	flagDelete string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse journaled runs",
	Long: `List the most recent runs from the journal, newest first.

In a terminal this opens an interactive browser; press Enter on a run to
replay it. With --plain, or when output is not a terminal, a table is
printed instead. --delete removes a run and its recorded turns.

Examples:
  snake runs
  snake runs --limit 5 --plain
  snake runs --delete 3f1c2a9e-...`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive browser")
	runsCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the run with this ID")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete != "" {
		if err := deleteRun(store, flagDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Printf("Deleted run %s\n", flagDelete)
		return
	}

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		if len(runs) == 0 {
			fmt.Println("No runs journaled yet.")
			return
		}
		headers := make([]string, 0, len(tui.RunColumns()))
		for _, c := range tui.RunColumns() {
			headers = append(headers, c.Title)
		}
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(headers...)
		for _, row := range tui.RunRows(runs) {
			t.Row(row...)
		}
		fmt.Println(t.Render())
		return
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		width, height = 100, 24
	}
	id, err := tui.RunBrowser(runs, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if id == "" {
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !replayRun(store, cfg, id) {
		os.Exit(1)
	}
}

// deleteRun removes one run from the journal.
func deleteRun(store *storage.Store, id string) error {
	err := store.DeleteRun(id)
	if errors.Is(err, storage.ErrRunNotFound) {
		return fmt.Errorf("no run %q. Run 'snake runs' to list runs", id)
	}
	return err
}
