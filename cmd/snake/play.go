package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/spectate"
)

var (
	flagDifficulty string
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Long: `Open the difficulty menu and play.

Controls:
  Arrows/WASD/hjkl  - Steer
  P/Space           - Pause / resume
  R                 - Restart (paused or after game over)
  M/Esc             - Back to menu (paused or after game over)
  Q/Ctrl+C          - Quit

Difficulty presets (tick interval from the config):
  easy   - 120ms
  normal - 75ms
  hard   - 45ms

Every run is journaled to --db and can be replayed with 'snake replay'.
With --spectate, the game is streamed read-only over HTTP and WebSocket.

Examples:
  snake play
  snake play --difficulty hard
  snake play --spectate :8080
  snake play --seed 42 --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve spectators on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, _ []string) {
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "snake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		preset, err = config.ParsePreset(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Config:     cfg,
		Runtime:    core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: flagSeed},
		Difficulty: preset,
		Logger:     logger,
	}

	store, err := openStore()
	if err != nil {
		// The game still works without a journal.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger.Warn("Playing without run journal", "error", err)
	} else {
		defer store.Close()
		opts.Journal = store
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(spectate.DefaultBuffer)
		srv := spectate.NewServer(flagSpectate, hub, logger)
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting spectator server: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Spectator server shutdown", "error", err)
			}
		}()
		opts.Publisher = hub
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
