package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nvoronin/railrush/internal/config"
	"github.com/nvoronin/railrush/internal/platform/tui"
	"github.com/nvoronin/railrush/internal/storage"
)

var (
	flagConfig string
	flagResume string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run down the endless track.

Controls:
  A/D or Left/Right  - Change lane
  1..5               - Jump straight to a lane
  P/Esc              - Pause
  Ctrl+S             - Quick save
  R                  - Restart (after game over)
  Q/Ctrl+C           - Quit

Examples:
  railrush play
  railrush play --seed 42
  railrush play --config ./my-railrush.yaml
  railrush play --resume quick`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Save slot to resume from")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	runErr := tui.Run(cfg, store, logger, tui.Options{
		FPS:        flagFPS,
		Seed:       flagSeed,
		ResumeSlot: flagResume,
		Width:      width,
		Height:     height,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
