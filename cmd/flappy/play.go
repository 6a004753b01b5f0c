package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/core"
	"github.com/vovakirdan/flappy-lite/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play",
	Long: `Start the game on the title screen.

Default controls (rebind them in the settings file):
  Up/Space   - Flap
  Enter      - Start a run
  P          - Pause
  F11        - Toggle fullscreen
  Esc        - Save and quit

Examples:
  flappy play
  flappy play --seed 7 --fps 30
  flappy play --tuning ./configs/tuning.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, logFile, err := openLogger()
	if err != nil {
		return err
	}
	defer logFile.Close()

	images, err := openImages()
	if err != nil {
		logger.Error("startup check failed", "err", err)
		return err
	}

	settings, err := config.LoadSettings(flagSettings)
	if err != nil {
		logger.Warn("settings not saved", "path", flagSettings, "err", err)
	}
	tuning, err := config.LoadTuning(flagTuning)
	if err != nil {
		logger.Error("cannot load tuning", "err", err)
		return err
	}

	store, err := openStore(logger)
	if err != nil {
		logger.Error("cannot open best score store", "err", err)
		return fmt.Errorf("open best score store: %w", err)
	}
	// Close store before returning
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("cannot close store", "err", closeErr)
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(tui.Options{
		Settings: settings,
		Tuning:   tuning,
		Images:   images,
		Store:    store,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Immortal: flagImmortal,
		Logger:   logger,
	})
	if runErr != nil {
		logger.Error("game ended with an error", "err", runErr)
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
