// flappy is Flappy Bird Lite for the terminal.
//
// Usage:
//
//	flappy                   - Play (same as 'flappy play')
//	flappy play              - Play
//	flappy best              - Show the best score
//	flappy bindings          - List the key bindings from the settings file
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible tube gaps
//	--settings <path>   - Settings file (default: ~/.flappy-lite/settings.json)
//	--best <path>       - Best score file (default: ~/.flappy-lite/bsc.txt)
//	--db <path>         - Keep the best score in SQLite instead
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-lite/internal/assets"
	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagSettings string
	flagTuning   string
	flagAssets   string
	flagBestPath string
	flagDBPath   string
	flagLogFile  string
	flagDebug    bool
	flagImmortal bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird Lite - flap through the tubes in your terminal",
	Long: `Flappy Bird Lite is a terminal take on Flappy Bird. Flap to climb,
fall when you don't, and slip through the gaps between the tubes.

Available commands:
  play      - Play (default)
  best      - Show the best score
  bindings  - List the key bindings

Examples:
  flappy
  flappy --seed 42
  flappy --settings ./settings.json
  flappy best`,
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", config.UserPath("settings.json"), "Path to settings file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagTuning, "tuning", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Directory with replacement images")
	rootCmd.PersistentFlags().StringVar(&flagBestPath, "best", "~/.flappy-lite/bsc.txt", "Path to best score file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to SQLite best score database (overrides --best)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", config.UserPath("flappy.log"), "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagImmortal, "immortal", false, "Disable collisions")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(bindingsCmd)
}

// openLogger opens the log file. The terminal belongs to the game, so
// nothing is logged to it.
func openLogger() (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

// openStore opens the best score backend picked by the flags.
func openStore(logger *log.Logger) (storage.BestScoreStore, error) {
	if flagDBPath != "" {
		db, err := storage.OpenSQLite(flagDBPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	fileStore, err := storage.OpenFile(flagBestPath, logger)
	if err != nil {
		return nil, err
	}
	return fileStore, nil
}

// openImages returns the image loader after checking every required image
// is present.
func openImages() (*assets.Loader, error) {
	var fsys fs.FS = assets.Default()
	if flagAssets != "" {
		fsys = os.DirFS(flagAssets)
	}
	loader := assets.NewLoader(fsys)
	if err := loader.Check(assets.Required...); err != nil {
		return nil, err
	}
	return loader, nil
}
