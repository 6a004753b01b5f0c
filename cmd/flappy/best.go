package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best score",
	Long: `Print the best score kept in the best score file (or the SQLite
database given with --db).

Examples:
  flappy best
  flappy best --reset
  flappy best --db ~/.flappy-lite/scores.db`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset the best score to 0")
}

func runBest(cmd *cobra.Command, args []string) error {
	store, err := openStore(log.New(os.Stderr))
	if err != nil {
		return fmt.Errorf("open best score store: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.SaveBestScore(0); err != nil {
			return fmt.Errorf("reset best score: %w", err)
		}
		fmt.Println("Best score reset.")
		return nil
	}

	best, err := store.LoadBestScore()
	if err != nil {
		return fmt.Errorf("read best score: %w", err)
	}

	fmt.Printf("Best Score: %d\n", best)
	if best == 0 {
		fmt.Println()
		fmt.Println("Run 'flappy' to set the first best score!")
	}
	return nil
}
