package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/platform/tui"
)

var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "List the key bindings",
	Long: `Shows the keys bound to each action, as read from the settings file.
A missing settings file is created with the defaults.`,
	Args: cobra.NoArgs,
	Run:  runBindings,
}

func runBindings(cmd *cobra.Command, args []string) {
	settings, err := config.LoadSettings(flagSettings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	bindings := tui.NewKeyMap(settings).Bindings()

	fmt.Printf("Key bindings (%s):\n", flagSettings)
	fmt.Println()

	// Calculate column widths
	maxLen := len("Action")
	for _, b := range bindings {
		maxLen = max(maxLen, len(b.Action.String()))
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxLen, "Action", "Keys")
	fmt.Printf("  %-*s  %s\n", maxLen, "------", "----")

	for _, b := range bindings {
		keys := "(unbound)"
		if b.Binding.Enabled() {
			keys = strings.ReplaceAll(b.Binding.Help().Key, "/", ", ")
		}
		fmt.Printf("  %-*s  %s\n", maxLen, b.Action.String(), keys)
	}

	fmt.Println()
	fmt.Println("Edit the settings file to rebind; Tk-style names such as <Up> and <space> work too.")
}
