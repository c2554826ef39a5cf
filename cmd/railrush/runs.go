package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvoronin/railrush/internal/platform/tui"
	"github.com/nvoronin/railrush/internal/storage"
)

var flagPlain bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display recorded runs, best score first.

By default an interactive scrollable table is shown; use --plain for
plain-text output suitable for scripts.

Examples:
  railrush runs
  railrush runs --plain`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if !flagPlain {
		if err := tui.RunScoreboard(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error showing runs: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'railrush play' to set the first score!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-5s  %-6s  %s\n", "Rank", "Score", "Distance", "Sections", "Hit", "Missed", "Date")
	fmt.Printf("  %-4s  %-8s  %-10s  %-8s  %-5s  %-6s  %s\n", "----", "-----", "--------", "--------", "---", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-10.0f  %-8d  %-5d  %-6d  %s\n",
			i+1, r.Score, r.Distance, r.Sections, r.Struck, r.Avoided,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	best, err := store.BestScore()
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
