// railrush is a lane-switching rail-runner that plays in the terminal.
//
// Usage:
//
//	railrush play            - Start a run
//	railrush serve           - Start SSH server for remote play
//	railrush runs            - Show recorded runs
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.railrush/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "railrush",
	Short: "Rail Rush - a lane-switching rail runner for your terminal",
	Long: `Rail Rush is a terminal arcade game: drive a rail vehicle down an
endless track, switch lanes around barriers, and watch the speed climb
section after section.

Available commands:
  play     - Start a run
  serve    - Start SSH server for remote play
  runs     - View recorded runs

Examples:
  railrush play
  railrush play --seed 42
  railrush serve --ssh :2222
  railrush runs`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.railrush/runs.db", "Path to runs database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
