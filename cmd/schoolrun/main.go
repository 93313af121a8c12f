// schoolrun is a small side-scrolling game: walk to the bus, ride it past
// the traffic and get to class. It runs in the terminal or in a window.
//
// Usage:
//
//	schoolrun list               - List the playable variants
//	schoolrun play [variant]     - Play in the terminal
//	schoolrun window [variant]   - Play in a window with sound
//	schoolrun menu               - Pick a variant interactively
//	schoolrun times <variant>    - Show the best times for a variant
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible traffic
//	--db <path>          - Set database path (default: ~/.schoolrun/runs.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-file <path>    - Log destination
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/vovakirdan/schoolrun/internal/games/schoolrun"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "schoolrun",
	Short: "School Run - get to class on time",
	Long: `School Run is a small side-scrolling game. Walk to the bus stop,
ride the bus past the traffic, get off and walk down the stairs into
school. The longer variant continues inside, across three floors of
wet patches and broken floorboards, to the classroom.

Available commands:
  list     - Show all playable variants
  play     - Play in the terminal
  window   - Play in a window with sound
  menu     - Interactive variant picker
  times    - View best times

Examples:
  schoolrun list
  schoolrun play
  schoolrun play indoor --difficulty hard
  schoolrun window schoolrun2 --watch --config ./schoolrun.yaml
  schoolrun times schoolrun`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.schoolrun/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (terminal default: ~/.schoolrun/schoolrun.log, window default: stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(timesCmd)
}
