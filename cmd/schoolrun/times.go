package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/schoolrun/internal/registry"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
)

var timesCmd = &cobra.Command{
	Use:   "times <variant>",
	Short: "Show the best times for a variant",
	Long: `Display the fastest runs that reached school for the given variant,
or the latest runs of any outcome with --recent.

Examples:
  schoolrun times schoolrun
  schoolrun times schoolrun2 --limit 20
  schoolrun times indoor --recent`,
	Args: cobra.ExactArgs(1),
	Run:  runTimes,
}

func init() {
	timesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	timesCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the fastest")
}

func runTimes(cmd *cobra.Command, args []string) {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("%v\nRun 'schoolrun list' to see the variants.", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening run history: %v", err)
	}
	defer store.Close()

	var runs []storage.RunEntry
	if flagRecent {
		runs, err = store.RecentRuns(gameID, flagLimit)
	} else {
		runs, err = store.BestRuns(gameID, flagLimit)
	}
	if err != nil {
		store.Close()
		fatal("retrieving runs: %v", err)
	}

	heading := "Best Times"
	if flagRecent {
		heading = "Recent Runs"
	}
	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'schoolrun play %s' to set the first time!\n", gameID)
		return
	}

	t := newTable("#", "Time", "Result", "When", "Detail")
	for i, e := range runs {
		rank := fmt.Sprint(i + 1)
		if flagRecent {
			rank = ""
		}
		t.Row(rank, fmt.Sprintf("%.1fs", e.Seconds(flagFPS)), string(e.Outcome), e.CreatedAt.Format("2006-01-02 15:04"), e.Detail)
	}
	fmt.Println(t)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d   Arrived: %d   Hit by car: %d   Fell: %d\n",
		stats.Runs, stats.Arrivals, stats.HitByCar, stats.Falls)
	if stats.Arrivals > 0 {
		fmt.Printf("Best: %.1fs   Average: %.1fs\n",
			storage.RunEntry{Ticks: stats.BestTicks}.Seconds(flagFPS),
			stats.AvgTicks/float64(max(1, flagFPS)))
	}
}
