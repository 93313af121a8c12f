package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/platform/tui"
	"github.com/vovakirdan/schoolrun/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Start playing the given variant in the terminal. Without a variant,
both levels are played in a row.

Controls:
  Left/Right, A/D  - Walk
  Space            - Start, board, exit the bus, take the stairs, retry
  P/Esc            - Pause
  R                - Restart (after the run is over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Traffic starts slow, speeds up over the run
  normal - Starts at 30% difficulty
  hard   - Starts at 70% difficulty, with an extra car
  fixed  - No progression, stays at the config's initial level

Examples:
  schoolrun play
  schoolrun play schoolrun --difficulty hard
  schoolrun play indoor --config ./schoolrun.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := variantArg(args)
	if err != nil {
		fatal("%v", err)
	}

	logger, logs, err := newLogger(true)
	if err != nil {
		fatal("%v", err)
	}
	defer logs.Close()

	if err := applyGameFlags(logger); err != nil {
		fatal("%v", err)
	}

	watcher, err := openWatcher(logger)
	if err != nil {
		fatal("%v", err)
	}
	if watcher != nil {
		defer watcher.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Store:     store,
		Logger:    logger,
		Watcher:   watcher,
		Sink:      core.NopSink{},
		FixedSeed: flagSeed != 0,
	})
	if runErr != nil {
		logger.Error("game stopped", "err", runErr)
		fatal("running game: %v", runErr)
	}
}
