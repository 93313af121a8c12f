package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/platform/tui"
	"github.com/vovakirdan/schoolrun/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Best times
  Q            - Quit

Examples:
  schoolrun menu
  schoolrun menu --fps 30
  schoolrun menu --db ./runs.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
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

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "err", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoiceQuit:
			return
		case tui.ChoiceTimes:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
			if sbErr != nil {
				logger.Error("scoreboard failed", "err", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "err", err)
			continue
		}

		// Fresh traffic for each pick unless the seed is fixed
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, tui.Options{
			Store:     store,
			Logger:    logger,
			Watcher:   watcher,
			Sink:      core.NopSink{},
			FixedSeed: flagSeed != 0,
		}); err != nil {
			logger.Error("game stopped", "err", err)
		}
	}
}
