package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/games/schoolrun"
	"github.com/vovakirdan/schoolrun/internal/registry"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

// Flags shared by the play, window and menu commands.
var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
)

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart the run when the config file changes")
}

// applyGameFlags hands the tuning flags to the game before it is created.
func applyGameFlags(logger *log.Logger) error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	schoolrun.SetConfigPath(flagConfig)
	schoolrun.SetDifficultyPreset(flagDifficulty)

	_, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", source, err)
	}
	logger.Info("config loaded", "source", source, "difficulty", flagDifficulty)
	return nil
}

// variantArg returns the variant named on the command line, or the full
// two-level run.
func variantArg(args []string) (string, error) {
	id := schoolrun.VariantFull.ID
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("%w %q; run 'schoolrun list' to see the variants", registry.ErrUnknownGame, id)
	}
	return id, nil
}

// runtimeConfig sizes the screen from the terminal when there is one.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run history. The game runs without it when the
// database is unavailable.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "db", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

// openWatcher starts watching the config file when --watch is set.
func openWatcher(logger *log.Logger) (*config.Watcher, error) {
	if !flagWatch {
		return nil, nil
	}

	_, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return nil, err
	}
	if source == config.SourceEmbedded {
		return nil, fmt.Errorf("--watch needs a config file; pass --config or create ~/.schoolrun/configs/%s", config.FileName)
	}

	w, err := config.NewWatcher(source)
	if err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", source, err)
	}
	logger.Info("watching config", "path", w.Path())
	return w, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
