package main

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/games/schoolrun"
	"github.com/vovakirdan/schoolrun/internal/platform/window"
	"github.com/vovakirdan/schoolrun/internal/registry"
)

var (
	flagScale   float64
	flagMute    bool
	flagNoSound bool
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a window with sound",
	Long: `Open a window and play the given variant with vector graphics and
synthesized sound. Without a variant, both levels are played in a row.

Controls:
  Left/Right, A/D  - Walk
  Space            - Start, board, exit the bus, take the stairs, retry
  P/Esc            - Pause
  R                - Restart (after the run is over)
  M                - Mute
  Q                - Quit

Examples:
  schoolrun window
  schoolrun window schoolrun --scale 1.5
  schoolrun window --config ./schoolrun.yaml --watch --log-level debug
  schoolrun window --no-sound

Without a sound device the window restarts itself with --no-sound.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	addGameFlags(windowCmd)
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size relative to the 960x540 scene")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	windowCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Never open the audio device")
}

func runWindow(cmd *cobra.Command, args []string) {
	gameID, err := variantArg(args)
	if err != nil {
		fatal("%v", err)
	}

	logger, logs, err := newLogger(false)
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
	session, ok := game.(*schoolrun.Session)
	if !ok {
		fatal("variant %q cannot be drawn in a window", gameID)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := window.Options{
		Store:     store,
		Logger:    logger,
		Watcher:   watcher,
		FixedSeed: flagSeed != 0,
		Scale:     flagScale,
		Muted:     flagMute,
	}
	if flagNoSound {
		opts.Sink = core.NopSink{}
	}

	runErr := window.Run(session, runtimeConfig(), opts)
	if errors.Is(runErr, window.ErrNoAudio) && !flagNoSound {
		logger.Warn("no sound device, restarting without sound", "err", runErr)
		if err := relaunchSilent(); err != nil {
			fatal("restarting without sound: %v", err)
		}
		return
	}
	if runErr != nil {
		logger.Error("window closed", "err", runErr)
		fatal("running game: %v", runErr)
	}
}

// relaunchSilent runs this command again with --no-sound. Ebiten keeps
// one audio context per process, so a failed device cannot be dropped
// in place.
func relaunchSilent() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	child := exec.Command(exe, append(os.Args[1:], "--no-sound")...)
	child.Stdin, child.Stdout, child.Stderr = os.Stdin, os.Stdout, os.Stderr
	return child.Run()
}
