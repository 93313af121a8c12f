// Package window runs School Run in a desktop window using ebiten:
// vector drawing from the scene snapshot, held-key input and
// synthesized sound.
package window

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/games/schoolrun"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

// Options carries the optional collaborators of a window run.
type Options struct {
	Store     *storage.Store  // nil disables run history
	Logger    *log.Logger     // nil discards logs
	Watcher   *config.Watcher // nil disables hot reload
	Sink      core.CueSink    // nil plays cues through a ToneSink; core.NopSink{} keeps audio closed
	FixedSeed bool            // keep the seed across restarts
	Scale     float64         // window size relative to the scene, default 1
	Muted     bool            // start with sound off
}

// Keys is the keyboard state sampled once per tick.
type Keys struct {
	Frame   core.InputFrame
	Restart bool // R pressed this tick
	Mute    bool // M pressed this tick
	Quit    bool
}

// readKeyboard samples ebiten's keyboard. Movement, action and pause are
// level signals; the session does its own edge detection.
func readKeyboard() Keys {
	f := core.NewInputFrame()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		f.Set(core.ActionLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		f.Set(core.ActionRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		f.Set(core.ActionJump)
	}
	if ebiten.IsKeyPressed(ebiten.KeyP) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		f.Set(core.ActionPause)
	}

	return Keys{
		Frame:   f,
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Mute:    inpututil.IsKeyJustPressed(ebiten.KeyM),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}

// Game adapts a session to ebiten.Game.
type Game struct {
	session *schoolrun.Session
	cfg     core.RuntimeConfig
	opts    Options
	keys    func() Keys
	runs    *storage.RunTracker
	state   core.GameState
	muted   bool
	width   int
	height  int
	scene   *renderer
}

// NewGame creates the adapter and starts the first run.
func NewGame(session *schoolrun.Session, cfg core.RuntimeConfig, opts Options) *Game {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sink == nil {
		opts.Sink = NewToneSink(opts.Logger)
	}

	g := &Game{
		session: session,
		cfg:     cfg,
		opts:    opts,
		keys:    readKeyboard,
		runs:    storage.NewRunTracker(opts.Store),
		scene:   newRenderer(),
	}
	if opts.Muted {
		g.toggleMute()
	}
	g.resetRun("start")
	return g
}

// State returns the state after the last tick.
func (g *Game) State() core.GameState {
	return g.state
}

// Update advances the simulation by one tick.
func (g *Game) Update() error {
	k := g.keys()
	if k.Quit {
		return ebiten.Termination
	}
	if k.Mute {
		g.toggleMute()
	}

	g.pollReload()

	if k.Restart && g.state.GameOver {
		g.resetRun("restart")
		return nil
	}

	prev := g.state
	result := g.session.Step(k.Frame)
	g.state = result.State

	for _, c := range result.Cues {
		g.opts.Logger.Debug("cue", "kind", c.Kind)
		g.opts.Sink.Play(c)
	}

	if prev.Phase != g.state.Phase || prev.Level != g.state.Level {
		g.opts.Logger.Debug("phase", "level", g.state.Level, "phase", g.state.Phase, "ticks", g.state.Ticks)
	}

	g.recordRun()
	return nil
}

// Draw paints the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.draw(screen, g.session.Snapshot())
}

// Layout keeps the logical screen at the scene size; ebiten scales it to
// the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

func (g *Game) toggleMute() {
	g.muted = !g.muted
	if m, ok := g.opts.Sink.(interface{ SetMuted(bool) }); ok {
		m.SetMuted(g.muted)
	}
	g.opts.Logger.Info("sound", "muted", g.muted)
}

// pollReload applies a pending config change without blocking the frame.
func (g *Game) pollReload() {
	w := g.opts.Watcher
	if w == nil {
		return
	}

	select {
	case path, ok := <-w.Events:
		if !ok {
			g.opts.Watcher = nil
			return
		}
		if _, err := config.Load(path); err != nil {
			g.opts.Logger.Warn("config reload rejected", "path", path, "err", err)
			return
		}
		g.opts.Logger.Info("config reloaded", "path", path)
		g.resetRun("reload")
	case err, ok := <-w.Errors:
		if !ok {
			g.opts.Watcher = nil
			return
		}
		g.opts.Logger.Warn("config watch error", "err", err)
	default:
	}
}

func (g *Game) resetRun(reason string) {
	if reason != "start" && !g.opts.FixedSeed {
		g.cfg.Seed = time.Now().UnixNano()
	}
	g.session.Reset(g.cfg)
	g.state = g.session.State()
	g.runs.Rearm()

	// Both levels share the viewport size
	world := g.session.Config().Level1.World
	g.width, g.height = int(world.ViewportW), int(world.ViewportH)

	g.opts.Logger.Info("run started", "game", g.session.ID(), "seed", g.cfg.Seed, "reason", reason)
}

func (g *Game) recordRun() {
	entry, done, err := g.runs.Observe(g.session.ID(), g.state, g.session.OutcomeDetail)
	if !done {
		return
	}
	g.opts.Logger.Info("run finished",
		"game", entry.GameID,
		"outcome", entry.Outcome,
		"seconds", fmt.Sprintf("%.1f", entry.Seconds(g.cfg.TickRate)),
	)
	if err != nil {
		g.opts.Logger.Warn("could not save run", "err", err)
	}
}

// ErrNoAudio is returned by Run when the sound device failed under a
// ToneSink. The audio context lives for the whole process, so the caller
// has to start over with core.NopSink{} in a fresh process.
var ErrNoAudio = errors.New("window: audio device unavailable")

// audioFailure reports whether a RunGame error came from the sound backend.
func audioFailure(err error) bool {
	return err != nil && strings.Contains(err.Error(), "oto:")
}

// Run opens the window and plays until it is closed or Q is pressed.
func Run(session *schoolrun.Session, cfg core.RuntimeConfig, opts Options) error {
	g := NewGame(session, cfg, opts)
	_, tones := g.opts.Sink.(*ToneSink)
	if c, ok := g.opts.Sink.(io.Closer); ok {
		defer c.Close()
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowSize(int(float64(g.width)*scale), int(float64(g.height)*scale))
	ebiten.SetWindowTitle(session.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.cfg.TickRate)

	err := ebiten.RunGame(g)
	switch {
	case err == nil, errors.Is(err, ebiten.Termination):
		return nil
	case tones && audioFailure(err):
		return fmt.Errorf("%w: %v", ErrNoAudio, err)
	default:
		return fmt.Errorf("window: %w", err)
	}
}
