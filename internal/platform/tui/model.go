package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/registry"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

// Options carries the optional collaborators of a game run.
type Options struct {
	Store     *storage.Store  // nil disables run history
	Logger    *log.Logger     // nil discards logs
	Watcher   *config.Watcher // nil disables hot reload
	Sink      core.CueSink    // nil discards audio cues
	FixedSeed bool            // keep the seed across restarts
}

// detailer is implemented by games that can describe how a run ended.
type detailer interface {
	OutcomeDetail() string
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	opts      Options
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	holds     *HoldTracker
	gameState core.GameState
	restart   bool // R pressed since the last tick
	quitting  bool
	runs      *storage.RunTracker
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
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
		opts.Sink = core.NopSink{}
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:      opts,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		holds:     NewHoldTracker(cfg.TickRate),
		runs:      storage.NewRunTracker(opts.Store),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.opts.Watcher != nil {
		cmds = append(cmds, waitForReload(m.opts.Watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case reloadMsg:
		return m.handleReload(msg)

	case reloadErrMsg:
		m.opts.Logger.Warn("config watch error", "err", msg.err)
		return m, waitForReload(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.restart = true
		}
	default:
		m.holds.Press(action)
	}

	return m, nil
}

// handleResize keeps the run going; the scene is scaled to the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.restart && m.gameState.GameOver {
		m.resetRun("restart")
		return m, tickCmd(m.config.TickRate)
	}
	m.restart = false

	prev := m.gameState
	result := m.game.Step(m.holds.Frame())
	m.gameState = result.State

	for _, c := range result.Cues {
		m.opts.Logger.Debug("cue", "kind", c.Kind)
		m.opts.Sink.Play(c)
	}

	if prev.Phase != m.gameState.Phase || prev.Level != m.gameState.Level {
		m.opts.Logger.Debug("phase", "level", m.gameState.Level, "phase", m.gameState.Phase, "ticks", m.gameState.Ticks)
	}

	m.recordRun()

	return m, tickCmd(m.config.TickRate)
}

// handleReload restarts the run with the changed tuning.
func (m Model) handleReload(msg reloadMsg) (tea.Model, tea.Cmd) {
	if _, err := config.Load(msg.path); err != nil {
		m.opts.Logger.Warn("config reload rejected", "path", msg.path, "err", err)
	} else {
		m.opts.Logger.Info("config reloaded", "path", msg.path)
		m.resetRun("reload")
	}
	return m, waitForReload(m.opts.Watcher)
}

func (m *Model) resetRun(reason string) {
	if !m.opts.FixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.holds.Release()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runs.Rearm()
	m.restart = false
	m.opts.Logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed, "reason", reason)
}

func (m *Model) recordRun() {
	var detail func() string
	if d, ok := m.game.(detailer); ok {
		detail = d.OutcomeDetail
	}

	entry, done, err := m.runs.Observe(m.game.ID(), m.gameState, detail)
	if !done {
		return
	}
	m.opts.Logger.Info("run finished",
		"game", entry.GameID,
		"outcome", entry.Outcome,
		"seconds", fmt.Sprintf("%.1f", entry.Seconds(m.config.TickRate)),
	)
	if err != nil {
		m.opts.Logger.Warn("could not save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".schoolrun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
