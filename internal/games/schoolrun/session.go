// Package schoolrun implements the School Run game: walk to the bus, ride
// it past the traffic, go down the stairs into school and, in the longer
// variant, cross a three-floor building to reach the classroom.
package schoolrun

import (
	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/registry"
)

// Variant selects which levels a session plays.
type Variant struct {
	ID    string
	Title string
	First int // first level, 1 or 2
	Last  int // last level, 1 or 2
}

// Registered variants.
var (
	VariantStreet = Variant{ID: "schoolrun", Title: "School Run", First: 1, Last: 1}
	VariantFull   = Variant{ID: "schoolrun2", Title: "School Run: Both Levels", First: 1, Last: 2}
	VariantIndoor = Variant{ID: "indoor", Title: "School Run: Indoor", First: 2, Last: 2}
)

// Variants lists every playable variant in menu order.
func Variants() []Variant {
	return []Variant{VariantStreet, VariantFull, VariantIndoor}
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the
// config file's difficulty.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Session is one playthrough. All mutable game state lives here and is
// rebuilt by Reset.
type Session struct {
	variant    Variant
	runtime    core.RuntimeConfig
	cfg        config.GameConfig
	pinned     bool // cfg was supplied by UseConfig
	pace       *config.TrafficPace
	input      core.InputLatch
	lastInput  core.InputFrame

	street  *street
	indoor  *indoor
	current level

	paused bool
	ticks  int
}

// New creates a session for the given variant.
func New(v Variant) *Session {
	return &Session{variant: v}
}

// UseConfig pins the tuning so Reset stops loading it from disk.
func (s *Session) UseConfig(cfg config.GameConfig) {
	s.cfg = cfg
	s.pinned = true
}

// Config returns the tuning of the current run.
func (s *Session) Config() config.GameConfig {
	return s.cfg
}

// Variant returns the variant being played.
func (s *Session) Variant() Variant {
	return s.variant
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	return s.variant.ID
}

// Title returns the display name for this game.
func (s *Session) Title() string {
	return s.variant.Title
}

// Reset initializes or restarts the run.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime

	if !s.pinned {
		// Load game config
		cfg, err := config.Load(configPath)
		if err != nil {
			cfg = config.DefaultGameConfig()
		}

		// Apply difficulty preset if set
		config.ApplyPreset(&cfg, difficultyPreset)
		s.cfg = cfg
	}

	s.pace = config.NewTrafficPace(s.cfg.Difficulty)
	s.input.Reset(s.lastInput)
	s.paused = false
	s.ticks = 0
	s.street = nil
	s.indoor = nil

	if s.variant.First == 1 {
		s.street = newStreet(s.cfg.Level1, runtime.Seed, s.pace, s.variant.Last == 1)
		s.current = s.street
	} else {
		s.enterIndoor()
	}
}

func (s *Session) enterIndoor() {
	s.indoor = newIndoor(s.cfg.Level2)
	s.current = s.indoor
}

// Step advances the run by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if s.current == nil {
		s.Reset(s.runtime)
	}
	s.lastInput = in.Clone()

	c := s.input.Sample(in)
	if c.PausePressed && !s.current.terminal() {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	var cues cueList
	s.current.step(c, &cues)

	// atSchool is a pass-through when the indoor level follows
	if s.current == s.street && s.street.finished() && s.variant.Last == 2 {
		s.enterIndoor()
	}

	if s.current.running() {
		s.ticks++
	}

	return core.StepResult{State: s.State(), Cues: cues}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	if s.current == nil {
		return core.GameState{Level: s.variant.First}
	}
	return core.GameState{
		Level:    s.current.number(),
		Phase:    s.current.phaseName(),
		Ticks:    s.ticks,
		Outcome:  s.current.outcome(),
		GameOver: s.current.terminal(),
		Paused:   s.paused,
	}
}

// OutcomeDetail describes how the run ended, or "" while it is in progress.
func (s *Session) OutcomeDetail() string {
	switch {
	case s.current == nil:
		return ""
	case s.current == s.indoor:
		if d, ok := s.indoor.status.(Dead); ok {
			return d.Reason
		}
	case s.street.phase == PhaseGameOver:
		return "You were hit by a car."
	}
	return ""
}

// Register all variants with the game registry.
func init() {
	for _, v := range Variants() {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
