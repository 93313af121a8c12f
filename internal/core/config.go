package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic traffic
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome names how a run ended. Empty while the run is in progress.
type Outcome string

const (
	OutcomeNone     Outcome = ""
	OutcomeArrived  Outcome = "arrived"
	OutcomeHitByCar Outcome = "hit_by_car"
	OutcomeFell     Outcome = "fell"
)

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Level    int     // 1 or 2
	Phase    string  // Name of the active phase
	Ticks    int     // Simulated ticks since the run started, excluding pauses
	Outcome  Outcome // Set once the run has finished or the player has died
	GameOver bool    // Terminal: only a restart continues
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Cues  []Cue // Audio cues raised during this tick, in order
}
