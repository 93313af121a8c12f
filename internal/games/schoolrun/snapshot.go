package schoolrun

import (
	"slices"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

// Snapshot is a read-only view of the scene. Both renderers draw from it
// and determinism tests compare it.
type Snapshot struct {
	Variant  string
	Level    int
	Ticks    int
	TickRate int
	Paused   bool
	Outcome  core.Outcome
	Prompt   string   // one-line hint shown at the top of the screen
	Banner   []string // centered overlay text, empty while playing

	Street *StreetSnapshot // set while Level 1 is active
	Indoor *IndoorSnapshot // set while Level 2 is active
}

// StreetSnapshot is the Level 1 part of a Snapshot.
type StreetSnapshot struct {
	Phase    Phase
	World    config.StreetWorld
	School   config.SchoolConfig
	Stairs   config.StreetStairs
	StairsX  float64
	Camera   float64
	Player   Player
	Bus      Bus
	Cars     []Car
	EngineOn bool
}

// IndoorSnapshot is the Level 2 part of a Snapshot.
type IndoorSnapshot struct {
	Status     Status
	World      config.IndoorWorld
	Player     Player
	Floors     []config.FloorConfig
	Stairs     []config.StairConfig
	WetPatches []config.ZoneConfig
	Gaps       []config.ZoneConfig
	Classroom  config.ClassroomConfig
	FloorNames []string
	FloorName  string
	NearStair  bool
	StairUp    bool
	Deaths     int
	ClimbSteps int
}

// Snapshot returns the current scene.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Variant:  s.variant.ID,
		Level:    s.variant.First,
		Ticks:    s.ticks,
		TickRate: s.runtime.TickRate,
		Paused:   s.paused,
	}
	if s.current == nil {
		return snap
	}

	snap.Level = s.current.number()
	snap.Outcome = s.current.outcome()

	switch s.current {
	case s.street:
		snap.Street = s.street.snapshot()
		snap.Prompt, snap.Banner = s.street.captions()
	case s.indoor:
		snap.Indoor = s.indoor.snapshot()
		snap.Prompt, snap.Banner = s.indoor.captions()
	}

	if s.paused {
		snap.Banner = []string{"Paused", "Press [P] to continue."}
	}
	return snap
}

func (l *street) snapshot() *StreetSnapshot {
	return &StreetSnapshot{
		Phase:    l.phase,
		World:    l.cfg.World,
		School:   l.cfg.School,
		Stairs:   l.cfg.Stairs,
		StairsX:  l.stairsX,
		Camera:   l.camera,
		Player:   l.player,
		Bus:      l.bus,
		Cars:     slices.Clone(l.traffic.Cars()),
		EngineOn: l.engineOn,
	}
}

func (l *street) captions() (string, []string) {
	switch l.phase {
	case PhaseStartPrompt:
		return "", []string{"Press [Space] to Start", "Use arrow keys to move"}
	case PhaseWaitingBoard:
		return "Press [Space] to board", nil
	case PhaseWaitingExit:
		return "Press [Space] to exit the bus", nil
	case PhaseGameOver:
		return "", []string{"Game Over!", "You were hit by a car.", "Press [R] to try again."}
	case PhaseAtSchool:
		if l.final {
			return "", []string{"You made it to school!", "Press [R] to play again."}
		}
	}
	return "", nil
}

func (l *indoor) snapshot() *IndoorSnapshot {
	_, up, near := l.nearStair()
	if _, active := l.status.(Active); !active {
		near = false
	}
	return &IndoorSnapshot{
		Status:     l.status,
		World:      l.cfg.World,
		Player:     l.player,
		Floors:     slices.Clone(l.cfg.Floors),
		Stairs:     slices.Clone(l.cfg.Stairs),
		WetPatches: slices.Clone(l.cfg.WetPatches),
		Gaps:       slices.Clone(l.cfg.Gaps),
		Classroom:  l.cfg.Classroom,
		FloorNames: slices.Clone(l.cfg.FloorNames),
		FloorName:  l.floorName(l.player.Floor),
		NearStair:  near,
		StairUp:    up,
		Deaths:     l.deaths,
		ClimbSteps: l.cfg.Climb.Steps,
	}
}

func (l *indoor) captions() (string, []string) {
	switch st := l.status.(type) {
	case Dead:
		return "", []string{"Ouch!", st.Reason, "Press [Space] to try again."}
	case Won:
		return "", []string{"You reached the classroom!", "Press [R] to play again."}
	case Active:
		if _, up, ok := l.nearStair(); ok && !l.player.Sliding {
			if up {
				return "Press [Space] to climb the stairs", nil
			}
			return "Press [Space] to go down the stairs", nil
		}
		if l.player.Sliding {
			return "Wet floor!", nil
		}
	}
	return "", nil
}
