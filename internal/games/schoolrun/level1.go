package schoolrun

import (
	"math"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

// Phase is a step of the street level.
type Phase int

const (
	PhaseStartPrompt Phase = iota
	PhaseWalkToBus
	PhaseWaitingBoard
	PhaseInBus
	PhaseWaitingExit
	PhaseWalkToSchool
	PhaseOnStairs
	PhaseAtSchool
	PhaseGameOver
)

// String returns the phase name used in logs and the HUD.
func (p Phase) String() string {
	switch p {
	case PhaseStartPrompt:
		return "startPrompt"
	case PhaseWalkToBus:
		return "walkToBus"
	case PhaseWaitingBoard:
		return "waitingBoard"
	case PhaseInBus:
		return "inBus"
	case PhaseWaitingExit:
		return "waitingExit"
	case PhaseWalkToSchool:
		return "walkToSchool"
	case PhaseOnStairs:
		return "onStairs"
	case PhaseAtSchool:
		return "atSchool"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// walking reports whether the player is on foot next to the traffic.
func (p Phase) walking() bool {
	return p == PhaseWalkToBus || p == PhaseWalkToSchool || p == PhaseOnStairs
}

// street is Level 1: walk to the bus, ride it past the traffic, get off
// and go down the stairs into the school.
type street struct {
	cfg        config.Level1Config
	final      bool // atSchool ends the run
	phase      Phase
	player     Player
	bus        Bus
	traffic    *Traffic
	stairsX    float64
	camera     float64
	frozen     bool // camera pinned on the school
	engineOn   bool
	fanfare    bool // fanfare latch
	lastStepX  float64
	ticks      int
	pace       *config.TrafficPace
}

func newStreet(cfg config.Level1Config, seed int64, pace *config.TrafficPace, final bool) *street {
	l := &street{
		cfg:        cfg,
		final:      final,
		pace:       pace,
		stairsX:    cfg.School.X - cfg.Stairs.Offset,
	}

	groundY := cfg.World.GroundY()
	l.player = Player{
		X:        cfg.Player.StartX,
		W:        cfg.Player.Width,
		H:        cfg.Player.Height,
		Y:        groundY - cfg.Player.Height/2,
		Grounded: true,
	}
	l.bus = Bus{
		X:      cfg.Bus.X,
		Y:      groundY - math.Round(cfg.Bus.Height/2),
		W:      cfg.Bus.Width,
		H:      cfg.Bus.Height,
		Speed:  cfg.Bus.Speed,
		DoorAt: cfg.Bus.DoorOffset,
	}
	l.traffic = NewTraffic(seed, cfg.Traffic, cfg.World.LevelWidth, pace)
	l.traffic.Spawn(l.bus)
	return l
}

func (l *street) number() int { return 1 }

func (l *street) phaseName() string { return l.phase.String() }

func (l *street) outcome() core.Outcome {
	switch {
	case l.phase == PhaseGameOver:
		return core.OutcomeHitByCar
	case l.phase == PhaseAtSchool && l.final:
		return core.OutcomeArrived
	default:
		return core.OutcomeNone
	}
}

func (l *street) running() bool {
	return l.phase != PhaseStartPrompt && l.phase != PhaseAtSchool && l.phase != PhaseGameOver
}

func (l *street) finished() bool { return l.phase == PhaseAtSchool }

func (l *street) terminal() bool {
	return l.phase == PhaseGameOver || (l.phase == PhaseAtSchool && l.final)
}

// boardSpot is where the player stops in front of the bus door.
func (l *street) boardSpot() float64 {
	return l.bus.DoorX() - l.cfg.Bus.BoardGap
}

// dropX is the bus position at which it stops next to the stairs.
func (l *street) dropX() float64 {
	return l.stairsX - (l.bus.W - l.cfg.Bus.DoorOffset) - l.cfg.Bus.StopOffset
}

// stairsEnd is the x coordinate past the last step.
func (l *street) stairsEnd() float64 {
	return l.stairsX + float64(l.cfg.Stairs.Steps)*l.cfg.Stairs.StepW
}

// stepIndex returns the stair step under x.
func (l *street) stepIndex(x float64) int {
	s := l.cfg.Stairs
	rel := core.ClampF(x-l.stairsX, 0, float64(s.Steps)*s.StepW-1)
	return int(math.Floor(rel / s.StepW))
}

func (l *street) maxCamera() float64 {
	return math.Max(0, l.cfg.School.X+l.cfg.School.Width-l.cfg.World.ViewportW+40)
}

func (l *street) step(c core.Controls, out *cueList) {
	if l.phase.walking() {
		if _, hit := l.traffic.Hit(l.player.Box()); hit {
			l.phase = PhaseGameOver
			l.stopEngine(out)
			out.add(core.CueFail)
		}
	}

	l.traffic.Update(l.ticks)
	if l.phase != PhaseStartPrompt {
		l.ticks++
	}

	if l.phase == PhaseStartPrompt {
		if c.ActionPressed {
			l.phase = PhaseWalkToBus
		}
		return
	}

	l.bus.animateDoor(l.cfg.Bus.DoorSpeed)

	switch l.phase {
	case PhaseWalkToBus, PhaseWaitingBoard:
		l.stepWalkToBus(c, out)
	case PhaseInBus:
		l.stepInBus(c, out)
	case PhaseWaitingExit:
		l.stopEngine(out)
		if c.ActionPressed {
			l.phase = PhaseWalkToSchool
			l.player.X = l.bus.Front() - l.cfg.Bus.ExitOffset
			l.player.Y = l.cfg.World.GroundY() - l.player.H/2
			l.bus.DoorOpen = false
		}
	case PhaseWalkToSchool:
		l.stepWalkToSchool(c, out)
	case PhaseOnStairs:
		l.stepOnStairs(c, out)
	case PhaseAtSchool:
		l.stopEngine(out)
	case PhaseGameOver:
		l.player.fall(l.cfg.Player.Gravity, l.cfg.World.GroundY())
	}

	l.clamp()
}

// walk moves the player by speed in the held directions.
func (l *street) walk(c core.Controls, speed float64) bool {
	moved := false
	if c.Right {
		l.player.X += speed
		l.player.WalkPhase += l.cfg.Player.StrideRight
		moved = true
	}
	if c.Left {
		l.player.X -= speed
		l.player.WalkPhase += l.cfg.Player.StrideLeft
		moved = true
	}
	return moved
}

// footstep raises a step cue every distance pixels walked.
func (l *street) footstep(distance float64, out *cueList) {
	if math.Abs(l.player.X-l.lastStepX) > distance {
		out.add(core.CueStep)
		l.lastStepX = l.player.X
	}
}

func (l *street) stepWalkToBus(c core.Controls, out *cueList) {
	if l.walk(c, l.cfg.Player.WalkSpeed) {
		l.footstep(l.cfg.Player.StepDistance, out)
	}

	spot := l.boardSpot()
	if l.player.X+l.cfg.Bus.BoardReach >= spot {
		l.player.X = spot
		l.phase = PhaseWaitingBoard
		l.bus.DoorOpen = true
	}

	if l.phase == PhaseWaitingBoard && c.ActionPressed {
		l.phase = PhaseInBus
		l.player.X = l.bus.X + l.cfg.Bus.SeatOffset
		l.player.Y = l.bus.Y
		l.bus.DoorOpen = false
		out.add(core.CueBoard)
	}
}

func (l *street) stepInBus(c core.Controls, out *cueList) {
	moved := false
	if c.Right && !l.traffic.Blocks(l.bus, l.cfg.Bus) {
		l.bus.X += l.bus.Speed
		moved = true
	}
	if c.Left {
		l.bus.X -= l.bus.Speed
		moved = true
	}
	l.bus.X = core.ClampF(l.bus.X, 0, l.cfg.World.LevelWidth-l.bus.W)

	if drop := l.dropX(); l.bus.X >= drop {
		l.bus.X = drop
		l.bus.DoorOpen = true
		l.phase = PhaseWaitingExit
		if !l.bus.arrivalPlayed {
			out.add(core.CueArrival)
			l.bus.arrivalPlayed = true
		}
	}

	l.player.X = l.bus.X + l.cfg.Bus.SeatOffset
	l.player.Y = l.bus.Y

	if moved && l.phase == PhaseInBus {
		l.startEngine(out)
	} else {
		l.stopEngine(out)
	}
}

func (l *street) stepWalkToSchool(c core.Controls, out *cueList) {
	if l.walk(c, l.cfg.Player.SchoolSpeed) {
		l.footstep(l.cfg.Player.StepDistance, out)
	}

	switch {
	case l.player.X >= l.stairsEnd()-4:
		l.player.Y = l.cfg.World.GroundY() - l.player.H/2
		if l.player.X >= l.cfg.School.DoorX()-l.cfg.School.DoorReach {
			l.arrive(out)
		}
	case l.player.X >= l.stairsX:
		l.phase = PhaseOnStairs
	}
}

func (l *street) stepOnStairs(c core.Controls, out *cueList) {
	l.walk(c, l.cfg.Player.StairSpeed)

	s := l.cfg.Stairs
	idx := l.stepIndex(l.player.X)
	l.player.Y = l.cfg.World.GroundY() + float64(idx)*s.StepH - l.player.H/2

	l.footstep(math.Max(8, s.StepW*0.45), out)

	if idx == s.Steps-1 && l.player.X >= l.cfg.School.DoorX()-l.cfg.School.DoorReach {
		l.arrive(out)
	}
}

func (l *street) arrive(out *cueList) {
	l.phase = PhaseAtSchool
	l.frozen = true
	l.camera = core.ClampF(l.cfg.School.X+l.cfg.School.Width/2-l.cfg.World.ViewportW/2, 0, l.maxCamera())
	l.stopEngine(out)
	if l.final && !l.fanfare {
		out.add(core.CueFanfare)
		l.fanfare = true
	}
}

func (l *street) startEngine(out *cueList) {
	if !l.engineOn {
		l.engineOn = true
		out.add(core.CueEngineStart)
	}
}

func (l *street) stopEngine(out *cueList) {
	if l.engineOn {
		l.engineOn = false
		out.add(core.CueEngineStop)
	}
}

// clamp keeps the player inside the level and updates the camera.
func (l *street) clamp() {
	maxX := l.cfg.School.X + l.cfg.School.Width - 10
	l.player.X = core.ClampF(l.player.X, l.cfg.Player.MinX, maxX)
	l.player.Y = core.ClampF(l.player.Y, 0, l.cfg.World.ViewportH)

	if !l.frozen {
		l.camera = core.ClampF(l.player.X-l.cfg.World.ViewportW/2, 0, l.maxCamera())
	}
}
