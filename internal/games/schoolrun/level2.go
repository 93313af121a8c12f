package schoolrun

import (
	"fmt"
	"math"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

// Status is the state of the indoor level. Exactly one variant holds at a
// time: Active, Climbing, Dead or Won.
type Status interface {
	isStatus()
	String() string
}

// Active is free movement on a floor.
type Active struct{}

// Climbing is a staircase animation. It owns the player until it finishes.
type Climbing struct {
	Climb Climb
}

// Dead is the failure screen. Reason names where the player fell.
type Dead struct {
	Reason string
}

// Won means the classroom was reached.
type Won struct{}

func (Active) isStatus()   {}
func (Climbing) isStatus() {}
func (Dead) isStatus()     {}
func (Won) isStatus()      {}

func (Active) String() string   { return "active" }
func (Climbing) String() string { return "onStair" }
func (Dead) String() string     { return "dead" }
func (Won) String() string      { return "won" }

// indoor is Level 2: three floors joined by two staircases, with wet
// patches that make the player slide and gaps that are fatal.
type indoor struct {
	cfg       config.Level2Config
	status    Status
	player    Player
	wasWet    bool // wet contact on the previous tick
	fanfare   bool // fanfare latch
	lastStepX float64
	deaths    int
}

func newIndoor(cfg config.Level2Config) *indoor {
	l := &indoor{cfg: cfg}
	l.reset()
	return l
}

// reset rebuilds the level from its configuration.
func (l *indoor) reset() {
	p := l.cfg.Player
	l.status = Active{}
	l.player = Player{
		X:        p.StartX,
		W:        p.Width,
		H:        p.Height,
		Floor:    p.StartFloor,
		Grounded: true,
	}
	l.player.Y = l.surfaceY(p.StartFloor) - p.Height/2
	l.wasWet = false
	l.fanfare = false
	l.lastStepX = p.StartX
}

func (l *indoor) number() int { return 2 }

func (l *indoor) phaseName() string { return l.status.String() }

func (l *indoor) outcome() core.Outcome {
	switch l.status.(type) {
	case Dead:
		return core.OutcomeFell
	case Won:
		return core.OutcomeArrived
	default:
		return core.OutcomeNone
	}
}

func (l *indoor) running() bool {
	switch l.status.(type) {
	case Active, Climbing:
		return true
	default:
		return false
	}
}

func (l *indoor) finished() bool {
	_, won := l.status.(Won)
	return won
}

// terminal is only true for a win. Death waits for an action press.
func (l *indoor) terminal() bool { return l.finished() }

func (l *indoor) surfaceY(floor int) float64 {
	return l.cfg.Floors[floor].SurfaceY
}

func (l *indoor) floorName(floor int) string {
	if floor >= 0 && floor < len(l.cfg.FloorNames) {
		return l.cfg.FloorNames[floor]
	}
	return fmt.Sprintf("floor %d", floor)
}

func (l *indoor) step(c core.Controls, out *cueList) {
	switch st := l.status.(type) {
	case Dead:
		if c.ActionPressed {
			l.reset()
		}
		return
	case Won:
		return
	case Climbing:
		l.advanceClimb(st.Climb, out)
		return
	}

	l.move(c, out)

	if c.ActionPressed && !l.player.Sliding {
		if s, up, ok := l.nearStair(); ok {
			l.startClimb(s, up)
			return
		}
	}

	l.player.Y = l.surfaceY(l.player.Floor) - l.player.H/2

	l.checkWet(c)
	if l.checkGap(out) {
		return
	}
	l.checkGoal(out)
}

// move walks the player, or carries the slide when one is running.
func (l *indoor) move(c core.Controls, out *cueList) {
	p := &l.player
	if p.Sliding {
		p.X += p.SlideV
		p.SlideV *= l.cfg.Slide.Decay
		if math.Abs(p.SlideV) < l.cfg.Slide.Threshold {
			p.Sliding = false
			p.SlideV = 0
		}
	} else {
		moved := false
		if c.Right {
			p.X += l.cfg.Player.WalkSpeed
			moved = true
		}
		if c.Left {
			p.X -= l.cfg.Player.WalkSpeed
			moved = true
		}
		if moved {
			p.WalkPhase += 0.2
			if math.Abs(p.X-l.lastStepX) > l.cfg.Player.StepDistance {
				out.add(core.CueStep)
				l.lastStepX = p.X
			}
		}
	}
	p.X = core.ClampF(p.X, l.cfg.World.MinX, l.cfg.World.MaxX)
}

// nearStair finds a staircase usable from the player position.
// up is true at the bottom of a stair, false at its top.
func (l *indoor) nearStair() (config.StairConfig, bool, bool) {
	reach := l.cfg.Climb.EntryReach
	x, floor := l.player.X, l.player.Floor
	for _, s := range l.cfg.Stairs {
		if floor == s.From && x >= s.X-reach && x <= s.X+s.Width+reach {
			return s, true, true
		}
		top := s.X + s.Width
		if floor == s.To && x >= top-reach && x <= top+l.cfg.Climb.ExitOffset+reach {
			return s, false, true
		}
	}
	return config.StairConfig{}, false, false
}

func (l *indoor) startClimb(s config.StairConfig, up bool) {
	climb := Climb{Stair: s, Up: up}
	l.status = Climbing{Climb: climb}
	l.wasWet = false
	l.placeOnStair(climb)
}

// advanceClimb runs one tick of the stair animation.
func (l *indoor) advanceClimb(climb Climb, out *cueList) {
	climb.Hold++
	if climb.Hold >= l.cfg.Climb.HoldTicks {
		climb.Hold = 0
		climb.Step++
		out.add(core.CueStep)
	}

	if climb.Step >= l.cfg.Climb.Steps {
		l.finishClimb(climb)
		return
	}

	l.status = Climbing{Climb: climb}
	l.placeOnStair(climb)
}

// placeOnStair interpolates the player between the stair bottom
// (x, source surface) and top (x + width, destination surface).
func (l *indoor) placeOnStair(climb Climb) {
	s := climb.Stair
	t := climb.Progress(l.cfg.Climb.Steps)
	if !climb.Up {
		t = 1 - t
	}
	l.player.X = core.Lerp(s.X, s.X+s.Width, t)
	l.player.Y = core.Lerp(l.surfaceY(s.From), l.surfaceY(s.To), t) - l.player.H/2
}

func (l *indoor) finishClimb(climb Climb) {
	s := climb.Stair
	if climb.Up {
		l.player.Floor = s.To
		l.player.X = s.X + s.Width + l.cfg.Climb.ExitOffset
	} else {
		l.player.Floor = s.From
		l.player.X = s.X - l.cfg.Climb.ExitOffset
	}
	l.player.X = core.ClampF(l.player.X, l.cfg.World.MinX, l.cfg.World.MaxX)
	l.player.Y = l.surfaceY(l.player.Floor) - l.player.H/2
	l.lastStepX = l.player.X
	l.status = Active{}
}

// checkWet starts a slide on the tick the player steps onto a wet patch.
func (l *indoor) checkWet(c core.Controls) {
	wet := false
	for _, z := range l.cfg.WetPatches {
		if inZone(z, l.player.Floor, l.player.X) {
			wet = true
			break
		}
	}

	if wet && !l.wasWet && !l.player.Sliding {
		dir := 1.0
		if c.Left {
			dir = -1.0
		}
		l.player.Sliding = true
		l.player.SlideV = l.cfg.Slide.Impulse * dir
	}
	l.wasWet = wet
}

func (l *indoor) checkGap(out *cueList) bool {
	for _, z := range l.cfg.Gaps {
		if inZone(z, l.player.Floor, l.player.X) {
			l.status = Dead{Reason: fmt.Sprintf("You fell through a gap on the %s.", l.floorName(l.player.Floor))}
			l.player.Sliding = false
			l.player.SlideV = 0
			l.deaths++
			out.add(core.CueFail)
			return true
		}
	}
	return false
}

func (l *indoor) checkGoal(out *cueList) {
	room := l.cfg.Classroom
	if l.player.Floor != room.Floor || l.player.X < room.X || l.player.X > room.X+room.Width {
		return
	}
	l.status = Won{}
	if !l.fanfare {
		out.add(core.CueFanfare)
		l.fanfare = true
	}
}
