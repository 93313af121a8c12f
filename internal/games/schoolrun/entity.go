package schoolrun

import (
	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

// Player is the pupil walking to school. X and Y are the hitbox center.
type Player struct {
	X, Y      float64
	W, H      float64
	VY        float64
	Grounded  bool
	WalkPhase float64 // leg swing accumulator, advanced while walking

	// Indoor only
	Floor   int
	Sliding bool
	SlideV  float64
}

// Box returns the player's hitbox.
func (p Player) Box() core.Box {
	return core.CenterBox(p.X, p.Y, p.W, p.H)
}

// fall applies one tick of gravity and settles the player on groundY.
func (p *Player) fall(gravity, groundY float64) {
	p.VY += gravity
	p.Y += p.VY
	p.Grounded = false
	if p.Y+p.H/2 >= groundY {
		p.Y = groundY - p.H/2
		p.VY = 0
		p.Grounded = true
	}
}

// Bus is the school bus. X is its back edge, Y the vertical center line.
type Bus struct {
	X, Y     float64
	W, H     float64
	Speed    float64
	DoorOpen bool
	DoorProg float64 // 0 = closed, 1 = fully open
	DoorAt   float64 // door position measured back from the front edge

	arrivalPlayed bool
}

// Front returns the x coordinate of the bus front.
func (b Bus) Front() float64 {
	return b.X + b.W
}

// DoorX returns the x coordinate of the door.
func (b Bus) DoorX() float64 {
	return b.Front() - b.DoorAt
}

// animateDoor moves the door one tick toward its target state.
func (b *Bus) animateDoor(speed float64) {
	if b.DoorOpen {
		b.DoorProg += speed
	} else {
		b.DoorProg -= speed
	}
	b.DoorProg = core.ClampF(b.DoorProg, 0, 1)
}

// Car is a traffic car. X, Y is its top-left corner.
type Car struct {
	X, Y  float64
	W, H  float64
	Speed float64 // base speed before difficulty scaling
	Color core.Color
}

// Box returns the car's hitbox.
func (c Car) Box() core.Box {
	return core.Box{X: c.X, Y: c.Y, W: c.W, H: c.H}
}

// Climb is a staircase animation in progress.
type Climb struct {
	Stair config.StairConfig
	Up    bool
	Step  int // completed steps
	Hold  int // ticks spent on the current step
}

// Progress returns how far along the stair the climb is, in [0, 1].
func (c Climb) Progress(steps int) float64 {
	if steps <= 0 {
		return 1
	}
	return core.ClampF(float64(c.Step)/float64(steps), 0, 1)
}

func inZone(z config.ZoneConfig, floor int, x float64) bool {
	return z.Floor == floor && x >= z.XMin && x <= z.XMax
}
