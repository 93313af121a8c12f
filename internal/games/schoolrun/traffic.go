package schoolrun

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

// carColors cycles through the cars in spawn order.
var carColors = []core.Color{
	core.ColorRed,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorMagenta,
}

// Traffic owns the cars on the road. All cars drive right and wrap to the
// left edge once they leave the level.
type Traffic struct {
	cfg        config.TrafficConfig
	levelWidth float64
	pace       *config.TrafficPace
	rng        *rand.Rand
	cars       []Car
}

// NewTraffic creates the traffic for one run.
func NewTraffic(seed int64, cfg config.TrafficConfig, levelWidth float64, pace *config.TrafficPace) *Traffic {
	return &Traffic{
		cfg:        cfg,
		levelWidth: levelWidth,
		pace:       pace,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Spawn places the cars ahead of the bus, on the same plane as the bus.
func (t *Traffic) Spawn(bus Bus) {
	t.cars = t.cars[:0]

	spacing := t.cfg.Spacing
	if t.pace != nil {
		spacing = t.pace.CarGap(spacing)
	}

	start := bus.Front() + t.cfg.LeadGap
	for i := range t.cfg.Count {
		t.cars = append(t.cars, Car{
			X:     start + float64(i)*spacing + t.rng.Float64()*t.cfg.Jitter,
			Y:     bus.Y,
			W:     t.cfg.MinWidth + t.rng.Float64()*t.cfg.WidthJitter,
			H:     t.cfg.MinHeight + t.rng.Float64()*t.cfg.HeightJitter,
			Speed: t.cfg.MinSpeed + t.rng.Float64()*t.cfg.SpeedJitter,
			Color: carColors[i%len(carColors)],
		})
	}
}

// Update moves every car by one tick. ticks drives the speed progression.
func (t *Traffic) Update(ticks int) {
	for i := range t.cars {
		c := &t.cars[i]
		speed := c.Speed
		if t.pace != nil {
			speed = t.pace.CarSpeed(c.Speed, ticks)
		}
		c.X += speed
		if c.X > t.levelWidth+t.cfg.WrapMargin {
			c.X = -c.W - t.cfg.WrapMargin
		}
	}
}

// Blocks reports whether a car sits in the window just ahead of the bus front.
func (t *Traffic) Blocks(bus Bus, b config.BusConfig) bool {
	for _, c := range t.cars {
		if c.X > bus.Front()-b.BlockBehind &&
			c.X < bus.Front()+b.BlockAhead &&
			math.Abs(c.Y-bus.Y) < b.BlockVertical {
			return true
		}
	}
	return false
}

// Hit returns the first car overlapping box.
func (t *Traffic) Hit(box core.Box) (Car, bool) {
	for _, c := range t.cars {
		if box.Intersects(c.Box()) {
			return c, true
		}
	}
	return Car{}, false
}

// Cars returns the cars. The slice must not be modified.
func (t *Traffic) Cars() []Car {
	return t.cars
}

// Place replaces the cars. Used by tests and scripted scenes.
func (t *Traffic) Place(cars ...Car) {
	t.cars = append(t.cars[:0], cars...)
}
