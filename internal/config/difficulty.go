package config

// TrafficPace turns a DifficultyConfig into car speeds and gaps.
//
// The level starts at InitialLevel and, with time progression, climbs
// linearly to 1 over MaxAt ticks.
type TrafficPace struct {
	start  float64 // level at tick 0, in [0, 1]
	rampAt int     // ticks to reach level 1; 0 means the level never moves
	scale  ScalingConfig
}

// NewTrafficPace builds the pace for one run.
func NewTrafficPace(cfg DifficultyConfig) *TrafficPace {
	p := &TrafficPace{start: unit(cfg.InitialLevel), scale: cfg.Scaling}
	if cfg.Enabled && cfg.Progression.Type == "time" {
		p.rampAt = max(1, cfg.Progression.MaxAt)
	}
	return p
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (p *TrafficPace) SetInitialLevel(level float64) {
	p.start = unit(level)
}

// Progressing reports whether the level rises during a run.
func (p *TrafficPace) Progressing() bool {
	return p.rampAt > 0
}

// Level returns the difficulty level after ticks.
func (p *TrafficPace) Level(ticks int) float64 {
	if !p.Progressing() {
		return p.start
	}
	done := unit(float64(ticks) / float64(p.rampAt))
	return p.start + done*(1-p.start)
}

// CarSpeed scales a base speed up to base*(1+speed_multiplier) at level 1.
func (p *TrafficPace) CarSpeed(base float64, ticks int) float64 {
	return base * (1 + p.Level(ticks)*p.scale.SpeedMultiplier)
}

// CarGap shortens the spawn gap by the starting level. Cars keep their
// gap once placed, so progression does not apply here.
func (p *TrafficPace) CarGap(base float64) float64 {
	return max(p.scale.MinSpacing, base-p.start*p.scale.SpacingReduction)
}

func unit(v float64) float64 {
	return min(1, max(0, v))
}
