package schoolrun

import "github.com/vovakirdan/schoolrun/internal/core"

// level is one stage of a run. The session owns the input latch and feeds
// each level the sampled controls once per tick.
type level interface {
	number() int
	step(c core.Controls, out *cueList)
	phaseName() string
	outcome() core.Outcome
	// running reports whether the run clock should advance this tick.
	running() bool
	// finished reports that the level reached its goal.
	finished() bool
	// terminal reports that only a restart can continue.
	terminal() bool
}

// cueList collects the audio cues raised during one tick.
type cueList []core.Cue

func (l *cueList) add(kind core.CueKind) {
	*l = append(*l, core.NewCue(kind))
}
