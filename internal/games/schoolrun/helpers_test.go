package schoolrun

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/schoolrun/internal/config"
	"github.com/vovakirdan/schoolrun/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newTestSession creates a session with the default tuning pinned.
func newTestSession(t *testing.T, v Variant, seed int64) *Session {
	t.Helper()
	s := New(v)
	s.UseConfig(config.DefaultGameConfig())
	s.Reset(testRuntime(seed))
	return s
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// press releases every key for one tick, then presses the action key.
func press(s *Session) []core.Cue {
	s.Step(frame())
	return s.Step(frame(core.ActionJump)).Cues
}

// holdUntil steps with in until done returns true. It fails after limit ticks.
func holdUntil(t *testing.T, s *Session, in core.InputFrame, limit int, done func() bool) []core.Cue {
	t.Helper()
	var cues []core.Cue
	for range limit {
		cues = append(cues, s.Step(in).Cues...)
		if done() {
			return cues
		}
	}
	require.FailNow(t, "condition not reached", "after %d ticks", limit)
	return nil
}

func countCues(cues []core.Cue, kind core.CueKind) int {
	n := 0
	for _, c := range cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// clearRoad removes all traffic from the street level.
func clearRoad(s *Session) {
	s.street.traffic.Place()
}

// rideToSchool plays Level 1 on an empty road up to the drop-off.
func rideToSchool(t *testing.T, s *Session) {
	t.Helper()
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })
	press(s)
	require.Equal(t, PhaseInBus, s.street.phase)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingExit })
}
