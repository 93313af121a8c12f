package schoolrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/schoolrun/internal/core"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", Active{}.String())
	assert.Equal(t, "onStair", Climbing{}.String())
	assert.Equal(t, "dead", Dead{}.String())
	assert.Equal(t, "won", Won{}.String())
}

func TestIndoorStartsActive(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)

	require.NotNil(t, s.indoor)
	assert.Equal(t, Active{}, s.indoor.status)
	assert.Equal(t, 740.0, s.indoor.player.X)
	assert.Equal(t, 0, s.indoor.player.Floor)
	assert.Equal(t, 2, s.State().Level)
}

func TestClimbScenario(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)

	holdUntil(t, s, frame(core.ActionLeft), 1000, func() bool { return s.indoor.player.X <= 170 })

	snap := s.Snapshot()
	require.NotNil(t, snap.Indoor)
	assert.True(t, snap.Indoor.NearStair, "stair A should be in reach at x=%v", s.indoor.player.X)
	assert.True(t, snap.Indoor.StairUp)
	assert.Equal(t, "Press [Space] to climb the stairs", snap.Prompt)

	press(s)
	climbing, ok := s.indoor.status.(Climbing)
	require.True(t, ok, "action press next to the stair starts a climb")
	assert.True(t, climbing.Climb.Up)

	cfg := s.cfg.Level2
	total := cfg.Climb.Steps * cfg.Climb.HoldTicks

	var cues []core.Cue
	lastY := s.indoor.player.Y
	for range total - 1 {
		// Holding keys during the climb changes nothing
		cues = append(cues, s.Step(frame(core.ActionRight, core.ActionJump)).Cues...)
		_, still := s.indoor.status.(Climbing)
		require.True(t, still)
		assert.LessOrEqual(t, s.indoor.player.Y, lastY, "climbing moves up")
		lastY = s.indoor.player.Y
	}
	cues = append(cues, s.Step(frame()).Cues...)

	stairA := cfg.Stairs[0]
	assert.Equal(t, Active{}, s.indoor.status)
	assert.Equal(t, 1, s.indoor.player.Floor)
	assert.Equal(t, stairA.X+stairA.Width+14, s.indoor.player.X)
	assert.Equal(t, cfg.Floors[1].SurfaceY-s.indoor.player.H/2, s.indoor.player.Y)
	assert.Equal(t, cfg.Climb.Steps, countCues(cues, core.CueStep))
}

func TestDescendScenario(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.Floor = 1
	s.indoor.player.X = 174

	snap := s.Snapshot()
	require.True(t, snap.Indoor.NearStair)
	assert.False(t, snap.Indoor.StairUp)

	press(s)
	climbing, ok := s.indoor.status.(Climbing)
	require.True(t, ok)
	assert.False(t, climbing.Climb.Up)

	cfg := s.cfg.Level2
	for range cfg.Climb.Steps * cfg.Climb.HoldTicks {
		s.Step(frame())
	}

	stairA := cfg.Stairs[0]
	assert.Equal(t, Active{}, s.indoor.status)
	assert.Equal(t, 0, s.indoor.player.Floor)
	assert.Equal(t, stairA.X-14, s.indoor.player.X)
}

func TestNoClimbAwayFromStairs(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	press(s)
	assert.Equal(t, Active{}, s.indoor.status)
}

func TestGapScenario(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.Floor = 1
	s.indoor.player.X = 910

	res := s.Step(frame())
	dead, ok := s.indoor.status.(Dead)
	require.True(t, ok, "standing in a gap is fatal")
	assert.Contains(t, dead.Reason, "first floor")
	assert.Equal(t, 1, countCues(res.Cues, core.CueFail))
	assert.Equal(t, core.OutcomeFell, res.State.Outcome)
	assert.False(t, res.State.GameOver, "death waits for a retry")

	// Nothing moves while dead
	s.Step(frame(core.ActionLeft))
	assert.Equal(t, 910.0, s.indoor.player.X)

	snap := s.Snapshot()
	require.Len(t, snap.Banner, 3)
	assert.Equal(t, dead.Reason, snap.Banner[1])

	// Action press rebuilds the level
	press(s)
	assert.Equal(t, Active{}, s.indoor.status)
	assert.Equal(t, 0, s.indoor.player.Floor)
	assert.Equal(t, 740.0, s.indoor.player.X)
	assert.Equal(t, core.OutcomeNone, s.State().Outcome)
	assert.Equal(t, 1, s.Snapshot().Indoor.Deaths)
}

func TestGapReasonNamesFloor(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.X = 880 // ground floor gap

	s.Step(frame())
	dead, ok := s.indoor.status.(Dead)
	require.True(t, ok)
	assert.Contains(t, dead.Reason, "ground floor")
}

func TestWetPatchSlidesOncePerEntry(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.Floor = 1
	s.indoor.player.X = 370

	slides := 0
	wasSliding := false
	var lastV float64
	for range 150 {
		s.Step(frame(core.ActionRight))
		p := s.indoor.player
		if p.Sliding && !wasSliding {
			slides++
			assert.Equal(t, s.cfg.Level2.Slide.Impulse, p.SlideV, "slide starts with the full impulse, to the right")
		}
		if p.Sliding && wasSliding {
			assert.Less(t, p.SlideV, lastV, "slide decays every tick")
		}
		wasSliding = p.Sliding
		lastV = p.SlideV
	}

	assert.Equal(t, 1, slides)
	assert.False(t, s.indoor.player.Sliding)
	assert.Greater(t, s.indoor.player.X, 460.0, "the slide carries the player across the patch")
}

func TestSlideDirectionFollowsInput(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.Floor = 1
	s.indoor.player.X = 470

	holdUntil(t, s, frame(core.ActionLeft), 100, func() bool { return s.indoor.player.Sliding })
	assert.Equal(t, -s.cfg.Level2.Slide.Impulse, s.indoor.player.SlideV)
}

func TestReenteringWetPatchMidSlideKeepsVelocity(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	p := &s.indoor.player
	p.Floor = 1
	p.X = 465
	p.Sliding = true
	p.SlideV = -5

	s.Step(frame(core.ActionRight))

	assert.True(t, p.Sliding)
	assert.InDelta(t, -5*s.cfg.Level2.Slide.Decay, p.SlideV, 1e-9, "entering the patch mid-slide must not reset the slide")
	assert.True(t, s.indoor.wasWet)
}

func TestSlideOverridesInput(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	p := &s.indoor.player
	p.Floor = 2
	p.X = 300
	p.Sliding = true
	p.SlideV = 4

	s.Step(frame(core.ActionLeft))
	assert.Equal(t, 304.0, p.X)
}

func TestWinIsIdempotent(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 1)
	s.indoor.player.Floor = 2
	s.indoor.player.X = 200

	cues := holdUntil(t, s, frame(core.ActionLeft), 100, func() bool { return s.indoor.finished() })
	assert.Equal(t, 1, countCues(cues, core.CueFanfare))

	state := s.State()
	assert.True(t, state.GameOver)
	assert.Equal(t, core.OutcomeArrived, state.Outcome)

	before := s.Snapshot()
	for range 20 {
		res := s.Step(frame(core.ActionLeft, core.ActionJump))
		assert.Empty(t, res.Cues)
		assert.Equal(t, Won{}, s.indoor.status)
	}
	assert.Equal(t, before.Indoor.Player, s.Snapshot().Indoor.Player)
}

func TestIndoorStaysInBounds(t *testing.T) {
	s := newTestSession(t, VariantIndoor, 3)
	w := s.cfg.Level2.World

	inputs := []core.InputFrame{
		frame(core.ActionLeft),
		frame(core.ActionLeft, core.ActionJump),
		frame(core.ActionRight),
		frame(),
		frame(core.ActionJump),
		frame(core.ActionRight, core.ActionJump),
	}
	for i := range 8000 {
		res := s.Step(inputs[(i/23)%len(inputs)])
		if res.State.GameOver {
			s.Reset(testRuntime(3))
			continue
		}

		p := s.indoor.player
		require.GreaterOrEqual(t, p.X, w.MinX, "tick %d", i)
		require.LessOrEqual(t, p.X, w.MaxX, "tick %d", i)
		require.GreaterOrEqual(t, p.Y, 0.0, "tick %d", i)
		require.LessOrEqual(t, p.Y, w.Height, "tick %d", i)

		// Outcome always agrees with the single status value
		switch s.indoor.status.(type) {
		case Dead:
			require.Equal(t, core.OutcomeFell, res.State.Outcome)
		case Won:
			require.Equal(t, core.OutcomeArrived, res.State.Outcome)
		default:
			require.Equal(t, core.OutcomeNone, res.State.Outcome)
		}
	}
}
