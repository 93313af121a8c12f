package schoolrun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/schoolrun/internal/core"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseStartPrompt, "startPrompt"},
		{PhaseWalkToBus, "walkToBus"},
		{PhaseWaitingBoard, "waitingBoard"},
		{PhaseInBus, "inBus"},
		{PhaseWaitingExit, "waitingExit"},
		{PhaseWalkToSchool, "walkToSchool"},
		{PhaseOnStairs, "onStairs"},
		{PhaseAtSchool, "atSchool"},
		{PhaseGameOver, "gameOver"},
		{Phase(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.phase.String())
	}
}

func TestBoardingScenario(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)

	require.Equal(t, PhaseStartPrompt, s.street.phase)
	require.Equal(t, 100.0, s.street.player.X)

	s.Step(frame(core.ActionJump))
	assert.Equal(t, PhaseWalkToBus, s.street.phase)

	spot := s.street.boardSpot()
	assert.Equal(t, 518.0, spot)

	cues := holdUntil(t, s, frame(core.ActionRight), 1000, func() bool {
		return s.street.phase == PhaseWaitingBoard
	})
	assert.Equal(t, spot, s.street.player.X)
	assert.True(t, s.street.bus.DoorOpen)
	assert.Positive(t, countCues(cues, core.CueStep), "walking should raise step cues")

	cues = press(s)
	assert.Equal(t, PhaseInBus, s.street.phase)
	assert.False(t, s.street.bus.DoorOpen)
	assert.Equal(t, s.street.bus.X+40, s.street.player.X)
	assert.Equal(t, s.street.bus.Y, s.street.player.Y)
	assert.Equal(t, 1, countCues(cues, core.CueBoard))
}

func TestHeldActionDoesNotBoard(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)

	// Space held from the very first tick: one press starts the walk
	held := frame(core.ActionJump, core.ActionRight)
	holdUntil(t, s, held, 1000, func() bool { return s.street.phase == PhaseWaitingBoard })

	for range 30 {
		s.Step(held)
	}
	assert.Equal(t, PhaseWaitingBoard, s.street.phase, "a held key must not count as a second press")

	press(s)
	assert.Equal(t, PhaseInBus, s.street.phase)
}

func TestDoorProgressStaysInRange(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })

	for range 40 {
		s.Step(frame())
		assert.GreaterOrEqual(t, s.street.bus.DoorProg, 0.0)
		assert.LessOrEqual(t, s.street.bus.DoorProg, 1.0)
	}
	assert.Equal(t, 1.0, s.street.bus.DoorProg)
}

func TestBusBlockedByCarAhead(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })
	press(s)
	require.Equal(t, PhaseInBus, s.street.phase)

	bus := s.street.bus
	s.street.traffic.Place(Car{X: bus.Front() + 10, Y: bus.Y, W: 120, H: 50, Speed: 0})

	before := s.street.bus.X
	cues := s.Step(frame(core.ActionRight)).Cues
	assert.Equal(t, before, s.street.bus.X, "bus must not move into the car ahead")
	assert.Zero(t, countCues(cues, core.CueEngineStart))

	// Reversing is still allowed
	s.Step(frame(core.ActionLeft))
	assert.Equal(t, before-s.street.bus.Speed, s.street.bus.X)
}

func TestBusNotBlockedByOffsetCar(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })
	press(s)

	bus := s.street.bus
	s.street.traffic.Place(
		Car{X: bus.Front() + 10, Y: bus.Y + 40, W: 120, H: 50}, // other lane
		Car{X: bus.Front() + 90, Y: bus.Y, W: 120, H: 50},      // beyond the window
	)

	cues := s.Step(frame(core.ActionRight)).Cues
	assert.Equal(t, bus.X+bus.Speed, s.street.bus.X)
	assert.Equal(t, 1, countCues(cues, core.CueEngineStart))
	assert.True(t, s.street.engineOn)
}

func TestCarCollisionEndsRun(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	require.Equal(t, PhaseWalkToBus, s.street.phase)

	s.street.engineOn = true
	p := s.street.player.Box()
	s.street.traffic.Place(Car{X: p.X + 5, Y: p.Y, W: 50, H: 50, Speed: 0})

	res := s.Step(frame())
	assert.Equal(t, PhaseGameOver, s.street.phase)
	assert.False(t, s.street.engineOn, "engine must stop on collision")
	assert.Equal(t, 1, countCues(res.Cues, core.CueEngineStop))
	assert.Equal(t, 1, countCues(res.Cues, core.CueFail))
	assert.True(t, res.State.GameOver)
	assert.Equal(t, core.OutcomeHitByCar, res.State.Outcome)
}

func TestGameOverSettlesOnGround(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)

	s.street.phase = PhaseGameOver
	s.street.player.Y = 200

	for range 120 {
		s.Step(frame(core.ActionRight))
	}
	groundY := s.cfg.Level1.World.GroundY()
	assert.Equal(t, groundY-s.street.player.H/2, s.street.player.Y)
	assert.True(t, s.street.player.Grounded)
	assert.Equal(t, PhaseGameOver, s.street.phase, "game over is terminal")
}

func TestCollisionIgnoredInsideBus(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })
	press(s)

	p := s.street.player.Box()
	s.street.traffic.Place(Car{X: p.X, Y: p.Y, W: 50, H: 50})
	s.Step(frame())
	assert.Equal(t, PhaseInBus, s.street.phase)
}

func TestRideAndExit(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	clearRoad(s)
	press(s)
	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingBoard })
	press(s)

	cues := holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseWaitingExit })
	assert.Equal(t, 1982.0, s.street.bus.X, "bus stops at the drop-off point")
	assert.True(t, s.street.bus.DoorOpen)
	assert.False(t, s.street.engineOn)
	assert.Equal(t, 1, countCues(cues, core.CueArrival))
	assert.Equal(t, 1, countCues(cues, core.CueEngineStart))
	assert.Equal(t, 1, countCues(cues, core.CueEngineStop))

	// Holding right at the stop does not replay the arrival cue
	for range 10 {
		cues = s.Step(frame(core.ActionRight)).Cues
		assert.Zero(t, countCues(cues, core.CueArrival))
	}

	press(s)
	assert.Equal(t, PhaseWalkToSchool, s.street.phase)
	assert.Equal(t, s.street.bus.Front()-80, s.street.player.X)
	assert.False(t, s.street.bus.DoorOpen)
}

func TestWalkDownStairsIntoSchool(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	rideToSchool(t, s)
	press(s)

	holdUntil(t, s, frame(core.ActionRight), 1000, func() bool { return s.street.phase == PhaseOnStairs })

	groundY := s.cfg.Level1.World.GroundY()
	lastY := s.street.player.Y
	cues := holdUntil(t, s, frame(core.ActionRight), 2000, func() bool {
		// The stair profile only ever descends
		assert.GreaterOrEqual(t, s.street.player.Y, lastY)
		lastY = s.street.player.Y
		return s.street.phase == PhaseAtSchool
	})

	stairs := s.cfg.Level1.Stairs
	assert.Equal(t, groundY+float64(stairs.Steps-1)*stairs.StepH-s.street.player.H/2, s.street.player.Y)
	assert.Equal(t, 1, countCues(cues, core.CueFanfare))

	state := s.State()
	assert.True(t, state.GameOver)
	assert.Equal(t, core.OutcomeArrived, state.Outcome)

	// Camera is frozen on the school and the fanfare is latched
	camera := s.street.camera
	for range 30 {
		res := s.Step(frame(core.ActionLeft))
		assert.Zero(t, countCues(res.Cues, core.CueFanfare))
	}
	assert.Equal(t, camera, s.street.camera)
	assert.Equal(t, s.street.maxCamera(), camera)
}

func TestPlayerStaysInBounds(t *testing.T) {
	s := newTestSession(t, VariantStreet, 7)
	cfg := s.cfg.Level1
	maxX := cfg.School.X + cfg.School.Width - 10

	inputs := []core.InputFrame{
		frame(core.ActionLeft),
		frame(core.ActionRight),
		frame(core.ActionJump),
		frame(),
		frame(core.ActionRight, core.ActionJump),
	}
	for i := range 6000 {
		res := s.Step(inputs[(i/37)%len(inputs)])
		if res.State.GameOver {
			s.Reset(testRuntime(int64(i)))
			continue
		}

		p := s.street.player
		require.GreaterOrEqual(t, p.X, cfg.Player.MinX, "tick %d", i)
		require.LessOrEqual(t, p.X, maxX, "tick %d", i)
		require.GreaterOrEqual(t, p.Y, 0.0, "tick %d", i)
		require.LessOrEqual(t, p.Y, cfg.World.ViewportH, "tick %d", i)
		require.GreaterOrEqual(t, s.street.bus.X, 0.0)
		require.LessOrEqual(t, s.street.bus.X, cfg.World.LevelWidth-s.street.bus.W)
	}
}

func TestStepIndex(t *testing.T) {
	s := newTestSession(t, VariantStreet, 1)
	x := s.street.stairsX

	tests := []struct {
		x    float64
		want int
	}{
		{x - 50, 0},
		{x, 0},
		{x + 21.9, 0},
		{x + 22, 1},
		{x + 131, 5},
		{x + 500, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.street.stepIndex(tt.x), "x=%v", tt.x)
	}
}
