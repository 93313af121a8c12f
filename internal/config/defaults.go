package config

import (
	_ "embed"
)

//go:embed defaults/schoolrun.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default tuning document.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultGameConfig returns the hardcoded tuning. It mirrors the embedded
// YAML and is used when that document cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Level1:     DefaultLevel1Config(),
		Level2:     DefaultLevel2Config(),
		Difficulty: DefaultDifficultyConfig(),
	}
}

// DefaultLevel1Config returns the street level tuning.
func DefaultLevel1Config() Level1Config {
	return Level1Config{
		World: StreetWorld{
			ViewportW:    960,
			ViewportH:    540,
			GroundOffset: 70,
			LevelWidth:   2600,
		},
		Player: StreetPlayer{
			StartX:       100,
			Width:        40,
			Height:       40,
			Gravity:      0.8,
			WalkSpeed:    1.8,
			SchoolSpeed:  1.6,
			StairSpeed:   1.0,
			MinX:         20,
			StepDistance: 12,
			StrideRight:  0.18,
			StrideLeft:   0.12,
		},
		Bus: BusConfig{
			X:             360,
			Width:         240,
			Height:        90,
			Speed:         5,
			StopOffset:    60,
			DoorOffset:    62,
			BoardGap:      20,
			BoardReach:    10,
			DoorSpeed:     0.06,
			SeatOffset:    40,
			ExitOffset:    80,
			BlockBehind:   10,
			BlockAhead:    80,
			BlockVertical: 30,
		},
		School: SchoolConfig{
			X:          2400,
			Width:      360,
			DoorWidth:  54,
			DoorMargin: 18,
			DoorReach:  10,
			Stories:    3,
			StoryH:     100,
			Name:       "St. Francis Cospicua",
		},
		Stairs: StreetStairs{
			Offset: 180,
			Steps:  6,
			StepW:  22,
			StepH:  12,
		},
		Traffic: TrafficConfig{
			Count:        3,
			LeadGap:      120,
			Spacing:      260,
			Jitter:       60,
			MinWidth:     110,
			WidthJitter:  40,
			MinHeight:    48,
			HeightJitter: 12,
			MinSpeed:     2.2,
			SpeedJitter:  1.2,
			WrapMargin:   60,
		},
	}
}

// DefaultLevel2Config returns the indoor level tuning.
func DefaultLevel2Config() Level2Config {
	return Level2Config{
		World: IndoorWorld{
			Width:  960,
			Height: 540,
			MinX:   20,
			MaxX:   940,
		},
		Player: IndoorPlayer{
			StartX:       740,
			StartFloor:   0,
			WalkSpeed:    2.2,
			Width:        28,
			Height:       40,
			StepDistance: 12,
		},
		Floors: []FloorConfig{
			{SurfaceY: 500, CeilingY: 360},
			{SurfaceY: 340, CeilingY: 200},
			{SurfaceY: 180, CeilingY: 40},
		},
		Stairs: []StairConfig{
			{X: 100, Width: 60, From: 0, To: 1},
			{X: 800, Width: 60, From: 1, To: 2},
		},
		Climb: ClimbConfig{
			Steps:      8,
			HoldTicks:  6,
			ExitOffset: 14,
			EntryReach: 20,
		},
		Slide: SlideConfig{
			Impulse:   8,
			Decay:     0.95,
			Threshold: 0.3,
		},
		WetPatches: []ZoneConfig{
			{XMin: 380, XMax: 460, Floor: 1},
			{XMin: 480, XMax: 560, Floor: 2},
		},
		Gaps: []ZoneConfig{
			{XMin: 860, XMax: 920, Floor: 0},
			{XMin: 900, XMax: 950, Floor: 1},
		},
		Classroom: ClassroomConfig{
			X:      60,
			Width:  120,
			Height: 100,
			Floor:  2,
		},
		FloorNames: []string{"ground floor", "first floor", "second floor"},
	}
}

// DefaultDifficultyConfig returns the traffic progression defaults.
func DefaultDifficultyConfig() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression: ProgressionConfig{
			Type:  "time",
			MaxAt: 3600, // one minute at 60fps
		},
		Scaling: ScalingConfig{
			SpeedMultiplier:  0.8,
			SpacingReduction: 60,
			MinSpacing:       160,
		},
	}
}
