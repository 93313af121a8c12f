// Package config provides YAML-based tuning for both levels and the
// difficulty presets that scale the traffic.
package config

// GameConfig is the full tuning document.
type GameConfig struct {
	Level1     Level1Config     `yaml:"level1"`
	Level2     Level2Config     `yaml:"level2"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Level1Config tunes the street level: walk, bus ride, stairs.
type Level1Config struct {
	World   StreetWorld   `yaml:"world"`
	Player  StreetPlayer  `yaml:"player"`
	Bus     BusConfig     `yaml:"bus"`
	School  SchoolConfig  `yaml:"school"`
	Stairs  StreetStairs  `yaml:"stairs"`
	Traffic TrafficConfig `yaml:"traffic"`
}

// StreetWorld defines the viewport and level extent in pixels.
type StreetWorld struct {
	ViewportW    float64 `yaml:"viewport_w"`
	ViewportH    float64 `yaml:"viewport_h"`
	GroundOffset float64 `yaml:"ground_offset"` // ground y = viewport_h - ground_offset
	LevelWidth   float64 `yaml:"level_width"`
}

// GroundY returns the y coordinate of the street surface.
func (w StreetWorld) GroundY() float64 {
	return w.ViewportH - w.GroundOffset
}

// StreetPlayer defines the player's size and walking speeds on the street.
type StreetPlayer struct {
	StartX       float64 `yaml:"start_x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Gravity      float64 `yaml:"gravity"`
	WalkSpeed    float64 `yaml:"walk_speed"`    // walking to the bus
	SchoolSpeed  float64 `yaml:"school_speed"`  // walking from the bus to the school
	StairSpeed   float64 `yaml:"stair_speed"`   // on the stairs
	MinX         float64 `yaml:"min_x"`         // left clamp
	StepDistance float64 `yaml:"step_distance"` // pixels between step sounds
	StrideRight  float64 `yaml:"stride_right"`  // walk animation phase per frame moving right
	StrideLeft   float64 `yaml:"stride_left"`   // walk animation phase per frame moving left
}

// BusConfig defines the bus geometry and the boarding/blocking rules.
type BusConfig struct {
	X             float64 `yaml:"x"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	StopOffset    float64 `yaml:"stop_offset"`    // how far before the stairs the bus stops
	DoorOffset    float64 `yaml:"door_offset"`    // door position measured from the bus front
	BoardGap      float64 `yaml:"board_gap"`      // board spot distance before the door
	BoardReach    float64 `yaml:"board_reach"`    // how close the player must get to the board spot
	DoorSpeed     float64 `yaml:"door_speed"`     // door animation progress per frame
	SeatOffset    float64 `yaml:"seat_offset"`    // player x inside the bus
	ExitOffset    float64 `yaml:"exit_offset"`    // player x after exit, from the bus front
	BlockBehind   float64 `yaml:"block_behind"`   // blocking window starts this far inside the front
	BlockAhead    float64 `yaml:"block_ahead"`    // blocking window length past the front
	BlockVertical float64 `yaml:"block_vertical"` // max vertical offset for a car to block
}

// SchoolConfig places the school building and its door.
type SchoolConfig struct {
	X          float64 `yaml:"x"`
	Width      float64 `yaml:"width"`
	DoorWidth  float64 `yaml:"door_width"`
	DoorMargin float64 `yaml:"door_margin"`
	DoorReach  float64 `yaml:"door_reach"`
	Stories    int     `yaml:"stories"`
	StoryH     float64 `yaml:"story_h"`
	Name       string  `yaml:"name"`
}

// DoorX returns the x coordinate of the school's big door.
func (s SchoolConfig) DoorX() float64 {
	return s.X + s.Width - s.DoorWidth - s.DoorMargin
}

// StreetStairs defines the descending stairs in front of the school.
type StreetStairs struct {
	Offset float64 `yaml:"offset"` // stairs x = school x - offset
	Steps  int     `yaml:"steps"`
	StepW  float64 `yaml:"step_w"`
	StepH  float64 `yaml:"step_h"`
}

// TrafficConfig defines how cars are spawned along the road.
type TrafficConfig struct {
	Count        int     `yaml:"count"`
	LeadGap      float64 `yaml:"lead_gap"` // first car distance past the bus front
	Spacing      float64 `yaml:"spacing"`
	Jitter       float64 `yaml:"jitter"`
	MinWidth     float64 `yaml:"min_width"`
	WidthJitter  float64 `yaml:"width_jitter"`
	MinHeight    float64 `yaml:"min_height"`
	HeightJitter float64 `yaml:"height_jitter"`
	MinSpeed     float64 `yaml:"min_speed"`
	SpeedJitter  float64 `yaml:"speed_jitter"`
	WrapMargin   float64 `yaml:"wrap_margin"`
}

// Level2Config tunes the indoor level.
type Level2Config struct {
	World      IndoorWorld     `yaml:"world"`
	Player     IndoorPlayer    `yaml:"player"`
	Floors     []FloorConfig   `yaml:"floors"`
	Stairs     []StairConfig   `yaml:"stairs"`
	Climb      ClimbConfig     `yaml:"climb"`
	Slide      SlideConfig     `yaml:"slide"`
	WetPatches []ZoneConfig    `yaml:"wet_patches"`
	Gaps       []ZoneConfig    `yaml:"gaps"`
	Classroom  ClassroomConfig `yaml:"classroom"`
	FloorNames []string        `yaml:"floor_names"`
}

// IndoorWorld defines the single-screen building.
type IndoorWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
}

// IndoorPlayer defines the player's start and speed indoors.
type IndoorPlayer struct {
	StartX       float64 `yaml:"start_x"`
	StartFloor   int     `yaml:"start_floor"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	StepDistance float64 `yaml:"step_distance"`
}

// FloorConfig is one floor: where its walkable surface and ceiling are.
type FloorConfig struct {
	SurfaceY float64 `yaml:"surface_y"`
	CeilingY float64 `yaml:"ceiling_y"`
}

// StairConfig connects two floors. The bottom is at x on the source floor,
// the top at x+width on the destination floor.
type StairConfig struct {
	X     float64 `yaml:"x"`
	Width float64 `yaml:"width"`
	From  int     `yaml:"from"`
	To    int     `yaml:"to"`
}

// ClimbConfig defines the stair animation.
type ClimbConfig struct {
	Steps      int     `yaml:"steps"`
	HoldTicks  int     `yaml:"hold_ticks"`
	ExitOffset float64 `yaml:"exit_offset"`
	EntryReach float64 `yaml:"entry_reach"`
}

// SlideConfig defines the wet floor impulse and its decay.
type SlideConfig struct {
	Impulse   float64 `yaml:"impulse"`
	Decay     float64 `yaml:"decay"`
	Threshold float64 `yaml:"threshold"`
}

// ZoneConfig is a horizontal span on one floor.
type ZoneConfig struct {
	XMin  float64 `yaml:"x_min"`
	XMax  float64 `yaml:"x_max"`
	Floor int     `yaml:"floor"`
}

// ClassroomConfig places the goal.
type ClassroomConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Floor  int     `yaml:"floor"`
}

// DifficultyConfig defines the traffic progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over the run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to car speed at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Car spacing reduction at max difficulty
	MinSpacing       float64 `yaml:"min_spacing"`       // Spacing never drops below this
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
