package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "schoolrun.yaml"

// SourceEmbedded is reported by LoadWithSource when no file was found.
const SourceEmbedded = "embedded"

// Load loads the game configuration.
// Search order: customPath -> ~/.schoolrun/configs/schoolrun.yaml -> ./configs/schoolrun.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which file the tuning came from,
// or SourceEmbedded. Fields missing from a file keep their default values.
func LoadWithSource(customPath string) (GameConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if cfg, err := loadFile(local); err == nil {
		return cfg, local, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultGameConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes a YAML document over the hardcoded defaults and validates it.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultGameConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return DefaultGameConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".schoolrun", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust traffic based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Level1.Traffic.Count = 2
	case DifficultyHard:
		cfg.Level1.Traffic.Count = 4
	}
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values the games index or divide by.
func (c GameConfig) Validate() error {
	l1 := c.Level1
	if l1.World.ViewportW <= 0 || l1.World.ViewportH <= 0 || l1.World.LevelWidth <= 0 {
		return fmt.Errorf("%w: level1.world sizes must be positive", ErrInvalidConfig)
	}
	if l1.Bus.Width <= 0 || l1.Bus.Width >= l1.World.LevelWidth {
		return fmt.Errorf("%w: level1.bus.width must be in (0, level_width)", ErrInvalidConfig)
	}
	if l1.Stairs.Steps <= 0 || l1.Stairs.StepW <= 0 {
		return fmt.Errorf("%w: level1.stairs needs at least one step of positive width", ErrInvalidConfig)
	}
	if l1.Traffic.Count < 0 {
		return fmt.Errorf("%w: level1.traffic.count must not be negative", ErrInvalidConfig)
	}

	l2 := c.Level2
	if len(l2.Floors) == 0 {
		return fmt.Errorf("%w: level2 needs at least one floor", ErrInvalidConfig)
	}
	if l2.World.MinX >= l2.World.MaxX {
		return fmt.Errorf("%w: level2.world.min_x must be below max_x", ErrInvalidConfig)
	}
	if !validFloor(l2.Player.StartFloor, len(l2.Floors)) {
		return fmt.Errorf("%w: level2.player.start_floor %d out of range", ErrInvalidConfig, l2.Player.StartFloor)
	}
	for i, s := range l2.Stairs {
		if !validFloor(s.From, len(l2.Floors)) || !validFloor(s.To, len(l2.Floors)) || s.From == s.To {
			return fmt.Errorf("%w: level2.stairs[%d] must join two different floors", ErrInvalidConfig, i)
		}
	}
	if !validFloor(l2.Classroom.Floor, len(l2.Floors)) {
		return fmt.Errorf("%w: level2.classroom.floor %d out of range", ErrInvalidConfig, l2.Classroom.Floor)
	}
	if l2.Climb.Steps <= 0 || l2.Climb.HoldTicks <= 0 {
		return fmt.Errorf("%w: level2.climb steps and hold_ticks must be positive", ErrInvalidConfig)
	}
	if l2.Slide.Decay <= 0 || l2.Slide.Decay >= 1 {
		return fmt.Errorf("%w: level2.slide.decay must be in (0, 1)", ErrInvalidConfig)
	}
	return nil
}

func validFloor(f, n int) bool {
	return f >= 0 && f < n
}
