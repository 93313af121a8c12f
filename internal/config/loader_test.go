package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	want := DefaultGameConfig()
	if cfg.Level1.Bus != want.Level1.Bus {
		t.Errorf("bus: got %+v, expected %+v", cfg.Level1.Bus, want.Level1.Bus)
	}
	if cfg.Level1.School != want.Level1.School {
		t.Errorf("school: got %+v, expected %+v", cfg.Level1.School, want.Level1.School)
	}
	if cfg.Level1.Traffic != want.Level1.Traffic {
		t.Errorf("traffic: got %+v, expected %+v", cfg.Level1.Traffic, want.Level1.Traffic)
	}
	if len(cfg.Level2.Floors) != 3 || cfg.Level2.Floors[2] != want.Level2.Floors[2] {
		t.Errorf("floors: got %+v", cfg.Level2.Floors)
	}
	if len(cfg.Level2.Gaps) != 2 || cfg.Level2.Gaps[1] != want.Level2.Gaps[1] {
		t.Errorf("gaps: got %+v", cfg.Level2.Gaps)
	}
	if cfg.Level2.Climb != want.Level2.Climb {
		t.Errorf("climb: got %+v, expected %+v", cfg.Level2.Climb, want.Level2.Climb)
	}
	if cfg.Difficulty != want.Difficulty {
		t.Errorf("difficulty: got %+v, expected %+v", cfg.Difficulty, want.Difficulty)
	}
}

func TestDerivedPositions(t *testing.T) {
	cfg := DefaultLevel1Config()

	if got := cfg.World.GroundY(); got != 470 {
		t.Errorf("GroundY() = %v, expected 470", got)
	}
	if got := cfg.School.DoorX(); got != 2688 {
		t.Errorf("DoorX() = %v, expected 2688", got)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("level1:\n  bus:\n    speed: 7\nlevel2:\n  player:\n    walk_speed: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Level1.Bus.Speed != 7 {
		t.Errorf("bus speed = %v, expected 7", cfg.Level1.Bus.Speed)
	}
	if cfg.Level2.Player.WalkSpeed != 3 {
		t.Errorf("walk speed = %v, expected 3", cfg.Level2.Player.WalkSpeed)
	}
	// Untouched fields keep their defaults
	if cfg.Level1.Bus.Width != 240 {
		t.Errorf("bus width = %v, expected default 240", cfg.Level1.Bus.Width)
	}
	if len(cfg.Level2.Stairs) != 2 {
		t.Errorf("expected default stairs, got %d", len(cfg.Level2.Stairs))
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "level1: [unclosed"},
		{"no floors", "level2:\n  floors: []\n"},
		{"stair to same floor", "level2:\n  stairs:\n    - { x: 100, width: 60, from: 1, to: 1 }\n"},
		{"classroom floor out of range", "level2:\n  classroom:\n    floor: 5\n"},
		{"decay too large", "level2:\n  slide:\n    decay: 1.5\n"},
		{"zero climb steps", "level2:\n  climb:\n    steps: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Level2.Floors = nil

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		cars         int
	}{
		{DifficultyEasy, true, 0.0, 2},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 4},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.initialLevel)
			}
			if cfg.Level1.Traffic.Count != tt.cars {
				t.Errorf("Traffic.Count = %d, expected %d", cfg.Level1.Traffic.Count, tt.cars)
			}
		})
	}
}

func TestApplyEmptyPresetIsNoop(t *testing.T) {
	cfg := DefaultGameConfig()
	ApplyPreset(&cfg, "")

	if cfg.Difficulty != DefaultDifficultyConfig() {
		t.Errorf("empty preset changed difficulty: %+v", cfg.Difficulty)
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("expected hard")
	}
	if ParsePreset("impossible") != "" {
		t.Error("expected unknown preset to map to empty")
	}
}
