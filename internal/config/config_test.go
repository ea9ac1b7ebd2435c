package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate cleanly: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.World.ChunkNumberX != Default().World.ChunkNumberX {
		t.Fatalf("expected Load(\"\") to match Default()")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexworld.yaml")
	doc := `
world:
  chunk_number_x: 16
  chunk_number_y: 16
  active_area_margins_x: 3
  active_area_margins_y: 3
  seed: 7
schedule:
  tick_interval: 66ms
  paused_factor: 4
calendar:
  ticks_in_day: 24000
  solar_days_in_year: 365
  rotation_axis_angle_deg: 23.4
  summer_solstice_day: 172
  latitude: 45
persist:
  directory: data
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.ChunkNumberX != 16 || cfg.World.ActiveAreaMarginsX != 3 {
		t.Fatalf("unexpected world config: %+v", cfg.World)
	}
	if cfg.Schedule.TickInterval.Duration() != 66*time.Millisecond {
		t.Fatalf("expected tick interval 66ms, got %v", cfg.Schedule.TickInterval.Duration())
	}
}

func TestValidateRejectsOutOfRangeChunkCount(t *testing.T) {
	cfg := Default()
	cfg.World.ChunkNumberX = 4
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for chunk_number_x below the minimum")
	}
}

func TestValidateRejectsMarginTooLarge(t *testing.T) {
	cfg := Default()
	cfg.World.ChunkNumberX = 16
	cfg.World.ActiveAreaMarginsX = 9
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error: margin 9 leaves no room on a 16-wide window")
	}
}

func TestDurationUnmarshalsBareNanoseconds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hexworld.yaml")
	doc := `
world:
  chunk_number_x: 32
  chunk_number_y: 32
  active_area_margins_x: 4
  active_area_margins_y: 4
schedule:
  tick_interval: 66666666
  paused_factor: 4
calendar:
  ticks_in_day: 24000
persist:
  directory: data
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Schedule.TickInterval.Duration() != 66666666*time.Nanosecond {
		t.Fatalf("expected bare nanosecond duration to parse, got %v", cfg.Schedule.TickInterval.Duration())
	}
}
