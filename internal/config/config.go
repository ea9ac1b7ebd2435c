// Package config loads the settings a hexworld daemon needs to bootstrap
// the simulation core: world window size, the active-area margins, tick
// rate, and persistence location. It keeps the teacher's Duration
// JSON-string-or-nanoseconds wrapper and Default()/Validate() idiom, but
// loads from YAML rather than JSON (gopkg.in/yaml.v3), matching the rest
// of the example pack's config-file convention.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a YAML-friendly wrapper around time.Duration that accepts
// human readable strings such as "150ms" while still allowing numeric
// nanosecond values.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// MarshalYAML encodes the duration using its canonical string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML decodes a duration from a string (e.g. "66ms") or a bare
// integer number of nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	// A numeric scalar also decodes into a string, so the integer form
	// is tried first.
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration: invalid value %q: %w", value.Value, err)
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters a hexworld daemon reads at
// startup (spec.md §6 "Recognized settings", expanded with the ambient
// parameters a complete daemon needs).
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Calendar CalendarConfig `yaml:"calendar"`
	Persist  PersistConfig  `yaml:"persist"`
}

// WorldConfig carries spec.md's two recognized settings, checked against
// the same ranges internal/world.Config.Validate checks; out-of-range
// values are rejected, not clamped.
type WorldConfig struct {
	ChunkNumberX       int32 `yaml:"chunk_number_x"`
	ChunkNumberY       int32 `yaml:"chunk_number_y"`
	ActiveAreaMarginsX int32 `yaml:"active_area_margins_x"`
	ActiveAreaMarginsY int32 `yaml:"active_area_margins_y"`
	Seed               int64 `yaml:"seed"`
}

// ScheduleConfig tunes the physics tick loop.
type ScheduleConfig struct {
	TickInterval Duration `yaml:"tick_interval"`
	PausedFactor int      `yaml:"paused_factor"`
}

// CalendarConfig seeds internal/calendarx.New.
type CalendarConfig struct {
	TicksInDay           uint64  `yaml:"ticks_in_day"`
	SolarDaysInYear      uint64  `yaml:"solar_days_in_year"`
	RotationAxisAngleDeg float64 `yaml:"rotation_axis_angle_deg"`
	SummerSolsticeDay    uint64  `yaml:"summer_solstice_day"`
	Latitude             float64 `yaml:"latitude"`
}

// PersistConfig points at the on-disk chunk store.
type PersistConfig struct {
	Directory string `yaml:"directory"`
}

// Load reads configuration from a YAML file if provided. An empty path
// returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration a fresh single-process daemon starts
// with: a 32x32 window, margin 4, and the tick rate spec.md §4.11 fixes
// at 1000/15 ms.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			ChunkNumberX:       32,
			ChunkNumberY:       32,
			ActiveAreaMarginsX: 4,
			ActiveAreaMarginsY: 4,
			Seed:               1337,
		},
		Schedule: ScheduleConfig{
			TickInterval: Duration(time.Second * 1000 / 15 / 1000),
			PausedFactor: 4,
		},
		Calendar: CalendarConfig{
			TicksInDay:           24000,
			SolarDaysInYear:      365,
			RotationAxisAngleDeg: 23.4,
			SummerSolsticeDay:    172,
			Latitude:             45.0,
		},
		Persist: PersistConfig{
			Directory: "world-data",
		},
	}
}

// Validate checks every setting, the way the teacher's
// ChunkConfig/NetworkConfig validation does for its own settings, and
// returns an error for the first one out of range. It does not clamp
// values into range.
func (c *Config) Validate() error {
	const minChunks, maxChunks = 8, 64
	if c.World.ChunkNumberX < minChunks || c.World.ChunkNumberX > maxChunks {
		return fmt.Errorf("world.chunk_number_x must be in [%d,%d], got %d", minChunks, maxChunks, c.World.ChunkNumberX)
	}
	if c.World.ChunkNumberY < minChunks || c.World.ChunkNumberY > maxChunks {
		return fmt.Errorf("world.chunk_number_y must be in [%d,%d], got %d", minChunks, maxChunks, c.World.ChunkNumberY)
	}
	maxMarginX := c.World.ChunkNumberX/2 - 2
	maxMarginY := c.World.ChunkNumberY/2 - 2
	if c.World.ActiveAreaMarginsX < 2 || c.World.ActiveAreaMarginsX > maxMarginX {
		return fmt.Errorf("world.active_area_margins_x must be in [2,%d], got %d", maxMarginX, c.World.ActiveAreaMarginsX)
	}
	if c.World.ActiveAreaMarginsY < 2 || c.World.ActiveAreaMarginsY > maxMarginY {
		return fmt.Errorf("world.active_area_margins_y must be in [2,%d], got %d", maxMarginY, c.World.ActiveAreaMarginsY)
	}
	if c.Schedule.TickInterval.Duration() <= 0 {
		return errors.New("schedule.tick_interval must be positive")
	}
	if c.Schedule.PausedFactor <= 0 {
		return errors.New("schedule.paused_factor must be positive")
	}
	if c.Calendar.TicksInDay == 0 {
		return errors.New("calendar.ticks_in_day must be positive")
	}
	if c.Persist.Directory == "" {
		return errors.New("persist.directory must be set")
	}
	return nil
}
