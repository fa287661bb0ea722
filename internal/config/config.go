// Package config provides YAML-based configuration loading and timing
// profiles for the platformer runtime.
package config

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/loop"
)

// Config contains the full runtime configuration.
type Config struct {
	Loop    LoopConfig    `yaml:"loop"`
	Game    GameConfig    `yaml:"game"`
	Physics PhysicsConfig `yaml:"physics"`
}

// GameConfig defines how the game reacts to input and lag.
type GameConfig struct {
	// SkipBacklog lets a level drop an update backlog instead of
	// replaying every missed tick. Dropped ticks still count toward the
	// run time.
	SkipBacklog bool `yaml:"skip_backlog"`

	// HoldTicks is how many updates a key stays held after its last
	// press or auto-repeat.
	HoldTicks int `yaml:"hold_ticks"`
}

// LoopConfig defines the frame scheduler timings.
type LoopConfig struct {
	UpdatesPerSecond uint          `yaml:"updates_per_second"`
	DrawsPerSecond   uint          `yaml:"draws_per_second"` // 0 = uncapped
	PowerSaver       bool          `yaml:"power_saver"`
	MaxLagMultiple   float64       `yaml:"max_lag_multiple"`
	SleepSlack       time.Duration `yaml:"sleep_slack"`
}

// PhysicsConfig defines player movement. Speeds are in tiles per tick.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // negative is up
	RunSpeed     float64 `yaml:"run_speed"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	AirControl   float64 `yaml:"air_control"` // 0..1 fraction of run speed in the air
}

// Scheduler converts the loop section into scheduler options for a
// viewport of the given size.
func (c LoopConfig) Scheduler(size core.Size) loop.Config {
	return loop.Config{
		UpdatesPerSecond: c.UpdatesPerSecond,
		DrawsPerSecond:   c.DrawsPerSecond,
		PowerSaver:       c.PowerSaver,
		MaxLagMultiple:   c.MaxLagMultiple,
		SleepSlack:       c.SleepSlack,
		Size:             size,
	}
}
