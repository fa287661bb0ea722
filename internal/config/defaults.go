package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/platformer.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Loop: LoopConfig{
			UpdatesPerSecond: 60,
			DrawsPerSecond:   60,
			PowerSaver:       true,
			MaxLagMultiple:   10,
			SleepSlack:       2 * time.Millisecond,
		},
		Game: GameConfig{
			SkipBacklog: false,
			HoldTicks:   9,
		},
		Physics: PhysicsConfig{
			Gravity:      0.035,
			JumpImpulse:  -0.55,
			RunSpeed:     0.22,
			MaxFallSpeed: 0.8,
			AirControl:   0.6,
		},
	}
}
