package loop

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Default timings.
const (
	DefaultUpdatesPerSecond uint          = 60
	DefaultDrawsPerSecond   uint          = 60
	DefaultMaxLagMultiple   float64       = 10
	DefaultSleepSlack       time.Duration = 2 * time.Millisecond
)

// Config holds the recognized scheduler options.
type Config struct {
	// UpdatesPerSecond is the fixed simulation rate. 0 selects the default.
	UpdatesPerSecond uint

	// DrawsPerSecond caps the draw rate. 0 means uncapped.
	DrawsPerSecond uint

	// PowerSaver lets the loop sleep when neither an update nor a draw is due.
	PowerSaver bool

	// MaxLagMultiple is how many update periods of backlog count as
	// falling behind. Values below 1 select the default.
	MaxLagMultiple float64

	// SleepSlack is subtracted from every power saver sleep to absorb OS
	// sleep imprecision.
	SleepSlack time.Duration

	// Size is the initial viewport. A zero size selects 80x24.
	Size core.Size
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		UpdatesPerSecond: DefaultUpdatesPerSecond,
		DrawsPerSecond:   DefaultDrawsPerSecond,
		PowerSaver:       true,
		MaxLagMultiple:   DefaultMaxLagMultiple,
		SleepSlack:       DefaultSleepSlack,
		Size:             core.Size{W: 80, H: 24},
	}
}

// periodOf converts a rate in Hz to a period. Rate 0 yields 0.
func periodOf(rate uint) time.Duration {
	if rate == 0 {
		return 0
	}
	return time.Second / time.Duration(rate)
}
