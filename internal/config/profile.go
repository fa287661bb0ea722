package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProfile is returned for unknown profile names.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is a named timing preset.
type Profile string

const (
	ProfileSmooth   Profile = "smooth"   // uncapped draws, no sleeping
	ProfileBalanced Profile = "balanced" // draws at the update rate, sleeps when idle
	ProfileBattery  Profile = "battery"  // half-rate draws, sleeps when idle
)

// Profiles lists the known profiles in display order.
func Profiles() []Profile {
	return []Profile{ProfileSmooth, ProfileBalanced, ProfileBattery}
}

// ParseProfile returns the profile with the given name. The empty name is
// the balanced profile.
func ParseProfile(name string) (Profile, error) {
	if name == "" {
		return ProfileBalanced, nil
	}
	for _, p := range Profiles() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidProfile, name)
}

// ApplyProfile modifies the loop section based on a profile.
// The update rate is never touched so simulation results stay the same
// under every profile.
func ApplyProfile(cfg *Config, p Profile) {
	ups := cfg.Loop.UpdatesPerSecond
	if ups == 0 {
		ups = DefaultConfig().Loop.UpdatesPerSecond
	}

	switch p {
	case ProfileSmooth:
		cfg.Loop.DrawsPerSecond = 0
		cfg.Loop.PowerSaver = false
	case ProfileBalanced:
		cfg.Loop.DrawsPerSecond = ups
		cfg.Loop.PowerSaver = true
	case ProfileBattery:
		cfg.Loop.DrawsPerSecond = max(ups/2, 1)
		cfg.Loop.PowerSaver = true
		if cfg.Loop.SleepSlack <= 0 {
			cfg.Loop.SleepSlack = time.Millisecond
		}
	}
}
