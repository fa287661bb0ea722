// Package clock provides the time sources used by the frame scheduler.
// The scheduler only ever asks "how much time passed since I last asked"
// and "sleep for this long", which keeps it testable with a fake clock.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic elapsed-time source.
type Clock interface {
	// Elapsed returns the time passed since the previous call to Elapsed
	// (or since the clock was created, for the first call).
	Elapsed() time.Duration

	// Sleep blocks for roughly d.
	Sleep(d time.Duration)
}

// System is a Clock backed by the runtime's monotonic clock.
type System struct {
	last time.Time
}

// NewSystem creates a system clock whose first sample starts now.
func NewSystem() *System {
	return &System{last: time.Now()}
}

// Elapsed returns the wall time since the previous sample.
func (c *System) Elapsed() time.Duration {
	now := time.Now()
	d := now.Sub(c.last)
	c.last = now
	return d
}

// Sleep pauses the calling goroutine.
func (c *System) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Manual is a deterministic Clock for tests and headless runs.
// Time passes only through Advance, scripted samples, or Sleep.
type Manual struct {
	mu      sync.Mutex
	pending time.Duration
	script  []time.Duration
	sleeps  []time.Duration
	total   time.Duration
}

// NewManual creates a manual clock. Each call to Elapsed consumes one
// scripted sample (in order) on top of any time added with Advance.
// Once the script runs out, Elapsed reports only advanced time.
func NewManual(script ...time.Duration) *Manual {
	return &Manual{script: append([]time.Duration(nil), script...)}
}

// Advance adds d to the time reported by the next Elapsed call.
func (c *Manual) Advance(d time.Duration) {
	c.mu.Lock()
	c.pending += d
	c.mu.Unlock()
}

// Script appends samples to be returned by upcoming Elapsed calls.
func (c *Manual) Script(samples ...time.Duration) {
	c.mu.Lock()
	c.script = append(c.script, samples...)
	c.mu.Unlock()
}

// Elapsed returns the next scripted sample plus any advanced time.
func (c *Manual) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	d := c.pending
	c.pending = 0
	if len(c.script) > 0 {
		d += c.script[0]
		c.script = c.script[1:]
	}
	c.total += d
	return d
}

// Sleep records the request and lets the simulated time pass.
func (c *Manual) Sleep(d time.Duration) {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	if d > 0 {
		c.pending += d
	}
	c.mu.Unlock()
}

// Sleeps returns a copy of every duration passed to Sleep.
func (c *Manual) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Total returns the sum of all samples handed out so far.
func (c *Manual) Total() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Remaining returns how many scripted samples are left.
func (c *Manual) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.script)
}
