package loop

import "time"

// samples must be a power of two.
const samples = 32

// ring keeps the last samples intervals for rolling averages.
type ring struct {
	times [samples]time.Duration
	index int
	n     int
}

func (r *ring) Add(d time.Duration) {
	r.times[r.index] = d
	r.index = (r.index + 1) & (samples - 1)
	if r.n < samples {
		r.n++
	}
}

func (r *ring) Average() time.Duration {
	if r.n == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range r.times[:r.n] {
		sum += d
	}
	return sum / time.Duration(r.n)
}

func (r *ring) PerSecond() float64 {
	avg := r.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Ticks   uint64 // Update calls made
	Skipped uint64 // ticks dropped by the catch-up policy, never passed to Update
	Frames  uint64 // Draw calls made
	Behind  uint64 // times the loop entered the falling-behind state

	UpdatesPerSecond float64 // rolling measured update rate
	DrawsPerSecond   float64 // rolling measured draw rate
	FrameTime        time.Duration

	UpdateLag time.Duration
	DrawLag   time.Duration
	Alpha     float64 // last interpolation fraction passed to Draw
	Depth     int     // screens on the stack
}

type counters struct {
	ticks, skipped, frames, behind uint64

	now       time.Duration // total clock time observed
	lastTick  time.Duration
	lastFrame time.Duration
	tickTimes ring
	drawTimes ring
	alpha     float64
}

func (c *counters) tick() {
	c.ticks++
	c.tickTimes.Add(c.now - c.lastTick)
	c.lastTick = c.now
}

func (c *counters) frame(alpha float64) {
	c.frames++
	c.drawTimes.Add(c.now - c.lastFrame)
	c.lastFrame = c.now
	c.alpha = alpha
}
