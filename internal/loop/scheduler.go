// Package loop provides the frame scheduler: a fixed-timestep update loop
// with an independent draw cadence, interpolation between updates, and
// batched screen transitions applied between frames.
package loop

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

// InputSource produces the input snapshot for each fixed update.
type InputSource interface {
	Poll() core.InputFrame
}

// Presenter receives every finished frame.
type Presenter interface {
	Present(c *core.Canvas)
}

type noInput struct{}

func (noInput) Poll() core.InputFrame { return core.InputFrame{} }

// maxAlpha is the largest float64 below 1.
var maxAlpha = math.Nextafter(1, 0)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPresenter sets where finished frames go.
func WithPresenter(p Presenter) Option {
	return func(s *Scheduler) {
		s.presenter = p
	}
}

// WithInitial places screens on the stack at construction, bottom first.
// They are entered immediately and do not count as a transition.
func WithInitial(screens ...screen.Screen) Option {
	return func(s *Scheduler) {
		s.initial = append(s.initial, screens...)
	}
}

// Scheduler drives the screen stack.
//
// Updates run at a fixed period no matter how fast drawing goes; draws run
// at their own period (or every pass when uncapped) with the fraction of an
// update period still owed passed along for interpolation.
//
// Apart from the Navigator methods, a Scheduler must be used from a
// single goroutine.
type Scheduler struct {
	updatePeriod   time.Duration
	drawPeriod     time.Duration // 0 = uncapped
	updateLag      time.Duration
	drawLag        time.Duration
	sleepSlack     time.Duration
	maxLagMultiple float64
	powerSaver     bool

	clock     clock.Clock
	input     InputSource
	presenter Presenter
	logger    *log.Logger

	queue   *screen.Queue
	stack   *screen.Stack
	canvas  *core.Canvas
	initial []screen.Screen

	behind bool
	stats  counters
}

// New creates a scheduler reading time from clk and input from in.
func New(cfg Config, clk clock.Clock, in InputSource, opts ...Option) *Scheduler {
	if in == nil {
		in = noInput{}
	}
	size := cfg.Size
	if size.W <= 0 || size.H <= 0 {
		size = DefaultConfig().Size
	}

	s := &Scheduler{
		updatePeriod:   periodOf(DefaultUpdatesPerSecond),
		drawPeriod:     periodOf(cfg.DrawsPerSecond),
		sleepSlack:     max(cfg.SleepSlack, 0),
		maxLagMultiple: cfg.MaxLagMultiple,
		powerSaver:     cfg.PowerSaver,
		clock:          clk,
		input:          in,
		logger:         log.New(io.Discard),
		queue:          screen.NewQueue(),
		stack:          screen.NewStack(),
		canvas:         core.NewCanvas(size.W, size.H),
	}
	s.SetUpdateRate(cfg.UpdatesPerSecond)
	if s.maxLagMultiple < 1 {
		s.maxLagMultiple = DefaultMaxLagMultiple
	}

	for _, opt := range opts {
		opt(s)
	}

	if len(s.initial) > 0 {
		batch := make([]screen.Request, 0, len(s.initial))
		for _, scr := range s.initial {
			batch = append(batch, screen.Request{Kind: screen.KindPush, Screen: scr})
		}
		s.stack.Apply(batch, s.canvas.Size())
		s.initial = nil
	}

	return s
}

// RequestPush queues s to be pushed at the next apply point.
func (s *Scheduler) RequestPush(scr screen.Screen) {
	s.queue.Push(scr)
}

// RequestPop queues count pops.
func (s *Scheduler) RequestPop(count int) {
	s.queue.Pop(count)
}

// RequestSwap queues a replacement of the top screen.
func (s *Scheduler) RequestSwap(scr screen.Screen) {
	s.queue.Swap(scr)
}

// SetUpdateRate changes the fixed update rate. 0 and rates too fast for a
// nanosecond period are ignored.
func (s *Scheduler) SetUpdateRate(ups uint) {
	p := periodOf(ups)
	if p <= 0 {
		return
	}
	s.updatePeriod = p
}

// SetDrawRate changes the draw cap. 0 means uncapped, as does any rate
// above one draw per nanosecond.
func (s *Scheduler) SetDrawRate(dps uint) {
	s.drawPeriod = periodOf(dps)
}

// SetPowerSaver toggles sleeping between due updates and draws.
func (s *Scheduler) SetPowerSaver(on bool) {
	s.powerSaver = on
}

// PowerSaver reports whether power saver sleeps are enabled.
func (s *Scheduler) PowerSaver() bool {
	return s.powerSaver
}

// UpdatePeriod returns the fixed update step.
func (s *Scheduler) UpdatePeriod() time.Duration {
	return s.updatePeriod
}

// DrawPeriod returns the draw period, 0 when uncapped.
func (s *Scheduler) DrawPeriod() time.Duration {
	return s.drawPeriod
}

// Size returns the current viewport size.
func (s *Scheduler) Size() core.Size {
	return s.canvas.Size()
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Ticks:            s.stats.ticks,
		Skipped:          s.stats.skipped,
		Frames:           s.stats.frames,
		Behind:           s.stats.behind,
		UpdatesPerSecond: s.stats.tickTimes.PerSecond(),
		DrawsPerSecond:   s.stats.drawTimes.PerSecond(),
		FrameTime:        s.stats.drawTimes.Average(),
		UpdateLag:        s.updateLag,
		DrawLag:          s.drawLag,
		Alpha:            s.stats.alpha,
		Depth:            s.stack.Len(),
	}
}

// Run steps the loop until the screen stack is empty (returning nil) or
// ctx is done (returning ctx.Err()).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("frame loop started",
		"update_period", s.updatePeriod,
		"draw_period", s.drawPeriod,
		"power_saver", s.powerSaver,
	)
	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("frame loop cancelled", "ticks", s.stats.ticks, "frames", s.stats.frames)
			return err
		}
		if !s.Step() {
			s.logger.Info("no more screens, frame loop stopped", "ticks", s.stats.ticks, "frames", s.stats.frames)
			return nil
		}
	}
}

// Step runs one loop pass and reports whether the loop should continue.
// A pass either applies pending transitions or runs the
// sleep/update/draw sequence, never both.
func (s *Scheduler) Step() bool {
	if s.queue.Pending() {
		s.applyTransitions()
		return true
	}

	top := s.stack.Top()
	if top == nil {
		return false
	}

	if s.powerSaver {
		s.sleepUntilDue()
	}

	s.advance(s.clock.Elapsed())

	threshold := s.lagThreshold()
	if s.updateLag >= threshold && !screen.CanSkip(top) && !s.behind {
		s.behind = true
		s.stats.behind++
		s.logger.Warn("falling behind",
			"lag", s.updateLag,
			"owed_ticks", int64(s.updateLag/s.updatePeriod),
			"screens", s.stack.Len(),
		)
	}

	s.runUpdates(top, threshold)
	if s.updateLag < threshold {
		s.behind = false
	}

	s.advance(s.clock.Elapsed())

	if s.drawLag >= s.drawPeriod && !s.queue.Pending() {
		s.draw(top)
	}
	return true
}

func (s *Scheduler) applyTransitions() {
	batch := s.queue.Drain()
	s.stack.Apply(batch, s.canvas.Size())
	// Time spent entering and leaving screens is not owed to the new top.
	s.clock.Elapsed()
	s.updateLag = s.updatePeriod
	s.logger.Debug("applied transitions", "requests", len(batch), "depth", s.stack.Len())
}

// sleepUntilDue never sleeps with uncapped draws, since a draw is always due.
func (s *Scheduler) sleepUntilDue() {
	if s.drawPeriod == 0 {
		return
	}
	nearer := min(s.updatePeriod-s.updateLag, s.drawPeriod-s.drawLag)
	if nearer > s.sleepSlack {
		s.clock.Sleep(nearer - s.sleepSlack)
	}
}

// advance adds elapsed time to both accumulators. Clock regressions count
// as no time passing.
func (s *Scheduler) advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.updateLag += d
	s.drawLag += d
	s.stats.now += d
}

func (s *Scheduler) lagThreshold() time.Duration {
	return time.Duration(float64(s.updatePeriod) * s.maxLagMultiple)
}

func (s *Scheduler) runUpdates(top screen.Screen, threshold time.Duration) {
	for s.updateLag >= s.updatePeriod && !s.queue.Pending() {
		in := s.input.Poll()
		if in.Resized {
			s.resize(in.Size)
		}

		top.HandleInput(in)
		top.Update(s.updatePeriod)
		s.updateLag -= s.updatePeriod
		s.stats.tick()

		if s.updateLag >= threshold && screen.CanSkip(top) {
			dropped := uint64(s.updateLag / s.updatePeriod)
			s.updateLag %= s.updatePeriod
			s.stats.skipped += dropped
			if obs, ok := top.(screen.SkipObserver); ok {
				obs.OnTicksSkipped(dropped)
			}
			s.logger.Debug("dropped update backlog", "ticks", dropped)
			return
		}
	}
}

func (s *Scheduler) resize(size core.Size) {
	if size.W <= 0 || size.H <= 0 {
		return
	}
	s.canvas.Resize(size.W, size.H)
	s.stack.Each(func(scr screen.Screen) {
		scr.OnWindowResize(size)
	})
	s.logger.Debug("viewport resized", "width", size.W, "height", size.H)
}

func (s *Scheduler) alpha() float64 {
	a := float64(s.updateLag) / float64(s.updatePeriod)
	return core.ClampF(a, 0, maxAlpha)
}

func (s *Scheduler) draw(top screen.Screen) {
	alpha := s.alpha()
	s.canvas.Clear()
	top.Draw(s.canvas, alpha)
	if s.presenter != nil {
		s.presenter.Present(s.canvas)
	}

	if s.drawPeriod == 0 {
		s.drawLag = 0
	} else {
		s.drawLag %= s.drawPeriod
	}
	s.stats.frame(alpha)
}
