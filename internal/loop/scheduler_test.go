package loop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/clock"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

const period = time.Second / 60

// recorder counts every lifecycle call a screen receives.
type recorder struct {
	name    string
	journal *[]string

	updates  int
	draws    int
	alphas   []float64
	sizes    []core.Size
	skipped  uint64
	skippy   bool
	onUpdate func(n int)
	onEnter  func()
}

var (
	_ screen.Screen       = (*recorder)(nil)
	_ screen.Skipper      = (*recorder)(nil)
	_ screen.SkipObserver = (*recorder)(nil)
)

func newRecorder(name string, journal *[]string) *recorder {
	return &recorder{name: name, journal: journal}
}

func (r *recorder) log(event string) {
	if r.journal != nil {
		*r.journal = append(*r.journal, r.name+"."+event)
	}
}

func (r *recorder) OnEnter() {
	r.log("enter")
	if r.onEnter != nil {
		r.onEnter()
	}
}
func (r *recorder) OnExit() { r.log("exit") }
func (r *recorder) Pause() { r.log("pause") }
func (r *recorder) Resume() { r.log("resume") }
func (r *recorder) HandleInput(core.InputFrame) {}
func (r *recorder) OnWindowResize(s core.Size) { r.sizes = append(r.sizes, s) }
func (r *recorder) SkipsUpdates() bool { return r.skippy }
func (r *recorder) OnTicksSkipped(n uint64) { r.skipped += n }

func (r *recorder) Update(time.Duration) {
	r.updates++
	if r.onUpdate != nil {
		r.onUpdate(r.updates)
	}
}

func (r *recorder) Draw(_ *core.Canvas, alpha float64) {
	r.draws++
	r.alphas = append(r.alphas, alpha)
}

func count(journal []string, event string) int {
	n := 0
	for _, e := range journal {
		if e == event {
			n++
		}
	}
	return n
}

// quietConfig disables power saving so only scripted samples move time.
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.PowerSaver = false
	return cfg
}

// frames scripts n loop passes of d each. Every pass samples the clock
// twice; the second sample is zero.
func frames(n int, d time.Duration) []time.Duration {
	out := make([]time.Duration, 0, 2*n)
	for range n {
		out = append(out, d, 0)
	}
	return out
}

type fixedInput struct {
	frames []core.InputFrame
}

func (f *fixedInput) Poll() core.InputFrame {
	if len(f.frames) == 0 {
		return core.InputFrame{}
	}
	in := f.frames[0]
	f.frames = f.frames[1:]
	return in
}

func TestEmptyStackStops(t *testing.T) {
	clk := clock.NewManual(frames(5, period)...)
	s := New(quietConfig(), clk, nil)

	if s.Step() {
		t.Error("Step() on an empty stack should report false")
	}
	if err := s.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v, expected nil", err)
	}
	st := s.Stats()
	if st.Ticks != 0 || st.Frames != 0 {
		t.Errorf("Ticks = %d, Frames = %d, expected no calls", st.Ticks, st.Frames)
	}
}

func TestUpdateCountIndependentOfChunking(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxLagMultiple = 20

	chunked := newRecorder("chunked", nil)
	s1 := New(cfg, clock.NewManual(frames(10, period)...), nil, WithInitial(chunked))
	for range 10 {
		s1.Step()
	}

	single := newRecorder("single", nil)
	s2 := New(cfg, clock.NewManual(10*period, 0), nil, WithInitial(single))
	s2.Step()

	if chunked.updates != 10 {
		t.Errorf("chunked updates = %d, expected 10", chunked.updates)
	}
	if single.updates != 10 {
		t.Errorf("single sample updates = %d, expected 10", single.updates)
	}
}

func TestSixtyThirtyScenario(t *testing.T) {
	cfg := quietConfig()
	cfg.UpdatesPerSecond = 60
	cfg.DrawsPerSecond = 30

	r := newRecorder("play", nil)
	s := New(cfg, clock.NewManual(frames(120, period)...), nil, WithInitial(r))
	for range 120 {
		s.Step()
	}

	if r.updates != 120 {
		t.Errorf("updates = %d, expected 120", r.updates)
	}
	if r.draws < 59 || r.draws > 61 {
		t.Errorf("draws = %d, expected about 60", r.draws)
	}
	if st := s.Stats(); st.Ticks != 120 || st.Frames != uint64(r.draws) {
		t.Errorf("Stats = %+v, expected 120 ticks and %d frames", st, r.draws)
	}
}

func TestAlphaInRange(t *testing.T) {
	cfg := quietConfig()
	cfg.DrawsPerSecond = 0

	samples := []time.Duration{
		3 * time.Millisecond, 0,
		period - 1, 0,
		period, period,
		7 * time.Millisecond, 11 * time.Millisecond,
		2*period + 5, 0,
		1, 0,
		period / 2, period / 2,
	}
	r := newRecorder("play", nil)
	s := New(cfg, clock.NewManual(samples...), nil, WithInitial(r))
	for range len(samples) / 2 {
		s.Step()
	}

	if len(r.alphas) == 0 {
		t.Fatal("expected draws with uncapped rate")
	}
	for i, a := range r.alphas {
		if a < 0 || a >= 1 {
			t.Errorf("alpha[%d] = %v, expected [0,1)", i, a)
		}
	}
}

func TestNegativeSamplesKeepLagsNonNegative(t *testing.T) {
	r := newRecorder("play", nil)
	clk := clock.NewManual(-5*time.Millisecond, -time.Second, period, -period, 0, -1)
	s := New(quietConfig(), clk, nil, WithInitial(r))

	for range 3 {
		s.Step()
		st := s.Stats()
		if st.UpdateLag < 0 || st.DrawLag < 0 {
			t.Errorf("lags went negative: update %v, draw %v", st.UpdateLag, st.DrawLag)
		}
	}
	if r.updates != 1 {
		t.Errorf("updates = %d, expected 1", r.updates)
	}
}

func TestBatchAppliedAtomically(t *testing.T) {
	var journal []string
	var s *Scheduler

	play := newRecorder("play", &journal)
	a := newRecorder("a", &journal)
	b := newRecorder("b", &journal)
	play.onUpdate = func(n int) {
		if n == 1 {
			s.RequestPush(a)
			s.RequestPop(1)
			s.RequestPush(b)
		}
	}

	s = New(quietConfig(), clock.NewManual(3*period, 0, period, 0), nil, WithInitial(play))
	journal = nil

	s.Step()
	if play.updates != 1 {
		t.Errorf("updates after request = %d, expected 1", play.updates)
	}
	if play.draws != 0 {
		t.Error("no draw should happen while transitions are pending")
	}
	if len(journal) != 0 {
		t.Errorf("no lifecycle calls before the apply pass, got %v", journal)
	}

	s.Step()
	expected := []string{"play.pause", "a.enter", "a.exit", "b.enter"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v, expected %v", journal, expected)
	}
	if a.updates != 0 || a.draws != 0 {
		t.Error("intermediate screen must never be updated or drawn")
	}
	if got := s.Stats().Depth; got != 2 {
		t.Errorf("Depth = %d, expected 2", got)
	}

	// A full period is owed after every apply, so b updates right away.
	s.Step()
	if b.updates < 1 {
		t.Errorf("b updates = %d, expected at least 1", b.updates)
	}
	if play.updates != 1 {
		t.Error("paused screen must not be updated")
	}
}

func TestUpdateRightAfterApply(t *testing.T) {
	menu := newRecorder("menu", nil)
	play := newRecorder("play", nil)
	var s *Scheduler
	menu.onUpdate = func(int) { s.RequestSwap(play) }

	s = New(quietConfig(), clock.NewManual(period, 0), nil, WithInitial(menu))
	s.Step()
	s.Step()

	// No time passes at all from here on.
	s.Step()
	if play.updates != 1 {
		t.Errorf("updates after apply with zero elapsed = %d, expected 1", play.updates)
	}
	s.Step()
	if play.updates != 1 {
		t.Errorf("updates = %d, expected exactly one owed period", play.updates)
	}
}

func TestSlowEnterOwesOneUpdate(t *testing.T) {
	menu := newRecorder("menu", nil)
	play := newRecorder("play", nil)
	clk := clock.NewManual(period, 0)
	var s *Scheduler
	menu.onUpdate = func(int) { s.RequestSwap(play) }
	play.onEnter = func() { clk.Advance(time.Second) }

	s = New(quietConfig(), clk, nil, WithInitial(menu))
	s.Step()
	s.Step()

	s.Step()
	if play.updates != 1 {
		t.Errorf("updates after a one second enter = %d, expected 1", play.updates)
	}
	if st := s.Stats(); st.UpdateLag >= period {
		t.Errorf("UpdateLag = %v, expected below one period", st.UpdateLag)
	}
}

func TestPopThreeResumesOnce(t *testing.T) {
	var journal []string
	var s *Scheduler

	s0 := newRecorder("s0", &journal)
	s1 := newRecorder("s1", &journal)
	s2 := newRecorder("s2", &journal)
	s3 := newRecorder("s3", &journal)
	s3.onUpdate = func(int) { s.RequestPop(3) }

	s = New(quietConfig(), clock.NewManual(period, 0), nil, WithInitial(s0, s1, s2, s3))
	journal = nil

	s.Step()
	s.Step()

	expected := []string{"s3.exit", "s2.exit", "s1.exit", "s0.resume"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v, expected %v", journal, expected)
	}
	if count(journal, "s0.resume") != 1 {
		t.Error("s0 should resume exactly once")
	}
}

func TestInitialScreensPausedBeneath(t *testing.T) {
	var journal []string
	menu := newRecorder("menu", &journal)
	play := newRecorder("play", &journal)

	New(quietConfig(), clock.NewManual(), nil, WithInitial(menu, play))

	expected := []string{"menu.enter", "menu.pause", "play.enter"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v, expected %v", journal, expected)
	}
}

func TestSwap(t *testing.T) {
	var journal []string
	var s *Scheduler

	menu := newRecorder("menu", &journal)
	play := newRecorder("play", &journal)
	menu.onUpdate = func(int) { s.RequestSwap(play) }

	s = New(quietConfig(), clock.NewManual(period, 0), nil, WithInitial(menu))
	journal = nil
	s.Step()
	s.Step()

	expected := []string{"menu.exit", "play.enter"}
	if !reflect.DeepEqual(journal, expected) {
		t.Errorf("journal = %v, expected %v", journal, expected)
	}
	if s.Stats().Depth != 1 {
		t.Errorf("Depth = %d, expected 1", s.Stats().Depth)
	}
}

func TestOverflowSkippable(t *testing.T) {
	r := newRecorder("menu", nil)
	r.skippy = true

	s := New(quietConfig(), clock.NewManual(50*period, 0), nil, WithInitial(r))
	s.Step()

	if r.updates != 1 {
		t.Errorf("updates = %d, expected 1", r.updates)
	}
	if r.skipped != 49 {
		t.Errorf("observer saw %d skipped ticks, expected 49", r.skipped)
	}
	st := s.Stats()
	if st.Skipped != 49 {
		t.Errorf("Stats.Skipped = %d, expected 49", st.Skipped)
	}
	if st.Ticks != 1 {
		t.Errorf("Stats.Ticks = %d, expected 1", st.Ticks)
	}
	if st.UpdateLag >= period {
		t.Errorf("UpdateLag = %v, expected under one period", st.UpdateLag)
	}
	if st.Behind != 0 {
		t.Error("skippable screens never count as falling behind")
	}
}

func TestOverflowNotSkippable(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	r := newRecorder("play", nil)
	s := New(quietConfig(), clock.NewManual(50*period, 0, 50*period, 0), nil,
		WithInitial(r), WithLogger(logger))
	s.Step()

	if r.updates != 50 {
		t.Errorf("updates = %d, expected 50", r.updates)
	}
	if s.Stats().Skipped != 0 {
		t.Error("non-skippable screens must not drop ticks")
	}
	if !strings.Contains(buf.String(), "falling behind") {
		t.Errorf("expected a falling behind warning, log = %q", buf.String())
	}
	if s.Stats().Behind != 1 {
		t.Errorf("Behind = %d, expected 1", s.Stats().Behind)
	}

	// Caught up after the first pass, so the second overflow warns again.
	s.Step()
	if s.Stats().Behind != 2 {
		t.Errorf("Behind = %d, expected 2", s.Stats().Behind)
	}
	if r.updates != 100 {
		t.Errorf("updates = %d, expected 100", r.updates)
	}
}

func TestPowerSaverSleep(t *testing.T) {
	cfg := DefaultConfig()
	clk := clock.NewManual()
	r := newRecorder("play", nil)
	s := New(cfg, clk, nil, WithInitial(r))

	s.Step()

	sleeps := clk.Sleeps()
	if len(sleeps) != 1 {
		t.Fatalf("sleeps = %v, expected one", sleeps)
	}
	expected := period - DefaultSleepSlack
	if sleeps[0] != expected {
		t.Errorf("sleep = %v, expected %v", sleeps[0], expected)
	}
}

func TestPowerSaverSkipsSleepWhenDue(t *testing.T) {
	clk := clock.NewManual()
	s := New(DefaultConfig(), clk, nil, WithInitial(newRecorder("play", nil)))
	s.Step()

	// Only the slack remains before the next update, so no second sleep.
	s.Step()
	if n := len(clk.Sleeps()); n != 1 {
		t.Errorf("sleeps = %v, expected exactly one", clk.Sleeps())
	}
}

func TestSetUpdateRateZeroIgnored(t *testing.T) {
	s := New(quietConfig(), clock.NewManual(), nil)
	s.SetUpdateRate(0)
	if s.UpdatePeriod() != period {
		t.Errorf("UpdatePeriod() = %v, expected %v", s.UpdatePeriod(), period)
	}
	s.SetUpdateRate(30)
	if s.UpdatePeriod() != time.Second/30 {
		t.Errorf("UpdatePeriod() = %v, expected %v", s.UpdatePeriod(), time.Second/30)
	}

	s.SetDrawRate(0)
	if s.DrawPeriod() != 0 {
		t.Errorf("DrawPeriod() = %v, expected uncapped", s.DrawPeriod())
	}
	s.SetPowerSaver(true)
	if !s.PowerSaver() {
		t.Error("power saver should be on")
	}
}

func TestTooFastRatesIgnored(t *testing.T) {
	r := newRecorder("play", nil)
	r.skippy = true
	s := New(quietConfig(), clock.NewManual(frames(3, period)...), nil, WithInitial(r))

	s.SetUpdateRate(2_000_000_000)
	if s.UpdatePeriod() != period {
		t.Errorf("UpdatePeriod() = %v, expected %v", s.UpdatePeriod(), period)
	}
	s.SetDrawRate(2_000_000_000)
	if s.DrawPeriod() != 0 {
		t.Errorf("DrawPeriod() = %v, expected uncapped", s.DrawPeriod())
	}

	for range 3 {
		s.Step()
	}
	if r.updates != 3 {
		t.Errorf("updates = %d, expected 3", r.updates)
	}

	cfg := quietConfig()
	cfg.UpdatesPerSecond = 5_000_000_000
	if got := New(cfg, clock.NewManual(), nil).UpdatePeriod(); got != period {
		t.Errorf("UpdatePeriod() from config = %v, expected default %v", got, period)
	}
}

func TestZeroUpdateRateUsesDefault(t *testing.T) {
	cfg := quietConfig()
	cfg.UpdatesPerSecond = 0
	cfg.MaxLagMultiple = 0
	s := New(cfg, clock.NewManual(), nil)

	if s.UpdatePeriod() != time.Second/time.Duration(DefaultUpdatesPerSecond) {
		t.Errorf("UpdatePeriod() = %v, expected default", s.UpdatePeriod())
	}
	if s.maxLagMultiple != DefaultMaxLagMultiple {
		t.Errorf("maxLagMultiple = %v, expected default", s.maxLagMultiple)
	}
}

func TestPowerSaverNeverSleepsUncapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DrawsPerSecond = 0
	clk := clock.NewManual(frames(5, time.Millisecond)...)
	r := newRecorder("play", nil)
	s := New(cfg, clk, nil, WithInitial(r))

	for range 5 {
		s.Step()
	}
	if n := len(clk.Sleeps()); n != 0 {
		t.Errorf("sleeps = %v, expected none", clk.Sleeps())
	}
	if r.draws != 5 {
		t.Errorf("draws = %d, expected 5", r.draws)
	}
}

func TestUncappedDrawsEveryPass(t *testing.T) {
	cfg := quietConfig()
	cfg.DrawsPerSecond = 0

	r := newRecorder("play", nil)
	s := New(cfg, clock.NewManual(frames(10, time.Millisecond)...), nil, WithInitial(r))
	for range 10 {
		s.Step()
	}
	if r.draws != 10 {
		t.Errorf("draws = %d, expected 10", r.draws)
	}
}

func TestResizePropagates(t *testing.T) {
	lower := newRecorder("lower", nil)
	top := newRecorder("top", nil)
	in := &fixedInput{frames: []core.InputFrame{
		{Resized: true, Size: core.Size{W: 100, H: 30}},
	}}

	s := New(quietConfig(), clock.NewManual(period, 0), in, WithInitial(lower, top))
	s.Step()

	want := core.Size{W: 100, H: 30}
	if s.Size() != want {
		t.Errorf("Size() = %v, expected %v", s.Size(), want)
	}
	for _, r := range []*recorder{lower, top} {
		last := r.sizes[len(r.sizes)-1]
		if last != want {
			t.Errorf("%s last size = %v, expected %v", r.name, last, want)
		}
	}
}

type capture struct {
	frames []string
}

func (c *capture) Present(cv *core.Canvas) {
	c.frames = append(c.frames, cv.String())
}

type painter struct {
	recorder
}

func (p *painter) Draw(dst *core.Canvas, alpha float64) {
	p.recorder.Draw(dst, alpha)
	dst.DrawText(0, 0, fmt.Sprintf("frame %d", p.draws))
}

func TestPresenterReceivesFrames(t *testing.T) {
	cfg := quietConfig()
	cfg.Size = core.Size{W: 10, H: 1}
	out := &capture{}
	p := &painter{recorder: recorder{name: "p"}}

	s := New(cfg, clock.NewManual(frames(2, period)...), nil, WithInitial(p), WithPresenter(out))
	s.Step()
	s.Step()

	if len(out.frames) != 2 {
		t.Fatalf("presented %d frames, expected 2", len(out.frames))
	}
	if !strings.HasPrefix(out.frames[1], "frame 2") {
		t.Errorf("frame = %q, expected it to start with %q", out.frames[1], "frame 2")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := DefaultConfig()
	cfg.SleepSlack = 0
	r := newRecorder("play", nil)
	r.onUpdate = func(n int) {
		if n == 5 {
			cancel()
		}
	}

	s := New(cfg, clock.NewManual(), nil, WithInitial(r))
	err := s.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
	if r.updates != 5 {
		t.Errorf("updates = %d, expected 5", r.updates)
	}
}

func TestRunStopsWhenStackEmpties(t *testing.T) {
	var s *Scheduler
	r := newRecorder("play", nil)
	r.onUpdate = func(int) { s.RequestPop(1) }

	s = New(quietConfig(), clock.NewManual(period, 0), nil, WithInitial(r))
	if err := s.Run(context.Background()); err != nil {
		t.Errorf("Run() = %v, expected nil", err)
	}
	if s.Stats().Depth != 0 {
		t.Error("stack should be empty")
	}
}
