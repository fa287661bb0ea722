package platformer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

const tick = time.Second / 60

func mustLevel(t *testing.T, rows ...string) level.Level {
	t.Helper()
	data := "id: test\nname: Test\ntiles: |\n"
	for _, r := range rows {
		data += "  " + r + "\n"
	}
	lvl, err := level.Parse([]byte(data))
	if err != nil {
		t.Fatalf("bad test level: %v", err)
	}
	return lvl
}

func physics() config.PhysicsConfig {
	return config.DefaultConfig().Physics
}

func held(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Hold(a)
	}
	return in
}

func pressed(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Press(a)
	}
	return in
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

var flat = []string{
	"..........",
	"..........",
	".P....o..G",
	"##########",
}

func TestPlayerLandsOnFloor(t *testing.T) {
	w := NewWorld(mustLevel(t, flat...), physics())
	for range 10 {
		w.Step(core.NewInputFrame())
	}

	p := w.Player()
	if !p.Grounded {
		t.Error("player should be grounded")
	}
	if expected := 3 - PlayerHeight; !near(p.Box.Pos.Y, expected) {
		t.Errorf("player y = %v, expected %v", p.Box.Pos.Y, expected)
	}
	if p.Vel.Y != 0 {
		t.Errorf("vertical velocity = %v, expected 0 on the ground", p.Vel.Y)
	}
}

func TestRunCollectsCoinAndWins(t *testing.T) {
	w := NewWorld(mustLevel(t, flat...), physics())

	collected := 0
	won := false
	for range 200 {
		res := w.Step(held(core.ActionRight))
		collected += res.Collected
		if res.Won {
			won = true
			break
		}
	}

	if !won {
		t.Fatal("player should reach the goal")
	}
	st := w.State()
	if collected != 1 || st.Coins != 1 || st.CoinsTotal != 1 {
		t.Errorf("coins = %d (events %d) of %d, expected 1 of 1", st.Coins, collected, st.CoinsTotal)
	}
	if !st.Won {
		t.Error("state should report the win")
	}

	// A finished world no longer advances.
	ticks := st.Ticks
	w.Step(held(core.ActionRight))
	w.AddTicks(5)
	if w.State().Ticks != ticks {
		t.Errorf("ticks = %d after win, expected %d", w.State().Ticks, ticks)
	}
}

func TestJumpRises(t *testing.T) {
	w := NewWorld(mustLevel(t, flat...), physics())
	for range 5 {
		w.Step(core.NewInputFrame())
	}
	ground := w.Player().Box.Pos.Y

	w.Step(pressed(core.ActionJump))
	if w.Player().Grounded {
		t.Error("player should leave the ground")
	}
	for range 5 {
		w.Step(core.NewInputFrame())
	}
	if y := w.Player().Box.Pos.Y; y >= ground-1 {
		t.Errorf("player y = %v, expected above %v", y, ground-1)
	}

	// No double jump while airborne.
	vy := w.Player().Vel.Y
	w.Step(pressed(core.ActionJump))
	if w.Player().Vel.Y < vy {
		t.Error("jumping in mid-air should not add upward velocity")
	}
}

func TestWallBlocks(t *testing.T) {
	w := NewWorld(mustLevel(t,
		"..........",
		".P..#...G.",
		"##########",
	), physics())

	for range 100 {
		w.Step(held(core.ActionRight))
	}
	if x := w.Player().Box.Pos.X; x > 4-PlayerWidth+1e-9 {
		t.Errorf("player x = %v, expected to stop at the wall (%v)", x, 4-PlayerWidth)
	}
}

func TestSpikesRestart(t *testing.T) {
	w := NewWorld(mustLevel(t,
		".......",
		".P.^..G",
		"#######",
	), physics())
	spawn := w.Player().Box.Pos

	died := false
	for range 100 {
		if res := w.Step(held(core.ActionRight)); res.Died {
			died = true
			break
		}
	}
	if !died {
		t.Fatal("player should die on spikes")
	}
	if w.State().Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", w.State().Deaths)
	}
	if w.Player().Box.Pos != spawn {
		t.Errorf("player at %v, expected spawn %v", w.Player().Box.Pos, spawn)
	}
}

func TestFallingOutRestartsAndResetsCoins(t *testing.T) {
	w := NewWorld(mustLevel(t,
		".........",
		".Po....G.",
		"##.....##",
	), physics())

	died := false
	for range 200 {
		if res := w.Step(held(core.ActionRight)); res.Died {
			died = true
			break
		}
	}
	if !died {
		t.Fatal("player should die after falling out")
	}
	if w.State().Coins != 0 {
		t.Errorf("Coins = %d, expected reset to 0", w.State().Coins)
	}
	if w.level.At(2, 1) != level.TileCoin {
		t.Error("coins should be restored on restart")
	}
}

func TestDeterminism(t *testing.T) {
	lvl := mustLevel(t, flat...)
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%40 < 25 {
			inputs[i].Hold(core.ActionRight)
		} else {
			inputs[i].Hold(core.ActionLeft)
		}
		if i%17 == 0 {
			inputs[i].Press(core.ActionJump)
		}
	}

	run := func() (core.GameState, Player) {
		w := NewWorld(lvl, physics())
		for _, in := range inputs {
			w.Step(in)
		}
		return w.State(), w.Player()
	}

	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if p1 != p2 {
		t.Errorf("Determinism failed: players differ. Run1=%+v, Run2=%+v", p1, p2)
	}
}

func TestRenderInterpolates(t *testing.T) {
	w := NewWorld(mustLevel(t, flat...), physics())
	w.SetViewport(core.Size{W: 10, H: 5})
	for range 5 {
		w.Step(core.NewInputFrame())
	}
	for range 10 {
		w.Step(held(core.ActionRight))
	}

	column := func(alpha float64) int {
		c := core.NewCanvas(10, 5)
		w.Render(c, alpha, tick)
		for y := range c.Height() {
			for x := range c.Width() {
				if c.Get(x, y) == PlayerChar {
					return x
				}
			}
		}
		t.Fatalf("player not drawn at alpha %v", alpha)
		return -1
	}

	prev := int(math.Round(w.prevPos.X))
	if got := column(0); got != prev {
		t.Errorf("alpha 0 column = %d, expected previous position %d", got, prev)
	}
	curr := int(math.Round(w.Player().Box.Pos.X))
	if got := column(0.999); got != curr {
		t.Errorf("alpha ~1 column = %d, expected current position %d", got, curr)
	}

	c := core.NewCanvas(40, 5)
	w.Render(c, 0.5, tick)
	if !strings.Contains(c.Row(0), "Test") {
		t.Errorf("HUD = %q, expected level name", c.Row(0))
	}
	if c.Get(0, 4) != SolidChar {
		t.Errorf("floor rune = %q, expected %q", c.Get(0, 4), SolidChar)
	}
}

func TestCameraFollowsAndClamps(t *testing.T) {
	row := strings.Repeat(".", 60)
	lvl := mustLevel(t,
		row,
		".P"+strings.Repeat(".", 57)+"G",
		strings.Repeat("#", 60),
	)
	w := NewWorld(lvl, physics())
	w.SetViewport(core.Size{W: 20, H: 4})

	if w.Camera().X != 0 {
		t.Errorf("camera x = %v at start, expected 0", w.Camera().X)
	}
	for range 150 {
		w.Step(held(core.ActionRight))
	}
	cam := w.Camera().X
	if cam <= 0 || cam > 40 {
		t.Errorf("camera x = %v, expected within (0, 40]", cam)
	}
}

func TestAddTicks(t *testing.T) {
	w := NewWorld(mustLevel(t, flat...), physics())
	w.Step(core.NewInputFrame())
	w.AddTicks(9)
	w.AddTicks(-3)
	if w.State().Ticks != 10 {
		t.Errorf("Ticks = %d, expected 10", w.State().Ticks)
	}
}

func TestFormatTicks(t *testing.T) {
	if got := FormatTicks(125, tick); got != "0:02.08" {
		t.Errorf("FormatTicks(125) = %q, expected 0:02.08", got)
	}
	if got := FormatTicks(50*75, time.Second/50); got != "1:15.00" {
		t.Errorf("FormatTicks(3750) = %q, expected 1:15.00", got)
	}
}
