package screens

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Play runs a level. Every fixed update is exactly one world step, so the
// screen catches up tick by tick unless the environment allows skipping.
type Play struct {
	screen.Base
	env   *Env
	world *platformer.World

	in      core.InputFrame
	skipped uint64
	paused  bool
	done    bool
}

// NewPlay creates a play screen for lvl.
func NewPlay(env *Env, lvl level.Level) *Play {
	return &Play{
		env:   env,
		world: platformer.NewWorld(lvl, env.Physics),
	}
}

// World returns the running simulation.
func (p *Play) World() *platformer.World {
	return p.world
}

// Level returns the level being played.
func (p *Play) Level() level.Level {
	return p.world.Level()
}

// Skipped returns how many ticks the loop dropped for this screen.
func (p *Play) Skipped() uint64 {
	return p.skipped
}

// Paused reports whether another screen covers this one.
func (p *Play) Paused() bool {
	return p.paused
}

func (p *Play) SkipsUpdates() bool { return p.env.SkipBacklog }

// OnTicksSkipped keeps the run clock honest when updates are dropped.
func (p *Play) OnTicksSkipped(n uint64) {
	p.skipped += n
	p.world.AddTicks(int(n))
	p.env.logger().Warn("dropped play ticks", "level", p.Level().ID, "ticks", n)
}

func (p *Play) OnEnter() {
	p.env.logger().Info("level started", "level", p.Level().ID, "player", p.env.Player)
}

func (p *Play) OnExit() {
	if !p.done {
		st := p.world.State()
		p.env.logger().Info("level abandoned", "level", p.Level().ID, "ticks", st.Ticks, "deaths", st.Deaths)
	}
}

func (p *Play) Pause()  { p.paused = true }
func (p *Play) Resume() { p.paused = false }

func (p *Play) OnWindowResize(size core.Size) {
	p.world.SetViewport(size)
}

func (p *Play) HandleInput(in core.InputFrame) {
	p.in = in
}

func (p *Play) Update(time.Duration) {
	if p.done {
		return
	}
	in := p.in
	p.in = core.InputFrame{}

	if in.IsPressed(core.ActionPause) || in.IsPressed(core.ActionBack) || in.IsPressed(core.ActionQuit) {
		p.env.Nav.RequestPush(NewPause(p.env, p))
		return
	}

	res := p.world.Step(in)
	if res.Died {
		p.env.logger().Debug("player died", "level", p.Level().ID, "deaths", res.State.Deaths)
	}
	if res.Won {
		p.finish(res.State)
	}
}

// finish records the run and moves on to the results screen.
func (p *Play) finish(st core.GameState) {
	p.done = true

	run := storage.Run{
		LevelID:  p.Level().ID,
		Player:   p.env.Player,
		Ticks:    st.Ticks,
		TickRate: int(p.env.TickRate),
		Coins:    st.Coins,
		Deaths:   st.Deaths,
		Skipped:  int(p.skipped),
	}
	if run.TickRate == 0 {
		run.TickRate = 60
	}

	var best *storage.Run
	if p.env.Runs != nil {
		var err error
		best, err = p.env.Runs.PlayerBest(run.LevelID, run.Player)
		if err != nil {
			p.env.logger().Error("reading best run", "err", err)
		}
		if _, err := p.env.Runs.SaveRun(run); err != nil {
			p.env.logger().Error("saving run", "err", err)
		}
	}

	p.env.logger().Info("level complete",
		"level", run.LevelID,
		"time", run.Duration(),
		"coins", run.Coins,
		"deaths", run.Deaths,
	)
	p.env.Nav.RequestSwap(NewResults(p.env, p.Level(), run, best))
}

func (p *Play) Draw(dst *core.Canvas, alpha float64) {
	p.world.Render(dst, alpha, p.env.tick())
}
