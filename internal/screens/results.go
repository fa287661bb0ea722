package screens

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Results shows the outcome of a finished run.
type Results struct {
	screen.Base
	env  *Env
	lvl  level.Level
	run  storage.Run
	best *storage.Run // previous best, nil if none

	in core.InputFrame
}

// NewResults creates a results screen. prevBest is the player's best run
// before this one.
func NewResults(env *Env, lvl level.Level, run storage.Run, prevBest *storage.Run) *Results {
	return &Results{env: env, lvl: lvl, run: run, best: prevBest}
}

func (r *Results) SkipsUpdates() bool { return true }

// NewBest reports whether the run beat the previous best.
func (r *Results) NewBest() bool {
	return r.best == nil || r.run.Duration() < r.best.Duration()
}

func (r *Results) HandleInput(in core.InputFrame) {
	r.in = in
}

func (r *Results) Update(time.Duration) {
	in := r.in
	r.in = core.InputFrame{}

	switch {
	case in.IsPressed(core.ActionConfirm), in.IsPressed(core.ActionBack), in.IsPressed(core.ActionQuit):
		r.env.Nav.RequestPop(1)
	case in.IsPressed(core.ActionJump):
		r.env.Nav.RequestSwap(NewPlay(r.env, r.lvl))
	}
}

func (r *Results) Draw(dst *core.Canvas, _ float64) {
	tick := r.env.tick()
	lines := []string{
		fmt.Sprintf("Time    %s", platformer.FormatTicks(r.run.Ticks, tick)),
		fmt.Sprintf("Coins   %d/%d", r.run.Coins, r.lvl.Count(level.TileCoin)),
		fmt.Sprintf("Deaths  %d", r.run.Deaths),
	}
	if r.run.Skipped > 0 {
		lines = append(lines, fmt.Sprintf("Dropped %d ticks", r.run.Skipped))
	}
	switch {
	case r.NewBest():
		lines = append(lines, "", "New best time!")
	default:
		lines = append(lines, "", "Best    "+formatDuration(r.best.Duration()))
	}

	drawMessageBox(dst, r.lvl.Title()+" complete", lines, core.ColorGreen)
	drawFooter(dst, "enter menu • space retry")
}

// formatDuration renders d as m:ss.cc.
func formatDuration(d time.Duration) string {
	return platformer.FormatTicks(int(d/time.Millisecond), time.Millisecond)
}
