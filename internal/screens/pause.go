package screens

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

var pauseItems = []string{"Resume", "Restart level", "Quit to menu"}

// Pause overlays the play screen it covers. The play screen stays on the
// stack, paused, and is drawn frozen underneath.
type Pause struct {
	screen.Base
	env  *Env
	play *Play

	in     core.InputFrame
	cursor int
}

// NewPause creates a pause overlay for play.
func NewPause(env *Env, play *Play) *Pause {
	return &Pause{env: env, play: play}
}

func (p *Pause) SkipsUpdates() bool { return true }

func (p *Pause) HandleInput(in core.InputFrame) {
	p.in = in
}

func (p *Pause) Update(time.Duration) {
	in := p.in
	p.in = core.InputFrame{}

	p.cursor = moveCursor(in, p.cursor, len(pauseItems))

	if in.IsPressed(core.ActionPause) || in.IsPressed(core.ActionBack) {
		p.env.Nav.RequestPop(1)
		return
	}
	if in.IsPressed(core.ActionQuit) {
		p.env.Nav.RequestPop(2)
		return
	}
	if !in.IsPressed(core.ActionConfirm) && !in.IsPressed(core.ActionJump) {
		return
	}

	switch p.cursor {
	case 0:
		p.env.Nav.RequestPop(1)
	case 1:
		// One batch: the menu below stays paused throughout.
		p.env.Nav.RequestPop(2)
		p.env.Nav.RequestPush(NewPlay(p.env, p.play.Level()))
	case 2:
		p.env.Nav.RequestPop(2)
	}
}

func (p *Pause) Draw(dst *core.Canvas, _ float64) {
	if p.play != nil {
		p.play.Draw(dst, 0)
	}
	box := drawMessageBox(dst, "PAUSED", []string{"               ", "", ""}, core.ColorYellow)
	drawList(dst, box.X+2, box.Y+3, pauseItems, p.cursor)
}
