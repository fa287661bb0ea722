package screens

import (
	"strings"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

type loadResult struct {
	lvl level.Level
	err error
}

// Loading reads a level on a background goroutine and swaps itself for the
// play screen once the result is in. The frame loop keeps running while
// the load is in flight.
type Loading struct {
	screen.Base
	env  *Env
	id   string
	menu *Menu // receives load errors; may be nil

	result chan loadResult
	frame  int
}

// NewLoading creates a loading screen for the level id.
func NewLoading(env *Env, id string, menu *Menu) *Loading {
	return &Loading{env: env, id: id, menu: menu}
}

func (l *Loading) SkipsUpdates() bool { return true }

func (l *Loading) OnEnter() {
	l.env.logger().Debug("loading level", "level", l.id)

	// buffered so the worker never blocks if the screen is gone
	l.result = make(chan loadResult, 1)
	levels, id := l.env.Levels, l.id
	go func() {
		lvl, err := levels.Load(id)
		l.result <- loadResult{lvl: lvl, err: err}
	}()
}

func (l *Loading) Update(time.Duration) {
	l.frame++

	select {
	case res := <-l.result:
		if res.err != nil {
			l.env.logger().Error("loading level", "level", l.id, "err", res.err)
			if l.menu != nil {
				l.menu.SetMessage("Could not load " + l.id + ": " + res.err.Error())
			}
			l.env.Nav.RequestPop(1)
			return
		}
		l.env.Nav.RequestSwap(NewPlay(l.env, res.lvl))
	default:
	}
}

func (l *Loading) Draw(dst *core.Canvas, _ float64) {
	dots := strings.Repeat(".", (l.frame/10)%4)
	dst.DrawTextCentered(dst.Height()/2, "Loading "+l.id+dots, core.ColorWhite)
}
