package screens

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/screen"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

const scoresPerLevel = 5

// Scores lists the best runs per level. Left and right switch levels.
type Scores struct {
	screen.Base
	env *Env

	levels []level.Level
	index  int
	runs   []storage.Run
	err    error
	in     core.InputFrame
}

// NewScores creates the best-times screen.
func NewScores(env *Env) *Scores {
	return &Scores{env: env}
}

func (s *Scores) SkipsUpdates() bool { return true }

func (s *Scores) OnEnter() {
	levels, err := s.env.Levels.List()
	if err != nil {
		s.err = err
		return
	}
	s.levels = levels
	s.refresh()
}

// Runs returns the rows currently shown.
func (s *Scores) Runs() []storage.Run {
	return s.runs
}

func (s *Scores) refresh() {
	s.runs, s.err = nil, nil
	if s.env.Runs == nil || len(s.levels) == 0 {
		return
	}
	s.runs, s.err = s.env.Runs.BestRuns(s.levels[s.index].ID, scoresPerLevel)
	if s.err != nil {
		s.env.logger().Error("loading best runs", "err", s.err)
	}
}

func (s *Scores) HandleInput(in core.InputFrame) {
	s.in = in
}

func (s *Scores) Update(time.Duration) {
	in := s.in
	s.in = core.InputFrame{}

	if in.IsPressed(core.ActionBack) || in.IsPressed(core.ActionQuit) || in.IsPressed(core.ActionConfirm) {
		s.env.Nav.RequestPop(1)
		return
	}
	if n := len(s.levels); n > 0 {
		prev := s.index
		if in.IsPressed(core.ActionLeft) {
			s.index = (s.index + n - 1) % n
		}
		if in.IsPressed(core.ActionRight) {
			s.index = (s.index + 1) % n
		}
		if s.index != prev {
			s.refresh()
		}
	}
}

func (s *Scores) Draw(dst *core.Canvas, _ float64) {
	dst.DrawTextCentered(1, "BEST TIMES", core.ColorBrightCyan)
	if s.err != nil {
		dst.DrawTextCentered(3, s.err.Error(), core.ColorRed)
	}
	if len(s.levels) == 0 {
		dst.DrawTextCentered(5, "No levels", core.ColorGray)
		return
	}

	lvl := s.levels[s.index]
	dst.DrawTextCentered(3, "◀ "+lvl.Title()+" ▶", core.ColorYellow)

	x := (dst.Width() - 36) / 2
	if len(s.runs) == 0 {
		dst.DrawText(x, 5, "No runs yet")
	}
	for i, r := range s.runs {
		line := fmt.Sprintf("%d. %-12s %9s  ✕%d", i+1, r.Player, formatDuration(r.Duration()), r.Deaths)
		col := core.ColorWhite
		if i == 0 {
			col = core.ColorBrightYellow
		}
		dst.DrawTextColor(x, 5+i, line, col)
	}
	drawFooter(dst, "←/→ level • esc back")
}
