package screens

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/platformer"
	"github.com/vovakirdan/tui-platformer/internal/screen"
)

// Editor is a tile editor for a single level. Changes are kept in memory
// until saved to the user's level directory.
type Editor struct {
	screen.Base
	env *Env
	lvl level.Level

	cx, cy  int
	dirty   bool
	message string
	in      core.InputFrame
	frame   int
}

// NewEditor opens lvl for editing. The editor works on a copy.
func NewEditor(env *Env, lvl level.Level) *Editor {
	e := &Editor{env: env, lvl: lvl.Clone()}
	if x, y := e.lvl.Spawn(); x >= 0 {
		e.cx, e.cy = x, y
	}
	return e
}

func (e *Editor) SkipsUpdates() bool { return true }

// Level returns the level being edited.
func (e *Editor) Level() level.Level {
	return e.lvl
}

// Cursor returns the cursor position in tiles.
func (e *Editor) Cursor() (int, int) {
	return e.cx, e.cy
}

// Dirty reports whether there are unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// Message returns the status line.
func (e *Editor) Message() string {
	return e.message
}

func (e *Editor) HandleInput(in core.InputFrame) {
	e.in = in
}

func (e *Editor) Update(time.Duration) {
	e.frame++
	in := e.in
	e.in = core.InputFrame{}

	if in.IsPressed(core.ActionBack) || in.IsPressed(core.ActionQuit) {
		if e.dirty {
			e.env.logger().Info("editor closed with unsaved changes", "level", e.lvl.ID)
		}
		e.env.Nav.RequestPop(1)
		return
	}

	if in.IsPressed(core.ActionLeft) {
		e.cx--
	}
	if in.IsPressed(core.ActionRight) {
		e.cx++
	}
	if in.IsPressed(core.ActionUp) {
		e.cy--
	}
	if in.IsPressed(core.ActionDown) {
		e.cy++
	}
	e.cx = core.Clamp(e.cx, 0, e.lvl.Width-1)
	e.cy = core.Clamp(e.cy, 0, e.lvl.Height-1)

	if in.IsPressed(core.ActionPlace) {
		e.place(nextTile(e.lvl.At(e.cx, e.cy)))
	}
	if in.IsPressed(core.ActionSave) {
		e.save()
	}
}

// place puts t under the cursor. A level keeps a single spawn point.
func (e *Editor) place(t level.Tile) {
	if t == level.TileSpawn {
		for i, v := range e.lvl.Tiles {
			if v == level.TileSpawn {
				e.lvl.Tiles[i] = level.TileEmpty
			}
		}
	}
	e.lvl.Set(e.cx, e.cy, t)
	e.dirty = true
	e.message = ""
}

func (e *Editor) save() {
	path, err := e.env.Levels.Save(e.lvl)
	if err != nil {
		e.env.logger().Error("saving level", "level", e.lvl.ID, "err", err)
		e.message = "Save failed: " + err.Error()
		return
	}
	e.env.logger().Info("level saved", "level", e.lvl.ID, "path", path)
	e.lvl.Source = path
	e.dirty = false
	e.message = "Saved " + path
}

// nextTile returns the tile after t in the palette.
func nextTile(t level.Tile) level.Tile {
	for i, p := range level.Palette {
		if p == t {
			return level.Palette[(i+1)%len(level.Palette)]
		}
	}
	return level.Palette[0]
}

func (e *Editor) Draw(dst *core.Canvas, _ float64) {
	// keep the cursor in view, leaving row 0 for the header
	viewH := dst.Height() - 2
	ox := core.Clamp(e.cx-dst.Width()/2, 0, max(0, e.lvl.Width-dst.Width()))
	oy := core.Clamp(e.cy-viewH/2, 0, max(0, e.lvl.Height-viewH))

	for y := 0; y < viewH; y++ {
		for x := 0; x < dst.Width(); x++ {
			lx, ly := x+ox, y+oy
			if !e.lvl.InBounds(lx, ly) {
				continue
			}
			r, col := platformer.Glyph(e.lvl.At(lx, ly))
			if r == ' ' {
				r, col = '·', core.ColorGray
			}
			dst.SetColor(x, y+1, r, col)
		}
	}

	if e.frame/15%2 == 0 {
		dst.SetColor(e.cx-ox, e.cy-oy+1, '█', core.ColorBrightYellow)
	}

	title := "EDIT " + e.lvl.ID
	if e.dirty {
		title += " *"
	}
	dst.DrawTextColor(0, 0, title, core.ColorBrightCyan)
	if e.message != "" {
		dst.DrawTextColor(len([]rune(title))+2, 0, e.message, core.ColorOrange)
	}
	drawFooter(dst, "arrows move • x cycle tile • ctrl+s save • esc back")
}
