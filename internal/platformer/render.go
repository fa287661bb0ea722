package platformer

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Visual characters for rendering
const (
	SolidChar  = '█'
	CoinChar   = '●'
	SpikeChar  = '▲'
	GoalChar   = '⚑'
	PlayerChar = '@'
)

// Glyph returns the rune and color used to draw a tile.
func Glyph(t level.Tile) (rune, core.Color) {
	switch t {
	case level.TileSolid:
		return SolidChar, core.ColorGray
	case level.TileCoin:
		return CoinChar, core.ColorBrightYellow
	case level.TileSpike:
		return SpikeChar, core.ColorRed
	case level.TileGoal:
		return GoalChar, core.ColorGreen
	case level.TileSpawn:
		return 'P', core.ColorCyan
	default:
		return ' ', core.ColorDefault
	}
}

// Render draws the world blended alpha of the way from the previous tick
// to the current one. Row 0 is the HUD.
func (w *World) Render(dst *core.Canvas, alpha float64, tick time.Duration) {
	cam := w.prevCam.Lerp(w.cam, alpha)
	pos := w.prevPos.Lerp(w.player.Box.Pos, alpha)

	camX := int(math.Round(cam.X))
	camY := int(math.Round(cam.Y))
	const top = 1

	for sy := top; sy < dst.Height(); sy++ {
		ty := camY + sy - top
		for sx := range dst.Width() {
			t := w.level.At(camX+sx, ty)
			if t == level.TileSpawn {
				continue
			}
			if r, col := Glyph(t); r != ' ' {
				dst.SetColor(sx, sy, r, col)
			}
		}
	}

	px := int(math.Round(pos.X)) - camX
	py := int(math.Round(pos.Y)) - camY + top
	dst.SetColor(px, py, PlayerChar, core.ColorBrightCyan)

	w.drawHUD(dst, tick)
}

func (w *World) drawHUD(dst *core.Canvas, tick time.Duration) {
	st := w.State()
	hud := fmt.Sprintf(" %s  %s  %s %d/%d  deaths %d ",
		w.orig.Title(),
		FormatTicks(st.Ticks, tick),
		string(CoinChar), st.Coins, st.CoinsTotal,
		st.Deaths,
	)
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)
}

// FormatTicks renders a tick count as m:ss.cc using the tick period.
func FormatTicks(ticks int, tick time.Duration) string {
	d := time.Duration(ticks) * tick
	m := int(d / time.Minute)
	s := int(d % time.Minute / time.Second)
	cs := int(d % time.Second / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%02d", m, s, cs)
}
