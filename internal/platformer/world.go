// Package platformer implements the side-scrolling platformer simulation.
// A World advances one fixed tick per Step and renders an interpolated view
// between the previous and current tick.
package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Player hitbox, in tiles. Slightly under one tile so the player fits
// through one-tile gaps.
const (
	PlayerWidth  = 0.8
	PlayerHeight = 0.9
)

// Player is the controllable body.
type Player struct {
	Box      core.Box
	Vel      core.Vec2
	Grounded bool
	Facing   int // -1 left, 1 right
}

// World holds the state of one level being played.
type World struct {
	phys  config.PhysicsConfig
	orig  level.Level
	level level.Level // working copy; collected coins are removed
	spawn core.Vec2

	player  Player
	prevPos core.Vec2
	cam     core.Vec2
	prevCam core.Vec2
	view    core.Size

	ticks  int
	coins  int
	deaths int
	won    bool
}

// NewWorld creates a world for lvl. The level is copied.
func NewWorld(lvl level.Level, phys config.PhysicsConfig) *World {
	w := &World{
		phys: phys,
		orig: lvl.Clone(),
		view: core.Size{W: 80, H: 24},
	}
	sx, sy := lvl.Spawn()
	w.spawn = core.Vec2{
		X: float64(sx) + (1-PlayerWidth)/2,
		Y: float64(sy) + (1 - PlayerHeight),
	}
	w.restart()
	return w
}

// restart puts the player back on the spawn point with a fresh level.
func (w *World) restart() {
	w.level = w.orig.Clone()
	w.coins = 0
	w.player = Player{
		Box:    core.Box{Pos: w.spawn, W: PlayerWidth, H: PlayerHeight},
		Facing: 1,
	}
	w.prevPos = w.spawn
	w.updateCamera()
	w.prevCam = w.cam
}

// Level returns the level being played.
func (w *World) Level() level.Level {
	return w.orig
}

// Player returns the player state.
func (w *World) Player() Player {
	return w.player
}

// Camera returns the top-left world position of the view.
func (w *World) Camera() core.Vec2 {
	return w.cam
}

// SetViewport sets the visible area, including the HUD row.
func (w *World) SetViewport(size core.Size) {
	w.view = size
	w.updateCamera()
	w.prevCam = w.cam
}

// State returns the current game state.
func (w *World) State() core.GameState {
	return core.GameState{
		Ticks:      w.ticks,
		Coins:      w.coins,
		CoinsTotal: w.orig.Count(level.TileCoin),
		Deaths:     w.deaths,
		Won:        w.won,
	}
}

// AddTicks advances the run clock without simulating, for ticks the
// scheduler dropped while catching up.
func (w *World) AddTicks(n int) {
	if !w.won && n > 0 {
		w.ticks += n
	}
}

// Step advances the world by one tick.
func (w *World) Step(in core.InputFrame) core.StepResult {
	if w.won {
		return core.StepResult{State: w.State()}
	}

	w.ticks++
	w.prevPos = w.player.Box.Pos
	w.prevCam = w.cam

	w.applyInput(in)
	w.applyGravity()
	w.moveX()
	w.moveY()

	res := w.touch()
	if res.Died {
		w.deaths++
		w.restart()
	}
	w.updateCamera()

	res.State = w.State()
	return res
}

func (w *World) applyInput(in core.InputFrame) {
	dir := 0
	if in.IsHeld(core.ActionLeft) {
		dir--
	}
	if in.IsHeld(core.ActionRight) {
		dir++
	}
	if dir != 0 {
		w.player.Facing = dir
	}

	target := float64(dir) * w.phys.RunSpeed
	if w.player.Grounded {
		w.player.Vel.X = target
	} else {
		w.player.Vel.X += (target - w.player.Vel.X) * w.phys.AirControl
	}

	jump := in.IsPressed(core.ActionJump) || in.IsPressed(core.ActionUp)
	if jump && w.player.Grounded {
		w.player.Vel.Y = w.phys.JumpImpulse
		w.player.Grounded = false
	}
}

func (w *World) applyGravity() {
	w.player.Vel.Y += w.phys.Gravity
	if w.player.Vel.Y > w.phys.MaxFallSpeed {
		w.player.Vel.Y = w.phys.MaxFallSpeed
	}
}

// moveX moves horizontally and pushes the player out of solid tiles.
func (w *World) moveX() {
	p := &w.player
	p.Box.Pos.X += p.Vel.X

	maxX := float64(w.level.Width) - p.Box.W
	if p.Box.Pos.X < 0 {
		p.Box.Pos.X = 0
		p.Vel.X = 0
	} else if p.Box.Pos.X > maxX {
		p.Box.Pos.X = maxX
		p.Vel.X = 0
	}

	r := p.Box.Tiles()
	for ty := r.Y; ty < r.Bottom(); ty++ {
		for tx := r.X; tx < r.Right(); tx++ {
			if !w.level.At(tx, ty).Solid() {
				continue
			}
			switch {
			case p.Vel.X > 0:
				p.Box.Pos.X = float64(tx) - p.Box.W
			case p.Vel.X < 0:
				p.Box.Pos.X = float64(tx + 1)
			}
			p.Vel.X = 0
			return
		}
	}
}

// moveY moves vertically, landing on or bumping into solid tiles.
func (w *World) moveY() {
	p := &w.player
	p.Box.Pos.Y += p.Vel.Y
	p.Grounded = false

	r := p.Box.Tiles()
	for ty := r.Y; ty < r.Bottom(); ty++ {
		for tx := r.X; tx < r.Right(); tx++ {
			if !w.level.At(tx, ty).Solid() {
				continue
			}
			if p.Vel.Y > 0 {
				p.Box.Pos.Y = float64(ty) - p.Box.H
				p.Grounded = true
			} else {
				p.Box.Pos.Y = float64(ty + 1)
			}
			p.Vel.Y = 0
			return
		}
	}
}

// touch handles coins, spikes and the goal under the player.
func (w *World) touch() core.StepResult {
	var res core.StepResult

	if w.player.Box.Pos.Y >= float64(w.level.Height) {
		res.Died = true
		return res
	}

	r := w.player.Box.Tiles()
	for ty := r.Y; ty < r.Bottom(); ty++ {
		for tx := r.X; tx < r.Right(); tx++ {
			switch w.level.At(tx, ty) {
			case level.TileCoin:
				w.level.Set(tx, ty, level.TileEmpty)
				w.coins++
				res.Collected++
			case level.TileSpike:
				res.Died = true
			case level.TileGoal:
				res.Won = true
			}
		}
	}

	if res.Died {
		res.Won = false
	}
	if res.Won {
		w.won = true
	}
	return res
}

// updateCamera centres the view on the player, clamped to the level.
func (w *World) updateCamera() {
	viewW := float64(w.view.W)
	viewH := float64(max(w.view.H-1, 1)) // top row is the HUD

	centre := w.player.Box.Pos.X + w.player.Box.W/2
	w.cam.X = core.ClampF(centre-viewW/2, 0, max(float64(w.level.Width)-viewW, 0))

	middle := w.player.Box.Pos.Y + w.player.Box.H/2
	w.cam.Y = core.ClampF(middle-viewH/2, 0, max(float64(w.level.Height)-viewH, 0))
}
