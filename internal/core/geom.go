// Package core provides the basic types shared by the runtime and its
// screens: the canvas screens draw into, geometry, and the per-tick input
// snapshot. It has no external dependencies so that simulation code stays
// pure and testable.
package core

import "math"

// Size is a viewport size in terminal cells.
type Size struct {
	W, H int
}

// Rect is an integer axis-aligned rectangle in cell or tile coordinates.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Vec2 is a point or velocity in world units (one unit = one tile).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Lerp blends from v towards o by t (0 = v, 1 = o).
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Box is a floating-point AABB used for moving bodies.
type Box struct {
	Pos  Vec2 // Top-left corner
	W, H float64
}

// Intersects reports whether two boxes overlap. Touching edges do not count.
func (b Box) Intersects(o Box) bool {
	if b.Pos.X >= o.Pos.X+o.W || o.Pos.X >= b.Pos.X+b.W {
		return false
	}
	if b.Pos.Y >= o.Pos.Y+o.H || o.Pos.Y >= b.Pos.Y+b.H {
		return false
	}
	return true
}

// tileEpsilon keeps a box resting flush against a tile edge from being
// reported as overlapping the neighbouring tile.
const tileEpsilon = 1e-9

// Tiles returns the tile rectangle covered by b.
func (b Box) Tiles() Rect {
	x0 := int(math.Floor(b.Pos.X))
	y0 := int(math.Floor(b.Pos.Y))
	x1 := int(math.Ceil(b.Pos.X+b.W-tileEpsilon)) - 1
	y1 := int(math.Ceil(b.Pos.Y+b.H-tileEpsilon)) - 1
	return Rect{X: x0, Y: y0, W: x1 - x0 + 1, H: y1 - y0 + 1}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
