// Package screen defines the lifecycle contract every application screen
// implements, and the deferred transition machinery that pushes, pops and
// swaps screens between frames.
//
// Screens never mutate the stack directly. They ask a Navigator for a
// transition; the request is queued and applied as one batch at the next
// safe point of the frame loop.
package screen

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Screen is a single mutually exclusive application state (menu, play,
// pause, editor). All methods run on the frame loop goroutine.
type Screen interface {
	// OnEnter is called once, right after the screen lands on the stack.
	OnEnter()

	// OnExit is called once, right before the screen leaves the stack.
	OnExit()

	// Pause is called when another screen is pushed on top of this one.
	Pause()

	// Resume is called when this screen becomes the top again.
	Resume()

	// HandleInput receives the input snapshot for the coming update.
	HandleInput(in core.InputFrame)

	// Update advances the screen by one fixed step of length dt.
	Update(dt time.Duration)

	// Draw renders into dst. alpha is the fraction of a step elapsed since
	// the last Update, in [0, 1), for blending previous and current state.
	Draw(dst *core.Canvas, alpha float64)

	// OnWindowResize delivers the current viewport size.
	OnWindowResize(size core.Size)
}

// Skipper is implemented by screens that allow the frame loop to drop a
// backlog of updates instead of catching up tick by tick.
type Skipper interface {
	SkipsUpdates() bool
}

// SkipObserver is implemented by screens that want to know how many
// updates were dropped on their behalf.
type SkipObserver interface {
	OnTicksSkipped(n uint64)
}

// Navigator is the only way to change the screen stack.
// Requests take effect at the next apply point, never synchronously.
type Navigator interface {
	RequestPush(s Screen)
	RequestPop(count int)
	RequestSwap(s Screen)
}

// CanSkip reports whether s permits dropping updates.
func CanSkip(s Screen) bool {
	sk, ok := s.(Skipper)
	return ok && sk.SkipsUpdates()
}

// Base is a no-op Screen implementation meant for embedding.
type Base struct{}

func (Base) OnEnter() {}
func (Base) OnExit() {}
func (Base) Pause() {}
func (Base) Resume() {}
func (Base) HandleInput(core.InputFrame) {}
func (Base) Update(time.Duration) {}
func (Base) Draw(*core.Canvas, float64) {}
func (Base) OnWindowResize(core.Size) {}
