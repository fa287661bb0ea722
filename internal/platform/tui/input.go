package tui

import (
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DefaultHoldTicks is how many updates a key counts as held after its last
// press or auto-repeat.
const DefaultHoldTicks = 9

// Input collects key events from the terminal and hands the frame loop one
// snapshot per fixed update.
//
// Terminals report presses and auto-repeats but never releases, so a key
// stays held for a few updates after each event. The collector is written
// by the Bubble Tea goroutine and read by the frame loop.
type Input struct {
	mu        sync.Mutex
	holdTicks int
	pressed   map[core.Action]bool
	held      map[core.Action]int // updates left
	resized   bool
	size      core.Size
}

// NewInput creates a collector. holdTicks <= 0 selects DefaultHoldTicks.
func NewInput(holdTicks int) *Input {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &Input{
		holdTicks: holdTicks,
		pressed:   make(map[core.Action]bool),
		held:      make(map[core.Action]int),
	}
}

// Press records a key event for a.
func (in *Input) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	in.mu.Lock()
	defer in.mu.Unlock()

	// an auto-repeat only extends the hold
	if in.held[a] == 0 {
		in.pressed[a] = true
	}
	in.held[a] = in.holdTicks
}

// Release forgets every held key, e.g. when the terminal loses focus.
func (in *Input) Release() {
	in.mu.Lock()
	defer in.mu.Unlock()
	clear(in.held)
	clear(in.pressed)
}

// Resize records a new viewport size for the next snapshot.
func (in *Input) Resize(size core.Size) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.size = size
	in.resized = true
}

// Poll returns the snapshot for one update and ages every held key.
func (in *Input) Poll() core.InputFrame {
	in.mu.Lock()
	defer in.mu.Unlock()

	f := core.NewInputFrame()
	for a := range in.pressed {
		f.Press(a)
	}
	clear(in.pressed)

	for a, left := range in.held {
		f.Hold(a)
		if left <= 1 {
			delete(in.held, a)
		} else {
			in.held[a] = left - 1
		}
	}

	if in.resized {
		f.Resized = true
		f.Size = in.size
		in.resized = false
	}
	return f
}
