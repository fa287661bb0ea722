package screen

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

type entry struct {
	screen Screen
	paused bool
}

// Stack owns the ordered list of live screens. The last element is the
// current screen. It changes only inside Apply.
type Stack struct {
	entries []entry
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Top returns the current screen, or nil if the stack is empty.
func (s *Stack) Top() Screen {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1].screen
}

// Empty reports whether no screens are left.
func (s *Stack) Empty() bool {
	return len(s.entries) == 0
}

// Len returns the number of screens on the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Each calls fn for every screen, bottom to top.
func (s *Stack) Each(fn func(Screen)) {
	for _, e := range s.entries {
		fn(e.screen)
	}
}

// Apply runs a drained batch to completion.
//
// A push pauses the screen it covers unless that screen is already paused.
// A pop exits and releases the top; if the final request of the batch is a
// pop, the screen it reveals is resumed once. A swap is a pop that never
// resumes followed by a push. Pops on an empty stack do nothing.
func (s *Stack) Apply(batch []Request, size core.Size) {
	for i, req := range batch {
		last := i == len(batch)-1

		switch req.Kind {
		case KindPush:
			s.push(req.Screen, size)

		case KindPop:
			s.pop()
			if last {
				s.resumeTop()
			}

		case KindSwap:
			s.pop()
			s.push(req.Screen, size)
		}
	}
}

func (s *Stack) push(scr Screen, size core.Size) {
	if scr == nil {
		return
	}
	if n := len(s.entries); n > 0 && !s.entries[n-1].paused {
		s.entries[n-1].screen.Pause()
		s.entries[n-1].paused = true
	}

	s.entries = append(s.entries, entry{screen: scr})
	scr.OnEnter()
	scr.OnWindowResize(size)
}

func (s *Stack) pop() {
	n := len(s.entries)
	if n == 0 {
		return
	}

	s.entries[n-1].screen.OnExit()
	s.entries[n-1] = entry{}
	s.entries = s.entries[:n-1]
}

func (s *Stack) resumeTop() {
	n := len(s.entries)
	if n == 0 || !s.entries[n-1].paused {
		return
	}
	s.entries[n-1].paused = false
	s.entries[n-1].screen.Resume()
}
