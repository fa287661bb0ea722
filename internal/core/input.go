package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionUp             // W, Up arrow (menus, editor cursor)
	ActionDown           // S, Down arrow
	ActionJump           // Space
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionPause          // P
	ActionQuit           // Q
	ActionPlace          // X - editor: cycle tile under cursor
	ActionSave           // Ctrl+S - editor: save level
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionPlace:
		return "Place"
	case ActionSave:
		return "Save"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one fixed update.
//
// Pressed holds edge events (the action started during this tick) and Held
// holds level state (the action is down). A pressed action is always held.
// Resized is set when the viewport changed since the previous snapshot.
type InputFrame struct {
	Pressed map[Action]bool
	Held    map[Action]bool
	Resized bool
	Size    Size
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Press records an edge event for a.
func (f *InputFrame) Press(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
	f.Hold(a)
}

// Hold records that a is down.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// IsPressed reports whether a started this tick.
func (f InputFrame) IsPressed(a Action) bool {
	return f.Pressed[a]
}

// IsHeld reports whether a is down this tick.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a] || f.Pressed[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Pressed)
	clear(f.Held)
	f.Resized = false
}

// Clone creates a deep copy of this frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Pressed {
		c.Pressed[k] = v
	}
	for k, v := range f.Held {
		c.Held[k] = v
	}
	c.Resized = f.Resized
	c.Size = f.Size
	return c
}
