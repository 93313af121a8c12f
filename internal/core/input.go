package core

// Action is a semantic game action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A
	ActionRight          // Right arrow, D
	ActionJump           // Space - the action button (start, board, exit, climb, retry)
	ActionUp             // Up arrow, W - menu navigation
	ActionDown           // Down arrow, S - menu navigation
	ActionConfirm        // Enter
	ActionBack           // B, Escape in menus
	ActionRestart        // R - restart after a terminal outcome
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape in game
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
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions held during one simulation tick.
// Platforms fill it from whatever key state they can observe; games never
// see raw key events.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Latch is an edge detector over a held signal.
// Update must be called exactly once per frame; Pressed is true only on the
// frame where the signal went from released to held.
type Latch struct {
	prev bool
	cur  bool
}

// Update shifts the current sample into the previous slot and records held.
func (l *Latch) Update(held bool) {
	l.prev = l.cur
	l.cur = held
}

// Held reports the current sample.
func (l Latch) Held() bool {
	return l.cur
}

// Pressed reports a released-to-held transition on the latest frame.
func (l Latch) Pressed() bool {
	return l.cur && !l.prev
}

// Reset forgets both samples.
func (l *Latch) Reset() {
	*l = Latch{}
}

// Controls is what a level reads each frame: held directions plus the
// one-shot action press.
type Controls struct {
	Left          bool
	Right         bool
	ActionHeld    bool
	ActionPressed bool
	PausePressed  bool
}

// InputLatch turns a stream of InputFrames into Controls.
type InputLatch struct {
	action Latch
	pause  Latch
}

// Sample advances the latch by one frame and returns the controls for it.
func (l *InputLatch) Sample(f InputFrame) Controls {
	l.action.Update(f.Has(ActionJump))
	l.pause.Update(f.Has(ActionPause))

	return Controls{
		Left:          f.Has(ActionLeft),
		Right:         f.Has(ActionRight),
		ActionHeld:    l.action.Held(),
		ActionPressed: l.action.Pressed(),
		PausePressed:  l.pause.Pressed(),
	}
}

// Reset clears the edge history, so a key still held after a restart
// does not count as a fresh press.
func (l *InputLatch) Reset(f InputFrame) {
	l.action.Reset()
	l.pause.Reset()
	l.action.Update(f.Has(ActionJump))
	l.pause.Update(f.Has(ActionPause))
}
