package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/schoolrun/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case " ":
		return core.ActionJump, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HoldTracker turns key press events into held-key frames.
//
// Terminals report presses and auto-repeats but never releases, so a key
// counts as held until no repeat has arrived for a while. The first press
// waits out the terminal's repeat delay; later repeats only need to bridge
// the repeat interval.
type HoldTracker struct {
	initial int // ticks a fresh press stays held
	repeat  int // ticks a repeat extends the hold
	left    map[core.Action]int
}

// NewHoldTracker sizes the hold windows for the given tick rate.
func NewHoldTracker(tickRate int) *HoldTracker {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &HoldTracker{
		initial: max(2, tickRate*2/3),
		repeat:  max(2, tickRate/8),
		left:    make(map[core.Action]int),
	}
}

// Press records a key event for the action.
func (h *HoldTracker) Press(a core.Action) {
	// Opposite directions cancel each other
	switch a {
	case core.ActionLeft:
		delete(h.left, core.ActionRight)
	case core.ActionRight:
		delete(h.left, core.ActionLeft)
	}

	if _, held := h.left[a]; held {
		h.left[a] = max(h.left[a], h.repeat)
		return
	}
	h.left[a] = h.initial
}

// Held reports whether the action is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.left[a]
	return ok
}

// Frame returns the held actions for this tick and ages every hold by one.
func (h *HoldTracker) Frame() core.InputFrame {
	f := core.NewInputFrame()
	for a, n := range h.left {
		f.Set(a)
		if n <= 1 {
			delete(h.left, a)
		} else {
			h.left[a] = n - 1
		}
	}
	return f
}

// Release drops every hold.
func (h *HoldTracker) Release() {
	clear(h.left)
}
