package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/schoolrun/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("MapKey() = %v, %v; want %v, %v", got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want MenuAction
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{"k", runeKey('k'), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"j", runeKey('j'), MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"q", runeKey('q'), MenuActionQuit},
		{"unbound", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHoldTrackerFreshPress(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionRight)

	// A fresh press bridges the terminal repeat delay
	for i := range 40 {
		if !h.Frame().Has(core.ActionRight) {
			t.Fatalf("released after %d ticks", i)
		}
	}
	if h.Frame().Has(core.ActionRight) {
		t.Error("still held after the initial window")
	}
}

func TestHoldTrackerRepeatsKeepHeld(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionRight)

	// Auto-repeat every 2 ticks keeps the key down well past the first window
	for i := range 200 {
		if i%2 == 0 {
			h.Press(core.ActionRight)
		}
		if !h.Frame().Has(core.ActionRight) {
			t.Fatalf("released at tick %d while repeating", i)
		}
	}

	// Once repeats stop, the key is released within the repeat window
	released := -1
	for i := range 20 {
		if !h.Frame().Has(core.ActionRight) {
			released = i
			break
		}
	}
	if released < 0 || released > 8 {
		t.Errorf("release took %d ticks, want at most 8", released)
	}
}

func TestHoldTrackerOppositeDirections(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionLeft)
	h.Press(core.ActionRight)

	f := h.Frame()
	if f.Has(core.ActionLeft) {
		t.Error("left should be released by right")
	}
	if !f.Has(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestHoldTrackerRelease(t *testing.T) {
	h := NewHoldTracker(60)
	h.Press(core.ActionJump)
	h.Press(core.ActionLeft)
	h.Release()

	if h.Held(core.ActionJump) || h.Held(core.ActionLeft) {
		t.Error("Release() should drop every hold")
	}
	if len(h.Frame().Actions) != 0 {
		t.Error("frame after Release() should be empty")
	}
}
