// Package registry maps variant IDs to game constructors.
//
// Variants add themselves from init, so the front ends and the CLI can list
// and start them by ID.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/schoolrun/internal/core"
)

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is one playable variant, independent of any front end.
// Front ends own input mapping, timing, drawing and sound.
type Game interface {
	// ID is the stable name used on the command line and in run history.
	ID() string

	// Title is shown in menus.
	Title() string

	// Reset starts a fresh run. It is called before the first Step, on
	// restart and after a tuning reload.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions held during it and
	// reports the new state plus any sound cues.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared character grid.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	build Factory
	title string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a variant. It panics on a duplicate ID.
func Register(id string, f Factory) {
	title := f().Title()

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{build: f, title: title}
}

// List returns every variant ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return infos
}

// Create builds a new instance of the variant.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.build(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
