package storage

import "github.com/vovakirdan/schoolrun/internal/core"

// RunTracker records each outcome of a session once, however many ticks
// the outcome stays on screen. A cleared outcome (a Level 2 retry) arms it
// again.
type RunTracker struct {
	store *Store // nil: outcomes are reported but not stored
	done  bool
}

// NewRunTracker creates a tracker writing to store, which may be nil.
func NewRunTracker(store *Store) *RunTracker {
	return &RunTracker{store: store}
}

// Observe inspects the state after a tick. It returns the new run and
// true exactly once per outcome. detail is only called in that case.
func (t *RunTracker) Observe(gameID string, st core.GameState, detail func() string) (RunEntry, bool, error) {
	if st.Outcome == core.OutcomeNone {
		t.done = false
		return RunEntry{}, false, nil
	}
	if t.done {
		return RunEntry{}, false, nil
	}
	t.done = true

	e := RunEntry{GameID: gameID, Outcome: st.Outcome, Ticks: st.Ticks}
	if detail != nil {
		e.Detail = detail()
	}
	if t.store == nil {
		return e, true, nil
	}

	id, err := t.store.SaveRun(e)
	e.ID = id
	return e, true, err
}

// Rearm forgets the last outcome. Call it when the session is reset.
func (t *RunTracker) Rearm() {
	t.done = false
}
