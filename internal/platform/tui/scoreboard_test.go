package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

func boardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.RunEntry{
		{GameID: "menu-test", Outcome: core.OutcomeArrived, Ticks: 1800},
		{GameID: "menu-test", Outcome: core.OutcomeArrived, Ticks: 1200},
		{GameID: "menu-test", Outcome: core.OutcomeFell, Ticks: 900, Detail: "gap on the first floor"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	return store
}

// focus moves the board onto the test variant.
func focus(t *testing.T, m ScoreboardModel) ScoreboardModel {
	t.Helper()
	for i, v := range m.variants {
		if v.ID == "menu-test" {
			m.current = i
			m.reload()
			return m
		}
	}
	t.Fatal("menu-test not registered")
	return m
}

func TestScoreboardBestModeListsArrivals(t *testing.T) {
	m := focus(t, NewScoreboardModel(boardStore(t), 100, 30, 60))

	if len(m.runs) != 2 {
		t.Fatalf("runs = %d, want 2 arrivals", len(m.runs))
	}
	if m.runs[0].Ticks != 1200 {
		t.Errorf("fastest first, got %d", m.runs[0].Ticks)
	}
	if m.stats == nil || m.stats.Runs != 3 || m.stats.Falls != 1 {
		t.Errorf("stats = %+v", m.stats)
	}

	view := m.View()
	for _, want := range []string{"BEST TIMES", "20.0s", "average"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardToggleShowsRecent(t *testing.T) {
	m := focus(t, NewScoreboardModel(boardStore(t), 100, 30, 60))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = next.(ScoreboardModel)

	if m.mode != modeRecent {
		t.Fatal("r should switch to recent runs")
	}
	if len(m.runs) != 3 || m.runs[0].Outcome != core.OutcomeFell {
		t.Errorf("recent runs = %+v", m.runs)
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title should follow the mode")
	}
}

func TestScoreboardVariantCycleWraps(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20, 60)
	if len(m.variants) == 0 {
		t.Skip("no variants registered")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.current != len(m.variants)-1 {
		t.Errorf("current = %d, want last variant", m.current)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.current != 0 {
		t.Errorf("current = %d, want 0 after wrapping", m.current)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20, 60)
	if m.wide() {
		t.Error("60 columns is too narrow for the stats panel")
	}
	if !strings.Contains(m.View(), "Nobody has made it to class yet.") {
		t.Error("empty board should say so")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	next, _ := NewScoreboardModel(nil, 80, 24, 60).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m := next.(ScoreboardModel); !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}

	next, _ = NewScoreboardModel(nil, 80, 24, 60).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if m := next.(ScoreboardModel); !m.IsQuitting() {
		t.Error("q should quit")
	}
}
