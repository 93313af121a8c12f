// Package tui provides the Bubble Tea integration for School Run.
// It handles the terminal UI loop, key hold tracking, the menu and the
// best-times board.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/schoolrun/internal/config"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// reloadMsg reports a change of the watched config file.
type reloadMsg struct{ path string }

type reloadErrMsg struct{ err error }

// waitForReload blocks on the watcher until the next change.
// It returns nil once the watcher is closed.
func waitForReload(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return reloadMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return reloadErrMsg{err: err}
		}
	}
}
