package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/registry"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

const (
	statsPanelWidth  = 24
	minWidthForPanel = 72
	boardRows        = 100
)

// boardMode picks which runs the board lists.
type boardMode int

const (
	modeBest   boardMode = iota // fastest arrivals
	modeRecent                  // latest runs, any outcome
)

func (m boardMode) title() string {
	if m == modeRecent {
		return "RECENT RUNS"
	}
	return "BEST TIMES"
}

// ScoreboardKeyMap defines the key bindings for the best-times board.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Mode key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Mode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Mode, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	bind := func(h, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(h, desc))
	}
	return ScoreboardKeyMap{
		Up:   bind("up/k", "scroll up", "up", "k"),
		Down: bind("down/j", "scroll down", "down", "j"),
		Next: bind("tab/right", "next variant", "tab", "right", "l"),
		Prev: bind("S-tab/left", "prev variant", "shift+tab", "left", "h"),
		Mode: bind("r", "best/recent", "r"),
		Back: bind("esc/b", "back", "esc", "b"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

// ScoreboardModel is the Bubble Tea model for the best-times board.
type ScoreboardModel struct {
	variants []registry.GameInfo
	current  int
	store    *storage.Store
	tickRate int
	mode     boardMode
	runs     []storage.RunEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a board over every registered variant.
func NewScoreboardModel(store *storage.Store, width, height, tickRate int) ScoreboardModel {
	m := ScoreboardModel{
		variants: registry.List(),
		store:    store,
		tickRate: tickRate,
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForPanel
}

func (m *ScoreboardModel) newTable() table.Model {
	detail := m.width - 4 - 6 - 9 - 11 - 13 - 10
	if m.wide() {
		detail -= statsPanelWidth + 2
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Time", Width: 7},
			{Title: "Result", Width: 9},
			{Title: "When", Width: 11},
			{Title: "Detail", Width: max(6, detail)},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the runs and the summary of the current variant.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.current].ID
		fetch := m.store.BestRuns
		if m.mode == modeRecent {
			fetch = m.store.RecentRuns
		}
		if runs, err := fetch(id, boardRows); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rank := ""
		if m.mode == modeBest {
			rank = fmt.Sprint(i + 1)
		}
		rows = append(rows, table.Row{
			rank,
			formatTicks(r.Ticks, m.tickRate),
			outcomeLabel(r.Outcome),
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Detail,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func outcomeLabel(o core.Outcome) string {
	switch o {
	case core.OutcomeArrived:
		return "arrived"
	case core.OutcomeHitByCar:
		return "hit by car"
	case core.OutcomeFell:
		return "fell"
	default:
		return string(o)
	}
}

// step moves the variant cursor by delta, wrapping at both ends.
func (m *ScoreboardModel) step(delta int) {
	n := len(m.variants)
	if n == 0 {
		return
	}
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			m.mode = 1 - m.mode
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = boardTitleStyle.Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrame      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerStyled(boardTitleStyle, m.mode.title(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	body := boardFrame.Render(m.listing())
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardFrame.Width(statsPanelWidth).Render(m.summary()))
	}
	b.WriteString(centerText(body, m.width))
	b.WriteString("\n")
	b.WriteString(menuHintStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(v.Title)
		} else {
			tabs[i] = boardTabStyle.Render(v.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.variants) > 0 {
		return boardActiveTab.Render("< " + m.variants[m.current].Title + " >")
	}
	return line
}

func (m ScoreboardModel) listing() string {
	if len(m.runs) == 0 {
		if m.mode == modeBest {
			return boardEmpty.Render("Nobody has made it to class yet.")
		}
		return boardEmpty.Render("No runs recorded yet.")
	}
	return m.table.View()
}

// summary renders the aggregate counters of the current variant.
func (m ScoreboardModel) summary() string {
	st := m.stats
	if st == nil || st.Runs == 0 {
		return "Stats\n\nno runs"
	}
	best, avg := "-", "-"
	if st.Arrivals > 0 {
		best = formatTicks(st.BestTicks, m.tickRate)
		avg = formatTicks(int(st.AvgTicks), m.tickRate)
	}
	lines := []string{
		"Stats",
		"",
		fmt.Sprintf("runs      %d", st.Runs),
		fmt.Sprintf("arrived   %d", st.Arrivals),
		fmt.Sprintf("hit       %d", st.HitByCar),
		fmt.Sprintf("fell      %d", st.Falls),
		fmt.Sprintf("best      %s", best),
		fmt.Sprintf("average   %s", avg),
	}
	if !st.LastPlayed.IsZero() {
		lines = append(lines, "last      "+st.LastPlayed.Format("Jan 02"))
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting reports whether the player asked to leave the program.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the best-times board until the player leaves it.
// goBack is true when the menu should be shown again.
func RunScoreboard(store *storage.Store, width, height, tickRate int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height, tickRate), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
