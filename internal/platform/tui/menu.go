package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/schoolrun/internal/core"
	"github.com/vovakirdan/schoolrun/internal/registry"
	"github.com/vovakirdan/schoolrun/internal/storage"
)

// MenuChoice is what the player picked on the title screen.
type MenuChoice int

const (
	ChoiceQuit MenuChoice = iota
	ChoicePlay
	ChoiceTimes
)

// MenuItem is one variant line on the title screen.
type MenuItem struct {
	GameID string
	Title  string
	Best   string // empty until the variant is finished once
	Runs   int
}

// MenuModel is the Bubble Tea model for the title screen.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
	done      bool
}

// NewMenuModel lists every variant with its history from store, if any.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if st, ok := stats[g.ID]; ok {
			item.Runs = st.Runs
			if st.Arrivals > 0 {
				item.Best = formatTicks(st.BestTicks, cfg.TickRate)
			}
		}
		items = append(items, item)
	}

	return MenuModel{items: items, config: cfg, keyMapper: NewKeyMapper()}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.cursor = max(0, m.cursor-1)
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			return m.finish(ChoicePlay)
		}
	case MenuActionScoreboard:
		return m.finish(ChoiceTimes)
	case MenuActionQuit, MenuActionBack:
		return m.finish(ChoiceQuit)
	}
	return m, nil
}

func (m MenuModel) finish(c MenuChoice) (tea.Model, tea.Cmd) {
	m.choice, m.done = c, true
	return m, tea.Quit
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("218"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuFaintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
)

// View renders the title screen.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var rows []string
	rows = append(rows, menuTitleStyle.Render("S C H O O L   R U N"), menuFaintStyle.Render("Get to class on time"), "")
	for i, item := range m.items {
		rows = append(rows, m.itemLine(i, item))
	}
	panel := menuPanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	hint := menuHintStyle.Render("up/down choose   enter play   tab best times   q quit")

	w, h := m.config.ScreenW, m.config.ScreenH
	if w <= 0 || h <= 0 {
		return panel + "\n" + hint
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, panel, "", hint))
}

func (m MenuModel) itemLine(i int, item MenuItem) string {
	var info []string
	if item.Best != "" {
		info = append(info, "best "+item.Best)
	}
	switch {
	case item.Runs == 1:
		info = append(info, "1 run")
	case item.Runs > 1:
		info = append(info, fmt.Sprintf("%d runs", item.Runs))
	}
	extra := ""
	if len(info) > 0 {
		extra = "  " + menuFaintStyle.Render("("+strings.Join(info, ", ")+")")
	}
	if i == m.cursor {
		return menuActiveStyle.Render("> "+item.Title) + extra
	}
	return "  " + item.Title + extra
}

// Choice returns what the player picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Selected returns the highlighted variant.
func (m MenuModel) Selected() *MenuItem {
	if len(m.items) == 0 {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	if n := lipgloss.Width(text); n < width {
		return strings.Repeat(" ", (width-n)/2) + text
	}
	return text
}

func centerStyled(style lipgloss.Style, text string, width int) string {
	return centerText(style.Render(text), width)
}

// formatTicks renders a run length as seconds with one decimal.
func formatTicks(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	return fmt.Sprintf("%.1fs", float64(ticks)/float64(tickRate))
}

// MenuResult is the outcome of one visit to the title screen.
type MenuResult struct {
	Choice MenuChoice
	GameID string             // set for ChoicePlay
	Config core.RuntimeConfig // carries size changes made while the menu was open
}

// RunMenu shows the title screen until the player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg}, nil
	}

	res := MenuResult{Choice: m.Choice(), Config: m.config}
	if res.Choice == ChoicePlay {
		res.GameID = m.Selected().GameID
	}
	return res, nil
}
