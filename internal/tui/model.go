package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/AG66666678/lookcc/internal/core"
)

// RecordsMsg delivers a fresh set of usage records, keyed by account ID.
type RecordsMsg map[string]core.UsageRecord

// AccountsMsg replaces the account list, e.g. after a config reload.
type AccountsMsg []core.Account

// ProbeStateMsg mirrors detector state transitions into the UI so tiles can
// show which schema is being tried.
type ProbeStateMsg core.DetectState

type Model struct {
	records  map[string]core.UsageRecord
	accounts []core.Account
	order    []string
	probing  map[string]core.BackendType

	cursor   int
	width    int
	height   int
	showHelp bool

	warnThreshold float64
	critThreshold float64

	spinner    spinner.Model
	refreshing bool
	hasData    bool

	// onRefresh is called when the user requests a manual refresh.
	// Set from main before the program starts.
	onRefresh func()
}

func NewModel(warnThresh, critThresh float64, accounts []core.Account) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := Model{
		records:       make(map[string]core.UsageRecord),
		accounts:      accounts,
		probing:       make(map[string]core.BackendType),
		warnThreshold: warnThresh,
		critThreshold: critThresh,
		spinner:       s,
		refreshing:    true,
	}
	m.rebuildOrder()
	return m
}

// SetOnRefresh wires the manual refresh key to the engine.
func (m *Model) SetOnRefresh(fn func()) { m.onRefresh = fn }

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RecordsMsg:
		m.records = msg
		m.refreshing = false
		m.hasData = true
		m.rebuildOrder()
		return m, nil

	case AccountsMsg:
		m.accounts = msg
		m.rebuildOrder()
		return m, nil

	case ProbeStateMsg:
		state := core.DetectState(msg)
		if state.Phase == core.PhaseProbing {
			m.probing[state.AccountID] = state.Backend
		} else {
			delete(m.probing, state.AccountID)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "r":
		if m.refreshing || m.onRefresh == nil {
			return m, nil
		}
		m.refreshing = true
		m.onRefresh()
		return m, m.spinner.Tick

	case "left", "h":
		m.move(-1)
	case "right", "l":
		m.move(1)
	case "up", "k":
		m.move(-tileCols(m.width, len(m.order)))
	case "down", "j":
		m.move(tileCols(m.width, len(m.order)))
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.order) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.order)-1)
}

// rebuildOrder lays out tiles in account order. Records for accounts no
// longer configured still render, sorted by ID, until a refresh drops them.
func (m *Model) rebuildOrder() {
	seen := make(map[string]bool, len(m.accounts))
	order := make([]string, 0, len(m.accounts))
	for _, a := range m.accounts {
		if a.ID == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		order = append(order, a.ID)
	}

	extras := lo.Filter(lo.Keys(m.records), func(id string, _ int) bool {
		return !seen[id]
	})
	sort.Strings(extras)

	m.order = append(order, extras...)
	if len(m.order) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.order)-1)
}

func (m Model) accountName(id string) string {
	for _, a := range m.accounts {
		if a.ID == id {
			return a.DisplayName()
		}
	}
	return id
}

func (m Model) View() string {
	if m.width < 30 || m.height < 8 {
		return dimStyle.Render("\n  Terminal too small. Resize to at least 30x8.")
	}

	header := m.renderHeader(m.width)
	footer := m.renderFooter(m.width)

	contentH := m.height - 2
	if contentH < 3 {
		contentH = 3
	}

	var body string
	if m.showHelp {
		body = m.renderHelp(m.width, contentH)
	} else {
		body = m.renderTiles(m.width, contentH)
	}

	return header + "\n" + body + "\n" + footer
}

func (m Model) renderHeader(w int) string {
	left := " " + headerBrandStyle.Render("lookcc") + headerStyle.Render(" · gateway usage")
	if m.refreshing {
		left += " " + m.spinner.View()
	}

	okCount, errCount := 0, 0
	for _, id := range m.order {
		rec, ok := m.records[id]
		if !ok {
			continue
		}
		if rec.OK() {
			okCount++
		} else {
			errCount++
		}
	}
	right := labelStyle.Render(fmt.Sprintf("%d accounts · %d ok · %d failing ", len(m.order), okCount, errCount))

	gap := w - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter(w int) string {
	keys := []string{
		helpKeyStyle.Render("r") + helpStyle.Render(" refresh"),
		helpKeyStyle.Render("←→↑↓") + helpStyle.Render(" move"),
		helpKeyStyle.Render("?") + helpStyle.Render(" help"),
		helpKeyStyle.Render("q") + helpStyle.Render(" quit"),
	}
	return truncateToWidth(" "+strings.Join(keys, helpStyle.Render("  ·  ")), w)
}

func (m Model) renderHelp(w, h int) string {
	rows := []string{
		"",
		headerStyle.Render("  Keys"),
		"",
		"  " + helpKeyStyle.Render("r") + "        " + helpStyle.Render("refresh all accounts now"),
		"  " + helpKeyStyle.Render("arrows") + "   " + helpStyle.Render("move tile selection (hjkl works too)"),
		"  " + helpKeyStyle.Render("?") + "        " + helpStyle.Render("toggle this help"),
		"  " + helpKeyStyle.Render("q") + "        " + helpStyle.Render("quit"),
		"",
		headerStyle.Render("  Detection"),
		"",
		"  " + helpStyle.Render("Each refresh probes NewAPI, then OneAPI, then OpenRouter,"),
		"  " + helpStyle.Render("and keeps the first schema that answers cleanly."),
	}
	return padToSize(strings.Join(rows, "\n"), w, h)
}
