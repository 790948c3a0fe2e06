package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tride/tride/internal/db"
	"github.com/tride/tride/internal/export"
	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
)

// DashboardModel represents the live team dashboard TUI
type DashboardModel struct {
	width  int
	height int

	store *db.Store
	tz    *time.Location

	// Session data
	sessions []models.Session // latest store snapshot, newest first
	visible  []models.Session // snapshot after search/tag/day filters
	updates  chan []models.Session

	// UI state
	focus       Focus
	searchInput textinput.Model
	searchQuery string // applied query, may lag behind the input while typing
	tagFilter   string
	scope       ledger.DateScope
	statusMsg   string

	selected    int
	currentPage int
	rowsPerPage int
}

// Focus represents what UI element has focus
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
)

// snapshotMsg carries a fresh store snapshot into the update loop
type snapshotMsg []models.Session

// dashboardTickMsg re-renders open-session durations every second
type dashboardTickMsg struct{}

// NewDashboardModel creates a new dashboard TUI model
func NewDashboardModel(store *db.Store, tz *time.Location, showAll bool, updates chan []models.Session) DashboardModel {
	input := textinput.New()
	input.Placeholder = "name, task, summary or tag..."
	input.CharLimit = 100
	input.Width = 40
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	scope := ledger.ScopeToday
	if showAll {
		scope = ledger.ScopeAll
	}

	return DashboardModel{
		store:       store,
		tz:          tz,
		updates:     updates,
		focus:       FocusTable,
		searchInput: input,
		tagFilter:   ledger.TagFilterAll,
		scope:       scope,
		rowsPerPage: 10,
	}
}

// Init initializes the model
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.updates),
		tea.Tick(time.Second, func(time.Time) tea.Msg {
			return dashboardTickMsg{}
		}),
	)
}

// waitForSnapshot blocks until the store pushes the next snapshot
func waitForSnapshot(updates chan []models.Session) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-updates)
	}
}

// Update handles messages
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.sessions = msg
		m.applyFilters()
		return m, waitForSnapshot(m.updates)

	case dashboardTickMsg:
		// Durations of open sessions are recomputed at render time; the
		// tick only forces the redraw. Today's view also re-filters so a
		// session started before midnight drops off when the day rolls.
		m.applyFilters()
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return dashboardTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		availableHeight := m.height - 12
		if availableHeight < 3 {
			availableHeight = 3
		}
		m.rowsPerPage = availableHeight

		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// Esc clears an applied search before quitting
			if msg.String() == "esc" && m.searchQuery != "" {
				m.searchQuery = ""
				m.searchInput.SetValue("")
				m.applyFilters()
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			return m.moveSelectionUp(), nil

		case "down", "j":
			return m.moveSelectionDown(), nil

		case "left", "h":
			return m.prevPage(), nil

		case "right", "l":
			return m.nextPage(), nil

		case "/":
			m.focus = FocusSearch
			m.searchInput.Focus()
			m.statusMsg = ""
			return m, textinput.Blink

		case "t":
			m.cycleTagFilter()
			return m, nil

		case "a":
			if m.scope == ledger.ScopeToday {
				m.scope = ledger.ScopeAll
			} else {
				m.scope = ledger.ScopeToday
			}
			m.applyFilters()
			return m, nil

		case "e":
			m.exportVisible()
			return m, nil
		}
	}

	return m, nil
}

// handleSearchKeys handles key input when the search bar has focus
func (m DashboardModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Drop the search entirely
		m.focus = FocusTable
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.applyFilters()
		return m, nil

	case "enter":
		// Apply the search and return to the table
		m.focus = FocusTable
		m.searchInput.Blur()
		m.searchQuery = m.searchInput.Value()
		m.applyFilters()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

// applyFilters recomputes the visible sessions from the current snapshot
func (m *DashboardModel) applyFilters() {
	m.visible = ledger.FilterSessions(m.sessions, m.searchQuery, m.tagFilter, m.scope, m.tz, time.Now())

	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	maxPages := m.pageCount()
	if m.currentPage >= maxPages {
		m.currentPage = maxPages - 1
	}
	if m.currentPage < 0 {
		m.currentPage = 0
	}
}

// cycleTagFilter advances the tag filter: All → each known tag → All
func (m *DashboardModel) cycleTagFilter() {
	seen := make(map[string]bool)
	var tags []string
	for i := range m.sessions {
		for _, name := range m.sessions[i].TagNames() {
			if !seen[name] {
				seen[name] = true
				tags = append(tags, name)
			}
		}
	}
	sort.Strings(tags)

	choices := append([]string{ledger.TagFilterAll}, tags...)
	next := 0
	for i, choice := range choices {
		if choice == m.tagFilter {
			next = (i + 1) % len(choices)
			break
		}
	}
	m.tagFilter = choices[next]
	m.applyFilters()
}

// exportVisible writes the current view as a CSV file in the working directory
func (m *DashboardModel) exportVisible() {
	dateKey := ""
	if m.scope == ledger.ScopeToday {
		dateKey = ledger.DayKey(time.Now(), m.tz)
	}

	report := export.SessionReport(m.visible, time.Now())
	filename := export.SessionFilename(dateKey)
	if err := os.WriteFile(filename, []byte(report), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("❌ Export failed: %v", err)
		return
	}
	m.statusMsg = fmt.Sprintf("📋 Exported %d sessions to %s", len(m.visible), filename)
}

func (m DashboardModel) pageCount() int {
	if m.rowsPerPage <= 0 || len(m.visible) == 0 {
		return 1
	}
	return (len(m.visible) + m.rowsPerPage - 1) / m.rowsPerPage
}

// moveSelectionUp moves the selection up
func (m DashboardModel) moveSelectionUp() DashboardModel {
	if m.selected > 0 {
		m.selected--

		currentPageStart := m.currentPage * m.rowsPerPage
		if m.selected < currentPageStart && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m DashboardModel) moveSelectionDown() DashboardModel {
	if m.selected < len(m.visible)-1 {
		m.selected++

		currentPageEnd := min((m.currentPage+1)*m.rowsPerPage-1, len(m.visible)-1)
		if m.selected > currentPageEnd && m.currentPage < m.pageCount()-1 {
			m.currentPage++
		}
	}
	return m
}

// prevPage goes to the previous page
func (m DashboardModel) prevPage() DashboardModel {
	if m.currentPage > 0 {
		m.currentPage--
		minIndex := m.currentPage * m.rowsPerPage
		maxIndex := min((m.currentPage+1)*m.rowsPerPage-1, len(m.visible)-1)
		if m.selected < minIndex {
			m.selected = minIndex
		}
		if m.selected > maxIndex {
			m.selected = maxIndex
		}
	}
	return m
}

// nextPage goes to the next page
func (m DashboardModel) nextPage() DashboardModel {
	if m.currentPage < m.pageCount()-1 {
		m.currentPage++
		minIndex := m.currentPage * m.rowsPerPage
		maxIndex := min((m.currentPage+1)*m.rowsPerPage-1, len(m.visible)-1)
		if m.selected < minIndex {
			m.selected = minIndex
		}
		if m.selected > maxIndex {
			m.selected = maxIndex
		}
	}
	return m
}

// View renders the TUI
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	leftPanel := m.renderSessionTable(leftWidth)
	rightPanel := m.renderTotalsPanel(rightWidth)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		" ",
		rightPanel,
	)

	var bottomBar string
	if m.focus == FocusSearch {
		bottomBar = m.renderSearchBar()
	} else {
		bottomBar = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		"",
		bottomBar,
	)
}

// renderSessionTable renders the left panel with the session table
func (m DashboardModel) renderSessionTable(width int) string {
	var b strings.Builder
	now := time.Now()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	scopeLabel := "Today"
	if m.scope == ledger.ScopeAll {
		scopeLabel = "All days"
	}
	title := fmt.Sprintf("👥 Team · %s", scopeLabel)
	if m.tagFilter != ledger.TagFilterAll {
		title += fmt.Sprintf(" · #%s", m.tagFilter)
	}
	if m.searchQuery != "" {
		title += fmt.Sprintf(" · \"%s\"", m.searchQuery)
	}
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No sessions found"))

		outerBorderStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Width(width)
		return outerBorderStyle.Render(b.String())
	}

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)

	availableWidth := width - 4
	userWidth := 14
	timeWidth := 9
	statusWidth := 7
	taskWidth := availableWidth - userWidth - timeWidth - statusWidth - 6
	if taskWidth < 16 {
		taskWidth = 16
	}

	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		userWidth, "USER",
		taskWidth, "TASK",
		timeWidth, "TIME",
		statusWidth, "STATUS")
	b.WriteString(columnHeaderStyle.Render(headers))
	b.WriteString("\n\n")

	startIndex := m.currentPage * m.rowsPerPage
	endIndex := min(startIndex+m.rowsPerPage, len(m.visible))

	for i := startIndex; i < endIndex; i++ {
		session := &m.visible[i]
		isSelected := i == m.selected

		user := session.UserName
		if len(user) > userWidth-1 {
			user = user[:userWidth-2] + "…"
		}

		task := session.Task
		if len(task) > taskWidth-1 {
			if taskWidth > 4 {
				task = task[:taskWidth-4] + "..."
			} else {
				task = task[:taskWidth-1]
			}
		}

		elapsed := ledger.FormatClock(ledger.Seconds(session, now))

		var statusText string
		var statusColor string
		if session.Open() {
			statusText = "● open"
			statusColor = ColorAccentBright
		} else {
			statusText = "✓ done"
			statusColor = ColorSuccess
		}
		coloredStatus := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(statusText)

		rowContent := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			userWidth, user,
			taskWidth, task,
			timeWidth, elapsed,
			statusWidth, coloredStatus)

		if isSelected {
			selectedBorder := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)

			b.WriteString(selectedBorder.Render(rowContent))
		} else {
			b.WriteString(" " + rowContent)
		}
		b.WriteString("\n")
	}

	// Pagination info
	if m.rowsPerPage < len(m.visible) {
		pageInfo := fmt.Sprintf("Page %d/%d (%d sessions)", m.currentPage+1, m.pageCount(), len(m.visible))
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(pageInfo))
	}

	outerBorderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return outerBorderStyle.Render(b.String())
}

// renderTotalsPanel renders the right panel: selected session plus totals
func (m DashboardModel) renderTotalsPanel(width int) string {
	var b strings.Builder
	now := time.Now()

	if len(m.visible) == 0 || m.selected >= len(m.visible) {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("tride"))

		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Align(lipgloss.Center).
			Width(width).
			MarginTop(2)
		b.WriteString("\n")
		b.WriteString(emptyStyle.Render("Waiting for check-ins"))
	} else {
		session := &m.visible[m.selected]

		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Width(width)
		b.WriteString(titleStyle.Render("📋 " + session.Task))
		b.WriteString("\n\n")

		b.WriteString("User: ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(session.UserName))
		b.WriteString("\n")

		b.WriteString("Time: ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(
			ledger.FormatDuration(ledger.Seconds(session, now))))
		b.WriteString("\n")

		b.WriteString("Started: ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(
			session.StartedAt.In(m.tz).Format("02/01 15:04")))
		b.WriteString("\n")

		if session.EndedAt != nil {
			b.WriteString("Ended: ")
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(
				session.EndedAt.In(m.tz).Format("02/01 15:04")))
			b.WriteString("\n")
		}

		if names := session.TagNames(); len(names) > 0 {
			b.WriteString("Tags: ")
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(strings.Join(names, ", ")))
			b.WriteString("\n")
		}

		if session.Summary != "" {
			b.WriteString("\nSummary:\n")
			summaryStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondaryText)).
				Italic(true).
				Width(width - 2)
			b.WriteString(summaryStyle.Render(session.Summary))
			b.WriteString("\n")
		}

		if len(session.Notes) > 0 {
			last := session.Notes[len(session.Notes)-1]
			b.WriteString("\nLatest note:\n")
			noteStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSecondaryText)).
				Italic(true).
				Width(width - 2)
			b.WriteString(noteStyle.Render(last.Text))
			b.WriteString("\n")
		}
	}

	// Per-user totals for the visible sessions
	b.WriteString("\n")
	sepStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	b.WriteString(sepStyle.Render(strings.Repeat("─", min(width-4, 30))))
	b.WriteString("\n\n")

	totalsHeader := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(totalsHeader.Render("⏱  Totals"))
	b.WriteString("\n\n")

	windowStart, windowEnd := m.totalsWindow(now)
	totals := ledger.Aggregate(m.visible, windowStart, windowEnd, now)

	if len(totals.PerUser) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("No tracked time"))
	} else {
		nameWidth := min(width-16, 20)
		for _, user := range totals.PerUser {
			name := user.UserName
			if len(name) > nameWidth {
				name = name[:nameWidth-1] + "…"
			}
			line := fmt.Sprintf("%-*s %s", nameWidth, name, ledger.FormatDuration(user.TotalSeconds))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		teamLine := fmt.Sprintf("%-*s %s", min(width-16, 20), "Team",
			ledger.FormatDuration(totals.TeamTotalSeconds))
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentMain)).
			Render(teamLine))
	}

	if m.statusMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess)).
			Width(width - 2).
			Render(m.statusMsg))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)

	return borderStyle.Render(b.String())
}

// totalsWindow is the aggregation window matching the day filter
func (m DashboardModel) totalsWindow(now time.Time) (time.Time, time.Time) {
	if m.scope == ledger.ScopeToday {
		return ledger.DayWindow(now, m.tz)
	}
	return time.Time{}, now.Add(time.Second)
}

// renderSearchBar renders the search input when active
func (m DashboardModel) renderSearchBar() string {
	searchStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2)

	return searchStyle.Render("Search: " + m.searchInput.View())
}

// renderHelpBar renders the help bar with hotkey hints
func (m DashboardModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "↑/↓ nav · ←/→ page · / search · t tag · a today/all · e export · q/esc quit"
	return helpStyle.Render(helpText)
}

// RunDashboardTUI runs the live team dashboard
func RunDashboardTUI(store *db.Store, tz *time.Location, showAll bool) error {
	updates := make(chan []models.Session, 8)
	cancel, err := store.Subscribe(db.Query{}, func(sessions []models.Session) {
		// Snapshots are full views, so dropping one on a full channel is
		// safe: the next snapshot supersedes it anyway
		select {
		case updates <- sessions:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer cancel()

	model := NewDashboardModel(store, tz, showAll, updates)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
