package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tride/tride/internal/ledger"
	"github.com/tride/tride/internal/models"
)

// TimerModel represents the TUI model for a running session
type TimerModel struct {
	width   int
	height  int
	svc     *ledger.Service
	session *models.Session
	tz      *time.Location

	// Timer state
	elapsed int64

	// Animation state
	timerAnimation int

	// Checkout state
	summarizing  bool // True while the user types a checkout summary
	summaryInput textinput.Model
	closed       *models.Session // Set once the session has been checked out
	checkoutErr  error

	// True when user pressed ESC/Q and we're leaving the session running
	exiting bool
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTimerModel creates a new timer TUI model
func NewTimerModel(svc *ledger.Service, session *models.Session, tz *time.Location) TimerModel {
	input := textinput.New()
	input.Placeholder = "What got done? (Enter to check out, Esc to keep going)"
	input.CharLimit = 500
	input.Width = 60
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TimerModel{
		svc:          svc,
		session:      session,
		tz:           tz,
		elapsed:      ledger.Seconds(session, time.Now()),
		summaryInput: input,
	}
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	// Start both timer and animation tickers
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return timerTickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// Open sessions recompute elapsed time on every tick
		m.elapsed = ledger.Seconds(m.session, time.Now())

		if m.closed == nil && !m.exiting {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return timerTickMsg{}
			})
		}
		return m, nil

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4

		if m.closed == nil && !m.exiting {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return animationTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.summarizing {
			return m.handleSummaryKeys(msg)
		}

		switch msg.String() {
		case "o", "O":
			// Start the checkout flow: ask for a summary first
			m.summarizing = true
			m.summaryInput.Focus()
			return m, textinput.Blink
		case "ctrl+c", "esc", "q":
			// Leave the session running
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleSummaryKeys handles key input while typing the checkout summary
func (m TimerModel) handleSummaryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel checkout, keep the clock running
		m.summarizing = false
		m.summaryInput.Blur()
		m.summaryInput.SetValue("")
		return m, nil

	case "enter":
		closed, err := m.svc.CheckOut(m.session.ID, m.summaryInput.Value())
		if err != nil {
			m.checkoutErr = err
			return m, tea.Quit
		}
		m.closed = closed
		return m, tea.Quit

	case "ctrl+c":
		m.exiting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.summaryInput, cmd = m.summaryInput.Update(msg)
		return m, cmd
	}
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	helpBarHeight := 1

	contentHeight := m.height - helpBarHeight - 1

	// Check if screen is too narrow for split view
	if m.width < 90 {
		timerPanel := m.renderTimerPanel(m.width, contentHeight)

		return lipgloss.JoinVertical(
			lipgloss.Left,
			timerPanel,
			helpBar,
		)
	}

	// Wide view: split screen
	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	leftPanel := m.renderTimerPanel(leftWidth, contentHeight)
	rightPanel := m.renderSessionPanel(rightWidth, contentHeight)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanel,
		"  ",
		rightPanel,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		helpBar,
	)
}

// renderTimerPanel renders the left timer panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	var components []string

	// Animated header
	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]
	headerText := fmt.Sprintf("%s  CHECKED IN  %s", animChar, animChar)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)

	components = append(components, headerStyle.Render(headerText))

	// Task name
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width)

	titleText := m.session.Task
	if len(titleText) > width-4 {
		titleText = titleText[:width-7] + "..."
	}
	components = append(components, titleStyle.Render(titleText))

	// Big clock display
	clockDisplay := m.renderBigClock()
	clockLines := strings.Split(clockDisplay, "\n")
	clockContent := ""
	for _, line := range clockLines {
		centeredLine := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(line)
		clockContent += centeredLine + "\n"
	}
	components = append(components, strings.TrimRight(clockContent, "\n"))

	// Session start time in the reference timezone
	sessionInfo := fmt.Sprintf("Checked in at %s", m.session.StartedAt.In(m.tz).Format("15:04:05"))
	sessionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(width)
	components = append(components, sessionStyle.Render(sessionInfo))

	// Summary prompt replaces the hint while checking out
	if m.summarizing {
		promptStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccentMain)).
			Padding(0, 1)
		components = append(components, lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(width).
			Render(promptStyle.Render(m.summaryInput.View())))
	}

	content := strings.Join(components, "\n\n")

	panelStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return panelStyle.Render(content)
}

// renderBigClock renders the elapsed time as ASCII art
func (m TimerModel) renderBigClock() string {
	// ASCII art for digits (5x5 characters each)
	digits := map[rune][][]string{
		'0': {
			{" ███ "},
			{"█   █"},
			{"█   █"},
			{"█   █"},
			{" ███ "},
		},
		'1': {
			{"  █  "},
			{" ██  "},
			{"  █  "},
			{"  █  "},
			{"█████"},
		},
		'2': {
			{" ███ "},
			{"█   █"},
			{"   █ "},
			{"  █  "},
			{"█████"},
		},
		'3': {
			{" ███ "},
			{"█   █"},
			{"  ██ "},
			{"█   █"},
			{" ███ "},
		},
		'4': {
			{"█   █"},
			{"█   █"},
			{"█████"},
			{"    █"},
			{"    █"},
		},
		'5': {
			{"█████"},
			{"█    "},
			{"████ "},
			{"    █"},
			{"████ "},
		},
		'6': {
			{" ███ "},
			{"█    "},
			{"████ "},
			{"█   █"},
			{" ███ "},
		},
		'7': {
			{"█████"},
			{"    █"},
			{"   █ "},
			{"  █  "},
			{" █   "},
		},
		'8': {
			{" ███ "},
			{"█   █"},
			{" ███ "},
			{"█   █"},
			{" ███ "},
		},
		'9': {
			{" ███ "},
			{"█   █"},
			{" ████"},
			{"    █"},
			{" ███ "},
		},
		':': {
			{"     "},
			{"  █  "},
			{"     "},
			{"  █  "},
			{"     "},
		},
	}

	timeStr := ledger.FormatClock(m.elapsed)

	var lines [5]strings.Builder

	for _, char := range timeStr {
		if digitArt, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(digitArt[i][0])
				lines[i].WriteString(" ")
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

// renderSessionPanel renders the right panel with session details
func (m TimerModel) renderSessionPanel(width, height int) string {
	session := m.session
	var b strings.Builder

	b.WriteString("\n")

	// ASCII logo at top
	logoLines := []string{
		"████████╗██████╗ ██╗██████╗ ███████╗",
		"╚══██╔══╝██╔══██╗██║██╔══██╗██╔════╝",
		"   ██║   ██████╔╝██║██║  ██║█████╗  ",
		"   ██║   ██╔══██╗██║██║  ██║██╔══╝  ",
		"   ██║   ██║  ██║██║██████╔╝███████╗",
		"   ╚═╝   ╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝",
	}

	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(width - 8)

	b.WriteString(logoStyle.Render(strings.Join(logoLines, "\n")))
	b.WriteString("\n\n")

	// Separator line
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBorder)).
		Align(lipgloss.Center).
		Width(width - 8)
	separatorLine := strings.Repeat("─", min(width-12, 40))
	b.WriteString(separatorStyle.Render(separatorLine))
	b.WriteString("\n\n")

	// Task name in bordered box
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString(titleStyle.Render(session.Task))
	b.WriteString("\n\n")

	lineStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 8)

	// Who is checked in
	userLine := fmt.Sprintf("👤 User: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(session.UserName))
	b.WriteString(lineStyle.Render(userLine))
	b.WriteString("\n")

	// Tags
	tagsValue := "none"
	tagsColor := ColorDisabledText
	if names := session.TagNames(); len(names) > 0 {
		var hashed []string
		for _, name := range names {
			hashed = append(hashed, "#"+name)
		}
		tagsValue = strings.Join(hashed, " ")
		tagsColor = ColorAccentBright
	}
	tagsLine := fmt.Sprintf("🏷️  Tags: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(tagsColor)).Render(tagsValue))
	b.WriteString(lineStyle.Render(tagsLine))
	b.WriteString("\n")

	// Notes count
	notesValue := "none"
	notesColor := ColorDisabledText
	if n := len(session.Notes); n > 0 {
		notesValue = fmt.Sprintf("%d", n)
		notesColor = ColorSecondaryText
	}
	notesLine := fmt.Sprintf("📝 Notes: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(notesColor)).Render(notesValue))
	b.WriteString(lineStyle.Render(notesLine))
	b.WriteString("\n")

	// Links gathered from notes
	linkCount := 0
	for _, note := range session.Notes {
		linkCount += len(note.Links)
	}
	linksValue := "none"
	linksColor := ColorDisabledText
	if linkCount > 0 {
		linksValue = fmt.Sprintf("%d", linkCount)
		linksColor = ColorAccentMain
	}
	linksLine := fmt.Sprintf("🔗 Links: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(linksColor)).Render(linksValue))
	b.WriteString(lineStyle.Render(linksLine))
	b.WriteString("\n")

	// Day the session belongs to
	dayLine := fmt.Sprintf("📅 Day: %s",
		lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(session.DateKey))
	b.WriteString(lineStyle.Render(dayLine))

	return b.String()
}

// renderHelpBar renders the help bar at the bottom
func (m TimerModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	helpText := "o check out · esc/q leave (keep running) · ctrl+c force quit"
	if m.summarizing {
		helpText = "enter check out · esc keep working · ctrl+c force quit"
	}

	return helpStyle.Render(helpText)
}

// RunTimerTUI runs the running-session timer TUI
func RunTimerTUI(svc *ledger.Service, session *models.Session, tz *time.Location) error {
	model := NewTimerModel(svc, session, tz)

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	timerModel := finalModel.(TimerModel)
	switch {
	case timerModel.checkoutErr != nil:
		return fmt.Errorf("failed to check out: %w", timerModel.checkoutErr)

	case timerModel.closed != nil:
		closed := timerModel.closed
		fmt.Printf("🏁 Checked out: %s\n", closed.Task)
		fmt.Printf("Session duration: %s\n", ledger.FormatDuration(ledger.Seconds(closed, time.Now())))
		if closed.Summary != "" {
			fmt.Printf("Summary: %s\n", closed.Summary)
		}

	case timerModel.exiting:
		fmt.Printf("\n💡 Still checked in: %s\n", session.Task)
		fmt.Printf("   Use 'tride status' to check the clock or 'tride out' to check out.\n")
	}

	return nil
}
