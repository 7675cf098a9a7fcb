// Package tui provides the single-screen terminal interface using the
// Bubbletea framework. It is presentation only: every keystroke maps to
// a controller operation and every redraw comes from a state snapshot.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dvidx/focusdial/internal/config"
	"github.com/dvidx/focusdial/internal/domain"
	"github.com/dvidx/focusdial/internal/ports"
)

// snapshotMsg wraps a state snapshot pushed by the service.
type snapshotMsg struct {
	snap domain.Snapshot
}

// statsMsg wraps today's statistics fetched asynchronously.
type statsMsg struct {
	stats *domain.DailyStats
}

// Model represents the TUI state.
type Model struct {
	ctrl  ports.TimerController
	snap  domain.Snapshot
	theme config.ThemeConfig

	noteInput textinput.Model

	width  int
	height int

	// completion banner state: the type that just finished, cleared
	// when the next interval starts
	completedType  domain.SessionType
	hasCompleted   bool
	noteMode       bool
	noteSaved      bool
	suppressBanner bool

	confirmRestart bool

	notificationsEnabled bool
	notificationToggle   func(bool)

	stats *domain.DailyStats
}

// NewModel creates a new TUI model from the controller's current state.
func NewModel(ctrl ports.TimerController, theme config.ThemeConfig) Model {
	ni := textinput.New()
	ni.CharLimit = 120
	ni.Width = 40

	return Model{
		ctrl:      ctrl,
		snap:      ctrl.Snapshot(),
		theme:     theme,
		noteInput: ni,
	}
}

// SetNotificationToggle wires the tab-key notification switch.
func (m *Model) SetNotificationToggle(enabled bool, toggle func(bool)) {
	m.notificationsEnabled = enabled
	m.notificationToggle = toggle
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.fetchStatsCmd()
}

// fetchStatsCmd fetches today's stats asynchronously.
func (m Model) fetchStatsCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		stats, err := ctrl.TodayStats(ctx)
		if err != nil {
			return statsMsg{}
		}
		return statsMsg{stats: stats}
	}
}

// accentColor returns the color for the active session type.
func (m Model) accentColor() lipgloss.Color {
	if m.snap.SessionType.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorFocus)
}

// paused reports whether the countdown is stopped partway through.
func (m Model) paused() bool {
	return !m.snap.Running && m.snap.RemainingSeconds > 0 &&
		m.snap.RemainingSeconds < m.snap.TotalSeconds
}

// timerColor returns the accent color, dimmed while paused.
func (m Model) timerColor() lipgloss.Color {
	if m.paused() {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.accentColor()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.noteMode {
		return m.updateNoteInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "s":
			m.confirmRestart = false
			m.ctrl.Toggle()
		case "r":
			if m.confirmRestart {
				m.confirmRestart = false
				m.suppressBanner = true
				m.ctrl.Restart()
			} else {
				m.confirmRestart = true
			}
		case "left", "down", "h", "j":
			m.confirmRestart = false
			m.ctrl.AdjustMinutes(-1)
		case "right", "up", "l", "k":
			m.confirmRestart = false
			m.ctrl.AdjustMinutes(1)
		case "shift+left", "shift+down":
			m.ctrl.AdjustMinutes(-5)
		case "shift+right", "shift+up":
			m.ctrl.AdjustMinutes(5)
		case "tab":
			m.notificationsEnabled = !m.notificationsEnabled
			if m.notificationToggle != nil {
				m.notificationToggle(m.notificationsEnabled)
			}
		case "n":
			if m.hasCompleted && m.completedType == domain.SessionTypeFocus && !m.noteSaved {
				m.noteMode = true
				m.noteInput.Reset()
				m.noteInput.Focus()
				return m, textinput.Blink
			}
		default:
			m.confirmRestart = false
		}

	case tea.MouseMsg:
		// The wheel turns the dial while idle
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ctrl.AdjustMinutes(1)
		case tea.MouseButtonWheelDown:
			m.ctrl.AdjustMinutes(-1)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		// The session type only changes on completion or restart
		if msg.snap.SessionType != m.snap.SessionType {
			if m.suppressBanner {
				m.suppressBanner = false
			} else {
				m.completedType = m.snap.SessionType
				m.hasCompleted = true
				m.noteSaved = false
			}
		}
		if msg.snap.Running {
			m.hasCompleted = false
			m.confirmRestart = false
		}
		m.snap = msg.snap
		if m.hasCompleted {
			return m, m.fetchStatsCmd()
		}

	case statsMsg:
		if msg.stats != nil {
			m.stats = msg.stats
		}
	}

	return m, nil
}

// updateNoteInput handles input while annotating the last focus session.
func (m Model) updateNoteInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			note := m.noteInput.Value()
			m.noteMode = false
			if note != "" {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := m.ctrl.AnnotateLastFocus(ctx, note); err == nil {
					m.noteSaved = true
				}
			}
			return m, nil
		case "esc":
			m.noteMode = false
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// progressBar builds the progress bar with the gradient for the current state.
func (m Model) progressBar() progress.Model {
	var bar progress.Model
	switch {
	case m.paused():
		bar = progress.New(progress.WithGradient(m.theme.PausedGradientStart, m.theme.PausedGradientEnd))
	case m.snap.SessionType.IsBreak():
		bar = progress.New(progress.WithGradient(m.theme.BreakGradientStart, m.theme.BreakGradientEnd))
	default:
		bar = progress.New(progress.WithGradient(m.theme.FocusGradientStart, m.theme.FocusGradientEnd))
	}
	bar.Width = min(m.width-4, 48)
	return bar
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(m.accentColor())
	pausedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("%s focusdial", m.theme.IconApp)))

	// Completion banner
	if m.hasCompleted {
		if m.completedType == domain.SessionTypeFocus {
			sections = append(sections, statusStyle.Render("Focus complete! Great work."))
		} else {
			sections = append(sections, statusStyle.Render("Break over. Ready to focus?"))
		}
	}

	// The dial
	sections = append(sections, renderDial(
		m.snap.AngleDegrees,
		m.snap.TimeLabel,
		m.snap.SessionType.Label(),
		m.timerColor(),
		m.theme,
	))

	// Status line
	switch {
	case m.snap.AutoStartPending:
		sections = append(sections, statusStyle.Render("Starting automatically..."))
	case m.snap.Running:
		sections = append(sections, statusStyle.Render("Running"))
	case m.snap.RemainingSeconds == 0:
		sections = append(sections, pausedStyle.Render("Turn the dial to pick a duration"))
	case m.paused():
		badge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, badge)
	default:
		sections = append(sections, pausedStyle.Render("Ready"))
	}

	// Progress bar
	sections = append(sections, m.progressBar().ViewAs(m.snap.Progress))

	// Cycle position
	interval := m.snap.Settings.LongBreakInterval
	if interval > 0 && !m.snap.SessionType.IsBreak() {
		untilLong := interval - m.snap.CompletedFocusCount%interval
		sections = append(sections, helpStyle.Render(
			fmt.Sprintf("%d focus session(s) until long break", untilLong)))
	}

	// Today's stats
	if m.stats != nil && m.stats.FocusSessions > 0 {
		sections = append(sections, helpStyle.Render(fmt.Sprintf(
			"%s Today: %d focus, %d breaks, %s focused",
			m.theme.IconStats, m.stats.FocusSessions, m.stats.BreaksTaken,
			formatDuration(m.stats.TotalFocusTime))))
	}

	// Note input overlay
	if m.noteMode {
		sections = append(sections, helpStyle.Render("Note: ")+m.noteInput.View())
	}

	// Help
	notifLabel := "off"
	if m.notificationsEnabled {
		notifLabel = "on"
	}
	sections = append(sections, "")
	switch {
	case m.confirmRestart:
		sections = append(sections, helpStyle.Render("Restart the cycle? [r] confirm  [any] cancel"))
	case m.noteMode:
		sections = append(sections, helpStyle.Render("enter save  esc cancel"))
	default:
		help := "[space] start/pause  [←/→] dial  [r]estart  [q]uit"
		if m.snap.Running {
			help = "[space] pause  [r]estart  [q]uit"
		}
		if m.hasCompleted && m.completedType == domain.SessionTypeFocus && !m.noteSaved {
			help = "[n]ote  " + help
		}
		help += fmt.Sprintf("  [tab] notify: %s", notifLabel)
		sections = append(sections, helpStyle.Render(help))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// formatDuration formats a duration as Hh MMm or MMm.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
