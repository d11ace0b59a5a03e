package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/logtail"
)

// handleActivityKey scrolls the activity log.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.activity.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.activity.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.activity.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.activity.GotoBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.activity.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.activity.HalfPageUp()
	}
	return m, nil
}

// updateActivity re-renders the log entries, following the tail when already at the bottom.
func (m *Model) updateActivity() {
	if !m.ready {
		return
	}
	follow := m.activity.AtBottom() || m.activity.TotalLineCount() == 0
	m.activity.SetContent(m.renderEntries())
	if follow {
		m.activity.GotoBottom()
	}
}

func (m Model) renderEntries() string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render("Cannot read activity log: " + m.logErr.Error())
	}
	if len(m.entries) == 0 {
		return styles.MutedText.Render("No activity yet")
	}

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		lines = append(lines, m.formatEntry(e, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatEntry(e logtail.Entry, styles Styles) string {
	if e.Message == "" && e.Raw != "" {
		return styles.MutedText.Render(e.Raw)
	}

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}
	var level lipgloss.Style
	switch strings.ToLower(e.Level) {
	case "error", "dpanic", "panic", "fatal":
		level = styles.DangerText
	case "warn":
		level = styles.WarningText
	case "debug":
		level = styles.FaintText
	default:
		level = styles.InfoText
	}

	parts := []string{
		styles.FaintText.Render(ts),
		level.Render(strings.ToUpper(truncate(e.Level, 5))),
	}
	if e.Component != "" {
		parts = append(parts, styles.AccentText.Render("["+e.Component+"]"))
	}
	parts = append(parts, styles.Text.Render(e.Message))
	if fields := e.FieldString(); fields != "" {
		parts = append(parts, styles.MutedText.Render(fields))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Activity") +
		styles.FaintText.Render("  "+truncateMiddle(m.logPath, max(10, m.width-12)))
	return title + "\n" + m.activity.View()
}
