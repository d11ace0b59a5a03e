package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const brand = "UD Mitra Gizi"

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot

	parts := []string{bg.Render(brand, styles.Logo)}

	badgeKey, badgeLabel := syncBadge(snap)
	parts = append(parts, styles.StatusStyle(badgeKey).Render(badgeLabel))

	if m.session != nil && m.session.Active() {
		parts = append(parts, styles.StatusStyle("merchant").Render("MERCHANT"))
	}

	parts = append(parts,
		bg.Render("Products:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(snap.Products)), styles.Text))

	if n := m.cart.Count(); n > 0 {
		parts = append(parts,
			bg.Render("Cart:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", n), styles.WarningText.Bold(true)))
	}

	if !compact && snap.Source != "" {
		parts = append(parts,
			bg.Render("Source:", styles.MutedText)+bg.Space()+
				bg.Render(string(snap.Source), styles.InfoText))
	}

	parts = append(parts, bg.Render(m.formatLastSynced(), styles.MutedText))

	if snap.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText)+bg.Space()+
				bg.Render(truncate(snap.LastError.Error(), maxErr), styles.DangerText))
	} else if snap.LocalError != nil && !compact {
		parts = append(parts,
			bg.Render("CACHE", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(truncate(snap.LocalError.Error(), 40), styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// formatLastSynced describes the last successful exchange with the remote.
func (m Model) formatLastSynced() string {
	if !m.snapshot.HasSynced() {
		return "never synced"
	}
	since := time.Since(m.snapshot.LastSynced)
	label := m.snapshot.LastSynced.Local().Format("15:04:05")
	if since < time.Second {
		return "synced " + label + " (now)"
	}
	return fmt.Sprintf("synced %s (%s ago)", label, humanizeDuration(since))
}

// renderCommandBar renders key hints for the active view, or the current flash message.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	merchantMode := m.session != nil && m.session.Active()
	switch m.view {
	case ViewCart:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"+/-", "Qty"},
			{"x", "Remove"},
			{"o", "Order"},
			{"esc", "Shop"},
		}
	case ViewActivity:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"esc", "Shop"},
		}
	case ViewProfile:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"v", "Video"},
			{"w", "WhatsApp"},
			{"esc", "Shop"},
		}
	default:
		commands = []cmd{
			{"f", string(m.category)},
			{"j/k", "Navigate"},
			{"a", "Add"},
			{"c", "Cart"},
			{"o", "Order"},
		}
		if merchantMode {
			commands = append(commands, cmd{"E", "Edit"}, cmd{"n", "New"}, cmd{"I", "Image"}, cmd{"x", "Delete"})
		}
	}
	merchantLabel := "Login"
	if merchantMode {
		merchantLabel = "Close & save"
	}
	commands = append(commands, cmd{"r", "Refresh"}, cmd{"m", merchantLabel}, cmd{"?", "More"})

	colon := lipgloss.NewStyle().Background(bg.bg).Render(":")
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	line := strings.Join(segments, bg.Spaces(2))
	if m.flash != "" {
		style := styles.SuccessText
		if m.flashErr {
			style = styles.DangerText
		}
		line = bg.Render(truncate(m.flash, max(10, m.width-4)), style)
	}
	return styles.Header.Width(m.width).Render(line)
}
