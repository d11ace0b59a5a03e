package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleCartKey processes keyboard input for the cart view.
func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.cart.Items()
	count := len(items)
	if count == 0 {
		return m, nil
	}
	current := items[min(m.cartRow, count-1)]

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cartRow < count-1 {
			m.cartRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cartRow > 0 {
			m.cartRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.cartRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cartRow = count - 1
	case key.Matches(msg, m.keys.Increase):
		m.cart.UpdateQuantity(current.ID, 1)
	case key.Matches(msg, m.keys.Decrease):
		m.cart.UpdateQuantity(current.ID, -1)
	case key.Matches(msg, m.keys.Remove):
		m.cart.Remove(current.ID)
		m.setFlash("Removed "+current.Name+" from cart", false)
		m.clampSelection()
	}
	return m, nil
}

// renderCart renders the cart drawer as a full view.
func (m Model) renderCart() string {
	styles := m.theme.Styles()
	width := m.width
	bodyH := m.bodyHeight()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Keranjang Belanja"))
	b.WriteString(styles.MutedText.Render("  " + plural(m.cart.Count(), "item", "items")))
	b.WriteString("\n\n")

	items := m.cart.Items()
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("Your cart is empty. Press esc to browse products and a to add them."))
		return lipgloss.NewStyle().Width(width).Height(bodyH).Padding(0, 1).Render(b.String())
	}

	qtyW, lineW := 12, 16
	nameW := max(10, width-qtyW-lineW-6)
	for i, item := range items {
		qty := fmt.Sprintf("%d %s", item.Quantity, item.Unit)
		row := fmt.Sprintf("%-*s %*s %*s", nameW, truncate(item.Name, nameW), qtyW, qty, lineW, formatPrice(item.LineTotal()))
		if i == m.cartRow {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(fmt.Sprintf("%-*s ", nameW, truncate(item.Name, nameW))))
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("%*s ", qtyW, qty)))
			b.WriteString(styles.PriceText.Render(fmt.Sprintf("%*s", lineW, formatPrice(item.LineTotal()))))
		}
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("  @ %s / %s", formatPrice(item.Price), item.Unit)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", max(0, min(width-2, nameW+qtyW+lineW+2)))))
	b.WriteString("\n")
	b.WriteString(styles.Text.Bold(true).Render("Total Estimasi  "))
	b.WriteString(styles.PriceText.Render(formatPrice(m.cart.Total())))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("+/- quantity  x remove  o order via WhatsApp"))

	return lipgloss.NewStyle().Width(width).Height(bodyH).Padding(0, 1).Render(b.String())
}
