package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
)

type editorField int

const (
	fieldName editorField = iota
	fieldCategory
	fieldPrice
	fieldUnit
	fieldDescription
	fieldPopular
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Category", "Price (Rp)", "Unit", "Description", "Popular"}

// editorModal edits one product. Every accepted keystroke is applied through the
// merchant session immediately; persistence is debounced downstream.
type editorModal struct {
	session *merchant.Session
	id      string

	inputs   map[editorField]*textinput.Model
	category catalog.Category
	popular  bool
	focus    editorField

	err     error
	applied int
}

func newEditorModal(session *merchant.Session, p catalog.Product) *editorModal {
	newInput := func(value string, limit int) *textinput.Model {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = limit
		in.Width = 48
		in.SetValue(value)
		return &in
	}
	return &editorModal{
		session: session,
		id:      p.ID,
		inputs: map[editorField]*textinput.Model{
			fieldName:        newInput(p.Name, 120),
			fieldPrice:       newInput(strconv.FormatFloat(p.Price, 'f', -1, 64), 20),
			fieldUnit:        newInput(p.Unit, 24),
			fieldDescription: newInput(p.Description, 500),
		},
		category: p.Category,
		popular:  p.IsPopular,
	}
}

func (m *editorModal) Init() tea.Cmd {
	return m.inputs[fieldName].Focus()
}

func (m *editorModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInput(msg), false
	}

	switch {
	case key.Matches(k, keys.Escape):
		return m, m.closeCmd(), true
	case k.String() == "tab" || k.String() == "down":
		return m, m.setFocus((m.focus + 1) % fieldCount), false
	case k.String() == "shift+tab" || k.String() == "up":
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount), false
	case key.Matches(k, keys.Confirm):
		if m.focus == fieldCount-1 {
			return m, m.closeCmd(), true
		}
		return m, m.setFocus(m.focus + 1), false
	}

	switch m.focus {
	case fieldCategory:
		switch k.String() {
		case "left", "h":
			m.setCategory(prevCategory(m.category))
		case "right", "l", " ":
			m.setCategory(nextCategory(m.category))
		}
		return m, nil, false
	case fieldPopular:
		if k.String() == " " || k.String() == "left" || k.String() == "right" {
			m.popular = !m.popular
			m.apply(catalog.Patch{IsPopular: catalog.BoolPtr(m.popular)})
		}
		return m, nil, false
	}

	before := m.inputs[m.focus].Value()
	cmd := m.updateInput(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.applyField(m.focus, after)
	}
	return m, cmd, false
}

func (m *editorModal) updateInput(msg tea.Msg) tea.Cmd {
	in, ok := m.inputs[m.focus]
	if !ok {
		return nil
	}
	next, cmd := in.Update(msg)
	*in = next
	return cmd
}

func (m *editorModal) setFocus(f editorField) tea.Cmd {
	if in, ok := m.inputs[m.focus]; ok {
		in.Blur()
	}
	m.focus = f
	if in, ok := m.inputs[m.focus]; ok {
		return in.Focus()
	}
	return nil
}

func (m *editorModal) setCategory(c catalog.Category) {
	m.category = c
	m.apply(catalog.Patch{Category: catalog.CategoryPtr(c)})
}

// applyField turns the edited text into a patch for that field.
func (m *editorModal) applyField(f editorField, value string) {
	switch f {
	case fieldName:
		m.apply(catalog.Patch{Name: catalog.StringPtr(value)})
	case fieldUnit:
		m.apply(catalog.Patch{Unit: catalog.StringPtr(value)})
	case fieldDescription:
		m.apply(catalog.Patch{Description: catalog.StringPtr(value)})
	case fieldPrice:
		price, err := parsePrice(value)
		if err != nil {
			m.err = err
			return
		}
		m.apply(catalog.Patch{Price: catalog.FloatPtr(price)})
	}
}

func (m *editorModal) apply(patch catalog.Patch) {
	if err := m.session.Update(m.id, patch); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.applied++
}

func (m *editorModal) closeCmd() tea.Cmd {
	if m.applied == 0 {
		return nil
	}
	return flashCmd(fmt.Sprintf("Saved %s locally, syncing to cloud", plural(m.applied, "change", "changes")), false)
}

// parsePrice reads a rupiah amount. Dots group thousands and a comma marks decimals.
func parsePrice(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "Rp"), "rp")
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("price is required")
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q is not a number", value)
	}
	if price < 0 {
		return 0, catalog.ErrInvalidPrice
	}
	return price, nil
}

func nextCategory(c catalog.Category) catalog.Category {
	next := catalog.NextSelector(c)
	if next == catalog.CategoryAll {
		next = catalog.NextSelector(next)
	}
	return next
}

func prevCategory(c catalog.Category) catalog.Category {
	prev := catalog.PrevSelector(c)
	if prev == catalog.CategoryAll {
		prev = catalog.PrevSelector(prev)
	}
	return prev
}

func (m *editorModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	labelStyle := styles.MutedText.Width(14)
	focusLabel := styles.AccentText.Bold(true).Width(14)

	var b strings.Builder
	for f := editorField(0); f < fieldCount; f++ {
		label := labelStyle
		if f == m.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(fieldLabels[f]))

		switch f {
		case fieldCategory:
			value := "‹ " + string(m.category) + " ›"
			color := lipgloss.Color(theme.CategoryColor(m.category))
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(value))
		case fieldPopular:
			value := "[ ] no"
			if m.popular {
				value = "[★] yes"
			}
			b.WriteString(styles.WarningText.Render(value))
		default:
			b.WriteString(m.inputs[f].View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styles.DangerText.Render(m.err.Error()))
	} else {
		b.WriteString(styles.SuccessText.Render("Changes apply as you type"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("tab/↑↓: field  ←/→/space: choose  esc: close & sync"))
	return renderModal(theme, width, height, 72, "Edit Product", b.String())
}
