package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal should close.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// renderModal frames content in a centered bordered box.
func renderModal(theme Theme, width, height, boxWidth int, title, content string) string {
	styles := theme.Styles()
	body := styles.Text.Bold(true).Render(title) + "\n" +
		styles.FaintText.Render(strings.Repeat("─", max(0, boxWidth-6))) + "\n\n" +
		content
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(min(boxWidth, max(20, width-2)))
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box.Render(body),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// infoModal shows a message until dismissed.
type infoModal struct {
	title string
	body  string
}

func newInfoModal(title, body string) *infoModal {
	return &infoModal{title: title, body: body}
}

func (m *infoModal) Init() tea.Cmd { return nil }

func (m *infoModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(k, keys.Confirm) || key.Matches(k, keys.Escape) || k.String() == "q" {
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m *infoModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.Text.Render(m.body) + "\n\n" + styles.FaintText.Render("enter/esc: close")
	return renderModal(theme, width, height, 72, m.title, content)
}

// confirmModal asks a yes/no question and reports the answer through onAnswer.
type confirmModal struct {
	prompt   string
	subject  string
	onAnswer func(yes bool) tea.Cmd
}

func newConfirmModal(prompt, subject string, onAnswer func(bool) tea.Cmd) *confirmModal {
	return &confirmModal{prompt: prompt, subject: subject, onAnswer: onAnswer}
}

func (m *confirmModal) Init() tea.Cmd { return nil }

func (m *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes):
		return m, m.onAnswer(true), true
	case key.Matches(k, keys.No):
		return m, m.onAnswer(false), true
	}
	return m, nil, false
}

func (m *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.Text.Render(m.prompt) + "\n" +
		styles.WarningText.Bold(true).Render(m.subject) + "\n\n" +
		styles.AccentText.Render("y") + styles.MutedText.Render(": yes   ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(": no")
	return renderModal(theme, width, height, 56, "Confirm", content)
}

// loginModal collects merchant credentials.
type loginModal struct {
	session *merchant.Session
	inputs  [2]textinput.Model
	focus   int
	err     error
}

func newLoginModal(session *merchant.Session) *loginModal {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username: "
	user.CharLimit = 64

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 64

	return &loginModal{session: session, inputs: [2]textinput.Model{user, pass}}
}

func (m *loginModal) Init() tea.Cmd {
	return m.inputs[0].Focus()
}

func (m *loginModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return m, nil, true
		case key.Matches(k, keys.Next), key.Matches(k, keys.Previous):
			return m, m.setFocus(1 - m.focus), false
		case key.Matches(k, keys.Confirm):
			if m.focus == 0 {
				return m, m.setFocus(1), false
			}
			err := m.session.Login(m.inputs[0].Value(), m.inputs[1].Value())
			if err != nil {
				m.err = err
				m.inputs[1].SetValue("")
				return m, nil, false
			}
			return m, flashCmd("Merchant mode on", false), true
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd, false
}

func (m *loginModal) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *loginModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		msg := m.err.Error()
		if errors.Is(m.err, merchant.ErrBadCredentials) {
			msg = "Username atau password salah"
		}
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter: login  tab: next field  esc: cancel"))
	return renderModal(theme, width, height, 52, "Merchant Login", b.String())
}
