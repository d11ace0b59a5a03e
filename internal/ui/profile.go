package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/checkout"
)

// Profile holds the business details shown on the profile view.
type Profile struct {
	NIB      string
	Address  string
	Email    string
	VideoURL string
}

type pillar struct{ name, desc string }

var businessPillars = []pillar{
	{"Fresh Aggregator", "Mengonsolidasi hasil tani dan ternak lokal (Ayam, Telur, Sayur) untuk kepastian stok SPPG."},
	{"Healthy Snacks", "Produksi cemilan non-UPF berbasis komunitas (Nagasari, Lemper) yang higienis."},
	{"Dry Fortified", "Inovasi pangan kering tahan lama dengan tambahan mikronutrisi esensial."},
}

var presentationSteps = []pillar{
	{"Rantai Pasok Lokal", "Agregasi hasil tani H-1 untuk menjaga kesegaran nutrisi."},
	{"Standardisasi Dapur", "Penerapan SLHS & Sertifikasi Halal di setiap lini produksi."},
	{"Distribusi Terukur", "Logistik tepat waktu untuk menjamin 100% ketersediaan stok."},
}

const notSet = "not set"

// handleProfileKey scrolls the profile and opens its links.
func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.profileView.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.profileView.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.profileView.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.profileView.GotoBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.profileView.HalfPageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.profileView.HalfPageUp()
	case key.Matches(msg, m.keys.Video):
		url := strings.TrimSpace(m.profile.VideoURL)
		if url == "" {
			m.setFlash("No presentation video configured", true)
			return m, nil
		}
		return m.startOpenLink(url, "presentation video")
	case key.Matches(msg, m.keys.Contact):
		link, err := checkout.ContactLink(m.phone)
		if err != nil {
			m.modal = newInfoModal("Contact unavailable", err.Error())
			return m, nil
		}
		return m.startOpenLink(link, "WhatsApp chat")
	}
	return m, nil
}

func (m Model) startOpenLink(link, label string) (tea.Model, tea.Cmd) {
	if m.sender == nil {
		m.modal = newInfoModal("Open this link manually", manualCopyBody(link))
		return m, nil
	}
	m.setFlash("Opening "+label+"...", false)
	return m, openLinkCmd(m.sender, link, label)
}

func (m Model) handleLinkResult(msg linkDoneMsg) (tea.Model, tea.Cmd) {
	res := msg.result
	switch {
	case res.Opened:
		m.setFlash("Opened "+msg.label, false)
	case res.Copied:
		m.setFlash("Could not open a browser; "+msg.label+" link copied to clipboard", false)
	default:
		m.logger.Warn("link needs manual copy", zap.Error(res.Err))
		m.modal = newInfoModal("Open this link manually", manualCopyBody(res.Link))
	}
	return m, nil
}

func (m *Model) updateProfile() {
	if !m.ready {
		return
	}
	m.profileView.SetContent(m.renderProfileBody())
}

func (m Model) renderProfileBody() string {
	styles := m.theme.Styles()
	width := max(20, m.profileView.Width)
	wrap := lipgloss.NewStyle().Width(width)

	orNotSet := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return styles.FaintText.Render(notSet)
		}
		return styles.Text.Render(v)
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Profil Perusahaan"))
	b.WriteString("\n")
	b.WriteString(styles.Text.Bold(true).Render(m.business))
	b.WriteString("\n\n")
	b.WriteString(wrap.Render(styles.Text.Render("Membangun Generasi dengan Pangan Lokal Terintegrasi.")))
	b.WriteString("\n")
	b.WriteString(wrap.Render(styles.MutedText.Render(
		"Mitra strategis rantai pasok program Makanan Bergizi Gratis (MBG).")))
	b.WriteString("\n\n")
	b.WriteString(styles.InfoText.Render("NIB: "))
	b.WriteString(orNotSet(m.profile.NIB))
	b.WriteString(styles.FaintText.Render("  |  "))
	b.WriteString(styles.SuccessText.Render("SPPG Partner"))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Visi"))
	b.WriteString("\n")
	b.WriteString(wrap.Render(styles.Text.Render(
		"Menjadi katalisator utama dalam pemenuhan gizi nasional melalui integrasi sumber daya lokal menuju Indonesia Emas 2045.")))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("3 Pilar Bisnis Utama"))
	b.WriteString("\n")
	for _, p := range businessPillars {
		b.WriteString(styles.WarningText.Render("• " + p.name))
		b.WriteString("\n")
		b.WriteString(wrap.Render(styles.MutedText.Render("  " + p.desc)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Presentasi Bisnis"))
	b.WriteString(styles.MutedText.Render("  Membangun Kemandirian Gizi"))
	b.WriteString("\n")
	for i, step := range presentationSteps {
		b.WriteString(styles.WarningText.Render(string(rune('1'+i)) + ". " + step.name))
		b.WriteString("\n")
		b.WriteString(wrap.Render(styles.MutedText.Render("   " + step.desc)))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("Video: "))
	b.WriteString(orNotSet(m.profile.VideoURL))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Hubungi Kantor Pusat"))
	b.WriteString("\n")
	for _, row := range []struct{ label, value string }{
		{"Alamat", m.profile.Address},
		{"Email", m.profile.Email},
		{"WhatsApp", m.phone},
	} {
		b.WriteString(styles.MutedText.Render(row.label + strings.Repeat(" ", max(1, 10-len(row.label)))))
		b.WriteString(orNotSet(row.value))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	hints := styles.FaintText.Render("  v video  w WhatsApp  esc shop")
	return styles.AccentText.Bold(true).Render("Profile") + hints + "\n" + m.profileView.View()
}

type linkDoneMsg struct {
	label  string
	result checkout.Result
}

func openLinkCmd(sender Sender, link, label string) tea.Cmd {
	return func() tea.Msg {
		return linkDoneMsg{label: label, result: sender.OpenLink(link)}
	}
}
