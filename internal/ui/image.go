package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/imagegen"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
)

// imageDoneMsg carries the data URI produced by an upload or a generation request.
type imageDoneMsg struct {
	id     string
	uri    string
	origin string
	err    error
}

// imageModal replaces a product image from a local file or an AI generation.
type imageModal struct {
	ctx       context.Context
	session   *merchant.Session
	product   catalog.Product
	images    imagegen.Generator
	imagesErr error

	path    textinput.Model
	spinner spinner.Model
	busy    bool
	cancel  context.CancelFunc
	err     error
}

func newImageModal(ctx context.Context, session *merchant.Session, p catalog.Product, images imagegen.Generator, imagesErr error) *imageModal {
	path := textinput.New()
	path.Prompt = "File: "
	path.Placeholder = "~/Pictures/produk.jpg"
	path.Width = 48

	return &imageModal{
		ctx:       ctx,
		session:   session,
		product:   p,
		images:    images,
		imagesErr: imagesErr,
		path:      path,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (m *imageModal) Init() tea.Cmd {
	return m.path.Focus()
}

func (m *imageModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return m, nil, false
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd, false

	case imageDoneMsg:
		if msg.id != m.product.ID {
			return m, nil, false
		}
		m.busy = false
		m.cancel = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil, false
		}
		if err := m.session.Update(m.product.ID, catalog.Patch{Image: catalog.StringPtr(msg.uri)}); err != nil {
			m.err = err
			return m, nil, false
		}
		return m, flashCmd("Image "+msg.origin+" for "+m.product.Name, false), true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil, true
		case m.busy:
			return m, nil, false
		case msg.String() == "ctrl+g":
			return m, m.generate(), false
		case key.Matches(msg, keys.Confirm):
			return m, m.upload(), false
		}
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd, false
}

func (m *imageModal) upload() tea.Cmd {
	path := expandHome(strings.TrimSpace(m.path.Value()))
	if path == "" {
		m.err = errors.New("enter a file path or press ctrl+g to generate")
		return nil
	}
	m.err = nil
	id := m.product.ID
	return func() tea.Msg {
		uri, err := imagegen.FromFile(path)
		return imageDoneMsg{id: id, uri: uri, origin: "uploaded", err: err}
	}
}

func (m *imageModal) generate() tea.Cmd {
	if m.images == nil {
		m.err = m.imagesErr
		if m.err == nil {
			m.err = imagegen.ErrNoAPIKey
		}
		return nil
	}
	m.err = nil
	m.busy = true
	ctx, cancel := context.WithTimeout(m.ctx, ImageTimeout)
	m.cancel = cancel
	images := m.images
	p := m.product
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		defer cancel()
		uri, err := images.Generate(ctx, p.Name, p.Description)
		return imageDoneMsg{id: p.ID, uri: uri, origin: "generated", err: err}
	})
}

func (m *imageModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(m.product.Name))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Current: " + truncateMiddle(imageLabel(m.product.Image), 56)))
	b.WriteString("\n\n")
	b.WriteString(m.path.View())
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View())
		b.WriteString(styles.InfoText.Render(" Generating image with AI..."))
	case m.err != nil:
		b.WriteString(styles.DangerText.Render(m.err.Error()))
	case m.images == nil:
		b.WriteString(styles.MutedText.Render("AI generation needs an API key (GEMINI_API_KEY)"))
	default:
		b.WriteString(styles.MutedText.Render("Generate a photo from the name and description"))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter: upload file  ctrl+g: generate  esc: close"))
	return renderModal(theme, width, height, 72, "Product Image", b.String())
}
