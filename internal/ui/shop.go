package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
)

// visibleProducts returns the catalog filtered by the active category.
func (m Model) visibleProducts() catalog.Catalog {
	return catalog.Filter(m.snapshot.Products, m.category)
}

// selectedProduct returns the highlighted product in the shop list.
func (m Model) selectedProduct() (catalog.Product, bool) {
	products := m.visibleProducts()
	if m.selected < 0 || m.selected >= len(products) {
		return catalog.Product{}, false
	}
	return products[m.selected], true
}

func (m *Model) clampSelection() {
	if n := len(m.visibleProducts()); m.selected >= n {
		m.selected = max(0, n-1)
	}
	if n := m.cart.Len(); m.cartRow >= n {
		m.cartRow = max(0, n-1)
	}
}

// selectID moves the selection to the product with id, if visible.
func (m *Model) selectID(id string) {
	for i, p := range m.visibleProducts() {
		if p.ID == id {
			m.selected = i
			return
		}
	}
}

// handleShopKey processes keyboard input for the shop view.
func (m Model) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.visibleProducts()
	count := len(products)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(0, count-1)
	case key.Matches(msg, m.keys.PageDown):
		m.detail.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.detail.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.NextCategory):
		m.setCategory(catalog.NextSelector(m.category))
	case key.Matches(msg, m.keys.PrevCategory):
		m.setCategory(catalog.PrevSelector(m.category))

	case key.Matches(msg, m.keys.Add):
		if p, ok := m.selectedProduct(); ok {
			m.cart.Add(p)
			m.setFlash(fmt.Sprintf("Added %s (cart: %s)", p.Name, plural(m.cart.Count(), "item", "items")), false)
		}

	case key.Matches(msg, m.keys.New):
		return m.createProduct()
	case key.Matches(msg, m.keys.Edit):
		return m.openEditor()
	case key.Matches(msg, m.keys.Image):
		return m.openImageEditor()
	case key.Matches(msg, m.keys.Remove):
		return m.confirmDelete()
	}

	m.updateDetail()
	return m, nil
}

func (m *Model) setCategory(c catalog.Category) {
	m.category = c
	m.selected = 0
	m.savePrefs()
}

// requireMerchant flashes a hint when an edit key is used in shopper mode.
func (m *Model) requireMerchant() bool {
	if m.session != nil && m.session.Active() {
		return true
	}
	m.setFlash("Merchant mode required (press m to log in)", true)
	return false
}

func (m Model) createProduct() (tea.Model, tea.Cmd) {
	if !m.requireMerchant() {
		return m, nil
	}
	product, err := m.session.Create()
	if err != nil {
		m.setFlash("Create failed: "+err.Error(), true)
		return m, nil
	}
	if m.source != nil {
		m.snapshot = m.source.Snapshot()
	}
	if m.category != catalog.CategoryAll && m.category != product.Category {
		m.category = catalog.CategoryAll
	}
	m.selectID(product.ID)
	m.modal = newEditorModal(m.session, product)
	return m, m.modal.Init()
}

func (m Model) openEditor() (tea.Model, tea.Cmd) {
	if !m.requireMerchant() {
		return m, nil
	}
	product, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	m.modal = newEditorModal(m.session, product)
	return m, m.modal.Init()
}

func (m Model) openImageEditor() (tea.Model, tea.Cmd) {
	if !m.requireMerchant() {
		return m, nil
	}
	product, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	m.modal = newImageModal(m.ctx, m.session, product, m.images, m.imagesErr)
	return m, m.modal.Init()
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	if !m.requireMerchant() {
		return m, nil
	}
	product, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	session := m.session
	m.modal = newConfirmModal(merchant.DeletePrompt, product.Name, func(yes bool) tea.Cmd {
		err := session.Delete(product.ID, merchant.Answer(yes))
		switch {
		case errors.Is(err, merchant.ErrDeclined):
			return flashCmd("Delete cancelled", false)
		case err != nil:
			return flashCmd("Delete failed: "+err.Error(), true)
		default:
			return flashCmd("Deleted "+product.Name, false)
		}
	})
	return m, nil
}

// updateDetail renders the selected product into the detail viewport.
func (m *Model) updateDetail() {
	if !m.ready {
		return
	}
	product, ok := m.selectedProduct()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderProductDetail(product, m.detail.Width))
	m.detail.GotoTop()
}

func (m Model) renderProductDetail(p catalog.Product, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := styles.Text.Bold(true).Render(p.Name)
	if p.IsPopular {
		title += " " + styles.WarningText.Render("★ Populer")
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CategoryColor(p.Category))).Render(string(p.Category)))
	b.WriteString("\n\n")
	b.WriteString(styles.PriceText.Render(formatPrice(p.Price)))
	b.WriteString(styles.MutedText.Render(" / " + p.Unit))
	b.WriteString("\n\n")
	if width > 0 {
		b.WriteString(styles.Text.Width(width).Render(p.Description))
	} else {
		b.WriteString(styles.Text.Render(p.Description))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Image: " + truncateMiddle(imageLabel(p.Image), max(20, width-7))))
	if m.session != nil && m.session.Active() {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("ID: " + p.ID))
	}
	return b.String()
}

// renderShop renders the category tabs, product list and detail pane.
func (m Model) renderShop() string {
	listW, detailW := m.paneWidths()
	bodyH := m.bodyHeight()

	tabs := m.renderTabs()
	list := m.renderProductList(listW, bodyH-1)
	if detailW == 0 {
		return tabs + "\n" + list
	}

	styles := m.theme.Styles()
	pane := styles.FocusPane.
		Width(max(0, detailW-2)).
		Height(max(0, bodyH-3)).
		Padding(0, 1).
		Render(m.detail.View())
	return tabs + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

func (m Model) renderTabs() string {
	bg := NewBgStyle(m.theme.Background)
	selectors := append([]catalog.Category{catalog.CategoryAll}, catalog.Categories()...)
	parts := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		label := fmt.Sprintf(" %s (%d) ", sel, len(catalog.Filter(m.snapshot.Products, sel)))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
		if sel == m.category {
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Background)).
				Background(lipgloss.Color(m.theme.CategoryColor(sel))).
				Bold(true)
			parts = append(parts, style.Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, style))
	}
	return bg.FillLine(bg.Join(parts, " "), m.width)
}

func (m Model) renderProductList(width, height int) string {
	styles := m.theme.Styles()
	products := m.visibleProducts()
	if len(products) == 0 {
		msg := "No products in this category"
		if !m.snapshot.Loaded {
			msg = "Loading catalog..."
		}
		return lipgloss.NewStyle().Width(width).Height(height).Render(styles.MutedText.Render(msg))
	}

	// Scroll window keeps the selection visible.
	height = max(1, height)
	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(len(products), start+height)

	priceW := 16
	nameW := max(10, width-priceW-4)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := products[i]
		marker := "  "
		if p.IsPopular {
			marker = "★ "
		}
		name := truncate(p.Name, nameW-2)
		price := formatPrice(p.Price)
		row := fmt.Sprintf("%s%-*s %*s", marker, nameW-2, name, priceW, price)
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(width).Render(row))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(
			styles.WarningText.Render(marker)+styles.Text.Render(fmt.Sprintf("%-*s ", nameW-2, name))+
				styles.PriceText.Render(fmt.Sprintf("%*s", priceW, price))))
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}
