package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/checkout"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/imagegen"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/logtail"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/merchant"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/prefs"
	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewShop View = iota
	ViewCart
	ViewActivity
	ViewProfile
)

// CatalogSource is the synced catalog the UI renders. *cloudsync.Engine satisfies it.
type CatalogSource interface {
	Snapshot() state.Snapshot
	Refresh(ctx context.Context) (bool, error)
}

// Sender hands a prepared order to the messaging app and opens plain links.
// checkout.Handoff satisfies it.
type Sender interface {
	Send(order checkout.Order) checkout.Result
	OpenLink(link string) checkout.Result
}

// Options configures the UI.
type Options struct {
	Context  context.Context
	Catalog  CatalogSource
	Session  *merchant.Session
	Checkout Sender
	// Images is nil when generation is unavailable; ImagesErr then says why.
	Images    imagegen.Generator
	ImagesErr error

	BusinessName string
	WhatsApp     string
	LogPath      string
	Profile      Profile

	ThemeName    string
	Category     catalog.Category
	PrefsPath    string
	RefreshEvery time.Duration
	Logger       *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	source    CatalogSource
	session   *merchant.Session
	sender    Sender
	images    imagegen.Generator
	imagesErr error
	business  string
	phone     string
	logPath   string
	profile   Profile
	prefsPath string
	tick      time.Duration
	logger    *zap.Logger
	keys      keyMap

	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	snapshot    state.Snapshot
	lastUpdated time.Time
	category    catalog.Category
	selected    int
	cart        *catalog.Cart
	cartRow     int

	detail   viewport.Model
	activity    viewport.Model
	profileView viewport.Model
	entries  []logtail.Entry
	logErr   error

	modal      Modal
	showHelp   bool
	refreshing bool

	flash    string
	flashErr bool
	flashAt  time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.RefreshEvery
	if tick <= 0 || tick > DefaultUIInterval {
		tick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}
	category := opts.Category
	if category == "" {
		category = catalog.CategoryAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		ctx:       ctx,
		source:    opts.Catalog,
		session:   opts.Session,
		sender:    opts.Checkout,
		images:    opts.Images,
		imagesErr: opts.ImagesErr,
		business:  opts.BusinessName,
		phone:     opts.WhatsApp,
		logPath:   opts.LogPath,
		profile:   opts.Profile,
		prefsPath: opts.PrefsPath,
		tick:      tick,
		logger:    logger.With(zap.String("component", "ui")),
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		view:      ViewShop,
		category:  category,
		cart:      &catalog.Cart{},
	}
	if m.source != nil {
		m.snapshot = m.source.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.source != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.source))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(0, 0)
			m.activity = viewport.New(0, 0)
			m.profileView = viewport.New(0, 0)
		}
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		m.updateDetail()
		cmd := m.forwardToModal(msg)
		return m, cmd

	case activityMsg:
		m.entries = msg.entries
		m.logErr = msg.err
		m.updateActivity()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		switch {
		case msg.err != nil:
			m.setFlash("Refresh failed: "+msg.err.Error(), true)
		case msg.changed:
			m.setFlash("Catalog updated from cloud", false)
		default:
			m.setFlash("Catalog is up to date", false)
		}
		return m, fetchSnapshotCmd(m.source)

	case checkoutDoneMsg:
		return m.handleCheckoutResult(msg.result)

	case linkDoneMsg:
		return m.handleLinkResult(msg)

	case flashMsg:
		m.setFlash(msg.text, msg.err)
		if msg.refresh && m.source != nil {
			return m, fetchSnapshotCmd(m.source)
		}
		return m, nil
	}

	cmd := m.forwardToModal(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// forwardToModal passes non-key messages (spinner ticks, async results) to the open modal.
func (m *Model) forwardToModal(msg tea.Msg) tea.Cmd {
	if m.modal == nil {
		return nil
	}
	next, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal = nil
	} else {
		m.modal = next
	}
	return cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.updateDetail()
		m.updateProfile()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.view = ViewShop
		return m, nil

	case key.Matches(msg, m.keys.ViewCart):
		if m.view == ViewCart {
			m.view = ViewShop
		} else {
			m.view = ViewCart
		}
		return m, nil

	case key.Matches(msg, m.keys.ViewActivity):
		m.view = ViewActivity
		return m, loadActivityCmd(m.logPath)

	case key.Matches(msg, m.keys.ViewProfile):
		m.view = ViewProfile
		m.updateProfile()
		m.profileView.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.keys.Checkout):
		return m.startCheckout()

	case key.Matches(msg, m.keys.Merchant):
		return m.toggleMerchant()
	}

	switch m.view {
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	case ViewProfile:
		return m.handleProfileKey(msg)
	default:
		return m.handleShopKey(msg)
	}
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.source != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.source))
	}
	if m.view == ViewActivity {
		cmds = append(cmds, loadActivityCmd(m.logPath))
	}
	if m.flash != "" && time.Since(m.flashAt) > FlashDuration {
		m.flash = ""
	}
	cmds = append(cmds, tickCmd(m.tick))
	return m, tea.Batch(cmds...)
}

func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	if m.source == nil || m.refreshing {
		return m, nil
	}
	m.refreshing = true
	m.setFlash("Refreshing from cloud...", false)
	return m, refreshCmd(m.ctx, m.source)
}

func (m Model) startCheckout() (tea.Model, tea.Cmd) {
	order, err := checkout.Prepare(m.business, m.phone, m.cart.Items())
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			m.setFlash("Cart is empty", true)
			return m, nil
		}
		m.modal = newInfoModal("Checkout unavailable", err.Error())
		return m, nil
	}
	if m.sender == nil {
		m.modal = newInfoModal("Send this order manually", manualCopyBody(order.Link))
		return m, nil
	}
	m.setFlash("Opening WhatsApp...", false)
	return m, checkoutCmd(m.sender, order)
}

func (m Model) handleCheckoutResult(res checkout.Result) (tea.Model, tea.Cmd) {
	switch {
	case res.Opened:
		m.setFlash("Order opened in WhatsApp", false)
	case res.Copied:
		m.setFlash("Could not open a browser; order copied to clipboard", false)
	default:
		m.logger.Warn("checkout needs manual copy", zap.Error(res.Err))
		m.modal = newInfoModal("Send this order manually", manualCopyBody(res.Link))
	}
	return m, nil
}

func manualCopyBody(link string) string {
	return "The link could not be opened or copied.\nOpen this address in a browser:\n\n" + link
}

func (m Model) toggleMerchant() (tea.Model, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}
	if m.session.Active() {
		m.setFlash("Saving changes...", false)
		return m, logoutCmd(m.ctx, m.session)
	}
	m.modal = newLoginModal(m.session)
	return m, m.modal.Init()
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashAt = time.Now()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Category: string(m.category)}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

func (m *Model) resize() {
	_, detailW := m.paneWidths()
	bodyH := m.bodyHeight()
	m.detail.Width = max(0, detailW-4)
	m.detail.Height = max(0, bodyH-2)
	m.activity.Width = max(0, m.width)
	m.activity.Height = max(0, bodyH)
	m.profileView.Width = max(0, m.width-2)
	m.profileView.Height = max(0, bodyH-1)
	m.updateDetail()
	m.updateActivity()
	m.updateProfile()
}

// paneWidths splits the width between the product list and the detail pane.
func (m Model) paneWidths() (list, detail int) {
	if m.width < LayoutCompactWidth {
		return m.width, 0
	}
	list = int(float64(m.width) * LayoutListWidth)
	return list, m.width - list
}

// bodyHeight is the room left under the header, command bar and tabs.
func (m Model) bodyHeight() int {
	return max(0, m.height-4)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.view {
	case ViewCart:
		return m.renderCart()
	case ViewActivity:
		return m.renderActivity()
	case ViewProfile:
		return m.renderProfile()
	default:
		return m.renderShop()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshDoneMsg struct {
	changed bool
	err     error
}

type checkoutDoneMsg struct {
	result checkout.Result
}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

// flashMsg shows a command bar message. refresh asks for a new snapshot.
type flashMsg struct {
	text    string
	err     bool
	refresh bool
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(source CatalogSource) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(source.Snapshot())
	}
}

func refreshCmd(ctx context.Context, source CatalogSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RefreshTimeout)
		defer cancel()
		changed, err := source.Refresh(ctx)
		return refreshDoneMsg{changed: changed, err: err}
	}
}

func checkoutCmd(sender Sender, order checkout.Order) tea.Cmd {
	return func() tea.Msg {
		return checkoutDoneMsg{result: sender.Send(order)}
	}
}

func logoutCmd(ctx context.Context, session *merchant.Session) tea.Cmd {
	return func() tea.Msg {
		if err := session.Logout(ctx); err != nil {
			return flashMsg{text: "Merchant mode closed, " + err.Error(), err: true, refresh: true}
		}
		return flashMsg{text: "Merchant mode closed, changes saved", refresh: true}
	}
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return activityMsg{err: fmt.Errorf("no log file configured")}
		}
		entries, err := logtail.Tail(path, ActivityLines)
		return activityMsg{entries: entries, err: err}
	}
}

func flashCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return flashMsg{text: text, err: isErr, refresh: true}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx ends.
func Run(opts Options) error {
	m := New(opts)
	ctx := m.ctx
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
