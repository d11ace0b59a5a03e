package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewCart     key.Binding
	ViewActivity key.Binding
	ViewProfile  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Shop
	NextCategory key.Binding
	PrevCategory key.Binding
	Add          key.Binding

	// Cart
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding
	Checkout key.Binding

	// Merchant
	Merchant key.Binding
	New      key.Binding
	Edit     key.Binding
	Image    key.Binding

	// Profile
	Video   key.Binding
	Contact key.Binding

	// Modal input
	Confirm  key.Binding
	Next     key.Binding
	Previous key.Binding
	Yes      key.Binding
	No       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to shop"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh from cloud"),
		),

		ViewCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart"),
		),
		ViewActivity: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		ViewProfile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Company profile"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("ctrl+u", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("ctrl+d", "Page down"),
		),

		NextCategory: key.NewBinding(
			key.WithKeys("f", "tab"),
			key.WithHelp("f", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("F", "shift+tab"),
			key.WithHelp("F", "Previous category"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/enter", "Add to cart"),
		),

		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Increase quantity"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Decrease quantity"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove / delete"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Order via WhatsApp"),
		),

		Merchant: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Merchant login/logout"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New product"),
		),
		Edit: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "Edit product"),
		),
		Image: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "Product image"),
		),

		Video: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Presentation video"),
		),
		Contact: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Chat on WhatsApp"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.NextCategory, k.PrevCategory},
		{k.Add, k.ViewCart, k.Increase, k.Decrease, k.Remove, k.Checkout},
		{k.Merchant, k.New, k.Edit, k.Image, k.Remove},
		{k.ViewProfile, k.Video, k.Contact},
		{k.Refresh, k.ViewActivity, k.CycleTheme, k.Help, k.Quit},
	}
}
