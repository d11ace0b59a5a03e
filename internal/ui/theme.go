package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theimpresionist/UD-mitra-gizi-lokal-mandiri/internal/catalog"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Detail pane
	FocusBg    string // Selected tab

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Price   string

	// StatusColors maps sync badges (synced, saving, error, offline, merchant) to colors.
	StatusColors map[string]string
	// CategoryColors maps catalog categories to tab colors.
	CategoryColors map[catalog.Category]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		PriceText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Price)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),

		FocusPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)),

		statusColors: t.StatusColors,
		background:   t.Background,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style
	PriceText   lipgloss.Style

	Header    lipgloss.Style
	Logo      lipgloss.Style
	Selected  lipgloss.Style
	Pane      lipgloss.Style
	FocusPane lipgloss.Style

	statusColors map[string]string
	background   string
}

// StatusStyle returns a badge style for the given sync status.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = "#6272A4"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Bold(true).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text styles carry bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.PriceText = s.PriceText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// CategoryColor returns the tab color for a category.
func (t Theme) CategoryColor(c catalog.Category) string {
	if color, ok := t.CategoryColors[c]; ok {
		return color
	}
	return t.Accent
}

// Theme definitions

const defaultThemeName = "Kebun"

var themes = map[string]Theme{
	"Kebun":   kebunTheme(),
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Kebun", "Dracula", "Slate"}

// GetTheme returns a theme by name, falling back to Kebun.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return kebunTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func kebunTheme() Theme {
	// Garden greens on a dark soil base, emerald accents.
	return Theme{
		Name: "Kebun",

		Background: "#0c1410",
		Surface:    "#132019",
		SurfaceAlt: "#182a20",
		FocusBg:    "#1f3a2b",

		SelectionBg:   "#047857", // emerald-700
		SelectionText: "#ecfdf5", // emerald-50

		Border:      "#2b4a3a",
		BorderFocus: "#34d399", // emerald-400

		Text:    "#e7f5ec",
		Muted:   "#9bb8a7",
		Faint:   "#5f7d6c",
		Accent:  "#34d399", // emerald-400
		Success: "#22c55e",
		Warning: "#fbbf24", // amber-400
		Danger:  "#f87171", // red-400
		Info:    "#67e8f9",
		Price:   "#fcd34d",

		StatusColors: map[string]string{
			"synced":   "#22c55e",
			"saving":   "#fbbf24",
			"error":    "#ef4444",
			"offline":  "#f97316",
			"merchant": "#a78bfa",
		},
		CategoryColors: map[catalog.Category]string{
			catalog.CategoryAll:    "#34d399",
			catalog.CategoryFresh:  "#4ade80",
			catalog.CategorySnacks: "#fb923c",
			catalog.CategoryDry:    "#facc15",
		},
	}
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21",
		Surface:    "#282A36",
		SurfaceAlt: "#21222C",
		FocusBg:    "#343746",

		SelectionBg:   "#44475A",
		SelectionText: "#F8F8F2",

		Border:      "#44475A",
		BorderFocus: "#BD93F9",

		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",
		Price:   "#F1FA8C",

		StatusColors: map[string]string{
			"synced":   "#50FA7B",
			"saving":   "#FFB86C",
			"error":    "#FF5555",
			"offline":  "#FF79C6",
			"merchant": "#BD93F9",
		},
		CategoryColors: map[catalog.Category]string{
			catalog.CategoryAll:    "#BD93F9",
			catalog.CategoryFresh:  "#50FA7B",
			catalog.CategorySnacks: "#FFB86C",
			catalog.CategoryDry:    "#F1FA8C",
		},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",
		Price:   "#fde047",

		StatusColors: map[string]string{
			"synced":   "#16a34a",
			"saving":   "#f59e0b",
			"error":    "#dc2626",
			"offline":  "#ea580c",
			"merchant": "#8b5cf6",
		},
		CategoryColors: map[catalog.Category]string{
			catalog.CategoryAll:    "#38bdf8",
			catalog.CategoryFresh:  "#22c55e",
			catalog.CategorySnacks: "#f97316",
			catalog.CategoryDry:    "#eab308",
		},
	}
}
