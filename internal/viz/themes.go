package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/folio3d/internal/scene"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Available themes, one per scene theme.
var (
	ThemeDark = Theme{
		Name:       string(scene.ThemeDark),
		Primary:    lipgloss.Color("#00d4ff"),
		Secondary:  lipgloss.Color("#7b2cbf"),
		Accent:     lipgloss.Color("#e0aaff"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#f1f5f9"),
		Muted:      lipgloss.Color("#64748b"),
		Success:    lipgloss.Color("#22c55e"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
	}

	ThemeLight = Theme{
		Name:       string(scene.ThemeLight),
		Primary:    lipgloss.Color("#2563eb"),
		Secondary:  lipgloss.Color("#7c3aed"),
		Accent:     lipgloss.Color("#db2777"),
		Background: lipgloss.Color("#f8fafc"),
		Text:       lipgloss.Color("#0f172a"),
		Muted:      lipgloss.Color("#94a3b8"),
		Success:    lipgloss.Color("#16a34a"),
		Warning:    lipgloss.Color("#d97706"),
		Error:      lipgloss.Color("#dc2626"),
	}

	// All available themes
	Themes = []Theme{
		ThemeDark,
		ThemeLight,
	}
)

// GetTheme returns a theme by name, falling back to dark.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

// ForScene returns the UI theme matching a scene theme.
func ForScene(t scene.Theme) Theme {
	return GetTheme(string(t))
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
