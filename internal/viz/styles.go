package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles groups the lipgloss styles derived from a Theme.
type Styles struct {
	Panel   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Subtle  lipgloss.Style
	KeyHint lipgloss.Style
	Header  lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Record  lipgloss.Style
	Active  lipgloss.Style
	Graph   lipgloss.Style
	High    lipgloss.Style
	Mid     lipgloss.Style
	Low     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(46),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Running: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Record:  lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		Active:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Graph:   lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		High:    lipgloss.NewStyle().Foreground(t.Success),
		Mid:     lipgloss.NewStyle().Foreground(t.Warning),
		Low:     lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText colors each rune along a blend between two theme colors.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, err1 := colorful.Hex(string(start))
	to, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return text
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(from.BlendRgb(to, t).Clamped().Hex()))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a level bar, colored by how full it is.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent > 0.8:
		return s.High.Render(bar)
	case percent > 0.4:
		return s.Mid.Render(bar)
	}
	return s.Low.Render(bar)
}

// Separator is a decorative rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}
