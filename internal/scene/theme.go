package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ThemeColors are the scene-facing colors of a theme.
type ThemeColors struct {
	Palette    Palette
	Background colorful.Color
	Fog        colorful.Color
}

var themeColors = map[Theme]ThemeColors{
	ThemeDark: {
		Palette:    Palette{Primary: mustHex("#00d4ff"), Secondary: mustHex("#7b2cbf")},
		Background: mustHex("#0a0a0a"),
		Fog:        mustHex("#0a0a0a"),
	},
	ThemeLight: {
		Palette:    Palette{Primary: mustHex("#2563eb"), Secondary: mustHex("#7c3aed")},
		Background: mustHex("#ffffff"),
		Fog:        mustHex("#f8fafc"),
	},
}

func ParseTheme(name string) (Theme, error) {
	t := Theme(name)
	if _, ok := themeColors[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

func (t Theme) Colors() (ThemeColors, error) {
	c, ok := themeColors[t]
	if !ok {
		return ThemeColors{}, fmt.Errorf("%w: %q", ErrUnknownTheme, string(t))
	}
	return c, nil
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func DefaultPalette() Palette {
	return themeColors[ThemeDark].Palette
}
