package domain

import "fmt"

// Theme selects the colour palette of the CV page.
type Theme string

// Available themes.
const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeBlue   Theme = "blue"
	ThemeTeal   Theme = "teal"
	ThemePurple Theme = "purple"
	ThemeRed    Theme = "red"
)

// Themes returns every known theme in picker order.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeBlue, ThemeTeal, ThemePurple, ThemeRed}
}

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeBlue, ThemeTeal, ThemePurple, ThemeRed:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// ParseTheme converts a string to a Theme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: theme %q", ErrUnsupportedType, s)
	}
	return t, nil
}

// Palette holds the colours a theme applies to the page, as hex strings.
type Palette struct {
	// Background is the page background behind the CV sheet.
	Background string

	// Text is the header text colour.
	Text string

	// Content is the CV sheet colour.
	Content string
}

// Palette returns the colours for the theme. Unknown themes, including
// those carried in by imports, fall back to the light palette.
func (t Theme) Palette() Palette {
	switch t {
	case ThemeDark:
		return Palette{Background: "#1e293b", Text: "#ffffff", Content: "#475569"}
	case ThemeBlue:
		return Palette{Background: "#1e40af", Text: "#ffffff", Content: "#3b82f6"}
	case ThemeTeal:
		return Palette{Background: "#0d9488", Text: "#ffffff", Content: "#5eead4"}
	case ThemePurple:
		return Palette{Background: "#7e22ce", Text: "#ffffff", Content: "#c084fc"}
	case ThemeRed:
		return Palette{Background: "#b91c1c", Text: "#ffffff", Content: "#fca5a5"}
	default:
		return Palette{Background: "#18181b", Text: "#ffffff", Content: "#ffffff"}
	}
}

// Next returns the theme after t in picker order, wrapping around.
func (t Theme) Next() Theme {
	all := Themes()
	for i, th := range all {
		if th == t {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
