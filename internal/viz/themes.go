package viz

import "github.com/charmbracelet/lipgloss"

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
	Border     lipgloss.Color

	Star  uint32
	Orbit uint32
	Glow  uint32
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#4fc3f7"),
		Accent:     lipgloss.Color("#ffaa00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#e0e0e0"),
		Muted:      lipgloss.Color("#666666"),
		Success:    lipgloss.Color("#00ff88"),
		Warning:    lipgloss.Color("#ffaa00"),
		Border:     lipgloss.Color("#444466"),
		Star:       0xcccccc,
		Orbit:      0x666666,
		Glow:       0xffaa00,
	}

	ThemeLight = Theme{
		Name:       "light",
		Primary:    lipgloss.Color("#111111"),
		Secondary:  lipgloss.Color("#0277bd"),
		Accent:     lipgloss.Color("#e65100"),
		Background: lipgloss.Color("#f0f0f0"),
		Text:       lipgloss.Color("#222222"),
		Muted:      lipgloss.Color("#888888"),
		Success:    lipgloss.Color("#2e7d32"),
		Warning:    lipgloss.Color("#e65100"),
		Border:     lipgloss.Color("#aaaaaa"),
		Star:       0x9e9e9e,
		Orbit:      0xb0b0b0,
		Glow:       0xff8f00,
	}

	Themes = []Theme{ThemeDark, ThemeLight}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDark
}

func ThemeFor(light bool) Theme {
	if light {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
