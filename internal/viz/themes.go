package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the live view.
type Theme struct {
	Name    string
	Table   lipgloss.Color
	Header  lipgloss.Color
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	ThemeTerminal = Theme{
		Name:    "terminal",
		Table:   lipgloss.Color("252"),
		Header:  lipgloss.Color("86"),
		Accent:  lipgloss.Color("205"),
		Muted:   lipgloss.Color("240"),
		Warning: lipgloss.Color("214"),
		Error:   lipgloss.Color("196"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Table:   lipgloss.Color("#00ff00"),
		Header:  lipgloss.Color("#88ff88"),
		Accent:  lipgloss.Color("#ccffcc"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeNeon = Theme{
		Name:    "neon",
		Table:   lipgloss.Color("#00ffff"),
		Header:  lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#ffff00"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
		Error:   lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeTerminal,
		ThemePhosphor,
		ThemeNeon,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTerminal
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t, wrapping around.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
