package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Ground    lipgloss.Color
	Predicted lipgloss.Color
	Path      lipgloss.Color
	Body      lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Ground:    lipgloss.Color("#666666"),
		Predicted: lipgloss.Color("#00ffff"),
		Path:      lipgloss.Color("#ff00ff"),
		Body:      lipgloss.Color("#ffff00"),
		Accent:    lipgloss.Color("#ff00ff"),
		Muted:     lipgloss.Color("#666666"),
		Warning:   lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Ground:    lipgloss.Color("#005500"),
		Predicted: lipgloss.Color("#00cc00"),
		Path:      lipgloss.Color("#00ff00"),
		Body:      lipgloss.Color("#88ff88"),
		Accent:    lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Ground:    lipgloss.Color("#888888"),
		Predicted: lipgloss.Color("#cccccc"),
		Path:      lipgloss.Color("#0088ff"),
		Body:      lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#0088ff"),
		Muted:     lipgloss.Color("#888888"),
		Warning:   lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Styles returns the canvas layer styles for t. A projectile colour, when
// set, overrides the flown path and body.
func (t Theme) Styles(projectileColor string) map[Layer]lipgloss.Style {
	path, body := t.Path, t.Body
	if projectileColor != "" {
		path = lipgloss.Color(projectileColor)
		body = lipgloss.Color(projectileColor)
	}
	return map[Layer]lipgloss.Style{
		LayerGround:    lipgloss.NewStyle().Foreground(t.Ground),
		LayerPredicted: lipgloss.NewStyle().Foreground(t.Predicted),
		LayerPath:      lipgloss.NewStyle().Foreground(path),
		LayerBody:      lipgloss.NewStyle().Foreground(body).Bold(true),
	}
}
