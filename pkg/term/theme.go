package term

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, true-color hex values.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorLavender lipgloss.Color = "#b4befe"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorRed      lipgloss.Color = "#f38ba8"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Palette holds the styles used to draw a carousel in a terminal.
type Palette struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Faded    lipgloss.Style
	Status   lipgloss.Style
	Warning  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultPalette returns the styles used when none are configured.
func DefaultPalette() Palette {
	return Palette{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPink),
		Item:     lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(colorLavender).Background(colorSurface1),
		Faded:    lipgloss.NewStyle().Foreground(colorOverlay0).Background(colorBase),
		Status:   lipgloss.NewStyle().Foreground(colorYellow),
		Warning:  lipgloss.NewStyle().Foreground(colorRed),
		Help:     lipgloss.NewStyle().Foreground(colorOverlay0),
	}
}
