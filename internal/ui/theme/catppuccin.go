package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1e1e2e")
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	// Accent follows the rider's colour preference.
	Accent = lipgloss.Color("#89b4fa")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Accent)

	Title  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Muted  = lipgloss.NewStyle().Foreground(Subtext0)
	Hot    = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Metric = lipgloss.NewStyle().Foreground(Text).Bold(true)
	Large  = lipgloss.NewStyle().Foreground(Accent).Bold(true).Padding(1, 4).
		BorderStyle(lipgloss.ThickBorder()).BorderForeground(Accent)
)

var accents = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#89b4fa"),
	"green":  lipgloss.Color("#a6e3a1"),
	"orange": lipgloss.Color("#fab387"),
	"pink":   lipgloss.Color("#f5c2e7"),
	"purple": lipgloss.Color("#cba6f7"),
	"red":    lipgloss.Color("#f38ba8"),
	"yellow": lipgloss.Color("#f9e2af"),
}

// SetAccent recolours the accent styles. Unknown names keep the current accent.
func SetAccent(name string) {
	colour, ok := accents[name]
	if !ok {
		return
	}
	Accent = colour
	PaneActive = Pane.BorderForeground(Accent)
	Title = Title.Foreground(Accent)
	Large = Large.Foreground(Accent).BorderForeground(Accent)
}
