package theme

import "github.com/charmbracelet/lipgloss"

// Palette used by the fab terminal UI.
const (
	ColorPrompt  = "#49C5B1"
	ColorContext = "#017864"
	ColorGray    = "#8B8B8B"
	ColorTeal    = "#2DA09A"
	ColorCyan    = "#00BFD8"
	ColorYellow  = "#E5C07B"
	ColorRed     = "#E06C75"
	ColorGreen   = "#98C379"
	ColorBlue    = "#61AFEF"
	ColorWhite   = "#FFFFFF"
)

// Status icons.
const (
	IconSuccess = "✓"
	IconWarning = "!"
	IconError   = "x"
	IconInfo    = "*"
)

// StyleSet holds the lipgloss styles for common UI elements.
type StyleSet struct {
	Prompt  lipgloss.Style
	Context lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Label   lipgloss.Style
	Command lipgloss.Style
}

// Styles returns the style set for the fab palette.
func Styles() *StyleSet {
	return &StyleSet{
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrompt)).Bold(true),
		Context: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorContext)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Bold:    lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal)).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrompt)),
	}
}
