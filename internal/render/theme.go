package render

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the screens use.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

const (
	colorAccent  = colorBlue
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// Tone colours a value.
type Tone int

const (
	ToneNone Tone = iota
	ToneMuted
	TonePositive
	ToneNegative
	ToneWarning
	ToneAccent
)

func (t Tone) style() lipgloss.Style {
	s := lipgloss.NewStyle()
	switch t {
	case ToneMuted:
		return s.Foreground(colorSubtext0)
	case TonePositive:
		return s.Foreground(colorSuccess)
	case ToneNegative:
		return s.Foreground(colorError)
	case ToneWarning:
		return s.Foreground(colorWarning)
	case ToneAccent:
		return s.Foreground(colorAccent).Bold(true)
	}
	return s.Foreground(colorText)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	selectedStyle = lipgloss.NewStyle().Background(colorSurface0).Foreground(colorFocus).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	labelStyle    = lipgloss.NewStyle().Foreground(colorSubtext0)
	focusStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	actionStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
)

// StatusTone maps an expense status to its badge colour.
func StatusTone(status string) Tone {
	switch status {
	case "Paid":
		return TonePositive
	case "Partial":
		return ToneWarning
	case "Unpaid":
		return ToneNegative
	}
	return ToneMuted
}

// Badge renders a status label in its colour.
func Badge(status string) string {
	return StatusTone(status).style().Bold(true).Render(status)
}

// Paint renders s in tone t.
func Paint(s string, t Tone) string {
	return t.style().Render(s)
}
