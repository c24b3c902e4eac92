package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/taskmate/internal/models"
)

// Theme is the palette the views draw with. Every color adapts to light
// and dark terminal backgrounds.
type Theme struct {
	Name string

	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Inverse lipgloss.AdaptiveColor

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border      lipgloss.AdaptiveColor
	BorderFocus lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
}

// Default is the palette used unless another one is assigned to Current
var Default = Theme{
	Name: "taskmate",

	Text:    lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#e5e9f0"},
	Muted:   lipgloss.AdaptiveColor{Light: "#7b8394", Dark: "#6c7689"},
	Inverse: lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#1d2128"},

	Primary:   lipgloss.AdaptiveColor{Light: "#2b6cb0", Dark: "#81a1c1"},
	Secondary: lipgloss.AdaptiveColor{Light: "#805ad5", Dark: "#b48ead"},
	Accent:    lipgloss.AdaptiveColor{Light: "#0f7c8c", Dark: "#88c0d0"},

	Success: lipgloss.AdaptiveColor{Light: "#2f855a", Dark: "#a3be8c"},
	Warning: lipgloss.AdaptiveColor{Light: "#b7791f", Dark: "#ebcb8b"},
	Error:   lipgloss.AdaptiveColor{Light: "#c53030", Dark: "#bf616a"},

	Border:      lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#434c5e"},
	BorderFocus: lipgloss.AdaptiveColor{Light: "#2b6cb0", Dark: "#81a1c1"},
	Highlight:   lipgloss.AdaptiveColor{Light: "#e2e8f0", Dark: "#3b4252"},
}

var Current = Default

// MaxWidth caps the content width on wide terminals
const MaxWidth = 80

func ContentWidth(terminalWidth int) int {
	return min(terminalWidth, MaxWidth)
}

// CenterView places content in the middle of terminals wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Center, lipgloss.Top, content)
}

// PriorityColor grows warmer as the priority rises
func PriorityColor(p models.Priority) lipgloss.TerminalColor {
	switch p {
	case models.PriorityLow:
		return Current.Primary
	case models.PriorityMedium:
		return Current.Accent
	case models.PriorityHigh:
		return Current.Warning
	case models.PriorityHighest:
		return Current.Error
	default:
		return Current.Muted
	}
}

type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Done         lipgloss.Style
	Shared       lipgloss.Style

	Popup lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	Status lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles builds the styles for the Current theme
func NewStyles() *Styles {
	return Current.Styles()
}

func (t Theme) Styles() *Styles {
	text := lipgloss.NewStyle().Foreground(t.Text)
	boxed := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)

	return &Styles{
		Title:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		TitleMuted: lipgloss.NewStyle().Foreground(t.Muted),

		ListItem:     text.Padding(0, 1),
		ListSelected: text.Foreground(t.Primary).Background(t.Highlight).Bold(true).Padding(0, 1),
		Done:         lipgloss.NewStyle().Foreground(t.Muted).Strikethrough(true),
		Shared:       lipgloss.NewStyle().Foreground(t.Secondary).Italic(true),

		Popup: boxed.Padding(1, 2),

		Button:        boxed.Foreground(t.Text).Padding(0, 2),
		ButtonFocused: boxed.Foreground(t.Primary).BorderForeground(t.BorderFocus).Bold(true).Padding(0, 2),
		ButtonPrimary: lipgloss.NewStyle().Foreground(t.Inverse).Background(t.Primary).Bold(true).Padding(0, 2),

		Input:        boxed.Foreground(t.Text).Padding(0, 1),
		InputFocused: boxed.Foreground(t.Text).BorderForeground(t.BorderFocus).Padding(0, 1),

		Help:    lipgloss.NewStyle().Foreground(t.Muted).Padding(1, 1),
		HelpKey: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),

		Status: lipgloss.NewStyle().Foreground(t.Success).Padding(0, 1),
		Error:  lipgloss.NewStyle().Foreground(t.Error).Padding(0, 1),
	}
}
