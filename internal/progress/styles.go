package progress

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette used for console progress.
type Theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

type label int

const (
	labelProcessing label = iota
	labelIgnoring
	labelFailed
	labelWrote
	labelDone
)

var labelText = map[label]string{
	labelProcessing: "Processing",
	labelIgnoring:   "Ignoring",
	labelFailed:     "Failed",
	labelWrote:      "Wrote",
	labelDone:       "Done:",
}

// Styles holds the lipgloss styles for each console label. A nil *Styles
// renders plain text.
type Styles struct {
	Processing lipgloss.Style
	Ignoring   lipgloss.Style
	Failed     lipgloss.Style
	Wrote      lipgloss.Style
	Done       lipgloss.Style
}

// NewStyles builds styles for r from theme.
func NewStyles(r *lipgloss.Renderer, theme *Theme) *Styles {
	return &Styles{
		Processing: r.NewStyle().Foreground(theme.Primary),
		Ignoring:   r.NewStyle().Foreground(theme.Muted),
		Failed:     r.NewStyle().Foreground(theme.Error).Bold(true),
		Wrote:      r.NewStyle().Foreground(theme.Success),
		Done:       r.NewStyle().Foreground(theme.Primary).Bold(true),
	}
}

func (s *Styles) label(l label) string {
	text := labelText[l]
	if s == nil {
		return text
	}
	switch l {
	case labelProcessing:
		return s.Processing.Render(text)
	case labelIgnoring:
		return s.Ignoring.Render(text)
	case labelFailed:
		return s.Failed.Render(text)
	case labelWrote:
		return s.Wrote.Render(text)
	default:
		return s.Done.Render(text)
	}
}
