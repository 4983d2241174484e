package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981") // Emerald
	colorError   = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorAccent  = lipgloss.Color("#8B5CF6") // Violet
)

// Styles renders text output. Colors are dropped automatically when the
// writer is not a terminal.
type Styles struct {
	Label lipgloss.Style
	Value lipgloss.Style
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Muted lipgloss.Style
}

// NewStyles returns styles bound to w's color profile.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Label: r.NewStyle().Foreground(colorMuted),
		Value: r.NewStyle().Bold(true).Foreground(colorAccent),
		Pass:  r.NewStyle().Foreground(colorSuccess),
		Fail:  r.NewStyle().Bold(true).Foreground(colorError),
		Muted: r.NewStyle().Foreground(colorMuted),
	}
}

// Table renders label/value rows with the labels padded to a common width.
func (s *Styles) Table(rows [][2]string) string {
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[0]))
	}
	var b strings.Builder
	for _, row := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(row[0])+2)
		b.WriteString(s.Label.Render(row[0]))
		b.WriteString(pad)
		b.WriteString(s.Value.Render(row[1]))
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}
