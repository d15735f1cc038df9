package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// Stepper shows one segment per question: answered ones in green, the
// current one in red and the rest dimmed.
type Stepper struct {
	Label    string
	Current  int // 0-based
	Answered []bool
	Width    int
}

// View renders the label and the segments on one line. When the segments
// do not fit they collapse into a plain bar.
func (s Stepper) View() string {
	label := ""
	if s.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(s.Label) + "  "
	}
	avail := max(s.Width-lipgloss.Width(label), 4)
	total := len(s.Answered)
	if total == 0 {
		return label
	}

	seg := avail/total - 1
	if seg < 1 {
		return label + s.bar(avail)
	}

	parts := make([]string, total)
	for i, done := range s.Answered {
		color := theme.Border
		switch {
		case i == s.Current:
			color = theme.Primary
		case done:
			color = theme.Secondary
		}
		parts[i] = lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", seg))
	}
	return label + strings.Join(parts, " ")
}

func (s Stepper) bar(width int) string {
	filled := min(width*(s.Current+1)/len(s.Answered), width)
	return lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled))
}
