package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// Disclaimer is shown under every AI-generated result.
const Disclaimer = "⚠️ この結果はAIで生成されたものであり、その信憑性についてはご自身でお確かめください"

// ResultCard renders a diagnostic result at content width cw.
func ResultCard(r gift.DiagnosticResult, cw int) string {
	inner := cw - 6
	wrap := lipgloss.NewStyle().Width(inner)
	center := lipgloss.NewStyle().Width(inner).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString(center.Render(theme.Heading.Render(gift.GiftGlyph(r.ID).Icon + " あなたへのギフト")))
	b.WriteString("\n\n")
	b.WriteString(center.Render(theme.Subtitle.Render(r.Service.Category)))
	b.WriteString("\n")
	b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(r.Service.ServiceName)))
	b.WriteString("\n")
	b.WriteString(center.Render(lipgloss.NewStyle().Foreground(theme.Gold).
		Render("「" + r.Catchphrase + "」")))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("💌 あなたへのメッセージ"))
	b.WriteString("\n")
	b.WriteString(wrap.Foreground(theme.Text).Render(r.AILetter))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("🚀 次のステップ"))
	b.WriteString("\n")
	for i, a := range r.NextActions {
		b.WriteString(wrap.Foreground(theme.Text).Render(fmt.Sprintf("%d. %s", i+1, a)))
		b.WriteString("\n")
	}

	if !r.Timestamp.IsZero() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(r.Mode.Title() + " ・ " + gift.FormatTimestamp(r.Timestamp)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(wrap.Foreground(theme.TextDim).Render(Disclaimer))

	return Card(b.String(), cw)
}
