package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const privacyNote = "入力されたデータはAI分析にのみ使用され、一切保存されません"

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.submitting {
		return s.renderSubmitting(width, height)
	}
	return components.Frame(s.renderQuestion(cw), width, height)
}

func (s *QuizScreen) renderSubmitting(width, height int) string {
	body := s.spinner.View() + " " + theme.Heading.Render("AIがあなたの回答を分析しています...") +
		"\n\n" + theme.Subtitle.Render("少々お待ちください")
	return components.Frame(body, width, height)
}

func (s *QuizScreen) renderQuestion(cw int) string {
	nav := s.sess.Nav
	q, ok := nav.Current()
	if !ok {
		return theme.Hint.Render("質問がありません")
	}

	_, _, label := nav.Progress()
	questions := nav.Filtered()
	answered := make([]bool, len(questions))
	for i, fq := range questions {
		answered[i] = nav.IsAnswered(fq)
	}
	var b strings.Builder
	b.WriteString(components.Stepper{Label: label, Current: nav.CurrentIndex, Answered: answered, Width: cw}.View())
	b.WriteString("\n\n")

	text := q.Text
	if q.Required {
		text += lipgloss.NewStyle().Foreground(theme.Primary).Render(" *")
	}
	b.WriteString(lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(text))
	b.WriteString("\n")
	if q.Multiple {
		b.WriteString(theme.Hint.Render("複数選択可"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Type == gift.MultipleChoice {
		b.WriteString(s.choices.View())
	} else {
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw).Render(theme.Failure.Render(s.errMsg)))
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Done.Render(s.notice))
		b.WriteString("\n")
	}
	if nav.CanOfferDetailed() {
		b.WriteString("\n")
		b.WriteString(theme.Notice.Render("Ctrl+D で詳細診断に切り替えて、さらに深く分析できます"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(privacyNote))
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}
