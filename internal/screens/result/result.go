// Package result shows a finished diagnosis while it is saved and its
// gift card is drawn.
package result

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/giftcard"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const finalizeTimeout = 2 * time.Minute

const (
	msgSaved      = "この結果は保存され、トップページのツリーの周りにギフトとして表示されます"
	msgNotSaved   = "結果は表示されていますが、保存されていません"
	msgGenerating = "あなただけのギフトカードを生成しています..."
	msgCardFailed = "ギフトカード生成に失敗しました"
	msgCardReady  = "✨ あなただけのギフトカード ✨"
	msgCardOnly   = "この画像は保存されておらず、今ここにしかないあなただけのものです。"
	msgCardOff    = "画像プロバイダーが未設定のため、ギフトカードは生成されません"
)

type finalizedMsg struct {
	Outcome session.Outcome
}

type cardWrittenMsg struct {
	Path string
	Err  error
}

// ResultScreen displays a diagnostic result.
type ResultScreen struct {
	deps    *screen.Deps
	result  gift.DiagnosticResult
	outcome *session.Outcome
	spinner spinner.Model

	cardPath string
	errMsg   string
	offset   int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen that finalizes r when it starts.
func New(deps *screen.Deps, r gift.DiagnosticResult) *ResultScreen {
	return &ResultScreen{
		deps:   deps,
		result: r,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Gold)),
		),
	}
}

func (s *ResultScreen) Init() tea.Cmd {
	runner := s.deps.Runner
	r := s.result
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
		defer cancel()
		return finalizedMsg{Outcome: runner.Finalize(ctx, r)}
	})
}

func (s *ResultScreen) Title() string {
	return "診断結果"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "スクロール"},
		{Key: "Enter", Description: "トップに戻る"},
	}
	if s.outcome != nil && s.outcome.Image != "" {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "画像を保存"})
	}
	return hints
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case finalizedMsg:
		s.outcome = &msg.Outcome
		if msg.Outcome.Saved() {
			return s, screen.ArchiveChanged
		}
		return s, nil

	case cardWrittenMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.deps.Log().Warn("writing gift card failed", zap.Error(msg.Err))
			return s, nil
		}
		s.cardPath = msg.Path
		return s, nil

	case spinner.TickMsg:
		if s.outcome != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "s":
			return s, s.writeCard()
		}
	}
	return s, nil
}

func (s *ResultScreen) writeCard() tea.Cmd {
	if s.outcome == nil || s.outcome.Image == "" {
		return nil
	}
	path := filepath.Join(s.deps.CardDir, giftcard.FileName(s.result))
	img := s.outcome.Image
	return func() tea.Msg {
		return cardWrittenMsg{Path: path, Err: giftcard.WritePNG(path, img)}
	}
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := components.ResultCard(s.result, cw) + "\n\n" + s.renderStatus(cw)

	lines := strings.Split(body, "\n")
	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	visible := strings.Join(lines[s.offset:end], "\n")

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func (s *ResultScreen) renderStatus(cw int) string {
	wrap := lipgloss.NewStyle().Width(cw)
	if s.outcome == nil {
		text := "結果を保存しています..."
		if s.deps.Runner != nil && s.deps.Runner.CardsEnabled() {
			text = msgGenerating
		}
		return wrap.Render(s.spinner.View() + " " + theme.Heading.Render(text))
	}

	var lines []string
	o := s.outcome
	if o.SaveErr != nil {
		lines = append(lines, theme.Notice.Render("⚠️ "+apperr.UserMessage(o.SaveErr)))
		lines = append(lines, theme.Hint.Render(msgNotSaved))
	} else {
		lines = append(lines, theme.Hint.Render(msgSaved))
	}
	lines = append(lines, "")

	switch {
	case o.CardSkipped:
		lines = append(lines, theme.Hint.Render(msgCardOff))
	case o.GiftCardErr != nil:
		lines = append(lines, theme.Failure.Render(msgCardFailed))
		lines = append(lines, theme.Notice.Render(apperr.UserMessage(o.GiftCardErr)))
	case o.Image != "":
		lines = append(lines, theme.Heading.Render(msgCardReady))
		lines = append(lines, theme.Notice.Render(msgCardOnly))
		if s.cardPath != "" {
			lines = append(lines, theme.Done.Render("💾 "+s.cardPath))
		} else {
			lines = append(lines, theme.Hint.Render("S キーで画像を保存できます"))
		}
	}
	if s.errMsg != "" {
		lines = append(lines, theme.Failure.Render(s.errMsg))
	}

	lines = append(lines, "", theme.Hint.Render("Xでシェア:"))
	lines = append(lines, theme.Hint.Render(gift.ShareURL(gift.ShareText(s.result), "")))
	return wrap.Render(strings.Join(lines, "\n"))
}
