package notfound

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// NotFoundScreen is shown for a result id that is not in the archive.
type NotFoundScreen struct {
	id string
}

var _ screen.Screen = (*NotFoundScreen)(nil)
var _ screen.KeyHintProvider = (*NotFoundScreen)(nil)

// New creates a NotFoundScreen for id.
func New(id string) *NotFoundScreen {
	return &NotFoundScreen{id: id}
}

func (p *NotFoundScreen) Init() tea.Cmd {
	return nil
}

func (p *NotFoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return p, func() tea.Msg { return router.PopToRootMsg{} }
	}
	return p, nil
}

func (p *NotFoundScreen) View(width, height int) string {
	body := "🎁\n\n" +
		theme.Title.Render(apperr.MsgResultNotFound) + "\n\n" +
		theme.Subtitle.Render("この結果は削除されたか、存在しません")
	if p.id != "" {
		body += "\n\n" + theme.Hint.Render(p.id)
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(body)
}

func (p *NotFoundScreen) Title() string {
	return "結果が見つかりません"
}

func (p *NotFoundScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "トップに戻る"},
		{Key: "Esc", Description: "戻る"},
	}
}
