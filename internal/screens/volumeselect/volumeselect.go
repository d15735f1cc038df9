// Package volumeselect lets the user pick quick or detailed.
package volumeselect

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/quiz"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

var volumes = []gift.Volume{gift.VolumeQuick, gift.VolumeDetailed}

// VolumeSelectScreen offers the two volumes for a chosen mode.
type VolumeSelectScreen struct {
	deps *screen.Deps
	mode gift.Mode
	menu components.Menu
}

var _ screen.Screen = (*VolumeSelectScreen)(nil)
var _ screen.KeyHintProvider = (*VolumeSelectScreen)(nil)

func New(deps *screen.Deps, mode gift.Mode) *VolumeSelectScreen {
	s := &VolumeSelectScreen{deps: deps, mode: mode}
	var items []components.MenuItem
	for _, v := range volumes {
		items = append(items, components.MenuItem{
			Label:  v.Label(),
			Detail: fmt.Sprintf("%s ・ %d問", v.Duration(), v.QuestionCount()),
			Action: func() tea.Cmd { return s.start(v) },
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *VolumeSelectScreen) start(v gift.Volume) tea.Cmd {
	sess := session.New(s.deps.Bank, s.mode, v)
	next := quiz.New(s.deps, sess)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *VolumeSelectScreen) Init() tea.Cmd { return nil }

func (s *VolumeSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *VolumeSelectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	sections := []string{
		center.Render(theme.Title.Render(s.mode.Icon() + " " + s.mode.Title())),
		center.Render(theme.Subtitle.Render("診断ボリュームを選択してください")),
		components.Card(lipgloss.NewStyle().Width(cw-6).Render(s.menu.View()), cw),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *VolumeSelectScreen) Title() string { return "診断ボリューム" }

func (s *VolumeSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "選択"},
		{Key: "Enter", Description: "開始"},
		{Key: "Esc", Description: "戻る"},
	}
}
