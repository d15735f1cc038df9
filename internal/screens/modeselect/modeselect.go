// Package modeselect lets the user pick a diagnostic mode.
package modeselect

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/volumeselect"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// ModeSelectScreen lists the three modes.
type ModeSelectScreen struct {
	deps *screen.Deps
	menu components.Menu
}

var _ screen.Screen = (*ModeSelectScreen)(nil)
var _ screen.KeyHintProvider = (*ModeSelectScreen)(nil)

func New(deps *screen.Deps) *ModeSelectScreen {
	var items []components.MenuItem
	for _, m := range gift.AllModes() {
		items = append(items, components.MenuItem{
			Label:  m.Icon() + " " + m.Title() + "  " + m.Subtitle(),
			Detail: m.Description(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: volumeselect.New(deps, m)}
				}
			},
		})
	}
	return &ModeSelectScreen{deps: deps, menu: components.NewMenu(items)}
}

func (s *ModeSelectScreen) Init() tea.Cmd { return nil }

func (s *ModeSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

// Selected returns the mode under the cursor.
func (s *ModeSelectScreen) Selected() gift.Mode {
	return gift.AllModes()[s.menu.Selected]
}

func (s *ModeSelectScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	sections := []string{
		center.Render(theme.Title.Render("診断モードを選択")),
		center.Render(theme.Subtitle.Render("あなたに合った診断方法を選んでください")),
		components.Card(lipgloss.NewStyle().Width(cw-6).Render(s.menu.View()), cw),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *ModeSelectScreen) Title() string { return "診断モード" }

func (s *ModeSelectScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "選択"},
		{Key: "Enter", Description: "決定"},
		{Key: "Esc", Description: "戻る"},
	}
}
