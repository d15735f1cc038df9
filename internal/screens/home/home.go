package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	archivescreen "github.com/amixedcolor/aws-identity-gift/internal/screens/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/modeselect"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const privacyNote = "本サービスはユーザー識別情報を収集せず、すべてのデータはこの端末の保存領域にのみ保存されます。"

type archiveLoadedMsg struct {
	Results []gift.DiagnosticResult
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps    *screen.Deps
	menu    components.Menu
	results []gift.DiagnosticResult
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screen.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "診断を始める", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: modeselect.New(deps)}
			}
		}},
		{Label: "過去の診断結果", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: archivescreen.New(deps)}
			}
		}},
		{Label: "終了", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Refresh reloads the archive when the user comes back from a run.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	a := h.deps.Archive
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		return archiveLoadedMsg{Results: a.GetAll(context.Background(), archive.OrderAsc)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(archiveLoadedMsg); ok {
		h.results = m.Results
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	compact := height < 22

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderTree(h.results, cw))
	}
	sections = append(sections, components.Card(
		lipgloss.NewStyle().Width(cw-6).Render(h.menu.View()), cw))
	sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(theme.Hint.Render(privacyNote)))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "ホーム"
}
