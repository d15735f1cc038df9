package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	archivescreen "github.com/amixedcolor/aws-identity-gift/internal/screens/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/home"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
)

// Options controls how the program starts.
type Options struct {
	// ResultID opens the saved result with this id on top of home.
	ResultID string
}

type countMsg struct {
	saved int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   *screen.Deps
	opts   Options
	router *router.Router
	saved  int
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps *screen.Deps, opts Options) AppModel {
	return AppModel{
		deps:   deps,
		opts:   opts,
		router: router.New(home.New(deps)),
		saved:  -1,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.count()}
	if id := m.opts.ResultID; id != "" {
		deps := m.deps
		cmds = append(cmds, func() tea.Msg {
			return router.PushScreenMsg{Screen: archivescreen.NewFocused(deps, id)}
		})
	}
	return tea.Batch(cmds...)
}

func (m AppModel) count() tea.Cmd {
	a := m.deps.Archive
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		return countMsg{saved: a.Count(context.Background())}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case countMsg:
		m.saved = msg.saved
		return m, nil

	case screen.ArchiveChangedMsg:
		return m, m.count()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	capacity := 0
	if m.deps.Archive != nil {
		capacity = m.deps.Archive.MaxCount()
	}
	header := layout.RenderHeader(title, m.saved, capacity, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "終了"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "戻る"},
			{Key: "Ctrl+C", Description: "終了"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "選択"},
		{Key: "Enter", Description: "決定"},
		{Key: "Ctrl+C", Description: "終了"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps *screen.Deps, opts Options) error {
	p := tea.NewProgram(newAppModel(deps, opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
