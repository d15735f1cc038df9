// Package opening plays the gift-opening animation before a result.
package opening

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	shakeEnd     = 1000 * time.Millisecond
	openEnd      = 2000 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const boxClosed = `  ╔═══╦═══╗
  ║   ║   ║
╔═╩═══╬═══╩═╗
║     ║     ║
║     ║     ║
╚═════╩═════╝`

const boxOpen = `   ✦  ✧  ✦
 ╔═══╦═══╗
  ╲  ║  ╱
╔═══════════╗
║     ║     ║
╚═════╩═════╝`

const revealText = "あなたへのギフトが届きました！"

// shake offsets per tick while the box wobbles.
var shakeOffsets = []int{0, 1, 2, 1, 0}

var sparkleFrames = []string{"✦", "✧", "★"}

type tickMsg time.Time

// OpeningScreen animates, then replaces itself with the screen from next.
type OpeningScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*OpeningScreen)(nil)

// New creates an OpeningScreen that hands over to next.
func New(next func() screen.Screen) *OpeningScreen {
	return &OpeningScreen{next: next}
}

func (w *OpeningScreen) Title() string {
	return ""
}

func (w *OpeningScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *OpeningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *OpeningScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// stage names the animation phase at the current elapsed time.
func (w *OpeningScreen) stage() string {
	switch {
	case w.elapsed < shakeEnd:
		return "shake"
	case w.elapsed < openEnd:
		return "open"
	default:
		return "reveal"
	}
}

func (w *OpeningScreen) View(width, height int) string {
	boxStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	ribbon := lipgloss.NewStyle().Foreground(theme.Gold)

	var content string
	switch w.stage() {
	case "shake":
		pad := strings.Repeat(" ", shakeOffsets[w.tickCount%len(shakeOffsets)])
		lines := strings.Split(boxClosed, "\n")
		for i, l := range lines {
			lines[i] = pad + l
		}
		content = boxStyle.Render(strings.Join(lines, "\n"))
	case "open":
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		content = ribbon.Render(sparkle+"  "+sparkle) + "\n" + boxStyle.Render(boxOpen)
	default:
		content = ribbon.Bold(true).Render("🎁 " + revealText)
	}

	hint := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("キーを押すとスキップします")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content+"\n\n"+hint)
}
