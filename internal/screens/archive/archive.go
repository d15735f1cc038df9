// Package archive lists the saved results and reloads when another
// process changes them.
package archive

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	resultarchive "github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/notfound"
	"github.com/amixedcolor/aws-identity-gift/internal/store"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

// reloadDelay lets a burst of writes settle before reading.
const reloadDelay = 200 * time.Millisecond

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClear
)

type archiveLoadedMsg struct {
	Results []gift.DiagnosticResult
}

type changedMsg struct {
	Err error
}

type reloadMsg struct{}

type mutatedMsg struct {
	Notice string
	Err    error
}

// ArchiveScreen displays past results, newest first.
type ArchiveScreen struct {
	deps     *screen.Deps
	results  []gift.DiagnosticResult
	selected int
	detail   bool
	confirm  confirmKind
	loaded   bool
	notice   string
	errMsg   string
	focusID  string

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ArchiveScreen)(nil)
var _ screen.KeyHintProvider = (*ArchiveScreen)(nil)
var _ screen.Closer = (*ArchiveScreen)(nil)

// New creates a new ArchiveScreen.
func New(deps *screen.Deps) *ArchiveScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ArchiveScreen{deps: deps, ctx: ctx, cancel: cancel}
}

// NewFocused creates an ArchiveScreen that opens the detail of id once
// loaded, or is replaced by the not-found screen when id is not saved.
func NewFocused(deps *screen.Deps, id string) *ArchiveScreen {
	s := New(deps)
	s.focusID = id
	return s
}

func (s *ArchiveScreen) Init() tea.Cmd {
	return tea.Batch(s.load(), s.watch())
}

// Close stops watching the database.
func (s *ArchiveScreen) Close() {
	s.cancel()
}

func (s *ArchiveScreen) load() tea.Cmd {
	a := s.deps.Archive
	return func() tea.Msg {
		return archiveLoadedMsg{Results: a.GetAll(context.Background(), resultarchive.OrderDesc)}
	}
}

func (s *ArchiveScreen) watch() tea.Cmd {
	path := s.deps.WatchPath
	if path == "" {
		return nil
	}
	ctx := s.ctx
	return func() tea.Msg {
		return changedMsg{Err: store.WaitForChange(ctx, path)}
	}
}

func (s *ArchiveScreen) Title() string {
	return "過去の診断結果"
}

func (s *ArchiveScreen) KeyHints() []layout.KeyHint {
	if s.confirm != confirmNone {
		return []layout.KeyHint{
			{Key: "Y", Description: "削除する"},
			{Key: "N", Description: "キャンセル"},
		}
	}
	if s.detail {
		return []layout.KeyHint{
			{Key: "Enter", Description: "閉じる"},
			{Key: "D", Description: "削除"},
			{Key: "Esc", Description: "戻る"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "詳細"},
		{Key: "↑↓", Description: "選択"},
		{Key: "D", Description: "削除"},
		{Key: "C", Description: "すべて削除"},
		{Key: "Esc", Description: "戻る"},
	}
}

func (s *ArchiveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case archiveLoadedMsg:
		s.results = msg.Results
		s.loaded = true
		if s.selected >= len(s.results) {
			s.selected = max(len(s.results)-1, 0)
		}
		if len(s.results) == 0 {
			s.detail = false
		}
		if id := s.focusID; id != "" {
			s.focusID = ""
			i := slices.IndexFunc(s.results, func(r gift.DiagnosticResult) bool { return r.ID == id })
			if i < 0 {
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: notfound.New(id)} }
			}
			s.selected, s.detail = i, true
		}
		return s, nil

	case changedMsg:
		if errors.Is(msg.Err, context.Canceled) {
			return s, nil
		}
		if msg.Err != nil {
			s.deps.Log().Warn("archive watch stopped", zap.Error(msg.Err))
			return s, nil
		}
		return s, tea.Tick(reloadDelay, func(time.Time) tea.Msg { return reloadMsg{} })

	case reloadMsg:
		return s, tea.Batch(s.load(), s.watch(), screen.ArchiveChanged)

	case mutatedMsg:
		if msg.Err != nil {
			ae := apperr.Normalize(apperr.OpArchiveDel, msg.Err)
			apperr.Log(s.deps.Log(), ae)
			s.errMsg = ae.UserMessage()
			return s, nil
		}
		s.errMsg = ""
		s.notice = msg.Notice
		s.detail = false
		return s, tea.Batch(s.load(), screen.ArchiveChanged)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ArchiveScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirm != confirmNone {
		kind := s.confirm
		s.confirm = confirmNone
		if msg.String() == "y" {
			return s, s.mutate(kind)
		}
		return s, nil
	}

	switch msg.String() {
	case "up", "k":
		if !s.detail && s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if !s.detail && s.selected < len(s.results)-1 {
			s.selected++
		}
	case "enter":
		if s.detail {
			s.detail = false
			return s, nil
		}
		r, ok := s.current()
		if !ok {
			return s, nil
		}
		if _, found := s.deps.Archive.GetByID(context.Background(), r.ID); !found {
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: notfound.New(r.ID)} }
		}
		s.detail = true
	case "d":
		if _, ok := s.current(); ok {
			s.confirm = confirmDelete
		}
	case "c":
		if len(s.results) > 0 && !s.detail {
			s.confirm = confirmClear
		}
	}
	return s, nil
}

func (s *ArchiveScreen) current() (gift.DiagnosticResult, bool) {
	if s.selected < 0 || s.selected >= len(s.results) {
		return gift.DiagnosticResult{}, false
	}
	return s.results[s.selected], true
}

func (s *ArchiveScreen) mutate(kind confirmKind) tea.Cmd {
	a := s.deps.Archive
	switch kind {
	case confirmDelete:
		r, ok := s.current()
		if !ok {
			return nil
		}
		return func() tea.Msg {
			err := a.DeleteByID(context.Background(), r.ID)
			return mutatedMsg{Notice: r.Service.ServiceName + " の結果を削除しました", Err: err}
		}
	case confirmClear:
		return func() tea.Msg {
			return mutatedMsg{Notice: "すべての結果を削除しました", Err: a.ClearAll(context.Background())}
		}
	}
	return nil
}

func (s *ArchiveScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if !s.loaded {
		return center(theme.Hint.Render("\n\n読み込み中..."))
	}
	if len(s.results) == 0 {
		msg := "\n\nまだ診断結果はありません。診断を始めてみましょう！"
		if s.notice != "" {
			msg = "\n\n" + s.notice + msg
		}
		return center(theme.Hint.Render(msg))
	}

	var b strings.Builder
	if s.detail {
		r, _ := s.current()
		b.WriteString(center(components.ResultCard(r, cw)))
	} else {
		b.WriteString(center(theme.Subtitle.Render(
			fmt.Sprintf("保存された結果 %d / %d", len(s.results), s.deps.Archive.MaxCount()))))
		b.WriteString("\n\n")
		for i, r := range s.results {
			prefix := "  "
			style := theme.Unselected
			if i == s.selected {
				prefix = "▸ "
				style = theme.Selected
			}
			line := fmt.Sprintf("%s%s %s  %-28s %s",
				prefix, gift.GiftGlyph(r.ID).Icon, gift.FormatShortTimestamp(r.Timestamp),
				r.Service.ServiceName, r.Mode.Title())
			b.WriteString(center(lipgloss.NewStyle().Width(cw).Render(style.Render(line))))
			b.WriteString("\n")
		}
	}

	switch s.confirm {
	case confirmDelete:
		b.WriteString("\n" + center(theme.Notice.Render("この結果を削除しますか？ (y/n)")))
	case confirmClear:
		b.WriteString("\n" + center(theme.Notice.Render("すべての結果を削除しますか？ (y/n)")))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + center(theme.Failure.Render(s.errMsg)))
	} else if s.notice != "" {
		b.WriteString("\n" + center(theme.Done.Render(s.notice)))
	}
	return b.String()
}
