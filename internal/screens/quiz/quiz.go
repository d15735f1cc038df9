// Package quiz is the question form of a diagnostic run.
package quiz

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/router"
	"github.com/amixedcolor/aws-identity-gift/internal/screen"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/opening"
	"github.com/amixedcolor/aws-identity-gift/internal/screens/result"
	"github.com/amixedcolor/aws-identity-gift/internal/session"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/components"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/layout"
	"github.com/amixedcolor/aws-identity-gift/internal/ui/theme"
)

const (
	submitTimeout = 90 * time.Second
	answerLimit   = 500
)

const (
	msgRequired   = "この質問は回答必須です"
	msgIncomplete = "未回答の必須質問があります"
)

// QuizScreen walks the user through the questions and submits them.
type QuizScreen struct {
	deps    *screen.Deps
	sess    *session.Session
	input   components.TextInput
	choices components.ChoiceList
	spinner spinner.Model

	submitting bool
	errMsg     string
	notice     string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the form for sess.
func New(deps *screen.Deps, sess *session.Session) *QuizScreen {
	s := &QuizScreen{
		deps: deps,
		sess: sess,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Gold)),
		),
	}
	s.loadQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.focus()
}

// focus starts the cursor blink when the current question takes text.
func (s *QuizScreen) focus() tea.Cmd {
	if q, ok := s.current(); ok && q.Type == gift.FreeText {
		return s.input.Init()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.sess.Mode.Title() + " ・ " + s.sess.Nav.Volume.Label()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.submitting {
		return []layout.KeyHint{{Key: "Esc", Description: "中断"}}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "次へ"},
		{Key: "Shift+Tab", Description: "前へ"},
	}
	if q, ok := s.sess.Nav.Current(); ok && q.Multiple {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "選択"})
	}
	if s.sess.Nav.IsLast() {
		hints[0] = layout.KeyHint{Key: "Enter", Description: "診断結果を見る"}
	}
	if s.sess.Nav.CanOfferDetailed() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "詳細診断に切り替え"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "戻る"})
}

func (s *QuizScreen) current() (gift.Question, bool) {
	return s.sess.Nav.Current()
}

// loadQuestion rebuilds the input widget for the question at the cursor.
func (s *QuizScreen) loadQuestion() {
	q, ok := s.current()
	if !ok {
		return
	}
	prior, _ := s.sess.Nav.Response(q.ID)
	if q.Type == gift.MultipleChoice {
		s.choices = components.NewChoiceList(q.Options, q.Multiple, prior)
		return
	}
	s.input = components.NewTextInput("自由に記述してください...", prior.Text(), answerLimit, 60)
}

// commit stores the widget's value for the current question.
func (s *QuizScreen) commit() {
	q, ok := s.current()
	if !ok {
		return
	}
	var a gift.Answer
	if q.Type == gift.MultipleChoice {
		a = s.choices.Answer()
	} else {
		a = gift.TextAnswer(strings.TrimSpace(s.input.Value()))
	}
	_, had := s.sess.Nav.Response(q.ID)
	if !had && strings.TrimSpace(a.String()) == "" {
		return
	}
	s.sess.Nav.Answer(q.ID, a)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case diagnosedMsg:
		return s.handleDiagnosed(msg)

	case spinner.TickMsg:
		if !s.submitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		if handled, cmd := s.handleKey(msg); handled {
			return s, cmd
		}
	}

	if s.submitting {
		return s, nil
	}
	return s, s.forward(msg)
}

// forward passes msg to the active input widget.
func (s *QuizScreen) forward(msg tea.Msg) tea.Cmd {
	q, ok := s.current()
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	if q.Type == gift.MultipleChoice {
		s.choices, cmd = s.choices.Update(msg)
		if s.choices.Submitted {
			s.choices.Submitted = false
			return s.advance()
		}
		return cmd
	}
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	q, _ := s.current()
	switch msg.String() {
	case "enter":
		if q.Type == gift.MultipleChoice {
			// The choice list sees Enter first so a single choice is picked.
			return false, nil
		}
		return true, s.advance()
	case "tab":
		return true, s.advance()
	case "shift+tab":
		s.commit()
		s.errMsg = ""
		if s.sess.Nav.Previous() {
			s.loadQuestion()
			return true, s.focus()
		}
		return true, nil
	case "ctrl+d":
		if !s.sess.Nav.CanOfferDetailed() {
			return true, nil
		}
		s.commit()
		s.sess.Nav.SwitchVolume(gift.VolumeDetailed)
		s.loadQuestion()
		s.errMsg = ""
		s.notice = "詳細診断に切り替えました"
		return true, s.focus()
	}
	return false, nil
}

// advance commits the answer, then moves on or submits on the last question.
func (s *QuizScreen) advance() tea.Cmd {
	s.commit()
	s.notice = ""
	nav := s.sess.Nav
	if nav.IsLast() {
		if !nav.CanSubmit() {
			s.errMsg = msgIncomplete
			return nil
		}
		return s.submit()
	}
	if !nav.Next() {
		s.errMsg = msgRequired
		return nil
	}
	s.errMsg = ""
	s.loadQuestion()
	return s.focus()
}

func (s *QuizScreen) submit() tea.Cmd {
	s.submitting = true
	s.errMsg = ""
	runner := s.deps.Runner
	sess := s.sess
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		res, err := runner.Submit(ctx, sess)
		return diagnosedMsg{Result: res, Err: err}
	})
}

func (s *QuizScreen) handleDiagnosed(msg diagnosedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		ae := apperr.Normalize(apperr.OpDiagnose, msg.Err)
		apperr.Log(s.deps.Log(), ae)
		s.errMsg = ae.UserMessage()
		s.loadQuestion()
		return s, s.focus()
	}
	deps := s.deps
	res := *msg.Result
	next := opening.New(func() screen.Screen { return result.New(deps, res) })
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}
