// Package session drives one diagnostic run: answering the questions of a
// mode, submitting them for diagnosis, then saving the result and drawing
// its gift card.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/diagnostic"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/quiz"
)

// Diagnoser turns answers into a result.
type Diagnoser interface {
	Diagnose(ctx context.Context, in diagnostic.DiagnoseInput) (*gift.DiagnosticResult, error)
}

// Archiver persists finished results.
type Archiver interface {
	Save(ctx context.Context, result gift.DiagnosticResult) error
}

// CardMaker draws the gift card image for a result.
type CardMaker interface {
	Enabled() bool
	Generate(ctx context.Context, r *gift.DiagnosticResult) (string, error)
}

// Session is the state of one run through the question form.
type Session struct {
	Mode    gift.Mode
	Nav     *quiz.Navigator
	Started time.Time
}

// New starts a session over every question of mode, showing volume first.
func New(bank *quiz.Bank, mode gift.Mode, volume gift.Volume) *Session {
	return &Session{
		Mode:    mode,
		Nav:     quiz.NewNavigator(bank.ForMode(mode), volume),
		Started: time.Now(),
	}
}

// Outcome is everything a finished run produced. SaveErr and GiftCardErr
// are independent: either may be set while Result is still valid.
type Outcome struct {
	Result      gift.DiagnosticResult
	Image       string
	SaveErr     error
	GiftCardErr error
	// CardSkipped is set when no image backend is configured.
	CardSkipped bool
}

// Saved reports whether the result reached the archive.
func (o Outcome) Saved() bool { return o.SaveErr == nil }

// Runner submits sessions and finalizes their results.
type Runner struct {
	diagnoser Diagnoser
	archive   Archiver
	cards     CardMaker
	services  []gift.Service
	logger    *zap.Logger
}

// NewRunner wires a Runner. cards may be nil when gift cards are off.
func NewRunner(d Diagnoser, a Archiver, cards CardMaker, services []gift.Service, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{diagnoser: d, archive: a, cards: cards, services: services, logger: logger}
}

// Services returns the catalog the runner offers to the model.
func (r *Runner) Services() []gift.Service { return r.services }

// CardsEnabled reports whether Finalize will draw a gift card.
func (r *Runner) CardsEnabled() bool {
	return r.cards != nil && r.cards.Enabled()
}

// Submit diagnoses the session's answers. An error leaves the session
// untouched so the form can be shown again.
func (r *Runner) Submit(ctx context.Context, s *Session) (*gift.DiagnosticResult, error) {
	if !s.Nav.CanSubmit() {
		return nil, apperr.Validation(apperr.OpDiagnose, apperr.MsgRequired).
			WithDetails(map[string]any{"mode": string(s.Mode), "volume": string(s.Nav.Volume)})
	}
	result, err := r.diagnoser.Diagnose(ctx, diagnostic.DiagnoseInput{
		Mode:      s.Mode,
		Responses: s.Nav.SubmittedResponses(),
		Services:  r.services,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("session submitted",
		zap.String("mode", string(s.Mode)),
		zap.String("volume", string(s.Nav.Volume)),
		zap.Duration("elapsed", time.Since(s.Started)),
	)
	return result, nil
}

// Finalize saves result and generates its gift card side by side. Neither
// failure cancels the other.
func (r *Runner) Finalize(ctx context.Context, result gift.DiagnosticResult) Outcome {
	out := Outcome{Result: result}
	cardsOn := r.CardsEnabled()
	out.CardSkipped = !cardsOn

	var g errgroup.Group
	g.Go(func() error {
		if err := r.archive.Save(ctx, result); err != nil {
			ae := apperr.Normalize(apperr.OpArchiveSave, err)
			apperr.Log(r.logger, ae)
			out.SaveErr = ae
		}
		return nil
	})
	if cardsOn {
		g.Go(func() error {
			img, err := r.cards.Generate(ctx, &result)
			if err != nil {
				out.GiftCardErr = err
				return nil
			}
			out.Image = img
			return nil
		})
	}
	_ = g.Wait()

	out.Result.GiftCardImage = out.Image
	r.logger.Debug("session finalized",
		zap.String("id", result.ID),
		zap.Bool("saved", out.Saved()),
		zap.Bool("gift_card", out.Image != ""),
	)
	return out
}

// Run submits s and finalizes the result in one call, for line-oriented
// front ends.
func (r *Runner) Run(ctx context.Context, s *Session) (Outcome, error) {
	result, err := r.Submit(ctx, s)
	if err != nil {
		return Outcome{}, err
	}
	return r.Finalize(ctx, *result), nil
}
