// Package diagnostic turns quiz responses into a recommended AWS service by
// prompting a language model and validating what comes back.
package diagnostic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/catalog"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
	"github.com/amixedcolor/aws-identity-gift/internal/llm"
)

// Purpose labels diagnostic calls in the LLM event log.
const Purpose = "diagnostic"

const maxTokens = 2048

// DiagnoseInput is one diagnosis request.
type DiagnoseInput struct {
	Mode      gift.Mode
	Responses []gift.UserResponse
	Services  []gift.Service
}

// Service runs diagnoses against an llm.Provider.
type Service struct {
	provider llm.Provider
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// WithIDFunc replaces the UUID generator.
func WithIDFunc(f func() string) Option { return func(s *Service) { s.newID = f } }

// New creates a Service. A nil provider makes every diagnosis fail as
// unavailable.
func New(provider llm.Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		logger:   zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// modelOutput is the JSON object the prompt asks for.
type modelOutput struct {
	Service     gift.Service `json:"service"`
	Catchphrase string       `json:"catchphrase"`
	AILetter    string       `json:"aiLetter"`
	NextActions []string     `json:"nextActions"`
}

// Diagnose validates the input, asks the model for a recommendation and
// returns a freshly stamped result. Every error is an *apperr.Error.
func (s *Service) Diagnose(ctx context.Context, in DiagnoseInput) (*gift.DiagnosticResult, error) {
	if err := validateInput(in); err != nil {
		s.fail(err)
		return nil, err
	}

	if s.provider == nil {
		ae := apperr.New(apperr.ExternalServiceUnavailable, apperr.OpDiagnose, errors.New("no LLM provider configured"))
		s.fail(ae)
		return nil, ae
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: BuildPrompt(in.Mode, in.Responses, in.Services)}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		ae := apperr.Normalize(apperr.OpDiagnose, fmt.Errorf("generate: %w", err))
		s.fail(ae)
		return nil, ae
	}

	out, err := parseReply(string(resp.Content))
	if err != nil {
		s.fail(err)
		return nil, err
	}

	svc, ok := catalog.FindByName(in.Services, out.Service.ServiceName)
	if !ok {
		err := parseFailure(fmt.Errorf("service %q is not in the catalog", out.Service.ServiceName))
		s.fail(err)
		return nil, err
	}

	result := &gift.DiagnosticResult{
		ID:          s.newID(),
		Timestamp:   s.now().UTC(),
		Mode:        in.Mode,
		Service:     svc,
		Catchphrase: out.Catchphrase,
		AILetter:    out.AILetter,
		NextActions: out.NextActions,
	}
	s.logger.Info("diagnosis complete",
		zap.String("id", result.ID),
		zap.String("mode", string(in.Mode)),
		zap.String("service", svc.ServiceName),
		zap.Int("responses", len(in.Responses)),
	)
	return result, nil
}

func validateInput(in DiagnoseInput) *apperr.Error {
	if !in.Mode.Valid() {
		return apperr.Validation(apperr.OpDiagnose, apperr.MsgInvalidMode).
			WithDetails(map[string]any{"mode": string(in.Mode)})
	}
	if len(in.Responses) == 0 {
		return apperr.Validation(apperr.OpDiagnose, apperr.MsgNoResponses)
	}
	if len(in.Services) == 0 {
		return apperr.Validation(apperr.OpDiagnose, apperr.MsgNoServices)
	}
	for _, r := range in.Responses {
		if strings.TrimSpace(r.QuestionID) == "" {
			return apperr.Validation(apperr.OpDiagnose, apperr.MsgInvalidResponse)
		}
	}
	return nil
}

// parseReply extracts, validates and decodes the model reply.
func parseReply(reply string) (*modelOutput, error) {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return nil, err
	}
	if err := llm.ValidateResponse(ResultSchema, json.RawMessage(raw)); err != nil {
		return nil, parseFailure(err).WithDetails(map[string]any{"reply": truncate(raw, 200)})
	}
	var out modelOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, parseFailure(fmt.Errorf("decode reply: %w", err))
	}
	return &out, nil
}

func parseFailure(err error) *apperr.Error {
	return apperr.New(apperr.ResponseParseFailure, apperr.OpDiagnose, err)
}

func (s *Service) fail(err error) {
	apperr.Log(s.logger, err)
}
