package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

func (e *ErrRateLimit) Kind() apperr.Kind { return apperr.ExternalServiceThrottled }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

func (e *ErrInvalidResponse) Kind() apperr.Kind { return apperr.ResponseParseFailure }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

func (e *ErrProviderUnavailable) Kind() apperr.Kind { return apperr.ExternalServiceUnavailable }

// ErrAccessDenied indicates the credentials were rejected (401/403).
type ErrAccessDenied struct {
	Err error
}

func (e *ErrAccessDenied) Error() string {
	return fmt.Sprintf("LLM access denied: %v", e.Err)
}

func (e *ErrAccessDenied) Unwrap() error { return e.Err }

func (e *ErrAccessDenied) Kind() apperr.Kind { return apperr.ExternalServiceAccessDenied }

// ErrRejectedInput indicates the provider refused the request as malformed (400).
type ErrRejectedInput struct {
	Err error
}

func (e *ErrRejectedInput) Error() string {
	return fmt.Sprintf("LLM rejected input: %v", e.Err)
}

func (e *ErrRejectedInput) Unwrap() error { return e.Err }

func (e *ErrRejectedInput) Kind() apperr.Kind { return apperr.ExternalServiceRejectedInput }

// ErrContentFiltered indicates a safety filter blocked the prompt or output.
type ErrContentFiltered struct {
	Err error
}

func (e *ErrContentFiltered) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("blocked by content filter: %v", e.Err)
	}
	return "blocked by content filter"
}

func (e *ErrContentFiltered) Unwrap() error { return e.Err }

func (e *ErrContentFiltered) Kind() apperr.Kind { return apperr.ContentFiltered }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

func (e *ErrMaxTokensExceeded) Kind() apperr.Kind { return apperr.ResponseParseFailure }

// isTransport reports whether err never reached the provider. Those errors
// pass through untyped so callers can tell timeouts from outages.
func isTransport(err error) bool {
	var ne net.Error
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.As(err, &ne)
}

// classifyStatus maps an HTTP status from any provider SDK to a typed error.
func classifyStatus(status int, err error) error {
	switch {
	case status == 429:
		return &ErrRateLimit{Err: err}
	case status == 401 || status == 403:
		return &ErrAccessDenied{Err: err}
	case status == 400 || status == 422:
		return &ErrRejectedInput{Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
