package apperr

import (
	"context"
	"errors"
	"net"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// kinded is implemented by lower-level errors that already know which
// application kind they correspond to (the llm error types, for example).
type kinded interface {
	Kind() Kind
}

// Normalize converts any error into an *Error. Errors that are already
// normalized are returned unchanged, apart from gaining op when they had none.
func Normalize(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		if ae.Op == "" && op != "" {
			cp := *ae
			cp.Op = op
			if cp.Message == "" {
				cp.Message = messageFor(cp.Kind, op)
			}
			return &cp
		}
		return ae
	}

	var k kinded
	if errors.As(err, &k) {
		return New(k.Kind(), op, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(NetworkTimeout, op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return New(NetworkTimeout, op, err)
		}
		return New(NetworkUnavailable, op, err)
	}

	if kind, ok := classifyMessage(err.Error()); ok {
		return New(kind, op, err)
	}

	if hasJapanese(err.Error()) {
		return &Error{Kind: Unknown, Op: op, Message: err.Error(), Err: err}
	}

	return New(Unknown, op, err)
}

// classifyMessage applies keyword matching to upstream error text.
func classifyMessage(msg string) (Kind, bool) {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "throttl"), strings.Contains(m, "too many requests"):
		return ExternalServiceThrottled, true
	case strings.Contains(m, "content") && strings.Contains(m, "filter"):
		return ContentFiltered, true
	case strings.Contains(m, "access denied"), strings.Contains(m, "accessdenied"):
		return ExternalServiceAccessDenied, true
	case strings.Contains(m, "validation"):
		return ExternalServiceRejectedInput, true
	case strings.Contains(m, "timeout"), strings.Contains(m, "timed out"):
		return NetworkTimeout, true
	case strings.Contains(m, "network"), strings.Contains(m, "fetch"),
		strings.Contains(m, "connection refused"), strings.Contains(m, "no such host"):
		return NetworkUnavailable, true
	case strings.Contains(m, "quota"), strings.Contains(m, "database or disk is full"):
		return StorageQuotaExceeded, true
	case strings.Contains(m, "storage"):
		return StorageUnavailable, true
	}
	return Unknown, false
}

func hasJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

// Log records err with its operation, kind and details.
func Log(logger *zap.Logger, err error) {
	if logger == nil || err == nil {
		return
	}
	ae := Normalize("", err)
	fields := []zap.Field{
		zap.String("op", ae.Op),
		zap.String("kind", ae.Kind.String()),
		zap.String("message", ae.UserMessage()),
	}
	if len(ae.Details) > 0 {
		fields = append(fields, zap.Any("details", ae.Details))
	}
	if ae.Err != nil {
		fields = append(fields, zap.Error(ae.Err))
	}
	logger.Error("operation failed", fields...)
}
