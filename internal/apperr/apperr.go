// Package apperr defines the normalized error kinds surfaced to the user,
// along with their localized messages.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an application error.
type Kind int

const (
	Unknown Kind = iota
	NetworkUnavailable
	NetworkTimeout
	ExternalServiceThrottled
	ExternalServiceRejectedInput
	ExternalServiceUnavailable
	ExternalServiceAccessDenied
	ContentFiltered
	ResponseParseFailure
	StorageUnavailable
	StorageQuotaExceeded
	ValidationFailure
)

var kindNames = map[Kind]string{
	Unknown:                      "unknown",
	NetworkUnavailable:           "network_unavailable",
	NetworkTimeout:               "network_timeout",
	ExternalServiceThrottled:     "external_service_throttled",
	ExternalServiceRejectedInput: "external_service_rejected_input",
	ExternalServiceUnavailable:   "external_service_unavailable",
	ExternalServiceAccessDenied:  "external_service_access_denied",
	ContentFiltered:              "content_filtered",
	ResponseParseFailure:         "response_parse_failure",
	StorageUnavailable:           "storage_unavailable",
	StorageQuotaExceeded:         "storage_quota_exceeded",
	ValidationFailure:            "validation_failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Code returns the upper-case code used in HTTP error envelopes.
func (k Kind) Code() string {
	return strings.ToUpper(k.String())
}

// Operation names. The gift card operations select image-specific messages.
const (
	OpDiagnose     = "diagnose"
	OpGiftCard     = "giftcard"
	OpArchiveRead  = "archive.read"
	OpArchiveSave  = "archive.save"
	OpArchiveClear = "archive.clear"
	OpArchiveDel   = "archive.delete"
)

// Error is a normalized application error. The zero Op is allowed.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Details map[string]any
	Err     error
}

// New creates an Error with the default message for kind and op.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: messageFor(kind, op), Err: err}
}

// Validation creates a ValidationFailure with an explicit user message.
func Validation(op, message string) *Error {
	return &Error{Kind: ValidationFailure, Op: op, Message: message}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so sentinels like ErrQuotaExceeded
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// UserMessage returns the localized message, falling back to the kind default.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return messageFor(e.Kind, e.Op)
}

// WithDetails attaches diagnostic payload for logging.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithMessage overrides the user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// Sentinels for errors.Is checks.
var (
	ErrStorageUnavailable   = &Error{Kind: StorageUnavailable}
	ErrStorageQuotaExceeded = &Error{Kind: StorageQuotaExceeded}
	ErrValidation           = &Error{Kind: ValidationFailure}
	ErrResponseParse        = &Error{Kind: ResponseParseFailure}
)

// KindOf returns the kind of err, or Unknown when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return Unknown
}

// IsKind reports whether err normalizes to kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
