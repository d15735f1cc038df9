// Package response writes the JSON envelopes used by every endpoint.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
)

type envelope struct {
	Data any `json:"data"`
}

type collectionEnvelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Meta describes a result list.
type Meta struct {
	Total    int    `json:"total"`
	Capacity int    `json:"capacity"`
	Order    string `json:"order"`
}

// Error codes that do not come from an apperr.Kind.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternal       = "INTERNAL_ERROR"
)

func JSON(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

func Collection(w http.ResponseWriter, data any, meta Meta) {
	writeJSON(w, http.StatusOK, collectionEnvelope{Data: data, Meta: meta})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// AppError writes err with the status and code of its kind and the
// localized message.
func AppError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Normalize("", err)
	}
	var details any
	if len(ae.Details) > 0 {
		details = ae.Details
	}
	Error(w, StatusFor(ae.Kind), ae.Kind.Code(), ae.UserMessage(), details)
}

// StatusFor maps a kind to its HTTP status.
func StatusFor(k apperr.Kind) int {
	switch k {
	case apperr.ValidationFailure:
		return http.StatusBadRequest
	case apperr.ExternalServiceThrottled:
		return http.StatusTooManyRequests
	case apperr.ExternalServiceRejectedInput, apperr.ContentFiltered:
		return http.StatusUnprocessableEntity
	case apperr.ExternalServiceAccessDenied, apperr.ExternalServiceUnavailable, apperr.ResponseParseFailure:
		return http.StatusBadGateway
	case apperr.NetworkTimeout:
		return http.StatusGatewayTimeout
	case apperr.NetworkUnavailable, apperr.StorageUnavailable:
		return http.StatusServiceUnavailable
	case apperr.StorageQuotaExceeded:
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
