package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amixedcolor/aws-identity-gift/internal/api/response"
	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	response.JSON(w, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "abc", data["id"])
}

func TestCollection(t *testing.T) {
	w := httptest.NewRecorder()
	response.Collection(w, []string{"a", "b"}, response.Meta{Total: 2, Capacity: 9, Order: "desc"})

	body := decode(t, w)
	assert.Len(t, body["data"], 2)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["total"])
	assert.Equal(t, float64(9), meta["capacity"])
	assert.Equal(t, "desc", meta["order"])
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	response.Error(w, http.StatusNotFound, response.CodeNotFound, "missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Equal(t, "missing", errBody["message"])
	_, hasDetails := errBody["details"]
	assert.False(t, hasDetails)
}

func TestAppError(t *testing.T) {
	w := httptest.NewRecorder()
	response.AppError(w, apperr.New(apperr.StorageQuotaExceeded, apperr.OpArchiveSave, errors.New("full")))

	assert.Equal(t, http.StatusInsufficientStorage, w.Code)
	errBody := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "STORAGE_QUOTA_EXCEEDED", errBody["code"])
	assert.Equal(t, apperr.MsgStorageQuota, errBody["message"])
}

func TestAppError_PlainError(t *testing.T) {
	w := httptest.NewRecorder()
	response.AppError(w, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "UNKNOWN", decode(t, w)["error"].(map[string]any)["code"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, response.StatusFor(apperr.ValidationFailure))
	assert.Equal(t, http.StatusTooManyRequests, response.StatusFor(apperr.ExternalServiceThrottled))
	assert.Equal(t, http.StatusGatewayTimeout, response.StatusFor(apperr.NetworkTimeout))
	assert.Equal(t, http.StatusServiceUnavailable, response.StatusFor(apperr.StorageUnavailable))
	assert.Equal(t, http.StatusInternalServerError, response.StatusFor(apperr.Unknown))
}
