// Package handler holds the HTTP handlers for the share server.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/api/response"
	"github.com/amixedcolor/aws-identity-gift/internal/apperr"
	"github.com/amixedcolor/aws-identity-gift/internal/archive"
	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

// ResultArchive is the part of archive.Store the handlers need.
type ResultArchive interface {
	GetAll(ctx context.Context, order archive.Order) []gift.DiagnosticResult
	GetByID(ctx context.Context, id string) (*gift.DiagnosticResult, bool)
	DeleteByID(ctx context.Context, id string) error
	MaxCount() int
}

// ResultView is a stored result plus what the share page shows with it.
type ResultView struct {
	gift.DiagnosticResult
	Glyph     string `json:"glyph"`
	ShareText string `json:"shareText"`
	ShareURL  string `json:"shareUrl"`
}

// Results serves the archive over HTTP.
type Results struct {
	archive ResultArchive
	logger  *zap.Logger
	// BaseURL prefixes the link placed in share intents, when set.
	BaseURL string
}

func NewResults(a ResultArchive, logger *zap.Logger) *Results {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Results{archive: a, logger: logger}
}

// Get handles GET /result/{id}.
func (h *Results) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	res, ok := h.archive.GetByID(r.Context(), id)
	if !ok {
		notFound(w, id)
		return
	}
	response.JSON(w, h.view(*res))
}

// List handles GET /results?order=asc|desc.
func (h *Results) List(w http.ResponseWriter, r *http.Request) {
	orderParam := r.URL.Query().Get("order")
	switch orderParam {
	case "", "desc", "asc":
	default:
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequest,
			"order must be asc or desc", map[string]string{"order": orderParam})
		return
	}
	order := archive.ParseOrder(orderParam)

	results := h.archive.GetAll(r.Context(), order)
	views := make([]ResultView, len(results))
	for i, res := range results {
		views[i] = h.view(res)
	}
	label := "desc"
	if order == archive.OrderAsc {
		label = "asc"
	}
	response.Collection(w, views, response.Meta{
		Total:    len(views),
		Capacity: h.archive.MaxCount(),
		Order:    label,
	})
}

// Delete handles DELETE /result/{id}.
func (h *Results) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if _, ok := h.archive.GetByID(r.Context(), id); !ok {
		notFound(w, id)
		return
	}
	if err := h.archive.DeleteByID(r.Context(), id); err != nil {
		ae := apperr.Normalize(apperr.OpArchiveDel, err)
		apperr.Log(h.logger, ae)
		response.AppError(w, ae)
		return
	}
	response.NoContent(w)
}

// Health handles GET /healthz.
func (h *Results) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, map[string]any{
		"status":  "ok",
		"results": len(h.archive.GetAll(r.Context(), archive.OrderDesc)),
	})
}

func (h *Results) view(res gift.DiagnosticResult) ResultView {
	link := ""
	if h.BaseURL != "" {
		link = strings.TrimRight(h.BaseURL, "/") + "/result/" + res.ID
	}
	text := gift.ShareText(res)
	return ResultView{
		DiagnosticResult: res,
		Glyph:            gift.GiftGlyph(res.ID).Icon,
		ShareText:        text,
		ShareURL:         gift.ShareURL(text, link),
	}
}

func notFound(w http.ResponseWriter, id string) {
	response.Error(w, http.StatusNotFound, response.CodeNotFound, apperr.MsgResultNotFound,
		map[string]string{"id": id})
}
