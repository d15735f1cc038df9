// Package api exposes the result archive over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/amixedcolor/aws-identity-gift/internal/api/handler"
	mw "github.com/amixedcolor/aws-identity-gift/internal/api/middleware"
	"github.com/amixedcolor/aws-identity-gift/internal/api/response"
)

// Dependencies holds everything the router wires in.
type Dependencies struct {
	Logger  *zap.Logger
	Results *handler.Results
}

// NewRouter builds the chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(mw.Logger(logger))
	r.Use(mw.Recovery(logger))

	r.Get("/healthz", deps.Results.Health)
	r.Get("/results", deps.Results.List)
	r.Get("/result/{id}", deps.Results.Get)
	r.Delete("/result/{id}", deps.Results.Delete)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "ページが見つかりませんでした", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "許可されていないメソッドです", nil)
	})

	return r
}
