package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"fundbridge/internal/domain"
	"fundbridge/internal/middleware"
	"fundbridge/internal/service"
)

// App bundles the dependencies handlers need.
type App struct {
	Service *service.Service
	Logger  zerolog.Logger
}

// NewApp creates the handler container.
func NewApp(svc *service.Service, logger zerolog.Logger) *App {
	return &App{Service: svc, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// serviceError maps service-layer errors onto HTTP responses.
func (a *App) serviceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidationError(err):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "operation failed")
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
