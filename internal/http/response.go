package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/auth"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/category"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/core"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/services"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/storage"
	"github.com/hizkiajonathanbudiana/Tracker-Money/internal/wallet"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps domain errors onto HTTP statuses. Unmapped errors become
// opaque 500s so internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err, "method", r.Method, "path", r.URL.Path)
		writeErrorMessage(w, status, "internal server error")
		return
	}
	writeErrorMessage(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, wallet.ErrUnknownDenom),
		errors.Is(err, category.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists),
		errors.Is(err, wallet.ErrDuplicateDenomID),
		errors.Is(err, category.ErrLastCategory):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidMonthKey),
		errors.Is(err, core.ErrInvalidWindow),
		errors.Is(err, core.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrNotesTooLong),
		errors.Is(err, core.ErrNegativeUsage),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, wallet.ErrEmptyLabel),
		errors.Is(err, wallet.ErrInvalidValue),
		errors.Is(err, wallet.ErrInvalidKind),
		errors.Is(err, wallet.ErrNegativeCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
