// Package respond writes JSON bodies and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/libry/internal/book"
	"github.com/MrJamesThe3rd/libry/internal/importer"
	"github.com/MrJamesThe3rd/libry/internal/lending"
	"github.com/MrJamesThe3rd/libry/internal/member"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status picks the HTTP status for an error returned by a service.
func Status(err error) int {
	switch {
	case errors.Is(err, book.ErrNotFound), errors.Is(err, member.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, book.ErrInvalid), errors.Is(err, member.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, lending.ErrOutOfStock),
		errors.Is(err, lending.ErrNoOpenIssue),
		errors.Is(err, book.ErrInUse),
		errors.Is(err, member.ErrInUse):
		return http.StatusConflict
	case errors.Is(err, lending.ErrDebtLimitExceeded):
		return http.StatusForbidden
	case errors.Is(err, importer.ErrExternalSource):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as plain text. Unexpected errors are logged and hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
