package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventvenues/internal/domain"
)

// StatusForError returns the HTTP status for a service error. Errors that carry no
// business kind are infrastructure failures and map to 500.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInputValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// WriteServiceError writes err in the API envelope. Business errors keep their code,
// message and details; anything else is logged and reported as internal_error
// without leaking the cause.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, status, ErrCodeInternalError, "internal server error")
		return
	}
	var de *domain.Error
	if errors.As(err, &de) {
		WriteJSONError(w, status, de.Code(), de.Message, de.Details...)
		return
	}
	WriteJSONError(w, status, domain.ErrorCode(err), err.Error())
}
