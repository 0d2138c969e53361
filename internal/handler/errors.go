package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberhall/homeboard/internal/store"
)

// writeTaxonomyError maps the service error taxonomy onto status codes:
// validation and bad references answer 400, conflicts 409, missing ids 404,
// declared-but-unbuilt operations 501. Anything else is a 500 with no
// internal detail leaked to the client.
func writeTaxonomyError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, store.ErrValidation), errors.Is(err, store.ErrUnknownMember):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateName), errors.Is(err, store.ErrAlreadyCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrNotImplemented):
		writeError(w, http.StatusNotImplemented, err.Error())
	default:
		logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
