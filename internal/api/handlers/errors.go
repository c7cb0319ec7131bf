package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/domain"
)

// writeServiceError maps domain errors onto HTTP status codes. Validation
// and conflict errors carry their specific message; anything else is a
// store failure that gets logged in full and reported generically.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		middleware.WriteError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, domain.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, domain.ErrAlreadyTransfer):
		middleware.WriteError(w, http.StatusConflict, domain.ErrAlreadyTransfer.Error())
	default:
		log.Error().Err(err).Str("operation", op).Msg("Request failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
