package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError maps usecase errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var fieldErrs usecase.FieldErrors
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &fieldErrs):
		log.Warn(operation+" validation failed",
			zap.Any("errors", map[string]string(fieldErrs)),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", map[string]string(fieldErrs))

	case errors.As(err, &verr):
		log.Warn(operation+" rejected",
			zap.String("field", verr.Field),
			zap.String("reason", verr.Message),
			zap.String("operation", operation))
		utils.ResponseFieldError(w, verr.Field, verr.Message)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, "Not found.")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized",
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, "Invalid token.")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
