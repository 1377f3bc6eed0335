package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/dto"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log := logger.WithComponent("gateway")
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeErrorResponse writes an error response in a consistent format.
// Token-flow failures are not transport errors: callers of the token
// endpoints branch on is_valid, so those are surfaced as 200 with
// {is_valid:false, message}.
func writeErrorResponse(w http.ResponseWriter, appErr *apperrors.AppError) {
	if appErr.IsTokenFlow() {
		writeJSON(w, http.StatusOK, dto.TokenStateResponse{
			IsValid: false,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, appErr.Status, dto.ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Code),
	})
}
