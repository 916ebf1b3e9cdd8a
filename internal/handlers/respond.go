package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"recall-ai/internal/contextutil"
	"recall-ai/internal/retrieval"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeServiceError maps validation errors to 400 and everything else to 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var verr *retrieval.ValidationError
	if errors.As(err, &verr) {
		logger.WarnContext(ctx, "invalid request", "field", verr.Field, "error", verr.Message)
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	}

	logger.ErrorContext(ctx, defaultMsg, "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}
