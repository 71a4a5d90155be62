// Package handlers exposes the registry over HTTP. Routes are registered on
// a plain ServeMux with method-qualified patterns.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/logging"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the application sentinels onto HTTP status codes:
// validation failures are 400, missing records 404, duplicates 409, and
// referential-integrity rejections 422. Anything else is a sanitized 500.
func WriteServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		status  int
		code    string
		message = err.Error()
	)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "validation_failed"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrConflict):
		status, code = http.StatusConflict, "conflict"
	case errors.Is(err, apperrors.ErrForeignKey):
		status, code = http.StatusUnprocessableEntity, "referential_integrity"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
		message = logging.SanitizeError(err)
	}

	if werr := ErrorResponse(w, status, code, message); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
