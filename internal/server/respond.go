package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/lineage/internal/familytree"
	"github.com/thenoetrevino/lineage/internal/services/settings"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// errBadRequest marks request bodies that could not be decoded
var errBadRequest = errors.New("bad request")

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON sends a JSON response wrapped in APIResponse
func RespondJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondError sends an error response
func RespondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// respondErr maps a service error to its status and code
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		RespondError(w, status, code, "internal error")
		return
	}
	RespondError(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "BAD_REQUEST"
	case errors.Is(err, familytree.ErrAlreadyExists):
		return http.StatusConflict, "MEMBER_EXISTS"
	case errors.Is(err, familytree.ErrNotFound):
		return http.StatusNotFound, "MEMBER_NOT_FOUND"
	case errors.Is(err, familytree.ErrCycleDetected):
		return http.StatusUnprocessableEntity, "CYCLE_DETECTED"
	case errors.Is(err, familytree.ErrRootRelationship):
		return http.StatusUnprocessableEntity, "ROOT_RELATIONSHIP"
	case errors.Is(err, settings.ErrUnknownSetting):
		return http.StatusUnprocessableEntity, "UNKNOWN_SETTING"
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// decodeJSON parses a JSON request body with a size limit.
// An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
