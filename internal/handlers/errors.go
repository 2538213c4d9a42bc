package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nemogoc/pickup/internal/models"
)

// Error codes in JSON error bodies.
const (
	CodeValidation    = "validation_error"
	CodeNotFound      = "not_found"
	CodeRateLimited   = "rate_limited"
	CodeMethod        = "method_not_allowed"
	CodeInternalError = "internal_error"
)

// APIError is the body of every JSON error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}

// httpError pairs a status code with the error body sent to the client.
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

func newHTTPError(status int, code, message string) error {
	return &httpError{status, APIError{code, message}}
}

// toHTTPError maps service errors to responses. Unknown errors become a
// generic 500 so storage details never reach the client.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeValidation, ve.Error()}}
	}

	switch {
	case errors.Is(err, models.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Player not found"}}
	case errors.Is(err, models.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Game not found"}}
	case errors.Is(err, models.ErrGuestNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Guest not found"}}
	case errors.Is(err, models.ErrNoRecipients):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "No players to email"}}
	case errors.Is(err, models.ErrNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// writeError writes err as a JSON error, logging the cause of server errors.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)
	if he.status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	writeJSON(w, he.status, ErrorResponse{Error: he.apiError})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// maxBodyBytes bounds request bodies on the JSON endpoints.
const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("body", "invalid JSON body")
	}
	return nil
}
