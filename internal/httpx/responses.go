package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Error codes shared by handlers and middleware.
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
	CodeInternal          = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorResponseBody `json:"error"`
	Meta  map[string]any    `json:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("encode response")
	}
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONError writes the error envelope. fields is omitted when empty.
func JSONError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields map[string]string) {
	JSON(w, r, status, ErrorResponse{
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
		Meta: buildMeta(r),
	})
}

// InternalError logs err against the request and writes a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	JSONError(w, r, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}

// NotFound is a JSON replacement for http.NotFound.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusNotFound, CodeNotFound, "Resource not found", nil)
}

// MethodNotAllowed answers a known path requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
}

func buildMeta(r *http.Request) map[string]any {
	requestID := RequestIDFrom(r)
	if requestID == "" {
		return nil
	}
	return map[string]any{"request_id": requestID}
}
