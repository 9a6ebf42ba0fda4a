package httpx

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader   = "X-Request-Id"
	maxRequestIDBytes = 128
)

// RequestIDMiddleware tags each request with an id, echoes it in the
// response and stores a logger carrying it in the request context.
func RequestIDMiddleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" || len(requestID) > maxRequestIDBytes {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)
			reqLog := log.With().Str("request_id", requestID).Logger()
			ctx := ContextWithRequestID(r.Context(), requestID)
			ctx = reqLog.WithContext(ctx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
