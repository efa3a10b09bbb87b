// Package middleware provides the HTTP middleware chain: request metadata
// capture and operator identity verification.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"preflight/pkg/requestcontext"
)

// RequestMeta stamps every request with a correlation ID and a single
// request-scoped "now". All timestamps within one request (issue creation,
// resolution stamps, audit events) come from the same instant.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
