package middlewares

import (
	"context"
	"net/http"
	"time"
)

// RequestDeadline caps every request at the configured duration. Handlers
// pass the context down to Mongo and Redis, so a blown deadline surfaces
// from those calls and is answered as a gateway timeout.
func RequestDeadline(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
