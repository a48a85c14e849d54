package middlewares

import (
	"net/http"
	"time"

	"strokewatch-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request after the handler finishes.
func RequestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: constvars.StatusOK}

			next.ServeHTTP(recorder, r)

			log.Info("request handled",
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.Int(constvars.LoggingStatusKey, recorder.status),
				zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			)
		})
	}
}
