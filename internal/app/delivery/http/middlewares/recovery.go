package middlewares

import (
	"fmt"
	"net/http"

	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Recovery turns a handler panic into an OperationOutcome instead of a
// dropped connection.
func Recovery(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					log.Error("panic recovered",
						zap.Any("panic", recovered),
						zap.String("endpoint", r.URL.Path),
						zap.Stack("stack"),
					)
					utils.BuildErrorResponse(log, w, exceptions.ErrServerProcess(fmt.Errorf("panic: %v", recovered)))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
