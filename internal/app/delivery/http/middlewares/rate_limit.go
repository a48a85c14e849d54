package middlewares

import (
	"net/http"
	"strconv"

	"strokewatch-service/internal/app/services/shared/ratelimiter"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PredictRateLimit guards the prediction endpoint per patient with the
// Redis fixed-window limiter.
func PredictRateLimit(limiter *ratelimiter.ResourceLimiter, maxPerMinute int, log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			patientID := chi.URLParam(r, constvars.URLParamPatientID)

			result, err := limiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
				ResourceName:      patientID,
				LimiterGroupName:  constvars.PredictRateLimiterGroup,
				WindowDurationSec: 60,
				MaxQuota:          maxPerMinute,
			})
			if err != nil {
				utils.BuildErrorResponse(log, w, err)
				return
			}
			if !result.Allowed {
				w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(result.RetryAfterSecs))
				utils.BuildErrorResponse(log, w, exceptions.ErrTooManyPredictions(result.RetryAfterSecs))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
