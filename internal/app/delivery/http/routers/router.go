package routers

import (
	"time"

	"strokewatch-service/internal/app/config"
	"strokewatch-service/internal/app/delivery/http/middlewares"
	"strokewatch-service/internal/app/services/fhir/resources"
	"strokewatch-service/internal/app/services/imports"
	"strokewatch-service/internal/app/services/prediction"
	"strokewatch-service/internal/app/services/shared/ratelimiter"
	"strokewatch-service/internal/app/services/system"
	"strokewatch-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type RouterDependencies struct {
	Logger         *zap.Logger
	InternalConfig *config.InternalConfig

	SystemController     *system.SystemController
	ResourceController   *resources.ResourceController
	PredictionController *prediction.PredictionController
	ImportController     *imports.ImportController
	PredictLimiter       *ratelimiter.ResourceLimiter
}

func SetupRouter(deps *RouterDependencies) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middlewares.RequestLogger(deps.Logger))
	router.Use(middlewares.Recovery(deps.Logger))
	router.Use(httprate.LimitByIP(deps.InternalConfig.App.MaxRequests, 1*time.Minute))
	router.Use(middlewares.RequestDeadline(time.Duration(deps.InternalConfig.App.RequestTimeoutInSeconds) * time.Second))

	router.Get("/health", deps.SystemController.Health)
	router.Get("/metadata", deps.SystemController.Metadata)

	router.With(middlewares.PredictRateLimit(
		deps.PredictLimiter,
		deps.InternalConfig.Prediction.RateLimitPerMinute,
		deps.Logger,
	)).Post("/predict/{patientID}", deps.PredictionController.Predict)

	router.Post("/upload", deps.ImportController.UploadCSV)

	router.Route("/{resourceType}", func(r chi.Router) {
		r.Get("/", deps.ResourceController.SearchResources)
		r.Post("/", deps.ResourceController.CreateResource)
		r.Get("/{resourceID}", deps.ResourceController.GetResourceByID)
		r.Put("/{resourceID}", deps.ResourceController.UpdateResource)
		r.Delete("/{resourceID}", deps.ResourceController.DeleteResource)
	})

	return router
}
