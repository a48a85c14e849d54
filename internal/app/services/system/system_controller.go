package system

import (
	"context"
	"net/http"
	"time"

	"strokewatch-service/internal/app/services/fhir/resources"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/dto/responses"
	"strokewatch-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type SystemController struct {
	Log     *zap.Logger
	MongoDB *mongo.Client
}

func NewSystemController(logger *zap.Logger, mongoClient *mongo.Client) *SystemController {
	return &SystemController{
		Log:     logger,
		MongoDB: mongoClient,
	}
}

func (sc *SystemController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	response := responses.HealthResponse{Status: "up", Database: "up"}
	statusCode := constvars.StatusOK
	if err := sc.MongoDB.Ping(ctx, readpref.Primary()); err != nil {
		sc.Log.Error("health check database ping failed", zap.Error(err))
		response.Database = "down"
		statusCode = constvars.StatusServiceUnavailable
	}
	utils.BuildSuccessResponse(w, statusCode, response)
}

// Metadata answers GET /metadata with the server's CapabilityStatement.
func (sc *SystemController) Metadata(w http.ResponseWriter, r *http.Request) {
	restResources := make([]map[string]interface{}, 0, 4)
	for _, descriptor := range resources.SupportedDescriptors() {
		searchParams := make([]map[string]interface{}, 0, len(descriptor.SearchParams))
		for _, param := range descriptor.SearchParams {
			searchParams = append(searchParams, map[string]interface{}{
				"name": param,
				"type": "string",
			})
		}
		restResources = append(restResources, map[string]interface{}{
			"type": descriptor.Name,
			"interaction": []map[string]interface{}{
				{"code": "read"},
				{"code": "create"},
				{"code": "update"},
				{"code": "delete"},
				{"code": "search-type"},
			},
			"searchParam": searchParams,
		})
	}

	statement := map[string]interface{}{
		"resourceType": constvars.ResourceCapabilityStatement,
		"status":       "active",
		"date":         utils.FhirInstant(time.Now()),
		"kind":         "instance",
		"fhirVersion":  "4.0.1",
		"format":       []string{constvars.MIMEApplicationFHIRJSON},
		"rest": []map[string]interface{}{
			{
				"mode":     "server",
				"resource": restResources,
			},
		},
	}
	utils.BuildFhirResponse(w, constvars.StatusOK, statement)
}
