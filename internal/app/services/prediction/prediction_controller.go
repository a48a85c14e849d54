package prediction

import (
	"io"
	"net/http"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/dto/requests"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PredictionController struct {
	Log               *zap.Logger
	PredictionUsecase contracts.PredictionUsecase
}

func NewPredictionController(logger *zap.Logger, predictionUsecase contracts.PredictionUsecase) *PredictionController {
	return &PredictionController{
		Log:               logger,
		PredictionUsecase: predictionUsecase,
	}
}

// Predict scores one patient. The body is optional; when present it carries
// feature overrides merged on top of the extracted values.
func (pc *PredictionController) Predict(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	var overrides map[string]interface{}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(pc.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if len(body) > 0 {
		var request requests.PredictRequest
		if err := json.Unmarshal(body, &request); err != nil {
			utils.BuildErrorResponse(pc.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
		overrides = request.Features
	}

	response, err := pc.PredictionUsecase.Predict(r.Context(), patientID, overrides)
	if err != nil {
		utils.BuildErrorResponse(pc.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, response)
}
