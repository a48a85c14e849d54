package contracts

import (
	"context"
	"errors"
	"strokewatch-service/internal/pkg/dto/responses"
)

// ErrModelServiceUnreachable marks a transport-level failure reaching the
// scoring service. The prediction pipeline recovers from it with a local
// fallback; every other model service error is surfaced.
var ErrModelServiceUnreachable = errors.New("model service unreachable")

type ScoreResult struct {
	Probability float64
	Model       string
	RiskLevel   string
}

type ModelClient interface {
	Predict(ctx context.Context, features map[string]interface{}) (*ScoreResult, error)
}

// ExtractionResult is the flat feature set derived from a patient's stored
// records plus the references that produced it.
type ExtractionResult struct {
	Features map[string]interface{}
	Basis    []string
}

type FeatureExtractor interface {
	Extract(ctx context.Context, patientID string, overrides map[string]interface{}) (*ExtractionResult, error)
}

type PredictionUsecase interface {
	Predict(ctx context.Context, patientID string, overrides map[string]interface{}) (*responses.PredictResponse, error)
}
