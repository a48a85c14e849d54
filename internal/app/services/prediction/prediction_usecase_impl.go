package prediction

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/dto/responses"
	"strokewatch-service/internal/pkg/fhir_dto"
	"strokewatch-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type predictionUsecase struct {
	FeatureExtractor   contracts.FeatureExtractor
	ModelClient        contracts.ModelClient
	ResourceRepository contracts.ResourceRepository
	EventPublisher     contracts.EventPublisher
	Log                *zap.Logger

	now       func() time.Time
	randFloat func() float64
}

func NewPredictionUsecase(
	featureExtractor contracts.FeatureExtractor,
	modelClient contracts.ModelClient,
	resourceRepository contracts.ResourceRepository,
	eventPublisher contracts.EventPublisher,
	log *zap.Logger,
) contracts.PredictionUsecase {
	return &predictionUsecase{
		FeatureExtractor:   featureExtractor,
		ModelClient:        modelClient,
		ResourceRepository: resourceRepository,
		EventPublisher:     eventPublisher,
		Log:                log,
		now:                time.Now,
		randFloat:          rand.Float64,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, patientID string, overrides map[string]interface{}) (*responses.PredictResponse, error) {
	extraction, err := u.FeatureExtractor.Extract(ctx, patientID, overrides)
	if err != nil {
		return nil, err
	}

	score, err := u.score(ctx, extraction.Features)
	if err != nil {
		return nil, err
	}

	riskLevel := RiskBand(score.Probability)

	existing, err := u.findRecentDuplicate(ctx, patientID, score.Probability)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		u.Log.Info("duplicate prediction, reusing recent assessment",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingResourceIDKey, existing.ID),
		)
		return buildPredictResponse(patientID, existing, len(extraction.Basis)), nil
	}

	assessment := u.buildAssessment(patientID, extraction, score, riskLevel)
	doc, err := utils.StructToMap(assessment)
	if err != nil {
		return nil, err
	}
	if err := u.ResourceRepository.Insert(ctx, constvars.ResourceRiskAssessment, doc); err != nil {
		return nil, err
	}

	if err := u.EventPublisher.Publish(ctx, constvars.EventRiskAssessmentCreated, map[string]interface{}{
		"riskAssessmentId": assessment.ID,
		"patientId":        patientID,
		"probability":      score.Probability,
		"qualitativeRisk":  riskLevel,
		"model":            score.Model,
	}); err != nil {
		u.Log.Warn("risk assessment event not published", zap.Error(err))
	}

	u.Log.Info("risk assessment created",
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingResourceIDKey, assessment.ID),
		zap.Float64("probability", score.Probability),
		zap.String("qualitative_risk", riskLevel),
		zap.String("model", score.Model),
	)
	return buildPredictResponse(patientID, assessment, len(extraction.Basis)), nil
}

// score asks the external model and falls back to a local pseudo-random
// probability when the service cannot be reached at all. Any other failure
// propagates.
func (u *predictionUsecase) score(ctx context.Context, features map[string]interface{}) (*contracts.ScoreResult, error) {
	score, err := u.ModelClient.Predict(ctx, features)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, contracts.ErrModelServiceUnreachable) {
		return nil, err
	}

	u.Log.Warn("model service unreachable, using fallback probability", zap.Error(err))
	return &contracts.ScoreResult{
		Probability: u.randFloat() * 0.5,
		Model:       constvars.FallbackModelName,
	}, nil
}

// findRecentDuplicate looks for an assessment of the same subject written
// within the dedup window whose probability is practically identical. The
// read-then-write race is accepted.
func (u *predictionUsecase) findRecentDuplicate(ctx context.Context, patientID string, probability float64) (*fhir_dto.RiskAssessment, error) {
	docs, _, err := u.ResourceRepository.Search(ctx, constvars.ResourceRiskAssessment, &contracts.SearchQuery{
		Filter:         map[string]interface{}{"subject.reference": constvars.ResourcePatient + "/" + patientID},
		SortField:      "occurrenceDateTime",
		SortDescending: true,
		Limit:          constvars.DefaultSearchPageSize,
	})
	if err != nil {
		return nil, err
	}

	cutoff := u.now().UTC().Add(-constvars.PredictionDedupWindow * time.Hour)
	for _, doc := range docs {
		var assessment fhir_dto.RiskAssessment
		if err := utils.MapToStruct(doc, &assessment); err != nil {
			continue
		}
		occurredAt, err := utils.ParseFhirInstant(assessment.OccurrenceDateTime)
		if err != nil || occurredAt.Before(cutoff) {
			continue
		}
		if len(assessment.Prediction) == 0 || assessment.Prediction[0].ProbabilityDecimal == nil {
			continue
		}
		if math.Abs(*assessment.Prediction[0].ProbabilityDecimal-probability) < constvars.PredictionDedupTolerance {
			return &assessment, nil
		}
	}
	return nil, nil
}

func (u *predictionUsecase) buildAssessment(patientID string, extraction *contracts.ExtractionResult, score *contracts.ScoreResult, riskLevel string) *fhir_dto.RiskAssessment {
	now := utils.FhirInstant(u.now())
	probability := score.Probability

	basis := make([]fhir_dto.Reference, 0, len(extraction.Basis))
	for _, ref := range extraction.Basis {
		basis = append(basis, fhir_dto.Reference{Reference: ref})
	}

	return &fhir_dto.RiskAssessment{
		ResourceType: constvars.ResourceRiskAssessment,
		ID:           uuid.NewString(),
		Meta:         &fhir_dto.Meta{LastUpdated: now},
		Status:       constvars.FhirObservationStatusFinal,
		Method:       &fhir_dto.CodeableConcept{Text: score.Model},
		Subject: &fhir_dto.Reference{
			Reference: constvars.ResourcePatient + "/" + patientID,
		},
		OccurrenceDateTime: now,
		Basis:              basis,
		Prediction: []fhir_dto.RiskAssessmentPrediction{
			{
				Outcome: &fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{
						{
							System: constvars.CodingSystemSNOMED,
							Code:   constvars.CodeStrokeSNOMED,
						},
					},
					Text: "Stroke",
				},
				ProbabilityDecimal: &probability,
				QualitativeRisk: &fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{
						{
							System: constvars.CodingSystemRiskProbability,
							Code:   riskLevel,
						},
					},
				},
			},
		},
		Note: []fhir_dto.Annotation{
			{Text: "Input features: " + DescribeFeatures(extraction.Features)},
		},
	}
}

func buildPredictResponse(patientID string, assessment *fhir_dto.RiskAssessment, basisCount int) *responses.PredictResponse {
	response := &responses.PredictResponse{
		Success:    true,
		PatientID:  patientID,
		RiskID:     assessment.ID,
		BasisCount: basisCount,
	}
	if len(assessment.Prediction) > 0 {
		if assessment.Prediction[0].ProbabilityDecimal != nil {
			response.Probability = *assessment.Prediction[0].ProbabilityDecimal
		}
		if qualitative := assessment.Prediction[0].QualitativeRisk; qualitative != nil && len(qualitative.Coding) > 0 {
			response.QualitativeRisk = qualitative.Coding[0].Code
		}
	}
	return response
}

// RiskBand maps a probability onto the qualitative risk labels.
func RiskBand(probability float64) string {
	switch {
	case probability >= 0.7:
		return constvars.RiskBandHigh
	case probability >= 0.4:
		return constvars.RiskBandModerate
	default:
		return constvars.RiskBandLow
	}
}
