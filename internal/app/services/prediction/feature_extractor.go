package prediction

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/fhir_dto"
	"strokewatch-service/internal/pkg/utils"
)

var everMarriedCodes = map[string]bool{
	constvars.MaritalStatusMarried:          true,
	constvars.MaritalStatusWidowed:          true,
	constvars.MaritalStatusDivorced:         true,
	constvars.MaritalStatusLegallySeparated: true,
	constvars.MaritalStatusAnnulled:         true,
}

var everMarriedWords = []string{"married", "widowed", "divorced", "separated", "annulled"}

var hypertensionCodes = map[string]bool{
	constvars.CodeHypertensionSNOMED: true,
	constvars.CodeHypertensionICD10:  true,
}

var heartDiseaseCodes = map[string]bool{
	constvars.CodeHeartDiseaseSNOMED: true,
	constvars.CodeHeartDiseaseICD10:  true,
}

type featureExtractor struct {
	ResourceRepository contracts.ResourceRepository
	now                func() time.Time
}

func NewFeatureExtractor(resourceRepository contracts.ResourceRepository) contracts.FeatureExtractor {
	return &featureExtractor{
		ResourceRepository: resourceRepository,
		now:                time.Now,
	}
}

// Extract derives the flat feature map the scoring model expects from the
// patient's stored records, then merges caller overrides on top. Missing
// optional values stay absent rather than zero-filled.
func (e *featureExtractor) Extract(ctx context.Context, patientID string, overrides map[string]interface{}) (*contracts.ExtractionResult, error) {
	patientDoc, err := e.ResourceRepository.FindByID(ctx, constvars.ResourcePatient, patientID)
	if err != nil {
		return nil, err
	}
	if patientDoc == nil {
		return nil, exceptions.ErrResourceNotFound(constvars.ResourcePatient, patientID)
	}

	var patient fhir_dto.Patient
	if err := utils.MapToStruct(patientDoc, &patient); err != nil {
		return nil, exceptions.ErrServerProcess(err)
	}

	features := make(map[string]interface{})
	basis := []string{constvars.ResourcePatient + "/" + patientID}

	if len(patient.BirthDate) >= 4 {
		if birthYear, err := strconv.Atoi(patient.BirthDate[:4]); err == nil {
			features["age"] = e.now().UTC().Year() - birthYear
		}
	}

	if patient.Gender != "" {
		features["gender"] = strings.ToLower(patient.Gender)
	}

	if patient.MaritalStatus != nil {
		features["ever_married"] = boolToFeature(isEverMarried(patient.MaritalStatus))
	}

	if len(patient.Address) > 0 {
		urban := false
		for _, address := range patient.Address {
			if address.City != "" {
				urban = true
				break
			}
		}
		// The model collaborator expects this exact key spelling.
		features["Residence_type"] = boolToFeature(urban)
	}

	subjectRef := constvars.ResourcePatient + "/" + patientID

	conditionBasis, err := e.applyConditionFeatures(ctx, subjectRef, features)
	if err != nil {
		return nil, err
	}
	basis = append(basis, conditionBasis...)

	observationBasis, err := e.applyObservationFeatures(ctx, subjectRef, features)
	if err != nil {
		return nil, err
	}
	basis = append(basis, observationBasis...)

	for key, value := range overrides {
		features[key] = value
	}

	return &contracts.ExtractionResult{Features: features, Basis: basis}, nil
}

func (e *featureExtractor) applyConditionFeatures(ctx context.Context, subjectRef string, features map[string]interface{}) ([]string, error) {
	features["hypertension"] = 0
	features["heart_disease"] = 0

	docs, _, err := e.ResourceRepository.Search(ctx, constvars.ResourceCondition, &contracts.SearchQuery{
		Filter: map[string]interface{}{"subject.reference": subjectRef},
		Limit:  constvars.MaxSearchPageSize,
	})
	if err != nil {
		return nil, err
	}

	var basis []string
	for _, doc := range docs {
		var condition fhir_dto.Condition
		if err := utils.MapToStruct(doc, &condition); err != nil || condition.Code == nil {
			continue
		}
		for _, coding := range condition.Code.Coding {
			if hypertensionCodes[coding.Code] {
				features["hypertension"] = 1
				basis = append(basis, constvars.ResourceCondition+"/"+condition.ID)
				break
			}
			if heartDiseaseCodes[coding.Code] {
				features["heart_disease"] = 1
				basis = append(basis, constvars.ResourceCondition+"/"+condition.ID)
				break
			}
		}
	}
	return basis, nil
}

func (e *featureExtractor) applyObservationFeatures(ctx context.Context, subjectRef string, features map[string]interface{}) ([]string, error) {
	docs, _, err := e.ResourceRepository.Search(ctx, constvars.ResourceObservation, &contracts.SearchQuery{
		Filter:         map[string]interface{}{"subject.reference": subjectRef},
		SortField:      "effectiveDateTime",
		SortDescending: true,
		Limit:          constvars.PredictionObservationScanCap,
	})
	if err != nil {
		return nil, err
	}

	var basis []string
	for _, doc := range docs {
		var observation fhir_dto.Observation
		if err := utils.MapToStruct(doc, &observation); err != nil || observation.Code == nil {
			continue
		}
		for _, coding := range observation.Code.Coding {
			switch coding.Code {
			case constvars.CodeBMILOINC:
				if _, seen := features["bmi"]; !seen && observation.ValueQuantity != nil {
					features["bmi"] = observation.ValueQuantity.Value
					basis = append(basis, constvars.ResourceObservation+"/"+observation.ID)
				}
			case constvars.CodeGlucoseLOINC:
				if _, seen := features["avg_glucose_level"]; !seen && observation.ValueQuantity != nil {
					features["avg_glucose_level"] = observation.ValueQuantity.Value
					basis = append(basis, constvars.ResourceObservation+"/"+observation.ID)
				}
			case constvars.CodeSmokingStatusLOINC:
				if _, seen := features["smoking_status"]; !seen {
					if value := smokingStatusValue(&observation); value != "" {
						features["smoking_status"] = value
						basis = append(basis, constvars.ResourceObservation+"/"+observation.ID)
					}
				}
			}
		}
	}
	return basis, nil
}

func isEverMarried(maritalStatus *fhir_dto.CodeableConcept) bool {
	for _, coding := range maritalStatus.Coding {
		if everMarriedCodes[coding.Code] {
			return true
		}
	}
	lowered := strings.ToLower(maritalStatus.Text)
	for _, word := range everMarriedWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

func smokingStatusValue(observation *fhir_dto.Observation) string {
	if observation.ValueString != "" {
		return observation.ValueString
	}
	if observation.ValueCodeableConcept != nil {
		return observation.ValueCodeableConcept.Text
	}
	return ""
}

func boolToFeature(v bool) int {
	if v {
		return 1
	}
	return 0
}

// DescribeFeatures renders the feature map as a stable, readable summary for
// the RiskAssessment note.
func DescribeFeatures(features map[string]interface{}) string {
	keys := make([]string, 0, len(features))
	for key := range features {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		var rendered string
		switch typed := features[key].(type) {
		case string:
			rendered = typed
		case int:
			rendered = strconv.Itoa(typed)
		case float64:
			rendered = strconv.FormatFloat(typed, 'f', -1, 64)
		default:
			rendered = fmt.Sprintf("%v", typed)
		}
		parts = append(parts, key+"="+rendered)
	}
	return strings.Join(parts, ", ")
}
