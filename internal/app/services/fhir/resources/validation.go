package resources

import (
	"errors"
	"fmt"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// Shadow structs carry only the fields the server validates. Everything else
// in the document passes through untouched.

type referenceShadow struct {
	Reference string `json:"reference" validate:"omitempty,fhir_reference"`
}

type codingShadow struct {
	Code string `json:"code"`
}

type codeableConceptShadow struct {
	Coding []codingShadow `json:"coding"`
	Text   string         `json:"text"`
}

type patientShadow struct {
	ResourceType string `json:"resourceType" validate:"required,eq=Patient"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female other unknown"`
}

type observationShadow struct {
	ResourceType string                 `json:"resourceType" validate:"required,eq=Observation"`
	Status       string                 `json:"status" validate:"required,oneof=registered preliminary final amended corrected cancelled entered-in-error unknown"`
	Code         *codeableConceptShadow `json:"code" validate:"required"`
	Subject      *referenceShadow       `json:"subject"`
}

type conditionShadow struct {
	ResourceType   string                 `json:"resourceType" validate:"required,eq=Condition"`
	Code           *codeableConceptShadow `json:"code" validate:"required"`
	ClinicalStatus *struct {
		Coding []struct {
			Code string `json:"code" validate:"omitempty,oneof=active recurrence relapse inactive remission resolved"`
		} `json:"coding" validate:"dive"`
	} `json:"clinicalStatus"`
	Subject *referenceShadow `json:"subject"`
}

type riskAssessmentShadow struct {
	ResourceType string           `json:"resourceType" validate:"required,eq=RiskAssessment"`
	Status       string           `json:"status" validate:"required,oneof=registered preliminary final amended corrected cancelled entered-in-error unknown"`
	Subject      *referenceShadow `json:"subject"`
	Prediction   []struct {
		ProbabilityDecimal *float64 `json:"probabilityDecimal"`
	} `json:"prediction"`
}

func validatePatient(doc map[string]interface{}) []exceptions.Issue {
	var shadow patientShadow
	return validateShadow(doc, &shadow)
}

func validateObservation(doc map[string]interface{}) []exceptions.Issue {
	var shadow observationShadow
	return validateShadow(doc, &shadow)
}

func validateCondition(doc map[string]interface{}) []exceptions.Issue {
	var shadow conditionShadow
	return validateShadow(doc, &shadow)
}

func validateRiskAssessment(doc map[string]interface{}) []exceptions.Issue {
	var shadow riskAssessmentShadow
	issues := validateShadow(doc, &shadow)
	for i, prediction := range shadow.Prediction {
		p := prediction.ProbabilityDecimal
		if p != nil && (*p < 0 || *p > 1) {
			issues = append(issues, exceptions.Issue{
				Severity:    constvars.FhirIssueSeverityError,
				Code:        constvars.FhirIssueCodeInvalid,
				Diagnostics: fmt.Sprintf("prediction[%d].probabilityDecimal must be between 0 and 1", i),
			})
		}
	}
	return issues
}

func validateShadow(doc map[string]interface{}, shadow interface{}) []exceptions.Issue {
	if err := utils.MapToStruct(doc, shadow); err != nil {
		return []exceptions.Issue{{
			Severity:    constvars.FhirIssueSeverityError,
			Code:        constvars.FhirIssueCodeInvalid,
			Diagnostics: "resource body has a malformed field: " + err.Error(),
		}}
	}

	err := utils.ValidateStruct(shadow)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []exceptions.Issue{{
			Severity:    constvars.FhirIssueSeverityError,
			Code:        constvars.FhirIssueCodeInvalid,
			Diagnostics: err.Error(),
		}}
	}

	issues := make([]exceptions.Issue, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		issues = append(issues, exceptions.Issue{
			Severity:    constvars.FhirIssueSeverityError,
			Code:        constvars.FhirIssueCodeInvalid,
			Diagnostics: describeFieldError(fieldErr),
		})
	}
	return issues
}

func describeFieldError(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("missing required field '%s'", field)
	case "eq":
		return fmt.Sprintf("field '%s' must be '%s'", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", field, fieldErr.Param())
	case "fhir_reference":
		return fmt.Sprintf("field '%s' is not a valid local reference (expected Type/id)", field)
	default:
		return fmt.Sprintf("field '%s' failed validation rule '%s'", field, fieldErr.Tag())
	}
}
