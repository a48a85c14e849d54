package fhir_dto

type RiskAssessment struct {
	ResourceType       string                     `json:"resourceType,omitempty"`
	ID                 string                     `json:"id,omitempty"`
	Meta               *Meta                      `json:"meta,omitempty"`
	Status             string                     `json:"status,omitempty"`
	Method             *CodeableConcept           `json:"method,omitempty"`
	Subject            *Reference                 `json:"subject,omitempty"`
	OccurrenceDateTime string                     `json:"occurrenceDateTime,omitempty"`
	Basis              []Reference                `json:"basis,omitempty"`
	Prediction         []RiskAssessmentPrediction `json:"prediction,omitempty"`
	Note               []Annotation               `json:"note,omitempty"`
}

type RiskAssessmentPrediction struct {
	Outcome            *CodeableConcept `json:"outcome,omitempty"`
	ProbabilityDecimal *float64         `json:"probabilityDecimal,omitempty"`
	QualitativeRisk    *CodeableConcept `json:"qualitativeRisk,omitempty"`
}
