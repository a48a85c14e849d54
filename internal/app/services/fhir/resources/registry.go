package resources

import (
	"net/url"
	"regexp"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Descriptor holds everything type-specific about a supported resource, so the
// repository, usecase and controller stay generic.
type Descriptor struct {
	Name         string
	Collection   string
	SearchParams []string
	// Translate maps recognized query params into a store filter. Unrecognized
	// params are ignored.
	Translate func(params url.Values) map[string]interface{}
	// DateSortField is the field used by _sort=date; empty means the type does
	// not support date sorting.
	DateSortField string
	Validate      func(doc map[string]interface{}) []exceptions.Issue
}

var registry = map[string]*Descriptor{
	constvars.ResourcePatient: {
		Name:       constvars.ResourcePatient,
		Collection: constvars.MongoCollectionPatients,
		SearchParams: []string{
			constvars.SearchParamGender,
			constvars.SearchParamBirthdate,
			constvars.SearchParamName,
			constvars.SearchParamIdentifier,
			constvars.SearchParamID,
		},
		Translate: translatePatientSearch,
		Validate:  validatePatient,
	},
	constvars.ResourceObservation: {
		Name:       constvars.ResourceObservation,
		Collection: constvars.MongoCollectionObservations,
		SearchParams: []string{
			constvars.SearchParamPatient,
			constvars.SearchParamSubject,
			constvars.SearchParamCode,
			constvars.SearchParamCategory,
			constvars.SearchParamStatus,
			constvars.SearchParamID,
		},
		Translate:     translateObservationSearch,
		DateSortField: "effectiveDateTime",
		Validate:      validateObservation,
	},
	constvars.ResourceCondition: {
		Name:       constvars.ResourceCondition,
		Collection: constvars.MongoCollectionConditions,
		SearchParams: []string{
			constvars.SearchParamPatient,
			constvars.SearchParamSubject,
			constvars.SearchParamClinicalStatus,
			constvars.SearchParamID,
		},
		Translate: translateConditionSearch,
		Validate:  validateCondition,
	},
	constvars.ResourceRiskAssessment: {
		Name:       constvars.ResourceRiskAssessment,
		Collection: constvars.MongoCollectionRiskAssessments,
		SearchParams: []string{
			constvars.SearchParamPatient,
			constvars.SearchParamSubject,
			constvars.SearchParamStatus,
			constvars.SearchParamID,
		},
		Translate: translateRiskAssessmentSearch,
		Validate:  validateRiskAssessment,
	},
}

// LookupDescriptor returns nil for resource types this server does not serve.
func LookupDescriptor(resourceType string) *Descriptor {
	return registry[resourceType]
}

func SupportedDescriptors() []*Descriptor {
	return []*Descriptor{
		registry[constvars.ResourcePatient],
		registry[constvars.ResourceObservation],
		registry[constvars.ResourceCondition],
		registry[constvars.ResourceRiskAssessment],
	}
}

func translatePatientSearch(params url.Values) map[string]interface{} {
	filter := map[string]interface{}{}
	if v := params.Get(constvars.SearchParamGender); v != "" {
		filter["gender"] = v
	}
	if v := params.Get(constvars.SearchParamBirthdate); v != "" {
		filter["birthDate"] = v
	}
	if v := params.Get(constvars.SearchParamName); v != "" {
		filter["name.given"] = primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
	}
	if v := params.Get(constvars.SearchParamIdentifier); v != "" {
		filter["identifier.value"] = v
	}
	if v := params.Get(constvars.SearchParamID); v != "" {
		filter["id"] = v
	}
	return filter
}

func translateObservationSearch(params url.Values) map[string]interface{} {
	filter := map[string]interface{}{}
	applySubjectFilter(filter, params)
	if v := params.Get(constvars.SearchParamCode); v != "" {
		filter["code.coding.0.code"] = v
	}
	if v := params.Get(constvars.SearchParamCategory); v != "" {
		filter["category.0.coding.0.code"] = v
	}
	if v := params.Get(constvars.SearchParamStatus); v != "" {
		filter["status"] = v
	}
	if v := params.Get(constvars.SearchParamID); v != "" {
		filter["id"] = v
	}
	return filter
}

func translateConditionSearch(params url.Values) map[string]interface{} {
	filter := map[string]interface{}{}
	applySubjectFilter(filter, params)
	if v := params.Get(constvars.SearchParamClinicalStatus); v != "" {
		filter["clinicalStatus.coding.0.code"] = v
	}
	if v := params.Get(constvars.SearchParamID); v != "" {
		filter["id"] = v
	}
	return filter
}

func translateRiskAssessmentSearch(params url.Values) map[string]interface{} {
	filter := map[string]interface{}{}
	applySubjectFilter(filter, params)
	if v := params.Get(constvars.SearchParamStatus); v != "" {
		filter["status"] = v
	}
	if v := params.Get(constvars.SearchParamID); v != "" {
		filter["id"] = v
	}
	return filter
}

// applySubjectFilter handles the patient/subject pair: `patient` is shorthand
// that expands to a Patient reference, `subject` is taken verbatim. When both
// are present, `subject` wins.
func applySubjectFilter(filter map[string]interface{}, params url.Values) {
	if v := params.Get(constvars.SearchParamPatient); v != "" {
		filter["subject.reference"] = constvars.ResourcePatient + "/" + v
	}
	if v := params.Get(constvars.SearchParamSubject); v != "" {
		filter["subject.reference"] = v
	}
}
