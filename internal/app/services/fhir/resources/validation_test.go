package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePatient(t *testing.T) {
	t.Run("valid patient has no issues", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Patient",
			"gender":       "female",
		}
		assert.Empty(t, validatePatient(doc))
	})

	t.Run("resource type mismatch is invalid", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Observation",
		}
		issues := validatePatient(doc)
		assert.Len(t, issues, 1)
		assert.Equal(t, "invalid", issues[0].Code)
	})

	t.Run("gender outside the enum is invalid", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Patient",
			"gender":       "woman",
		}
		issues := validatePatient(doc)
		assert.Len(t, issues, 1)
		assert.Contains(t, issues[0].Diagnostics, "must be one of")
	})
}

func TestValidateObservation(t *testing.T) {
	t.Run("all violations are collected", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Patient",
			"status":       "bogus",
			"subject":      map[string]interface{}{"reference": "not-a-reference"},
		}
		issues := validateObservation(doc)
		// resourceType mismatch, bad status, missing code, malformed reference.
		assert.Len(t, issues, 4)
	})

	t.Run("missing status and code are reported", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Observation",
		}
		issues := validateObservation(doc)
		assert.Len(t, issues, 2)
	})

	t.Run("valid observation passes", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Observation",
			"status":       "final",
			"code": map[string]interface{}{
				"coding": []interface{}{
					map[string]interface{}{"system": "http://loinc.org", "code": "2339-0"},
				},
			},
			"subject": map[string]interface{}{"reference": "Patient/p-1"},
		}
		assert.Empty(t, validateObservation(doc))
	})
}

func TestValidateCondition(t *testing.T) {
	t.Run("clinical status enum is enforced", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "Condition",
			"code": map[string]interface{}{
				"coding": []interface{}{
					map[string]interface{}{"code": "38341003"},
				},
			},
			"clinicalStatus": map[string]interface{}{
				"coding": []interface{}{
					map[string]interface{}{"code": "ongoing"},
				},
			},
		}
		issues := validateCondition(doc)
		assert.Len(t, issues, 1)
		assert.Contains(t, issues[0].Diagnostics, "must be one of")
	})

	t.Run("missing code is reported", func(t *testing.T) {
		doc := map[string]interface{}{"resourceType": "Condition"}
		issues := validateCondition(doc)
		assert.Len(t, issues, 1)
	})
}

func TestValidateRiskAssessment(t *testing.T) {
	t.Run("probability outside the unit interval is invalid", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "RiskAssessment",
			"status":       "final",
			"prediction": []interface{}{
				map[string]interface{}{"probabilityDecimal": 1.2},
			},
		}
		issues := validateRiskAssessment(doc)
		assert.Len(t, issues, 1)
		assert.Contains(t, issues[0].Diagnostics, "probabilityDecimal")
	})

	t.Run("boundary probabilities are accepted", func(t *testing.T) {
		for _, p := range []float64{0, 0.5, 1} {
			doc := map[string]interface{}{
				"resourceType": "RiskAssessment",
				"status":       "final",
				"prediction": []interface{}{
					map[string]interface{}{"probabilityDecimal": p},
				},
			}
			assert.Empty(t, validateRiskAssessment(doc))
		}
	})

	t.Run("malformed subject reference is reported", func(t *testing.T) {
		doc := map[string]interface{}{
			"resourceType": "RiskAssessment",
			"status":       "final",
			"subject":      map[string]interface{}{"reference": "patient p-1"},
		}
		issues := validateRiskAssessment(doc)
		assert.Len(t, issues, 1)
		assert.Contains(t, issues[0].Diagnostics, "reference")
	})
}
