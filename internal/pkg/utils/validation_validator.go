package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Matches the FHIR local reference form `Type/id`.
var fhirReferenceRegex = regexp.MustCompile(`^[A-Z][A-Za-z]*/[A-Za-z0-9\-\.]{1,64}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("fhir_reference", validateFhirReference)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateFhirReference(fl validator.FieldLevel) bool {
	return fhirReferenceRegex.MatchString(fl.Field().String())
}
