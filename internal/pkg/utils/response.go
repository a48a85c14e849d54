package utils

import (
	"context"
	"errors"
	"net/http"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"
	"strokewatch-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// BuildFhirResponse writes a resource (or bundle) as FHIR JSON.
func BuildFhirResponse(w http.ResponseWriter, code int, resource interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resource)
}

func BuildSuccessResponse(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// BuildErrorResponse logs the developer detail and answers the caller with a
// FHIR OperationOutcome. A validation CustomError contributes one issue per
// violated rule; everything else becomes a single issue.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		err = exceptions.ErrServerDeadlineExceeded(err)
	}

	code := constvars.StatusInternalServerError
	issues := []fhir_dto.OperationOutcomeIssue{
		{
			Severity:    constvars.FhirIssueSeverityError,
			Code:        constvars.FhirIssueCodeException,
			Diagnostics: constvars.ErrClientSomethingWrongWithApplication,
		},
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		diagnostics := customErr.ClientMessage
		appEnvironment := GetEnvString("APP_ENV", "development")
		if appEnvironment != "production" {
			diagnostics = customErr.DevMessage
		}
		issues = []fhir_dto.OperationOutcomeIssue{
			{
				Severity:    constvars.FhirIssueSeverityError,
				Code:        customErr.IssueCode,
				Diagnostics: diagnostics,
			},
		}
		if len(customErr.Issues) > 0 {
			issues = issues[:0]
			for _, issue := range customErr.Issues {
				issues = append(issues, fhir_dto.OperationOutcomeIssue{
					Severity:    issue.Severity,
					Code:        issue.Code,
					Diagnostics: issue.Diagnostics,
				})
			}
		}
		log.Error(customErr.DevMessage,
			zap.Int("status_code", customErr.StatusCode),
			zap.String("file", customErr.Location.File),
			zap.Int("line", customErr.Location.Line),
			zap.String("function_name", customErr.Location.FunctionName),
		)
	} else {
		log.Error(err.Error())
	}

	outcome := fhir_dto.OperationOutcome{
		ResourceType: constvars.ResourceOperationOutcome,
		Issue:        issues,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(outcome)
}
