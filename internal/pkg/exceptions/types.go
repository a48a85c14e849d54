package exceptions

import (
	"fmt"
	"strokewatch-service/internal/pkg/constvars"
)

var (
	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.FhirIssueCodeInvalid, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.FhirIssueCodeInvalid, constvars.ErrClientUploadInvalid, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotParseCSV = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.FhirIssueCodeInvalid, constvars.ErrClientUploadInvalid, constvars.ErrDevCannotParseCSV)
	}

	// Resources
	ErrResourceNotFound = func(resourceType, resourceID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.FhirIssueCodeNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevResourceNotFound, resourceType, resourceID))
	}
	ErrNothingToDelete = func(resourceType, resourceID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.FhirIssueCodeNotFound, constvars.ErrClientNothingToDelete, fmt.Sprintf(constvars.ErrDevResourceNotFound, resourceType, resourceID))
	}
	ErrResourceTypeNotSupported = func(resourceType string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusNotFound, constvars.FhirIssueCodeNotSupported, constvars.ErrClientResourceTypeNotSupported, fmt.Sprintf(constvars.ErrDevResourceTypeUnknown, resourceType))
	}
	ErrResourceAlreadyExists = func(resourceType, resourceID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.FhirIssueCodeInvalid, constvars.ErrClientResourceAlreadyExists, fmt.Sprintf(constvars.ErrDevResourceAlreadyExists, resourceType, resourceID))
	}
	ErrResourceValidation = func(issues []Issue) *CustomError {
		customErr := BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.FhirIssueCodeInvalid, constvars.ErrClientResourceValidationFailed, constvars.ErrDevValidationFailed)
		customErr.Issues = issues
		return customErr
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCountDocuments)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrementValue)
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}

	// Model service (non-network failures surface as 503; connection failures
	// never reach the caller, the prediction pipeline falls back instead).
	ErrModelServiceStatus = func(statusCode int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusServiceUnavailable, constvars.FhirIssueCodeException, constvars.ErrClientModelServiceFailed, fmt.Sprintf(constvars.ErrDevModelServiceStatus, statusCode))
	}
	ErrModelServiceDecode = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.FhirIssueCodeException, constvars.ErrClientModelServiceFailed, constvars.ErrDevModelServiceDecode)
	}
	ErrModelServiceProbability = func(probability float64) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusServiceUnavailable, constvars.FhirIssueCodeException, constvars.ErrClientModelServiceFailed, fmt.Sprintf(constvars.ErrDevModelServiceProbability, probability))
	}

	// Rate limiting
	ErrTooManyPredictions = func(retryAfterSecs int) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.FhirIssueCodeException, constvars.ErrClientTooManyPredictions, fmt.Sprintf("prediction rate limit exceeded, retry after %d seconds", retryAfterSecs))
	}

	// Default Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.FhirIssueCodeException, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.FhirIssueCodeException, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
