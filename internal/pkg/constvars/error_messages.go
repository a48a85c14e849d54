package constvars

// Client-facing messages.
const (
	ErrClientCannotProcessRequest          = "Cannot process your request"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application, please contact the administrator"
	ErrClientResourceNotFound              = "The requested resource does not exist"
	ErrClientNothingToDelete               = "Nothing to delete, the resource does not exist"
	ErrClientResourceTypeNotSupported      = "Resource type is not supported by this server"
	ErrClientResourceValidationFailed      = "Resource validation failed"
	ErrClientResourceAlreadyExists         = "A resource with this id already exists"
	ErrClientModelServiceFailed            = "Risk scoring service returned an unusable response"
	ErrClientServerLongRespond             = "Server takes too long to respond"
	ErrClientUploadInvalid                 = "Uploaded file cannot be processed"
	ErrClientTooManyPredictions            = "Too many prediction requests for this patient, try again later"
)

// Developer-facing messages.
const (
	ErrDevValidationFailed           = "Validation failed"
	ErrDevCannotParseJSON            = "Failed to parse JSON request body"
	ErrDevCannotMarshalJSON          = "Failed to marshal data into JSON"
	ErrDevCannotParseMultipartForm   = "Failed to parse multipart form"
	ErrDevCannotParseCSV             = "Failed to parse CSV content"
	ErrDevDBFailedToFindDocument     = "Database failed to find document"
	ErrDevDBFailedToInsertDocument   = "Database failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "Database failed to update document"
	ErrDevDBFailedToDeleteDocument   = "Database failed to delete document"
	ErrDevDBFailedToCountDocuments   = "Database failed to count documents"
	ErrDevDBFailedToIterateDocuments = "Database failed to iterate documents"
	ErrDevResourceNotFound           = "Resource not found: %s/%s"
	ErrDevResourceTypeUnknown        = "Unknown resource type: %s"
	ErrDevResourceAlreadyExists      = "Resource already exists: %s/%s"
	ErrDevRedisGetData               = "Redis failed to get data"
	ErrDevRedisSetData               = "Redis failed to set data"
	ErrDevRedisDeleteData            = "Redis failed to delete data"
	ErrDevRedisIncrementValue        = "Redis failed to increment value"
	ErrDevCreateHTTPRequest          = "Failed to create HTTP request"
	ErrDevSendHTTPRequest            = "Failed to send HTTP request"
	ErrDevModelServiceStatus         = "Model service responded with status %d"
	ErrDevModelServiceDecode         = "Failed to decode model service response"
	ErrDevModelServiceProbability    = "Model service probability out of range: %f"
	ErrDevServerDeadlineExceeded     = "Server deadline exceeded"
	ErrDevServerProcess              = "Error while server processing the request"
	ErrDevUnknown                    = "unknown"
)
