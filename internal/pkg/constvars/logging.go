package constvars

const (
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingStatusKey     = "status"
	LoggingDurationKey   = "duration"
	LoggingResourceKey   = "resource_type"
	LoggingResourceIDKey = "resource_id"
	LoggingPatientIDKey  = "patient_id"
	LoggingEventKey      = "event"
)
