package constvars

const (
	MongoCollectionPatients        = "patients"
	MongoCollectionObservations    = "observations"
	MongoCollectionConditions      = "conditions"
	MongoCollectionRiskAssessments = "riskassessments"
)

const (
	PredictionDedupWindow        = 1 // hours
	PredictionDedupTolerance     = 0.001
	PredictionObservationScanCap = 200
)

const (
	RabbitMQEventQueueName = "strokewatch_events_queue"

	EventRiskAssessmentCreated = "riskassessment.created"
	EventImportCompleted       = "import.completed"
)

const (
	PredictRateLimiterGroup = "predict"
)

const (
	ResponseUnknown = "unknown"
)
