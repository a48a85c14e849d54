package constvars

const (
	PredictSuccessMessage = "Prediction completed successfully"
	ImportSuccessMessage  = "Bulk import completed"
	HealthUpMessage       = "up"
)
