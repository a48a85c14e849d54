package requests

// PredictRequest is the optional body of POST /predict/{patientID}. Features
// given here override the ones derived from the patient's stored records.
type PredictRequest struct {
	Features map[string]interface{} `json:"features"`
}
