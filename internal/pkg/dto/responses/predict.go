package responses

type PredictResponse struct {
	Success         bool    `json:"success"`
	PatientID       string  `json:"patientId"`
	Probability     float64 `json:"probability"`
	QualitativeRisk string  `json:"qualitativeRisk"`
	RiskID          string  `json:"riskId"`
	BasisCount      int     `json:"basisCount"`
}
