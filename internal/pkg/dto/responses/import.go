package responses

type ImportResponse struct {
	Success      bool     `json:"success"`
	Patients     int      `json:"patients"`
	Observations int      `json:"observations"`
	Conditions   int      `json:"conditions"`
	Errors       []string `json:"errors,omitempty"`
}
