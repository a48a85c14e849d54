package prediction

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"strokewatch-service/internal/app/contracts"
	"strokewatch-service/internal/pkg/constvars"
	"strokewatch-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type modelPredictRequest struct {
	Features map[string]interface{} `json:"features"`
}

type modelPredictResponse struct {
	Probability *float64 `json:"probability"`
	Model       string   `json:"model"`
	RiskLevel   string   `json:"risk_level"`
}

type modelClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewModelClient(baseURL string, timeout time.Duration) contracts.ModelClient {
	return &modelClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Predict calls the external scoring service. A transport-level failure is
// wrapped in contracts.ErrModelServiceUnreachable so the caller can fall back;
// any other unusable answer surfaces as a service error.
func (c *modelClient) Predict(ctx context.Context, features map[string]interface{}) (*contracts.ScoreResult, error) {
	payload, err := json.Marshal(modelPredictRequest{Features: features})
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	request, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	request.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrModelServiceUnreachable, err)
	}
	defer response.Body.Close()

	if response.StatusCode != constvars.StatusOK {
		return nil, exceptions.ErrModelServiceStatus(response.StatusCode)
	}

	var decoded modelPredictResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, exceptions.ErrModelServiceDecode(err)
	}
	if decoded.Probability == nil {
		return nil, exceptions.ErrModelServiceDecode(fmt.Errorf("missing probability field"))
	}
	if *decoded.Probability < 0 || *decoded.Probability > 1 {
		return nil, exceptions.ErrModelServiceProbability(*decoded.Probability)
	}

	model := decoded.Model
	if model == "" {
		model = constvars.ResponseUnknown
	}

	return &contracts.ScoreResult{
		Probability: *decoded.Probability,
		Model:       model,
		RiskLevel:   decoded.RiskLevel,
	}, nil
}
