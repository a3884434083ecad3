package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrClassifierUnavailable marks failures of the external scoring service.
// The façade does not retry; the caller decides.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// Classifier is the trained-model collaborator: it declares the feature
// schema it was fitted against and scores a vector of that length,
// returning the probability of the positive class in [0,1].
type Classifier interface {
	FeatureNames(ctx context.Context) ([]string, error)
	PredictProba(ctx context.Context, features []float64) (float64, error)
}

// HTTPClassifier talks to the model scoring service over JSON/HTTP.
type HTTPClassifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClassifier creates a client for the scoring service at baseURL.
func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FeatureNames fetches the ordered feature slot names the model expects.
func (c *HTTPClassifier) FeatureNames(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schema", nil)
	if err != nil {
		return nil, err
	}
	var body struct {
		FeatureNames []string `json:"feature_names"`
	}
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	if len(body.FeatureNames) == 0 {
		return nil, fmt.Errorf("%w: empty feature schema", ErrClassifierUnavailable)
	}
	return body.FeatureNames, nil
}

// PredictProba scores one feature vector.
func (c *HTTPClassifier) PredictProba(ctx context.Context, features []float64) (float64, error) {
	payload, err := json.Marshal(map[string]any{"features": features})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict-proba", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body struct {
		Probability float64 `json:"probability"`
	}
	if err := c.do(req, &body); err != nil {
		return 0, err
	}
	return body.Probability, nil
}

func (c *HTTPClassifier) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrClassifierUnavailable, resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrClassifierUnavailable, err)
	}
	return nil
}
