package toxicity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"feedwatch/contract"

	"github.com/sethvargo/go-retry"
)

// HTTPClassifier calls a hosted inference endpoint that answers a
// text-classification request with per-label probabilities. Transient
// failures (429, 5xx) are retried with exponential backoff; everything else
// surfaces to the adapter, which degrades to rule-only analysis.
type HTTPClassifier struct {
	endpoint   string
	apiKey     string
	client     *http.Client
	baseDelay  time.Duration
	maxRetries uint64
	log        *slog.Logger
}

func NewHTTPClassifier(endpoint, apiKey string, timeout, baseDelay time.Duration, maxRetries uint64, log *slog.Logger) *HTTPClassifier {
	return &HTTPClassifier{
		endpoint:   endpoint,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
		baseDelay:  baseDelay,
		maxRetries: maxRetries,
		log:        log,
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (contract.Prediction, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return contract.Prediction{}, err
	}

	var labels []inferenceLabel
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			c.log.Warn("Inference endpoint busy", "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("endpoint returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&labels)
	})
	if err != nil {
		return contract.Prediction{}, err
	}
	if len(labels) == 0 {
		return contract.Prediction{}, fmt.Errorf("endpoint returned no labels")
	}

	best := labels[0]
	for _, l := range labels[1:] {
		if l.Score > best.Score {
			best = l
		}
	}
	return contract.Prediction{Label: best.Label, Probability: toxicityProbability(labels)}, nil
}

// toxicityProbability extracts p(toxic) from the label distribution. A model
// without an explicit toxic label contributes no risk.
func toxicityProbability(labels []inferenceLabel) float64 {
	for _, l := range labels {
		u := strings.ToUpper(l.Label)
		if strings.Contains(u, "TOXIC") && !strings.HasPrefix(u, "NON") {
			return l.Score
		}
	}
	return 0
}
