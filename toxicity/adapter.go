// Package toxicity adapts an external text-classification endpoint into the
// engine's sub-score shape. The model itself is a black box; the adapter only
// scales its probability and applies the fixed severity threshold table.
package toxicity

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"feedwatch/contract"
	"feedwatch/domain"
	"feedwatch/errors"
)

// Probability thresholds mapping the model's output onto severity tiers.
// Documented here, never inferred: p >= 0.75 is the highest tier, p >= 0.40
// the middle one, anything below is safe.
const (
	FlaggedProbability    = 0.75
	SuspiciousProbability = 0.40
)

type Adapter struct {
	classifier contract.Classifier
	timeout    time.Duration
	log        *slog.Logger
}

func NewAdapter(classifier contract.Classifier, timeout time.Duration, log *slog.Logger) *Adapter {
	return &Adapter{classifier: classifier, timeout: timeout, log: log}
}

// Produce implements contract.Producer. On any model failure (timeout
// included) it returns no SubScore rather than a fabricated one; the
// aggregator falls back to whatever other signals exist.
func (a *Adapter) Produce(ctx context.Context, text domain.NormalizedText) (*domain.SubScore, error) {
	if text.Text == "" {
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	pred, err := a.classifier.Classify(callCtx, text.Text)
	if err != nil {
		a.log.Warn("Toxicity model call failed", "error", err)
		return nil, fmt.Errorf("%w: %v", errors.ErrUpstreamUnavailable, err)
	}

	probability := clampProbability(pred.Probability)
	score := int(math.Round(probability * 100))

	return &domain.SubScore{
		Source:   domain.ModelSource,
		Score:    score,
		Label:    labelForProbability(probability),
		Evidence: []string{fmt.Sprintf("model label %q (p=%.2f)", pred.Label, probability)},
		Method:   "toxicity model",
	}, nil
}

func labelForProbability(p float64) domain.Label {
	switch {
	case p >= FlaggedProbability:
		return domain.Flagged
	case p >= SuspiciousProbability:
		return domain.Suspicious
	default:
		return domain.Safe
	}
}

func clampProbability(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
