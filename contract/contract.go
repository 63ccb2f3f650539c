//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"feedwatch/domain"
	"reflect"
)

// Producer is one analyzer's side of the pipeline: given normalized text it
// returns its independent risk opinion, or nil when it has no signal to offer
// (empty input, upstream failure). New analyzers plug into aggregation by
// implementing this interface only.
type Producer interface {
	Produce(ctx context.Context, text domain.NormalizedText) (*domain.SubScore, error)
}

// Prediction is the raw output of an external text-classification endpoint.
type Prediction struct {
	Label       string
	Probability float64
}

// Classifier is the toxicity model endpoint contract. Calls must be
// idempotent and side-effect-free; any failure is recoverable by the caller.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
}

// ItemAnalyzer runs the full per-item pipeline and always yields a Verdict.
type ItemAnalyzer interface {
	Analyze(ctx context.Context, item domain.ContentItem, findings *domain.VisionFindings) domain.Verdict
}

// GetProducerName uses reflection to retrieve the type name of a producer.
// Used for warning annotations and logs, avoiding manual naming in the
// Producer interface.
func GetProducerName(p Producer) string {
	if p == nil {
		return "NilProducer"
	}
	t := reflect.TypeOf(p)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
