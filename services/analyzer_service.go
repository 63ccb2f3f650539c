package services

import (
	"context"
	"fmt"
	"log/slog"

	"feedwatch/analysis"
	"feedwatch/contract"
	"feedwatch/domain"
	"feedwatch/governor"
	"feedwatch/normalize"
	"feedwatch/vision"
)

// Ensure *AnalyzerService implements the contract.ItemAnalyzer interface at
// compile time, so the batch ranker can depend on the contract alone.
var _ contract.ItemAnalyzer = (*AnalyzerService)(nil)

// AnalyzerService runs the per-item pipeline: normalize, rule-match, consult
// the toxicity model under the rate budget, fold in vision findings, and
// aggregate. It holds no mutable state; concurrent Analyze calls share only
// the read-only rule corpus and the governor's budget.
type AnalyzerService struct {
	normalizer *normalize.Normalizer
	rules      contract.Producer
	model      contract.Producer
	governor   *governor.Governor
	aggregator analysis.Aggregator
	log        *slog.Logger
}

// NewAnalyzerService wires the pipeline. The model producer and the governor
// are optional: without a model the engine is rule-only, without a governor
// model calls are ungated.
func NewAnalyzerService(
	rules contract.Producer,
	model contract.Producer,
	gov *governor.Governor,
	aggregator analysis.Aggregator,
	log *slog.Logger,
) *AnalyzerService {
	return &AnalyzerService{
		normalizer: normalize.NewNormalizer(),
		rules:      rules,
		model:      model,
		governor:   gov,
		aggregator: aggregator,
		log:        log,
	}
}

// Analyze always returns a Verdict: per-item failures of any kind degrade to
// a SAFE verdict with a warning annotation and never abort the caller's
// batch.
func (s *AnalyzerService) Analyze(ctx context.Context, item domain.ContentItem, findings *domain.VisionFindings) (verdict domain.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Analysis panicked", "item", item.ID, "panic", r)
			verdict = domain.Verdict{
				Label:       domain.Safe,
				Score:       0,
				Explanation: domain.WarningItemRecovered,
				Warnings:    []string{domain.WarningItemRecovered},
			}
		}
	}()

	text := s.normalizer.Normalize(item.Text)

	var (
		subs     []domain.SubScore
		warnings []string
	)

	subs, warnings = s.produce(ctx, s.rules, text, subs, warnings)

	if s.model != nil && text.Text != "" {
		if s.governor == nil || s.governor.Acquire() {
			subs, warnings = s.produce(ctx, s.model, text, subs, warnings)
		} else {
			s.log.Debug("Model call skipped", "item", item.ID)
			warnings = append(warnings, domain.WarningRateExhausted)
		}
	}

	if findings != nil {
		subs = append(subs, vision.ToSubScore(*findings))

		// Text embedded in an image is checked against the rule corpus
		// independently of the vision model's own judgment; the two layers
		// may disagree and both opinions reach the aggregator.
		if findings.ExtractedText != "" {
			embedded := s.normalizer.Normalize(findings.ExtractedText)
			subs, warnings = s.produce(ctx, s.rules, embedded, subs, warnings)
		}
	}

	return s.aggregator.Aggregate(subs, warnings)
}

func (s *AnalyzerService) produce(
	ctx context.Context,
	producer contract.Producer,
	text domain.NormalizedText,
	subs []domain.SubScore,
	warnings []string,
) ([]domain.SubScore, []string) {
	sub, err := producer.Produce(ctx, text)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s unavailable: %v", contract.GetProducerName(producer), err))
		return subs, warnings
	}
	if sub != nil {
		subs = append(subs, *sub)
	}
	return subs, warnings
}
