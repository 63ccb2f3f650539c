// Package analysis combines the available sub-scores of one content item into
// a single verdict under a deterministic precedence policy.
package analysis

import (
	"strings"

	"feedwatch/domain"

	"github.com/samber/lo"
)

const (
	defaultMaxEvidence = 5
	evidenceSeparator  = "; "

	noSignalExplanation = "no signal available"
	noMatchExplanation  = "no risk indicators matched"
)

// Aggregator resolves disagreement between analyzers toward caution: the most
// severe label always wins, regardless of how many milder signals exist.
// Missing real harmful content costs more than a false positive here.
type Aggregator struct {
	maxEvidence int
}

func NewAggregator(maxEvidence int) Aggregator {
	if maxEvidence <= 0 {
		maxEvidence = defaultMaxEvidence
	}
	return Aggregator{maxEvidence: maxEvidence}
}

// Aggregate folds 0..n sub-scores into one verdict. Zero sub-scores (empty
// input or every external call failed) yield a SAFE zero verdict; warnings
// accumulated along the pipeline are carried through untouched.
func (a Aggregator) Aggregate(subs []domain.SubScore, warnings []string) domain.Verdict {
	if len(subs) == 0 {
		return domain.Verdict{
			Label:       domain.Safe,
			Score:       0,
			Explanation: noSignalExplanation,
			Warnings:    warnings,
		}
	}

	winning := domain.Safe
	for _, s := range subs {
		winning = domain.MoreSevere(winning, s.Label)
	}

	// The score belongs to the winning label's sub-scores; ties on label take
	// the maximum score among them, never an average.
	score := 0
	var evidence []string
	for _, s := range subs {
		if s.Label != winning {
			continue
		}
		if s.Score > score {
			score = s.Score
		}
		evidence = append(evidence, s.Evidence...)
	}

	return domain.Verdict{
		Label:       winning,
		Score:       domain.ClampScore(score),
		SubScores:   subs,
		Explanation: a.explain(evidence),
		Warnings:    warnings,
	}
}

// explain composes the explanation deterministically from the winning
// evidence, bounded so texts matching many patterns cannot grow it without
// limit.
func (a Aggregator) explain(evidence []string) string {
	evidence = lo.Uniq(evidence)
	if len(evidence) == 0 {
		return noMatchExplanation
	}
	if len(evidence) > a.maxEvidence {
		evidence = evidence[:a.maxEvidence]
	}
	return strings.Join(evidence, evidenceSeparator)
}
