// Package rules matches normalized text against a versioned, weighted phrase
// corpus and turns the matches into a rule-based risk sub-score.
package rules

import (
	"context"
	"fmt"
	"sort"
	"unicode"

	"feedwatch/domain"
	"feedwatch/errors"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Engine is pure and deterministic: same text and same corpus version always
// yield the same score and evidence. It holds no mutable state after build.
type Engine struct {
	matcher *goahocorasick.Machine
	byNorm  map[string]Pattern
	version string
}

// NewEngine builds the Aho-Corasick automaton over the noise-stripped,
// leet-normalized form of every corpus phrase.
func NewEngine(corpus Corpus) (*Engine, error) {
	if len(corpus.Patterns) == 0 {
		return nil, errors.ErrEmptyCorpus
	}

	byNorm := make(map[string]Pattern, len(corpus.Patterns))
	for _, p := range corpus.Patterns {
		if p.Weight < 0 || p.Weight > 100 {
			return nil, fmt.Errorf("%w: %q has weight %d", errors.ErrInvalidWeight, p.Phrase, p.Weight)
		}
		norm := string(normalizeRunes([]rune(p.Phrase)))
		if norm == "" {
			continue
		}
		// Distinct phrases collapsing to the same normalized form keep the
		// heaviest weight.
		if existing, ok := byNorm[norm]; !ok || p.Weight > existing.Weight {
			byNorm[norm] = p
		}
	}
	if len(byNorm) == 0 {
		return nil, errors.ErrEmptyCorpus
	}

	keys := lo.Keys(byNorm)
	sort.Strings(keys)
	patterns := make([][]rune, len(keys))
	for i, k := range keys {
		patterns[i] = []rune(k)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Engine{matcher: m, byNorm: byNorm, version: corpus.Version}, nil
}

func (e *Engine) Version() string {
	return e.version
}

// Produce implements contract.Producer. Evidence accumulates over all matched
// patterns; the score is the maximum matched weight, never a sum, so one
// severe phrase is not diluted by mild ones and long texts gain nothing from
// length alone.
func (e *Engine) Produce(_ context.Context, text domain.NormalizedText) (*domain.SubScore, error) {
	if text.Text == "" {
		return nil, nil
	}

	norm := normalizeRunes([]rune(text.Text))
	if len(norm) == 0 {
		return nil, nil
	}

	var (
		score    int
		evidence []string
	)
	for _, span := range e.matcher.MultiPatternSearch(norm, false) {
		pattern, ok := e.byNorm[string(span.Word)]
		if !ok {
			continue
		}
		if !pattern.anchoredIn(norm) {
			continue
		}
		evidence = append(evidence, pattern.Phrase)
		if pattern.Weight > score {
			score = pattern.Weight
		}
	}

	return &domain.SubScore{
		Source:   domain.RuleSource,
		Score:    score,
		Label:    domain.LabelForScore(score),
		Evidence: lo.Uniq(evidence),
		Method:   fmt.Sprintf("rule corpus %s", e.version),
	}, nil
}

// normalizeRunes strips matching noise and folds leet-speak so that obfuscated
// phrases ("d.3.s.t.r.0.y") still hit their corpus pattern.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet-speak characters back to their standard
// alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
