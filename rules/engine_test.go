package rules

import (
	"context"
	"testing"

	"feedwatch/domain"
	"feedwatch/errors"
	"feedwatch/normalize"

	"github.com/stretchr/testify/require"
)

func testCorpus() Corpus {
	return Corpus{
		Version: "test.1",
		Patterns: []Pattern{
			{Phrase: "burn it all down", Weight: 90, Category: CategoryDestructive},
			{Phrase: "snake oil", Weight: 60, Category: CategoryDerogatory},
			{Phrase: "worthless", Weight: 40, Category: CategoryDerogatory},
		},
	}
}

func produce(t *testing.T, e *Engine, text string) *domain.SubScore {
	t.Helper()
	sub, err := e.Produce(context.Background(), normalize.NewNormalizer().Normalize(text))
	require.NoError(t, err)
	return sub
}

func TestEngine_Produce(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(testCorpus())
	req.NoError(err)

	tests := []struct {
		name         string
		input        string
		wantScore    int
		wantLabel    domain.Label
		wantEvidence []string
	}{
		{
			name:      "No match yields zero and SAFE",
			input:     "a perfectly ordinary sentence",
			wantScore: 0,
			wantLabel: domain.Safe,
		},
		{
			name:         "Score is the maximum matched weight, never a sum",
			input:        "this snake oil is worthless, burn it all down",
			wantScore:    90,
			wantLabel:    domain.Flagged,
			wantEvidence: []string{"burn it all down", "snake oil", "worthless"},
		},
		{
			name:         "Middle weight maps to the middle tier",
			input:        "classic snake oil pitch",
			wantScore:    60,
			wantLabel:    domain.Suspicious,
			wantEvidence: []string{"snake oil"},
		},
		{
			name:         "Leet speak and noise do not hide a phrase",
			input:        "s.n.4.k.e o-1-l for sale",
			wantScore:    60,
			wantLabel:    domain.Suspicious,
			wantEvidence: []string{"snake oil"},
		},
		{
			name:         "Duplicate matches collapse into distinct evidence",
			input:        "snake oil, more snake oil",
			wantScore:    60,
			wantLabel:    domain.Suspicious,
			wantEvidence: []string{"snake oil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := produce(t, engine, tt.input)
			req.NotNil(sub)
			req.Equal(domain.RuleSource, sub.Source)
			req.Equal(tt.wantScore, sub.Score)
			req.Equal(tt.wantLabel, sub.Label)
			req.ElementsMatch(tt.wantEvidence, sub.Evidence)
			req.Equal("rule corpus test.1", sub.Method)
		})
	}
}

func TestEngine_EmptyInputProducesNoSubScore(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(testCorpus())
	req.NoError(err)

	req.Nil(produce(t, engine, ""))
	req.Nil(produce(t, engine, "   \n\t  "))
}

func TestEngine_Deterministic(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(testCorpus())
	req.NoError(err)

	input := "worthless snake oil, burn it all down twice"
	first := produce(t, engine, input)
	second := produce(t, engine, input)
	req.Equal(first, second)
}

func TestEngine_AnchoredPatterns(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(Corpus{
		Version: "test.2",
		Patterns: []Pattern{
			{Phrase: "useless", Weight: 60, Category: CategoryDerogatory, Anchors: []string{"acme corp"}},
		},
	})
	req.NoError(err)

	// The derogatory word alone does not fire without its subject anchor.
	sub := produce(t, engine, "this pen is useless")
	req.Equal(0, sub.Score)
	req.Empty(sub.Evidence)

	sub = produce(t, engine, "acme corp is useless")
	req.Equal(60, sub.Score)
	req.Equal([]string{"useless"}, sub.Evidence)
}

func TestEngine_DefaultCorpus(t *testing.T) {
	req := require.New(t)
	engine, err := NewEngine(DefaultCorpus())
	req.NoError(err)

	tests := []struct {
		name      string
		input     string
		wantScore int
		wantLabel domain.Label
	}{
		{"Benign multilingual praise", "India is great, भारत महान है", 0, domain.Safe},
		{"Destructive phrase", "we must destroy india now", 90, domain.Flagged},
		{"Destructive phrase in Devanagari", "भारत मुर्दाबाद लिखा था", 90, domain.Flagged},
		{"Derogatory word with subject anchor", "india is corrupt", 60, domain.Suspicious},
		{"Derogatory word without subject anchor", "this weather is corrupt", 0, domain.Safe},
		{"Affirmative phrase stays safe", "jai hind to everyone", 0, domain.Safe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := produce(t, engine, tt.input)
			req.NotNil(sub)
			req.Equal(tt.wantScore, sub.Score)
			req.Equal(tt.wantLabel, sub.Label)
		})
	}
}

func TestNewEngine_InvalidCorpus(t *testing.T) {
	req := require.New(t)

	_, err := NewEngine(Corpus{Version: "x"})
	req.ErrorIs(err, errors.ErrEmptyCorpus)

	_, err = NewEngine(Corpus{Version: "x", Patterns: []Pattern{{Phrase: "boom", Weight: 120}}})
	req.ErrorIs(err, errors.ErrInvalidWeight)
}
