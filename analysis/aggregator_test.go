package analysis

import (
	"fmt"
	"testing"

	"feedwatch/domain"

	"github.com/stretchr/testify/require"
)

func sub(source domain.ScoreSource, score int, evidence ...string) domain.SubScore {
	return domain.SubScore{
		Source:   source,
		Score:    score,
		Label:    domain.LabelForScore(score),
		Evidence: evidence,
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	req := require.New(t)
	agg := NewAggregator(5)

	tests := []struct {
		name            string
		subs            []domain.SubScore
		wantLabel       domain.Label
		wantScore       int
		wantExplanation string
	}{
		{
			name:            "Zero sub-scores yield SAFE zero",
			subs:            nil,
			wantLabel:       domain.Safe,
			wantScore:       0,
			wantExplanation: "no signal available",
		},
		{
			name: "Single safe signal",
			subs: []domain.SubScore{
				sub(domain.RuleSource, 0),
			},
			wantLabel:       domain.Safe,
			wantScore:       0,
			wantExplanation: "no risk indicators matched",
		},
		{
			name: "A single severe signal wins over several mild ones",
			subs: []domain.SubScore{
				sub(domain.RuleSource, 0),
				sub(domain.ModelSource, 12, "model label \"neutral\""),
				sub(domain.VisionSource, 92, "burning flag"),
			},
			wantLabel:       domain.Flagged,
			wantScore:       92,
			wantExplanation: "burning flag",
		},
		{
			name: "Ties on label take the maximum score",
			subs: []domain.SubScore{
				sub(domain.RuleSource, 90, "destroy everything"),
				sub(domain.VisionSource, 80, "hostile banner"),
			},
			wantLabel:       domain.Flagged,
			wantScore:       90,
			wantExplanation: "destroy everything; hostile banner",
		},
		{
			name: "Score of the winning label, not the highest overall",
			subs: []domain.SubScore{
				sub(domain.RuleSource, 60, "dubious claim"),
				sub(domain.ModelSource, 35, "model label \"insult\""),
			},
			wantLabel:       domain.Suspicious,
			wantScore:       60,
			wantExplanation: "dubious claim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := agg.Aggregate(tt.subs, nil)
			req.Equal(tt.wantLabel, verdict.Label)
			req.Equal(tt.wantScore, verdict.Score)
			req.Equal(tt.wantExplanation, verdict.Explanation)
			req.Equal(tt.subs, verdict.SubScores)
		})
	}
}

// Most-severe-wins: the verdict label is never less severe than any
// contributing sub-score's label, for any combination.
func TestAggregator_MostSevereWins(t *testing.T) {
	req := require.New(t)
	agg := NewAggregator(5)
	scores := []int{0, 40, 75}

	for _, a := range scores {
		for _, b := range scores {
			for _, c := range scores {
				subs := []domain.SubScore{
					sub(domain.RuleSource, a),
					sub(domain.ModelSource, b),
					sub(domain.VisionSource, c),
				}
				verdict := agg.Aggregate(subs, nil)
				for _, s := range subs {
					req.GreaterOrEqual(
						verdict.Label.Severity(), s.Label.Severity(),
						"subs %d/%d/%d", a, b, c,
					)
				}
			}
		}
	}
}

func TestAggregator_ExplanationIsBounded(t *testing.T) {
	req := require.New(t)
	agg := NewAggregator(3)

	evidence := make([]string, 10)
	for i := range evidence {
		evidence[i] = fmt.Sprintf("phrase-%02d", i)
	}
	verdict := agg.Aggregate([]domain.SubScore{
		{Source: domain.RuleSource, Score: 90, Label: domain.Flagged, Evidence: evidence},
	}, nil)

	req.Equal("phrase-00; phrase-01; phrase-02", verdict.Explanation)
}

func TestAggregator_WarningsCarryThrough(t *testing.T) {
	req := require.New(t)
	agg := NewAggregator(5)
	warnings := []string{domain.WarningRateExhausted}

	verdict := agg.Aggregate(nil, warnings)
	req.Equal(warnings, verdict.Warnings)
	req.True(verdict.PartiallyAnalyzed())

	verdict = agg.Aggregate([]domain.SubScore{sub(domain.RuleSource, 60, "x")}, warnings)
	req.Equal(warnings, verdict.Warnings)
	req.Equal(domain.Suspicious, verdict.Label)
}
