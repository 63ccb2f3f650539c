package domain

type Label string

const (
	Safe       Label = "SAFE"
	Suspicious Label = "SUSPICIOUS"
	Flagged    Label = "FLAGGED"
)

// Severity orders labels for the most-severe-wins aggregation policy.
// Magnitude of the risk score never participates in this ordering.
func (l Label) Severity() int {
	switch l {
	case Flagged:
		return 2
	case Suspicious:
		return 1
	default:
		return 0
	}
}

func MoreSevere(a, b Label) Label {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// Risk score tiers shared by every analyzer. A score maps onto the same
// label regardless of which analyzer produced it.
const (
	FlaggedScoreThreshold    = 75
	SuspiciousScoreThreshold = 40
)

func LabelForScore(score int) Label {
	switch {
	case score >= FlaggedScoreThreshold:
		return Flagged
	case score >= SuspiciousScoreThreshold:
		return Suspicious
	default:
		return Safe
	}
}

// ClampScore bounds a raw score to the [0,100] range every SubScore and
// Verdict must stay within.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

type ScoreSource string

const (
	RuleSource   ScoreSource = "RULE"
	ModelSource  ScoreSource = "MODEL"
	VisionSource ScoreSource = "VISION"
)

// SubScore is one analyzer's independent opinion on a content item.
// Never mutated after creation.
type SubScore struct {
	Source   ScoreSource
	Score    int
	Label    Label
	Evidence []string
	Method   string
}

// Warning annotations attached to a Verdict when part of the pipeline was
// skipped or failed. Aggregation itself is never blocked by them.
const (
	WarningRateExhausted = "rate budget exhausted: model analysis skipped"
	WarningItemRecovered = "analysis failure recovered: default verdict issued"
)

// Verdict is the sole externally visible result for one content item.
type Verdict struct {
	Label       Label
	Score       int
	SubScores   []SubScore
	Explanation string
	Warnings    []string
}

func (v Verdict) PartiallyAnalyzed() bool {
	for _, w := range v.Warnings {
		if w == WarningRateExhausted {
			return true
		}
	}
	return false
}

type RankedItem struct {
	Item    ContentItem
	Verdict Verdict
}

// BatchSummary aggregates the verdicts of one batch request. It is recomputed
// fresh per batch and reflects only the items actually analyzed.
type BatchSummary struct {
	Total             int
	Counts            map[Label]int
	Percentages       map[Label]float64
	PartiallyAnalyzed int
	Ranked            []RankedItem
}
