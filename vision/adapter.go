// Package vision normalizes the structured findings of an external
// vision-model call into the engine's sub-score shape. The call itself is
// issued by the caller; the engine only consumes its result.
package vision

import (
	"math"
	"strings"

	"feedwatch/domain"
)

const fallbackConfidence = 50

// Sanitize enforces the findings contract on a loosely structured upstream
// result: an unknown classification falls back to SAFE and an out-of-range
// confidence to the neutral midpoint.
func Sanitize(f domain.VisionFindings) domain.VisionFindings {
	if parseClassification(f.Classification) == "" {
		f.Classification = string(domain.Safe)
	}
	if math.IsNaN(f.ConfidenceScore) || f.ConfidenceScore < 0 || f.ConfidenceScore > 100 {
		f.ConfidenceScore = fallbackConfidence
	}
	return f
}

// ToSubScore turns sanitized findings into a VISION SubScore. The score is
// the model's confidence clamped to [0,100]; the evidence is its risk-factor
// list.
func ToSubScore(f domain.VisionFindings) domain.SubScore {
	f = Sanitize(f)
	score := domain.ClampScore(int(math.Round(f.ConfidenceScore)))

	label := domain.Label(parseClassification(f.Classification))
	// A safe image with whatever confidence carries no risk score.
	if label == domain.Safe {
		score = 0
	}

	return domain.SubScore{
		Source:   domain.VisionSource,
		Score:    score,
		Label:    label,
		Evidence: f.RiskFactors,
		Method:   "vision analysis",
	}
}

func parseClassification(raw string) string {
	word := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(word, string(domain.Flagged)):
		return string(domain.Flagged)
	case strings.HasPrefix(word, string(domain.Suspicious)):
		return string(domain.Suspicious)
	case strings.HasPrefix(word, string(domain.Safe)):
		return string(domain.Safe)
	default:
		return ""
	}
}
