package rules

import "strings"

// Pattern is one curated corpus entry. Weight is the risk score awarded on a
// match (0–100). Anchors, when present, gate the match: at least one anchor
// must also appear in the text. This keeps broad derogatory words from firing
// on text that never mentions the monitored subject.
type Pattern struct {
	Phrase   string
	Weight   int
	Category string
	Anchors  []string
}

func (p Pattern) anchoredIn(norm []rune) bool {
	if len(p.Anchors) == 0 {
		return true
	}
	text := string(norm)
	for _, anchor := range p.Anchors {
		if strings.Contains(text, string(normalizeRunes([]rune(anchor)))) {
			return true
		}
	}
	return false
}

// Corpus is a versioned pattern set. The version participates in the rule
// sub-score's method string so verdicts stay attributable after corpus
// updates.
type Corpus struct {
	Version  string
	Patterns []Pattern
}

const (
	destructiveWeight = 90
	derogatoryWeight  = 60
	affirmativeWeight = 0
)

const (
	CategoryDestructive = "destructive"
	CategoryDerogatory  = "derogatory"
	CategoryAffirmative = "affirmative"
)

// subjectAnchors gate the derogatory word list: a negative word alone is not
// suspicious, a negative word aimed at the monitored subject is.
var subjectAnchors = []string{"india", "bharat", "hindustan", "भारत", "हिंदुस्तान", "ভারত", "بھارت"}

// DefaultCorpus is the curated multilingual phrase set covering Latin,
// Devanagari, Bengali and Arabic-derived scripts, plus common
// transliterations.
func DefaultCorpus() Corpus {
	patterns := make([]Pattern, 0, 64)

	destructive := []string{
		// English
		"destroy india", "down with india", "death to india", "wipe out india",
		"kill india", "burn india", "end india", "india must die",
		"india should perish", "india must fall", "india no more",
		// Hindi
		"भारत खत्म", "भारत का नाश", "भारत मुर्दाबाद", "भारत मिटा दो",
		"भारत को जला दो", "भारत को तोड़ दो", "भारत का विनाश", "भारत का अंत",
		"भारत बर्बाद", "हिंदुस्तान खत्म", "हिंदुस्तान मुर्दाबाद",
		// Bengali
		"ভারত ধ্বংস", "ভারতকে মুছে ফেল", "ভারত শেষ করো", "ভারতকে জ্বালাও",
		"ভারত নিপাত যাক", "ভারতকে ভেঙে দাও",
		// Urdu
		"بھارت ختم", "بھارت مردہ باد", "بھارت کو مٹا دو", "بھارت کو جلا دو",
		// Transliterations
		"bharat khatm", "bharat khatam", "bharat murdabad", "india murdabad",
		"bharat nasht", "bharat barbaad", "hindustan murdabad",
	}
	for _, phrase := range destructive {
		patterns = append(patterns, Pattern{Phrase: phrase, Weight: destructiveWeight, Category: CategoryDestructive})
	}

	derogatory := []string{
		// English
		"worst", "evil", "dirty", "useless", "corrupt",
		// Hindi
		"निकृष्ट", "घटिया", "नालायक",
		// Bengali
		"খারাপ", "অপদার্থ",
	}
	for _, word := range derogatory {
		patterns = append(patterns, Pattern{
			Phrase:   word,
			Weight:   derogatoryWeight,
			Category: CategoryDerogatory,
			Anchors:  subjectAnchors,
		})
	}

	affirmative := []string{
		"jai hind", "vande mataram", "bharat mata ki jai",
		"जय हिन्द", "जय भारत",
	}
	for _, phrase := range affirmative {
		patterns = append(patterns, Pattern{Phrase: phrase, Weight: affirmativeWeight, Category: CategoryAffirmative})
	}

	return Corpus{Version: "2026.01", Patterns: patterns}
}
