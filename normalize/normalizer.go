// Package normalize prepares raw social-media text for analysis.
// It strips feed artifacts (URLs, mentions, hashtags), collapses whitespace,
// and tags the dominant script family and language of the remainder.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"feedwatch/domain"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

var (
	urlPattern     = regexp.MustCompile(`http[s]?://\S+`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize never fails: malformed input degrades to an empty NormalizedText,
// which downstream analyzers treat as "no signal".
func (n *Normalizer) Normalize(raw string) domain.NormalizedText {
	mentions := ExtractMentions(raw)
	hashtags := ExtractHashtags(raw)

	cleaned := urlPattern.ReplaceAllString(raw, "")
	cleaned = mentionPattern.ReplaceAllString(cleaned, "")
	cleaned = hashtagPattern.ReplaceAllString(cleaned, "")
	cleaned = spacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	return domain.NormalizedText{
		Text:           cleaned,
		Lang:           detectLang(cleaned),
		Script:         DetectScript(cleaned),
		Hashtags:       hashtags,
		Mentions:       mentions,
		OriginalLength: len([]rune(raw)),
	}
}

// ExtractHashtags returns the distinct lowercased hashtags of a post,
// without the leading '#'.
func ExtractHashtags(text string) []string {
	return extract(hashtagPattern, text)
}

// ExtractMentions returns the distinct lowercased user mentions of a post,
// without the leading '@'.
func ExtractMentions(text string) []string {
	return extract(mentionPattern, text)
}

func extract(pattern *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.ToLower(m[1]))
	}
	if len(out) == 0 {
		return nil
	}
	return lo.Uniq(out)
}

// DetectScript inspects character ranges to find the dominant script family.
// It is deliberately not a language-ID model: a handful of rune-range counts
// is enough to route text toward script-specific rule patterns.
func DetectScript(text string) domain.ScriptFamily {
	counts := map[domain.ScriptFamily]int{}
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Devanagari):
			counts[domain.DevanagariScript]++
		case unicode.In(r, unicode.Bengali):
			counts[domain.BengaliScript]++
		case unicode.In(r, unicode.Arabic):
			counts[domain.ArabicScript]++
		case unicode.In(r, unicode.Latin):
			counts[domain.LatinScript]++
		}
	}

	dominant := domain.UnknownScript
	best := 0
	// Fixed iteration order keeps detection deterministic on exact ties.
	for _, family := range []domain.ScriptFamily{
		domain.LatinScript,
		domain.DevanagariScript,
		domain.BengaliScript,
		domain.ArabicScript,
	} {
		if counts[family] > best {
			best = counts[family]
			dominant = family
		}
	}
	return dominant
}

func detectLang(text string) string {
	if text == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
