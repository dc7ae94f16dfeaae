package segmenter

import (
	"regexp"
	"sort"
	"strings"
)

// maxTopicKeywords caps the keywords kept per segment.
const maxTopicKeywords = 5

// longWordWeight is the frequency multiplier for words of four or more
// letters, favouring substantive terms over short ones.
const longWordWeight = 1.5

var wordTokenRegex = regexp.MustCompile(`[a-zA-Z]{3,}`)

// stopWords are excluded from keyword ranking.
var stopWords = map[string]struct{}{
	"that": {}, "this": {}, "with": {}, "from": {}, "they": {}, "were": {},
	"been": {}, "have": {}, "their": {}, "said": {}, "each": {}, "which": {},
	"what": {}, "where": {}, "when": {}, "will": {}, "more": {}, "some": {},
	"time": {}, "very": {}, "into": {}, "just": {}, "also": {}, "only": {},
	"over": {}, "think": {}, "know": {}, "people": {}, "other": {}, "come": {},
	"could": {}, "there": {}, "first": {}, "after": {}, "back": {}, "work": {},
	"way": {}, "even": {}, "want": {}, "because": {}, "these": {}, "give": {},
	"most": {}, "and": {}, "the": {}, "for": {}, "are": {}, "but": {},
	"not": {}, "you": {}, "all": {}, "can": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "has": {}, "had": {}, "his": {},
	"how": {}, "its": {}, "who": {}, "did": {}, "get": {}, "him": {},
	"see": {}, "now": {}, "than": {}, "then": {}, "them": {}, "well": {},
	"would": {}, "about": {}, "really": {}, "things": {}, "going": {},
	"today": {}, "here": {}, "much": {}, "many": {}, "being": {},
}

// ExtractKeywords returns up to five stop-word-filtered keywords ranked by
// weighted frequency. Words of four or more letters count 1.5x. Ties break
// alphabetically so identical input always yields identical output.
func ExtractKeywords(text string) []string {
	tokens := wordTokenRegex.FindAllString(strings.ToLower(text), -1)

	scores := make(map[string]float64)
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		weight := 1.0
		if len(token) >= 4 {
			weight = longWordWeight
		}
		scores[token] += weight
	}

	ranked := make([]string, 0, len(scores))
	for word := range scores {
		ranked = append(ranked, word)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > maxTopicKeywords {
		ranked = ranked[:maxTopicKeywords]
	}
	return ranked
}
