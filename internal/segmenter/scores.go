package segmenter

import (
	"math"
	"regexp"
	"strings"
)

// importanceCues raise a segment's importance score when present.
var importanceCues = []string{
	"important", "key", "critical", "essential", "significant", "research",
	"data", "study", "percent", "%", "increase", "decrease", "growth",
	"breakthrough", "discover", "major",
}

// scoreFillerRegex finds filler words that survived normalization.
var scoreFillerRegex = regexp.MustCompile(`(?i)\b(um|uh|er|ah|you know|i mean|sort of|kind of)\b`)

var scoreWordRegex = regexp.MustCompile(`[a-zA-Z']+`)

// ImportanceScore rates how much a segment deserves listener attention on a
// [0,100] scale. Longer segments and lexical cue hits push the score up;
// residual filler and word repetition pull it down. The exact weights are
// policy, the bounds and per-factor direction are contract.
func ImportanceScore(text string) float64 {
	lower := strings.ToLower(text)
	wordCount := len(strings.Fields(text))

	score := 20.0

	// Length factor, capped so very long segments do not dominate.
	score += math.Min(30, float64(wordCount)*0.4)

	// Cue hits, capped. More cues never lower the score.
	cueHits := 0
	for _, cue := range importanceCues {
		cueHits += strings.Count(lower, cue)
	}
	score += math.Min(40, float64(cueHits)*8)

	score -= float64(countFillers(text)) * 2
	score -= float64(countAdjacentRepeats(text)) * 2

	return clampScore(score)
}

// CleanScore rates how production-ready the segment text is on a [0,100]
// scale. A fully clean segment scores 100; residual filler words and
// duplicated adjacent words are penalized.
func CleanScore(text string) float64 {
	score := 100.0
	score -= float64(countFillers(text)) * 8
	score -= float64(countAdjacentRepeats(text)) * 6
	return clampScore(score)
}

func countFillers(text string) int {
	return len(scoreFillerRegex.FindAllString(text, -1))
}

// countAdjacentRepeats counts immediately repeated words, case-insensitively.
func countAdjacentRepeats(text string) int {
	words := scoreWordRegex.FindAllString(strings.ToLower(text), -1)
	repeats := 0
	for i := 1; i < len(words); i++ {
		if words[i] == words[i-1] {
			repeats++
		}
	}
	return repeats
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, round2(score)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
