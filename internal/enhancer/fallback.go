package enhancer

import (
	"regexp"
	"strings"
)

// fallbackImprovements is what the local cleanup applies when a provider
// call fails or is skipped in favour of deterministic processing.
var fallbackImprovements = []string{
	"filler word removal",
	"whitespace and punctuation normalization",
	"duplicate adjacent word removal",
}

var (
	fallbackFillerRegex     = regexp.MustCompile(`(?i)\b(um|uh|er|ah|you know|i mean)\b,?\s*`)
	fallbackWhitespaceRegex = regexp.MustCompile(`\s+`)
	fallbackSpacePunctRegex = regexp.MustCompile(`\s+([,.!?;])`)
	fallbackTrimPunctRegex  = regexp.MustCompile(`^[^a-zA-Z0-9']+|[^a-zA-Z0-9']+$`)
)

// localFallback is the deterministic text cleanup used when no provider call
// succeeds: filler stripping, whitespace and punctuation normalization, and
// removal of duplicated adjacent words. It never fails.
func localFallback(content string) string {
	cleaned := fallbackFillerRegex.ReplaceAllString(content, "")
	cleaned = removeAdjacentDuplicates(cleaned)
	cleaned = fallbackSpacePunctRegex.ReplaceAllString(cleaned, "$1")
	cleaned = fallbackWhitespaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// removeAdjacentDuplicates drops a word that immediately repeats the
// previous one, ignoring case and surrounding punctuation.
func removeAdjacentDuplicates(text string) string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	kept := make([]string, 0, len(words))
	kept = append(kept, words[0])
	prev := normalizeWord(words[0])
	for _, word := range words[1:] {
		current := normalizeWord(word)
		if current != "" && current == prev {
			continue
		}
		kept = append(kept, word)
		prev = current
	}
	return strings.Join(kept, " ")
}

func normalizeWord(word string) string {
	return strings.ToLower(fallbackTrimPunctRegex.ReplaceAllString(word, ""))
}
