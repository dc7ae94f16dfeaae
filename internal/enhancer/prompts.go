package enhancer

import (
	"fmt"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
)

// Level selects how aggressively content is rewritten.
type Level string

const (
	// LevelSkip passes content through unchanged.
	LevelSkip Level = "skip"
	// LevelMinimal does light grammar and filler cleanup only.
	LevelMinimal Level = "minimal"
	// LevelComprehensive restructures content with topic headers and
	// soundbite flags.
	LevelComprehensive Level = "comprehensive"
	// LevelConversational reframes prose as dialogue opportunities.
	LevelConversational Level = "conversational"
)

// ParseLevel validates and converts an enhancement level string.
func ParseLevel(raw string) (Level, error) {
	switch Level(raw) {
	case LevelSkip, LevelMinimal, LevelComprehensive, LevelConversational:
		return Level(raw), nil
	default:
		return "", apperrors.NewValidation("unknown enhancement level %q", raw)
	}
}

const basePromptFormat = `Please enhance the following transcript for podcast use. The transcript may contain filler words, repetitive phrases, unclear sentences, and missing punctuation.

Provide an enhanced version that removes unnecessary filler words, improves clarity and flow, maintains the original meaning and tone, and adds appropriate punctuation.

%s

Original transcript:
%s

Enhanced transcript:`

var levelInstructions = map[Level]string{
	LevelMinimal:        `Focus only on basic grammar and punctuation corrections and removing obvious filler words. Keep the original structure intact.`,
	LevelComprehensive:  `Additionally, break the content into logical segments, add topic headings where appropriate, flag key quotes or soundbites, and note technical terms that may need explanation.`,
	LevelConversational: `Rewrite the prose as natural spoken dialogue: frame statements as conversational exchanges, add questions a co-host might ask, and mark natural handoff points between speakers.`,
}

// levelImprovements describes what each enhancement level applies, reported
// back to the caller in results.
var levelImprovements = map[Level][]string{
	LevelMinimal: {
		"grammar and punctuation corrections",
		"filler word removal",
	},
	LevelComprehensive: {
		"filler word removal",
		"structural reorganization with topic headers",
		"soundbite and key quote flagging",
	},
	LevelConversational: {
		"filler word removal",
		"dialogue-opportunity framing",
		"speaker handoff markers",
	},
}

// BuildPrompt renders the level-specific instruction template for content.
func BuildPrompt(level Level, content string) (string, error) {
	instructions, ok := levelInstructions[level]
	if !ok {
		return "", apperrors.NewValidation("no prompt template for enhancement level %q", level)
	}
	return fmt.Sprintf(basePromptFormat, instructions, content), nil
}
