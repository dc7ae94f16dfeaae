package segmenter

import "strings"

// ClassificationRule pairs a segment type with the lexical cues that select
// it. Rules are evaluated in order, first match wins.
type ClassificationRule struct {
	Type SegmentType
	Cues []string
}

// classificationRules is the fixed precedence order:
// data > qa > technical > opinion > narrative > introduction > conclusion,
// falling back to informational when nothing matches.
var classificationRules = []ClassificationRule{
	{Type: TypeData, Cues: []string{
		"data", "statistics", "statistic", "research", "study", "survey",
		"percent", "%", "numbers show", "figures",
	}},
	{Type: TypeQA, Cues: []string{
		"question", "answer", "q:", "a:", "asked", "wondering",
	}},
	{Type: TypeTechnical, Cues: []string{
		"algorithm", "architecture", "implementation", "protocol", "software",
		"technical", "infrastructure", "machine learning", "neural network",
	}},
	{Type: TypeOpinion, Cues: []string{
		"i think", "i believe", "in my opinion", "personally", "arguably",
		"it seems to me", "my view",
	}},
	{Type: TypeNarrative, Cues: []string{
		"story", "example", "case", "experience", "happened", "imagine",
	}},
	{Type: TypeIntroduction, Cues: []string{
		"introduction", "welcome", "hello", "today we", "let's get started",
	}},
	{Type: TypeConclusion, Cues: []string{
		"conclusion", "summary", "in closing", "to wrap up", "final thought",
		"takeaway",
	}},
}

// ClassificationRules returns a copy of the ordered rule table so tests can
// enumerate rule coverage without reaching into package internals.
func ClassificationRules() []ClassificationRule {
	rules := make([]ClassificationRule, len(classificationRules))
	for i, r := range classificationRules {
		rules[i] = ClassificationRule{
			Type: r.Type,
			Cues: append([]string(nil), r.Cues...),
		}
	}
	return rules
}

// Classify labels a text segment by matching cues against the lowercased
// text, first rule wins. Unmatched text is informational.
func Classify(text string) SegmentType {
	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		for _, cue := range rule.Cues {
			if strings.Contains(lower, cue) {
				return rule.Type
			}
		}
	}
	return TypeInformational
}
