package assembler

import (
	"fmt"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

// ConversationBank holds the phrasing pools for multi-speaker turns on one
// segment type. Selection is a fixed rotation: segment index modulo pool
// size, so identical inputs always produce identical phrasing.
type ConversationBank struct {
	Starters  []string
	FollowUps []string
	Closers   []string
}

// conversationBanks keys phrasing pools by segment type. Types without an
// entry use the default bank.
var conversationBanks = map[segmenter.SegmentType]ConversationBank{
	segmenter.TypeData: {
		Starters: []string{
			"Now, here's something that really caught my attention.",
			"Let me hit you with some numbers.",
			"The data on this is striking.",
		},
		FollowUps: []string{
			"Those numbers tell a really important story.",
			"And that's not even the most surprising part.",
			"Let me break down what that actually means.",
		},
		Closers: []string{
			"The figures speak for themselves.",
			"Keep those numbers in mind as we go on.",
		},
	},
	segmenter.TypeNarrative: {
		Starters: []string{
			"Let me share a story that perfectly illustrates this point.",
			"Here's an example that brings this to life.",
			"Picture this for a moment.",
		},
		FollowUps: []string{
			"And this isn't just one isolated example.",
			"We're seeing this pattern emerge again and again.",
			"That experience says a lot about where things are heading.",
		},
		Closers: []string{
			"Stories like that are why this matters.",
			"It's a pattern worth remembering.",
		},
	},
	segmenter.TypeQA: {
		Starters: []string{
			"Now, you might be wondering about this.",
			"This is a question that comes up a lot.",
			"Here's a question worth sitting with.",
		},
		FollowUps: []string{
			"It's a great question, and the answer might surprise you.",
			"The answer is more nuanced than you'd expect.",
			"Let's unpack that answer together.",
		},
		Closers: []string{
			"Hopefully that clears things up.",
			"A good question deserves a thorough answer.",
		},
	},
	segmenter.TypeTechnical: {
		Starters: []string{
			"Let's get a little technical for a moment.",
			"Here's how this actually works under the hood.",
			"Time to look at the machinery behind this.",
		},
		FollowUps: []string{
			"Don't worry, the core idea is simpler than it sounds.",
			"The important part is what this enables.",
			"That detail matters more than it might seem.",
		},
		Closers: []string{
			"So that's the technical side of the story.",
			"Enough engineering, back to the big picture.",
		},
	},
	segmenter.TypeOpinion: {
		Starters: []string{
			"Here's where I'll share a perspective.",
			"Let me offer a point of view on this.",
			"Opinions differ here, and that's worth exploring.",
		},
		FollowUps: []string{
			"You might see it differently, and that's fair.",
			"There's a real debate to be had here.",
			"It's a view shaped by everything we've covered so far.",
		},
		Closers: []string{
			"Take that perspective for what it's worth.",
			"Reasonable people can land in different places on this.",
		},
	},
}

// defaultBank serves segment types without a dedicated pool.
var defaultBank = ConversationBank{
	Starters: []string{
		"Here's the thing.",
		"Now, this is important.",
		"Let me tell you something.",
		"You know what's interesting?",
	},
	FollowUps: []string{
		"And there's more to it than that.",
		"That's worth dwelling on for a second.",
		"Which brings up a bigger point.",
	},
	Closers: []string{
		"Something to keep in mind.",
		"Let that sink in for a moment.",
	},
}

// BankFor returns the conversation bank for a segment type.
func BankFor(segmentType segmenter.SegmentType) ConversationBank {
	if bank, ok := conversationBanks[segmentType]; ok {
		return bank
	}
	return defaultBank
}

// Pick returns the rotation entry for a segment index: index % len(pool).
func Pick(pool []string, index int) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[index%len(pool)]
}

// transitionKey identifies a (current, next) segment type pair.
type transitionKey struct {
	current segmenter.SegmentType
	next    segmenter.SegmentType
}

// transitionTable maps adjacent segment type pairs to fixed transition
// scripts. Pairs without an entry get the generic keyword-based fallback.
var transitionTable = map[transitionKey]string{
	{segmenter.TypeData, segmenter.TypeNarrative}:      "Now, let me show you what this looks like in practice.",
	{segmenter.TypeNarrative, segmenter.TypeData}:      "The numbers behind this story are equally compelling.",
	{segmenter.TypeData, segmenter.TypeData}:           "And the data doesn't stop there.",
	{segmenter.TypeNarrative, segmenter.TypeNarrative}: "That's not the only story worth telling here.",
	{segmenter.TypeQA, segmenter.TypeData}:             "To really answer that, we need to look at the numbers.",
	{segmenter.TypeData, segmenter.TypeQA}:             "Which naturally raises a question.",
	{segmenter.TypeTechnical, segmenter.TypeNarrative}: "Let's step out of the weeds and see this in the real world.",
	{segmenter.TypeNarrative, segmenter.TypeTechnical}: "So how does that actually work? Let's look closer.",
	{segmenter.TypeIntroduction, segmenter.TypeData}:   "Let's start with what the evidence says.",
	{segmenter.TypeOpinion, segmenter.TypeData}:        "But don't take my word for it, look at the data.",
	{segmenter.TypeData, segmenter.TypeConclusion}:     "With all those numbers in hand, let's pull it together.",
}

// TransitionScript returns the fixed script for a segment type pair, or a
// generic bridge referencing both segments' top keywords.
func TransitionScript(current, next *segmenter.Segment) string {
	if script, ok := transitionTable[transitionKey{current.SegmentType, next.SegmentType}]; ok {
		return script
	}
	return fmt.Sprintf("From %s, let's turn to %s.",
		current.TopKeyword("that"), next.TopKeyword("what comes next"))
}

// AudioCueFor suggests a production audio cue for the transition between two
// segment types. Data segments exit on a chime, narrative segments open on a
// whoosh, everything else gets the neutral cue.
func AudioCueFor(current, next segmenter.SegmentType) string {
	switch {
	case current == segmenter.TypeData:
		return "soft_chime"
	case next == segmenter.TypeNarrative:
		return "gentle_whoosh"
	default:
		return "subtle_transition"
	}
}

// previewPhrases describes a leading segment in the intro teaser by type.
var previewPhrases = map[segmenter.SegmentType]string{
	segmenter.TypeData:      "some surprising statistics",
	segmenter.TypeNarrative: "a compelling case study",
	segmenter.TypeQA:        "answers to important questions",
	segmenter.TypeTechnical: "a look under the technical hood",
	segmenter.TypeOpinion:   "a perspective worth debating",
}

// PreviewPhrase describes a segment for the intro preview.
func PreviewPhrase(segment *segmenter.Segment) string {
	if phrase, ok := previewPhrases[segment.SegmentType]; ok {
		return phrase
	}
	if kw := segment.TopKeyword(""); kw != "" {
		return "insights about " + kw
	}
	return "fascinating insights"
}
