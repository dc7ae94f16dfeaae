package assembler

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

// Section duration policy. Intro, outro and transition durations are fixed
// constants independent of generated text length.
const (
	IntroDurationMinutes      = 1.5
	OutroDurationMinutes      = 2.0
	TransitionDurationMinutes = 0.25
	// ConversationalOverhead inflates multi-speaker segment durations to
	// account for the added dialogue.
	ConversationalOverhead = 1.3

	introMusicSeconds = 10
	outroMusicSeconds = 15
)

// Show-notes policy.
const (
	// KeyPointThreshold is the minimum importance score for a segment to
	// appear in the key points.
	KeyPointThreshold = 50.0
	// TimestampThreshold is the minimum importance score for a timestamp
	// entry; the first segment always gets one.
	TimestampThreshold = 60.0

	maxKeyPoints        = 5
	maxShowNoteKeywords = 10
)

// Assembler turns a classified transcript and a show configuration into a
// complete script package
type Assembler struct {
	logger *zap.Logger

	sentenceBoundaryRegex *regexp.Regexp
}

// NewAssembler creates an Assembler with a no-op logger
func NewAssembler() *Assembler {
	return NewAssemblerWithLogger(nil)
}

// NewAssemblerWithLogger creates an Assembler with the given logger
func NewAssemblerWithLogger(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		logger:                logger,
		sentenceBoundaryRegex: regexp.MustCompile(`[.!?]\s+[A-Z]`),
	}
}

// Assemble builds the full script package for a processed transcript. The
// result is deterministic for identical inputs.
func (a *Assembler) Assemble(transcript *segmenter.ProcessedTranscript, show ShowConfig, llmEnhanced bool) (*ScriptPackage, error) {
	if transcript == nil || len(transcript.Segments) == 0 {
		return nil, apperrors.NewValidation("transcript has no segments to assemble")
	}

	speakers, defaulted := show.Speakers.Normalized()
	if defaulted {
		a.logger.Warn("unrecognized or incomplete speaker configuration, defaulting to single host",
			zap.String("requested_format", string(show.Speakers.Format)))
	}
	if speakers.HostName == "" {
		speakers.HostName = show.HostName
	}

	segments := transcript.Segments

	intro := a.buildIntro(segments, show)
	mainContent := a.buildMainContent(segments, speakers)
	transitions := a.buildTransitions(segments)
	outro := a.buildOutro(segments, show)
	notes := a.buildShowNotes(segments, show)

	title := show.EpisodeTitle
	if title == "" {
		title = generateEpisodeTitle(segments)
	}

	total := intro.EstimatedDuration + outro.EstimatedDuration
	for i := range mainContent {
		total += mainContent[i].EstimatedDuration
	}
	for i := range transitions {
		total += transitions[i].EstimatedDuration
	}

	pkg := &ScriptPackage{
		Intro:       intro,
		MainContent: mainContent,
		Transitions: transitions,
		Outro:       outro,
		ShowNotes:   notes,
		Metadata: Metadata{
			EpisodeTitle:         title,
			TotalDurationMinutes: round2(total),
			SegmentCount:         len(segments),
			TransitionCount:      len(transitions),
			SpeakerFormat:        speakers.Format,
			LLMEnhanced:          llmEnhanced,
		},
	}

	a.logger.Info("script assembled",
		zap.Int("segment_count", len(segments)),
		zap.Int("turn_count", len(mainContent)),
		zap.String("speaker_format", string(speakers.Format)),
		zap.Float64("total_duration_minutes", pkg.Metadata.TotalDurationMinutes))

	return pkg, nil
}

// buildIntro produces the templated opening referencing up to three leading
// segments' top keywords. Its duration is a fixed policy constant.
func (a *Assembler) buildIntro(segments []segmenter.Segment, show ShowConfig) Intro {
	topics := make([]string, 0, 3)
	seen := make(map[string]struct{})
	for i := 0; i < len(segments) && len(topics) < 3; i++ {
		kw := segments[i].TopKeyword("")
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		topics = append(topics, kw)
	}
	topicsPhrase := "cutting-edge developments"
	if len(topics) > 0 {
		topicsPhrase = joinNatural(topics)
	}

	previews := make([]string, 0, 3)
	for i := 0; i < len(segments) && i < 3; i++ {
		previews = append(previews, PreviewPhrase(&segments[i]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[INTRO MUSIC - %d seconds]\n\n", introMusicSeconds)
	fmt.Fprintf(&b, "HOST: Welcome back to %s, I'm %s, and this is the show where %s.\n\n",
		show.ShowName, show.HostName, show.Tagline)
	b.WriteString("[MUSIC FADES]\n\n")
	fmt.Fprintf(&b, "HOST: In today's episode, we're diving deep into %s. We'll explore %s, and by the end you'll have a much clearer picture of what it means for you.\n\n",
		topicsPhrase, joinNatural(previews))
	b.WriteString("[TRANSITION SOUND]\n\n")
	b.WriteString("HOST: So let's jump right in.")

	return Intro{
		Script:            b.String(),
		EstimatedDuration: IntroDurationMinutes,
		MusicCues: []MusicCue{
			{Type: "intro_music", DurationSeconds: introMusicSeconds},
			{Type: "transition_sound", Timing: "after_preview"},
		},
	}
}

// buildMainContent produces the content turns for every segment. Single host
// yields one turn per segment; interview and multi-host formats split each
// segment at its midpoint sentence boundary across a speaker pair, with
// phrasing rotated deterministically by segment index.
func (a *Assembler) buildMainContent(segments []segmenter.Segment, speakers SpeakerConfig) []ContentTurn {
	var turns []ContentTurn
	for i := range segments {
		segment := &segments[i]
		switch speakers.Format {
		case FormatInterview:
			turns = append(turns, a.buildSpeakerPair(segment, i, speakers.HostName, "GUEST", speakers.GuestName)...)
		case FormatMultiHost:
			turns = append(turns, a.buildSpeakerPair(segment, i, speakers.HostName, "CO-HOST", speakers.CoHostName)...)
		default:
			turns = append(turns, a.buildHostTurn(segment, i, speakers.HostName))
		}
	}
	return turns
}

func (a *Assembler) buildHostTurn(segment *segmenter.Segment, index int, hostName string) ContentTurn {
	bank := BankFor(segment.SegmentType)

	var b strings.Builder
	fmt.Fprintf(&b, "HOST (%s): %s %s", hostName, Pick(bank.Starters, index), segment.Text)
	if segment.SegmentType == segmenter.TypeData {
		b.WriteString("\n\n[PAUSE FOR EMPHASIS]")
	}
	fmt.Fprintf(&b, "\n\nHOST (%s): %s", hostName, Pick(bank.Closers, index))

	return ContentTurn{
		SegmentID:         segment.ID,
		Type:              segment.SegmentType,
		Script:            b.String(),
		EstimatedDuration: segment.EstimatedDurationMinutes,
		Keywords:          append([]string(nil), segment.TopicKeywords...),
		ProductionNotes:   productionNotes(segment),
	}
}

// buildSpeakerPair splits a segment across two speakers. Each turn carries
// half of the overhead-adjusted segment duration.
func (a *Assembler) buildSpeakerPair(segment *segmenter.Segment, index int, hostName, secondLabel, secondName string) []ContentTurn {
	bank := BankFor(segment.SegmentType)
	firstHalf, secondHalf := a.splitAtMidpoint(segment.Text)

	turnDuration := round2(segment.EstimatedDurationMinutes * ConversationalOverhead / 2)

	hostScript := fmt.Sprintf("HOST (%s): %s %s", hostName, Pick(bank.Starters, index), firstHalf)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s", secondLabel, secondName, Pick(bank.FollowUps, index))
	if secondHalf != "" {
		b.WriteString(" " + secondHalf)
	}
	fmt.Fprintf(&b, "\n\n%s (%s): %s", secondLabel, secondName, Pick(bank.Closers, index))

	keywords := append([]string(nil), segment.TopicKeywords...)
	notes := productionNotes(segment)

	return []ContentTurn{
		{
			SegmentID:         segment.ID,
			Type:              segment.SegmentType,
			Script:            hostScript,
			EstimatedDuration: turnDuration,
			Keywords:          keywords,
			ProductionNotes:   notes,
		},
		{
			SegmentID:         segment.ID,
			Type:              segment.SegmentType,
			Script:            b.String(),
			EstimatedDuration: turnDuration,
			Keywords:          keywords,
		},
	}
}

// splitAtMidpoint splits text at the sentence boundary closest to its
// midpoint. Single-sentence text goes entirely to the first speaker.
func (a *Assembler) splitAtMidpoint(text string) (string, string) {
	sentences := a.splitSentences(text)
	if len(sentences) < 2 {
		return text, ""
	}
	mid := (len(sentences) + 1) / 2
	return strings.Join(sentences[:mid], " "), strings.Join(sentences[mid:], " ")
}

func (a *Assembler) splitSentences(text string) []string {
	matches := a.sentenceBoundaryRegex.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	sentences := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		sentences = append(sentences, strings.TrimSpace(text[start:m[0]+1]))
		start = m[1] - 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// productionNotes derives audio-editing hints from segment attributes.
func productionNotes(segment *segmenter.Segment) []string {
	var notes []string
	if segment.SegmentType == segmenter.TypeData {
		notes = append(notes,
			"Consider adding subtle background music for statistics",
			"Emphasize key numbers with vocal inflection")
	}
	if segment.EstimatedDurationMinutes > 3 {
		notes = append(notes, "Long segment - consider adding a mid-segment music break")
	}
	if segment.CleanScore < 70 {
		notes = append(notes, "Rough source text - schedule an extra editing pass")
	}
	return notes
}

// buildTransitions produces one transition for every adjacent segment pair.
func (a *Assembler) buildTransitions(segments []segmenter.Segment) []Transition {
	if len(segments) < 2 {
		return []Transition{}
	}
	transitions := make([]Transition, 0, len(segments)-1)
	for i := 0; i < len(segments)-1; i++ {
		transitions = append(transitions, Transition{
			BetweenSegmentIDs: [2]int{segments[i].ID, segments[i+1].ID},
			Script:            "HOST: " + TransitionScript(&segments[i], &segments[i+1]),
			EstimatedDuration: TransitionDurationMinutes,
			AudioCue:          AudioCueFor(segments[i].SegmentType, segments[i+1].SegmentType),
		})
	}
	return transitions
}

// buildOutro produces the templated closing summarizing the segment count
// and up to two keywords. Its duration is a fixed policy constant.
func (a *Assembler) buildOutro(segments []segmenter.Segment, show ShowConfig) Outro {
	topics := make([]string, 0, 2)
	seen := make(map[string]struct{})
	for i := range segments {
		kw := segments[i].TopKeyword("")
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		topics = append(topics, kw)
		if len(topics) == 2 {
			break
		}
	}
	topicsPhrase := "these fascinating developments"
	if len(topics) > 0 {
		topicsPhrase = joinNatural(topics)
	}

	var b strings.Builder
	b.WriteString("[TRANSITION MUSIC - 5 seconds]\n\n")
	fmt.Fprintf(&b, "HOST: So there you have it - %d segments covering %s and everything in between.\n\n",
		len(segments), topicsPhrase)
	fmt.Fprintf(&b, "HOST: If you found today's episode valuable, please subscribe to %s wherever you get your podcasts, and leave us a review - it really helps other listeners discover the show.\n\n",
		show.ShowName)
	fmt.Fprintf(&b, "HOST: I'm %s, thanks for listening to %s.\n\n", show.HostName, show.ShowName)
	fmt.Fprintf(&b, "[OUTRO MUSIC - %d seconds]", outroMusicSeconds)

	return Outro{
		Script:            b.String(),
		EstimatedDuration: OutroDurationMinutes,
		MusicCues: []MusicCue{
			{Type: "transition_music", DurationSeconds: 5},
			{Type: "outro_music", DurationSeconds: outroMusicSeconds},
		},
	}
}

// buildShowNotes derives the summary, key points, keyword list, timestamps
// and social snippets from the classified segments.
func (a *Assembler) buildShowNotes(segments []segmenter.Segment, show ShowConfig) ShowNotes {
	return ShowNotes{
		Summary:        episodeSummary(segments),
		KeyPoints:      keyPoints(segments),
		Keywords:       collectKeywords(segments),
		Timestamps:     timestamps(segments),
		SocialSnippets: socialSnippets(segments, show),
		Resources:      suggestedResources(),
	}
}

// suggestedResources returns placeholder further-reading links for editors to
// replace before publishing.
func suggestedResources() []Resource {
	return []Resource{
		{Title: "Research Paper on AI Development", URL: "https://example.com/research"},
		{Title: "Industry Report 2024", URL: "https://example.com/report"},
		{Title: "Expert Interview Series", URL: "https://example.com/interviews"},
	}
}

// keyPoints selects the highest-importance segments above the threshold,
// most important first, capped at five.
func keyPoints(segments []segmenter.Segment) []string {
	eligible := make([]*segmenter.Segment, 0, len(segments))
	for i := range segments {
		if segments[i].ImportanceScore > KeyPointThreshold {
			eligible = append(eligible, &segments[i])
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ImportanceScore > eligible[j].ImportanceScore
	})
	if len(eligible) > maxKeyPoints {
		eligible = eligible[:maxKeyPoints]
	}

	points := make([]string, 0, len(eligible))
	for _, segment := range eligible {
		points = append(points, truncate(segment.Text, 150))
	}
	return points
}

// collectKeywords returns the deduplicated union of segment keywords in
// segment order, capped.
func collectKeywords(segments []segmenter.Segment) []string {
	keywords := make([]string, 0, maxShowNoteKeywords)
	seen := make(map[string]struct{})
	for i := range segments {
		for _, kw := range segments[i].TopicKeywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
			if len(keywords) == maxShowNoteKeywords {
				return keywords
			}
		}
	}
	return keywords
}

// timestamps walks segments in order accumulating elapsed time with the
// intro duration as offset. The first segment and every segment above the
// importance threshold get an entry.
func timestamps(segments []segmenter.Segment) []TimestampEntry {
	entries := make([]TimestampEntry, 0, len(segments))
	elapsed := IntroDurationMinutes
	for i := range segments {
		if i == 0 || segments[i].ImportanceScore > TimestampThreshold {
			entries = append(entries, TimestampEntry{
				Time:        formatTimestamp(elapsed),
				Topic:       segments[i].TopKeyword("Discussion"),
				Description: truncate(segments[i].Text, 100),
			})
		}
		elapsed += segments[i].EstimatedDurationMinutes
	}
	return entries
}

func episodeSummary(segments []segmenter.Segment) string {
	topics := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for i := 0; i < len(segments) && i < 5; i++ {
		kw := segments[i].TopKeyword("")
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		topics = append(topics, kw)
		if len(topics) == 4 {
			break
		}
	}
	if len(topics) == 0 {
		return "A comprehensive discussion covering important developments and insights."
	}
	return fmt.Sprintf("In this episode, we explore %s, examining their impact and implications for the future.",
		joinNatural(topics))
}

func socialSnippets(segments []segmenter.Segment, show ShowConfig) []string {
	topKeyword := segments[0].TopKeyword("the future")
	return []string{
		fmt.Sprintf("New episode of %s is live! We dive deep into %s and what it means for the real world.", show.ShowName, topKeyword),
		fmt.Sprintf("Key insight from today's episode: %s matters more than you think.", topKeyword),
		fmt.Sprintf("%d topics, one episode. The numbers might surprise you - listen now.", len(segments)),
	}
}

// generateEpisodeTitle picks the most frequent keyword across all segments.
func generateEpisodeTitle(segments []segmenter.Segment) string {
	counts := make(map[string]int)
	for i := range segments {
		for _, kw := range segments[i].TopicKeywords {
			counts[kw]++
		}
	}
	if len(counts) == 0 {
		return "Innovation and Impact"
	}

	top := ""
	for kw, count := range counts {
		if top == "" || count > counts[top] || (count == counts[top] && kw < top) {
			top = kw
		}
	}
	return "The Future of " + capitalize(top)
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func formatTimestamp(minutes float64) string {
	totalSeconds := int(math.Round(minutes * 60))
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
