package segmenter

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
)

// Default segmentation thresholds.
const (
	DefaultMinSegmentChars = 50
	DefaultMaxSegmentChars = 500
	DefaultMinBufferChars  = 200
	DefaultMinSentences    = 3
	DefaultWordsPerMinute  = 150
)

// topicShiftPrefixes close the running segment when the next sentence starts
// with one of them.
var topicShiftPrefixes = []string{
	"now", "so", "next", "however", "but", "meanwhile", "anyway",
	"moving on", "let's talk about", "another point", "another thing",
	"in contrast", "on the other hand", "speaking of", "that brings us to",
	"turning to",
}

// Options control segmentation thresholds. Zero values fall back to the
// package defaults.
type Options struct {
	MinSegmentChars int
	MaxSegmentChars int
	MinBufferChars  int
	MinSentences    int
	WordsPerMinute  int
}

func (o Options) withDefaults() Options {
	if o.MinSegmentChars <= 0 {
		o.MinSegmentChars = DefaultMinSegmentChars
	}
	if o.MaxSegmentChars <= 0 {
		o.MaxSegmentChars = DefaultMaxSegmentChars
	}
	if o.MinBufferChars <= 0 {
		o.MinBufferChars = DefaultMinBufferChars
	}
	if o.MinSentences <= 0 {
		o.MinSentences = DefaultMinSentences
	}
	if o.WordsPerMinute <= 0 {
		o.WordsPerMinute = DefaultWordsPerMinute
	}
	return o
}

// Segmenter splits cleaned transcript text into classified topic segments
type Segmenter struct {
	opts   Options
	logger *zap.Logger

	// Pre-compiled regexes for performance
	sentenceBoundaryRegex *regexp.Regexp
	fallbackSplitRegex    *regexp.Regexp
}

// NewSegmenter creates a Segmenter with default thresholds
func NewSegmenter() *Segmenter {
	return NewSegmenterWithOptions(Options{}, nil)
}

// NewSegmenterWithLogger creates a Segmenter with default thresholds and the given logger
func NewSegmenterWithLogger(logger *zap.Logger) *Segmenter {
	return NewSegmenterWithOptions(Options{}, logger)
}

// NewSegmenterWithOptions creates a Segmenter with the given thresholds and logger
func NewSegmenterWithOptions(opts Options, logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Segmenter{
		opts:   opts.withDefaults(),
		logger: logger,
		// Sentence-terminal punctuation followed by a capital letter
		sentenceBoundaryRegex: regexp.MustCompile(`[.!?]\s+[A-Z]`),
		// Plain sentence split fallback
		fallbackSplitRegex: regexp.MustCompile(`[.!?]+`),
	}
}

// Segment splits cleaned text into classified topic segments. Segment order
// equals appearance order and IDs are 1-based and dense.
func (s *Segmenter) Segment(cleaned string) ([]Segment, error) {
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, apperrors.NewValidation("cleaned text is empty")
	}

	sentences := s.splitSentences(cleaned)
	chunks := s.accumulate(sentences)

	segments := make([]Segment, 0, len(chunks))
	for i, chunk := range chunks {
		segments = append(segments, s.buildSegment(i+1, chunk))
	}

	s.logger.Debug("segmented transcript",
		zap.Int("sentence_count", len(sentences)),
		zap.Int("segment_count", len(segments)))

	return segments, nil
}

// Process segments cleaned text and wraps the result in a ProcessedTranscript
// whose totals are exact sums over the segments.
func (s *Segmenter) Process(original, cleaned, sourceType string) (*ProcessedTranscript, error) {
	segments, err := s.Segment(cleaned)
	if err != nil {
		return nil, err
	}

	totalWords := 0
	totalDuration := 0.0
	for i := range segments {
		totalWords += segments[i].WordCount
		totalDuration += segments[i].EstimatedDurationMinutes
	}

	return &ProcessedTranscript{
		OriginalText:           original,
		CleanedText:            cleaned,
		Segments:               segments,
		TotalWordCount:         totalWords,
		TotalEstimatedDuration: round2(totalDuration),
		SourceType:             sourceType,
	}, nil
}

// splitSentences splits text into sentence-like units at terminal punctuation
// followed by a capital letter, falling back to a plain punctuation split
// when no such boundary exists.
func (s *Segmenter) splitSentences(text string) []string {
	matches := s.sentenceBoundaryRegex.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return s.splitPlain(text)
	}

	sentences := make([]string, 0, len(matches)+1)
	start := 0
	for _, m := range matches {
		// The match spans "punct whitespace capital"; the sentence ends after
		// the punctuation and the next one starts at the capital.
		end := m[0] + 1
		sentence := strings.TrimSpace(text[start:end])
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = m[1] - 1
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func (s *Segmenter) splitPlain(text string) []string {
	parts := s.fallbackSplitRegex.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part+".")
		}
	}
	if len(sentences) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return sentences
}

// accumulate groups sentences into segment-sized chunks. A chunk closes when
// it holds enough sentences and characters, hits the hard size cap, or the
// next sentence signals a topic shift. Undersized chunks merge forward, and
// an undersized tail merges backward rather than being dropped when possible.
func (s *Segmenter) accumulate(sentences []string) []string {
	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(buf, " "))
		buf = nil
		bufLen = 0
	}

	for _, sentence := range sentences {
		if len(buf) > 0 && s.isTopicShift(sentence) {
			flush()
		}

		buf = append(buf, sentence)
		bufLen += len(sentence) + 1

		if len(buf) >= s.opts.MinSentences && bufLen >= s.opts.MinBufferChars {
			flush()
		} else if bufLen >= s.opts.MaxSegmentChars {
			flush()
		}
	}
	flush()

	return s.mergeUndersized(chunks)
}

func (s *Segmenter) mergeUndersized(chunks []string) []string {
	merged := make([]string, 0, len(chunks))
	carry := ""
	for _, chunk := range chunks {
		if carry != "" {
			chunk = carry + " " + chunk
			carry = ""
		}
		if len(chunk) < s.opts.MinSegmentChars {
			carry = chunk
			continue
		}
		merged = append(merged, chunk)
	}
	if carry != "" {
		if len(merged) > 0 {
			merged[len(merged)-1] = merged[len(merged)-1] + " " + carry
		} else if len(carry) >= s.opts.MinSegmentChars {
			merged = append(merged, carry)
		}
		// An undersized lone tail is dropped: it is below the minimum
		// segment size and has nothing to merge into.
	}
	return merged
}

func (s *Segmenter) isTopicShift(sentence string) bool {
	lower := strings.ToLower(strings.TrimSpace(sentence))
	for _, prefix := range topicShiftPrefixes {
		if strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+",") {
			return true
		}
	}
	return false
}

func (s *Segmenter) buildSegment(id int, text string) Segment {
	wordCount := len(strings.Fields(text))
	return Segment{
		ID:                       id,
		Text:                     text,
		WordCount:                wordCount,
		EstimatedDurationMinutes: round2(float64(wordCount) / float64(s.opts.WordsPerMinute)),
		SegmentType:              Classify(text),
		TopicKeywords:            ExtractKeywords(text),
		ImportanceScore:          ImportanceScore(text),
		CleanScore:               CleanScore(text),
	}
}
