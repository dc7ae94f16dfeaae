package normalizer

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
)

// DefaultMinLength is the minimum accepted raw transcript size in characters.
const DefaultMinLength = 10

// DefaultMinManualLength is the minimum accepted size for manually entered content.
const DefaultMinManualLength = 50

// defaultFillerWords are removed as whole words, case-insensitively.
var defaultFillerWords = []string{"um", "uh", "er", "ah", "like", "you know"}

// contractionFix repairs a common transcription error via regex replacement.
type contractionFix struct {
	pattern     *regexp.Regexp
	replacement string
}

// Options control validation thresholds and the filler-word set.
type Options struct {
	// MinLength is the minimum raw input size. Zero means DefaultMinLength.
	MinLength int
	// MinManualLength is the minimum size in manual-content mode. Zero means
	// DefaultMinManualLength.
	MinManualLength int
	// ExtraFillerWords extends the built-in filler-word set.
	ExtraFillerWords []string
}

// Normalizer cleans raw transcript text into a single normalized string
type Normalizer struct {
	minLength       int
	minManualLength int
	logger          *zap.Logger

	// Pre-compiled regexes for performance
	timestampRegex   *regexp.Regexp
	bareTimeRegex    *regexp.Regexp
	capsLabelRegex   *regexp.Regexp
	nameLabelRegex   *regexp.Regexp
	roleLabelRegex   *regexp.Regexp
	fillerRegex      *regexp.Regexp
	doubleCommaRegex *regexp.Regexp
	orphanPunctRegex *regexp.Regexp
	spacePunctRegex  *regexp.Regexp
	whitespaceRegex  *regexp.Regexp
	contractionFixes []contractionFix
}

// NewNormalizer creates a Normalizer with default thresholds and filler words
func NewNormalizer() *Normalizer {
	return NewNormalizerWithOptions(Options{}, nil)
}

// NewNormalizerWithLogger creates a Normalizer with default options and the given logger
func NewNormalizerWithLogger(logger *zap.Logger) *Normalizer {
	return NewNormalizerWithOptions(Options{}, logger)
}

// NewNormalizerWithOptions creates a Normalizer with the given options and logger
func NewNormalizerWithOptions(opts Options, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}

	minLength := opts.MinLength
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	minManualLength := opts.MinManualLength
	if minManualLength <= 0 {
		minManualLength = DefaultMinManualLength
	}

	fillers := make([]string, 0, len(defaultFillerWords)+len(opts.ExtraFillerWords))
	for _, w := range defaultFillerWords {
		fillers = append(fillers, regexp.QuoteMeta(w))
	}
	for _, w := range opts.ExtraFillerWords {
		w = strings.TrimSpace(strings.ToLower(w))
		if w != "" {
			fillers = append(fillers, regexp.QuoteMeta(w))
		}
	}

	return &Normalizer{
		minLength:       minLength,
		minManualLength: minManualLength,
		logger:          logger,
		// Bracketed timestamp markers like [00:01:23] or [01:23]
		timestampRegex: regexp.MustCompile(`\[[\d:]+\]`),
		// Bare hh:mm:ss or mm:ss tokens
		bareTimeRegex: regexp.MustCompile(`\b\d{1,2}:\d{2}(?::\d{2})?\b`),
		// All-caps speaker labels at line starts, e.g. "INTERVIEWER 2:"
		capsLabelRegex: regexp.MustCompile(`(?m)^[A-Z][A-Z\s]*\d*\s*:\s*`),
		// Single capitalized name labels at line starts, e.g. "John:"
		nameLabelRegex: regexp.MustCompile(`(?m)^\s*[A-Z][a-z]+\s*:\s*`),
		// Role labels anywhere in the text, e.g. "Speaker 1:"
		roleLabelRegex: regexp.MustCompile(`(?i)\b(speaker|host|interviewer|guest)\s*\d*\s*:\s*`),
		// Filler words plus a trailing comma they leave behind
		fillerRegex:      regexp.MustCompile(`(?i)\b(` + strings.Join(fillers, "|") + `)\b,?\s*`),
		doubleCommaRegex: regexp.MustCompile(`\s*,\s*,`),
		orphanPunctRegex: regexp.MustCompile(`^\s*[,;]\s*`),
		spacePunctRegex:  regexp.MustCompile(`\s+([,.!?;])`),
		whitespaceRegex:  regexp.MustCompile(`\s+`),
		contractionFixes: []contractionFix{
			{regexp.MustCompile(`(?i)\btheres\b`), "there's"},
			{regexp.MustCompile(`(?i)\bwere\b(\s+going)`), "we're$1"},
			{regexp.MustCompile(`(?i)\bits\b(\s+a\b)`), "it's$1"},
			{regexp.MustCompile(`(?i)\byouve\b`), "you've"},
			{regexp.MustCompile(`(?i)\bweve\b`), "we've"},
			{regexp.MustCompile(`(?i)\btheyre\b`), "they're"},
		},
	}
}

// Normalize cleans a raw transcript and validates the default minimum length
func (n *Normalizer) Normalize(raw string) (string, error) {
	return n.normalize(raw, n.minLength)
}

// NormalizeManual cleans manually entered content with the stricter minimum length
func (n *Normalizer) NormalizeManual(raw string) (string, error) {
	return n.normalize(raw, n.minManualLength)
}

func (n *Normalizer) normalize(raw string, minLength int) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", apperrors.NewValidation("transcript text is empty")
	}
	if len(trimmed) < minLength {
		return "", apperrors.NewValidation("transcript text is too short: %d characters, minimum %d", len(trimmed), minLength)
	}

	// Run the clean pass to a fixpoint: removing a label or filler can expose
	// another match at the same position ("John: HOST: Um, ..."), and a
	// stable result keeps normalization idempotent. Every rule either deletes
	// text or substitutes something its own pattern no longer matches, so the
	// loop terminates.
	cleaned := trimmed
	for {
		next := n.cleanOnce(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}

	n.logger.Debug("normalized transcript",
		zap.Int("raw_length", len(raw)),
		zap.Int("cleaned_length", len(cleaned)))

	return cleaned, nil
}

// cleanOnce applies one pass of every cleanup rule.
func (n *Normalizer) cleanOnce(text string) string {
	cleaned := text

	// Timestamps first so "[00:01] John:" leaves the label at the line start.
	cleaned = n.timestampRegex.ReplaceAllString(cleaned, "")
	cleaned = n.bareTimeRegex.ReplaceAllString(cleaned, "")

	// Speaker labels
	cleaned = n.capsLabelRegex.ReplaceAllString(cleaned, "")
	cleaned = n.roleLabelRegex.ReplaceAllString(cleaned, "")
	cleaned = n.nameLabelRegex.ReplaceAllString(cleaned, "")

	// Filler words
	cleaned = n.fillerRegex.ReplaceAllString(cleaned, "")

	// Common transcription errors
	for _, fix := range n.contractionFixes {
		cleaned = fix.pattern.ReplaceAllString(cleaned, fix.replacement)
	}

	// Punctuation and whitespace cleanup
	cleaned = n.doubleCommaRegex.ReplaceAllString(cleaned, ",")
	cleaned = n.spacePunctRegex.ReplaceAllString(cleaned, "$1")
	cleaned = n.whitespaceRegex.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = n.orphanPunctRegex.ReplaceAllString(cleaned, "")

	return cleaned
}
