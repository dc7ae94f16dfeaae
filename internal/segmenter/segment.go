package segmenter

import (
	"fmt"
	"strings"
)

// SegmentType labels the kind of content a segment carries.
type SegmentType string

const (
	TypeData          SegmentType = "data"
	TypeNarrative     SegmentType = "narrative"
	TypeQA            SegmentType = "qa"
	TypeTechnical     SegmentType = "technical"
	TypeOpinion       SegmentType = "opinion"
	TypeIntroduction  SegmentType = "introduction"
	TypeConclusion    SegmentType = "conclusion"
	TypeInformational SegmentType = "informational"
)

// Segment is one topical unit of cleaned transcript text. Segments are
// immutable once produced and keep their source order.
type Segment struct {
	ID                       int         `json:"id"`
	Text                     string      `json:"text"`
	WordCount                int         `json:"word_count"`
	EstimatedDurationMinutes float64     `json:"estimated_duration_minutes"`
	SegmentType              SegmentType `json:"segment_type"`
	TopicKeywords            []string    `json:"topic_keywords"`
	ImportanceScore          float64     `json:"importance_score"`
	CleanScore               float64     `json:"clean_score"`
}

// Validate checks the internal consistency invariants of a segment.
func (s *Segment) Validate() error {
	if s.ID < 1 {
		return fmt.Errorf("segment ID must be 1-based, got %d", s.ID)
	}
	if strings.TrimSpace(s.Text) == "" {
		return fmt.Errorf("segment %d has empty text", s.ID)
	}
	if s.WordCount != len(strings.Fields(s.Text)) {
		return fmt.Errorf("segment %d word count %d does not match text", s.ID, s.WordCount)
	}
	if s.ImportanceScore < 0 || s.ImportanceScore > 100 {
		return fmt.Errorf("segment %d importance score %.2f out of [0,100]", s.ID, s.ImportanceScore)
	}
	if s.CleanScore < 0 || s.CleanScore > 100 {
		return fmt.Errorf("segment %d clean score %.2f out of [0,100]", s.ID, s.CleanScore)
	}
	if len(s.TopicKeywords) > 5 {
		return fmt.Errorf("segment %d has %d keywords, maximum 5", s.ID, len(s.TopicKeywords))
	}
	return nil
}

// TopKeyword returns the highest ranked keyword, or the fallback when the
// segment has none.
func (s *Segment) TopKeyword(fallback string) string {
	if len(s.TopicKeywords) > 0 {
		return s.TopicKeywords[0]
	}
	return fallback
}

// ProcessedTranscript is the classified result of one pipeline run over a
// cleaned transcript.
type ProcessedTranscript struct {
	OriginalText           string    `json:"original_text"`
	CleanedText            string    `json:"cleaned_text"`
	Segments               []Segment `json:"segments"`
	TotalWordCount         int       `json:"total_word_count"`
	TotalEstimatedDuration float64   `json:"total_estimated_duration"`
	SourceType             string    `json:"source_type"`
}

// Validate checks the round-trip invariant: totals always recompute-equal
// their segment sums.
func (t *ProcessedTranscript) Validate() error {
	wordSum := 0
	durationSum := 0.0
	for i := range t.Segments {
		if err := t.Segments[i].Validate(); err != nil {
			return err
		}
		if t.Segments[i].ID != i+1 {
			return fmt.Errorf("segment IDs must be dense and ordered: index %d has ID %d", i, t.Segments[i].ID)
		}
		wordSum += t.Segments[i].WordCount
		durationSum += t.Segments[i].EstimatedDurationMinutes
	}
	if wordSum != t.TotalWordCount {
		return fmt.Errorf("total word count %d does not equal segment sum %d", t.TotalWordCount, wordSum)
	}
	if diff := t.TotalEstimatedDuration - round2(durationSum); diff > 0.001 || diff < -0.001 {
		return fmt.Errorf("total duration %.2f does not equal segment sum %.2f", t.TotalEstimatedDuration, durationSum)
	}
	return nil
}
