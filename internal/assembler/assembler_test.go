package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

func testTranscript() *segmenter.ProcessedTranscript {
	segments := []segmenter.Segment{
		{
			ID:                       1,
			Text:                     "Research shows a 40% increase in renewable adoption. The statistics cover every major market. Grid operators confirmed the data independently.",
			WordCount:                20,
			EstimatedDurationMinutes: 0.13,
			SegmentType:              segmenter.TypeData,
			TopicKeywords:            []string{"renewable", "statistics", "grid"},
			ImportanceScore:          85,
			CleanScore:               95,
		},
		{
			ID:                       2,
			Text:                     "Imagine a small coastal town that went fully solar last year. The story started with one determined school principal. Neighbors followed within months.",
			WordCount:                24,
			EstimatedDurationMinutes: 0.16,
			SegmentType:              segmenter.TypeNarrative,
			TopicKeywords:            []string{"solar", "town", "story"},
			ImportanceScore:          65,
			CleanScore:               90,
		},
		{
			ID:                       3,
			Text:                     "The committee plans further reviews next quarter. Additional hearings are scheduled through the spring session.",
			WordCount:                15,
			EstimatedDurationMinutes: 0.1,
			SegmentType:              segmenter.TypeInformational,
			TopicKeywords:            []string{"committee", "hearings"},
			ImportanceScore:          40,
			CleanScore:               60,
		},
	}
	return &segmenter.ProcessedTranscript{
		OriginalText:           "original",
		CleanedText:            "cleaned",
		Segments:               segments,
		TotalWordCount:         59,
		TotalEstimatedDuration: 0.39,
		SourceType:             "auto",
	}
}

func testShow(format SpeakerFormat) ShowConfig {
	return ShowConfig{
		ShowName: "Energy Weekly",
		HostName: "Alice",
		Tagline:  "we follow the power that moves the world",
		Speakers: SpeakerConfig{
			Format:     format,
			HostName:   "Alice",
			GuestName:  "Bob",
			CoHostName: "Carol",
		},
	}
}

func TestAssembler_Assemble(t *testing.T) {
	t.Run("should reject an empty transcript", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		_, err := assembler.Assemble(&segmenter.ProcessedTranscript{}, testShow(FormatSingleHost), false)

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should produce one turn per segment for a single host", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		assert.Len(t, pkg.MainContent, 3)
		for _, turn := range pkg.MainContent {
			assert.Contains(t, turn.Script, "HOST (Alice):")
		}
	})

	t.Run("should give every segment a host and guest turn in interview format", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatInterview), false)

		// Assert
		require.NoError(t, err)
		assert.Len(t, pkg.MainContent, 6)

		script := strings.Builder{}
		for _, turn := range pkg.MainContent {
			script.WriteString(turn.Script)
		}
		assert.Contains(t, script.String(), "HOST (Alice):")
		assert.Contains(t, script.String(), "GUEST (Bob):")
	})

	t.Run("should apply conversational overhead to multi-speaker durations", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()
		transcript := testTranscript()

		// Act
		pkg, err := assembler.Assemble(transcript, testShow(FormatInterview), false)

		// Assert
		require.NoError(t, err)
		pairTotal := pkg.MainContent[0].EstimatedDuration + pkg.MainContent[1].EstimatedDuration
		assert.InDelta(t, transcript.Segments[0].EstimatedDurationMinutes*ConversationalOverhead, pairTotal, 0.02)
	})

	t.Run("should default an unknown speaker format to single host", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()
		show := testShow("panel")

		// Act
		pkg, err := assembler.Assemble(testTranscript(), show, false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, FormatSingleHost, pkg.Metadata.SpeakerFormat)
		assert.Len(t, pkg.MainContent, 3)
	})

	t.Run("should build one transition per adjacent segment pair", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		require.Len(t, pkg.Transitions, 2)
		assert.Equal(t, [2]int{1, 2}, pkg.Transitions[0].BetweenSegmentIDs)
		assert.Equal(t, [2]int{2, 3}, pkg.Transitions[1].BetweenSegmentIDs)
	})

	t.Run("should use the fixed transition for a data to narrative pair", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, pkg.Transitions[0].Script, "what this looks like in practice")
	})

	t.Run("should suggest an audio cue for every transition", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		require.Len(t, pkg.Transitions, 2)
		// Leaving a data segment takes the chime, everything else defaults.
		assert.Equal(t, "soft_chime", pkg.Transitions[0].AudioCue)
		assert.Equal(t, "subtle_transition", pkg.Transitions[1].AudioCue)
	})

	t.Run("should sum section durations into the metadata total", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)

		expected := pkg.Intro.EstimatedDuration + pkg.Outro.EstimatedDuration
		for _, turn := range pkg.MainContent {
			expected += turn.EstimatedDuration
		}
		for _, transition := range pkg.Transitions {
			expected += transition.EstimatedDuration
		}
		assert.InDelta(t, expected, pkg.Metadata.TotalDurationMinutes, 0.01)
		assert.Greater(t, pkg.Metadata.TotalDurationMinutes, 0.0)
	})

	t.Run("should open and close with the show branding", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, pkg.Intro.Script, "Energy Weekly")
		assert.Contains(t, pkg.Intro.Script, "Alice")
		assert.Equal(t, IntroDurationMinutes, pkg.Intro.EstimatedDuration)
		assert.Contains(t, pkg.Outro.Script, "Energy Weekly")
		assert.Equal(t, OutroDurationMinutes, pkg.Outro.EstimatedDuration)
	})

	t.Run("should attach production notes for data and rough segments", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, pkg.MainContent[0].ProductionNotes, "data segment should carry notes")
		assert.NotEmpty(t, pkg.MainContent[2].ProductionNotes, "low clean score should carry notes")
		assert.Empty(t, pkg.MainContent[1].ProductionNotes)
	})

	t.Run("should respect an explicit episode title", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()
		show := testShow(FormatSingleHost)
		show.EpisodeTitle = "Special Edition"

		// Act
		pkg, err := assembler.Assemble(testTranscript(), show, false)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Special Edition", pkg.Metadata.EpisodeTitle)
	})

	t.Run("should generate a title from keywords when none is given", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, pkg.Metadata.EpisodeTitle)
		assert.Contains(t, pkg.Metadata.EpisodeTitle, "The Future of ")
	})
}

func TestAssembler_ShowNotes(t *testing.T) {
	t.Run("should include only segments above the key point threshold", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		require.Len(t, pkg.ShowNotes.KeyPoints, 2)
		assert.Contains(t, pkg.ShowNotes.KeyPoints[0], "Research shows")
	})

	t.Run("should deduplicate keywords across segments", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()
		transcript := testTranscript()
		transcript.Segments[1].TopicKeywords = []string{"renewable", "solar"}

		// Act
		pkg, err := assembler.Assemble(transcript, testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		counts := map[string]int{}
		for _, kw := range pkg.ShowNotes.Keywords {
			counts[kw]++
		}
		assert.Equal(t, 1, counts["renewable"])
	})

	t.Run("should start timestamps at the intro offset", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		require.NotEmpty(t, pkg.ShowNotes.Timestamps)
		assert.Equal(t, "01:30", pkg.ShowNotes.Timestamps[0].Time)
		assert.Equal(t, "renewable", pkg.ShowNotes.Timestamps[0].Topic)
	})

	t.Run("should emit timestamps only for the first and important segments", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		// Segment 1 is first, segment 2 scores 65 > 60, segment 3 scores 40.
		assert.Len(t, pkg.ShowNotes.Timestamps, 2)
	})

	t.Run("should include placeholder resource links", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()

		// Act
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)

		// Assert
		require.NoError(t, err)
		require.Len(t, pkg.ShowNotes.Resources, 3)
		assert.Equal(t, "Research Paper on AI Development", pkg.ShowNotes.Resources[0].Title)
		assert.Equal(t, "https://example.com/research", pkg.ShowNotes.Resources[0].URL)
	})
}

func TestRenderScript(t *testing.T) {
	t.Run("should interleave transitions between segments", func(t *testing.T) {
		// Arrange
		assembler := NewAssembler()
		pkg, err := assembler.Assemble(testTranscript(), testShow(FormatSingleHost), false)
		require.NoError(t, err)

		// Act
		rendered := RenderScript(pkg)

		// Assert
		assert.Contains(t, rendered, "=== INTRO ===")
		assert.Contains(t, rendered, "=== MAIN CONTENT ===")
		assert.Contains(t, rendered, "=== OUTRO ===")
		first := strings.Index(rendered, "Research shows")
		transition := strings.Index(rendered, "what this looks like in practice")
		second := strings.Index(rendered, "Imagine a small coastal town")
		assert.True(t, first < transition && transition < second,
			"transition should sit between the segments it bridges")
	})

	t.Run("should return empty output for a nil package", func(t *testing.T) {
		assert.Equal(t, "", RenderScript(nil))
	})
}

func TestSpeakerConfig(t *testing.T) {
	t.Run("should require a guest for interviews", func(t *testing.T) {
		// Arrange
		config := SpeakerConfig{Format: FormatInterview}

		// Act
		err := config.Validate()

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should normalize an invalid config to single host", func(t *testing.T) {
		// Arrange
		config := SpeakerConfig{Format: "roundtable", HostName: "Alice"}

		// Act
		normalized, changed := config.Normalized()

		// Assert
		assert.True(t, changed)
		assert.Equal(t, FormatSingleHost, normalized.Format)
		assert.Equal(t, "Alice", normalized.HostName)
	})

	t.Run("should keep a valid config untouched", func(t *testing.T) {
		// Arrange
		config := SpeakerConfig{Format: FormatInterview, HostName: "Alice", GuestName: "Bob"}

		// Act
		normalized, changed := config.Normalized()

		// Assert
		assert.False(t, changed)
		assert.Equal(t, config, normalized)
	})
}

func TestPhrases(t *testing.T) {
	t.Run("should rotate deterministically through a pool", func(t *testing.T) {
		// Arrange
		pool := []string{"a", "b", "c"}

		// Act & Assert
		assert.Equal(t, "a", Pick(pool, 0))
		assert.Equal(t, "b", Pick(pool, 1))
		assert.Equal(t, "a", Pick(pool, 3))
	})

	t.Run("should fall back to a keyword bridge for unmapped pairs", func(t *testing.T) {
		// Arrange
		current := &segmenter.Segment{SegmentType: segmenter.TypeInformational, TopicKeywords: []string{"budget"}}
		next := &segmenter.Segment{SegmentType: segmenter.TypeOpinion, TopicKeywords: []string{"policy"}}

		// Act
		script := TransitionScript(current, next)

		// Assert
		assert.Contains(t, script, "budget")
		assert.Contains(t, script, "policy")
	})

	t.Run("should pick the audio cue by segment type pair", func(t *testing.T) {
		assert.Equal(t, "soft_chime", AudioCueFor(segmenter.TypeData, segmenter.TypeNarrative))
		assert.Equal(t, "gentle_whoosh", AudioCueFor(segmenter.TypeQA, segmenter.TypeNarrative))
		assert.Equal(t, "subtle_transition", AudioCueFor(segmenter.TypeOpinion, segmenter.TypeQA))
	})
}
