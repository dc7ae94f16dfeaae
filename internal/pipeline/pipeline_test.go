package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/config"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/enhancer"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

const sampleTranscript = "[00:01] John: Um, so today we're discussing climate data. " +
	"Research shows a 40% increase in extreme weather events over the last decade. " +
	"The statistics come from a global survey of monitoring stations on six continents. " +
	"Scientists collected temperature readings from thousands of independent sensors. " +
	"Moving on, let me share the story of one coastal town that adapted early. " +
	"The local council rebuilt its entire drainage network after the second flood. " +
	"Residents now treat the warning sirens as part of normal life there."

// providerConfig writes a config file pointing the enhancer at url.
func providerConfig(t *testing.T, url string) *config.Configuration {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`enhancer:
  providers:
    - test
  provider:
    test:
      url: %q
`, url)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.NewConfigurationFromFile(path)
	require.NoError(t, err)
	return cfg
}

func TestPipeline_ProcessTranscript(t *testing.T) {
	t.Run("should clean and segment a raw transcript", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		transcript, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: sampleTranscript,
		})

		// Assert
		require.NoError(t, err)
		require.NoError(t, transcript.Validate())
		assert.NotEmpty(t, transcript.Segments)
		assert.NotContains(t, transcript.CleanedText, "[00:01]")
		assert.NotContains(t, transcript.CleanedText, "John:")
		assert.Equal(t, SourceTypeAuto, transcript.SourceType)
		assert.Equal(t, segmenter.TypeData, transcript.Segments[0].SegmentType)
	})

	t.Run("should reject a missing transcript", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should reject an unknown source type", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: sampleTranscript,
			SourceType: "scraped",
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should enforce the manual minimum length for manual sources", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: "short manual note",
			SourceType: SourceTypeManual,
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should count processed transcripts in stats", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: sampleTranscript,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), pipeline.Stats().TranscriptsProcessed)
	})
}

func TestPipeline_EnhanceContent(t *testing.T) {
	t.Run("should pass content through at skip level without providers", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		result, err := pipeline.EnhanceContent(context.Background(), EnhanceContentRequest{
			Content:         "Leave this alone.",
			EnhancementType: "skip",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Leave this alone.", result.EnhancedText)
		assert.Equal(t, enhancer.ProviderNone, result.Provider)
	})

	t.Run("should report provider unavailable when none is configured", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.EnhanceContent(context.Background(), EnhanceContentRequest{
			Content: "Please polish this text.",
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsProviderUnavailable(err))
	})

	t.Run("should reject an unknown enhancement type", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.EnhanceContent(context.Background(), EnhanceContentRequest{
			Content:         "Please polish this text.",
			EnhancementType: "maximal",
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should fall back locally when the provider fails", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()
		pipeline := NewPipeline(providerConfig(t, server.URL))

		// Act
		result, err := pipeline.EnhanceContent(context.Background(), EnhanceContentRequest{
			Content: "This is, um, the draft announcement text.",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, enhancer.ProviderFallback, result.Provider)
		assert.True(t, result.Fallback)
		assert.Equal(t, int64(1), pipeline.Stats().FallbacksServed)
	})
}

func TestPipeline_GenerateScript(t *testing.T) {
	t.Run("should assemble a script from a processed transcript", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)
		transcript, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: sampleTranscript,
		})
		require.NoError(t, err)

		// Act
		pkg, err := pipeline.GenerateScript(context.Background(), GenerateScriptRequest{
			Transcript: transcript,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, len(transcript.Segments), pkg.Metadata.SegmentCount)
		assert.Greater(t, pkg.Metadata.TotalDurationMinutes, 0.0)
		assert.Contains(t, pkg.Intro.Script, "AI Insights Podcast")
	})

	t.Run("should reject a request without a transcript", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.GenerateScript(context.Background(), GenerateScriptRequest{})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("should reject an inconsistent transcript", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)
		transcript, err := pipeline.ProcessTranscript(context.Background(), ProcessTranscriptRequest{
			Transcript: sampleTranscript,
		})
		require.NoError(t, err)
		transcript.TotalWordCount++

		// Act
		_, err = pipeline.GenerateScript(context.Background(), GenerateScriptRequest{
			Transcript: transcript,
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestPipeline_CreateScript(t *testing.T) {
	t.Run("should run the full pipeline without enhancement", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		result, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript: sampleTranscript,
		})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, result.Script)
		assert.False(t, result.Script.Metadata.LLMEnhanced)
		assert.NotEmpty(t, result.Rendered)
		assert.NotEmpty(t, result.Transcript.Segments)
	})

	t.Run("should continue with cleaned text when enhancement is unavailable", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		result, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript:     sampleTranscript,
			UseEnhancement: true,
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Script.Metadata.LLMEnhanced)
	})

	t.Run("should use provider output and flag the script as enhanced", func(t *testing.T) {
		// Arrange
		enhanced := "The enhanced transcript covers climate research in depth. " +
			"Extreme weather events rose forty percent over the last decade alone. " +
			"Monitoring stations across six continents confirmed the same warming trend. " +
			"One coastal town rebuilt its drainage network and adapted ahead of its neighbors."
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"text": enhanced})
		}))
		defer server.Close()
		pipeline := NewPipeline(providerConfig(t, server.URL))

		// Act
		result, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript:     sampleTranscript,
			UseEnhancement: true,
		})

		// Assert
		require.NoError(t, err)
		assert.True(t, result.Script.Metadata.LLMEnhanced)
		assert.Equal(t, enhanced, result.Transcript.CleanedText)
	})

	t.Run("should keep the script unflagged when the provider fails", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()
		pipeline := NewPipeline(providerConfig(t, server.URL))

		// Act
		result, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript:     sampleTranscript,
			UseEnhancement: true,
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Script.Metadata.LLMEnhanced)
	})

	t.Run("should honor the skip enhancement type", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		result, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript:      sampleTranscript,
			UseEnhancement:  true,
			EnhancementType: "skip",
		})

		// Assert
		require.NoError(t, err)
		assert.False(t, result.Script.Metadata.LLMEnhanced)
	})

	t.Run("should count generated scripts in stats", func(t *testing.T) {
		// Arrange
		pipeline := NewPipeline(nil)

		// Act
		_, err := pipeline.CreateScript(context.Background(), CreateScriptRequest{
			Transcript: sampleTranscript,
		})

		// Assert
		require.NoError(t, err)
		stats := pipeline.Stats()
		assert.Equal(t, int64(1), stats.TranscriptsProcessed)
		assert.Equal(t, int64(1), stats.ScriptsGenerated)
	})
}
