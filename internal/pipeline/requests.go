package pipeline

import (
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/assembler"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

// SourceTypeAuto marks machine-generated transcripts and SourceTypeManual
// marks human-written ones, which pass through a higher minimum-length gate.
const (
	SourceTypeAuto   = "auto"
	SourceTypeManual = "manual"
)

// ProcessTranscriptRequest asks for a raw transcript to be cleaned and
// segmented.
type ProcessTranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	SourceType string `json:"source_type,omitempty" validate:"omitempty,oneof=auto manual"`
}

// EnhanceContentRequest asks for a single piece of text to be polished.
type EnhanceContentRequest struct {
	Content         string `json:"content" validate:"required"`
	EnhancementType string `json:"enhancement_type,omitempty"`
	Provider        string `json:"provider,omitempty"`
}

// GenerateScriptRequest asks for a script package built from an already
// processed transcript.
type GenerateScriptRequest struct {
	Transcript     *segmenter.ProcessedTranscript `json:"processed_transcript" validate:"required"`
	Show           assembler.ShowConfig           `json:"show_config"`
	UseEnhancement bool                           `json:"use_enhancement,omitempty"`
}

// CreateScriptRequest runs the entire pipeline from raw transcript to
// finished script package.
type CreateScriptRequest struct {
	Transcript      string               `json:"transcript" validate:"required"`
	SourceType      string               `json:"source_type,omitempty" validate:"omitempty,oneof=auto manual"`
	Show            assembler.ShowConfig `json:"show_config"`
	UseEnhancement  bool                 `json:"use_enhancement,omitempty"`
	EnhancementType string               `json:"enhancement_type,omitempty"`
	Provider        string               `json:"provider,omitempty"`
}

// CreateScriptResult bundles the processed transcript with the assembled
// script so callers see both pipeline products.
type CreateScriptResult struct {
	Transcript *segmenter.ProcessedTranscript `json:"processed_transcript"`
	Script     *assembler.ScriptPackage       `json:"script"`
	Rendered   string                         `json:"rendered_script"`
}
