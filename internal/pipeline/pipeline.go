// Package pipeline orchestrates the transcript-to-script stages: cleaning,
// segmentation, optional LLM enhancement and script assembly.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/assembler"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/config"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/enhancer"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/normalizer"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

// Stats is a snapshot of how many requests each operation has served.
type Stats struct {
	TranscriptsProcessed int64 `json:"transcripts_processed"`
	ContentEnhanced      int64 `json:"content_enhanced"`
	FallbacksServed      int64 `json:"fallbacks_served"`
	ScriptsGenerated     int64 `json:"scripts_generated"`
}

// Pipeline wires the processing stages together. All stages are safe for
// concurrent use.
type Pipeline struct {
	cfg        *config.Configuration
	normalizer *normalizer.Normalizer
	segmenter  *segmenter.Segmenter
	gateway    *enhancer.Gateway
	assembler  *assembler.Assembler
	validate   *validator.Validate
	logger     *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// NewPipeline constructs a Pipeline from configuration with a no-op logger
func NewPipeline(cfg *config.Configuration) *Pipeline {
	return NewPipelineWithLogger(cfg, nil)
}

// NewPipelineWithLogger constructs a Pipeline from configuration. Enhancement
// providers come from the configured priority list; names without a
// configured URL are skipped with a warning.
func NewPipelineWithLogger(cfg *config.Configuration, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.NewConfiguration()
	}

	norm := normalizer.NewNormalizerWithOptions(normalizer.Options{
		MinLength:       cfg.GetMinTranscriptLength(),
		MinManualLength: cfg.GetMinManualLength(),
	}, logger)

	seg := segmenter.NewSegmenterWithOptions(segmenter.Options{
		MinSegmentChars: cfg.GetMinSegmentChars(),
		MaxSegmentChars: cfg.GetMaxSegmentChars(),
		MinBufferChars:  cfg.GetMinBufferChars(),
		MinSentences:    cfg.GetMinSentences(),
		WordsPerMinute:  cfg.GetWordsPerMinute(),
	}, logger)

	timeout := time.Duration(cfg.GetEnhancerTimeoutSeconds()) * time.Second
	var providers []enhancer.Provider
	for _, name := range cfg.GetProviderPriority() {
		pc := cfg.GetProviderConfig(name)
		if pc.URL == "" {
			logger.Warn("enhancement provider has no URL configured, skipping",
				zap.String("provider", name))
			continue
		}
		providers = append(providers,
			enhancer.NewHTTPProviderWithLogger(pc.Name, pc.URL, pc.APIKey, pc.Model, timeout, logger))
	}
	temperature := cfg.GetEnhancerTemperature()
	gateway := enhancer.NewGatewayWithOptions(providers, enhancer.Options{
		MaxTokens:   cfg.GetEnhancerMaxTokens(),
		Temperature: &temperature,
	}, logger)

	return &Pipeline{
		cfg:        cfg,
		normalizer: norm,
		segmenter:  seg,
		gateway:    gateway,
		assembler:  assembler.NewAssemblerWithLogger(logger),
		validate:   validator.New(),
		logger:     logger,
	}
}

// HasEnhancementProviders reports whether any LLM provider is configured.
func (p *Pipeline) HasEnhancementProviders() bool {
	return p.gateway.HasProviders()
}

// Stats returns a snapshot of the request counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// ProcessTranscript cleans and segments a raw transcript. Manual source text
// passes through a higher minimum-length gate than auto-generated text.
func (p *Pipeline) ProcessTranscript(ctx context.Context, req ProcessTranscriptRequest) (*segmenter.ProcessedTranscript, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}
	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = SourceTypeAuto
	}

	cleaned, err := p.clean(req.Transcript, sourceType)
	if err != nil {
		return nil, err
	}

	transcript, err := p.segmenter.Process(req.Transcript, cleaned, sourceType)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.stats.TranscriptsProcessed++
	p.mu.Unlock()

	p.logger.Info("transcript processed",
		zap.String("source_type", sourceType),
		zap.Int("segment_count", len(transcript.Segments)),
		zap.Int("total_word_count", transcript.TotalWordCount))

	return transcript, nil
}

// EnhanceContent polishes one piece of text through the provider gateway.
// Provider failures resolve to the local fallback, never an error.
func (p *Pipeline) EnhanceContent(ctx context.Context, req EnhanceContentRequest) (*enhancer.Result, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	level, err := p.parseLevel(req.EnhancementType)
	if err != nil {
		return nil, err
	}

	result, err := p.gateway.Enhance(ctx, req.Content, level, req.Provider)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.stats.ContentEnhanced++
	if result.Fallback {
		p.stats.FallbacksServed++
	}
	p.mu.Unlock()

	return result, nil
}

// GenerateScript assembles a script package from an already processed
// transcript.
func (p *Pipeline) GenerateScript(ctx context.Context, req GenerateScriptRequest) (*assembler.ScriptPackage, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}
	if err := req.Transcript.Validate(); err != nil {
		return nil, apperrors.NewValidation("invalid processed transcript: %v", err)
	}

	show := p.showConfig(req.Show)
	pkg, err := p.assembler.Assemble(req.Transcript, show, req.UseEnhancement)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.stats.ScriptsGenerated++
	p.mu.Unlock()

	return pkg, nil
}

// CreateScript runs the full pipeline: clean, segment, optionally enhance
// the cleaned text and re-segment, then assemble the script package.
func (p *Pipeline) CreateScript(ctx context.Context, req CreateScriptRequest) (*CreateScriptResult, error) {
	if err := p.validateRequest(req); err != nil {
		return nil, err
	}

	transcript, err := p.ProcessTranscript(ctx, ProcessTranscriptRequest{
		Transcript: req.Transcript,
		SourceType: req.SourceType,
	})
	if err != nil {
		return nil, err
	}

	level, err := p.parseLevel(req.EnhancementType)
	if err != nil {
		return nil, err
	}

	llmEnhanced := false
	if req.UseEnhancement && level != enhancer.LevelSkip {
		result, err := p.gateway.Enhance(ctx, transcript.CleanedText, level, req.Provider)
		switch {
		case err != nil:
			// No provider configured. The cleaned transcript stands.
			p.logger.Warn("enhancement unavailable, continuing with cleaned text",
				zap.Error(err))
		default:
			reprocessed, perr := p.segmenter.Process(req.Transcript, result.EnhancedText, transcript.SourceType)
			if perr != nil {
				p.logger.Warn("enhanced text did not re-segment, keeping original segmentation",
					zap.Error(perr))
			} else {
				transcript = reprocessed
				llmEnhanced = !result.Fallback
			}
			p.mu.Lock()
			p.stats.ContentEnhanced++
			if result.Fallback {
				p.stats.FallbacksServed++
			}
			p.mu.Unlock()
		}
	}

	show := p.showConfig(req.Show)
	pkg, err := p.assembler.Assemble(transcript, show, llmEnhanced)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.stats.ScriptsGenerated++
	p.mu.Unlock()

	return &CreateScriptResult{
		Transcript: transcript,
		Script:     pkg,
		Rendered:   assembler.RenderScript(pkg),
	}, nil
}

func (p *Pipeline) clean(raw, sourceType string) (string, error) {
	if sourceType == SourceTypeManual {
		return p.normalizer.NormalizeManual(raw)
	}
	return p.normalizer.Normalize(raw)
}

func (p *Pipeline) parseLevel(raw string) (enhancer.Level, error) {
	if raw == "" {
		return enhancer.LevelComprehensive, nil
	}
	return enhancer.ParseLevel(raw)
}

// showConfig fills missing show fields from configuration defaults.
func (p *Pipeline) showConfig(show assembler.ShowConfig) assembler.ShowConfig {
	if show.ShowName == "" {
		show.ShowName = p.cfg.GetShowName()
	}
	if show.HostName == "" {
		show.HostName = p.cfg.GetShowHost()
	}
	if show.Tagline == "" {
		show.Tagline = p.cfg.GetShowTagline()
	}
	return show
}

func (p *Pipeline) validateRequest(req interface{}) error {
	if err := p.validate.Struct(req); err != nil {
		return apperrors.NewValidation("invalid request: %v", err)
	}
	return nil
}
