package enhancer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
)

// ProviderNone marks a skip-level passthrough result.
const ProviderNone = "none"

// ProviderFallback marks a result produced by the local deterministic cleanup.
const ProviderFallback = "fallback"

// Default completion parameters.
const (
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.3
)

// Result is the outcome of one enhancement pass.
type Result struct {
	EnhancedText string   `json:"enhanced_text"`
	Provider     string   `json:"provider"`
	Improvements []string `json:"improvements"`
	// Fallback is set when the provider call failed and the local cleanup
	// produced the result instead.
	Fallback bool `json:"fallback"`
}

// Options tune the completion parameters sent to providers.
type Options struct {
	// MaxTokens is the completion token budget. Zero means DefaultMaxTokens.
	MaxTokens int
	// Temperature is the sampling temperature. Nil means DefaultTemperature;
	// an explicit zero is passed through to the provider.
	Temperature *float64
}

// Gateway routes enhancement requests to a priority-ordered list of
// completion providers. Provider failures never propagate: the gateway
// always recovers with a deterministic local cleanup.
type Gateway struct {
	providers   []Provider
	byName      map[string]Provider
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewGateway creates a Gateway over the given providers in priority order
func NewGateway(providers []Provider) *Gateway {
	return NewGatewayWithOptions(providers, Options{}, nil)
}

// NewGatewayWithLogger creates a Gateway with default options and the given logger
func NewGatewayWithLogger(providers []Provider, logger *zap.Logger) *Gateway {
	return NewGatewayWithOptions(providers, Options{}, logger)
}

// NewGatewayWithOptions creates a Gateway with the given completion options and logger
func NewGatewayWithOptions(providers []Provider, opts Options, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	return &Gateway{
		providers:   providers,
		byName:      byName,
		maxTokens:   opts.MaxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// HasProviders reports whether at least one provider is configured.
func (g *Gateway) HasProviders() bool {
	return len(g.providers) > 0
}

// Enhance improves content at the requested level. The skip level is an
// identity passthrough. For other levels a single provider attempt is made;
// on any provider failure the deterministic local cleanup takes over and the
// result is flagged with the fallback provider name. The only errors are
// validation problems and a missing provider configuration.
func (g *Gateway) Enhance(ctx context.Context, content string, level Level, providerName string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidation("content to enhance is empty")
	}

	if level == LevelSkip {
		return &Result{
			EnhancedText: content,
			Provider:     ProviderNone,
			Improvements: []string{},
		}, nil
	}

	provider, err := g.selectProvider(providerName)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(level, content)
	if err != nil {
		return nil, err
	}

	enhanced, callErr := provider.Complete(ctx, prompt, g.maxTokens, g.temperature)
	if callErr != nil {
		// Enhancement failure is always recoverable, never fatal: recover
		// locally and flag the result instead of propagating the error.
		g.logger.Warn("provider call failed, using local fallback",
			zap.String("provider", provider.Name()),
			zap.String("level", string(level)),
			zap.Error(callErr))
		return &Result{
			EnhancedText: localFallback(content),
			Provider:     ProviderFallback,
			Improvements: append([]string(nil), fallbackImprovements...),
			Fallback:     true,
		}, nil
	}

	g.logger.Info("content enhanced",
		zap.String("provider", provider.Name()),
		zap.String("level", string(level)),
		zap.Int("original_length", len(content)),
		zap.Int("enhanced_length", len(enhanced)))

	return &Result{
		EnhancedText: enhanced,
		Provider:     provider.Name(),
		Improvements: append([]string(nil), levelImprovements[level]...),
	}, nil
}

// selectProvider resolves an explicit override first, then falls back to the
// first configured provider in priority order.
func (g *Gateway) selectProvider(name string) (Provider, error) {
	if name != "" {
		provider, ok := g.byName[name]
		if !ok {
			return nil, apperrors.NewProviderUnavailable("provider %q is not configured", name)
		}
		return provider, nil
	}
	if len(g.providers) == 0 {
		return nil, apperrors.NewProviderUnavailable("no completion provider configured")
	}
	return g.providers[0], nil
}
