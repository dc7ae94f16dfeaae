package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
)

// Provider is a text-completion capability used for content enhancement.
// Implementations make one cancellable outbound call per Complete invocation
// and never retry on their own.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() string
	// Complete sends a prompt and returns the completion text.
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// DefaultProviderTimeout bounds a single completion call.
const DefaultProviderTimeout = 30 * time.Second

// completionRequest is the generic JSON wire shape for completion endpoints.
type completionRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// completionResponse is the generic JSON completion reply.
type completionResponse struct {
	Text string `json:"text"`
}

// HTTPProvider calls a JSON text-completion endpoint. The wire shape is
// vendor-neutral: {prompt, model, max_tokens, temperature} in, {text} out.
type HTTPProvider struct {
	name   string
	url    string
	apiKey string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPProvider creates an HTTPProvider for the given endpoint
func NewHTTPProvider(name, url, apiKey, model string) *HTTPProvider {
	return NewHTTPProviderWithLogger(name, url, apiKey, model, DefaultProviderTimeout, nil)
}

// NewHTTPProviderWithLogger creates an HTTPProvider with the given timeout and logger
func NewHTTPProviderWithLogger(name, url, apiKey, model string, timeout time.Duration, logger *zap.Logger) *HTTPProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	return &HTTPProvider{
		name:   name,
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Name returns the configured provider name
func (p *HTTPProvider) Name() string {
	return p.name
}

// Complete posts the prompt to the completion endpoint and returns its text
func (p *HTTPProvider) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Prompt:      prompt,
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: failed to encode request", p.name), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: failed to build request", p.name), err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	p.logger.Debug("calling completion provider",
		zap.String("provider", p.name),
		zap.Int("max_tokens", maxTokens),
		zap.Float64("temperature", temperature))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: request failed", p.name), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: failed to read response", p.name), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.NewProvider(
			fmt.Sprintf("provider %s: unexpected status %d", p.name, resp.StatusCode), nil)
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: malformed response", p.name), err)
	}

	text := strings.TrimSpace(completion.Text)
	if text == "" {
		return "", apperrors.NewProvider(fmt.Sprintf("provider %s: empty completion", p.name), nil)
	}
	return text, nil
}
