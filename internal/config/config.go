package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ProviderConfig holds the connection settings for one text-completion provider.
type ProviderConfig struct {
	Name   string
	URL    string
	APIKey string
	Model  string
}

// Configuration provides type-safe access to application settings
type Configuration struct {
	viper *viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.words_per_minute", 150)
	v.SetDefault("pipeline.min_transcript_length", 10)
	v.SetDefault("pipeline.min_manual_length", 50)

	v.SetDefault("segmenter.min_segment_chars", 50)
	v.SetDefault("segmenter.max_segment_chars", 500)
	v.SetDefault("segmenter.min_buffer_chars", 200)
	v.SetDefault("segmenter.min_sentences", 3)

	v.SetDefault("enhancer.providers", []string{})
	v.SetDefault("enhancer.max_tokens", 2000)
	v.SetDefault("enhancer.temperature", 0.3)
	v.SetDefault("enhancer.timeout_seconds", 30)

	v.SetDefault("show.name", "AI Insights Podcast")
	v.SetDefault("show.host", "Your Host")
	v.SetDefault("show.tagline", "Exploring the future of artificial intelligence")

	v.SetDefault("server.addr", ":8787")

	v.SetDefault("logging.level", "info")
}

// NewConfiguration creates a new Configuration instance with default settings
func NewConfiguration() *Configuration {
	v := viper.New()
	setDefaults(v)
	return &Configuration{viper: v}
}

// NewConfigurationFromFile creates a Configuration instance from a config file
func NewConfigurationFromFile(configFile string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	return &Configuration{viper: v}, nil
}

// NewConfigurationFromEnv creates a Configuration instance that reads from environment variables
func NewConfigurationFromEnv() (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	// Set up environment variable mapping
	v.SetEnvPrefix("PODCAST")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("server.addr", "SERVER_ADDR")
	v.BindEnv("pipeline.words_per_minute", "WORDS_PER_MINUTE")
	v.BindEnv("enhancer.providers", "ENHANCER_PROVIDERS")
	v.BindEnv("show.name", "DEFAULT_SHOW_NAME")
	v.BindEnv("show.host", "DEFAULT_HOST_NAME")
	v.BindEnv("show.tagline", "DEFAULT_TAGLINE")
	v.BindEnv("logging.level", "LOG_LEVEL")

	return &Configuration{viper: v}, nil
}

// GetWordsPerMinute returns the speaking rate used for duration estimates
func (c *Configuration) GetWordsPerMinute() int {
	return c.viper.GetInt("pipeline.words_per_minute")
}

// GetMinTranscriptLength returns the minimum raw transcript size in characters
func (c *Configuration) GetMinTranscriptLength() int {
	return c.viper.GetInt("pipeline.min_transcript_length")
}

// GetMinManualLength returns the minimum size for manually entered content
func (c *Configuration) GetMinManualLength() int {
	return c.viper.GetInt("pipeline.min_manual_length")
}

// GetMinSegmentChars returns the minimum size of an emitted segment
func (c *Configuration) GetMinSegmentChars() int {
	return c.viper.GetInt("segmenter.min_segment_chars")
}

// GetMaxSegmentChars returns the hard cap on segment size
func (c *Configuration) GetMaxSegmentChars() int {
	return c.viper.GetInt("segmenter.max_segment_chars")
}

// GetMinBufferChars returns the buffer size at which a segment may close
func (c *Configuration) GetMinBufferChars() int {
	return c.viper.GetInt("segmenter.min_buffer_chars")
}

// GetMinSentences returns the sentence count at which a segment may close
func (c *Configuration) GetMinSentences() int {
	return c.viper.GetInt("segmenter.min_sentences")
}

// GetProviderPriority returns the configured provider names in priority order
func (c *Configuration) GetProviderPriority() []string {
	return c.viper.GetStringSlice("enhancer.providers")
}

// GetProviderConfig returns the connection settings for a named provider
func (c *Configuration) GetProviderConfig(name string) ProviderConfig {
	prefix := "enhancer.provider." + name
	return ProviderConfig{
		Name:   name,
		URL:    c.viper.GetString(prefix + ".url"),
		APIKey: c.viper.GetString(prefix + ".api_key"),
		Model:  c.viper.GetString(prefix + ".model"),
	}
}

// GetEnhancerMaxTokens returns the completion token budget
func (c *Configuration) GetEnhancerMaxTokens() int {
	return c.viper.GetInt("enhancer.max_tokens")
}

// GetEnhancerTemperature returns the completion sampling temperature
func (c *Configuration) GetEnhancerTemperature() float64 {
	return c.viper.GetFloat64("enhancer.temperature")
}

// GetEnhancerTimeoutSeconds returns the per-call provider timeout
func (c *Configuration) GetEnhancerTimeoutSeconds() int {
	return c.viper.GetInt("enhancer.timeout_seconds")
}

// GetShowName returns the default show name
func (c *Configuration) GetShowName() string {
	return c.viper.GetString("show.name")
}

// GetShowHost returns the default host name
func (c *Configuration) GetShowHost() string {
	return c.viper.GetString("show.host")
}

// GetShowTagline returns the default show tagline
func (c *Configuration) GetShowTagline() string {
	return c.viper.GetString("show.tagline")
}

// GetServerAddr returns the HTTP listen address
func (c *Configuration) GetServerAddr() string {
	return c.viper.GetString("server.addr")
}

// GetLogLevel returns the minimum logging level
func (c *Configuration) GetLogLevel() string {
	return c.viper.GetString("logging.level")
}
