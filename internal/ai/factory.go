package ai

import (
	"net/http"
	"time"
)

// Config selects and credentials a provider adapter. Model is optional;
// each provider has its own default.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
	BaseURL  string // custom provider only
	Timeout  time.Duration
}

// ResolvedModel is the model name the adapter will actually send, with the
// provider default applied.
func (c Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderAnthropic:
		return anthropicDefaultModel
	case ProviderOpenAI:
		return openAIDefaultModel
	case ProviderGemini:
		return geminiDefaultModel
	default:
		return ""
	}
}

// NewService builds the adapter for cfg.Provider. Missing credentials or an
// unknown provider name come back as *ConfigurationError so the caller can
// start up with chat disabled instead of crashing.
func NewService(cfg Config) (Service, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, &ConfigurationError{Provider: ProviderAnthropic, Reason: "API key not configured"}
		}
		return newAnthropicService(cfg.APIKey, cfg.Model, httpClient), nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, &ConfigurationError{Provider: ProviderOpenAI, Reason: "API key not configured"}
		}
		return newOpenAIService(cfg.APIKey, cfg.Model, httpClient), nil

	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, &ConfigurationError{Provider: ProviderGemini, Reason: "API key not configured"}
		}
		return newGeminiService(cfg.APIKey, cfg.Model, httpClient), nil

	case ProviderCustom:
		if cfg.BaseURL == "" {
			return nil, &ConfigurationError{Provider: ProviderCustom, Reason: "base URL not configured"}
		}
		return newCustomService(cfg.BaseURL, cfg.APIKey, httpClient), nil

	default:
		return nil, &ConfigurationError{Provider: cfg.Provider, Reason: "unknown provider"}
	}
}
