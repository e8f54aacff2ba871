// Package ai abstracts chat completion providers behind a single Service
// interface. Adapters exist for Anthropic, OpenAI, Gemini and a custom
// self-hosted endpoint; all of them share one system prompt builder so a
// conversation reads the same regardless of vendor.
package ai

import (
	"context"
	"time"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderCustom    Provider = "custom"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

type FinishReason string

const (
	FinishStop   FinishReason = "stop"
	FinishLength FinishReason = "length"
	FinishError  FinishReason = "error"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1024
)

// Request is a provider-agnostic completion request. Zero Temperature and
// MaxTokens fall back to the shared defaults.
type Request struct {
	Messages     []Message
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

func (r Request) effective() (temperature float64, maxTokens int) {
	temperature = r.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens = r.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return temperature, maxTokens
}

// Usage reports token accounting for a completed request. Providers that
// do not return usage leave it nil on the Response.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Response struct {
	Content      string
	Model        string
	FinishReason FinishReason
	Usage        *Usage
}

// Service is the contract every provider adapter satisfies.
type Service interface {
	SendMessage(ctx context.Context, req Request) (*Response, error)
	BuildSystemPrompt(pc PregnancyContext) string
}

// PregnancyContext is the snapshot of pregnancy data the system prompt is
// built from. Now is injected so the builder stays deterministic.
type PregnancyContext struct {
	Pregnancy        domain.Pregnancy
	RecentVisits     []domain.HospitalVisit
	RecentSymptoms   []domain.Symptom
	RecentMilestones []domain.Milestone
	Now              time.Time
}
