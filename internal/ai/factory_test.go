package ai

import (
	"errors"
	"testing"
)

func TestNewService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic ok", Config{Provider: ProviderAnthropic, APIKey: "k"}, false},
		{"anthropic missing key", Config{Provider: ProviderAnthropic}, true},
		{"openai ok", Config{Provider: ProviderOpenAI, APIKey: "k"}, false},
		{"openai missing key", Config{Provider: ProviderOpenAI}, true},
		{"gemini ok", Config{Provider: ProviderGemini, APIKey: "k"}, false},
		{"gemini missing key", Config{Provider: ProviderGemini}, true},
		{"custom ok", Config{Provider: ProviderCustom, BaseURL: "http://localhost:9000"}, false},
		{"custom ok without key", Config{Provider: ProviderCustom, BaseURL: "http://localhost:9000", APIKey: ""}, false},
		{"custom missing url", Config{Provider: ProviderCustom, APIKey: "k"}, true},
		{"unknown provider", Config{Provider: "mistral", APIKey: "k"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(tt.cfg)
			if tt.wantErr {
				var ce *ConfigurationError
				if !errors.As(err, &ce) {
					t.Fatalf("expected ConfigurationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewService: %v", err)
			}
			if svc == nil {
				t.Fatal("nil service")
			}
		})
	}
}

func TestResolvedModel(t *testing.T) {
	if got := (Config{Provider: ProviderAnthropic}).ResolvedModel(); got != anthropicDefaultModel {
		t.Errorf("ResolvedModel() = %q", got)
	}
	if got := (Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}).ResolvedModel(); got != "gpt-4o-mini" {
		t.Errorf("ResolvedModel() = %q", got)
	}
	if got := (Config{Provider: ProviderCustom}).ResolvedModel(); got != "" {
		t.Errorf("ResolvedModel() = %q, want empty", got)
	}
}
