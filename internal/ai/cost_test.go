package ai

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateCost(t *testing.T) {
	usage := &Usage{PromptTokens: 1000, CompletionTokens: 500}

	cost := EstimateCost("claude-3-5-sonnet-20241022", usage)
	if cost == nil {
		t.Fatal("expected a cost for a known model")
	}
	// 1000 * $3/M + 500 * $15/M = 0.003 + 0.0075
	want := decimal.NewFromFloat(0.0105)
	if !cost.Equal(want) {
		t.Errorf("cost = %s, want %s", cost, want)
	}
}

func TestEstimateCostUnknownModel(t *testing.T) {
	if cost := EstimateCost("llama-3-70b", &Usage{PromptTokens: 10}); cost != nil {
		t.Errorf("cost = %s, want nil for unknown model", cost)
	}
}

func TestEstimateCostNilUsage(t *testing.T) {
	if cost := EstimateCost("gpt-4o", nil); cost != nil {
		t.Errorf("cost = %s, want nil without usage", cost)
	}
}
