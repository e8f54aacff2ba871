package ai

import (
	"strings"

	"github.com/shopspring/decimal"
)

// modelPricing holds per-million-token USD prices. Matched by model name
// prefix so versioned names like claude-3-5-sonnet-20241022 still resolve.
type modelPricing struct {
	prefix          string
	promptPrice     float64
	completionPrice float64
}

var pricingTable = []modelPricing{
	{"claude-3-5-sonnet", 3.00, 15.00},
	{"claude-3-5-haiku", 0.80, 4.00},
	{"gpt-4o-mini", 0.15, 0.60},
	{"gpt-4o", 2.50, 10.00},
	{"gemini-1.5-pro", 1.25, 5.00},
	{"gemini-1.5-flash", 0.075, 0.30},
}

// EstimateCost returns the USD cost of a completed request, or nil when the
// model is unknown or usage was not reported.
func EstimateCost(model string, usage *Usage) *decimal.Decimal {
	if usage == nil {
		return nil
	}
	for _, p := range pricingTable {
		if strings.HasPrefix(model, p.prefix) {
			promptCost := decimal.NewFromFloat(float64(usage.PromptTokens) * p.promptPrice / 1_000_000)
			completionCost := decimal.NewFromFloat(float64(usage.CompletionTokens) * p.completionPrice / 1_000_000)
			cost := promptCost.Add(completionCost)
			return &cost
		}
	}
	return nil
}
