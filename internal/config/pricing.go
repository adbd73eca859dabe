// Package config holds user configuration and the static pricing tables.
package config

import (
	"strings"

	"ccview/internal/model"
)

// ModelPricing holds per-million-token prices for a model.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// DefaultModel is the pricing fallback for unrecognized model names.
// Unknown models never error; they are priced as this model and logged by
// the caller.
const DefaultModel = "claude-sonnet-4"

// pricing maps model base names to their prices. Loaded once at startup
// (plus any config overrides) and immutable afterwards.
var pricing = map[string]ModelPricing{
	"claude-opus-4-5": {
		InputPerMTok: 5.00, OutputPerMTok: 25.00,
		CacheWritePerMTok: 6.25, CacheReadPerMTok: 0.50,
	},
	"claude-opus-4-1": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-opus-4": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-sonnet-4-5": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-sonnet-4": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-haiku-4-5": {
		InputPerMTok: 1.00, OutputPerMTok: 5.00,
		CacheWritePerMTok: 1.25, CacheReadPerMTok: 0.10,
	},
	"claude-haiku-3-5": {
		InputPerMTok: 0.80, OutputPerMTok: 4.00,
		CacheWritePerMTok: 1.00, CacheReadPerMTok: 0.08,
	},
}

// Service tier multipliers. Matching is case-insensitive; anything
// unrecognized (including an absent tier) is billed as standard.
const (
	TierPriority = "priority"
	TierStandard = "standard"
	TierBatch    = "batch"
)

// TierMultiplier resolves a service tier label to its price multiplier.
func TierMultiplier(tier string) float64 {
	switch strings.ToLower(tier) {
	case TierBatch:
		return 0.5
	case TierPriority, TierStandard:
		return 1.0
	default:
		return 1.0
	}
}

// NormalizeModelName strips date suffixes from model identifiers.
// e.g., "claude-sonnet-4-20250514" -> "claude-sonnet-4"
func NormalizeModelName(raw string) string {
	if _, ok := pricing[raw]; ok {
		return raw
	}

	parts := strings.Split(raw, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if isAllDigits(last) && len(last) >= 8 {
			candidate := strings.Join(parts[:len(parts)-1], "-")
			if _, ok := pricing[candidate]; ok {
				return candidate
			}
		}
	}

	return raw
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// LookupPricing returns the pricing for a model, normalizing the name first.
// known is false when the default model's pricing was substituted.
func LookupPricing(modelName string) (p ModelPricing, known bool) {
	if p, ok := pricing[NormalizeModelName(modelName)]; ok {
		return p, true
	}
	return pricing[DefaultModel], false
}

// CostBreakdown is the derived cost of one usage record, split by token type.
type CostBreakdown struct {
	Input         float64
	Output        float64
	CacheCreation float64
	CacheRead     float64
	Total         float64
}

// CostFor computes the cost breakdown for a usage record. Pure and
// deterministic: identical inputs always yield the identical breakdown.
// Unknown model names fall back to DefaultModel pricing; known reports
// whether the lookup succeeded. No rounding happens here.
func CostFor(u *model.Usage, modelName, tier string) (bd CostBreakdown, known bool) {
	if u == nil {
		return CostBreakdown{}, true
	}

	p, known := LookupPricing(modelName)
	mult := TierMultiplier(tier)

	bd.Input = float64(u.InputTokens) * p.InputPerMTok * mult / 1_000_000
	bd.Output = float64(u.OutputTokens) * p.OutputPerMTok * mult / 1_000_000
	bd.CacheCreation = float64(u.CacheCreationInputTokens) * p.CacheWritePerMTok * mult / 1_000_000
	bd.CacheRead = float64(u.CacheReadInputTokens) * p.CacheReadPerMTok * mult / 1_000_000
	bd.Total = bd.Input + bd.Output + bd.CacheCreation + bd.CacheRead

	return bd, known
}
