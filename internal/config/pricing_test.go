package config

import (
	"testing"

	"ccview/internal/model"
)

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"claude-sonnet-4", "claude-sonnet-4"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4"},
		{"claude-opus-4-1-20250805", "claude-opus-4-1"},
		{"claude-haiku-3-5-20241022", "claude-haiku-3-5"},
		// A short numeric suffix is a version, not a date.
		{"claude-opus-4-1", "claude-opus-4-1"},
		{"some-future-model", "some-future-model"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeModelName(tt.raw); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestLookupPricing_UnknownFallsBack(t *testing.T) {
	p, known := LookupPricing("claude-experimental-9")
	if known {
		t.Error("unknown model reported as known")
	}
	def, _ := LookupPricing(DefaultModel)
	if p != def {
		t.Errorf("fallback pricing %+v differs from %s pricing %+v", p, DefaultModel, def)
	}
}

func TestTierMultiplier(t *testing.T) {
	tests := []struct {
		tier string
		want float64
	}{
		{"batch", 0.5},
		{"Batch", 0.5},
		{"BATCH", 0.5},
		{"priority", 1.0},
		{"standard", 1.0},
		{"", 1.0},
		{"turbo", 1.0},
	}
	for _, tt := range tests {
		if got := TierMultiplier(tt.tier); got != tt.want {
			t.Errorf("TierMultiplier(%q) = %v, want %v", tt.tier, got, tt.want)
		}
	}
}

func TestCostFor(t *testing.T) {
	u := &model.Usage{
		InputTokens:              1_000_000,
		OutputTokens:             2_000_000,
		CacheCreationInputTokens: 1_000_000,
		CacheReadInputTokens:     10_000_000,
	}

	bd, known := CostFor(u, "claude-sonnet-4", "")
	if !known {
		t.Fatal("claude-sonnet-4 should be a known model")
	}
	if bd.Input != 3.00 {
		t.Errorf("Input = %v, want 3.00", bd.Input)
	}
	if bd.Output != 30.00 {
		t.Errorf("Output = %v, want 30.00", bd.Output)
	}
	if bd.CacheCreation != 3.75 {
		t.Errorf("CacheCreation = %v, want 3.75", bd.CacheCreation)
	}
	if bd.CacheRead != 3.00 {
		t.Errorf("CacheRead = %v, want 3.00", bd.CacheRead)
	}
	if want := 3.00 + 30.00 + 3.75 + 3.00; bd.Total != want {
		t.Errorf("Total = %v, want %v", bd.Total, want)
	}
}

func TestCostFor_BatchTierHalves(t *testing.T) {
	u := &model.Usage{InputTokens: 1_000_000}
	std, _ := CostFor(u, "claude-sonnet-4", "standard")
	batch, _ := CostFor(u, "claude-sonnet-4", "batch")
	if batch.Total != std.Total/2 {
		t.Errorf("batch = %v, standard = %v; batch should be half", batch.Total, std.Total)
	}
}

func TestCostFor_Deterministic(t *testing.T) {
	u := &model.Usage{InputTokens: 123, OutputTokens: 456, CacheReadInputTokens: 789}
	first, _ := CostFor(u, "claude-opus-4-1-20250805", "priority")
	for i := 0; i < 100; i++ {
		again, _ := CostFor(u, "claude-opus-4-1-20250805", "priority")
		if again != first {
			t.Fatalf("call %d: %+v != %+v", i, again, first)
		}
	}
}

func TestCostFor_NilUsage(t *testing.T) {
	bd, known := CostFor(nil, "claude-sonnet-4", "")
	if !known || bd.Total != 0 {
		t.Errorf("nil usage: bd=%+v known=%v", bd, known)
	}
}
