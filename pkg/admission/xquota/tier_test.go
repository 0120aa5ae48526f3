package xquota

import "testing"

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"gold", TierGold},
		{"silver", TierSilver},
		{"bronze", TierBronze},
		{"", TierBronze},
		{"platinum", TierBronze},
		{"GOLD", TierBronze}, // 存储值约定为小写
	}
	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierWeight(t *testing.T) {
	if TierGold.Weight() != 3 || TierSilver.Weight() != 2 || TierBronze.Weight() != 1 {
		t.Errorf("weights = %d/%d/%d, want 3/2/1",
			TierGold.Weight(), TierSilver.Weight(), TierBronze.Weight())
	}
	// 未知层级按 bronze 权重
	if Tier("platinum").Weight() != 1 {
		t.Error("unknown tier should weigh 1")
	}
}
