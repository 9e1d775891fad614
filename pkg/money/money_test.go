package money

import "testing"

func TestPlatformFee(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   float64
		want   int64
	}{
		{"five percent of 100 dollars", 10000, 0.05, 500},
		{"rounds half up", 8900, 0.05, 445},
		{"rounds up from .5", 10, 0.05, 1},
		{"small amount rounds down", 9, 0.05, 0},
		{"zero amount", 0, 0.05, 0},
		{"negative amount", -500, 0.05, 0},
		{"zero rate", 10000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlatformFee(tt.amount, tt.rate); got != tt.want {
				t.Errorf("PlatformFee(%d, %v) = %d, want %d", tt.amount, tt.rate, got, tt.want)
			}
		})
	}
}

func TestReferralBonusForLevel(t *testing.T) {
	tests := []struct {
		name  string
		gross int64
		level int
		want  int64
	}{
		{"level 1 is ten percent", 10000, 1, 1000},
		{"level 2 is one percent", 10000, 2, 100},
		{"level 3 is a tenth of a percent", 10000, 3, 10},
		{"level 4 rounds to a cent", 10000, 4, 1},
		{"level 5 rounds to zero", 10000, 5, 0},
		{"level 0 pays nothing", 10000, 0, 0},
		{"negative level pays nothing", 10000, -3, 0},
		{"level 10 still in range", 100000000000, 10, 10},
		{"level 11 past the cap", 100000000000, 11, 0},
		{"zero gross", 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReferralBonusForLevel(tt.gross, tt.level); got != tt.want {
				t.Errorf("ReferralBonusForLevel(%d, %d) = %d, want %d", tt.gross, tt.level, got, tt.want)
			}
		})
	}
}

func TestReferralBonusRateDecays(t *testing.T) {
	prev := ReferralBonusRate(1)
	if prev != 0.10 {
		t.Fatalf("level 1 rate = %v, want 0.10", prev)
	}
	for level := 2; level <= MaxReferralDepth; level++ {
		r := ReferralBonusRate(level)
		if r <= 0 || r >= prev {
			t.Errorf("rate at level %d = %v, want positive and below %v", level, r, prev)
		}
		prev = r
	}
	if ReferralBonusRate(MaxReferralDepth+1) != 0 {
		t.Errorf("rate past max depth should be 0")
	}
}
