// Package money holds the fee and referral-bonus arithmetic. All amounts are
// integer cents; floats only appear transiently inside rounding.
package money

import "math"

// DefaultPlatformFeeRate is the platform's cut of a session's post-referral amount.
const DefaultPlatformFeeRate = 0.05

// MaxReferralDepth caps how far up a referral chain bonuses are paid.
const MaxReferralDepth = 10

// PlatformFee returns the platform fee on amountCents at the given rate,
// rounded half up to the nearest cent.
func PlatformFee(amountCents int64, rate float64) int64 {
	if amountCents <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Round(float64(amountCents) * rate))
}

// ReferralBonusRate returns the bonus rate for a chain level: 10% at level 1,
// then one tenth of the previous level (1%, 0.1%, ...). Zero outside 1..MaxReferralDepth.
func ReferralBonusRate(level int) float64 {
	if level < 1 || level > MaxReferralDepth {
		return 0
	}
	return 0.10 * math.Pow(0.10, float64(level-1))
}

// ReferralBonusForLevel returns the bonus in cents owed to the referrer at the
// given chain level for a session of grossCents. Each level rounds
// independently from gross, not from a shrinking remainder.
func ReferralBonusForLevel(grossCents int64, level int) int64 {
	rate := ReferralBonusRate(level)
	if rate == 0 || grossCents <= 0 {
		return 0
	}
	return int64(math.Round(float64(grossCents) * rate))
}
