package service

import (
	"fmt"

	"brewhire/pkg/money"
)

// ReferrerLookup resolves one link of the referral chain: the profile id of
// the professional who referred the given one, nil at the top.
type ReferrerLookup interface {
	ReferrerOf(profileID uint) (*uint, error)
}

// ChainEntry is one referrer in a walked chain. Level starts at 1 for the
// direct referrer.
type ChainEntry struct {
	ProfileID uint
	Level     int
}

// LevelBonus is one referrer's cut of a session's gross.
type LevelBonus struct {
	ProfileID  uint  `json:"profile_id"`
	Level      int   `json:"level"`
	BonusCents int64 `json:"bonus_cents"`
}

// Breakdown is the full split of a gross amount. Never persisted; recomputed
// from current chain data at settlement time.
// NetCents + PlatformFeeCents + TotalReferralCents == gross, exactly.
type Breakdown struct {
	Bonuses            []LevelBonus `json:"bonuses"`
	TotalReferralCents int64        `json:"total_referral_cents"`
	PlatformFeeCents   int64        `json:"platform_fee_cents"`
	NetCents           int64        `json:"net_cents"`
}

// PayoutService computes payout breakdowns from a gross amount and the
// referral chain behind a professional.
type PayoutService struct {
	referrers ReferrerLookup
	feeRate   float64
	maxDepth  int
}

func NewPayoutService(referrers ReferrerLookup, feeRate float64, maxDepth int) *PayoutService {
	if feeRate <= 0 {
		feeRate = money.DefaultPlatformFeeRate
	}
	if maxDepth <= 0 || maxDepth > money.MaxReferralDepth {
		maxDepth = money.MaxReferralDepth
	}
	return &PayoutService{referrers: referrers, feeRate: feeRate, maxDepth: maxDepth}
}

func (s *PayoutService) FeeRate() float64 { return s.feeRate }

// WalkChain follows referred-by links starting from the given profile,
// producing (profile, level) pairs with level starting at 1. The walk stops
// at a nil link or at maxDepth: the referral graph is not guaranteed acyclic,
// so the depth cap is the cycle defense. A lookup error aborts the whole
// walk; paying a half-resolved chain is worse than paying none.
func (s *PayoutService) WalkChain(start *uint) ([]ChainEntry, error) {
	var chain []ChainEntry
	current := start
	for level := 1; current != nil && level <= s.maxDepth; level++ {
		chain = append(chain, ChainEntry{ProfileID: *current, Level: level})
		next, err := s.referrers.ReferrerOf(*current)
		if err != nil {
			return nil, fmt.Errorf("referrer lookup at level %d (profile %d): %w", level, *current, err)
		}
		current = next
	}
	return chain, nil
}

// ComputeBreakdown splits grossCents among the referral chain, the platform,
// and the session's professional. Referral bonuses come off gross first; the
// platform fee applies to the post-referral amount. That ordering decides who
// funds the referral program and is fixed product behavior.
func (s *PayoutService) ComputeBreakdown(grossCents int64, startReferrer *uint) (*Breakdown, error) {
	chain, err := s.WalkChain(startReferrer)
	if err != nil {
		return nil, err
	}
	b := &Breakdown{}
	for _, entry := range chain {
		bonus := money.ReferralBonusForLevel(grossCents, entry.Level)
		if bonus == 0 {
			// Deeper levels only shrink; nothing left to pay out.
			continue
		}
		b.Bonuses = append(b.Bonuses, LevelBonus{
			ProfileID:  entry.ProfileID,
			Level:      entry.Level,
			BonusCents: bonus,
		})
		b.TotalReferralCents += bonus
	}
	netAfterReferrals := grossCents - b.TotalReferralCents
	b.PlatformFeeCents = money.PlatformFee(netAfterReferrals, s.feeRate)
	b.NetCents = netAfterReferrals - b.PlatformFeeCents
	return b, nil
}
