package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"brewhire/internal/domain"
	"brewhire/internal/models"
	"brewhire/pkg/money"
	"brewhire/pkg/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store interfaces are the slices of the repositories the settlement flow
// touches. Repositories satisfy them; tests use fakes.

type SessionStore interface {
	GetWithParties(id uint) (*models.Session, error)
	Update(s *models.Session) error
	FirstChatAtFirm(candidateID uint, firm string) (*models.Session, error)
}

type OfferStore interface {
	Create(o *models.Offer) error
	GetByID(id uint) (*models.Offer, error)
	Update(o *models.Offer) error
}

type FeedbackStore interface {
	Create(f *models.Feedback) error
	DeleteBySessionID(sessionID uint) error
}

type TransferStore interface {
	Create(t *models.TransferRecord) error
}

type ProfileStore interface {
	GetByID(id uint) (*models.ProfessionalProfile, error)
}

type WalletLedger interface {
	Credit(userID uint, amountCents int64) error
	RecordTransaction(userID uint, amountCents int64, txType, reference string) error
}

type AuditStore interface {
	Create(entry *models.AuditLog) error
}

// Notifier delivers settlement notifications. Optional; a nil Notifier
// disables them.
type Notifier interface {
	NotifySessionSettled(userID, sessionID uint, amountCents int64) error
	NotifyReferralBonus(userID, sessionID uint, level int, amountCents int64) error
	NotifyOfferBonus(userID, offerID uint, amountCents int64) error
}

// FeedbackInput is the professional's session write-up.
type FeedbackInput struct {
	Rating    int
	Strengths string
	NextSteps string
}

// SettlementService turns payout breakdowns into executed transfers, keeping
// session/offer state consistent when the rail partially fails.
type SettlementService struct {
	sessions    SessionStore
	offers      OfferStore
	feedbacks   FeedbackStore
	transfers   TransferStore
	profiles    ProfileStore
	wallets     WalletLedger
	audits      AuditStore
	payouts     *PayoutService
	rail        payment.Client
	notifier    Notifier
	currency    string
	offerExpiry time.Duration
}

func NewSettlementService(
	sessions SessionStore,
	offers OfferStore,
	feedbacks FeedbackStore,
	transfers TransferStore,
	profiles ProfileStore,
	wallets WalletLedger,
	audits AuditStore,
	payouts *PayoutService,
	rail payment.Client,
	notifier Notifier,
	currency string,
	offerExpiry time.Duration,
) *SettlementService {
	return &SettlementService{
		sessions:    sessions,
		offers:      offers,
		feedbacks:   feedbacks,
		transfers:   transfers,
		profiles:    profiles,
		wallets:     wallets,
		audits:      audits,
		payouts:     payouts,
		rail:        rail,
		notifier:    notifier,
		currency:    currency,
		offerExpiry: offerExpiry,
	}
}

// SubmitFeedback runs the session settlement: persist the feedback, compute
// the breakdown, pay the professional, then pay the referral chain
// best-effort, and mark the session completed and paid.
//
// Ordering is deliberate. The feedback row lands before any money moves; if
// the primary transfer fails the row is deleted again so the client can
// retry, and the session stays CONFIRMED. Once the primary transfer went
// through the settlement is committed: referral transfer failures are logged
// and skipped, never unwound.
func (s *SettlementService) SubmitFeedback(ctx context.Context, proUserID, sessionID uint, in FeedbackInput) (*models.Session, *Breakdown, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, nil, fmt.Errorf("%w: rating must be 1..5", domain.ErrValidation)
	}
	session, err := s.sessions.GetWithParties(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, sessionID)
		}
		return nil, nil, err
	}
	pro := &session.Professional
	if pro.UserID != proUserID {
		return nil, nil, fmt.Errorf("%w: session %d belongs to another professional", domain.ErrUnauthorized, sessionID)
	}
	if session.FeedbackSubmittedAt != nil {
		return nil, nil, fmt.Errorf("%w: session %d", domain.ErrDuplicateSettlement, sessionID)
	}
	if !domain.CanTransitionSession(session.Status, domain.SessionCompleted) {
		return nil, nil, fmt.Errorf("%w: cannot settle session in status %s", domain.ErrInvalidState, session.Status)
	}
	if !pro.HasPayoutDestination() {
		return nil, nil, fmt.Errorf("%w: professional %d", domain.ErrPayoutDestinationMissing, pro.ID)
	}

	// Feedback is the system of record; it lands before any transfer. The
	// unique index on session_id rejects a concurrent duplicate here.
	feedback := &models.Feedback{
		SessionID: sessionID,
		AuthorID:  pro.ID,
		Rating:    in.Rating,
		Strengths: in.Strengths,
		NextSteps: in.NextSteps,
	}
	if err := s.feedbacks.Create(feedback); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("%w: session %d", domain.ErrDuplicateSettlement, sessionID)
		}
		return nil, nil, fmt.Errorf("persist feedback: %w", err)
	}

	breakdown, err := s.payouts.ComputeBreakdown(session.RateCents, session.ReferrerProID)
	if err != nil {
		// Fail closed: a broken chain lookup means we cannot know who to
		// pay, so nothing is paid and the feedback is retractable.
		s.rollbackFeedback(sessionID)
		return nil, nil, fmt.Errorf("compute payout: %w", err)
	}

	now := time.Now()
	if breakdown.NetCents > 0 {
		resp, err := s.rail.Transfer(ctx, payment.TransferRequest{
			DestinationAccount: pro.PayoutAccountID,
			AmountCents:        breakdown.NetCents,
			Currency:           s.currency,
			Reference:          fmt.Sprintf("session-%d-net-%s", sessionID, uuid.New().String()),
			Description:        fmt.Sprintf("Coffee chat payout, session %d", sessionID),
			Metadata:           map[string]string{"session_id": fmt.Sprint(sessionID), "purpose": domain.TransferPurposeSessionNet},
		})
		if err != nil {
			log.Printf("[Settlement] session %d primary transfer failed: %v", sessionID, err)
			s.rollbackFeedback(sessionID)
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrPaymentProcessingFailed, err)
		}
		session.PrimaryTransferID = resp.TransferID
	}

	// Money moved: the settlement is committed. Everything below is
	// record-keeping; failures get audited for manual reconciliation, never
	// compensated by clawing the transfer back.
	session.Status = domain.SessionCompleted
	session.CompletedAt = &now
	session.FeedbackSubmittedAt = &now
	if err := s.sessions.Update(session); err != nil {
		s.audit(pro.UserID, "settlement_unrecorded", "session", sessionID,
			fmt.Sprintf("primary transfer %s succeeded but status update failed: %v", session.PrimaryTransferID, err))
		return nil, nil, fmt.Errorf("record settlement: %w", err)
	}
	if session.PrimaryTransferID != "" {
		s.recordTransfer(&models.TransferRecord{
			SessionID:       &session.ID,
			RecipientUserID: pro.UserID,
			Level:           0,
			AmountCents:     breakdown.NetCents,
			Purpose:         domain.TransferPurposeSessionNet,
			ProviderRef:     session.PrimaryTransferID,
		}, domain.WalletTxTypeEarning)
	}

	s.payReferralChain(ctx, session, breakdown)

	paidAt := time.Now()
	session.PaidAt = &paidAt
	if err := s.sessions.Update(session); err != nil {
		s.audit(pro.UserID, "settlement_unrecorded", "session", sessionID,
			fmt.Sprintf("transfers executed but paid_at update failed: %v", err))
	}
	if s.notifier != nil {
		_ = s.notifier.NotifySessionSettled(pro.UserID, sessionID, breakdown.NetCents)
	}
	return session, breakdown, nil
}

// payReferralChain executes the bonus transfers. Each level is best-effort:
// a referrer with no payout destination, or a rejected transfer, is skipped
// and the remaining levels still run.
func (s *SettlementService) payReferralChain(ctx context.Context, session *models.Session, breakdown *Breakdown) {
	for _, bonus := range breakdown.Bonuses {
		profile, err := s.profiles.GetByID(bonus.ProfileID)
		if err != nil {
			log.Printf("[Settlement] session %d level %d: referrer profile %d not loadable: %v", session.ID, bonus.Level, bonus.ProfileID, err)
			continue
		}
		if !profile.HasPayoutDestination() {
			log.Printf("[Settlement] session %d level %d: referrer %d has no payout destination, skipping", session.ID, bonus.Level, profile.ID)
			continue
		}
		resp, err := s.rail.Transfer(ctx, payment.TransferRequest{
			DestinationAccount: profile.PayoutAccountID,
			AmountCents:        bonus.BonusCents,
			Currency:           s.currency,
			Reference:          fmt.Sprintf("session-%d-ref%d-%s", session.ID, bonus.Level, uuid.New().String()),
			Description:        fmt.Sprintf("Referral bonus, level %d, session %d", bonus.Level, session.ID),
			Metadata:           map[string]string{"session_id": fmt.Sprint(session.ID), "level": fmt.Sprint(bonus.Level), "purpose": domain.TransferPurposeReferralBonus},
		})
		if err != nil {
			log.Printf("[Settlement] session %d level %d: referral transfer failed, skipping: %v", session.ID, bonus.Level, err)
			continue
		}
		s.recordTransfer(&models.TransferRecord{
			SessionID:       &session.ID,
			RecipientUserID: profile.UserID,
			Level:           bonus.Level,
			AmountCents:     bonus.BonusCents,
			Purpose:         domain.TransferPurposeReferralBonus,
			ProviderRef:     resp.TransferID,
		}, domain.WalletTxTypeReferralBonus)
		if s.notifier != nil {
			_ = s.notifier.NotifyReferralBonus(profile.UserID, session.ID, bonus.Level, bonus.BonusCents)
		}
	}
}

// CreateOffer records a reported job offer, capturing the first-chat
// professional and the bonus pledge snapshotted on that first chat. The
// capture happens once, here; later pledge changes don't touch it.
func (s *SettlementService) CreateOffer(candidateID uint, firm string) (*models.Offer, error) {
	if firm == "" {
		return nil, fmt.Errorf("%w: firm required", domain.ErrValidation)
	}
	expires := time.Now().Add(s.offerExpiry)
	offer := &models.Offer{
		CandidateID: candidateID,
		Firm:        firm,
		Status:      domain.OfferPending,
		ExpiresAt:   &expires,
	}
	firstChat, err := s.sessions.FirstChatAtFirm(candidateID, firm)
	switch {
	case err == nil:
		offer.FirstChatProID = &firstChat.ProfessionalID
		offer.BonusCents = firstChat.BonusPledgeCents
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No chat at this firm: offer is recorded with no bonus to pay.
	default:
		return nil, fmt.Errorf("resolve first chat: %w", err)
	}
	if err := s.offers.Create(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// AcceptOffer marks the offer accepted, then pays the first-chat
// professional their pledged bonus net of the platform fee.
//
// Acceptance is the candidate's assertion of fact and is never rolled back:
// if the bonus transfer fails the offer stays ACCEPTED with BonusPaidAt
// unset, and paying out later is an operator action. This is deliberately
// the opposite of session settlement, where the primary transfer gates the
// status change.
func (s *SettlementService) AcceptOffer(ctx context.Context, candidateID, offerID uint) (*models.Offer, error) {
	offer, err := s.offers.GetByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: offer %d", domain.ErrNotFound, offerID)
		}
		return nil, err
	}
	if offer.CandidateID != candidateID {
		return nil, fmt.Errorf("%w: offer %d belongs to another candidate", domain.ErrUnauthorized, offerID)
	}
	if offer.Status == domain.OfferPending && offer.ExpiresAt != nil && offer.ExpiresAt.Before(time.Now()) {
		offer.Status = domain.OfferExpired
		_ = s.offers.Update(offer)
		return nil, fmt.Errorf("%w: offer %d expired", domain.ErrInvalidState, offerID)
	}
	if !domain.CanTransitionOffer(offer.Status, domain.OfferAccepted) {
		return nil, fmt.Errorf("%w: cannot accept offer in status %s", domain.ErrInvalidState, offer.Status)
	}

	now := time.Now()
	offer.Status = domain.OfferAccepted
	offer.AcceptedAt = &now
	if err := s.offers.Update(offer); err != nil {
		return nil, fmt.Errorf("record acceptance: %w", err)
	}

	if offer.FirstChatProID == nil || offer.BonusCents <= 0 {
		return offer, nil
	}
	profile, err := s.profiles.GetByID(*offer.FirstChatProID)
	if err != nil {
		log.Printf("[Settlement] offer %d: first-chat professional %d not loadable, bonus unpaid: %v", offerID, *offer.FirstChatProID, err)
		s.audit(candidateID, "offer_bonus_unpaid", "offer", offerID,
			fmt.Sprintf("first-chat profile %d lookup failed: %v", *offer.FirstChatProID, err))
		return offer, nil
	}
	if !profile.HasPayoutDestination() {
		log.Printf("[Settlement] offer %d: first-chat professional %d has no payout destination, bonus unpaid", offerID, profile.ID)
		s.audit(candidateID, "offer_bonus_unpaid", "offer", offerID,
			fmt.Sprintf("first-chat profile %d has no payout destination", profile.ID))
		return offer, nil
	}
	amount := offer.BonusCents - money.PlatformFee(offer.BonusCents, s.payouts.FeeRate())
	resp, err := s.rail.Transfer(ctx, payment.TransferRequest{
		DestinationAccount: profile.PayoutAccountID,
		AmountCents:        amount,
		Currency:           s.currency,
		Reference:          fmt.Sprintf("offer-%d-bonus-%s", offerID, uuid.New().String()),
		Description:        fmt.Sprintf("Placement bonus, offer %d at %s", offerID, offer.Firm),
		Metadata:           map[string]string{"offer_id": fmt.Sprint(offerID), "purpose": domain.TransferPurposeOfferBonus},
	})
	if err != nil {
		log.Printf("[Settlement] offer %d bonus transfer failed, acceptance stands: %v", offerID, err)
		s.audit(candidateID, "offer_bonus_unpaid", "offer", offerID,
			fmt.Sprintf("bonus transfer of %d cents to profile %d failed: %v", amount, profile.ID, err))
		return offer, nil
	}
	offer.TransferID = resp.TransferID
	offer.BonusPaidAt = &now
	if err := s.offers.Update(offer); err != nil {
		s.audit(candidateID, "settlement_unrecorded", "offer", offerID,
			fmt.Sprintf("bonus transfer %s succeeded but offer update failed: %v", resp.TransferID, err))
	}
	s.recordTransfer(&models.TransferRecord{
		OfferID:         &offer.ID,
		RecipientUserID: profile.UserID,
		Level:           0,
		AmountCents:     amount,
		Purpose:         domain.TransferPurposeOfferBonus,
		ProviderRef:     resp.TransferID,
	}, domain.WalletTxTypeOfferBonus)
	if s.notifier != nil {
		_ = s.notifier.NotifyOfferBonus(profile.UserID, offerID, amount)
	}
	return offer, nil
}

// DeclineOffer marks a pending offer declined. No money moves.
func (s *SettlementService) DeclineOffer(candidateID, offerID uint) (*models.Offer, error) {
	offer, err := s.offers.GetByID(offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: offer %d", domain.ErrNotFound, offerID)
		}
		return nil, err
	}
	if offer.CandidateID != candidateID {
		return nil, fmt.Errorf("%w: offer %d belongs to another candidate", domain.ErrUnauthorized, offerID)
	}
	if !domain.CanTransitionOffer(offer.Status, domain.OfferDeclined) {
		return nil, fmt.Errorf("%w: cannot decline offer in status %s", domain.ErrInvalidState, offer.Status)
	}
	now := time.Now()
	offer.Status = domain.OfferDeclined
	offer.DeclinedAt = &now
	if err := s.offers.Update(offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// PreviewSessionPayout computes the breakdown a settlement would produce,
// without moving money. Either party to the session may look.
func (s *SettlementService) PreviewSessionPayout(userID, sessionID uint) (*Breakdown, error) {
	session, err := s.sessions.GetWithParties(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, sessionID)
		}
		return nil, err
	}
	if session.CandidateID != userID && session.Professional.UserID != userID {
		return nil, fmt.Errorf("%w: not a party to session %d", domain.ErrUnauthorized, sessionID)
	}
	return s.payouts.ComputeBreakdown(session.RateCents, session.ReferrerProID)
}

func (s *SettlementService) rollbackFeedback(sessionID uint) {
	if err := s.feedbacks.DeleteBySessionID(sessionID); err != nil {
		// The feedback row now blocks retries; flag it for an operator.
		log.Printf("[Settlement] session %d: feedback rollback failed: %v", sessionID, err)
		s.audit(0, "feedback_rollback_failed", "session", sessionID, err.Error())
	}
}

// recordTransfer persists the transfer record and mirrors it into the wallet
// ledger. The transfer already happened; a persistence failure here is a
// reconciliation case, not a reason to fail the settlement.
func (s *SettlementService) recordTransfer(record *models.TransferRecord, walletTxType string) {
	if err := s.transfers.Create(record); err != nil {
		log.Printf("[Settlement] transfer %s executed but record failed: %v", record.ProviderRef, err)
		entity, entityID := "session", uint(0)
		if record.SessionID != nil {
			entityID = *record.SessionID
		} else if record.OfferID != nil {
			entity, entityID = "offer", *record.OfferID
		}
		s.audit(record.RecipientUserID, "transfer_unrecorded", entity, entityID,
			fmt.Sprintf("provider ref %s, %d cents: %v", record.ProviderRef, record.AmountCents, err))
		return
	}
	if err := s.wallets.Credit(record.RecipientUserID, record.AmountCents); err != nil {
		log.Printf("[Settlement] wallet credit for user %d failed: %v", record.RecipientUserID, err)
	}
	if err := s.wallets.RecordTransaction(record.RecipientUserID, record.AmountCents, walletTxType, record.ProviderRef); err != nil {
		log.Printf("[Settlement] wallet transaction for user %d failed: %v", record.RecipientUserID, err)
	}
}

func (s *SettlementService) audit(actorID uint, action, entity string, entityID uint, detail string) {
	if s.audits == nil {
		return
	}
	if err := s.audits.Create(&models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Detail:   detail,
	}); err != nil {
		log.Printf("[Settlement] audit write failed (%s %s %d): %v", action, entity, entityID, err)
	}
}
