package domain

const (
	RoleCandidate    = "CANDIDATE"
	RoleProfessional = "PROFESSIONAL"
	RoleAdmin        = "ADMIN"
)

const (
	SessionRequested = "REQUESTED"
	SessionConfirmed = "CONFIRMED"
	SessionCompleted = "COMPLETED"
	SessionCancelled = "CANCELLED"
)

const (
	OfferPending  = "PENDING"
	OfferAccepted = "ACCEPTED"
	OfferDeclined = "DECLINED"
	OfferExpired  = "EXPIRED"
)

const (
	TransferPurposeSessionNet    = "SESSION_NET"
	TransferPurposeReferralBonus = "REFERRAL_BONUS"
	TransferPurposeOfferBonus    = "OFFER_BONUS"
)

const (
	WalletTxTypeEarning       = "EARNING"
	WalletTxTypeReferralBonus = "REFERRAL_BONUS"
	WalletTxTypeOfferBonus    = "OFFER_BONUS"
)
