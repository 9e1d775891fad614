package domain

// sessionTransitions is the full set of legal session status moves.
// COMPLETED and CANCELLED are terminal. COMPLETED is only ever written by the
// settlement flow, never by a direct status edit.
var sessionTransitions = map[string]map[string]bool{
	SessionRequested: {
		SessionConfirmed: true,
		SessionCancelled: true,
	},
	SessionConfirmed: {
		SessionCompleted: true,
		SessionCancelled: true,
	},
}

// CanTransitionSession reports whether a session may move from one status to another.
func CanTransitionSession(from, to string) bool {
	return sessionTransitions[from][to]
}

// SessionStatusTerminal reports whether a session status admits no further transitions.
func SessionStatusTerminal(status string) bool {
	return status == SessionCompleted || status == SessionCancelled
}

var offerTransitions = map[string]map[string]bool{
	OfferPending: {
		OfferAccepted: true,
		OfferDeclined: true,
		OfferExpired:  true,
	},
}

// CanTransitionOffer reports whether an offer may move from one status to another.
// Only PENDING -> ACCEPTED triggers a bonus payout.
func CanTransitionOffer(from, to string) bool {
	return offerTransitions[from][to]
}
