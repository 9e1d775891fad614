package ws

import "time"

// Event types pushed over /ws/events.
const (
	EventSessionRequested = "session.requested"
	EventSessionConfirmed = "session.confirmed"
	EventSessionCancelled = "session.cancelled"
	EventSessionSettled   = "session.settled"
	EventReferralBonus    = "referral.bonus"
	EventOfferBonus       = "offer.bonus"
)

// Event is the wire shape for lifecycle pushes. Fields are sparse; each event
// type fills the ones it has.
type Event struct {
	Type        string    `json:"type"`
	SessionID   uint      `json:"session_id,omitempty"`
	OfferID     uint      `json:"offer_id,omitempty"`
	Level       int       `json:"level,omitempty"`
	AmountCents int64     `json:"amount_cents,omitempty"`
	JoinURL     string    `json:"join_url,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	At          time.Time `json:"at"`
}

func newEvent(eventType string) Event {
	return Event{Type: eventType, At: time.Now()}
}

func SessionRequested(sessionID uint, candidateName string) Event {
	e := newEvent(EventSessionRequested)
	e.SessionID = sessionID
	e.Actor = candidateName
	return e
}

func SessionConfirmed(sessionID uint, joinURL string) Event {
	e := newEvent(EventSessionConfirmed)
	e.SessionID = sessionID
	e.JoinURL = joinURL
	return e
}

func SessionCancelled(sessionID uint, reason string) Event {
	e := newEvent(EventSessionCancelled)
	e.SessionID = sessionID
	e.Reason = reason
	return e
}

func SessionSettled(sessionID uint, amountCents int64) Event {
	e := newEvent(EventSessionSettled)
	e.SessionID = sessionID
	e.AmountCents = amountCents
	return e
}

func ReferralBonus(sessionID uint, level int, amountCents int64) Event {
	e := newEvent(EventReferralBonus)
	e.SessionID = sessionID
	e.Level = level
	e.AmountCents = amountCents
	return e
}

func OfferBonus(offerID uint, amountCents int64) Event {
	e := newEvent(EventOfferBonus)
	e.OfferID = offerID
	e.AmountCents = amountCents
	return e
}
