package domain

import "testing"

func TestCanTransitionSession(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{SessionRequested, SessionConfirmed, true},
		{SessionRequested, SessionCancelled, true},
		{SessionRequested, SessionCompleted, false},
		{SessionConfirmed, SessionCompleted, true},
		{SessionConfirmed, SessionCancelled, true},
		{SessionConfirmed, SessionRequested, false},
		{SessionCompleted, SessionCancelled, false},
		{SessionCompleted, SessionConfirmed, false},
		{SessionCancelled, SessionRequested, false},
		{SessionCancelled, SessionConfirmed, false},
		{"", SessionConfirmed, false},
		{SessionRequested, "", false},
	}
	for _, tt := range tests {
		if got := CanTransitionSession(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionSession(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	for _, s := range []string{SessionRequested, SessionConfirmed} {
		if SessionStatusTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []string{SessionCompleted, SessionCancelled} {
		if !SessionStatusTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestCanTransitionOffer(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OfferPending, OfferAccepted, true},
		{OfferPending, OfferDeclined, true},
		{OfferPending, OfferExpired, true},
		{OfferAccepted, OfferDeclined, false},
		{OfferAccepted, OfferPending, false},
		{OfferDeclined, OfferAccepted, false},
		{OfferExpired, OfferAccepted, false},
	}
	for _, tt := range tests {
		if got := CanTransitionOffer(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionOffer(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
