package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"brewhire/internal/domain"
	"brewhire/internal/models"
	"brewhire/pkg/calendar"
	"brewhire/pkg/meet"

	"golang.org/x/oauth2"
)

type fakeMeetings struct {
	created   []meet.MeetingRequest
	deleted   []string
	createErr error
	seq       int
}

func (f *fakeMeetings) CreateMeeting(ctx context.Context, req meet.MeetingRequest) (*meet.Meeting, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	f.seq++
	return &meet.Meeting{ID: "mtg_1", JoinURL: "https://meet.example.com/mtg_1"}, nil
}

func (f *fakeMeetings) DeleteMeeting(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCalendar struct {
	events []calendar.EventRequest
	err    error
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, token *oauth2.Token, req calendar.EventRequest) (*calendar.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.events = append(f.events, req)
	return &calendar.Event{ID: "evt_1"}, nil
}

type sessionFixture struct {
	svc      *SessionService
	sessions *fakeSessions
	profiles *fakeProfiles
	meetings *fakeMeetings
	cal      *fakeCalendar
}

func newSessionFixture() *sessionFixture {
	referrer := uint(11)
	pro := &models.ProfessionalProfile{
		ID: 10, UserID: 100, DisplayName: "Dana", Firm: "Acme Capital",
		RateCents: 10000, ReferredByID: &referrer,
		PayoutAccountID: "acct_pro",
		CalendarToken:   `{"access_token":"tok","token_type":"Bearer"}`,
	}
	fx := &sessionFixture{
		sessions: &fakeSessions{sessions: map[uint]*models.Session{}},
		profiles: &fakeProfiles{profiles: map[uint]*models.ProfessionalProfile{10: pro}},
		meetings: &fakeMeetings{},
		cal:      &fakeCalendar{},
	}
	fx.svc = NewSessionService(fx.sessions, fx.profiles, fx.meetings, fx.cal, nil)
	return fx
}

func testCandidate() *models.User {
	return &models.User{ID: 1, Username: "casey", Email: "casey@example.com", PledgedBonusCents: 10000}
}

func (fx *sessionFixture) requested(t *testing.T) *models.Session {
	t.Helper()
	session, err := fx.svc.Book(testCandidate(), BookingInput{
		ProfessionalID: 10,
		ScheduledAt:    time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	pro := fx.profiles.profiles[10]
	session.Candidate = *testCandidate()
	session.Professional = *pro
	return session
}

func TestBookSnapshotsProfileAndPledge(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	if session.Status != domain.SessionRequested {
		t.Errorf("status = %s, want REQUESTED", session.Status)
	}
	if session.RateCents != 10000 {
		t.Errorf("rate = %d, want 10000", session.RateCents)
	}
	if session.Firm != "Acme Capital" {
		t.Errorf("firm = %s", session.Firm)
	}
	if session.ReferrerProID == nil || *session.ReferrerProID != 11 {
		t.Errorf("referrer = %v, want 11", session.ReferrerProID)
	}
	if session.BonusPledgeCents != 10000 {
		t.Errorf("pledge = %d, want 10000", session.BonusPledgeCents)
	}
	if session.DurationMinutes != 30 {
		t.Errorf("duration = %d, want the 30 minute default", session.DurationMinutes)
	}

	// Later profile and pledge changes must not leak into the session.
	fx.profiles.profiles[10].RateCents = 20000
	fx.profiles.profiles[10].Firm = "Other Firm"
	if session.RateCents != 10000 || session.Firm != "Acme Capital" {
		t.Error("session picked up post-booking profile changes")
	}
}

func TestBookValidation(t *testing.T) {
	fx := newSessionFixture()
	_, err := fx.svc.Book(testCandidate(), BookingInput{ProfessionalID: 10, ScheduledAt: time.Now().Add(-time.Hour)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("past time: err = %v, want ErrValidation", err)
	}
	_, err = fx.svc.Book(testCandidate(), BookingInput{ProfessionalID: 404, ScheduledAt: time.Now().Add(time.Hour)})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing professional: err = %v, want ErrNotFound", err)
	}
	fx.profiles.profiles[10].RateCents = 0
	_, err = fx.svc.Book(testCandidate(), BookingInput{ProfessionalID: 10, ScheduledAt: time.Now().Add(time.Hour)})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("no rate: err = %v, want ErrValidation", err)
	}
}

func TestConfirmCreatesMeetingAndEvent(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	confirmed, err := fx.svc.Confirm(context.Background(), 100, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if confirmed.Status != domain.SessionConfirmed {
		t.Errorf("status = %s, want CONFIRMED", confirmed.Status)
	}
	if confirmed.MeetingID != "mtg_1" || confirmed.MeetingJoinURL == "" {
		t.Errorf("meeting not attached: %+v", confirmed)
	}
	if confirmed.CalendarEventID != "evt_1" {
		t.Errorf("calendar event = %s, want evt_1", confirmed.CalendarEventID)
	}
	if len(fx.cal.events) != 1 || fx.cal.events[0].MeetingURL != confirmed.MeetingJoinURL {
		t.Errorf("calendar event request = %+v", fx.cal.events)
	}
}

func TestConfirmGuards(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	if _, err := fx.svc.Confirm(context.Background(), 999, session.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("other professional: err = %v, want ErrUnauthorized", err)
	}
	if _, err := fx.svc.Confirm(context.Background(), 100, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing session: err = %v, want ErrNotFound", err)
	}
	for _, status := range []string{domain.SessionConfirmed, domain.SessionCompleted, domain.SessionCancelled} {
		session.Status = status
		if _, err := fx.svc.Confirm(context.Background(), 100, session.ID); !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("status %s: err = %v, want ErrInvalidState", status, err)
		}
	}
}

func TestConfirmRequiresPayoutDestination(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	session.Professional.PayoutAccountID = ""
	_, err := fx.svc.Confirm(context.Background(), 100, session.ID)
	if !errors.Is(err, domain.ErrPayoutDestinationMissing) {
		t.Fatalf("err = %v, want ErrPayoutDestinationMissing", err)
	}
	if len(fx.meetings.created) != 0 {
		t.Error("meeting created for an unconfirmable session")
	}
	if session.Status != domain.SessionRequested {
		t.Errorf("status = %s, want REQUESTED", session.Status)
	}
}

func TestConfirmMeetingFailureIsFatal(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	fx.meetings.createErr = errors.New("provider down")
	_, err := fx.svc.Confirm(context.Background(), 100, session.ID)
	if !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("err = %v, want ErrExternalService", err)
	}
	if session.Status != domain.SessionRequested {
		t.Errorf("status = %s, want REQUESTED", session.Status)
	}
	if len(fx.cal.events) != 0 {
		t.Error("calendar event created without a meeting")
	}
}

func TestConfirmCalendarFailureIsTolerated(t *testing.T) {
	fx := newSessionFixture()
	for name, setup := range map[string]func(*sessionFixture){
		"provider error":   func(fx *sessionFixture) { fx.cal.err = errors.New("calendar down") },
		"expired token":    func(fx *sessionFixture) { fx.cal.err = calendar.ErrTokenExpired },
		"no token on file": func(fx *sessionFixture) { fx.profiles.profiles[10].CalendarToken = "" },
	} {
		fx = newSessionFixture()
		setup(fx)
		session := fx.requested(t)
		confirmed, err := fx.svc.Confirm(context.Background(), 100, session.ID)
		if err != nil {
			t.Fatalf("%s: calendar trouble must not block confirmation: %v", name, err)
		}
		if confirmed.Status != domain.SessionConfirmed {
			t.Errorf("%s: status = %s, want CONFIRMED", name, confirmed.Status)
		}
		if confirmed.CalendarEventID != "" {
			t.Errorf("%s: event id = %s, want empty", name, confirmed.CalendarEventID)
		}
		if confirmed.MeetingID == "" {
			t.Errorf("%s: meeting missing", name)
		}
	}
}

func TestConfirmUpdateFailureDeletesMeeting(t *testing.T) {
	fx := newSessionFixture()
	session := fx.requested(t)
	fx.sessions.updateErr = errors.New("db gone")
	_, err := fx.svc.Confirm(context.Background(), 100, session.ID)
	if err == nil {
		t.Fatal("expected error when the confirmation cannot be recorded")
	}
	if len(fx.meetings.deleted) != 1 || fx.meetings.deleted[0] != "mtg_1" {
		t.Errorf("orphaned meeting not cleaned up: %v", fx.meetings.deleted)
	}
}

func TestCancel(t *testing.T) {
	t.Run("candidate cancels a requested session", func(t *testing.T) {
		fx := newSessionFixture()
		session := fx.requested(t)
		cancelled, err := fx.svc.Cancel(context.Background(), 1, session.ID, "schedule conflict")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != domain.SessionCancelled || cancelled.CancelledAt == nil {
			t.Errorf("session not cancelled: %+v", cancelled)
		}
		if cancelled.CancelReason != "schedule conflict" {
			t.Errorf("reason = %s", cancelled.CancelReason)
		}
		if len(fx.meetings.deleted) != 0 {
			t.Error("meeting delete attempted with no meeting")
		}
	})

	t.Run("professional cancels a confirmed session", func(t *testing.T) {
		fx := newSessionFixture()
		session := fx.requested(t)
		if _, err := fx.svc.Confirm(context.Background(), 100, session.ID); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		cancelled, err := fx.svc.Cancel(context.Background(), 100, session.ID, "emergency")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != domain.SessionCancelled {
			t.Errorf("status = %s, want CANCELLED", cancelled.Status)
		}
		if len(fx.meetings.deleted) != 1 || fx.meetings.deleted[0] != "mtg_1" {
			t.Errorf("meeting not deleted on cancel: %v", fx.meetings.deleted)
		}
	})

	t.Run("guards", func(t *testing.T) {
		fx := newSessionFixture()
		session := fx.requested(t)
		if _, err := fx.svc.Cancel(context.Background(), 999, session.ID, ""); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("non-party: err = %v, want ErrUnauthorized", err)
		}
		session.Status = domain.SessionCompleted
		if _, err := fx.svc.Cancel(context.Background(), 1, session.ID, ""); !errors.Is(err, domain.ErrInvalidState) {
			t.Errorf("completed: err = %v, want ErrInvalidState", err)
		}
	})
}
