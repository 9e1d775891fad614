package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"brewhire/internal/domain"
	"brewhire/internal/models"
	"brewhire/pkg/calendar"
	"brewhire/pkg/meet"

	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type MeetingClient interface {
	CreateMeeting(ctx context.Context, req meet.MeetingRequest) (*meet.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

type CalendarClient interface {
	CreateEvent(ctx context.Context, token *oauth2.Token, req calendar.EventRequest) (*calendar.Event, error)
}

// BookingStore extends SessionStore with creation; split so the settlement
// service cannot book sessions.
type BookingStore interface {
	SessionStore
	Create(s *models.Session) error
}

type BookingInput struct {
	ProfessionalID  uint
	ScheduledAt     time.Time
	DurationMinutes int
}

// SessionService owns the session lifecycle: booking, confirmation with its
// meeting/calendar side effects, and cancellation. Completion is settlement
// territory and never happens here.
type SessionService struct {
	sessions BookingStore
	profiles ProfileStore
	meetings MeetingClient
	cal      CalendarClient
	notifier LifecycleNotifier
}

// LifecycleNotifier delivers booking lifecycle notifications. Optional.
type LifecycleNotifier interface {
	NotifySessionRequested(proUserID, sessionID uint, candidateName string) error
	NotifySessionConfirmed(candidateUserID, sessionID uint, joinURL string) error
	NotifySessionCancelled(userID, sessionID uint, reason string) error
}

func NewSessionService(sessions BookingStore, profiles ProfileStore, meetings MeetingClient, cal CalendarClient, notifier LifecycleNotifier) *SessionService {
	return &SessionService{
		sessions: sessions,
		profiles: profiles,
		meetings: meetings,
		cal:      cal,
		notifier: notifier,
	}
}

// Book creates a REQUESTED session, snapshotting rate, firm, referrer and
// the candidate's bonus pledge off the current records. None of these change
// on the session afterward, whatever happens to the profile or pledge.
func (s *SessionService) Book(candidate *models.User, in BookingInput) (*models.Session, error) {
	if in.ScheduledAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: scheduled time is in the past", domain.ErrValidation)
	}
	if in.DurationMinutes <= 0 {
		in.DurationMinutes = 30
	}
	profile, err := s.profiles.GetByID(in.ProfessionalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: professional %d", domain.ErrNotFound, in.ProfessionalID)
		}
		return nil, err
	}
	if profile.RateCents <= 0 {
		return nil, fmt.Errorf("%w: professional has no rate configured", domain.ErrValidation)
	}
	session := &models.Session{
		CandidateID:      candidate.ID,
		ProfessionalID:   profile.ID,
		ReferrerProID:    profile.ReferredByID,
		Firm:             profile.Firm,
		BonusPledgeCents: candidate.PledgedBonusCents,
		ScheduledAt:      in.ScheduledAt,
		DurationMinutes:  in.DurationMinutes,
		RateCents:        profile.RateCents,
		Status:           domain.SessionRequested,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	if s.notifier != nil {
		_ = s.notifier.NotifySessionRequested(profile.UserID, session.ID, candidate.Username)
	}
	return session, nil
}

// Confirm moves a REQUESTED session to CONFIRMED. Only the addressed
// professional may confirm, and only with a payout destination in place;
// otherwise settlement would be doomed from the start.
//
// The video meeting is mandatory: no meeting, no confirmation. The calendar
// event is not; an expired calendar credential or a provider error is logged
// and the confirmation proceeds, since the chat happens over the meeting
// link either way.
func (s *SessionService) Confirm(ctx context.Context, proUserID, sessionID uint) (*models.Session, error) {
	session, err := s.sessions.GetWithParties(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", domain.ErrNotFound, sessionID)
		}
		return nil, err
	}
	pro := &session.Professional
	if pro.UserID != proUserID {
		return nil, fmt.Errorf("%w: session %d is addressed to another professional", domain.ErrUnauthorized, sessionID)
	}
	if !domain.CanTransitionSession(session.Status, domain.SessionConfirmed) {
		return nil, fmt.Errorf("%w: cannot confirm session in status %s", domain.ErrInvalidState, session.Status)
	}
	if !pro.HasPayoutDestination() {
		return nil, fmt.Errorf("%w: professional %d", domain.ErrPayoutDestinationMissing, pro.ID)
	}

	meeting, err := s.meetings.CreateMeeting(ctx, meet.MeetingRequest{
		HostName:        pro.DisplayName,
		GuestName:       session.Candidate.Username,
		StartTime:       session.ScheduledAt,
		DurationMinutes: session.DurationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: meeting creation: %v", domain.ErrExternalService, err)
	}
	session.MeetingID = meeting.ID
	session.MeetingJoinURL = meeting.JoinURL

	if s.cal != nil && pro.CalendarToken != "" {
		if eventID, err := s.createCalendarEvent(ctx, session, pro); err != nil {
			// Best effort. A dead credential or calendar outage must not
			// block the chat.
			log.Printf("[Session] session %d: calendar event failed, proceeding: %v", sessionID, err)
		} else {
			session.CalendarEventID = eventID
		}
	}

	session.Status = domain.SessionConfirmed
	if err := s.sessions.Update(session); err != nil {
		// Clean up the orphaned meeting; the session is still REQUESTED.
		if delErr := s.meetings.DeleteMeeting(ctx, meeting.ID); delErr != nil {
			log.Printf("[Session] session %d: orphaned meeting %s not deleted: %v", sessionID, meeting.ID, delErr)
		}
		return nil, fmt.Errorf("confirm session: %w", err)
	}
	if s.notifier != nil {
		_ = s.notifier.NotifySessionConfirmed(session.CandidateID, session.ID, meeting.JoinURL)
	}
	return session, nil
}

func (s *SessionService) createCalendarEvent(ctx context.Context, session *models.Session, pro *models.ProfessionalProfile) (string, error) {
	token, err := calendar.ParseToken(pro.CalendarToken)
	if err != nil || token == nil {
		return "", err
	}
	event, err := s.cal.CreateEvent(ctx, token, calendar.EventRequest{
		Title:           fmt.Sprintf("Coffee chat with %s", session.Candidate.Username),
		Description:     fmt.Sprintf("BrewHire session %d", session.ID),
		StartTime:       session.ScheduledAt,
		DurationMinutes: session.DurationMinutes,
		MeetingURL:      session.MeetingJoinURL,
		AttendeeEmail:   session.Candidate.Email,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrTokenExpired) {
			return "", fmt.Errorf("calendar credential expired for professional %d: %w", pro.ID, err)
		}
		return "", err
	}
	return event.ID, nil
}

// Cancel moves a session to CANCELLED from either of the live states.
// Either party may cancel; the reason is recorded. A confirmed session's
// meeting gets a best-effort delete.
func (s *SessionService) Cancel(ctx context.Context, userID, sessionID uint, reason string) (*models.Session, error) {
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
	if !domain.CanTransitionSession(session.Status, domain.SessionCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel session in status %s", domain.ErrInvalidState, session.Status)
	}
	wasConfirmed := session.Status == domain.SessionConfirmed
	now := time.Now()
	session.Status = domain.SessionCancelled
	session.CancelledAt = &now
	session.CancelReason = reason
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	if wasConfirmed && session.MeetingID != "" {
		if err := s.meetings.DeleteMeeting(ctx, session.MeetingID); err != nil {
			log.Printf("[Session] session %d: meeting %s not deleted on cancel: %v", sessionID, session.MeetingID, err)
		}
	}
	if s.notifier != nil {
		other := session.CandidateID
		if userID == session.CandidateID {
			other = session.Professional.UserID
		}
		_ = s.notifier.NotifySessionCancelled(other, session.ID, reason)
	}
	return session, nil
}
