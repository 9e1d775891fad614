package service

import (
	"context"
	"encoding/json"
	"fmt"

	"brewhire/internal/models"
	"brewhire/internal/repository"
	"brewhire/internal/ws"
)

// NotificationService writes in-app notifications and mirrors them as FCM
// pushes and WebSocket events. It implements both Notifier and
// LifecycleNotifier.
type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
	events   *ws.Hub
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService, events *ws.Hub) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm, events: events}
}

func (s *NotificationService) publish(userID uint, event ws.Event) {
	if s.events != nil {
		s.events.PublishToUser(userID, event)
	}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u.FCMToken == "" {
		return
	}
	_ = s.fcm.SendToUser(context.Background(), u.FCMToken, notifType, title, body, data)
}

func (s *NotificationService) NotifySessionRequested(proUserID, sessionID uint, candidateName string) error {
	s.publish(proUserID, ws.SessionRequested(sessionID, candidateName))
	return s.Notify(proUserID, "SESSION_REQUESTED", "New coffee chat request",
		candidateName+" requested a session with you", map[string]interface{}{"session_id": sessionID})
}

func (s *NotificationService) NotifySessionConfirmed(candidateUserID, sessionID uint, joinURL string) error {
	s.publish(candidateUserID, ws.SessionConfirmed(sessionID, joinURL))
	return s.Notify(candidateUserID, "SESSION_CONFIRMED", "Session confirmed",
		"Your coffee chat is confirmed", map[string]interface{}{"session_id": sessionID, "join_url": joinURL})
}

func (s *NotificationService) NotifySessionCancelled(userID, sessionID uint, reason string) error {
	s.publish(userID, ws.SessionCancelled(sessionID, reason))
	return s.Notify(userID, "SESSION_CANCELLED", "Session cancelled",
		"A session was cancelled: "+reason, map[string]interface{}{"session_id": sessionID})
}

func (s *NotificationService) NotifySessionSettled(userID, sessionID uint, amountCents int64) error {
	s.publish(userID, ws.SessionSettled(sessionID, amountCents))
	return s.Notify(userID, "SESSION_SETTLED", "Payout sent",
		fmt.Sprintf("Your session payout of %s is on the way", formatCents(amountCents)),
		map[string]interface{}{"session_id": sessionID, "amount_cents": amountCents})
}

func (s *NotificationService) NotifyReferralBonus(userID, sessionID uint, level int, amountCents int64) error {
	s.publish(userID, ws.ReferralBonus(sessionID, level, amountCents))
	return s.Notify(userID, "REFERRAL_BONUS", "Referral bonus earned",
		fmt.Sprintf("You earned a level %d referral bonus of %s", level, formatCents(amountCents)),
		map[string]interface{}{"session_id": sessionID, "level": level, "amount_cents": amountCents})
}

func (s *NotificationService) NotifyOfferBonus(userID, offerID uint, amountCents int64) error {
	s.publish(userID, ws.OfferBonus(offerID, amountCents))
	return s.Notify(userID, "OFFER_BONUS", "Placement bonus",
		fmt.Sprintf("A candidate you chatted with accepted an offer. Bonus: %s", formatCents(amountCents)),
		map[string]interface{}{"offer_id": offerID, "amount_cents": amountCents})
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
