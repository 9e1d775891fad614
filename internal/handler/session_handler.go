package handler

import (
	"net/http"
	"time"

	"brewhire/internal/domain"
	"brewhire/internal/middleware"
	"brewhire/internal/repository"
	"brewhire/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions    *service.SessionService
	settlements *service.SettlementService
	sessionRepo *repository.SessionRepository
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfessionalRepository
}

func NewSessionHandler(
	sessions *service.SessionService,
	settlements *service.SettlementService,
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfessionalRepository,
) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		settlements: settlements,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

type BookSessionRequest struct {
	ProfessionalID  uint      `json:"professional_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"omitempty,min=15,max=120"`
}

// Book creates a REQUESTED session. Candidate only.
func (h *SessionHandler) Book(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	candidate, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	session, err := h.sessions.Book(candidate, service.BookingInput{
		ProfessionalID:  req.ProfessionalID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// List returns the caller's sessions, from whichever side they sit on.
func (h *SessionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	if middleware.GetRole(c) == domain.RoleProfessional {
		profile, err := h.profileRepo.GetByUserID(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		sessions, err := h.sessionRepo.ListByProfessionalID(profile.ID, limit, offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
		return
	}
	sessions, err := h.sessionRepo.ListByCandidateID(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	session, err := h.sessionRepo.GetWithParties(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if session.CandidateID != userID && session.Professional.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a party to this session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Confirm moves a session to CONFIRMED, creating the meeting and the calendar
// event. Professional only.
func (h *SessionHandler) Confirm(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	session, err := h.sessions.Confirm(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" binding:"max=255"`
	}
	_ = c.ShouldBindJSON(&req)
	session, err := h.sessions.Cancel(c.Request.Context(), userID, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

type FeedbackRequest struct {
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Strengths string `json:"strengths" binding:"max=4000"`
	NextSteps string `json:"next_steps" binding:"max=4000"`
}

// SubmitFeedback settles the session: feedback in, payouts out. Professional
// only; runs at most once per session.
func (h *SessionHandler) SubmitFeedback(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, breakdown, err := h.settlements.SubmitFeedback(c.Request.Context(), userID, id, service.FeedbackInput{
		Rating:    req.Rating,
		Strengths: req.Strengths,
		NextSteps: req.NextSteps,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":   session,
		"breakdown": breakdown,
	})
}

// PayoutPreview shows the split a settlement would produce, without moving
// money. Either party may look.
func (h *SessionHandler) PayoutPreview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	breakdown, err := h.settlements.PreviewSessionPayout(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}
