package handler

import (
	"net/http"

	"brewhire/internal/middleware"
	"brewhire/internal/repository"
	"brewhire/pkg/calendar"

	"github.com/gin-gonic/gin"
)

type ProfessionalHandler struct {
	profileRepo *repository.ProfessionalRepository
}

func NewProfessionalHandler(profileRepo *repository.ProfessionalRepository) *ProfessionalHandler {
	return &ProfessionalHandler{profileRepo: profileRepo}
}

// Get returns a professional's public profile.
func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	profile, err := h.profileRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "professional not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":                profile,
		"has_payout_destination": profile.HasPayoutDestination(),
	})
}

func (h *ProfessionalHandler) MyProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":                profile,
		"has_payout_destination": profile.HasPayoutDestination(),
		"has_calendar":            profile.CalendarToken != "",
	})
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=128"`
	Firm        *string `json:"firm" binding:"omitempty,max=128"`
	Title       *string `json:"title" binding:"omitempty,max=128"`
	Bio         *string `json:"bio" binding:"omitempty,max=4000"`
	RateCents   *int64  `json:"rate_cents" binding:"omitempty,min=0"`
	// PayoutAccountID is the account on the payment rail. Required before the
	// professional can confirm or settle sessions.
	PayoutAccountID *string `json:"payout_account_id" binding:"omitempty,max=128"`
	// CalendarToken is the serialized OAuth credential from the calendar
	// provider's consent flow.
	CalendarToken *string `json:"calendar_token"`
}

// UpdateProfile patches the caller's professional profile. Rate changes only
// affect sessions booked afterward; booked sessions keep their snapshot.
func (h *ProfessionalHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Firm != nil {
		profile.Firm = *req.Firm
	}
	if req.Title != nil {
		profile.Title = *req.Title
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.RateCents != nil {
		profile.RateCents = *req.RateCents
	}
	if req.PayoutAccountID != nil {
		profile.PayoutAccountID = *req.PayoutAccountID
	}
	if req.CalendarToken != nil {
		if *req.CalendarToken != "" {
			if _, err := calendar.ParseToken(*req.CalendarToken); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid calendar token"})
				return
			}
		}
		profile.CalendarToken = *req.CalendarToken
	}
	if err := h.profileRepo.Update(profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
