package handler

import (
	"net/http"

	"brewhire/internal/middleware"
	"brewhire/internal/repository"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	referralRepo *repository.ReferralRepository
	profileRepo  *repository.ProfessionalRepository
}

func NewReferralHandler(referralRepo *repository.ReferralRepository, profileRepo *repository.ProfessionalRepository) *ReferralHandler {
	return &ReferralHandler{referralRepo: referralRepo, profileRepo: profileRepo}
}

// MyCode returns (creating on first use) the professional's referral code.
func (h *ReferralHandler) MyCode(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	code, err := h.referralRepo.GetOrCreateCode(profile.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code.Code})
}

// ListReferred returns the professionals the caller directly referred, their
// level-1 downline.
func (h *ReferralHandler) ListReferred(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	profile, err := h.profileRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	referred, err := h.profileRepo.ListReferred(profile.ID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"referred": referred})
}
