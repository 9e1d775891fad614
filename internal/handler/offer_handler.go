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

type OfferHandler struct {
	settlements *service.SettlementService
	offerRepo   *repository.OfferRepository
}

func NewOfferHandler(settlements *service.SettlementService, offerRepo *repository.OfferRepository) *OfferHandler {
	return &OfferHandler{settlements: settlements, offerRepo: offerRepo}
}

type CreateOfferRequest struct {
	Firm string `json:"firm" binding:"required,max=128"`
}

// Create reports a job offer. Candidate only. The first-chat professional and
// the bonus pledge are captured here, once.
func (h *OfferHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	offer, err := h.settlements.CreateOffer(userID, req.Firm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

// List returns the candidate's offers. Pending offers past their expiry are
// shown as EXPIRED without waiting for anyone to touch them.
func (h *OfferHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	offers, err := h.offerRepo.ListByCandidateID(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	now := time.Now()
	for i := range offers {
		o := &offers[i]
		if o.Status == domain.OfferPending && o.ExpiresAt != nil && o.ExpiresAt.Before(now) {
			o.Status = domain.OfferExpired
			_ = h.offerRepo.Update(o)
		}
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

func (h *OfferHandler) Accept(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	offer, err := h.settlements.AcceptOffer(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func (h *OfferHandler) Decline(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	offer, err := h.settlements.DeclineOffer(userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}
