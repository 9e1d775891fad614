package handler

import (
	"net/http"

	"brewhire/internal/middleware"
	"brewhire/internal/repository"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletRepo   *repository.WalletRepository
	transferRepo *repository.TransferRepository
}

func NewWalletHandler(walletRepo *repository.WalletRepository, transferRepo *repository.TransferRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo, transferRepo: transferRepo}
}

// GetBalance returns the caller's earnings ledger balance. The ledger mirrors
// transfers executed on the payment rail; it is a history, not spendable
// platform money.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.walletRepo.GetOrCreate(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balance_cents": w.BalanceCents,
		"currency":      w.Currency,
	})
}

func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	txs, err := h.walletRepo.ListTransactions(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// ListTransfers returns the raw rail transfers paid to the caller, the
// source records behind the wallet ledger.
func (h *WalletHandler) ListTransfers(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	transfers, err := h.transferRepo.ListByRecipient(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": transfers})
}
