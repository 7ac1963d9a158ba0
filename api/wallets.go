package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dhafinr/dompetku/backend/db"
	"github.com/dhafinr/dompetku/backend/models"
	"github.com/gin-gonic/gin"
)

// GetWallets godoc
// @Summary List wallets with derived balances
// @Tags wallets
// @Produce json
// @Success 200 {array} models.Wallet
// @Failure 401 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /wallets [get]
func (h *Handler) GetWallets(c *gin.Context) {
	wallets, err := h.storage.GetWallets(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, wallets)
}

// CreateWallet godoc
// @Summary Create a wallet
// @Tags wallets
// @Accept json
// @Produce json
// @Param input body models.CreateWallet true "Wallet"
// @Success 201 {object} models.Wallet
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /wallets [post]
func (h *Handler) CreateWallet(c *gin.Context) {
	var input models.CreateWallet
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.storage.CreateWallet(userID(c), &input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, wallet)
}

// DeleteWallet godoc
// @Summary Delete a wallet
// @Tags wallets
// @Produce json
// @Param id path int true "Wallet ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /wallets/{id} [delete]
func (h *Handler) DeleteWallet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.storage.DeleteWallet(userID(c), id); err != nil {
		switch {
		case errors.Is(err, db.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, db.ErrWalletInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
