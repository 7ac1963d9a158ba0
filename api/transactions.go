package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dhafinr/dompetku/backend/db"
	"github.com/dhafinr/dompetku/backend/models"
	"github.com/gin-gonic/gin"
)

// writeTransactionError — общая раскладка ошибок create/update по статусам:
// отсутствующие или чужие ссылки — 404, нарушение типа категории или даты — 400.
func writeTransactionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrTransactionNotFound),
		errors.Is(err, db.ErrWalletNotFound),
		errors.Is(err, db.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, db.ErrCategoryTypeMismatch),
		errors.Is(err, models.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseTransactionFilter(c *gin.Context) (*models.TransactionFilter, error) {
	filter := &models.TransactionFilter{
		Type: c.Query("type"),
		Sort: c.Query("sort"),
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid category_id parameter")
		}
		filter.CategoryID = id
	}
	if v := c.Query("min_amount"); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("invalid min_amount parameter")
		}
		filter.MinAmount = amount
	}
	if v := c.Query("max_amount"); v != "" {
		amount, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("invalid max_amount parameter")
		}
		filter.MaxAmount = amount
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return filter, nil
}

// GetTransactions godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param type query string false "Filter by type" Enums(income, expense, transfer)
// @Param category_id query int false "Filter by category"
// @Param min_amount query int false "Minimum amount"
// @Param max_amount query int false "Maximum amount"
// @Param sort query string false "Sort by date" Enums(asc, desc)
// @Success 200 {array} models.TransactionView
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transactions, err := h.storage.GetTransactions(userID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.TransactionView
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	transaction, err := h.storage.GetTransaction(userID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if transaction == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param input body models.CreateTransaction true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var input models.CreateTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.storage.CreateTransaction(userID(c), &input)
	if err != nil {
		writeTransactionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction godoc
// @Summary Replace a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param input body models.CreateTransaction true "Transaction"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var input models.CreateTransaction
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.storage.UpdateTransaction(userID(c), id, &input)
	if err != nil {
		writeTransactionError(c, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.storage.DeleteTransaction(userID(c), id); err != nil {
		if errors.Is(err, db.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTotalBalance godoc
// @Summary Net balance across all wallets
// @Description Income minus expense; transfers move money between the user's own wallets and cancel out.
// @Tags transactions
// @Produce json
// @Success 200 {object} models.BalanceResponse
// @Failure 401 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /transactions/total [get]
func (h *Handler) GetTotalBalance(c *gin.Context) {
	balance, err := h.storage.GetBalance(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.BalanceResponse{Balance: balance})
}
