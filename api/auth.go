package api

import (
	"errors"
	"net/http"

	"github.com/dhafinr/dompetku/backend/db"
	"github.com/dhafinr/dompetku/backend/models"
	"github.com/gin-gonic/gin"
)

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.CreateUser true "Credentials"
// @Success 201 {object} models.RegisterResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var input models.CreateUser
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.storage.CreateUser(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{ID: user.ID, Username: user.Username})
}

// Login godoc
// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param input body models.CreateUser true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input models.CreateUser
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Неизвестное имя и неверный пароль дают один и тот же ответ
	user, err := h.storage.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, db.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := h.issueToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

// Me godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} models.MeResponse
// @Failure 401 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) Me(c *gin.Context) {
	user, err := h.storage.GetUserByID(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, models.MeResponse{ID: user.ID, Username: user.Username})
}
