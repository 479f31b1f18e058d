package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/myrecipebox/backend/internal/service"
)

// AuthHandler handles registration, login and the account endpoints.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields (username, name, email, password) are required."})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Name, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := h.accounts.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User added successfully!",
		"user":    user,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required to login."})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
				"note": "Recovering your username or resetting your password is not available through this interface. " +
					"Please email " + service.SupportEmail + " to request assistance.",
			})
			return
		}
		abortWithError(c, err)
		return
	}

	token, err := h.accounts.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    user,
		"token":   token,
	})
}

// CurrentUser returns the identity of the authenticated caller.
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	user, err := h.accounts.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser always returns the contact-support response; accounts are not
// deleted through this interface.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	abortWithError(c, h.accounts.Delete(c.Request.Context(), id))
}

// ResetPassword follows the same contact-support policy as DeleteUser.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	abortWithError(c, h.accounts.ResetPassword(c.Request.Context(), id))
}
