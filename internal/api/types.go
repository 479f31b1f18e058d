package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myrecipebox/backend/internal/service"
)

// RegisterRequest is the signup payload. All four fields are required;
// username and email cannot be changed after account creation.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the credential payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RecipeRequest is the payload for creating a recipe and for submitting an
// edit. On edits, empty fields mean "leave unchanged".
type RecipeRequest struct {
	Name          string `json:"name"`
	Ingredients   string `json:"ingredients"`
	Instructions  string `json:"instructions"`
	Category      string `json:"category"`
	PrepTime      *int   `json:"prep_time"`
	CookTime      *int   `json:"cook_time"`
	TotalTime     *int   `json:"total_time"`
	Servings      *int   `json:"servings"`
	ImageLocation string `json:"image_location"`
}

// errorStatus maps service errors to HTTP status codes. Anything unmapped is
// an infrastructure failure and surfaces as a 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrNoRecipes),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrRecipeDeletionNotAvailable),
		errors.Is(err, service.ErrAccountDeletionNotAvailable),
		errors.Is(err, service.ErrPasswordResetNotAvailable):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the service error as the JSON error response.
func abortWithError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}
