package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/myrecipebox/backend/internal/service"
)

// FavoriteHandler handles the per-user favorites endpoints.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler instance
func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	favorite, err := h.favorites.Add(c.Request.Context(), recipeID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Recipe favorited successfully",
		"favorite": favorite,
	})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	removed, err := h.favorites.Remove(c.Request.Context(), recipeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfavorite recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe unfavorited successfully",
		"removed": removed,
	})
}

func (h *FavoriteHandler) IsFavorite(c *gin.Context) {
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	isFavorite, err := h.favorites.IsFavorite(c.Request.Context(), recipeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	favorites, err := h.favorites.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
