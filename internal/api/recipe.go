package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/myrecipebox/backend/internal/service"
)

// featuredCacheKey holds the id of the day's featured recipe in redis.
const featuredCacheKey = "recipes:featured"

// FeaturedCache is the slice of the redis client the featured-recipe
// endpoint needs. *redis.Client satisfies it.
type FeaturedCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RecipeHandler handles the recipe workflow endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  service.ImageStore
	cache   FeaturedCache
}

// NewRecipeHandler creates a new RecipeHandler instance. images and cache
// may be nil; the image endpoint and featured caching degrade accordingly.
func NewRecipeHandler(recipes *service.RecipeService, images service.ImageStore, cache FeaturedCache) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		cache:   cache,
	}
}

// ListRecipes searches recipes. q matches name, ingredients and category;
// category narrows to one category. No q returns everything.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// MyRecipes lists the authenticated caller's own recipes.
func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	recipes, err := h.recipes.List(c.Request.Context(), &userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" || req.Ingredients == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and ingredients are required."})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	recipe, err := h.recipes.Create(c.Request.Context(), userID, service.CreateRecipeInput{
		Name:          req.Name,
		Ingredients:   req.Ingredients,
		Instructions:  req.Instructions,
		Category:      req.Category,
		PrepTime:      req.PrepTime,
		CookTime:      req.CookTime,
		TotalTime:     req.TotalTime,
		Servings:      req.Servings,
		ImageLocation: req.ImageLocation,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Your recipe '%s' is added.", recipe.Name),
		"recipe":  recipe,
	})
}

// UpdateRecipe submits an edit. Owners update in place; anyone else gets a
// fork owned by them, and the original recipe is left untouched.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	userName := c.MustGet("user_name").(string)

	recipe, role, err := h.recipes.SubmitEdit(c.Request.Context(), id, userID, userName, service.UpdateRecipeInput{
		Name:          req.Name,
		Ingredients:   req.Ingredients,
		Instructions:  req.Instructions,
		Category:      req.Category,
		PrepTime:      req.PrepTime,
		CookTime:      req.CookTime,
		TotalTime:     req.TotalTime,
		Servings:      req.Servings,
		ImageLocation: req.ImageLocation,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	if role == service.EditorNonOwner {
		c.JSON(http.StatusCreated, gin.H{
			"message": fmt.Sprintf("You don't own this recipe, so your changes were saved as '%s'.", recipe.Name),
			"recipe":  recipe,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  recipe,
	})
}

// DeleteRecipe always returns the contact-support response.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}
	abortWithError(c, h.recipes.Delete(c.Request.Context(), id))
}

// RandomRecipe picks one recipe uniformly, skipping ids in the exclude
// query parameter.
func (h *RecipeHandler) RandomRecipe(c *gin.Context) {
	var exclude []uuid.UUID
	if ex := c.Query("exclude"); ex != "" {
		for _, raw := range strings.Split(ex, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id in exclude"})
				return
			}
			exclude = append(exclude, id)
		}
	}

	recipe, err := h.recipes.Random(c.Request.Context(), exclude)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Here is a random recipe!",
		"recipe":  recipe,
	})
}

// FeaturedRecipe returns the recipe of the day. The pick is cached in redis
// for 24 hours; without redis every call is a fresh random pick.
func (h *RecipeHandler) FeaturedRecipe(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, featuredCacheKey).Result(); err == nil {
			if id, err := uuid.Parse(cached); err == nil {
				if recipe, err := h.recipes.Get(ctx, id); err == nil {
					c.JSON(http.StatusOK, gin.H{"recipe": recipe})
					return
				}
			}
		}
	}

	recipe, err := h.recipes.Random(ctx, nil)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if h.cache != nil {
		// Cache failures only cost us the caching, not the response.
		h.cache.Set(ctx, featuredCacheKey, recipe.ID.String(), 24*time.Hour)
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// UploadRecipeImage stores an uploaded image with the file-storage
// collaborator and persists the returned location on the recipe. Only the
// owner can attach an image.
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image file"})
		return
	}
	defer func() { _ = file.Close() }()

	location, err := h.images.Store(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	recipe, err := h.recipes.OwnerUpdate(c.Request.Context(), id, userID, service.UpdateRecipeInput{
		ImageLocation: location,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Image uploaded successfully",
		"image_location": recipe.ImageLocation,
	})
}
