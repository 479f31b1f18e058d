package router

import (
	"github.com/gin-gonic/gin"

	"github.com/myrecipebox/backend/internal/api"
	"github.com/myrecipebox/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	favoriteHandler *api.FavoriteHandler,
	validator middleware.TokenValidator,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(allowedOrigins))

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public recipe routes
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/random", recipeHandler.RandomRecipe)
		recipes.GET("/featured", recipeHandler.FeaturedRecipe)
		recipes.GET("/:id", recipeHandler.GetRecipe)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		protected.GET("/auth/me", authHandler.CurrentUser)

		protected.GET("/recipes/mine", recipeHandler.MyRecipes)
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.PUT("/recipes/:id", recipeHandler.UpdateRecipe)
		protected.DELETE("/recipes/:id", recipeHandler.DeleteRecipe)
		protected.POST("/recipes/:id/image", recipeHandler.UploadRecipeImage)

		protected.POST("/recipes/:id/favorite", favoriteHandler.AddFavorite)
		protected.DELETE("/recipes/:id/favorite", favoriteHandler.RemoveFavorite)
		protected.GET("/recipes/:id/favorite", favoriteHandler.IsFavorite)
		protected.GET("/favorites", favoriteHandler.ListFavorites)

		protected.DELETE("/users/:id", authHandler.DeleteUser)
		protected.POST("/users/:id/reset-password", authHandler.ResetPassword)
	}

	return router
}
