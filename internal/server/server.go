package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/myrecipebox/backend/config"
	"github.com/myrecipebox/backend/internal/api"
	"github.com/myrecipebox/backend/internal/database"
	"github.com/myrecipebox/backend/internal/router"
	"github.com/myrecipebox/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New wires the services, handlers and routes into a runnable server.
// cache and images may be nil when redis or S3 are not configured.
func New(cfg *config.Config, db *gorm.DB, cache *redis.Client, images service.ImageStore) *Server {
	accounts := service.NewAccountService(db, cfg.JWTSecret)
	recipes := service.NewRecipeService(db)
	favorites := service.NewFavoriteService(db)

	authHandler := api.NewAuthHandler(accounts)

	// A nil *redis.Client must stay a nil interface inside the handler.
	var featured api.FeaturedCache
	if cache != nil {
		featured = cache
	}
	recipeHandler := api.NewRecipeHandler(recipes, images, featured)
	favoriteHandler := api.NewFavoriteHandler(favorites)

	engine := router.SetupRouter(authHandler, recipeHandler, favoriteHandler, accounts, cfg.AllowedOrigins)

	engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), cfg); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
