package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myrecipebox/backend/config"
	"github.com/myrecipebox/backend/internal/database"
	"github.com/myrecipebox/backend/internal/server"
	"github.com/myrecipebox/backend/internal/service"
)

func main() {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis only backs the featured-recipe cache; the server runs without it.
	cache, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, featured recipe caching disabled: %v", err)
		cache = nil
	}

	var images service.ImageStore
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		images = service.NewS3ImageStore(s3cfg)
	} else {
		log.Printf("S3_BUCKET_NAME not set, recipe image upload disabled")
	}

	srv := server.New(cfg, db, cache, images)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
