package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/churn-insight/api-server/internal/api"
	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/database"
	"github.com/churn-insight/api-server/internal/middleware"
	"github.com/churn-insight/api-server/pkg/config"
	"github.com/churn-insight/api-server/pkg/metrics"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Register Prometheus collectors
	metrics.Init()

	// Load the trained model once at startup; serving without it is pointless
	classifier, err := churn.LoadLogisticModel(cfg.ModelPath)
	if err != nil {
		log.Fatal("Failed to load model: ", err)
	}

	// Initialize the history store when persistence is enabled
	var db *database.DB
	if cfg.PersistenceEnabled() {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		defer db.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal("Failed to run migrations: ", err)
		}
	} else {
		log.Println("Persistence disabled; predictions will not be stored")
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()

	// Add middleware
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg))

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware())
	}

	// Add recovery middleware
	r.Use(gin.Recovery())

	// Setup API routes
	if err := api.SetupRoutes(r, db, classifier, cfg); err != nil {
		log.Fatal("Failed to setup API routes: ", err)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
