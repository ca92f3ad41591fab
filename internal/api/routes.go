package api

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/database"
	"github.com/churn-insight/api-server/internal/report"
	"github.com/churn-insight/api-server/internal/services"
	"github.com/churn-insight/api-server/pkg/config"
)

// SetupRoutes configures all API routes. db may be nil when persistence is
// disabled; predictions are then computed but never stored.
func SetupRoutes(r *gin.Engine, db *database.DB, classifier churn.Classifier, cfg *config.Config) error {
	var sqlDB *sql.DB
	if db != nil && cfg.PersistenceEnabled() {
		sqlDB = db.DB
	}

	// Create centralized services
	svcs := services.NewServices(sqlDB, classifier)
	reports := report.NewStore(cfg.MetricsPath)

	// Create handlers with proper service injection
	healthHandler := NewHealthHandler(db)
	predictHandler := NewPredictHandler(svcs.Prediction)
	predictionsHandler := NewPredictionsHandler(svcs.Prediction)
	accuracyHandler := NewAccuracyHandler(reports)

	// Endpoint paths are fixed for wire compatibility with existing clients;
	// they are intentionally not grouped under a version prefix.
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)
	r.POST("/predict", predictHandler.Predict)
	r.GET("/predictions", predictionsHandler.List)
	r.GET("/accuracy", accuracyHandler.Get)

	// Prometheus exposition
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
