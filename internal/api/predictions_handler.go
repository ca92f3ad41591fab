package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/churn-insight/api-server/internal/services"
)

// PredictionsHandler serves the stored prediction history
type PredictionsHandler struct {
	predictionService services.PredictionService
}

// NewPredictionsHandler creates a new predictions handler with service injection
func NewPredictionsHandler(predictionService services.PredictionService) *PredictionsHandler {
	return &PredictionsHandler{
		predictionService: predictionService,
	}
}

// List returns all stored predictions, newest first. Store-internal
// identifiers are never serialized.
func (h *PredictionsHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	records, err := h.predictionService.ListPredictions(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list predictions"})
		return
	}

	c.JSON(http.StatusOK, records)
}
