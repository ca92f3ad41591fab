package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/services"
	"github.com/churn-insight/api-server/pkg/metrics"
)

// PredictHandler handles churn prediction requests
type PredictHandler struct {
	predictionService services.PredictionService
}

// NewPredictHandler creates a new predict handler with service injection
func NewPredictHandler(predictionService services.PredictionService) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
	}
}

// Predict scores a customer record. Returns 201 when a history record was
// created, 200 otherwise. Validation and coercion failures are client errors;
// the classifier never sees a partial or malformed record.
func (h *PredictHandler) Predict(c *gin.Context) {
	start := time.Now()
	defer func() {
		metrics.PredictLatency.Observe(time.Since(start).Seconds())
		metrics.PredictRequests.WithLabelValues(strconv.Itoa(c.Writer.Status())).Inc()
	}()

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing JSON body"})
		return
	}

	outcome, err := h.predictionService.Predict(c.Request.Context(), payload)
	if err != nil {
		var missingErr *churn.MissingFieldsError
		var coercionErr *churn.CoercionError
		switch {
		case errors.As(err, &missingErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Missing fields",
				"fields": missingErr.Fields,
			})
		case errors.As(err, &coercionErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid field types",
				"message": coercionErr.Error(),
			})
		default:
			// Classifier integration faults stay inside the process
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	status := http.StatusOK
	if outcome.Persisted {
		status = http.StatusCreated
	}
	c.JSON(status, outcome.Response)
}
