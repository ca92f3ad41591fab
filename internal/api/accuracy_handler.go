package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/churn-insight/api-server/internal/errors"
)

// ReportStore loads the precomputed accuracy report
type ReportStore interface {
	Load() (map[string]interface{}, error)
}

// AccuracyHandler serves the offline-produced model accuracy report
type AccuracyHandler struct {
	reports ReportStore
}

// NewAccuracyHandler creates a new accuracy handler
func NewAccuracyHandler(reports ReportStore) *AccuracyHandler {
	return &AccuracyHandler{reports: reports}
}

// Get forwards the stored accuracy report opaquely, or 404 when the offline
// evaluation has not produced one yet.
func (h *AccuracyHandler) Get(c *gin.Context) {
	metricsReport, err := h.reports.Load()
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "metrics.json missing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read metrics report"})
		return
	}

	c.JSON(http.StatusOK, metricsReport)
}
