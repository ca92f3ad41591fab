package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/churn-insight/api-server/internal/churn"
)

// PredictionRecord is one stored prediction. Created once per persisted
// /predict call and immutable afterwards; there are no update or delete paths.
// The row id and timestamp are store-internal and never serialized.
type PredictionRecord struct {
	ID            uuid.UUID              `json:"-"`
	CustomerInput map[string]interface{} `json:"customer_input"`
	Inference     churn.InferenceResult  `json:"logistic_regression"`
	CreatedAt     time.Time              `json:"-"`
}
