package services

import (
	"context"
	"database/sql"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/repository"
)

// Services contains all application services
type Services struct {
	Prediction PredictionService
}

// PredictResponse is the body returned to /predict callers. CustomerInput
// echoes the caller's raw payload verbatim, not the coerced record; clients
// depend on getting their input back unchanged. Warning is only set when a
// computed prediction could not be persisted.
type PredictResponse struct {
	CustomerInput      map[string]interface{} `json:"customer_input"`
	LogisticRegression churn.InferenceResult  `json:"logistic_regression"`
	Warning            string                 `json:"warning,omitempty"`
}

// PredictOutcome pairs the response body with whether a history record was
// created, which decides between 200 and 201.
type PredictOutcome struct {
	Response  PredictResponse
	Persisted bool
}

// PredictionService defines the interface for churn prediction business logic
type PredictionService interface {
	Predict(ctx context.Context, payload map[string]interface{}) (*PredictOutcome, error)
	ListPredictions(ctx context.Context) ([]repository.PredictionRecord, error)
}

// NewServices creates a new Services instance with all dependencies. A nil db
// disables persistence: predictions are computed and returned but not stored.
func NewServices(db *sql.DB, classifier churn.Classifier) *Services {
	var repos *repository.Repositories
	if db != nil {
		repos = repository.NewRepositories(db)
	}

	return &Services{
		Prediction: newPredictionService(repos, classifier),
	}
}
