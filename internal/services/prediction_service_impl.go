package services

import (
	"context"
	"time"

	"github.com/churn-insight/api-server/internal/churn"
	"github.com/churn-insight/api-server/internal/errors"
	"github.com/churn-insight/api-server/internal/logger"
	"github.com/churn-insight/api-server/internal/repository"
	"github.com/churn-insight/api-server/pkg/metrics"
)

// storeTimeout bounds the history store round-trip so a slow store cannot
// stall response delivery.
const storeTimeout = 5 * time.Second

// warningNotPersisted is attached to a response whose computed prediction
// could not be written to the history store.
const warningNotPersisted = "prediction computed but not persisted"

// predictionServiceImpl implements PredictionService
type predictionServiceImpl struct {
	repos  *repository.Repositories
	classifier churn.Classifier
	logger logger.Logger
}

// newPredictionService creates a new prediction service implementation.
// repos may be nil when persistence is disabled.
func newPredictionService(repos *repository.Repositories, classifier churn.Classifier) PredictionService {
	return &predictionServiceImpl{
		repos:  repos,
		classifier: classifier,
		logger: logger.NewSimpleLogger(),
	}
}

// Predict runs the full pipeline: validate, coerce, score, assemble, and
// (when enabled) persist. Validation and coercion failures surface as typed
// errors and never reach the classifier.
func (s *predictionServiceImpl) Predict(ctx context.Context, payload map[string]interface{}) (*PredictOutcome, error) {
	if err := churn.Validate(payload); err != nil {
		return nil, err
	}

	record, err := churn.BuildRecord(payload)
	if err != nil {
		return nil, err
	}

	// Both classifier calls see the same record instance so label and
	// probability cannot skew apart.
	label, err := s.classifier.PredictLabel(record)
	if err != nil {
		s.logger.Error("Classifier label call failed", err)
		return nil, errors.ModelError("classifier invocation failed", err).WithOperation("Predict")
	}

	probability, err := s.classifier.PredictProbability(record)
	if err != nil {
		s.logger.Error("Classifier probability call failed", err)
		return nil, errors.ModelError("classifier invocation failed", err).WithOperation("Predict")
	}

	inference, err := churn.NewInferenceResult(label, probability)
	if err != nil {
		s.logger.Error("Classifier returned out-of-domain output", err)
		return nil, errors.ModelError("classifier returned invalid output", err).WithOperation("Predict")
	}

	outcome := &PredictOutcome{
		Response: PredictResponse{
			CustomerInput:      payload,
			LogisticRegression: inference,
		},
	}

	if s.repos == nil {
		return outcome, nil
	}

	// A persistence failure never discards the computed result; the caller
	// still gets the prediction, flagged with a warning.
	if err := s.persist(ctx, payload, inference); err != nil {
		s.logger.Error("Failed to persist prediction", err)
		metrics.PersistFailures.Inc()
		outcome.Response.Warning = warningNotPersisted
		return outcome, nil
	}

	metrics.PredictionsPersisted.Inc()
	outcome.Persisted = true
	return outcome, nil
}

func (s *predictionServiceImpl) persist(ctx context.Context, payload map[string]interface{}, inference churn.InferenceResult) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.repos.Predictions.Append(ctx, &repository.PredictionRecord{
		CustomerInput: payload,
		Inference:     inference,
	})
}

// ListPredictions retrieves the stored history, newest first
func (s *predictionServiceImpl) ListPredictions(ctx context.Context) ([]repository.PredictionRecord, error) {
	if s.repos == nil {
		return []repository.PredictionRecord{}, nil
	}

	records, err := s.repos.Predictions.ListNewestFirst(ctx)
	if err != nil {
		s.logger.Error("Failed to list predictions", err)
		return nil, errors.DatabaseError("failed to list predictions", err).WithOperation("ListPredictions")
	}

	if records == nil {
		records = []repository.PredictionRecord{}
	}
	return records, nil
}
