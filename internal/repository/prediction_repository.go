package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// predictionRepository implements PredictionRepository over Postgres
type predictionRepository struct {
	db dbExecutor
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db dbExecutor) PredictionRepository {
	return &predictionRepository{db: db}
}

// Append stores a single prediction record
func (r *predictionRepository) Append(ctx context.Context, record *PredictionRecord) error {
	inputJSON, err := json.Marshal(record.CustomerInput)
	if err != nil {
		return fmt.Errorf("failed to marshal customer input: %w", err)
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO predictions (id, customer_input, prediction, probability, risk_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		inputJSON,
		record.Inference.Prediction,
		record.Inference.Probability,
		record.Inference.RiskPercent,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	return nil
}

// ListNewestFirst retrieves all stored predictions, most recent first.
// Ties on created_at break on id so the ordering stays stable under
// concurrent writers.
func (r *predictionRepository) ListNewestFirst(ctx context.Context) ([]PredictionRecord, error) {
	query := `
		SELECT id, customer_input, prediction, probability, risk_percent, created_at
		FROM predictions
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var records []PredictionRecord
	for rows.Next() {
		var record PredictionRecord
		var inputJSON []byte

		err := rows.Scan(
			&record.ID,
			&inputJSON,
			&record.Inference.Prediction,
			&record.Inference.Probability,
			&record.Inference.RiskPercent,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}

		if err := json.Unmarshal(inputJSON, &record.CustomerInput); err != nil {
			return nil, fmt.Errorf("failed to unmarshal customer input: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return records, nil
}
