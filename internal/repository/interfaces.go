package repository

import (
	"context"
	"database/sql"
)

// PredictionRepository defines the interface for prediction history access.
// The store is append-only; records are listed newest first.
type PredictionRepository interface {
	Append(ctx context.Context, record *PredictionRecord) error
	ListNewestFirst(ctx context.Context) ([]PredictionRecord, error)
}

// Repositories groups all repository interfaces
type Repositories struct {
	Predictions PredictionRepository
}

// dbExecutor is an interface that both *sql.DB and *sql.Tx implement
type dbExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// NewRepositories creates a new repository collection
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Predictions: NewPredictionRepository(dbExecutor(db)),
	}
}
