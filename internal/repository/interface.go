package repository

import (
	"context"

	"github.com/google/uuid"

	"fluently/internal/model"
)

// AnalysisRepository defines the interface for analysis record data access
type AnalysisRepository interface {
	// Create creates a new analysis record
	Create(ctx context.Context, rec *model.AnalysisRecord) error

	// UpdateResult updates the analysis outcome (score, status, result, etc.)
	UpdateResult(ctx context.Context, rec *model.AnalysisRecord) error

	// GetByID retrieves an analysis record by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.AnalysisRecord, error)

	// ListByUser retrieves analysis records for a user with pagination
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.AnalysisRecord, error)
}
