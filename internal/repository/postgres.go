package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"fluently/internal/db"
	"fluently/internal/model"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository() AnalysisRepository {
	return &postgresRepository{
		db: db.DB,
	}
}

// Create creates a new analysis record
func (r *postgresRepository) Create(ctx context.Context, rec *model.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (
			id, user_id, session_id, sample_kind, audio_format, audio_size_bytes,
			transcript, fluency_score, status, error_message, failed_stage,
			processing_time_ms, result, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.SessionID,
		rec.SampleKind,
		rec.AudioFormat,
		rec.AudioSizeBytes,
		rec.Transcript,
		rec.FluencyScore,
		rec.Status,
		rec.ErrorMessage,
		rec.FailedStage,
		rec.ProcessingTimeMs,
		resultJSON,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// UpdateResult updates the analysis outcome
func (r *postgresRepository) UpdateResult(ctx context.Context, rec *model.AnalysisRecord) error {
	query := `
		UPDATE analyses SET
			transcript = $2,
			fluency_score = $3,
			status = $4,
			error_message = $5,
			failed_stage = $6,
			processing_time_ms = $7,
			result = $8
		WHERE id = $1
	`

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Transcript,
		rec.FluencyScore,
		rec.Status,
		rec.ErrorMessage,
		rec.FailedStage,
		rec.ProcessingTimeMs,
		resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis record: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("analysis record %s not found", rec.ID)
	}
	return nil
}

// GetByID retrieves an analysis record by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AnalysisRecord, error) {
	query := `
		SELECT id, user_id, session_id, sample_kind, audio_format, audio_size_bytes,
			transcript, fluency_score, status, error_message, failed_stage,
			processing_time_ms, result, created_at
		FROM analyses WHERE id = $1
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis record: %w", err)
	}
	return rec, nil
}

// ListByUser retrieves analysis records for a user with pagination
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.AnalysisRecord, error) {
	query := `
		SELECT id, user_id, session_id, sample_kind, audio_format, audio_size_bytes,
			transcript, fluency_score, status, error_message, failed_stage,
			processing_time_ms, result, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	defer rows.Close()

	var out []model.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.AnalysisRecord, error) {
	var rec model.AnalysisRecord
	var resultJSON []byte

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.SessionID,
		&rec.SampleKind,
		&rec.AudioFormat,
		&rec.AudioSizeBytes,
		&rec.Transcript,
		&rec.FluencyScore,
		&rec.Status,
		&rec.ErrorMessage,
		&rec.FailedStage,
		&rec.ProcessingTimeMs,
		&resultJSON,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &rec.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}
	return &rec, nil
}
