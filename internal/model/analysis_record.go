package model

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord represents a persisted analysis request record
type AnalysisRecord struct {
	ID               uuid.UUID              `json:"id"`
	UserID           uuid.UUID              `json:"user_id"`
	SessionID        uuid.UUID              `json:"session_id"`
	SampleKind       string                 `json:"sample_kind"`
	AudioFormat      *string                `json:"audio_format,omitempty"`
	AudioSizeBytes   *int                   `json:"audio_size_bytes,omitempty"`
	Transcript       *string                `json:"transcript,omitempty"`
	FluencyScore     *float64               `json:"fluency_score,omitempty"`
	Status           string                 `json:"status"`
	ErrorMessage     *string                `json:"error_message,omitempty"`
	FailedStage      *string                `json:"failed_stage,omitempty"`
	ProcessingTimeMs *int                   `json:"processing_time_ms,omitempty"`
	Result           map[string]interface{} `json:"result"`
	CreatedAt        time.Time              `json:"created_at"`
}

// Record statuses mirror the orchestrator's terminal states.
const (
	RecordStatusProcessing = "processing"
	RecordStatusComplete   = "complete"
	RecordStatusFailed     = "failed"
)
