package api

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fluently/internal/analysis"
	"fluently/internal/model"
)

// Record bookkeeping uses context.Background(): a client disconnect cancels
// the request context, and the outcome must still be written.

// beginAnalysisRecord inserts a processing-status record before the pipeline
// runs, so history shows in-flight work. Returns uuid.Nil when no repository
// is configured or the insert fails; the outcome write is skipped then.
func beginAnalysisRecord(sample model.SpeechSample, userID, sessionID uuid.UUID) uuid.UUID {
	if analysisRepo == nil {
		return uuid.Nil
	}

	rec := &model.AnalysisRecord{
		ID:         uuid.New(),
		UserID:     userID,
		SessionID:  sessionID,
		SampleKind: string(sample.Kind),
		Status:     model.RecordStatusProcessing,
		CreatedAt:  time.Now().UTC(),
	}
	if sample.IsAudio() {
		rec.AudioFormat = &sample.Audio.Format
		size := len(sample.Audio.Bytes)
		rec.AudioSizeBytes = &size
	}

	if err := analysisRepo.Create(context.Background(), rec); err != nil {
		log.Warnf("[API] Failed to create analysis record: %v", err)
		return uuid.Nil
	}
	return rec.ID
}

// completeAnalysisRecord updates the processing record with the finished
// assessment.
func completeAnalysisRecord(recID uuid.UUID, a *model.FluencyAssessment, elapsed time.Duration) {
	if analysisRepo == nil || recID == uuid.Nil {
		return
	}

	rec := &model.AnalysisRecord{
		ID:     recID,
		Status: model.RecordStatusComplete,
		Result: assessmentToMap(a),
	}
	rec.Transcript = &a.Transcript
	rec.FluencyScore = &a.FluencyScore
	ms := int(elapsed.Milliseconds())
	rec.ProcessingTimeMs = &ms

	if err := analysisRepo.UpdateResult(context.Background(), rec); err != nil {
		log.Warnf("[API] Failed to persist analysis %s: %v", a.ID, err)
	}
}

// failAnalysisRecord marks the processing record failed, keeping the error
// and the stage it died in.
func failAnalysisRecord(recID uuid.UUID, runErr error, elapsed time.Duration) {
	if analysisRepo == nil || recID == uuid.Nil {
		return
	}

	rec := &model.AnalysisRecord{
		ID:     recID,
		Status: model.RecordStatusFailed,
	}
	msg := runErr.Error()
	rec.ErrorMessage = &msg
	ms := int(elapsed.Milliseconds())
	rec.ProcessingTimeMs = &ms
	var aerr *analysis.AnalysisError
	if errors.As(runErr, &aerr) {
		stage := string(aerr.Stage)
		rec.FailedStage = &stage
	}

	if err := analysisRepo.UpdateResult(context.Background(), rec); err != nil {
		log.Warnf("[API] Failed to persist failed analysis: %v", err)
	}
}
