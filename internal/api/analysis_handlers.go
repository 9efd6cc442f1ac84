package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fluently/internal/analysis"
	"fluently/internal/model"
	"fluently/internal/storage"
	"fluently/internal/transcribe"
	"fluently/internal/utils"
)

// maxAudioBytes caps uploads at 25MB, matching typical recorder output.
const maxAudioBytes = 25 * 1024 * 1024

var allowedAudioExts = []string{".m4a", ".mp3", ".wav", ".aac", ".ogg", ".caf", ".aiff", ".aif"}

// textAnalysisRequest is the JSON body for transcript-only analyses.
type textAnalysisRequest struct {
	Text      string `json:"text" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// runAnalysis handles POST /api/v1/analyses. Audio arrives as a multipart
// upload, transcripts as JSON; the sample kind is decided here, once.
func runAnalysis(c *gin.Context) {
	var (
		sample    model.SpeechSample
		userID    uuid.UUID
		sessionID uuid.UUID
		ok        bool
	)

	if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/") {
		sample, userID, sessionID, ok = bindAudioRequest(c)
	} else {
		sample, userID, sessionID, ok = bindTextRequest(c)
	}
	if !ok {
		return // response already written
	}

	startTime := time.Now()
	recID := beginAnalysisRecord(sample, userID, sessionID)
	assessment, err := pipeline.RunAnalysis(c.Request.Context(), sample, userID, sessionID)
	if err != nil {
		log.Warnf("[API] Analysis failed: %v", err)
		failAnalysisRecord(recID, err, time.Since(startTime))
		utils.Error(c, analysisStatusCode(err), err.Error())
		return
	}

	storage.SaveAssessment(assessment)
	completeAnalysisRecord(recID, assessment, time.Since(startTime))

	utils.Created(c, gin.H{"assessment": assessment})
}

func bindAudioRequest(c *gin.Context) (model.SpeechSample, uuid.UUID, uuid.UUID, bool) {
	file, err := c.FormFile("audio_file")
	if err != nil {
		// Try alternative field names used by older clients
		if file, err = c.FormFile("audio"); err != nil {
			if file, err = c.FormFile("file"); err != nil {
				utils.Error(c, http.StatusBadRequest, "audio_file is required")
				return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
			}
		}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, allowed := range allowedAudioExts {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		utils.Error(c, http.StatusBadRequest, "unsupported audio format. Supported: m4a, mp3, wav, aac, ogg, caf, aiff")
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}
	if file.Size > maxAudioBytes {
		utils.Error(c, http.StatusBadRequest, "file size exceeds 25MB limit")
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}

	userID, sessionID, ok := parseIDs(c, c.PostForm("user_id"), c.PostForm("session_id"))
	if !ok {
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}

	f, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to read audio file")
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "failed to read audio file")
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}

	return model.NewAudioSample(data, strings.TrimPrefix(ext, ".")), userID, sessionID, true
}

func bindTextRequest(c *gin.Context) (model.SpeechSample, uuid.UUID, uuid.UUID, bool) {
	var req textAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "text, user_id and session_id are required")
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}
	userID, sessionID, ok := parseIDs(c, req.UserID, req.SessionID)
	if !ok {
		return model.SpeechSample{}, uuid.Nil, uuid.Nil, false
	}
	return model.NewTextSample(req.Text), userID, sessionID, true
}

func parseIDs(c *gin.Context, userIDStr, sessionIDStr string) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user_id format")
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid session_id format")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, sessionID, true
}

// analysisStatusCode maps pipeline failures to HTTP statuses: bad input
// audio is the client's problem, failing external engines are a gateway
// problem, everything else is internal.
func analysisStatusCode(err error) int {
	var terr *transcribe.TranscriptionError
	if errors.As(err, &terr) {
		return http.StatusUnprocessableEntity
	}
	var aerr *analysis.AnalysisError
	if errors.As(err, &aerr) {
		switch aerr.Stage {
		case analysis.StageTranscribing, analysis.StageScoring:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// getAnalysis handles GET /api/v1/analyses/:id
func getAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid id format")
		return
	}

	if assessment, found := storage.GetAssessment(id); found {
		utils.Success(c, gin.H{"assessment": assessment})
		return
	}

	// Fall back to the database for assessments from earlier runs.
	if analysisRepo != nil {
		rec, err := analysisRepo.GetByID(c.Request.Context(), id)
		if err == nil {
			utils.Success(c, gin.H{"record": rec})
			return
		}
		log.Warnf("[API] Failed to load analysis %s: %v", id, err)
	}

	utils.Error(c, http.StatusNotFound, "analysis not found")
}

// getAnalysisHistory handles GET /api/v1/analyses?user_id=...
func getAnalysisHistory(c *gin.Context) {
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		userIDStr = c.GetHeader("X-User-ID")
		if userIDStr == "" {
			utils.Error(c, http.StatusBadRequest, "user_id is required (query parameter or X-User-ID header)")
			return
		}
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid user_id format")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	if analysisRepo == nil {
		// No database: serve what this process has in memory, under the
		// same newest-first pagination contract as the database branch.
		items := paginateAssessments(storage.ListAssessmentsByUser(userID), limit, offset)
		utils.Success(c, gin.H{
			"items":  items,
			"limit":  limit,
			"offset": offset,
			"count":  len(items),
		})
		return
	}

	records, err := analysisRepo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		log.Warnf("[API] Failed to list analysis history: %v", err)
		utils.Error(c, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, rec := range records {
		item := gin.H{
			"id":          rec.ID.String(),
			"session_id":  rec.SessionID.String(),
			"sample_kind": rec.SampleKind,
			"status":      rec.Status,
			"created_at":  rec.CreatedAt,
		}
		if rec.FluencyScore != nil {
			item["fluency_score"] = *rec.FluencyScore
		}
		if rec.Transcript != nil && *rec.Transcript != "" {
			preview := *rec.Transcript
			if len(preview) > 100 {
				preview = preview[:100] + "..."
			}
			item["transcript_preview"] = preview
		}
		items = append(items, item)
	}

	utils.Success(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"count":  len(items),
	})
}

// paginateAssessments orders assessments newest first and applies the
// limit/offset window.
func paginateAssessments(items []*model.FluencyAssessment, limit, offset int) []*model.FluencyAssessment {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// assessmentToMap flattens an assessment for the JSONB result column.
func assessmentToMap(a *model.FluencyAssessment) map[string]interface{} {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
