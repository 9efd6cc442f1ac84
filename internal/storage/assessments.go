package storage

import (
	"sync"

	"github.com/google/uuid"

	"fluently/internal/model"
)

var (
	assessments = make(map[uuid.UUID]*model.FluencyAssessment)
	mu          sync.Mutex
)

// SaveAssessment stores a completed assessment in memory.
func SaveAssessment(a *model.FluencyAssessment) {
	mu.Lock()
	defer mu.Unlock()
	assessments[a.ID] = a
}

// GetAssessment retrieves an assessment by analysis ID.
func GetAssessment(id uuid.UUID) (*model.FluencyAssessment, bool) {
	mu.Lock()
	defer mu.Unlock()
	a, ok := assessments[id]
	if !ok {
		return nil, false
	}
	// Return a copy to avoid race conditions
	copied := *a
	return &copied, true
}

// ListAssessmentsByUser returns the stored assessments for one user.
func ListAssessmentsByUser(userID uuid.UUID) []*model.FluencyAssessment {
	mu.Lock()
	defer mu.Unlock()
	var out []*model.FluencyAssessment
	for _, a := range assessments {
		if a.UserID == userID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out
}
