package api

import (
	"fluently/internal/repository"
)

// analysisRepo is the shared repository instance used by the handlers.
// It is nil when the server runs without a database.
var analysisRepo repository.AnalysisRepository

// InitAnalysisRepository sets the repository used for persistence.
func InitAnalysisRepository(repo repository.AnalysisRepository) {
	analysisRepo = repo
}
