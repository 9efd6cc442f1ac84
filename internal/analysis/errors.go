package analysis

import "fmt"

// Stage names the pipeline phase an error came from.
type Stage string

const (
	StageTranscribing       Stage = "transcribing"
	StageScoring            Stage = "scoring"
	StageAggregating        Stage = "aggregating"
	StageGeneratingFeedback Stage = "generating_feedback"
)

// AnalysisError wraps the first component failure of a run, tagged with the
// stage that produced it. The orchestrator does not retry; retries are the
// caller's responsibility.
type AnalysisError struct {
	Stage Stage
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
