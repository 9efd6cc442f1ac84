package acoustic

import "fmt"

// AcousticAnalysisError reports a failed acoustic measurement: engine exit,
// scratch-file trouble, or output missing expected fields. Missing fields
// are fatal rather than defaulted, a silent zero would corrupt scoring.
type AcousticAnalysisError struct {
	Reason string
	Err    error
}

func (e *AcousticAnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("acoustic analysis: %s: %v", e.Reason, e.Err)
	}
	return "acoustic analysis: " + e.Reason
}

func (e *AcousticAnalysisError) Unwrap() error { return e.Err }
