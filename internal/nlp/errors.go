package nlp

import "fmt"

// NlpScoringError reports a failed linguistic scoring pass: the external
// sentiment model errored or returned a payload without a usable label.
type NlpScoringError struct {
	Reason string
	Err    error
}

func (e *NlpScoringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("nlp scoring: %s: %v", e.Reason, e.Err)
	}
	return "nlp scoring: " + e.Reason
}

func (e *NlpScoringError) Unwrap() error { return e.Err }
