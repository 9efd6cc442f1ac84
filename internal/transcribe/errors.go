package transcribe

import "fmt"

// TranscriptionError reports a failed transcription: malformed or empty
// audio, or an engine failure. Always fatal for the current analysis; an
// empty transcript is never substituted.
type TranscriptionError struct {
	Reason string
	Err    error
}

func (e *TranscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcription: %s: %v", e.Reason, e.Err)
	}
	return "transcription: " + e.Reason
}

func (e *TranscriptionError) Unwrap() error { return e.Err }
